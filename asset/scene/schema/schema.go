// Package schema defines the JSON document model for scene files and
// converts between documents and scenes.
package schema

import (
	"fmt"

	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

// RGB triplet.
type Color [3]float32

func (c Color) color() types.Color {
	return types.RGB(c[0], c[1], c[2])
}

func fromColor(c types.Color) Color {
	return Color{c.R, c.G, c.B}
}

// XYZ triplet.
type Vec3 [3]float32

func (v Vec3) vec() types.Vec3 {
	return types.XYZ(v[0], v[1], v[2])
}

type Settings struct {
	Background     *Color   `json:"background,omitempty"`
	ShadowColor    *Color   `json:"shadow_color,omitempty"`
	ShadowBias     *float32 `json:"shadow_bias,omitempty"`
	ReflectionBias *float32 `json:"reflection_bias,omitempty"`
	MaxReflections *uint32  `json:"max_reflections,omitempty"`
}

type Material struct {
	Name         string  `json:"name"`
	Ambient      Color   `json:"ambient"`
	Diffuse      Color   `json:"diffuse"`
	Specular     Color   `json:"specular"`
	Shininess    float32 `json:"shininess"`
	Reflectivity float32 `json:"reflectivity"`
	Intrinsic    float32 `json:"intrinsic"`
}

// A scene object. The fields in use depend on Type.
type Object struct {
	Type     string `json:"type"`
	Material string `json:"material"`

	// sphere
	Center *Vec3    `json:"center,omitempty"`
	Radius *float32 `json:"radius,omitempty"`

	// plane
	Point  *Vec3 `json:"point,omitempty"`
	Normal *Vec3 `json:"normal,omitempty"`

	// box
	Min *Vec3 `json:"min,omitempty"`
	Max *Vec3 `json:"max,omitempty"`

	// triangle
	Vertices *[3]Vec3 `json:"vertices,omitempty"`
}

type Light struct {
	Position    Vec3   `json:"position"`
	Ambient     *Color `json:"ambient,omitempty"`
	Diffuse     *Color `json:"diffuse,omitempty"`
	Specular    *Color `json:"specular,omitempty"`
	Attenuation *Vec3  `json:"attenuation,omitempty"`
}

type Camera struct {
	Name string `json:"name"`
	Eye  Vec3   `json:"eye"`

	// Either a look-at point or the index of the object whose centroid
	// the camera targets.
	LookAt       *Vec3 `json:"look_at,omitempty"`
	LookAtObject *int  `json:"look_at_object,omitempty"`

	Up   *Vec3    `json:"up,omitempty"`
	FOV  *float32 `json:"fov,omitempty"`
	Near *float32 `json:"near,omitempty"`
}

// The root JSON scene document.
type Document struct {
	Name      string     `json:"name,omitempty"`
	Settings  *Settings  `json:"settings,omitempty"`
	Materials []Material `json:"materials"`
	Objects   []Object   `json:"objects"`
	Lights    []Light    `json:"lights"`
	Cameras   []Camera   `json:"cameras"`
}

// Build a scene from the document.
func (d *Document) Build() (*scene.Scene, error) {
	sc := scene.NewScene()
	sc.Name = d.Name

	if s := d.Settings; s != nil {
		if s.Background != nil {
			c := s.Background.color()
			sc.Settings.BackgroundColor = &c
		}
		if s.ShadowColor != nil {
			c := s.ShadowColor.color()
			sc.Settings.ShadowColor = &c
		}
		sc.Settings.ShadowBias = s.ShadowBias
		sc.Settings.ReflectionBias = s.ReflectionBias
		sc.Settings.MaxReflections = s.MaxReflections
	}

	matByName := make(map[string]*scene.Material)
	for index, docMat := range d.Materials {
		if _, exists := matByName[docMat.Name]; exists {
			return nil, fmt.Errorf("materials[%d]: material %q already defined", index, docMat.Name)
		}
		mat := &scene.Material{
			Name:         docMat.Name,
			Shininess:    docMat.Shininess,
			Reflectivity: docMat.Reflectivity,
			Intrinsic:    docMat.Intrinsic,
		}
		mat.SetColors(docMat.Ambient.color(), docMat.Diffuse.color(), docMat.Specular.color())
		if err := sc.AddMaterial(mat); err != nil {
			return nil, err
		}
		matByName[mat.Name] = mat
	}

	for index, obj := range d.Objects {
		mat, exists := matByName[obj.Material]
		if !exists {
			return nil, fmt.Errorf("objects[%d]: undefined material with name %q", index, obj.Material)
		}
		prim, err := obj.primitive(mat)
		if err != nil {
			return nil, fmt.Errorf("objects[%d]: %s", index, err.Error())
		}
		if err = sc.AddPrimitive(prim); err != nil {
			return nil, err
		}
	}

	for _, docLight := range d.Lights {
		light := scene.NewPointLight(docLight.Position.vec())
		if docLight.Ambient != nil {
			light.Ambient = docLight.Ambient.color()
		}
		if docLight.Diffuse != nil {
			light.Diffuse = docLight.Diffuse.color()
		}
		if docLight.Specular != nil {
			light.Specular = docLight.Specular.color()
		}
		if att := docLight.Attenuation; att != nil {
			light.SetAttenuation(att[0], att[1], att[2])
		}
		sc.AddLight(light)
	}

	for index, docCam := range d.Cameras {
		cam, err := docCam.camera(sc)
		if err != nil {
			return nil, fmt.Errorf("cameras[%d]: %s", index, err.Error())
		}
		if err = sc.AddCamera(cam); err != nil {
			return nil, err
		}
	}

	return sc, nil
}

func (o *Object) primitive(mat *scene.Material) (scene.Primitive, error) {
	switch o.Type {
	case "sphere":
		if o.Center == nil || o.Radius == nil {
			return nil, fmt.Errorf(`sphere requires "center" and "radius"`)
		}
		return scene.NewSphere(o.Center.vec(), *o.Radius, mat), nil
	case "plane":
		if o.Point == nil || o.Normal == nil {
			return nil, fmt.Errorf(`plane requires "point" and "normal"`)
		}
		return scene.NewPlane(o.Point.vec(), o.Normal.vec(), mat), nil
	case "box":
		if o.Min == nil || o.Max == nil {
			return nil, fmt.Errorf(`box requires "min" and "max"`)
		}
		return scene.NewBox(o.Min.vec(), o.Max.vec(), mat), nil
	case "triangle":
		if o.Vertices == nil {
			return nil, fmt.Errorf(`triangle requires "vertices"`)
		}
		return scene.NewTriangle([3]types.Vec3{o.Vertices[0].vec(), o.Vertices[1].vec(), o.Vertices[2].vec()}, mat), nil
	}
	return nil, fmt.Errorf("unsupported object type %q", o.Type)
}

func (c *Camera) camera(sc *scene.Scene) (*scene.Camera, error) {
	fov := scene.DefaultFOV
	if c.FOV != nil {
		fov = *c.FOV
	}
	cam := scene.NewCamera(fov)
	cam.Name = c.Name
	if c.Near != nil {
		cam.Near = *c.Near
	}
	if c.Up != nil {
		cam.Up = c.Up.vec()
	}

	var target types.Vec3
	switch {
	case c.LookAtObject != nil:
		index := *c.LookAtObject
		if index < 0 || index >= sc.NumObjects() {
			return nil, fmt.Errorf("look_at_object index %d out of range", index)
		}
		target = sc.Object(index).Centroid()
	case c.LookAt != nil:
		target = c.LookAt.vec()
	default:
		return nil, fmt.Errorf(`camera requires "look_at" or "look_at_object"`)
	}
	cam.Look(c.Eye.vec(), target)
	return cam, nil
}

// Convert a scene into a document.
func FromScene(sc *scene.Scene) (*Document, error) {
	doc := &Document{
		Name:      sc.Name,
		Materials: make([]Material, 0, len(sc.Materials)),
		Objects:   make([]Object, 0, len(sc.Primitives)),
		Lights:    make([]Light, 0, len(sc.Lights)),
		Cameras:   make([]Camera, 0, len(sc.Cameras)),
	}

	if s := sc.Settings; s != (scene.Settings{}) {
		doc.Settings = &Settings{
			ShadowBias:     s.ShadowBias,
			ReflectionBias: s.ReflectionBias,
			MaxReflections: s.MaxReflections,
		}
		if s.BackgroundColor != nil {
			c := fromColor(*s.BackgroundColor)
			doc.Settings.Background = &c
		}
		if s.ShadowColor != nil {
			c := fromColor(*s.ShadowColor)
			doc.Settings.ShadowColor = &c
		}
	}

	// Materials are exported by name so each one needs a unique name
	names := make(map[*scene.Material]string)
	taken := make(map[string]bool)
	for index, mat := range sc.Materials {
		name := mat.Name
		if name == "" || taken[name] {
			name = fmt.Sprintf("material_%d", index)
		}
		taken[name] = true
		names[mat] = name
		doc.Materials = append(doc.Materials, Material{
			Name:         name,
			Ambient:      fromColor(mat.Ambient),
			Diffuse:      fromColor(mat.Diffuse),
			Specular:     fromColor(mat.Specular),
			Shininess:    mat.Shininess,
			Reflectivity: mat.Reflectivity,
			Intrinsic:    mat.Intrinsic,
		})
	}

	for index, prim := range sc.Primitives {
		obj := Object{Material: names[prim.Material()]}
		switch p := prim.(type) {
		case *scene.Sphere:
			center, radius := Vec3(p.Center), p.Radius
			obj.Type, obj.Center, obj.Radius = "sphere", &center, &radius
		case *scene.Plane:
			point, normal := Vec3(p.Point), Vec3(p.Normal)
			obj.Type, obj.Point, obj.Normal = "plane", &point, &normal
		case *scene.Box:
			lo, hi := Vec3(p.Min), Vec3(p.Max)
			obj.Type, obj.Min, obj.Max = "box", &lo, &hi
		case *scene.Triangle:
			verts := [3]Vec3{Vec3(p.Vertices[0]), Vec3(p.Vertices[1]), Vec3(p.Vertices[2])}
			obj.Type, obj.Vertices = "triangle", &verts
		default:
			return nil, fmt.Errorf("objects[%d]: unsupported primitive type %s", index, prim.Type())
		}
		doc.Objects = append(doc.Objects, obj)
	}

	for index, light := range sc.Lights {
		pl, ok := light.(*scene.PointLight)
		if !ok {
			return nil, fmt.Errorf("lights[%d]: unsupported light type %T", index, light)
		}
		ambient, diffuse, specular := fromColor(pl.Ambient), fromColor(pl.Diffuse), fromColor(pl.Specular)
		att := Vec3{pl.Kc, pl.Kl, pl.Kq}
		doc.Lights = append(doc.Lights, Light{
			Position:    Vec3(pl.Pos),
			Ambient:     &ambient,
			Diffuse:     &diffuse,
			Specular:    &specular,
			Attenuation: &att,
		})
	}

	for _, cam := range sc.Cameras {
		lookAt, up := Vec3(cam.LookAt), Vec3(cam.Up)
		fov, near := cam.FOV, cam.Near
		doc.Cameras = append(doc.Cameras, Camera{
			Name:   cam.Name,
			Eye:    Vec3(cam.Eye),
			LookAt: &lookAt,
			Up:     &up,
			FOV:    &fov,
			Near:   &near,
		})
	}

	return doc, nil
}
