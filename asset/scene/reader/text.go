package reader

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/whitted/asset"
	"github.com/achilleasa/whitted/log"
	"github.com/achilleasa/whitted/scene"
	"github.com/achilleasa/whitted/types"
)

// Name of the material assigned to geometry defined before any "usemtl".
const defaultMaterialName = "default"

// The text scene reader parses a line-based scene format that extends the
// wavefront obj/mtl syntax with analytic primitives, lights, cameras and
// tracer settings. Scene files may include other scene/obj files ("call")
// and material libraries ("mtllib"); relative paths are resolved against
// the including file.
//
// Scene directives:
//
//	name <scene name>
//	call <file>
//	mtllib <file>
//	usemtl <material>
//	v x y z
//	f v1 v2 v3 [v4]
//	sphere cx cy cz radius
//	plane px py pz nx ny nz
//	box x1 y1 z1 x2 y2 z2
//	tri x1 y1 z1 x2 y2 z2 x3 y3 z3
//	light x y z [kc kl kq]
//	camera <name> ex ey ez tx ty tz [fov]
//	camera <name> ex ey ez lookat_object <index> [fov]
//	camera_up x y z
//	camera_near distance
//	background r g b
//	shadow_color r g b
//	shadow_bias value
//	reflection_bias value
//	max_reflections count
//
// Material library directives:
//
//	newmtl <name>
//	Ka r g b
//	Kd r g b
//	Ks r g b
//	Ns shininess
//	Kr reflectivity
//	Ki intrinsic
type textSceneReader struct {
	logger log.Logger

	// The parsed scene.
	sc *scene.Scene

	// Materials by name.
	materials map[string]*scene.Material

	// Currently selected material.
	curMaterial *scene.Material

	// Last parsed camera; target of camera_* directives.
	curCamera *scene.Camera

	// Parsed face vertices.
	vertexList []types.Vec3

	// An error stack that provides additional error information when
	// scene files include other files (models, mat libs e.t.c)
	errStack []string
}

// Create a new text scene reader.
func newTextSceneReader() *textSceneReader {
	return &textSceneReader{
		logger:     log.New("text scene reader"),
		sc:         scene.NewScene(),
		materials:  make(map[string]*scene.Material),
		vertexList: make([]types.Vec3, 0),
		errStack:   make([]string, 0),
	}
}

// Read scene definition.
func (r *textSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	err := r.parse(sceneRes)
	if err != nil {
		return nil, err
	}

	if r.sc.Name == "" {
		r.sc.Name = sceneRes.Name()
	}
	r.pruneMaterials()

	r.logger.Noticef("parsed scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return r.sc, nil
}

// Drop materials that are not referenced by any primitive.
func (r *textSceneReader) pruneMaterials() {
	used := make(map[*scene.Material]bool)
	for _, prim := range r.sc.Primitives {
		used[prim.Material()] = true
	}

	kept := make([]*scene.Material, 0, len(r.sc.Materials))
	for _, mat := range r.sc.Materials {
		if !used[mat] {
			r.logger.Infof("skipping unused material %q", mat.Name)
			continue
		}
		kept = append(kept, mat)
	}

	if pruned := len(r.sc.Materials) - len(kept); pruned > 0 {
		r.logger.Noticef("pruned %d unused materials", pruned)
	}
	r.sc.Materials = kept
}

// Generate an error message that also includes any data in the error stack.
func (r *textSceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)

	var errMsg string
	if file != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s\n%s", file, line, msg, strings.Join(r.errStack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s\n%s", msg, strings.Join(r.errStack, "\n"))
	}

	return errors.New(strings.Trim(errMsg, "\n"))
}

// Push a frame to the error stack.
func (r *textSceneReader) pushFrame(msg string) {
	r.errStack = append([]string{msg}, r.errStack...)
}

// Pop a frame from the error stack.
func (r *textSceneReader) popFrame() {
	r.errStack = r.errStack[1:]
}

// Get the active material, creating and selecting a default one if
// no material has been selected.
func (r *textSceneReader) activeMaterial() (*scene.Material, error) {
	if r.curMaterial != nil {
		return r.curMaterial, nil
	}

	mat, exists := r.materials[defaultMaterialName]
	if !exists {
		mat = scene.DefaultMaterial()
		mat.Name = defaultMaterialName
		if err := r.sc.AddMaterial(mat); err != nil {
			return nil, err
		}
		r.materials[mat.Name] = mat
	}
	r.curMaterial = mat
	return mat, nil
}

// Add a primitive using the active material.
func (r *textSceneReader) addPrimitive(build func(*scene.Material) scene.Primitive) error {
	mat, err := r.activeMaterial()
	if err != nil {
		return err
	}
	return r.sc.AddPrimitive(build(mat))
}

// Parse scene file.
func (r *textSceneReader) parse(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	// Included obj files use 1-based vertex indices relative to their own
	// vertex list. Track the offset so faces select the correct vertices.
	relVertexOffset := len(r.vertexList)

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "call", "mtllib":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
			}

			r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))

			incRes, err := asset.NewResource(lineTokens[1], res)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}

			switch lineTokens[0] {
			case "call":
				err = r.parse(incRes)
			case "mtllib":
				err = r.parseMaterials(incRes)
			}
			incRes.Close()

			if err != nil {
				return err
			}
			r.popFrame()
		case "name":
			if len(lineTokens) < 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "name"; expected 1 argument; got %d`, len(lineTokens)-1)
			}
			r.sc.Name = strings.Join(lineTokens[1:], " ")
		case "usemtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "usemtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			mat, exists := r.materials[lineTokens[1]]
			if !exists {
				return r.emitError(res.Path(), lineNum, `undefined material with name "%s"`, lineTokens[1])
			}
			r.curMaterial = mat
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v)
		case "f":
			err = r.parseFace(lineTokens, relVertexOffset)
		case "sphere":
			err = r.parseSphere(lineTokens)
		case "plane":
			err = r.parsePlane(lineTokens)
		case "box":
			err = r.parseBox(lineTokens)
		case "tri":
			err = r.parseTriangle(lineTokens)
		case "light":
			err = r.parseLight(lineTokens)
		case "camera":
			err = r.parseCamera(lineTokens)
		case "camera_up", "camera_near":
			err = r.parseCameraOption(lineTokens)
		case "background", "shadow_color", "shadow_bias", "reflection_bias", "max_reflections":
			err = r.parseSetting(lineTokens)
		case "vn", "vt", "g", "o", "s":
			// Smoothing groups, normals and uvs do not affect flat shaded triangles
		default:
			r.logger.Debugf(`[%s: %d] ignoring unknown directive "%s"`, res.Path(), lineNum, lineTokens[0])
		}

		if err != nil {
			return r.emitError(res.Path(), lineNum, "%s", err.Error())
		}
	}

	return scanner.Err()
}

// Parse face definition. Each face argument has the form
// vertexIndex[/uvIndex[/normalIndex]]; only the vertex index is used.
// Indices start from 1 and may be negative to indicate an offset off the
// end of the vertex list. Quads are split into two triangles.
func (r *textSceneReader) parseFace(lineTokens []string, relVertexOffset int) error {
	if len(lineTokens) < 4 || len(lineTokens) > 5 {
		return fmt.Errorf(`unsupported syntax for "f"; expected 3 arguments for triangular face or 4 arguments for a quad face; got %d`, len(lineTokens)-1)
	}

	var vertices [4]types.Vec3
	for arg := 0; arg < len(lineTokens)-1; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		vOffset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList), relVertexOffset)
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset]
	}

	indiceList := [][3]int{{0, 1, 2}}
	if len(lineTokens) == 5 {
		indiceList = append(indiceList, [3]int{0, 2, 3})
	}

	for _, indices := range indiceList {
		triVerts := [3]types.Vec3{vertices[indices[0]], vertices[indices[1]], vertices[indices[2]]}
		err := r.addPrimitive(func(mat *scene.Material) scene.Primitive {
			return scene.NewTriangle(triVerts, mat)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// sphere cx cy cz radius
func (r *textSceneReader) parseSphere(lineTokens []string) error {
	args, err := parseFloats(lineTokens, 4)
	if err != nil {
		return err
	}
	if args[3] <= 0 {
		return fmt.Errorf("sphere radius must be > 0; got %g", args[3])
	}
	return r.addPrimitive(func(mat *scene.Material) scene.Primitive {
		return scene.NewSphere(types.XYZ(args[0], args[1], args[2]), args[3], mat)
	})
}

// plane px py pz nx ny nz
func (r *textSceneReader) parsePlane(lineTokens []string) error {
	args, err := parseFloats(lineTokens, 6)
	if err != nil {
		return err
	}
	normal := types.XYZ(args[3], args[4], args[5])
	if normal.Normalize().IsZero() {
		return errors.New("plane normal must not be zero")
	}
	return r.addPrimitive(func(mat *scene.Material) scene.Primitive {
		return scene.NewPlane(types.XYZ(args[0], args[1], args[2]), normal, mat)
	})
}

// box x1 y1 z1 x2 y2 z2
func (r *textSceneReader) parseBox(lineTokens []string) error {
	args, err := parseFloats(lineTokens, 6)
	if err != nil {
		return err
	}
	return r.addPrimitive(func(mat *scene.Material) scene.Primitive {
		return scene.NewBox(types.XYZ(args[0], args[1], args[2]), types.XYZ(args[3], args[4], args[5]), mat)
	})
}

// tri x1 y1 z1 x2 y2 z2 x3 y3 z3
func (r *textSceneReader) parseTriangle(lineTokens []string) error {
	args, err := parseFloats(lineTokens, 9)
	if err != nil {
		return err
	}
	return r.addPrimitive(func(mat *scene.Material) scene.Primitive {
		return scene.NewTriangle([3]types.Vec3{
			types.XYZ(args[0], args[1], args[2]),
			types.XYZ(args[3], args[4], args[5]),
			types.XYZ(args[6], args[7], args[8]),
		}, mat)
	})
}

// light x y z [kc kl kq]. The light borrows its colors from the active
// material if one is selected.
func (r *textSceneReader) parseLight(lineTokens []string) error {
	if len(lineTokens) != 4 && len(lineTokens) != 7 {
		return fmt.Errorf(`unsupported syntax for "light"; expected 3 or 6 arguments; got %d`, len(lineTokens)-1)
	}
	args, err := parseFloats(lineTokens, len(lineTokens)-1)
	if err != nil {
		return err
	}

	pos := types.XYZ(args[0], args[1], args[2])
	var light *scene.PointLight
	if r.curMaterial != nil {
		light = scene.NewPointLightFromMaterial(pos, r.curMaterial)
	} else {
		light = scene.NewPointLight(pos)
	}
	if len(args) == 6 {
		light.SetAttenuation(args[3], args[4], args[5])
	}
	r.sc.AddLight(light)
	return nil
}

// camera <name> ex ey ez tx ty tz [fov]
// camera <name> ex ey ez lookat_object <index> [fov]
func (r *textSceneReader) parseCamera(lineTokens []string) error {
	if len(lineTokens) < 7 {
		return fmt.Errorf(`unsupported syntax for "camera"; expected at least 6 arguments; got %d`, len(lineTokens)-1)
	}

	name := lineTokens[1]
	eye, err := parseVec3(lineTokens[1:])
	if err != nil {
		return err
	}

	var target types.Vec3
	var rest []string
	if lineTokens[5] == "lookat_object" {
		index, err := strconv.Atoi(lineTokens[6])
		if err != nil {
			return err
		}
		if index < 0 || index >= r.sc.NumObjects() {
			return fmt.Errorf("lookat_object index %d out of range; scene defines %d objects", index, r.sc.NumObjects())
		}
		target = r.sc.Object(index).Centroid()
		rest = lineTokens[7:]
	} else {
		if len(lineTokens) < 8 {
			return fmt.Errorf(`unsupported syntax for "camera"; expected look-at point or "lookat_object <index>"`)
		}
		if target, err = parseVec3(lineTokens[4:]); err != nil {
			return err
		}
		rest = lineTokens[8:]
	}

	fov := scene.DefaultFOV
	switch len(rest) {
	case 0:
	case 1:
		v, err := strconv.ParseFloat(rest[0], 32)
		if err != nil {
			return err
		}
		fov = float32(v)
	default:
		return fmt.Errorf(`unsupported syntax for "camera"; unexpected arguments after fov: %v`, rest[1:])
	}
	if fov <= 0 || fov >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180); got %g", fov)
	}

	cam := scene.NewCamera(fov)
	cam.Name = name
	cam.Look(eye, target)
	if err = r.sc.AddCamera(cam); err != nil {
		return err
	}
	r.curCamera = cam
	return nil
}

// camera_up x y z | camera_near distance
func (r *textSceneReader) parseCameraOption(lineTokens []string) error {
	if r.curCamera == nil {
		return fmt.Errorf(`got "%s" without a "camera"`, lineTokens[0])
	}

	switch lineTokens[0] {
	case "camera_up":
		up, err := parseVec3(lineTokens)
		if err != nil {
			return err
		}
		r.curCamera.Up = up
	case "camera_near":
		near, err := parseFloat32(lineTokens)
		if err != nil {
			return err
		}
		if near <= 0 {
			return fmt.Errorf("camera near clip distance must be > 0; got %g", near)
		}
		r.curCamera.Near = near
	}
	r.curCamera.Update()
	return nil
}

// Parse tracer settings.
func (r *textSceneReader) parseSetting(lineTokens []string) error {
	settings := &r.sc.Settings
	switch lineTokens[0] {
	case "background", "shadow_color":
		v, err := parseVec3(lineTokens)
		if err != nil {
			return err
		}
		c := types.RGB(v[0], v[1], v[2])
		if lineTokens[0] == "background" {
			settings.BackgroundColor = &c
		} else {
			settings.ShadowColor = &c
		}
	case "shadow_bias", "reflection_bias":
		v, err := parseFloat32(lineTokens)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf(`"%s" must be > 0; got %g`, lineTokens[0], v)
		}
		if lineTokens[0] == "shadow_bias" {
			settings.ShadowBias = &v
		} else {
			settings.ReflectionBias = &v
		}
	case "max_reflections":
		if len(lineTokens) < 2 {
			return fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
		}
		v, err := strconv.ParseUint(lineTokens[1], 10, 32)
		if err != nil {
			return err
		}
		maxReflections := uint32(v)
		settings.MaxReflections = &maxReflections
	}
	return nil
}

// Parse a material library.
func (r *textSceneReader) parseMaterials(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	r.logger.Infof(`parsing material library "%s"`, res.Path())

	scanner := bufio.NewScanner(res)

	var curMaterial *scene.Material
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "newmtl":
			if len(lineTokens) != 2 {
				return r.emitError(res.Path(), lineNum, `unsupported syntax for "newmtl"; expected 1 argument; got %d`, len(lineTokens)-1)
			}

			matName := lineTokens[1]
			if _, exists := r.materials[matName]; exists {
				return r.emitError(res.Path(), lineNum, `material "%s" already defined`, matName)
			}

			curMaterial = scene.DefaultMaterial()
			curMaterial.Name = matName
			if err = r.sc.AddMaterial(curMaterial); err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
			r.materials[matName] = curMaterial
		default:
			if curMaterial == nil {
				return r.emitError(res.Path(), lineNum, `got "%s" without a "newmtl"`, lineTokens[0])
			}

			switch lineTokens[0] {
			case "Ka", "Kd", "Ks":
				var target *types.Color
				switch lineTokens[0] {
				case "Ka":
					target = &curMaterial.Ambient
				case "Kd":
					target = &curMaterial.Diffuse
				case "Ks":
					target = &curMaterial.Specular
				}

				var v types.Vec3
				if v, err = parseVec3(lineTokens); err == nil {
					*target = types.RGB(v[0], v[1], v[2])
				}
			case "Ns":
				curMaterial.Shininess, err = parseFloat32(lineTokens)
			case "Kr":
				curMaterial.Reflectivity, err = parseFloat32(lineTokens)
				if err == nil && (curMaterial.Reflectivity < 0 || curMaterial.Reflectivity > 1) {
					err = fmt.Errorf(`"Kr" must be in [0, 1]; got %g`, curMaterial.Reflectivity)
				}
			case "Ki":
				curMaterial.Intrinsic, err = parseFloat32(lineTokens)
			}

			// Report any errors
			if err != nil {
				return r.emitError(res.Path(), lineNum, "%s", err.Error())
			}
		}
	}

	return scanner.Err()
}

// Given an index for a face coord calculate the proper offset into the
// coord list. Negative indices reference elements from the end of the list.
func selectFaceCoordIndex(indexToken string, coordListLen int, relOffset int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = relOffset + int(index-1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a float scalar value.
func parseFloat32(lineTokens []string) (float32, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseFloat(lineTokens[1], 32)
	if err != nil {
		return 0, err
	}

	return float32(val), nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf(`unsupported syntax for "%s"; expected 3 arguments; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = float32(coord)
	}
	return v, nil
}

// Parse exactly count float arguments.
func parseFloats(lineTokens []string, count int) ([]float32, error) {
	if len(lineTokens)-1 != count {
		return nil, fmt.Errorf(`unsupported syntax for "%s"; expected %d arguments; got %d`, lineTokens[0], count, len(lineTokens)-1)
	}

	out := make([]float32, count)
	for index := range out {
		v, err := strconv.ParseFloat(lineTokens[index+1], 32)
		if err != nil {
			return nil, err
		}
		out[index] = float32(v)
	}
	return out, nil
}
