package reader

import (
	"fmt"

	"github.com/achilleasa/whitted/asset"
	"github.com/achilleasa/whitted/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Select a reader for the resource based on its extension.
func ForResource(res *asset.Resource) (Reader, error) {
	switch res.Ext() {
	case ".scene", ".obj":
		return newTextSceneReader(), nil
	case ".json":
		return newJSONSceneReader(), nil
	}
	return nil, fmt.Errorf("reader: unsupported scene format %q", res.Ext())
}

// Read scene from a local file or http(s) URL.
func ReadScene(filename string) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	reader, err := ForResource(res)
	if err != nil {
		return nil, err
	}
	return reader.Read(res)
}
