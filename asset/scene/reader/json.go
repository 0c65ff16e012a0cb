package reader

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/achilleasa/whitted/asset"
	"github.com/achilleasa/whitted/asset/scene/schema"
	"github.com/achilleasa/whitted/log"
	"github.com/achilleasa/whitted/scene"
)

type jsonSceneReader struct {
	logger log.Logger
}

func newJSONSceneReader() *jsonSceneReader {
	return &jsonSceneReader{
		logger: log.New("json scene reader"),
	}
}

// Read scene definition from a JSON document.
func (r *jsonSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	var doc schema.Document
	decoder := json.NewDecoder(sceneRes)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("[%s] error: %s", sceneRes.Path(), err.Error())
	}

	sc, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("[%s] error: %s", sceneRes.Path(), err.Error())
	}
	if sc.Name == "" {
		sc.Name = sceneRes.Name()
	}

	r.logger.Noticef("parsed scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}
