package writer

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/achilleasa/whitted/asset/scene/schema"
	"github.com/achilleasa/whitted/log"
	"github.com/achilleasa/whitted/scene"
)

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write scene definition
	Write(*scene.Scene) error
}

type jsonSceneWriter struct {
	logger log.Logger
	out    io.Writer
}

// Create a writer that serializes scenes as indented JSON documents.
func NewJSONWriter(out io.Writer) Writer {
	return &jsonSceneWriter{
		logger: log.New("json scene writer"),
		out:    out,
	}
}

func (w *jsonSceneWriter) Write(sc *scene.Scene) error {
	start := time.Now()

	doc, err := schema.FromScene(sc)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(doc); err != nil {
		return err
	}

	w.logger.Infof("serialized scene %q in %d ms", sc.Name, time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Write scene to a JSON file.
func WriteScene(sc *scene.Scene, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = NewJSONWriter(f).Write(sc); err != nil {
		return err
	}
	return f.Close()
}
