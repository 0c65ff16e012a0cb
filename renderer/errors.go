package renderer

import "errors"

var (
	ErrSceneNotDefined   = errors.New("renderer: no scene defined")
	ErrNoCamera          = errors.New("renderer: no camera defined")
	ErrInvalidFrameDims  = errors.New("renderer: frame dimensions must be > 0")
	ErrInvalidBias       = errors.New("renderer: shadow and reflection bias must be > 0")
	ErrInvalidExposure   = errors.New("renderer: exposure must be > 0")
	ErrUnsupportedOutput = errors.New("renderer: unsupported output format")
	ErrUnknownView       = errors.New("renderer: unknown view")
	ErrAmbiguousOutput   = errors.New("renderer: output pattern must contain %s when rendering multiple views")
	ErrRendererClosed    = errors.New("renderer: renderer has been closed")
	ErrProbeOutsideFrame = errors.New("renderer: probe coordinates outside frame")
)
