package server

import (
	"github.com/tomz197/fireworks/internal/scene"
)

// SkyState holds the shared scene and frame counter.
// It is owned by the Server goroutine; sessions only read it through View.
type SkyState struct {
	Scene  *scene.Scene
	Frames uint64 // Frames advanced since start
}

// NewSkyState creates an empty sky.
func NewSkyState(opts scene.Options) *SkyState {
	return &SkyState{Scene: scene.New(opts)}
}

// Advance runs one frame without drawing. Sessions draw the result themselves.
func (w *SkyState) Advance() {
	w.Scene.Step()
	w.Frames++
}
