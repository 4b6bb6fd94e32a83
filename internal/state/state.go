package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agusx1211/perlin-noise/internal/generator"
	"github.com/agusx1211/perlin-noise/internal/mixer"
	"github.com/agusx1211/perlin-noise/internal/render"
)

// CustomPreset names any state not produced by a preset.
const CustomPreset = "Custom"

// State is everything the daemon persists and publishes. Params are
// embedded so the JSON is flat, which keeps Home Assistant value
// templates simple.
type State struct {
	generator.Params
	Coloring render.Coloring `json:"coloring"`
	Preset   string          `json:"preset"`
	Power    bool            `json:"power"`
	Volume   float64         `json:"volume"`
	Pitch    float64         `json:"pitch"`
	Bass     float64         `json:"bass"`
	Treble   float64         `json:"treble"`
}

func Default() State {
	return State{
		Params:   generator.DefaultParams(),
		Coloring: render.Simple,
		Preset:   CustomPreset,
		Volume:   0.5,
		Pitch:    mixer.DefaultPitch,
	}
}

// Load reads a state file. Fields missing from the file keep their
// defaults; an invalid algorithm or coloring is an error.
func Load(path string) (State, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse state: %w", err)
	}
	if err := s.Params.Validate(); err != nil {
		return Default(), fmt.Errorf("saved params: %w", err)
	}
	if _, err := render.ParseColoring(string(s.Coloring)); err != nil {
		return Default(), fmt.Errorf("saved coloring: %w", err)
	}
	return s, nil
}

// Save writes the state through a temporary file so a crash never leaves
// a truncated file behind.
func Save(path string, s State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Apply pushes the audio settings to m.
func (s State) Apply(m *mixer.Mixer) {
	m.SetPower(s.Power)
	m.SetVolume(s.Volume)
	m.SetPitch(s.Pitch)
	m.SetBass(s.Bass)
	m.SetTreble(s.Treble)
}
