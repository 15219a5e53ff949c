package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/fireworks/internal/object"
)

// Tuning is the on-disk look of the fireworks: palette and emission profiles.
// Keys missing from the file keep their default values.
type Tuning struct {
	Palette  []string        `yaml:"palette"`
	Profiles object.Profiles `yaml:"profiles"`
}

// DefaultTuning returns the built-in palette and profiles.
func DefaultTuning() Tuning {
	pal := object.DefaultPalette()
	hexes := make([]string, len(pal))
	for i, c := range pal {
		hexes[i] = c.Hex()
	}
	return Tuning{
		Palette:  hexes,
		Profiles: object.DefaultProfiles(),
	}
}

// ParseTuning decodes YAML over the defaults and validates the result.
func ParseTuning(data []byte) (object.Palette, object.Profiles, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, object.Profiles{}, fmt.Errorf("decode tuning: %w", err)
	}

	palette, err := object.ParsePalette(t.Palette)
	if err != nil {
		return nil, object.Profiles{}, err
	}
	if err := validateProfiles(t.Profiles); err != nil {
		return nil, object.Profiles{}, err
	}
	return palette, t.Profiles, nil
}

// LoadTuning reads a tuning file. An empty path returns the defaults.
func LoadTuning(path string) (object.Palette, object.Profiles, error) {
	if path == "" {
		return object.DefaultPalette(), object.DefaultProfiles(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, object.Profiles{}, fmt.Errorf("read tuning file: %w", err)
	}
	palette, profiles, err := ParseTuning(data)
	if err != nil {
		return nil, object.Profiles{}, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return palette, profiles, nil
}

func validateProfiles(p object.Profiles) error {
	named := []struct {
		name string
		prof object.Profile
	}{
		{"trail_spark", p.TrailSpark},
		{"rocket_burst", p.RocketBurst},
		{"click_burst", p.ClickBurst},
		{"ambient", p.Ambient},
	}
	var errs []error
	for _, n := range named {
		if n.prof.Count.Min < 0 || n.prof.Count.Max < 0 {
			errs = append(errs, fmt.Errorf("%s: count must not be negative", n.name))
		}
		if n.prof.Life.Min <= 0 || n.prof.Life.Max <= 0 {
			errs = append(errs, fmt.Errorf("%s: life must be positive", n.name))
		}
	}
	return errors.Join(errs...)
}
