package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/fireworks/internal/object"
)

func TestLoadTuningDefaults(t *testing.T) {
	palette, profiles, err := LoadTuning("")
	require.NoError(t, err)

	assert.Equal(t, object.DefaultPalette(), palette)
	assert.Equal(t, object.DefaultProfiles(), profiles)
}

func TestParseTuningOverrides(t *testing.T) {
	palette, profiles, err := ParseTuning([]byte(`
palette: ["#ff0000", "#00ff00"]
profiles:
  click_burst:
    count: {min: 10, max: 10}
    gravity: 0.5
`))
	require.NoError(t, err)

	require.Len(t, palette, 2)
	r, g, b := palette[1].RGB255()
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})

	assert.Equal(t, object.Fixed(10), profiles.ClickBurst.Count)
	assert.Equal(t, 0.5, profiles.ClickBurst.Gravity)
	assert.Equal(t, object.DefaultProfiles().ClickBurst.Speed, profiles.ClickBurst.Speed, "unset keys keep defaults")
	assert.Equal(t, object.DefaultProfiles().RocketBurst, profiles.RocketBurst)
}

func TestParseTuningErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "palette: [", "decode tuning"},
		{"bad color", `palette: ["#zzzzzz"]`, "#zzzzzz"},
		{"negative count", "profiles:\n  ambient:\n    count: {min: -1, max: 2}", "ambient: count"},
		{"zero life", "profiles:\n  trail_spark:\n    life: {min: 0, max: 0}", "trail_spark: life"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseTuning([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadTuningFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles:\n  ambient:\n    count: {min: 5, max: 5}\n"), 0o600))

	_, profiles, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, object.Fixed(5), profiles.Ambient.Count)

	_, _, err = LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read tuning file")
}

func TestDefaultTuningRoundTripsPalette(t *testing.T) {
	palette, err := object.ParsePalette(DefaultTuning().Palette)
	require.NoError(t, err)
	for i, c := range object.DefaultPalette() {
		r1, g1, b1 := c.RGB255()
		r2, g2, b2 := palette[i].RGB255()
		assert.Equal(t, [3]uint8{r1, g1, b1}, [3]uint8{r2, g2, b2})
	}
}
