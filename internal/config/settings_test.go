package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "::", s.SSHHost)
	assert.Equal(t, "2222", s.SSHPort)
	assert.Equal(t, "/app/keys/host_key", s.HostKeyPath)
	assert.Equal(t, "0.0.0.0", s.WebHost)
	assert.Equal(t, "8080", s.WebPort)
	assert.Equal(t, "your-server.com", s.DisplayHost)
	assert.Equal(t, 1800*time.Millisecond, s.LaunchInterval)
	assert.Equal(t, uint64(0), s.Seed)
	assert.False(t, s.Monochrome)
	assert.Equal(t, "info", s.LogLevel)
	assert.Empty(t, s.TuningFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FIREWORKS_LAUNCH_INTERVAL", "750ms")
	t.Setenv("FIREWORKS_SAMPLER_SEED", "42")
	t.Setenv("FIREWORKS_RENDER_MONOCHROME", "true")
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("SSH_DISPLAY_HOST", "sky.example.com")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, s.LaunchInterval)
	assert.Equal(t, uint64(42), s.Seed)
	assert.True(t, s.Monochrome)
	assert.Equal(t, "2323", s.SSHPort)
	assert.Equal(t, "sky.example.com", s.DisplayHost)
}

func TestPrefixedEnvBeatsAlias(t *testing.T) {
	t.Setenv("FIREWORKS_SSH_PORT", "1111")
	t.Setenv("SSH_PORT", "2222")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "1111", s.SSHPort)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fireworks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
launch:
  interval: 3s
log:
  level: debug
tuning:
  file: /etc/fireworks/tuning.yaml
`), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, s.LaunchInterval)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "/etc/fireworks/tuning.yaml", s.TuningFile)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNegativeInterval(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	v.Set("launch.interval", "-1s")

	_, err = FromViper(v)
	assert.ErrorContains(t, err, "launch.interval")
}

func TestNewBindsEveryAlias(t *testing.T) {
	for key, alias := range envAliases {
		t.Setenv(alias, "from-"+alias)
		v, err := New()
		require.NoError(t, err)
		assert.Equal(t, "from-"+alias, v.GetString(key), key)
	}
}
