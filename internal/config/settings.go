// Package config loads process settings and the fireworks tuning file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	loopconfig "github.com/tomz197/fireworks/internal/loop/config"
)

// Settings holds everything the commands read from the environment or a config file.
type Settings struct {
	SSHHost     string
	SSHPort     string
	HostKeyPath string

	WebHost     string
	WebPort     string
	DisplayHost string // Host name shown on the landing page

	TuningFile     string        // Optional YAML file overriding palette and profiles
	LaunchInterval time.Duration // Period of the automatic rocket launcher
	Seed           uint64        // Sampler seed; 0 picks a random one
	Monochrome     bool          // Render shade characters instead of truecolor
	LogLevel       string
}

// envAliases binds keys to the plain environment names deployments already use.
var envAliases = map[string]string{
	"ssh.host":     "SSH_HOST",
	"ssh.port":     "SSH_PORT",
	"ssh.host_key": "SSH_HOST_KEY",
	"web.host":     "WEB_HOST",
	"web.port":     "WEB_PORT",
	"web.display":  "SSH_DISPLAY_HOST",
}

// New returns a viper instance with defaults and environment bindings.
// FIREWORKS_<KEY> (dots become underscores) overrides any key.
func New() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.host_key", "/app/keys/host_key")
	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.display", "your-server.com")
	v.SetDefault("tuning.file", "")
	v.SetDefault("launch.interval", loopconfig.LaunchInterval)
	v.SetDefault("sampler.seed", 0)
	v.SetDefault("render.monochrome", false)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("fireworks")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		envName := "FIREWORKS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName, alias); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	return v, nil
}

// Load reads settings. configFile is optional; when set it must exist.
func Load(configFile string) (Settings, error) {
	v, err := New()
	if err != nil {
		return Settings{}, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}
	return FromViper(v)
}

// FromViper extracts Settings from a configured viper instance.
func FromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		SSHHost:        v.GetString("ssh.host"),
		SSHPort:        v.GetString("ssh.port"),
		HostKeyPath:    v.GetString("ssh.host_key"),
		WebHost:        v.GetString("web.host"),
		WebPort:        v.GetString("web.port"),
		DisplayHost:    v.GetString("web.display"),
		TuningFile:     v.GetString("tuning.file"),
		LaunchInterval: v.GetDuration("launch.interval"),
		Seed:           v.GetUint64("sampler.seed"),
		Monochrome:     v.GetBool("render.monochrome"),
		LogLevel:       v.GetString("log.level"),
	}
	if s.LaunchInterval < 0 {
		return Settings{}, fmt.Errorf("launch.interval must not be negative, got %s", s.LaunchInterval)
	}
	return s, nil
}
