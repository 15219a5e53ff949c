package main

import (
	"bufio"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/fireworks/internal/config"
	"github.com/tomz197/fireworks/internal/loop"
	"github.com/tomz197/fireworks/internal/object"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "optional config file (yaml, toml or json)")
	pflag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		config.NewLogger("info", "game").Fatal("load settings", "err", err)
	}
	logger := config.NewLogger(settings.LogLevel, "game")

	palette, profiles, err := config.LoadTuning(settings.TuningFile)
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("enable raw mode", "err", err)
	}

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Sampler:        object.NewRandSampler(settings.Seed),
		Palette:        palette,
		Profiles:       &profiles,
		LaunchInterval: settings.LaunchInterval,
		Monochrome:     settings.Monochrome,
	})
	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Fatal("game error", "err", err)
	}
}
