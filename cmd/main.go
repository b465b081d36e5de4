package main

import (
	"context"
	"net/http"
	"os"

	"github.com/retardedwizard/muxamp/internal/providers"
	"github.com/retardedwizard/muxamp/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	registry := providers.NewRegistry()
	registry.Register(providers.NewYouTube(config.Providers.YouTube, http.DefaultClient))
	registry.Register(providers.NewSoundCloud(config.Providers.SoundCloud, http.DefaultClient))

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Registry: registry,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "muxamp",
		Usage:    "Resolve, save, and play playlists shared as links",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
