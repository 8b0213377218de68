package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"sweeptide/internal/arena"
	"sweeptide/internal/config"
	"sweeptide/internal/viewer"
)

func main() {
	settingsPath := flag.String("settings", "settings.yaml", "runtime settings file")
	flag.Parse()

	// Load settings first so the log level applies to everything after
	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		os.Exit(1)
	}
	config.SetupLogging(settings.LogLevel)

	data, err := config.LoadAll(context.Background(), settings.Data)
	if err != nil {
		slog.Error("failed to load assets", "error", err)
		os.Exit(1)
	}

	world, err := arena.NewWorld(data, arena.Options{Seed: settings.Seed})
	if err != nil {
		slog.Error("failed to build arena", "error", err)
		os.Exit(1)
	}
	slog.Info("arena ready", "run", world.RunID, "seed", settings.Seed)

	if err := viewer.New(world, data, settings).Run(); err != nil {
		slog.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
