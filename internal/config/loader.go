package config

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Data bundles every asset the arena needs
type Data struct {
	Tuning    *Config
	Weapons   *WeaponConfig
	Perks     *PerkConfig
	Scenarios *ScenarioConfig
}

// LoadAll reads the asset files concurrently. The scenario file is optional
// for the viewer, so an empty path skips it. Loaders that have not started
// yet are skipped once ctx is done or another loader fails.
func LoadAll(ctx context.Context, paths DataSettings) (*Data, error) {
	var data Data
	g, ctx := errgroup.WithContext(ctx)
	load := func(fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn()
		})
	}

	load(func() error {
		cfg, err := LoadConfig(paths.Config)
		if err != nil {
			return err
		}
		data.Tuning = cfg
		return nil
	})
	load(func() error {
		cfg, err := LoadWeaponConfig(paths.Weapons)
		if err != nil {
			return err
		}
		data.Weapons = cfg
		return nil
	})
	load(func() error {
		cfg, err := LoadPerkConfig(paths.Perks)
		if err != nil {
			return err
		}
		data.Perks = cfg
		return nil
	})
	if paths.Scenarios != "" {
		load(func() error {
			cfg, err := LoadScenarioConfig(paths.Scenarios)
			if err != nil {
				return err
			}
			data.Scenarios = cfg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	if data.Scenarios == nil {
		data.Scenarios = &ScenarioConfig{}
	}

	slog.Info("assets loaded",
		"weapons", len(data.Weapons.Weapons),
		"perks", len(data.Perks.Perks),
		"scenarios", len(data.Scenarios.Scenarios))
	return &data, nil
}
