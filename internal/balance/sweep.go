// Package balance runs headless arenas over scenario loadouts and reports
// how much damage each loadout deals.
package balance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"sweeptide/internal/arena"
	"sweeptide/internal/config"
	"sweeptide/internal/threading/core"
)

// TickRate is the fixed simulation rate of a sweep run
const TickRate = 60

var ErrNoScenarios = errors.New("no scenarios to run")

// Result is the mean outcome of one scenario over every run
type Result struct {
	Scenario     string
	Runs         int
	Deaths       int
	MeanDPS      float64
	MeanKills    float64
	MeanScore    float64
	WeaponDamage map[string]float64 // mean damage per label
}

// TopWeapons returns the weapon labels ordered by mean damage
func (r Result) TopWeapons() []string {
	labels := make([]string, 0, len(r.WeaponDamage))
	for label := range r.WeaponDamage {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if r.WeaponDamage[labels[i]] != r.WeaponDamage[labels[j]] {
			return r.WeaponDamage[labels[i]] > r.WeaponDamage[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}

// Report is the output of a sweep
type Report struct {
	ID      uuid.UUID
	Results []Result
	Elapsed time.Duration
	Skipped int64
}

type runOutcome struct {
	dps      float64
	kills    int
	score    int
	dead     bool
	byWeapon map[string]float64
}

// Run simulates every scenario runs times on a pool of workers. Run i of a
// scenario uses seed baseSeed+i, so a sweep is reproducible. A cancelled
// context stops outstanding runs; the results then cover fewer runs.
func Run(ctx context.Context, data *config.Data, scenarios []config.Scenario, runs, workers int, baseSeed uint64) (*Report, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	if err := Validate(data, scenarios); err != nil {
		return nil, err
	}
	if runs <= 0 {
		runs = 1
	}

	report := &Report{ID: uuid.New()}
	start := time.Now()
	slog.Info("sweep started", "sweep", report.ID, "scenarios", len(scenarios), "runs", runs)

	pool := core.NewWorkerPool(workers)
	pool.Start()
	defer pool.Stop()

	for _, sc := range scenarios {
		outcomes := make([]*runOutcome, runs)
		var (
			mu   sync.Mutex
			errs []error
		)
		pool.ParallelForWithContext(ctx, 0, runs, func(i int) {
			out, err := simulate(data, sc, baseSeed+uint64(i))
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			outcomes[i] = out
		})
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		if err := ctx.Err(); err != nil {
			slog.Warn("sweep cancelled", "sweep", report.ID, "scenario", sc.Name)
		}
		report.Results = append(report.Results, summarize(sc.Name, outcomes))
	}

	report.Elapsed = time.Since(start)
	report.Skipped = pool.Skipped()
	slog.Info("sweep finished", "sweep", report.ID, "elapsed", report.Elapsed, "completed", pool.Completed())
	return report, nil
}

// Validate checks that every weapon and perk a scenario names exists
func Validate(data *config.Data, scenarios []config.Scenario) error {
	if data == nil || data.Weapons == nil || data.Perks == nil || data.Tuning == nil {
		return arena.ErrMissingData
	}
	var errs []error
	for _, sc := range scenarios {
		if len(sc.Weapons) == 0 {
			errs = append(errs, fmt.Errorf("scenario %s: no weapons", sc.Name))
		}
		for key := range sc.Weapons {
			if def, ok := data.Weapons.GetWeaponDefinition(key); !ok || def.Invalid {
				errs = append(errs, fmt.Errorf("scenario %s: %w: %s", sc.Name, arena.ErrUnknownWeapon, key))
			}
		}
		for key := range sc.Perks {
			if _, ok := data.Perks.GetPerkDefinition(key); !ok {
				errs = append(errs, fmt.Errorf("scenario %s: %w: %s", sc.Name, arena.ErrUnknownPerk, key))
			}
		}
	}
	return errors.Join(errs...)
}

// simulate plays one scenario to its duration or the player's death
func simulate(data *config.Data, sc config.Scenario, seed uint64) (*runOutcome, error) {
	world, err := arena.NewWorld(data, arena.Options{
		Seed:         seed,
		WaveSize:     sc.WaveSize,
		EnemyHealth:  sc.EnemyHP,
		SpawnRange:   sc.SpawnRange,
		StartWeapons: []string{},
	})
	if err != nil {
		return nil, err
	}

	for _, key := range sortedKeys(sc.Weapons) {
		w, err := world.AddWeapon(key)
		if err != nil {
			return nil, err
		}
		w.SetLevel(sc.Weapons[key])
	}
	for _, key := range sortedKeys(sc.Perks) {
		if _, err := world.SetPerkLevel(key, sc.Perks[key]); err != nil {
			return nil, err
		}
	}

	const dt = 1.0 / TickRate
	ticks := int(sc.Duration * TickRate)
	for i := 0; i < ticks && !world.Over(); i++ {
		world.Update(dt)
	}

	stats := world.Stats()
	out := &runOutcome{
		kills:    stats.Kills(),
		score:    stats.Score(),
		dead:     world.Over(),
		byWeapon: make(map[string]float64),
	}
	if t := stats.TimePlayed(); t > 0 {
		out.dps = stats.DamageDealt() / t
	}
	for _, ws := range stats.TopWeapons(-1) {
		out.byWeapon[ws.Label] = ws.Damage
	}
	world.Monitor().LogAlerts(2000)
	return out, nil
}

func summarize(name string, outcomes []*runOutcome) Result {
	res := Result{Scenario: name, WeaponDamage: make(map[string]float64)}
	for _, out := range outcomes {
		if out == nil {
			continue
		}
		res.Runs++
		res.MeanDPS += out.dps
		res.MeanKills += float64(out.kills)
		res.MeanScore += float64(out.score)
		if out.dead {
			res.Deaths++
		}
		for label, dmg := range out.byWeapon {
			res.WeaponDamage[label] += dmg
		}
	}
	if res.Runs == 0 {
		return res
	}
	n := float64(res.Runs)
	res.MeanDPS /= n
	res.MeanKills /= n
	res.MeanScore /= n
	for label := range res.WeaponDamage {
		res.WeaponDamage[label] /= n
	}
	return res
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
