package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweeptide/internal/arena"
	"sweeptide/internal/config"
)

func sweepData(t *testing.T) *config.Data {
	t.Helper()
	weapons := &config.WeaponConfig{Weapons: map[string]*config.WeaponDefinition{
		"sword": {
			Name:       "Sword",
			Type:       "melee",
			AttackType: "circle",
			Base:       config.WeaponStats{Damage: 10, AttackSpeed: 2, Range: 3, CritMultiplier: 2},
			PerLevel:   config.WeaponStats{Damage: 5},
		},
		"pistol": {
			Name:       "Pistol",
			AttackType: "projectile",
			Base:       config.WeaponStats{Damage: 6, AttackSpeed: 2, Range: 12, CritChance: 0.1, CritMultiplier: 2},
			Projectile: &config.ProjectileDefinition{Kind: "simple", Speed: 15},
		},
	}}
	require.NoError(t, weapons.Validate())

	perkSet := &config.PerkConfig{Perks: map[string]*config.PerkDefinition{
		"might": {Key: "might", Name: "Might", MaxLevel: 5, Effects: config.PerkEffects{DamageMultiplier: 0.2}},
	}}
	return &config.Data{Tuning: config.DefaultConfig(), Weapons: weapons, Perks: perkSet}
}

func scenarios() []config.Scenario {
	return []config.Scenario{
		{Name: "sword", Weapons: map[string]int{"sword": 1}, Duration: 4, WaveSize: 4, EnemyHP: 20, SpawnRange: 3},
		{
			Name:       "mixed",
			Weapons:    map[string]int{"sword": 3, "pistol": 1},
			Perks:      map[string]int{"might": 2},
			Duration:   4,
			WaveSize:   4,
			EnemyHP:    20,
			SpawnRange: 3,
		},
	}
}

func TestRun_Reproducible(t *testing.T) {
	data := sweepData(t)

	first, err := Run(context.Background(), data, scenarios(), 4, 2, 10)
	require.NoError(t, err)
	second, err := Run(context.Background(), data, scenarios(), 4, 3, 10)
	require.NoError(t, err)

	require.Len(t, first.Results, 2)
	assert.NotEqual(t, first.ID, second.ID)
	for i := range first.Results {
		assert.Equal(t, 4, first.Results[i].Runs)
		assert.Equal(t, first.Results[i].MeanKills, second.Results[i].MeanKills)
		assert.InDelta(t, first.Results[i].MeanDPS, second.Results[i].MeanDPS, 1e-9)
	}
}

func TestRun_StrongerLoadoutDealsMore(t *testing.T) {
	report, err := Run(context.Background(), sweepData(t), scenarios(), 3, 2, 1)
	require.NoError(t, err)

	sword, mixed := report.Results[0], report.Results[1]
	assert.Positive(t, sword.MeanDPS)
	assert.Greater(t, mixed.MeanDPS, sword.MeanDPS)
	assert.Equal(t, "Sword", sword.TopWeapons()[0])
	assert.Equal(t, "Sword", mixed.TopWeapons()[0])
	assert.Zero(t, mixed.Deaths)
}

func TestRun_Validation(t *testing.T) {
	data := sweepData(t)

	_, err := Run(context.Background(), data, nil, 1, 1, 1)
	assert.ErrorIs(t, err, ErrNoScenarios)

	bad := []config.Scenario{{Name: "bad", Weapons: map[string]int{"laser": 1}, Perks: map[string]int{"luck": 1}}}
	_, err = Run(context.Background(), data, bad, 1, 1, 1)
	assert.ErrorIs(t, err, arena.ErrUnknownWeapon)
	assert.ErrorIs(t, err, arena.ErrUnknownPerk)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, sweepData(t), scenarios(), 4, 2, 1)
	require.NoError(t, err)
	assert.Zero(t, report.Results[0].Runs)
	assert.Positive(t, report.Skipped)
}
