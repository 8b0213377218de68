package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestAssets_AllWeaponsValid(t *testing.T) {
	require.NotEmpty(t, assets.Weapons.Weapons)
	for _, key := range assets.Weapons.Keys() {
		def := assets.Weapons.Weapons[key]
		assert.False(t, def.Invalid, key)
		assert.Equal(t, key, def.Key)
		assert.NotEqual(t, ShapeUnset, def.Shape, key)
	}

	flame, ok := assets.Weapons.GetWeaponDefinition("flamethrower")
	require.True(t, ok)
	assert.True(t, flame.Stream)
	assert.True(t, flame.IsMelee())
}

func TestAssets_ScenariosReferenceKnownKeys(t *testing.T) {
	require.NotEmpty(t, assets.Scenarios.Scenarios)
	for _, sc := range assets.Scenarios.Scenarios {
		for key := range sc.Weapons {
			_, ok := assets.Weapons.GetWeaponDefinition(key)
			assert.True(t, ok, "%s: weapon %s", sc.Name, key)
		}
		for key := range sc.Perks {
			_, ok := assets.Perks.GetPerkDefinition(key)
			assert.True(t, ok, "%s: perk %s", sc.Name, key)
		}
		assert.Positive(t, sc.Duration)
	}
}

func TestAssets_StartWeaponsExist(t *testing.T) {
	for _, key := range assets.Tuning.Player.StartWeapons {
		_, ok := assets.Weapons.GetWeaponDefinition(key)
		assert.True(t, ok, key)
	}
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "waves:\n  interval: 5\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Waves.Interval)
	assert.Equal(t, 8, cfg.Waves.BaseCount)
	assert.Equal(t, 0.5, cfg.Combat.Orbit.CooldownFloor)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_RejectsLevelAboveCap(t *testing.T) {
	path := writeFile(t, "config.yaml", "combat:\n  max_weapon_level: 15\n")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidTuning)

	path = writeFile(t, "config.yaml", "combat:\n  max_weapon_level: 6\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Combat.MaxWeaponLevel)
}

func TestOrbitCooldown(t *testing.T) {
	o := DefaultConfig().Combat.Orbit
	assert.Equal(t, 4.0, o.OrbitCooldown(1))
	assert.Equal(t, 0.5, o.OrbitCooldown(4.8))
	assert.Equal(t, 10.0, o.OrbitLifetime())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &WeaponConfig{Weapons: map[string]*WeaponDefinition{
		"ok":      {AttackType: "circle"},
		"unset":   {},
		"bad":     {AttackType: "triangle"},
		"nokind":  {AttackType: "projectile", Projectile: &ProjectileDefinition{Kind: "laser"}},
		"ranged":  {AttackType: "projectile", Projectile: &ProjectileDefinition{Kind: "simple"}},
		"missing": nil,
	}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeUnset)
	assert.ErrorIs(t, err, ErrUnknownShape)
	assert.ErrorIs(t, err, ErrUnknownProjectileKind)

	assert.False(t, cfg.Weapons["ok"].Invalid)
	assert.Equal(t, "ok", cfg.Weapons["ok"].Name, "name defaults to key")
	assert.True(t, cfg.Weapons["ok"].IsMelee())
	assert.True(t, cfg.Weapons["unset"].Invalid)
	assert.True(t, cfg.Weapons["bad"].Invalid)
	assert.True(t, cfg.Weapons["nokind"].Invalid)
	assert.True(t, cfg.Weapons["ranged"].IsRanged())
	assert.Equal(t, KindSimple, cfg.Weapons["ranged"].Projectile.ParsedKind)
	assert.NotContains(t, cfg.Weapons, "missing")
}

func TestWeaponScaling(t *testing.T) {
	def := &WeaponDefinition{
		Base:     WeaponStats{Damage: 10, CritChance: 0.9, Range: 3},
		PerLevel: WeaponStats{Damage: 2, CritChance: 0.05, Range: 0.5},
	}
	assert.Equal(t, 10.0, def.GetDamage(1))
	assert.Equal(t, 28.0, def.GetDamage(10))
	assert.Equal(t, 4.0, def.GetRange(3))
	assert.Equal(t, 1.0, def.GetCritChance(5), "crit chance is capped")
}

func TestLoadSettings_DefaultsAndEnv(t *testing.T) {
	t.Setenv("SWEEPTIDE_LOG_LEVEL", "debug")
	t.Setenv("SWEEPTIDE_SWEEP_RUNS", "3")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 3, s.Sweep.Runs)
	assert.Equal(t, 60, s.TPS)
	assert.Equal(t, "assets/weapons.yaml", s.Data.Weapons)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"WARN", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"verbose", "INFO"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogLevel(tt.in).String(), tt.in)
	}
}

func TestMustLoadConfig(t *testing.T) {
	cfg := MustLoadConfig("../../assets/config.yaml")
	assert.Len(t, cfg.Arena.Walls, 3)
	assert.Equal(t, []string{"sword"}, cfg.Player.StartWeapons)

	assert.Panics(t, func() { MustLoadConfig("does-not-exist.yaml") })
}

func TestLoadAll_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadAll(ctx, DataSettings{
		Config:  "../../assets/config.yaml",
		Weapons: "../../assets/weapons.yaml",
		Perks:   "../../assets/perks.yaml",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAll_MissingFile(t *testing.T) {
	_, err := LoadAll(context.Background(), DataSettings{
		Config:  "../../assets/config.yaml",
		Weapons: filepath.Join(t.TempDir(), "missing.yaml"),
		Perks:   "../../assets/perks.yaml",
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
