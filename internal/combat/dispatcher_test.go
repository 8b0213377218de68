package combat

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweeptide/internal/config"
	"sweeptide/internal/events"
	"sweeptide/internal/mathutil"
	"sweeptide/internal/perks"
)

func TestTryAttack_DamageWithPerkStack(t *testing.T) {
	w := newTestWorld()
	target := w.add(21, 20, 0.4, 1000)

	def := meleeDef(config.ShapeCircle, 10, 2)
	def.PerLevel.Damage = 2
	weapon := NewWeapon(def, 10)
	weapon.SetLevel(3)

	sharp := &config.PerkDefinition{Key: "sharp", Name: "Sharp", MaxLevel: 5, Effects: config.PerkEffects{DamageMultiplier: 0.10}}
	coll := perks.NewCollection(50, nil, w.bus)
	for i := 0; i < 2; i++ {
		_, err := coll.Add(sharp)
		require.NoError(t, err)
	}

	e := w.engine(perks.NewAggregator(coll, nil, config.DefaultConfig().Perks))
	res := e.TryAttack(weapon, 0, w.player)

	assert.Equal(t, OutcomeMelee, res.Outcome)
	assert.False(t, res.Crit)
	assert.InDelta(t, 16.8, res.Damage, 1e-9)
	require.Len(t, w.dummies[target].hits, 1)
	assert.InDelta(t, 16.8, w.dummies[target].hits[0], 1e-9)
	assert.InDelta(t, 16.8, w.stats.byWeapon["Blade"], 1e-9)
}

func TestDamage_SpecificMultiplierByWeaponType(t *testing.T) {
	w := newTestWorld()
	mods := stubMods{mult: map[perks.Stat]float64{
		perks.StatDamage:       1.2,
		perks.StatMeleeDamage:  1.4,
		perks.StatRangedDamage: 2,
	}}
	e := w.engine(mods)

	melee := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 10)
	ranged := NewWeapon(rangedDef(config.KindSimple, 10), 10)
	assert.InDelta(t, 16.8, e.Damage(melee), 1e-9)
	assert.InDelta(t, 24, e.Damage(ranged), 1e-9)

	mislabeled := rangedDef(config.KindSimple, 10)
	mislabeled.Type = "melee"
	assert.False(t, NewWeapon(mislabeled, 10).IsMelee())
	assert.InDelta(t, 24, e.Damage(NewWeapon(mislabeled, 10)), 1e-9)

	flame := meleeDef(config.ShapeCone, 10, 2)
	flame.Type = ""
	flame.Stream = true
	assert.InDelta(t, 16.8, e.Damage(NewWeapon(flame, 10)), 1e-9)
}

func TestRange_OnlyMeleeScales(t *testing.T) {
	w := newTestWorld()
	e := w.engine(stubMods{mult: map[perks.Stat]float64{perks.StatAttackRange: 1.5}})

	assert.InDelta(t, 3, e.Range(NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 10)), 1e-9)
	assert.InDelta(t, 20, e.Range(NewWeapon(rangedDef(config.KindSimple, 10), 10)), 1e-9)
}

func TestRollDamage_CritRate(t *testing.T) {
	w := newTestWorld()
	def := meleeDef(config.ShapeCircle, 10, 2)
	def.Base.CritChance = 0.05
	weapon := NewWeapon(def, 10)

	eye := &config.PerkDefinition{Key: "eye", Name: "Eye", MaxLevel: 5, Effects: config.PerkEffects{CritChanceBonus: 0.20}}
	coll := perks.NewCollection(50, nil, nil)
	_, err := coll.Add(eye)
	require.NoError(t, err)

	e := NewEngine(Deps{
		Spatial: w.grid,
		Targets: w,
		Mods:    perks.NewAggregator(coll, nil, config.DefaultConfig().Perks),
		Rand:    rand.New(rand.NewPCG(42, 7)),
		Tuning:  config.DefaultConfig().Combat,
	})
	require.InDelta(t, 0.25, e.CritChance(weapon), 1e-9)

	const rolls = 10000
	crits := 0
	for i := 0; i < rolls; i++ {
		base, dealt, crit := e.rollDamage(weapon)
		if crit {
			crits++
			assert.InDelta(t, base*2, dealt, 1e-9)
		}
	}
	assert.InDelta(t, 0.25, float64(crits)/rolls, 0.015)
}

func TestTryAttack_Cooldown(t *testing.T) {
	w := newTestWorld()
	w.add(21, 20, 0.4, 1000)
	e := w.engine(nil)
	weapon := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 10)

	assert.InDelta(t, 0.5, e.Cooldown(weapon), 1e-9)
	assert.Equal(t, OutcomeMelee, e.TryAttack(weapon, 0, w.player).Outcome)
	assert.Equal(t, OutcomeSkipped, e.TryAttack(weapon, 0.3, w.player).Outcome)
	assert.Equal(t, OutcomeMelee, e.TryAttack(weapon, 0.5, w.player).Outcome)
	assert.Equal(t, 0.5, weapon.LastAttack())
}

func TestTryAttack_NoTargetKeepsCooldown(t *testing.T) {
	w := newTestWorld()
	far := w.add(30, 20, 0.4, 1000)
	e := w.engine(nil)
	weapon := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 10)

	fired := 0
	w.bus.Subscribe(events.KindWeaponFired, func(events.Event) { fired++ })

	res := e.TryAttack(weapon, 1, w.player)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.True(t, math.IsInf(weapon.LastAttack(), -1))
	assert.Zero(t, fired)

	w.grid.Move(far, mathutil.V2(21, 20))
	res = e.TryAttack(weapon, 1, w.player)
	assert.Equal(t, OutcomeMelee, res.Outcome)
	assert.Equal(t, far, res.Target)
	assert.Equal(t, 1, fired)
}

func TestTryAttack_DisabledWeapons(t *testing.T) {
	w := newTestWorld()
	w.add(21, 20, 0.4, 1000)
	e := w.engine(nil)

	invalid := meleeDef(config.ShapeCircle, 10, 2)
	invalid.Invalid = true
	unset := meleeDef(config.ShapeUnset, 10, 2)
	noKind := rangedDef(config.KindSimple, 10)
	noKind.Projectile = nil

	for _, def := range []*config.WeaponDefinition{invalid, unset, noKind} {
		assert.Equal(t, OutcomeSkipped, e.TryAttack(NewWeapon(def, 10), 0, w.player).Outcome)
	}
	assert.Equal(t, OutcomeSkipped, e.TryAttack(nil, 0, w.player).Outcome)
	assert.Equal(t, OutcomeSkipped, e.TryAttack(NewWeapon(nil, 10), 0, w.player).Outcome)
}

func TestTryAttack_ShockwaveEveryTenthSwing(t *testing.T) {
	w := newTestWorld()
	near := w.add(21, 20, 0.4, 1e6)
	outer := w.add(24, 20, 0.4, 1e6)
	e := w.engine(stubMods{flags: map[perks.Flag]bool{perks.FlagKnockback: true}})
	weapon := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 10)

	for i := 1; i <= 9; i++ {
		res := e.TryAttack(weapon, float64(i), w.player)
		require.Equal(t, OutcomeMelee, res.Outcome, "swing %d", i)
	}
	assert.Empty(t, w.dummies[outer].hits)

	res := e.TryAttack(weapon, 10, w.player)
	assert.Equal(t, OutcomeShockwave, res.Outcome)
	assert.Equal(t, 2, res.Hits)
	assert.Equal(t, 0, weapon.MeleeCount())
	assert.Len(t, w.dummies[near].hits, 10)
	assert.Len(t, w.dummies[outer].hits, 1)
	assert.InDelta(t, 20, w.stats.byWeapon["Blade (Wave)"], 1e-9)

	kb, ok := w.knocked[outer]
	require.True(t, ok)
	assert.InDelta(t, 1, kb.dir.X, 1e-9)
	assert.Equal(t, 8.0, kb.force)
}

func TestTryAttack_ShockwaveKeepsCritDamageButNotTheFlag(t *testing.T) {
	w := newTestWorld()
	near := w.add(21, 20, 0.4, 1e6)
	e := w.engine(stubMods{flags: map[perks.Flag]bool{perks.FlagKnockback: true}})
	def := meleeDef(config.ShapeCircle, 10, 2)
	def.Base.CritChance = 1
	weapon := NewWeapon(def, 10)

	for i := 1; i <= 9; i++ {
		require.True(t, e.TryAttack(weapon, float64(i), w.player).Crit)
	}
	res := e.TryAttack(weapon, 10, w.player)
	require.Equal(t, OutcomeShockwave, res.Outcome)
	assert.False(t, res.Crit)
	assert.InDelta(t, 20, res.Damage, 1e-9)
	assert.Equal(t, 9, w.dummies[near].crits)
	assert.InDelta(t, 20, w.dummies[near].hits[9], 1e-9)
	assert.InDelta(t, 20, w.stats.byWeapon["Blade (Wave)"], 1e-9)
}

func TestTryAttack_SwingsCountWithoutKnockback(t *testing.T) {
	w := newTestWorld()
	w.add(21, 20, 0.4, 1e6)
	e := w.engine(nil)
	weapon := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 10)

	for i := 1; i <= 12; i++ {
		assert.Equal(t, OutcomeMelee, e.TryAttack(weapon, float64(i), w.player).Outcome)
	}
	assert.Equal(t, 12, weapon.MeleeCount())
	assert.Empty(t, w.knocked)
}

func TestWeapon_Levels(t *testing.T) {
	weapon := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 3)
	assert.True(t, weapon.LevelUp())
	assert.True(t, weapon.LevelUp())
	assert.False(t, weapon.LevelUp())
	assert.Equal(t, 3, weapon.Level())

	weapon.SetLevel(0)
	assert.Equal(t, 1, weapon.Level())
	weapon.SetLevel(99)
	assert.Equal(t, 3, weapon.Level())
}

func TestWeapon_LevelNeverExceedsCap(t *testing.T) {
	weapon := NewWeapon(meleeDef(config.ShapeCircle, 10, 2), 15)
	assert.Equal(t, MaxWeaponLevel, weapon.MaxLevel())

	for weapon.LevelUp() {
	}
	assert.Equal(t, MaxWeaponLevel, weapon.Level())
	weapon.SetLevel(99)
	assert.Equal(t, MaxWeaponLevel, weapon.Level())

	assert.Equal(t, MaxWeaponLevel, NewWeapon(nil, 0).MaxLevel())
}
