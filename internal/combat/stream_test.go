package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweeptide/internal/config"
	"sweeptide/internal/perks"
)

func flamethrower() *config.WeaponDefinition {
	return &config.WeaponDefinition{
		Key:    "flamethrower",
		Name:   "Flamethrower",
		Type:   "melee",
		Shape:  config.ShapeCone,
		Stream: true,
		Base:   config.WeaponStats{Damage: 9, AttackSpeed: 1, Range: 5},
	}
}

func TestStream_EmitsWholeBurst(t *testing.T) {
	w := newTestWorld()
	w.add(30, 30, 0.4, 1e6) // out of reach
	e := w.engine(nil)
	weapon := NewWeapon(flamethrower(), 10)

	assert.Equal(t, OutcomeSkipped, e.TryAttack(weapon, 0, w.player).Outcome)
	assert.False(t, weapon.Streaming())

	w.add(23, 20, 0.4, 1e6)
	res := e.TryAttack(weapon, 0, w.player)
	require.Equal(t, OutcomeStream, res.Outcome)
	assert.Len(t, res.Launched, 1)
	assert.True(t, weapon.Streaming())

	p, ok := e.Projectiles().Get(res.Launched[0])
	require.True(t, ok)
	assert.InDelta(t, 9.0/45, p.Damage, 1e-9)
	assert.False(t, p.Crit)
	assert.InDelta(t, 5/0.6, p.Speed, 1e-9)

	for i := 1; i <= 40; i++ {
		e.Update(weapon, float64(i)*0.04, w.player)
	}
	assert.False(t, weapon.Streaming())
	assert.Equal(t, 45, e.Projectiles().Len())
}

func TestStream_CooldownFromStart(t *testing.T) {
	w := newTestWorld()
	w.add(23, 20, 0.4, 1e6)
	e := w.engine(nil)
	weapon := NewWeapon(flamethrower(), 10)

	require.Equal(t, OutcomeStream, e.TryAttack(weapon, 0, w.player).Outcome)
	assert.Equal(t, OutcomeSkipped, e.TryAttack(weapon, 1, w.player).Outcome)

	e.Update(weapon, 2, w.player)
	assert.False(t, weapon.Streaming())
	assert.False(t, e.StreamReady(weapon, 2.9))
	assert.True(t, e.StreamReady(weapon, 3))
	assert.Equal(t, OutcomeStream, e.TryAttack(weapon, 3, w.player).Outcome)
}

func TestStream_FlamesBurnEachTargetOnce(t *testing.T) {
	w := newTestWorld()
	target := w.add(22, 20, 0.4, 1e6)
	e := w.engine(stubMods{mult: map[perks.Stat]float64{perks.StatMeleeDamage: 2}})
	weapon := NewWeapon(flamethrower(), 10)

	require.Equal(t, OutcomeStream, e.TryAttack(weapon, 0, w.player).Outcome)
	run(e, 0.7, 0.02)

	hits := w.dummies[target].hits
	require.Len(t, hits, 1)
	assert.InDelta(t, 18.0/45, hits[0], 1e-9)
	assert.Equal(t, 0, e.Projectiles().Len())
}
