package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sweeptide/internal/combat/mocks"
	"sweeptide/internal/events"
)

type mockTargets map[EntityID]Health

func (m mockTargets) Health(id EntityID) Health {
	h, ok := m[id]
	if !ok {
		return nil
	}
	return h
}

func (m mockTargets) Movement(EntityID) MovementControl { return nil }

func TestPipeline_AppliesAndRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mocks.NewMockHealth(ctrl)
	stats := mocks.NewMockStatsTracker(ctrl)

	gomock.InOrder(
		health.EXPECT().CurrentHealth().Return(10.0),
		health.EXPECT().TakeDamage(4.0, true),
		stats.EXPECT().AddDamageDealt(4.0),
		stats.EXPECT().AddWeaponDamage("Blade (Wave)", 4.0),
		health.EXPECT().CurrentHealth().Return(6.0),
	)

	var hits []events.TargetHit
	bus := events.NewBus()
	bus.Subscribe(events.KindTargetHit, func(e events.Event) {
		hits = append(hits, e.(events.TargetHit))
	})

	p := NewPipeline(mockTargets{7: health}, stats, bus)
	res := p.Apply(DamageEvent{Target: 7, Amount: 4, Crit: true, Weapon: "Blade", Tag: TagWave})

	assert.True(t, res.Applied)
	assert.False(t, res.Killed)
	assert.Equal(t, 4.0, res.Amount)
	if assert.Len(t, hits, 1) {
		assert.Equal(t, events.TargetHit{Target: 7, Source: "Blade (Wave)", Amount: 4, Crit: true}, hits[0])
	}
}

func TestPipeline_DeadTargetIsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mocks.NewMockHealth(ctrl)
	stats := mocks.NewMockStatsTracker(ctrl)

	// no TakeDamage and no stats calls are expected
	health.EXPECT().CurrentHealth().Return(0.0)

	p := NewPipeline(mockTargets{1: health}, stats, nil)
	assert.False(t, p.Apply(DamageEvent{Target: 1, Amount: 5, Weapon: "Blade"}).Applied)
	assert.False(t, p.Apply(DamageEvent{Target: 2, Amount: 5, Weapon: "Blade"}).Applied)
}

func TestPipeline_UnnamedSourceSkipsWeaponStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mocks.NewMockHealth(ctrl)
	stats := mocks.NewMockStatsTracker(ctrl)

	health.EXPECT().CurrentHealth().Return(10.0)
	health.EXPECT().TakeDamage(3.0, false)
	health.EXPECT().CurrentHealth().Return(7.0)
	stats.EXPECT().AddDamageDealt(3.0)

	p := NewPipeline(mockTargets{1: health}, stats, nil)
	assert.True(t, p.Apply(DamageEvent{Target: 1, Amount: 3}).Applied)
}

func TestPipeline_DefenceAndDeath(t *testing.T) {
	w := newTestWorld()
	id := w.add(25, 20, 0.4, 10)
	w.dummies[id].taken = 1.5

	var killed []events.TargetKilled
	w.bus.Subscribe(events.KindTargetKilled, func(e events.Event) {
		killed = append(killed, e.(events.TargetKilled))
	})

	p := NewPipeline(w, w.stats, w.bus)
	res := p.Apply(DamageEvent{Target: id, Amount: 8, Weapon: "Blade"})

	assert.True(t, res.Applied)
	assert.True(t, res.Killed)
	assert.InDelta(t, 12, res.Amount, 1e-9)
	assert.Equal(t, 1, w.dummies[id].deaths)
	assert.Len(t, killed, 1)
	assert.InDelta(t, 12, w.stats.byWeapon["Blade"], 1e-9)

	// a second hit on the corpse is a miss
	assert.False(t, p.Apply(DamageEvent{Target: id, Amount: 8, Weapon: "Blade"}).Applied)
	assert.Equal(t, 1, w.dummies[id].deaths)
}

func TestPipeline_NegativeAmountClampsToZero(t *testing.T) {
	w := newTestWorld()
	id := w.add(25, 20, 0.4, 10)

	res := NewPipeline(w, nil, nil).Apply(DamageEvent{Target: id, Amount: -5})
	assert.True(t, res.Applied)
	assert.Equal(t, 0.0, res.Amount)
	assert.Equal(t, 10.0, w.dummies[id].hp)
}

func TestDamageEvent_Label(t *testing.T) {
	assert.Equal(t, "Boomerang", DamageEvent{Weapon: "Boomerang"}.Label())
	assert.Equal(t, "Boomerang (Return)", DamageEvent{Weapon: "Boomerang", Tag: TagReturn}.Label())
}
