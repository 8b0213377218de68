// Package monitoring keeps cheap counters about the simulation loop so the
// viewer HUD and the balance sweep can report on it.
package monitoring

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// TickMonitor tracks simulation tick timing and combat counters. Counters
// are atomics so the viewer can read them while the simulation writes.
type TickMonitor struct {
	tickCount atomic.Uint64
	tickTime  atomic.Uint64 // nanoseconds, last tick
	worstTick atomic.Uint64

	enemiesAlive      atomic.Int32
	projectilesActive atomic.Int32
	hits              atomic.Uint64
	kills             atomic.Uint64

	mutex       sync.RWMutex
	avgTickTime float64 // nanoseconds, running mean
	startTime   time.Time

	budget time.Duration
}

// NewTickMonitor creates a monitor that flags ticks slower than budget.
// budget <= 0 uses one frame at 60 TPS.
func NewTickMonitor(budget time.Duration) *TickMonitor {
	if budget <= 0 {
		budget = time.Second / 60
	}
	return &TickMonitor{startTime: time.Now(), budget: budget}
}

// TickTimer measures one simulation tick
type TickTimer struct {
	monitor   *TickMonitor
	startTime time.Time
}

// StartTick begins timing a tick
func (tm *TickMonitor) StartTick() *TickTimer {
	return &TickTimer{monitor: tm, startTime: time.Now()}
}

// EndTick records the elapsed time of the tick and returns it
func (tt *TickTimer) EndTick() time.Duration {
	elapsed := time.Since(tt.startTime)
	tt.monitor.record(elapsed)
	return elapsed
}

func (tm *TickMonitor) record(elapsed time.Duration) {
	ns := uint64(elapsed.Nanoseconds())
	tm.tickTime.Store(ns)
	n := tm.tickCount.Add(1)
	for {
		worst := tm.worstTick.Load()
		if ns <= worst || tm.worstTick.CompareAndSwap(worst, ns) {
			break
		}
	}

	tm.mutex.Lock()
	tm.avgTickTime += (float64(ns) - tm.avgTickTime) / float64(n)
	tm.mutex.Unlock()
}

// UpdateCombatMetrics stores the live entity counts of the last tick
func (tm *TickMonitor) UpdateCombatMetrics(enemies, projectiles int) {
	tm.enemiesAlive.Store(int32(enemies))
	tm.projectilesActive.Store(int32(projectiles))
}

// RecordHit counts one damage application
func (tm *TickMonitor) RecordHit() {
	tm.hits.Add(1)
}

// RecordKill counts one enemy death
func (tm *TickMonitor) RecordKill() {
	tm.kills.Add(1)
}

// Metrics is a snapshot of the monitor
type Metrics struct {
	Ticks             uint64
	LastTick          time.Duration
	AverageTick       time.Duration
	WorstTick         time.Duration
	EnemiesAlive      int32
	ProjectilesActive int32
	Hits              uint64
	Kills             uint64
	Uptime            time.Duration
}

// GetCurrentMetrics returns a snapshot of every counter
func (tm *TickMonitor) GetCurrentMetrics() Metrics {
	tm.mutex.RLock()
	avg := tm.avgTickTime
	start := tm.startTime
	tm.mutex.RUnlock()

	return Metrics{
		Ticks:             tm.tickCount.Load(),
		LastTick:          time.Duration(tm.tickTime.Load()),
		AverageTick:       time.Duration(avg),
		WorstTick:         time.Duration(tm.worstTick.Load()),
		EnemiesAlive:      tm.enemiesAlive.Load(),
		ProjectilesActive: tm.projectilesActive.Load(),
		Hits:              tm.hits.Load(),
		Kills:             tm.kills.Load(),
		Uptime:            time.Since(start),
	}
}

// Alert is a performance warning
type Alert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckAlerts reports a slow last tick or an unusually large projectile count
func (tm *TickMonitor) CheckAlerts(maxProjectiles int) []Alert {
	var alerts []Alert

	if last := time.Duration(tm.tickTime.Load()); last > tm.budget {
		alerts = append(alerts, Alert{
			Type:      "slow_tick",
			Message:   "tick exceeded its time budget",
			Value:     float64(last.Microseconds()),
			Threshold: float64(tm.budget.Microseconds()),
		})
	}

	if maxProjectiles > 0 {
		if n := tm.projectilesActive.Load(); int(n) > maxProjectiles {
			alerts = append(alerts, Alert{
				Type:      "projectile_backlog",
				Message:   "too many live projectiles",
				Value:     float64(n),
				Threshold: float64(maxProjectiles),
			})
		}
	}
	return alerts
}

// LogAlerts writes every alert as a warning
func (tm *TickMonitor) LogAlerts(maxProjectiles int) {
	for _, a := range tm.CheckAlerts(maxProjectiles) {
		slog.Warn(a.Message, "type", a.Type, "value", a.Value, "threshold", a.Threshold)
	}
}

// Reset clears every counter
func (tm *TickMonitor) Reset() {
	tm.tickCount.Store(0)
	tm.tickTime.Store(0)
	tm.worstTick.Store(0)
	tm.enemiesAlive.Store(0)
	tm.projectilesActive.Store(0)
	tm.hits.Store(0)
	tm.kills.Store(0)

	tm.mutex.Lock()
	tm.avgTickTime = 0
	tm.startTime = time.Now()
	tm.mutex.Unlock()
}

// Profile runs fn and returns how long it took
func (tm *TickMonitor) Profile(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	if elapsed > tm.budget {
		slog.Debug("slow section", "name", name, "elapsed", elapsed)
	}
	return elapsed
}
