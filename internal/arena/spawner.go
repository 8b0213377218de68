package arena

import "sweeptide/internal/config"

// Spawner is a fixed-interval wave timer. The first wave is due immediately.
type Spawner struct {
	cfg   config.WaveConfig
	size  int // overrides the growth formula when > 0
	wave  int
	timer float64
}

func NewSpawner(cfg config.WaveConfig, fixedSize int) *Spawner {
	return &Spawner{cfg: cfg, size: fixedSize, timer: cfg.Interval}
}

// Update advances the timer and returns the wave number and enemy count of
// a wave that started during this tick, or 0, 0.
func (s *Spawner) Update(dt float64) (wave, count int) {
	s.timer += dt
	if s.cfg.Interval <= 0 || s.timer < s.cfg.Interval {
		return 0, 0
	}
	s.timer -= s.cfg.Interval
	s.wave++
	return s.wave, s.WaveSize(s.wave)
}

// WaveSize is the enemy count of the given wave
func (s *Spawner) WaveSize(wave int) int {
	if s.size > 0 {
		return s.size
	}
	return s.cfg.BaseCount + s.cfg.CountGrowth*(wave-1)
}

func (s *Spawner) Wave() int { return s.wave }
