package arena

import (
	"math"
	"sort"
)

// WeaponStat is one row of the damage breakdown
type WeaponStat struct {
	Label      string
	Damage     float64
	Percentage float64
}

// GameStats is the results-screen tracker. It implements the combat
// StatsTracker.
type GameStats struct {
	damage     float64
	byWeapon   map[string]float64
	kills      int
	level      int
	wave       int
	victory    bool
	timePlayed float64
}

func NewGameStats() *GameStats {
	return &GameStats{byWeapon: make(map[string]float64), level: 1}
}

func (s *GameStats) AddDamageDealt(amount float64) { s.damage += amount }

// AddWeaponDamage accumulates damage under a weapon label; empty labels are ignored
func (s *GameStats) AddWeaponDamage(label string, amount float64) {
	if label == "" {
		return
	}
	s.byWeapon[label] += amount
}

func (s *GameStats) AddEnemyKilled()          { s.kills++ }
func (s *GameStats) SetPlayerLevel(level int) { s.level = level }
func (s *GameStats) SetWave(wave int)         { s.wave = wave }
func (s *GameStats) MarkVictory()             { s.victory = true }
func (s *GameStats) tick(dt float64)          { s.timePlayed += dt }

func (s *GameStats) DamageDealt() float64 { return s.damage }
func (s *GameStats) Kills() int           { return s.kills }
func (s *GameStats) Wave() int            { return s.wave }
func (s *GameStats) TimePlayed() float64  { return s.timePlayed }

// WeaponDamage returns the damage recorded under label
func (s *GameStats) WeaponDamage(label string) float64 {
	return s.byWeapon[label]
}

// Score = kills*10 + damage*0.5 + level*100 + wave*200, plus 5000 on victory
func (s *GameStats) Score() int {
	score := s.kills*10 + int(math.Round(s.damage*0.5)) + s.level*100 + s.wave*200
	if s.victory {
		score += 5000
	}
	return score
}

// TopWeapons returns up to n labels by damage, highest first
func (s *GameStats) TopWeapons(n int) []WeaponStat {
	out := make([]WeaponStat, 0, len(s.byWeapon))
	for label, dmg := range s.byWeapon {
		pct := 0.0
		if s.damage > 0 {
			pct = dmg / s.damage * 100
		}
		out = append(out, WeaponStat{Label: label, Damage: dmg, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Damage != out[j].Damage {
			return out[i].Damage > out[j].Damage
		}
		return out[i].Label < out[j].Label
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
