package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes one loadout for the balance sweep
type Scenario struct {
	Name       string         `yaml:"name"`
	Weapons    map[string]int `yaml:"weapons"` // weapon key -> level
	Perks      map[string]int `yaml:"perks"`   // perk key -> level
	Duration   float64        `yaml:"duration"`
	WaveSize   int            `yaml:"wave_size"`
	EnemyHP    float64        `yaml:"enemy_health"`
	SpawnRange float64        `yaml:"spawn_range"`
}

// ScenarioConfig is the root of scenarios.yaml
type ScenarioConfig struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

func LoadScenarioConfig(filename string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config: %w", err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenario config: %w", err)
	}
	for i := range cfg.Scenarios {
		sc := &cfg.Scenarios[i]
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if sc.Duration <= 0 {
			sc.Duration = 60
		}
	}
	return &cfg, nil
}
