package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	MaxBuildHeight int `yaml:"max_build_height"`

	// Arc geometry used when a scythe definition does not override it.
	DefaultArcWidthDeg int `yaml:"default_arc_width_deg"`
	DefaultArcRange    int `yaml:"default_arc_range"`

	// Cosmetic break feedback is skipped beyond this Manhattan distance
	// from the harvesting player.
	FakeBlockRadius int `yaml:"fake_block_radius"`

	Drops Drops `yaml:"drops"`

	// Chance (permille) of layering an extra harvest cue when more than one
	// block was processed in a single swing.
	ExtraCuePermille int `yaml:"extra_cue_permille"`
}

type Drops struct {
	FortuneMax int `yaml:"fortune_max"`

	// Each bonus trial succeeds with probability numerator/denominator.
	BonusNumerator   int `yaml:"bonus_numerator"`
	BonusDenominator int `yaml:"bonus_denominator"`
}

// Default returns the tunables shipped in configs/tuning.yaml; tests use it
// so they do not depend on the config directory.
func Default() Tuning {
	return Tuning{
		MaxBuildHeight:     320,
		DefaultArcWidthDeg: 60,
		DefaultArcRange:    3,
		FakeBlockRadius:    10,
		Drops: Drops{
			FortuneMax:       3,
			BonusNumerator:   8,
			BonusDenominator: 15,
		},
		ExtraCuePermille: 200,
	}
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) validate() error {
	if t.MaxBuildHeight <= 0 {
		return fmt.Errorf("max_build_height must be positive")
	}
	if t.DefaultArcWidthDeg < 0 || t.DefaultArcRange < 0 {
		return fmt.Errorf("arc defaults must not be negative")
	}
	if t.Drops.FortuneMax < 0 {
		return fmt.Errorf("fortune_max must not be negative")
	}
	if t.Drops.BonusDenominator <= 0 || t.Drops.BonusNumerator < 0 || t.Drops.BonusNumerator > t.Drops.BonusDenominator {
		return fmt.Errorf("bonus probability %d/%d out of range", t.Drops.BonusNumerator, t.Drops.BonusDenominator)
	}
	if t.ExtraCuePermille < 0 || t.ExtraCuePermille > 1000 {
		return fmt.Errorf("extra_cue_permille out of range")
	}
	return nil
}
