package harvest

import (
	"math/rand/v2"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/tuning"
)

// FortuneLevel reads the clamped fortune level off the harvesting tool.
// Tools whose definition does not grant the fortune capability always
// report 0, whatever their enchantment map says.
func FortuneLevel(stack protocol.ItemStack, enchantable bool, max int) int {
	if !enchantable {
		return 0
	}
	f := stack.EnchantmentLevel("fortune")
	if f < 0 {
		return 0
	}
	if f > max {
		return max
	}
	return f
}

// DropCount samples the crop drop quantity for a fortune level f:
// a base roll uniform in [1, f+1], plus one unit per success in 3+f
// Bernoulli trials with probability BonusNumerator/BonusDenominator.
func DropCount(rng *rand.Rand, f int, cfg tuning.Drops) int {
	if f < 0 {
		f = 0
	}
	if f > cfg.FortuneMax {
		f = cfg.FortuneMax
	}
	n := 1 + rng.IntN(f+1)
	for i := 0; i < 3+f; i++ {
		if rng.IntN(cfg.BonusDenominator) < cfg.BonusNumerator {
			n++
		}
	}
	return n
}

// ColumnDropCount samples the per-tile drop quantity for stacked plants:
// uniform in [1, 1+f].
func ColumnDropCount(rng *rand.Rand, f int) int {
	if f < 0 {
		f = 0
	}
	return 1 + rng.IntN(f+1)
}
