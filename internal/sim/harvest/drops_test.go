package harvest

import (
	"math/rand/v2"
	"testing"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/tuning"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestDropCount_Bounds(t *testing.T) {
	cfg := tuning.Default().Drops
	rng := testRNG(1)
	for _, f := range []int{-2, 0, 1, 2, 3, 9} {
		clamped := f
		if clamped < 0 {
			clamped = 0
		}
		if clamped > cfg.FortuneMax {
			clamped = cfg.FortuneMax
		}
		lo, hi := 1, clamped+1+3+clamped
		for i := 0; i < 2000; i++ {
			n := DropCount(rng, f, cfg)
			if n < lo || n > hi {
				t.Fatalf("fortune %d: drop count %d outside [%d,%d]", f, n, lo, hi)
			}
		}
	}
}

func TestDropCount_UnenchantedRange(t *testing.T) {
	cfg := tuning.Default().Drops
	rng := testRNG(7)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		n := DropCount(rng, 0, cfg)
		if n < 1 || n > 4 {
			t.Fatalf("fortune 0: drop count %d outside [1,4]", n)
		}
		seen[n] = true
	}
	for want := 1; want <= 4; want++ {
		if !seen[want] {
			t.Fatalf("fortune 0: count %d never sampled", want)
		}
	}
}

func TestColumnDropCount_Bounds(t *testing.T) {
	rng := testRNG(3)
	for f := 0; f <= 3; f++ {
		for i := 0; i < 500; i++ {
			n := ColumnDropCount(rng, f)
			if n < 1 || n > 1+f {
				t.Fatalf("fortune %d: column drop %d outside [1,%d]", f, n, 1+f)
			}
		}
	}
}

func TestFortuneLevel(t *testing.T) {
	enchanted := protocol.ItemStack{Item: "IRON_SCYTHE", Count: 1, Enchantments: map[string]int{"fortune": 5}}
	if got := FortuneLevel(enchanted, true, 3); got != 3 {
		t.Fatalf("clamped fortune = %d, want 3", got)
	}
	if got := FortuneLevel(enchanted, false, 3); got != 0 {
		t.Fatalf("unenchantable tool fortune = %d, want 0", got)
	}
	plain := protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	if got := FortuneLevel(plain, true, 3); got != 0 {
		t.Fatalf("plain tool fortune = %d, want 0", got)
	}
}
