package harvest

import (
	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/geom"
)

// fakeView is a minimal in-memory View for core tests; the full in-memory
// world in internal/sim/world backs the end-to-end tests.
type fakeView struct {
	blocks   map[geom.Vec3i]BlockState
	entities map[geom.Vec3i][]string
	slots    []protocol.ItemStack
	held     protocol.ItemStack
	bottomY  int
}

func newFakeView() *fakeView {
	return &fakeView{
		blocks:   map[geom.Vec3i]BlockState{},
		entities: map[geom.Vec3i][]string{},
		bottomY:  -4,
	}
}

func (f *fakeView) BlockAt(pos geom.Vec3i) BlockState {
	if st, ok := f.blocks[pos]; ok {
		return st
	}
	return BlockState{Block: "AIR"}
}

func (f *fakeView) SupportBelow(pos geom.Vec3i, plantType string) (geom.Vec3i, bool) {
	for p := pos.Below(); p.Y >= f.bottomY; p = p.Below() {
		b := f.BlockAt(p).Block
		if b == plantType || b == "AIR" {
			continue
		}
		return p, true
	}
	return geom.Vec3i{}, false
}

func (f *fakeView) EntitiesAt(pos geom.Vec3i) []string { return f.entities[pos] }

func (f *fakeView) InventorySlots(string) []protocol.ItemStack {
	out := make([]protocol.ItemStack, len(f.slots))
	copy(out, f.slots)
	return out
}

func (f *fakeView) HeldItem(string) protocol.ItemStack { return f.held }
