package world

import (
	"sort"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/geom"
	"scythecraft.gg/internal/sim/harvest"
)

// World satisfies harvest.View; the harvest core reads the world through
// these five methods only.

func (w *World) BlockAt(pos geom.Vec3i) harvest.BlockState {
	c, ok := w.blocks[pos]
	if !ok {
		return harvest.BlockState{Block: "AIR"}
	}
	return harvest.BlockState{Block: c.block, Stage: c.stage}
}

func (w *World) SupportBelow(pos geom.Vec3i, plantType string) (geom.Vec3i, bool) {
	for p := pos.Below(); p.Y >= w.cfg.BottomY; p = p.Below() {
		b := w.BlockAt(p).Block
		if b == plantType || b == "AIR" {
			continue
		}
		return p, true
	}
	return geom.Vec3i{}, false
}

func (w *World) EntitiesAt(pos geom.Vec3i) []string {
	var ids []string
	for _, a := range w.actors {
		if a.Pos.Floor() == pos {
			ids = append(ids, a.ID)
		}
	}
	for _, m := range w.mobs {
		if m.Pos == pos {
			ids = append(ids, m.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

func (w *World) InventorySlots(actorID string) []protocol.ItemStack {
	a := w.actors[actorID]
	if a == nil {
		return nil
	}
	out := make([]protocol.ItemStack, len(a.Slots))
	copy(out, a.Slots)
	return out
}

func (w *World) HeldItem(actorID string) protocol.ItemStack {
	a := w.actors[actorID]
	if a == nil {
		return protocol.ItemStack{}
	}
	return a.Held()
}
