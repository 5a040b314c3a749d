package harvest

import (
	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/geom"
)

// BlockState is what the core reads about one cell: the block id and, for
// crops, the current growth stage.
type BlockState struct {
	Block string
	Stage int
}

// View is the read-only slice of the host world the harvest core needs.
// Handlers query it and return mutation commands; they never write through it.
type View interface {
	// BlockAt returns the state of the cell. Out-of-world cells read as AIR.
	BlockAt(pos geom.Vec3i) BlockState

	// SupportBelow casts a ray straight down from pos and returns the first
	// cell it hits: a block that is neither plantType nor AIR. ok is false
	// when the ray leaves the world without hitting one.
	SupportBelow(pos geom.Vec3i, plantType string) (support geom.Vec3i, ok bool)

	// EntitiesAt lists ids of entities standing in the cell.
	EntitiesAt(pos geom.Vec3i) []string

	// InventorySlots returns a snapshot of the actor's container slots.
	// The returned slice is owned by the caller.
	InventorySlots(actorID string) []protocol.ItemStack

	// HeldItem returns the stack in the actor's held slot.
	HeldItem(actorID string) protocol.ItemStack
}
