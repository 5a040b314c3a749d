package world

import (
	"fmt"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/geom"
)

const actorSlots = 36

// Actor is a player-controlled entity with a slot inventory and a held slot.
type Actor struct {
	ID     string
	Name   string
	Pos    geom.Vec3
	Facing geom.Vec3
	HP     int

	Slots    []protocol.ItemStack
	HeldSlot int
}

// AddActor registers a player at a position, facing +X, with an empty
// inventory.
func (w *World) AddActor(id, name string, pos geom.Vec3) (*Actor, error) {
	if _, dup := w.actors[id]; dup {
		return nil, fmt.Errorf("actor %s already exists", id)
	}
	a := &Actor{
		ID:     id,
		Name:   name,
		Pos:    pos,
		Facing: geom.Vec3{X: 1},
		HP:     20,
		Slots:  make([]protocol.ItemStack, actorSlots),
	}
	w.actors[id] = a
	return a, nil
}

func (w *World) Actor(id string) *Actor { return w.actors[id] }

// Held returns the stack in the actor's held slot.
func (a *Actor) Held() protocol.ItemStack {
	if a.HeldSlot < 0 || a.HeldSlot >= len(a.Slots) {
		return protocol.ItemStack{}
	}
	return a.Slots[a.HeldSlot]
}

// SetHeld writes the held slot.
func (a *Actor) SetHeld(s protocol.ItemStack) {
	if a.HeldSlot < 0 || a.HeldSlot >= len(a.Slots) {
		return
	}
	a.Slots[a.HeldSlot] = s
}

// CountOf sums the actor's units of an item across all slots.
func (a *Actor) CountOf(item string) int {
	n := 0
	for _, s := range a.Slots {
		if s.Item == item {
			n += s.Count
		}
	}
	return n
}

// SwingEvent builds the host event for this actor's current position and
// facing.
func (a *Actor) SwingEvent(eventType string, tick uint64) protocol.Event {
	return protocol.Event{
		Type:    eventType,
		Tick:    tick,
		ActorID: a.ID,
		Pos:     a.Pos.ToArray(),
		Facing:  a.Facing.ToArray(),
	}
}
