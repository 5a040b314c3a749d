package world

import (
	"fmt"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/geom"
	"scythecraft.gg/internal/sim/harvest"
)

// Apply executes a mutation command list in order. Commands referencing
// unknown actors or entities fail; earlier commands stay applied, matching
// the host's no-rollback semantics.
func (w *World) Apply(cmds []protocol.Command) error {
	for i, cmd := range cmds {
		if err := w.apply(cmd); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Kind, err)
		}
	}
	return nil
}

func (w *World) apply(cmd protocol.Command) error {
	switch cmd.Kind {
	case protocol.CmdSetBlock:
		c := cmd.SetBlock
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		if _, ok := w.cats.Blocks.Defs[c.Block]; !ok {
			return fmt.Errorf("unknown block %s", c.Block)
		}
		w.SetBlock(geom.V3i(c.Pos), c.Block, c.Stage)
		return nil

	case protocol.CmdSpawnItem:
		c := cmd.SpawnItem
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		w.spawnItemEntity(geom.V3i(c.Pos), c.Stack)
		return nil

	case protocol.CmdGiveItems:
		c := cmd.GiveItems
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		a := w.actors[c.ActorID]
		if a == nil {
			return fmt.Errorf("unknown actor %s", c.ActorID)
		}
		updated, _, rem := harvest.GiveItems(a.Slots, c.Stack.Item, c.Stack.Count, w.cats.Items.MaxStack(c.Stack.Item))
		a.Slots = updated
		if rem > 0 {
			// The core sizes deposits to fit; anything left over drops at
			// the actor's feet rather than vanishing.
			w.spawnItemEntity(a.Pos.Floor(), protocol.ItemStack{Item: c.Stack.Item, Count: rem})
		}
		return nil

	case protocol.CmdSetHeldItem:
		c := cmd.SetHeldItem
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		a := w.actors[c.ActorID]
		if a == nil {
			return fmt.Errorf("unknown actor %s", c.ActorID)
		}
		a.SetHeld(c.Stack)
		return nil

	case protocol.CmdClearHeldItem:
		c := cmd.ClearHeld
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		a := w.actors[c.ActorID]
		if a == nil {
			return fmt.Errorf("unknown actor %s", c.ActorID)
		}
		a.SetHeld(protocol.ItemStack{})
		return nil

	case protocol.CmdDamageEntity:
		c := cmd.DamageEntity
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		if m := w.mobs[c.TargetID]; m != nil {
			m.HP -= c.Amount
			if m.HP <= 0 {
				delete(w.mobs, c.TargetID)
			}
			return nil
		}
		if a := w.actors[c.TargetID]; a != nil {
			a.HP -= c.Amount
			if a.HP < 0 {
				a.HP = 0
			}
			return nil
		}
		return fmt.Errorf("unknown entity %s", c.TargetID)

	case protocol.CmdPlaySound:
		c := cmd.PlaySound
		if c == nil {
			return fmt.Errorf("missing payload")
		}
		w.sounds = append(w.sounds, PlayedSound{Tick: w.tick, Sound: c.Sound, Pos: geom.V3i(c.Pos)})
		return nil

	default:
		return fmt.Errorf("unknown command kind")
	}
}
