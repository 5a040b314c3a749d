package statsdb

import (
	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/catalogs"
)

// DeltaFromCommands derives one swing's stat contribution from its mutation
// list. A set_block to a resetting variant counts as a harvested tile; a
// set_block to air counts as a destroyed block.
func DeltaFromCommands(cats *catalogs.Catalogs, actorID string, cmds []protocol.Command) ActorDelta {
	d := ActorDelta{Actor: actorID}
	for _, c := range cmds {
		switch c.Kind {
		case protocol.CmdSetBlock:
			if c.SetBlock == nil {
				continue
			}
			if c.SetBlock.Block == "AIR" {
				d.BlocksDestroyed++
				continue
			}
			if def, ok := cats.Blocks.Defs[c.SetBlock.Block]; ok && def.ResetsTo != "" {
				d.TilesHarvested++
			}
		case protocol.CmdGiveItems:
			if c.GiveItems != nil {
				d.ItemsDeposited += c.GiveItems.Stack.Count
			}
		case protocol.CmdSpawnItem:
			if c.SpawnItem != nil {
				d.ItemsSpilled += c.SpawnItem.Stack.Count
			}
		case protocol.CmdDamageEntity:
			d.EntitiesHit++
		case protocol.CmdClearHeldItem:
			d.ToolsBroken++
		}
	}
	return d
}
