package harvest

import (
	"errors"
	"log"
	"math/rand/v2"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/catalogs"
	"scythecraft.gg/internal/sim/geom"
	"scythecraft.gg/internal/sim/tuning"
)

// Harvester turns scythe interaction events into world-mutation command
// lists. It holds no world state: every swing is computed fresh from the
// supplied View.
type Harvester struct {
	cats *catalogs.Catalogs
	tune tuning.Tuning
	rng  *rand.Rand
	warn *log.Logger
}

// New builds a Harvester. warn may be nil to discard warnings.
func New(cats *catalogs.Catalogs, tune tuning.Tuning, rng *rand.Rand, warn *log.Logger) *Harvester {
	return &Harvester{cats: cats, tune: tune, rng: rng, warn: warn}
}

// Result of one processed event.
type Result struct {
	// Processed counts the blocks (or entities, for hit-entity events)
	// the swing affected; it drives tool wear and feedback cues.
	Processed int
	Commands  []protocol.Command
}

// HandleEvent dispatches one host event. Use-on harvests ripe crops, plant
// columns and destructibles; hit-block only breaks destructibles; hit-entity
// deals area damage.
func (h *Harvester) HandleEvent(v View, ev protocol.Event) (Result, error) {
	switch ev.Type {
	case protocol.EventUseOnBlock:
		return h.swing(v, ev, true)
	case protocol.EventHitBlock:
		return h.swing(v, ev, false)
	case protocol.EventHitEntity:
		return h.hitEntity(v, ev)
	default:
		return Result{}, protocol.E(protocol.ErrBadRequest, "unknown event type %q", ev.Type)
	}
}

func (h *Harvester) scytheFor(v View, actorID string) (protocol.ItemStack, catalogs.ScytheDef, error) {
	held := v.HeldItem(actorID)
	def, ok := h.cats.Scythes.Defs[held.Item]
	if !ok {
		return held, def, protocol.E(protocol.ErrBadRequest, "actor %s is not holding a scythe", actorID)
	}
	return held, def, nil
}

func (h *Harvester) arcFor(def catalogs.ScytheDef) (widthDeg, rangeBlocks int) {
	widthDeg, rangeBlocks = def.ArcWidthDeg, def.ArcRange
	if widthDeg == 0 {
		widthDeg = h.tune.DefaultArcWidthDeg
	}
	if rangeBlocks == 0 {
		rangeBlocks = h.tune.DefaultArcRange
	}
	return widthDeg, rangeBlocks
}

func (h *Harvester) fortuneFor(held protocol.ItemStack) int {
	itemDef := h.cats.Items.Defs[held.Item]
	enchantable := itemDef.Capabilities["enchantable"] == "fortune"
	return FortuneLevel(held, enchantable, h.tune.Drops.FortuneMax)
}

// swing runs the block pass shared by use-on (harvest + destroy) and
// hit-block (destroy only).
func (h *Harvester) swing(v View, ev protocol.Event, harvestPlants bool) (Result, error) {
	held, def, err := h.scytheFor(v, ev.ActorID)
	if err != nil {
		return Result{}, err
	}
	widthDeg, rangeBlocks := h.arcFor(def)
	origin := geom.V3(ev.Pos).Floor()

	cells, err := SweepBlocks(origin, geom.V3(ev.Facing), widthDeg, rangeBlocks)
	if err != nil {
		if errors.Is(err, geom.ErrDegenerateFacing) {
			return Result{}, protocol.E(protocol.ErrDegenerateFacing, "actor %s has no horizontal facing", ev.ActorID)
		}
		return Result{}, err
	}

	cmds := []protocol.Command{playSound(protocol.SoundSweep, origin)}
	led := newLedger(v.InventorySlots(ev.ActorID), h.cats.Items.MaxStack)
	fortune := h.fortuneFor(held)

	processed := 0
	done := make(map[geom.Vec3i]struct{})
	for _, cell := range cells {
		if _, ok := done[cell]; ok {
			continue
		}
		st := v.BlockAt(cell)
		bd, known := h.cats.Blocks.Defs[st.Block]

		switch {
		case harvestPlants && known && bd.Kind == catalogs.BlockKindCrop && st.Stage == bd.MaxStage:
			cmds = append(cmds, h.harvestCrop(led, ev.ActorID, cell, bd, fortune)...)
			done[cell] = struct{}{}
			processed++

		case harvestPlants && known && bd.Kind == catalogs.BlockKindStacked:
			colCmds, n := h.harvestColumn(v, led, ev.ActorID, origin, cell, bd, fortune, done)
			cmds = append(cmds, colCmds...)
			processed += n

		case h.cats.Scythes.IsDestructible(st.Block):
			cmds = append(cmds, setBlock(cell, "AIR", 0))
			done[cell] = struct{}{}
			processed++
		}
	}

	cmds = append(cmds, h.feedback(origin, processed)...)
	cmds = append(cmds, h.toolWear(ev.ActorID, held, origin, processed)...)
	return Result{Processed: processed, Commands: cmds}, nil
}

// harvestCrop rolls every drop of a ripe crop, withholding one unit of the
// seed drop for the implicit replant, deposits what fits and spawns the rest
// at the crop, then swaps in the fake variant for break feedback. The fake
// block's content tick restores the crop at growth stage zero.
func (h *Harvester) harvestCrop(led *ledger, actorID string, cell geom.Vec3i, bd catalogs.BlockDef, fortune int) []protocol.Command {
	var cmds []protocol.Command
	for _, d := range bd.Drops {
		qty := DropCount(h.rng, fortune, h.tune.Drops)
		if d.Seed {
			qty--
		}
		if qty <= 0 {
			continue
		}
		cmds = append(cmds, h.deposit(led, actorID, cell, d.Item, qty)...)
	}
	return append(cmds, setBlock(cell, bd.FakeVariant, 0))
}

// harvestColumn discovers the full plant column through the struck cell and
// harvests every tile bottom-first. Columns without a support block are
// skipped with a warning.
func (h *Harvester) harvestColumn(v View, led *ledger, actorID string, origin, struck geom.Vec3i, bd catalogs.BlockDef, fortune int, done map[geom.Vec3i]struct{}) ([]protocol.Command, int) {
	column, err := DiscoverColumn(v, struck, bd.ID, h.tune.MaxBuildHeight)
	if err != nil {
		if h.warn != nil {
			h.warn.Printf("harvest: %v", err)
		}
		done[struck] = struct{}{}
		return nil, 0
	}

	var cmds []protocol.Command
	for _, pos := range column {
		done[pos] = struct{}{}
		qty := ColumnDropCount(h.rng, fortune)
		cmds = append(cmds, h.deposit(led, actorID, pos, bd.DropItem, qty)...)

		// Break feedback is cosmetic; distant tiles are cleared outright.
		if geom.Manhattan(origin, pos) <= h.tune.FakeBlockRadius {
			cmds = append(cmds, setBlock(pos, bd.FakeVariant, 0))
		} else {
			cmds = append(cmds, setBlock(pos, "AIR", 0))
		}
	}
	return cmds, len(column)
}

// deposit gives as much as fits into the actor's inventory and spawns the
// overflow as an item entity at the harvested cell.
func (h *Harvester) deposit(led *ledger, actorID string, cell geom.Vec3i, item string, qty int) []protocol.Command {
	var cmds []protocol.Command
	dep, rem := led.give(item, qty)
	if dep > 0 {
		cmds = append(cmds, protocol.Command{
			Kind:      protocol.CmdGiveItems,
			GiveItems: &protocol.GiveItemsCommand{ActorID: actorID, Stack: protocol.ItemStack{Item: item, Count: dep}},
		})
	}
	if rem > 0 {
		cmds = append(cmds, protocol.Command{
			Kind:      protocol.CmdSpawnItem,
			SpawnItem: &protocol.SpawnItemCommand{Pos: cell.ToArray(), Stack: protocol.ItemStack{Item: item, Count: rem}},
		})
	}
	return cmds
}

func (h *Harvester) feedback(origin geom.Vec3i, processed int) []protocol.Command {
	var cmds []protocol.Command
	if processed > 0 {
		cmds = append(cmds, playSound(protocol.SoundHarvest, origin))
	}
	if processed > 1 && h.rng.IntN(1000) < h.tune.ExtraCuePermille {
		cmds = append(cmds, playSound(protocol.SoundHarvestAlt, origin))
	}
	return cmds
}

// toolWear charges one durability point per productive swing. A tool at its
// damage limit is removed from the hand with a break cue instead.
func (h *Harvester) toolWear(actorID string, held protocol.ItemStack, origin geom.Vec3i, processed int) []protocol.Command {
	if processed <= 0 {
		return nil
	}
	maxDamage := h.cats.Items.Defs[held.Item].MaxDamage
	next := held.Damage + 1
	if next >= maxDamage {
		return []protocol.Command{
			{Kind: protocol.CmdClearHeldItem, ClearHeld: &protocol.ClearHeldCommand{ActorID: actorID}},
			playSound(protocol.SoundBreak, origin),
		}
	}
	return []protocol.Command{{
		Kind:        protocol.CmdSetHeldItem,
		SetHeldItem: &protocol.SetHeldItemCommand{ActorID: actorID, Stack: held.WithDamage(next)},
	}}
}

// hitEntity deals the scythe's swing damage to every entity standing in the
// foot-level arc, plus the directly struck target, excluding the actor.
func (h *Harvester) hitEntity(v View, ev protocol.Event) (Result, error) {
	_, def, err := h.scytheFor(v, ev.ActorID)
	if err != nil {
		return Result{}, err
	}
	widthDeg, rangeBlocks := h.arcFor(def)
	origin := geom.V3(ev.Pos).Floor()

	cells, err := SweepEntityCells(origin, geom.V3(ev.Facing), widthDeg, rangeBlocks)
	if err != nil {
		if errors.Is(err, geom.ErrDegenerateFacing) {
			return Result{}, protocol.E(protocol.ErrDegenerateFacing, "actor %s has no horizontal facing", ev.ActorID)
		}
		return Result{}, err
	}

	seen := make(map[string]struct{})
	var targets []string
	addTarget := func(id string) {
		if id == "" || id == ev.ActorID {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		targets = append(targets, id)
	}
	addTarget(ev.TargetID)
	for _, cell := range cells {
		for _, id := range v.EntitiesAt(cell) {
			addTarget(id)
		}
	}

	cmds := []protocol.Command{playSound(protocol.SoundSweep, origin)}
	for _, id := range targets {
		cmds = append(cmds, protocol.Command{
			Kind: protocol.CmdDamageEntity,
			DamageEntity: &protocol.DamageEntityCommand{
				TargetID: id,
				Amount:   def.SwingDamage,
				SourceID: ev.ActorID,
			},
		})
	}
	return Result{Processed: len(targets), Commands: cmds}, nil
}

func playSound(sound string, pos geom.Vec3i) protocol.Command {
	return protocol.Command{
		Kind:      protocol.CmdPlaySound,
		PlaySound: &protocol.PlaySoundCommand{Sound: sound, Pos: pos.ToArray()},
	}
}

func setBlock(pos geom.Vec3i, block string, stage int) protocol.Command {
	return protocol.Command{
		Kind:     protocol.CmdSetBlock,
		SetBlock: &protocol.SetBlockCommand{Pos: pos.ToArray(), Block: block, Stage: stage},
	}
}
