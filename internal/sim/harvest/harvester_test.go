package harvest

import (
	"log"
	"strings"
	"testing"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/catalogs"
	"scythecraft.gg/internal/sim/geom"
	"scythecraft.gg/internal/sim/tuning"
)

func testCatalogs() *catalogs.Catalogs {
	return &catalogs.Catalogs{
		Blocks: catalogs.BlockCatalog{Defs: map[string]catalogs.BlockDef{
			"AIR":  {ID: "AIR", Kind: catalogs.BlockKindPlain},
			"DIRT": {ID: "DIRT", Kind: catalogs.BlockKindPlain, Solid: true},
			"WHEAT": {
				ID: "WHEAT", Kind: catalogs.BlockKindCrop, MaxStage: 7,
				Drops: []catalogs.DropEntry{
					{Item: "WHEAT"},
					{Item: "WHEAT_SEEDS", Seed: true},
				},
				FakeVariant: "WHEAT_FAKE",
			},
			"WHEAT_FAKE": {ID: "WHEAT_FAKE", Kind: catalogs.BlockKindPlain, ResetsTo: "WHEAT"},
			"SUGARCANE": {
				ID: "SUGARCANE", Kind: catalogs.BlockKindStacked,
				DropItem: "SUGARCANE", FakeVariant: "SUGARCANE_FAKE",
			},
			"SUGARCANE_FAKE": {ID: "SUGARCANE_FAKE", Kind: catalogs.BlockKindPlain, ResetsTo: "AIR"},
			"COBWEB":         {ID: "COBWEB", Kind: catalogs.BlockKindPlain},
		}},
		Items: catalogs.ItemCatalog{Defs: map[string]catalogs.ItemDef{
			"WHEAT":       {ID: "WHEAT", Kind: "MATERIAL"},
			"WHEAT_SEEDS": {ID: "WHEAT_SEEDS", Kind: "MATERIAL"},
			"SUGARCANE":   {ID: "SUGARCANE", Kind: "MATERIAL"},
			"WOODEN_SCYTHE": {
				ID: "WOODEN_SCYTHE", Kind: "TOOL", MaxStack: 1, MaxDamage: 59,
				Capabilities: map[string]string{"enchantable": "fortune"},
			},
		}},
		Scythes: catalogs.ScytheCatalog{
			Defs: map[string]catalogs.ScytheDef{
				"WOODEN_SCYTHE": {ID: "WOODEN_SCYTHE", ArcWidthDeg: 60, ArcRange: 2, SwingDamage: 3},
			},
			Destructible: map[string]struct{}{"COBWEB": {}},
		},
	}
}

func testHarvester(t *testing.T) *Harvester {
	t.Helper()
	return New(testCatalogs(), tuning.Default(), testRNG(42), log.New(&strings.Builder{}, "", 0))
}

func useEvent(actor string) protocol.Event {
	return protocol.Event{
		Type:    protocol.EventUseOnBlock,
		ActorID: actor,
		Pos:     [3]float64{0.5, 0, 0.5},
		Facing:  [3]float64{1, 0, 0},
	}
}

func commandsOf(res Result, kind protocol.CommandKind) []protocol.Command {
	var out []protocol.Command
	for _, c := range res.Commands {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func soundsOf(res Result) []string {
	var out []string
	for _, c := range commandsOf(res, protocol.CmdPlaySound) {
		out = append(out, c.PlaySound.Sound)
	}
	return out
}

func TestSwing_RipeWheat(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.slots = make([]protocol.ItemStack, 9)
	v.blocks[geom.Vec3i{X: 1}] = BlockState{Block: "WHEAT", Stage: 7}

	res, err := h.HandleEvent(v, useEvent("p1"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("processed = %d, want 1", res.Processed)
	}

	var wheat, seeds int
	for _, c := range commandsOf(res, protocol.CmdGiveItems) {
		switch c.GiveItems.Stack.Item {
		case "WHEAT":
			wheat += c.GiveItems.Stack.Count
		case "WHEAT_SEEDS":
			seeds += c.GiveItems.Stack.Count
		default:
			t.Fatalf("unexpected deposit %+v", c.GiveItems)
		}
	}
	if wheat < 1 || wheat > 4 {
		t.Fatalf("wheat deposit %d outside [1,4]", wheat)
	}
	if seeds < 0 || seeds > 3 {
		t.Fatalf("seed deposit %d outside [0,3]", seeds)
	}

	sets := commandsOf(res, protocol.CmdSetBlock)
	if len(sets) != 1 || sets[0].SetBlock.Block != "WHEAT_FAKE" || sets[0].SetBlock.Pos != [3]int{1, 0, 0} {
		t.Fatalf("crop should become its fake variant, got %+v", sets)
	}

	sounds := soundsOf(res)
	if len(sounds) == 0 || sounds[0] != protocol.SoundSweep {
		t.Fatalf("first cue should be the sweep whoosh, got %v", sounds)
	}

	wear := commandsOf(res, protocol.CmdSetHeldItem)
	if len(wear) != 1 || wear[0].SetHeldItem.Stack.Damage != 1 {
		t.Fatalf("tool should take one damage point, got %+v", wear)
	}
}

func TestSwing_UnripeCropSkipped(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.blocks[geom.Vec3i{X: 1}] = BlockState{Block: "WHEAT", Stage: 5}

	res, err := h.HandleEvent(v, useEvent("p1"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.Processed != 0 {
		t.Fatalf("processed = %d, want 0", res.Processed)
	}
	if n := len(commandsOf(res, protocol.CmdSetBlock)); n != 0 {
		t.Fatalf("unripe crop must not be touched, got %d set_block", n)
	}
	if n := len(commandsOf(res, protocol.CmdSetHeldItem)); n != 0 {
		t.Fatalf("idle swing must not wear the tool")
	}
}

func TestHitBlock_DestroysOnlyConfiguredBlocks(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.blocks[geom.Vec3i{X: 1}] = BlockState{Block: "WHEAT", Stage: 7}
	v.blocks[geom.Vec3i{X: 2}] = BlockState{Block: "COBWEB"}

	ev := useEvent("p1")
	ev.Type = protocol.EventHitBlock
	res, err := h.HandleEvent(v, ev)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("processed = %d, want 1", res.Processed)
	}
	sets := commandsOf(res, protocol.CmdSetBlock)
	if len(sets) != 1 || sets[0].SetBlock.Pos != [3]int{2, 0, 0} || sets[0].SetBlock.Block != "AIR" {
		t.Fatalf("only the cobweb should break, got %+v", sets)
	}
	if n := len(commandsOf(res, protocol.CmdGiveItems)); n != 0 {
		t.Fatalf("destroy pass must not harvest, got %d deposits", n)
	}
}

func TestSwing_ColumnHarvestsOncePerInvocation(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.slots = make([]protocol.ItemStack, 36)

	const height = 12
	v.blocks[geom.Vec3i{X: 1, Y: -1}] = BlockState{Block: "DIRT"}
	for i := 0; i < height; i++ {
		v.blocks[geom.Vec3i{X: 1, Y: i}] = BlockState{Block: "SUGARCANE"}
	}

	res, err := h.HandleEvent(v, useEvent("p1"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	// The sweep sees the column at both sampled levels; it must still be
	// harvested exactly once.
	if res.Processed != height {
		t.Fatalf("processed = %d, want %d", res.Processed, height)
	}

	fakes, airs := 0, 0
	for _, c := range commandsOf(res, protocol.CmdSetBlock) {
		switch c.SetBlock.Block {
		case "SUGARCANE_FAKE":
			fakes++
		case "AIR":
			airs++
		default:
			t.Fatalf("unexpected set_block %+v", c.SetBlock)
		}
	}
	// Manhattan distance from the actor exceeds the fake-block radius for
	// the top two tiles of a 12-high column one block away.
	if fakes != 10 || airs != 2 {
		t.Fatalf("fakes=%d airs=%d, want 10/2", fakes, airs)
	}
}

func TestSwing_ColumnWithoutSupportIsSkipped(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.blocks[geom.Vec3i{X: 1}] = BlockState{Block: "SUGARCANE"} // nothing underneath

	res, err := h.HandleEvent(v, useEvent("p1"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.Processed != 0 {
		t.Fatalf("processed = %d, want 0", res.Processed)
	}
	if n := len(commandsOf(res, protocol.CmdSetBlock)); n != 0 {
		t.Fatalf("unsupported column must stay untouched, got %d set_block", n)
	}
}

func TestSwing_ToolBreaksAtDamageLimit(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1, Damage: 58}
	v.blocks[geom.Vec3i{X: 1}] = BlockState{Block: "COBWEB"}

	res, err := h.HandleEvent(v, useEvent("p1"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if n := len(commandsOf(res, protocol.CmdClearHeldItem)); n != 1 {
		t.Fatalf("tool at the damage limit should be removed, got %d clears", n)
	}
	if n := len(commandsOf(res, protocol.CmdSetHeldItem)); n != 0 {
		t.Fatalf("broken tool must not be written back")
	}
	var brokeCue bool
	for _, s := range soundsOf(res) {
		if s == protocol.SoundBreak {
			brokeCue = true
		}
	}
	if !brokeCue {
		t.Fatalf("break cue missing, sounds: %v", soundsOf(res))
	}
}

func TestSwing_FullInventorySpawnsDrops(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.slots = nil // no container space at all
	v.blocks[geom.Vec3i{X: 1}] = BlockState{Block: "WHEAT", Stage: 7}

	res, err := h.HandleEvent(v, useEvent("p1"))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if n := len(commandsOf(res, protocol.CmdGiveItems)); n != 0 {
		t.Fatalf("nothing can be deposited, got %d give_items", n)
	}
	spawns := commandsOf(res, protocol.CmdSpawnItem)
	if len(spawns) == 0 {
		t.Fatalf("overflow drops should spawn in the world")
	}
	for _, c := range spawns {
		if c.SpawnItem.Pos != [3]int{1, 0, 0} {
			t.Fatalf("drops should spawn at the crop, got %+v", c.SpawnItem)
		}
	}
}

func TestHitEntity_AreaDamageExcludesActor(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}
	v.entities[geom.Vec3i{X: 1}] = []string{"zombie", "p1"}
	v.entities[geom.Vec3i{X: 2}] = []string{"spider"}

	ev := useEvent("p1")
	ev.Type = protocol.EventHitEntity
	ev.TargetID = "skeleton"
	res, err := h.HandleEvent(v, ev)
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.Processed != 3 {
		t.Fatalf("processed = %d, want 3", res.Processed)
	}
	hit := map[string]int{}
	for _, c := range commandsOf(res, protocol.CmdDamageEntity) {
		hit[c.DamageEntity.TargetID] = c.DamageEntity.Amount
	}
	if _, ok := hit["p1"]; ok {
		t.Fatalf("actor must not damage itself")
	}
	for _, id := range []string{"skeleton", "zombie", "spider"} {
		if hit[id] != 3 {
			t.Fatalf("%s damage = %d, want 3", id, hit[id])
		}
	}
}

func TestSwing_DegenerateFacing(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WOODEN_SCYTHE", Count: 1}

	ev := useEvent("p1")
	ev.Facing = [3]float64{0, -1, 0}
	_, err := h.HandleEvent(v, ev)
	if err == nil || protocol.CodeOf(err) != protocol.ErrDegenerateFacing {
		t.Fatalf("want %s, got %v", protocol.ErrDegenerateFacing, err)
	}
}

func TestSwing_RequiresScythe(t *testing.T) {
	h := testHarvester(t)
	v := newFakeView()
	v.held = protocol.ItemStack{Item: "WHEAT", Count: 1}

	_, err := h.HandleEvent(v, useEvent("p1"))
	if err == nil || protocol.CodeOf(err) != protocol.ErrBadRequest {
		t.Fatalf("want %s, got %v", protocol.ErrBadRequest, err)
	}
}
