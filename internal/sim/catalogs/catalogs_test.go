package catalogs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ShippedConfigs(t *testing.T) {
	cats, err := Load("../../../configs", "../../../schemas")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cats.Blocks.Palette[0] != "AIR" {
		t.Fatalf("palette[0] = %s, want AIR", cats.Blocks.Palette[0])
	}
	if cats.Blocks.Index["AIR"] != 0 {
		t.Fatalf("AIR index = %d, want 0", cats.Blocks.Index["AIR"])
	}

	wheat, ok := cats.Blocks.Defs["WHEAT"]
	if !ok || wheat.Kind != BlockKindCrop {
		t.Fatalf("WHEAT should be a crop, got %+v", wheat)
	}
	if wheat.MaxStage != 7 {
		t.Fatalf("WHEAT max stage = %d, want 7", wheat.MaxStage)
	}
	seedDrops := 0
	for _, d := range wheat.Drops {
		if d.Seed {
			seedDrops++
			if d.Item != "WHEAT_SEEDS" {
				t.Fatalf("WHEAT seed drop = %s", d.Item)
			}
		}
	}
	if seedDrops != 1 {
		t.Fatalf("WHEAT should have exactly one seed drop, got %d", seedDrops)
	}

	cane := cats.Blocks.Defs["SUGARCANE"]
	if cane.Kind != BlockKindStacked || cane.DropItem != "SUGARCANE" {
		t.Fatalf("SUGARCANE def: %+v", cane)
	}
	fake := cats.Blocks.Defs[cane.FakeVariant]
	if fake.ResetsTo != "AIR" {
		t.Fatalf("SUGARCANE fake variant resets to %s, want AIR", fake.ResetsTo)
	}

	if !cats.Scythes.IsScythe("IRON_SCYTHE") {
		t.Fatalf("IRON_SCYTHE missing from scythe catalog")
	}
	if !cats.Scythes.IsDestructible("COBWEB") {
		t.Fatalf("COBWEB should be scythe-destructible")
	}
	if cats.Scythes.IsDestructible("STONE") {
		t.Fatalf("STONE must not be scythe-destructible")
	}

	if got := cats.Items.MaxStack("WOODEN_SCYTHE"); got != 1 {
		t.Fatalf("scythe max stack = %d, want 1", got)
	}
	if got := cats.Items.MaxStack("WHEAT"); got != DefaultMaxStack {
		t.Fatalf("WHEAT max stack = %d, want default", got)
	}
	if tier := cats.Items.Defs["IRON_SCYTHE"].Capabilities["tier"]; tier != "iron" {
		t.Fatalf("IRON_SCYTHE tier capability = %q", tier)
	}

	if cats.Blocks.PaletteDigest == "" || cats.Blocks.DefsDigest == "" || cats.Scythes.Digest == "" {
		t.Fatalf("missing digests")
	}
}

func TestLoad_RejectsDanglingReferences(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("blocks.json", `[
	  {"id":"AIR","solid":false},
	  {"id":"WHEAT","kind":"CROP","solid":false,"max_stage":7,
	   "drops":[{"item":"NO_SUCH_ITEM"}]}
	]`)
	write("items.json", `[{"id":"WHEAT","kind":"MATERIAL"}]`)
	write("scythes.json", `{"destructible_blocks":[],"scythes":[{"id":"WHEAT","swing_damage":1}]}`)

	if _, err := Load(dir, ""); err == nil {
		t.Fatalf("expected dangling item reference to fail")
	}
}

func TestLoad_RequiresToolScythes(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("blocks.json", `[{"id":"AIR","solid":false}]`)
	write("items.json", `[{"id":"SICKLE","kind":"MATERIAL"}]`)
	write("scythes.json", `{"destructible_blocks":[],"scythes":[{"id":"SICKLE","swing_damage":1}]}`)

	if _, err := Load(dir, ""); err == nil {
		t.Fatalf("expected non-TOOL scythe to fail")
	}
}
