package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Load reads blocks.json, items.json and scythes.json from configDir. When
// schemaDir is non-empty each document is validated against the matching
// *.schema.json before decoding; structural cross-checks (dangling item and
// block references) run in both cases.
func Load(configDir, schemaDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadBlocks(filepath.Join(configDir, "blocks.json"), schemaDir, &c.Blocks); err != nil {
		return nil, err
	}
	if err := loadItems(filepath.Join(configDir, "items.json"), schemaDir, &c.Items); err != nil {
		return nil, err
	}
	if err := loadScythes(filepath.Join(configDir, "scythes.json"), schemaDir, &c.Scythes); err != nil {
		return nil, err
	}
	if err := c.crossCheck(); err != nil {
		return nil, err
	}
	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func validateAgainst(schemaDir, schemaName string, raw []byte) error {
	if schemaDir == "" {
		return nil
	}
	s, err := jsonschema.Compile(filepath.Join(schemaDir, schemaName))
	if err != nil {
		return fmt.Errorf("compile %s: %w", schemaName, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", schemaName, err)
	}
	return nil
}

func loadBlocks(path, schemaDir string, out *BlockCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validateAgainst(schemaDir, "blocks.schema.json", raw); err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []BlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("blocks.json: %w", err)
	}
	out.Defs = map[string]BlockDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("blocks.json: empty id")
		}
		if d.Kind == "" {
			d.Kind = BlockKindPlain
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Ensure AIR exists and is palette id 0.
	if _, ok := out.Defs["AIR"]; !ok {
		return fmt.Errorf("blocks.json: missing AIR")
	}
	ids = append([]string{"AIR"}, filterOut(ids, "AIR")...)

	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func loadItems(path, schemaDir string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validateAgainst(schemaDir, "items.schema.json", raw); err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

type scytheDoc struct {
	DestructibleBlocks []string    `json:"destructible_blocks"`
	Scythes            []ScytheDef `json:"scythes"`
}

func loadScythes(path, schemaDir string, out *ScytheCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validateAgainst(schemaDir, "scythes.schema.json", raw); err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var doc scytheDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("scythes.json: %w", err)
	}
	out.Defs = map[string]ScytheDef{}
	for _, d := range doc.Scythes {
		if d.ID == "" {
			return fmt.Errorf("scythes.json: empty id")
		}
		out.Defs[d.ID] = d
	}
	out.Destructible = make(map[string]struct{}, len(doc.DestructibleBlocks))
	for _, id := range doc.DestructibleBlocks {
		out.Destructible[id] = struct{}{}
	}
	return nil
}

// crossCheck verifies every reference between the three documents resolves.
func (c *Catalogs) crossCheck() error {
	for id, b := range c.Blocks.Defs {
		switch b.Kind {
		case BlockKindCrop:
			if b.MaxStage <= 0 {
				return fmt.Errorf("block %s: crop without max_stage", id)
			}
			if len(b.Drops) == 0 {
				return fmt.Errorf("block %s: crop without drops", id)
			}
			for _, d := range b.Drops {
				if _, ok := c.Items.Defs[d.Item]; !ok {
					return fmt.Errorf("block %s: unknown drop item %s", id, d.Item)
				}
			}
		case BlockKindStacked:
			if b.DropItem == "" {
				return fmt.Errorf("block %s: stacked plant without drop_item", id)
			}
			if _, ok := c.Items.Defs[b.DropItem]; !ok {
				return fmt.Errorf("block %s: unknown drop item %s", id, b.DropItem)
			}
		}
		if b.FakeVariant != "" {
			fake, ok := c.Blocks.Defs[b.FakeVariant]
			if !ok {
				return fmt.Errorf("block %s: unknown fake variant %s", id, b.FakeVariant)
			}
			if fake.ResetsTo != "" {
				if _, ok := c.Blocks.Defs[fake.ResetsTo]; !ok {
					return fmt.Errorf("block %s: fake variant resets to unknown block %s", b.FakeVariant, fake.ResetsTo)
				}
			}
		}
	}
	for id, s := range c.Scythes.Defs {
		item, ok := c.Items.Defs[id]
		if !ok {
			return fmt.Errorf("scythe %s: no matching item", id)
		}
		if item.Kind != "TOOL" {
			return fmt.Errorf("scythe %s: item kind %s, want TOOL", id, item.Kind)
		}
		if item.MaxDamage <= 0 {
			return fmt.Errorf("scythe %s: tool without max_damage", id)
		}
		if s.ArcWidthDeg < 0 || s.ArcRange < 0 {
			return fmt.Errorf("scythe %s: negative arc geometry", id)
		}
	}
	for id := range c.Scythes.Destructible {
		if _, ok := c.Blocks.Defs[id]; !ok {
			return fmt.Errorf("destructible_blocks: unknown block %s", id)
		}
	}
	return nil
}

func filterOut(ids []string, drop string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
