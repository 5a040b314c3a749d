package catalogs

type Catalogs struct {
	Blocks  BlockCatalog
	Items   ItemCatalog
	Scythes ScytheCatalog
}

type BlockCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]BlockDef
	PaletteDigest string
	DefsDigest    string
}

// BlockKind partitions blocks for harvest dispatch. The categories are
// mutually exclusive; anything a scythe can also destroy outright is listed
// in the scythe catalog instead.
type BlockKind string

const (
	BlockKindPlain   BlockKind = "PLAIN"
	BlockKindCrop    BlockKind = "CROP"
	BlockKindStacked BlockKind = "STACKED"
)

type BlockDef struct {
	ID    string    `json:"id"`
	Kind  BlockKind `json:"kind,omitempty"` // empty means PLAIN
	Solid bool      `json:"solid"`

	// Crop fields. MaxStage is the growth stage at which the crop is ripe.
	MaxStage int         `json:"max_stage,omitempty"`
	Drops    []DropEntry `json:"drops,omitempty"`

	// Stacked-plant field: the single item a column tile drops.
	DropItem string `json:"drop_item,omitempty"`

	// Transient variant swapped in to play break feedback; its own def
	// carries ResetsTo with the block the host content tick restores.
	FakeVariant string `json:"fake_variant,omitempty"`
	ResetsTo    string `json:"resets_to,omitempty"`
}

// DropEntry is one drop id of a crop. Seed marks the item consumed by the
// implicit replant: one unit of that drop is withheld on every harvest.
type DropEntry struct {
	Item string `json:"item"`
	Seed bool   `json:"seed,omitempty"`
}

type ItemCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]ItemDef
	PaletteDigest string
	DefsDigest    string
}

type ItemDef struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"` // "BLOCK","TOOL","MATERIAL","FOOD"
	MaxStack  int    `json:"max_stack,omitempty"`  // 0 means the default of 64
	MaxDamage int    `json:"max_damage,omitempty"` // tools only

	// Capabilities is the structured replacement for colon-delimited tag
	// strings on item definitions; parsed once at load.
	Capabilities map[string]string `json:"capabilities,omitempty"`
}

const DefaultMaxStack = 64

// MaxStack returns the stack limit for an item id, falling back to the
// default for unknown items and defs that leave it unset.
func (c ItemCatalog) MaxStack(id string) int {
	if d, ok := c.Defs[id]; ok && d.MaxStack > 0 {
		return d.MaxStack
	}
	return DefaultMaxStack
}

type ScytheCatalog struct {
	Defs map[string]ScytheDef

	// Destructible holds the configured block ids a scythe swing breaks
	// outright, with no drops.
	Destructible map[string]struct{}

	Digest string
}

type ScytheDef struct {
	ID          string `json:"id"`
	ArcWidthDeg int    `json:"arc_width_deg,omitempty"` // 0 means tuning default
	ArcRange    int    `json:"arc_range,omitempty"`
	SwingDamage int    `json:"swing_damage"`
}

// IsScythe reports whether the item id is a registered scythe.
func (c ScytheCatalog) IsScythe(item string) bool {
	_, ok := c.Defs[item]
	return ok
}

// IsDestructible reports whether a scythe swing breaks the block outright.
func (c ScytheCatalog) IsDestructible(block string) bool {
	_, ok := c.Destructible[block]
	return ok
}
