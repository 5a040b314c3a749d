package protocol

// CommandKind identifies one world mutation requested by the harvest core.
type CommandKind string

const (
	CmdSetBlock      CommandKind = "set_block"
	CmdSpawnItem     CommandKind = "spawn_item"
	CmdGiveItems     CommandKind = "give_items"
	CmdSetHeldItem   CommandKind = "set_held_item"
	CmdClearHeldItem CommandKind = "clear_held_item"
	CmdDamageEntity  CommandKind = "damage_entity"
	CmdPlaySound     CommandKind = "play_sound"
)

// Command is one entry in the mutation list returned by an event handler.
// The core never mutates the world directly; the host (or the in-memory world
// used by tests) applies commands in order.
type Command struct {
	Kind CommandKind `json:"kind"`

	SetBlock     *SetBlockCommand     `json:"set_block,omitempty"`
	SpawnItem    *SpawnItemCommand    `json:"spawn_item,omitempty"`
	GiveItems    *GiveItemsCommand    `json:"give_items,omitempty"`
	SetHeldItem  *SetHeldItemCommand  `json:"set_held_item,omitempty"`
	ClearHeld    *ClearHeldCommand    `json:"clear_held,omitempty"`
	DamageEntity *DamageEntityCommand `json:"damage_entity,omitempty"`
	PlaySound    *PlaySoundCommand    `json:"play_sound,omitempty"`
}

// SetBlockCommand replaces the block at Pos. Stage carries the growth stage
// for crop blocks; it is ignored for block types without growth state.
type SetBlockCommand struct {
	Pos   [3]int `json:"pos"`
	Block string `json:"block"`
	Stage int    `json:"stage,omitempty"`
}

// SpawnItemCommand drops a stack into the world as an item entity.
type SpawnItemCommand struct {
	Pos   [3]int    `json:"pos"`
	Stack ItemStack `json:"stack"`
}

// GiveItemsCommand deposits items into an actor's inventory. The core only
// emits amounts that fit; overflow becomes a SpawnItemCommand instead.
type GiveItemsCommand struct {
	ActorID string    `json:"actor_id"`
	Stack   ItemStack `json:"stack"`
}

// SetHeldItemCommand writes a replacement stack into the actor's held slot.
type SetHeldItemCommand struct {
	ActorID string    `json:"actor_id"`
	Stack   ItemStack `json:"stack"`
}

// ClearHeldCommand empties the actor's held slot (tool broke).
type ClearHeldCommand struct {
	ActorID string `json:"actor_id"`
}

// DamageEntityCommand applies swing damage to one entity.
type DamageEntityCommand struct {
	TargetID string `json:"target_id"`
	Amount   int    `json:"amount"`
	SourceID string `json:"source_id,omitempty"`
}

// PlaySoundCommand triggers a feedback cue at a position.
type PlaySoundCommand struct {
	Sound string `json:"sound"`
	Pos   [3]int `json:"pos"`
}

// Sound cue identifiers used by the harvest handlers.
const (
	SoundSweep      = "scythe.sweep"
	SoundHarvest    = "scythe.harvest"
	SoundHarvestAlt = "scythe.harvest_alt"
	SoundBreak      = "scythe.tool_break"
)
