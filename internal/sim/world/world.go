package world

import (
	"fmt"
	"sort"

	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/catalogs"
	"scythecraft.gg/internal/sim/geom"
	"scythecraft.gg/internal/sim/tuning"
)

type WorldConfig struct {
	ID      string
	BottomY int
	Seed    int64
}

// How many ticks a fake break-feedback variant stays in the world before its
// content tick restores the real block.
const fakeResetDelayTicks = 3

// World is a single-threaded in-memory voxel world. It stands in for the
// host engine: it answers the harvest core's read queries and applies the
// mutation command lists the core returns. All access must happen from one
// goroutine.
type World struct {
	cfg  WorldConfig
	cats *catalogs.Catalogs
	tune tuning.Tuning

	tick uint64

	blocks map[geom.Vec3i]cell
	resets map[geom.Vec3i]pendingReset

	actors map[string]*Actor
	mobs   map[string]*Mob
	items  map[string]*ItemEntity

	nextItemNum uint64

	// Sounds played this session, oldest first. Cosmetic; kept so tests and
	// the harness can observe feedback cues.
	sounds []PlayedSound
}

type cell struct {
	block string
	stage int
}

type pendingReset struct {
	dueTick uint64
	block   string
}

// Mob is a non-player entity that can be damaged by a scythe sweep.
type Mob struct {
	ID  string
	Pos geom.Vec3i
	HP  int
}

// ItemEntity is a dropped stack lying in the world.
type ItemEntity struct {
	ID    string
	Pos   geom.Vec3i
	Stack protocol.ItemStack
}

// PlayedSound records one feedback cue.
type PlayedSound struct {
	Tick  uint64
	Sound string
	Pos   geom.Vec3i
}

func New(cfg WorldConfig, cats *catalogs.Catalogs, tune tuning.Tuning) (*World, error) {
	if cats == nil {
		return nil, fmt.Errorf("world %s: nil catalogs", cfg.ID)
	}
	return &World{
		cfg:    cfg,
		cats:   cats,
		tune:   tune,
		blocks: map[geom.Vec3i]cell{},
		resets: map[geom.Vec3i]pendingReset{},
		actors: map[string]*Actor{},
		mobs:   map[string]*Mob{},
		items:  map[string]*ItemEntity{},
	}, nil
}

func (w *World) CurrentTick() uint64 { return w.tick }

// Tick advances time and runs due content ticks: fake break-feedback blocks
// reset to their real block, crops at growth stage zero.
func (w *World) Tick() {
	w.tick++
	for pos, r := range w.resets {
		if r.dueTick > w.tick {
			continue
		}
		delete(w.resets, pos)
		w.SetBlock(pos, r.block, 0)
	}
}

// SetBlock writes a block id and growth stage. Placing a block whose
// definition carries resets_to schedules the content-tick restore.
func (w *World) SetBlock(pos geom.Vec3i, block string, stage int) {
	if pos.Y < w.cfg.BottomY || pos.Y > w.tune.MaxBuildHeight {
		return
	}
	if block == "AIR" && stage == 0 {
		delete(w.blocks, pos)
	} else {
		w.blocks[pos] = cell{block: block, stage: stage}
	}

	delete(w.resets, pos)
	if def, ok := w.cats.Blocks.Defs[block]; ok && def.ResetsTo != "" {
		w.resets[pos] = pendingReset{dueTick: w.tick + fakeResetDelayTicks, block: def.ResetsTo}
	}
}

// GrowBlock bumps a crop's growth stage, clamped to the definition's maximum.
func (w *World) GrowBlock(pos geom.Vec3i, stages int) {
	c, ok := w.blocks[pos]
	if !ok {
		return
	}
	def, ok := w.cats.Blocks.Defs[c.block]
	if !ok || def.Kind != catalogs.BlockKindCrop {
		return
	}
	c.stage += stages
	if c.stage > def.MaxStage {
		c.stage = def.MaxStage
	}
	w.blocks[pos] = c
}

func (w *World) SpawnMob(id string, pos geom.Vec3i, hp int) {
	w.mobs[id] = &Mob{ID: id, Pos: pos, HP: hp}
}

func (w *World) Mob(id string) *Mob { return w.mobs[id] }

// ItemEntities returns the dropped stacks, ordered by id for determinism.
func (w *World) ItemEntities() []ItemEntity {
	out := make([]ItemEntity, 0, len(w.items))
	for _, e := range w.items {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) Sounds() []PlayedSound { return w.sounds }

func (w *World) spawnItemEntity(pos geom.Vec3i, stack protocol.ItemStack) string {
	w.nextItemNum++
	id := fmt.Sprintf("I%d", w.nextItemNum)
	w.items[id] = &ItemEntity{ID: id, Pos: pos, Stack: stack}
	return id
}
