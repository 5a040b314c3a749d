package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"scythecraft.gg/internal/persistence/statsdb"
	"scythecraft.gg/internal/protocol"
	"scythecraft.gg/internal/sim/catalogs"
	"scythecraft.gg/internal/sim/geom"
	"scythecraft.gg/internal/sim/harvest"
	"scythecraft.gg/internal/sim/tuning"
	"scythecraft.gg/internal/sim/world"

	persistlog "scythecraft.gg/internal/persistence/log"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		schemaDir  = flag.String("schemas", "./schemas", "schema directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Uint64("seed", 1337, "rng seed")
		swings     = flag.Int("swings", 40, "number of scythe swings to simulate")
		scythe     = flag.String("scythe", "IRON_SCYTHE", "scythe item the actor holds")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite stats sink")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[scythesim] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir, *schemaDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalogs:", err)
		os.Exit(1)
	}
	tp := *tuningPath
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}
	if !cats.Scythes.IsScythe(*scythe) {
		fmt.Fprintln(os.Stderr, "unknown scythe:", *scythe)
		os.Exit(2)
	}

	w, err := world.New(world.WorldConfig{ID: "scythesim", BottomY: -64, Seed: int64(*seed)}, cats, tune)
	if err != nil {
		fmt.Fprintln(os.Stderr, "world:", err)
		os.Exit(1)
	}
	plantField(w)

	a, err := w.AddActor("p1", "reaper", geom.Vec3{X: 0.5, Y: 0, Z: 0.5})
	if err != nil {
		fmt.Fprintln(os.Stderr, "actor:", err)
		os.Exit(1)
	}
	a.Slots[0] = protocol.ItemStack{Item: *scythe, Count: 1}

	worldDir := filepath.Join(*dataDir, "scythesim")
	swingLog := persistlog.NewSwingLogger(worldDir)
	defer swingLog.Close()

	var stats *statsdb.SQLiteStats
	if !*disableDB {
		stats, err = statsdb.Open(filepath.Join(worldDir, "stats.db"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "open stats db:", err)
			os.Exit(1)
		}
		defer stats.Close()
		if err := stats.UpsertCatalogs(*configDir, cats, tune); err != nil {
			logger.Printf("upsert catalogs: %v", err)
		}
	}

	rng := rand.New(rand.NewPCG(*seed, 0x5c7e))
	h := harvest.New(cats, tune, rng, logger)

	for i := 0; i < *swings; i++ {
		// Walk the actor along the field rows, one plot per swing.
		a.Pos = geom.Vec3{X: float64(i%8) + 0.5, Y: 0, Z: float64((i/8)%5)*2 + 0.5}
		a.Facing = geom.Vec3{X: 1}

		ev := a.SwingEvent(protocol.EventUseOnBlock, w.CurrentTick())
		if i%7 == 3 {
			ev = a.SwingEvent(protocol.EventHitBlock, w.CurrentTick())
		}
		if i%11 == 5 {
			ev = a.SwingEvent(protocol.EventHitEntity, w.CurrentTick())
		}

		res, err := h.HandleEvent(w, ev)
		entry := world.SwingLogEntry{
			Tick:      ev.Tick,
			ActorID:   a.ID,
			Event:     ev.Type,
			Held:      a.Held().Item,
			Processed: res.Processed,
			Commands:  len(res.Commands),
		}
		if err != nil {
			entry.Code = protocol.CodeOf(err)
			logger.Printf("swing %d rejected: %v", i, err)
		} else if err := w.Apply(res.Commands); err != nil {
			logger.Printf("swing %d apply: %v", i, err)
		}
		if err := swingLog.WriteSwing(entry); err != nil {
			logger.Printf("journal: %v", err)
		}
		if stats != nil {
			stats.RecordSwing(entry)
			stats.RecordDelta(statsdb.DeltaFromCommands(cats, a.ID, res.Commands))
		}

		// Let fake tiles tick back before the actor revisits a row.
		w.Tick()
	}

	printSummary(logger, w, a, stats)
}

// plantField lays out crop rows, cane and bamboo columns, and a patch of
// destructible clutter in front of the spawn.
func plantField(w *world.World) {
	crops := []string{"WHEAT", "CARROTS", "POTATOES", "BEETROOTS"}
	for row, crop := range crops {
		z := row * 2
		for x := 1; x <= 10; x++ {
			w.SetBlock(geom.Vec3i{X: x, Y: -1, Z: z}, "FARMLAND", 0)
			stage := 7
			if x%3 == 0 {
				stage = 4 // a few unripe plots stay untouched
			}
			w.SetBlock(geom.Vec3i{X: x, Z: z}, crop, stage)
		}
	}
	for i, plant := range []string{"SUGARCANE", "SUGARCANE", "BAMBOO"} {
		x := 3 + i*3
		w.SetBlock(geom.Vec3i{X: x, Y: -1, Z: -2}, "SAND", 0)
		height := 3 + i*2
		for y := 0; y < height; y++ {
			w.SetBlock(geom.Vec3i{X: x, Y: y, Z: -2}, plant, 0)
		}
	}
	for x := 1; x <= 6; x++ {
		w.SetBlock(geom.Vec3i{X: x, Z: 8}, "COBWEB", 0)
		w.SetBlock(geom.Vec3i{X: x, Z: 9}, "TALL_GRASS", 0)
	}
	w.SpawnMob("zombie_1", geom.Vec3i{X: 2, Z: 0}, 20)
	w.SpawnMob("zombie_2", geom.Vec3i{X: 5, Z: 2}, 20)
}

func printSummary(logger *log.Logger, w *world.World, a *world.Actor, stats *statsdb.SQLiteStats) {
	logger.Printf("done at tick %d", w.CurrentTick())
	for _, item := range []string{"WHEAT", "WHEAT_SEEDS", "CARROT", "POTATO", "BEETROOT", "BEETROOT_SEEDS", "SUGARCANE", "BAMBOO"} {
		if n := a.CountOf(item); n > 0 {
			logger.Printf("inventory %-16s %d", item, n)
		}
	}
	if held := a.Held(); held.Item != "" {
		logger.Printf("held %s damage %d", held.Item, held.Damage)
	} else {
		logger.Printf("held tool broke")
	}
	logger.Printf("item entities on ground: %d, sounds played: %d", len(w.ItemEntities()), len(w.Sounds()))

	if stats == nil {
		return
	}
	stats.Flush()
	t, err := stats.ActorTotals(a.ID)
	if err != nil {
		logger.Printf("totals: %v", err)
		return
	}
	logger.Printf("totals swings=%d tiles=%d destroyed=%d deposited=%d spilled=%d hits=%d broken=%d",
		t.Swings, t.TilesHarvested, t.BlocksDestroyed, t.ItemsDeposited, t.ItemsSpilled, t.EntitiesHit, t.ToolsBroken)
}
