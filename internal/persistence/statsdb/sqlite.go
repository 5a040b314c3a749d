package statsdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"scythecraft.gg/internal/sim/catalogs"
	"scythecraft.gg/internal/sim/tuning"
	"scythecraft.gg/internal/sim/world"
)

// SQLiteStats is a secondary sink for swing records and per-actor harvest
// totals. All writes go through a single goroutine; the JSONL journal
// remains the source of truth.
type SQLiteStats struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqSwing reqKind = iota + 1
	reqDelta
	reqFlush
)

type req struct {
	kind reqKind

	swing world.SwingLogEntry
	delta ActorDelta
	done  chan struct{}
}

// ActorDelta is one swing's contribution to an actor's running totals.
type ActorDelta struct {
	Actor           string
	TilesHarvested  int
	BlocksDestroyed int
	ItemsDeposited  int
	ItemsSpilled    int
	EntitiesHit     int
	ToolsBroken     int
}

// ActorTotals mirrors one row of actor_stats.
type ActorTotals struct {
	Swings          int
	TilesHarvested  int
	BlocksDestroyed int
	ItemsDeposited  int
	ItemsSpilled    int
	EntitiesHit     int
	ToolsBroken     int
}

func Open(path string) (*SQLiteStats, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStats{
		db: db,
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS swings (
			tick INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			actor TEXT NOT NULL,
			event TEXT NOT NULL,
			held TEXT,
			processed INTEGER NOT NULL,
			commands INTEGER NOT NULL,
			code TEXT,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (tick, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_swings_actor_tick ON swings(actor, tick);`,
		`CREATE TABLE IF NOT EXISTS actor_stats (
			actor TEXT PRIMARY KEY,
			swings INTEGER NOT NULL DEFAULT 0,
			tiles_harvested INTEGER NOT NULL DEFAULT 0,
			blocks_destroyed INTEGER NOT NULL DEFAULT 0,
			items_deposited INTEGER NOT NULL DEFAULT 0,
			items_spilled INTEGER NOT NULL DEFAULT 0,
			entities_hit INTEGER NOT NULL DEFAULT 0,
			tools_broken INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStats) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteStats) RecordSwing(entry world.SwingLogEntry) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- req{kind: reqSwing, swing: entry}:
	default:
		// Drop if the sink falls behind; the journal keeps the record.
	}
}

func (s *SQLiteStats) RecordDelta(d ActorDelta) {
	if s == nil || s.closed.Load() || d.Actor == "" {
		return
	}
	select {
	case s.ch <- req{kind: reqDelta, delta: d}:
	default:
	}
}

// Flush blocks until everything queued before the call is committed.
func (s *SQLiteStats) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	s.ch <- req{kind: reqFlush, done: done}
	<-done
}

// ActorTotals reads the committed running totals for one actor. Call Flush
// first when reading after recent writes.
func (s *SQLiteStats) ActorTotals(actor string) (ActorTotals, error) {
	var t ActorTotals
	row := s.db.QueryRow(`SELECT swings, tiles_harvested, blocks_destroyed,
		items_deposited, items_spilled, entities_hit, tools_broken
		FROM actor_stats WHERE actor = ?`, actor)
	err := row.Scan(&t.Swings, &t.TilesHarvested, &t.BlocksDestroyed,
		&t.ItemsDeposited, &t.ItemsSpilled, &t.EntitiesHit, &t.ToolsBroken)
	if err == sql.ErrNoRows {
		return ActorTotals{}, nil
	}
	return t, err
}

// UpsertCatalogs records the loaded catalog digests so a db can be matched
// to the configs that produced it.
func (s *SQLiteStats) UpsertCatalogs(configDir string, cats *catalogs.Catalogs, tune tuning.Tuning) error {
	if s == nil {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	raw := map[string][]byte{}
	read := func(name, path string) {
		b, err := os.ReadFile(path)
		if err != nil {
			return
		}
		raw[name] = b
	}
	if configDir != "" {
		read("blocks_defs", filepath.Join(configDir, "blocks.json"))
		read("items_defs", filepath.Join(configDir, "items.json"))
		read("scythes", filepath.Join(configDir, "scythes.json"))
	}

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	if b := raw["blocks_defs"]; len(b) > 0 {
		rows = append(rows, kv{name: "blocks_defs", digest: cats.Blocks.DefsDigest, json: b})
	}
	if b := raw["items_defs"]; len(b) > 0 {
		rows = append(rows, kv{name: "items_defs", digest: cats.Items.DefsDigest, json: b})
	}
	if b := raw["scythes"]; len(b) > 0 {
		rows = append(rows, kv{name: "scythes", digest: cats.Scythes.Digest, json: b})
	}
	{
		// Store the tuning values actually applied, not the file.
		b, _ := json.Marshal(tune)
		sum := sha256.Sum256(b)
		rows = append(rows, kv{name: "tuning", digest: hex.EncodeToString(sum[:]), json: b})
	}

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO catalogs(name,digest,json,updated_at) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.name == "" || r.digest == "" || len(r.json) == 0 {
			continue
		}
		if _, err := stmt.Exec(r.name, r.digest, string(r.json), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStats) loop() {
	ctx := context.Background()

	insertSwing, _ := s.db.Prepare(`INSERT OR REPLACE INTO swings(tick,seq,actor,event,held,processed,commands,code,raw_json) VALUES(?,?,?,?,?,?,?,?,?)`)
	upsertStats, _ := s.db.Prepare(`INSERT INTO actor_stats(actor,swings,tiles_harvested,blocks_destroyed,items_deposited,items_spilled,entities_hit,tools_broken)
		VALUES(?,?,?,?,?,?,?,?)
		ON CONFLICT(actor) DO UPDATE SET
			swings = swings + excluded.swings,
			tiles_harvested = tiles_harvested + excluded.tiles_harvested,
			blocks_destroyed = blocks_destroyed + excluded.blocks_destroyed,
			items_deposited = items_deposited + excluded.items_deposited,
			items_spilled = items_spilled + excluded.items_spilled,
			entities_hit = entities_hit + excluded.entities_hit,
			tools_broken = tools_broken + excluded.tools_broken`)
	defer func() {
		if insertSwing != nil {
			_ = insertSwing.Close()
		}
		if upsertStats != nil {
			_ = upsertStats.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 500
		commitMaxWait = 2 * time.Second

		lastSwingTick uint64
		swingSeq      int
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range s.ch {
		if r.kind == reqFlush {
			commit()
			close(r.done)
			continue
		}
		begin()
		if tx == nil {
			continue
		}
		switch r.kind {
		case reqSwing:
			e := r.swing
			if e.Tick != lastSwingTick {
				lastSwingTick = e.Tick
				swingSeq = 0
			}
			seq := swingSeq
			swingSeq++
			raw, _ := json.Marshal(e)
			if insertSwing != nil {
				if _, err := tx.Stmt(insertSwing).Exec(
					int64(e.Tick),
					seq,
					e.ActorID,
					e.Event,
					e.Held,
					e.Processed,
					e.Commands,
					e.Code,
					string(raw),
				); err != nil {
					rollback()
					continue
				}
				opCount++
			}
			if upsertStats != nil {
				if _, err := tx.Stmt(upsertStats).Exec(e.ActorID, 1, 0, 0, 0, 0, 0, 0); err != nil {
					rollback()
					continue
				}
				opCount++
			}

		case reqDelta:
			d := r.delta
			if upsertStats != nil {
				if _, err := tx.Stmt(upsertStats).Exec(
					d.Actor, 0,
					d.TilesHarvested,
					d.BlocksDestroyed,
					d.ItemsDeposited,
					d.ItemsSpilled,
					d.EntitiesHit,
					d.ToolsBroken,
				); err != nil {
					rollback()
					continue
				}
				opCount++
			}
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	commit()
}
