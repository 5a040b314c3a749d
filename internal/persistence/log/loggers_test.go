package log

import (
	"path/filepath"
	"testing"

	"scythecraft.gg/internal/sim/world"
)

func TestSwingLogger_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	l := NewSwingLogger(dir)

	entries := []world.SwingLogEntry{
		{Tick: 1, ActorID: "p1", Event: "use_on_block", Held: "IRON_SCYTHE", Processed: 3, Commands: 9},
		{Tick: 2, ActorID: "p1", Event: "hit_entity", Held: "IRON_SCYTHE", Commands: 1},
		{Tick: 3, ActorID: "p2", Event: "use_on_block", Code: "E_BAD_REQUEST"},
	}
	for _, e := range entries {
		if err := l.WriteSwing(e); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	segs, err := filepath.Glob(filepath.Join(dir, "swings", "*.jsonl.zst"))
	if err != nil || len(segs) != 1 {
		t.Fatalf("segments = %v (err %v), want one", segs, err)
	}
	got, err := ReadSwings(segs[0])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("entries = %d, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], entries[i])
		}
	}
}
