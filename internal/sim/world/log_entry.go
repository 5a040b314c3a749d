package world

// SwingLogEntry is one journaled scythe swing: the inbound event and what it
// affected. Written as JSONL by internal/persistence/log.
type SwingLogEntry struct {
	Tick      uint64 `json:"t"`
	ActorID   string `json:"actor_id"`
	Event     string `json:"event"`
	Held      string `json:"held,omitempty"`
	Processed int    `json:"processed"`
	Commands  int    `json:"commands"`
	Code      string `json:"code,omitempty"`
}
