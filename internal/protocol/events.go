package protocol

// Event types fired by the host when a player interacts with a scythe.
const (
	EventUseOnBlock = "USE_ON_BLOCK"
	EventHitBlock   = "HIT_BLOCK"
	EventHitEntity  = "HIT_ENTITY"
)

// Event is one inbound host interaction. Pos and Facing describe the actor at
// the moment of the swing; Block is the targeted cell for block events and
// TargetID the struck entity for entity events.
type Event struct {
	Type    string `json:"type"`
	Tick    uint64 `json:"t"`
	ActorID string `json:"actor_id"`

	Pos    [3]float64 `json:"pos"`
	Facing [3]float64 `json:"facing"`

	Block    [3]int `json:"block,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}
