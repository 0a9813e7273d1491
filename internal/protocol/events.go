package protocol

// Event kinds emitted by the simulation each tick. The renderer/audio layer
// reacts to these; the sim never calls back into it.
const (
	EvItemStateChanged = "ITEM_STATE_CHANGED"
	EvItemSpawned      = "ITEM_SPAWNED"
	EvItemConsumed     = "ITEM_CONSUMED"
	EvItemDropped      = "ITEM_DROPPED"
	EvOrderGenerated   = "ORDER_GENERATED"
	EvOrderExpired     = "ORDER_EXPIRED"
	EvOrderFulfilled   = "ORDER_FULFILLED"
	EvScoreChanged     = "SCORE_CHANGED"
	EvComboChanged     = "COMBO_CHANGED"
)

type Event struct {
	Kind string `json:"kind"`
	At   int64  `json:"at"` // sim time, ms

	ItemID    string  `json:"item_id,omitempty"`
	ItemKind  string  `json:"item_kind,omitempty"`
	ItemState string  `json:"item_state,omitempty"`
	Progress  float64 `json:"progress,omitempty"`
	StationID string  `json:"station_id,omitempty"`

	OrderID  string `json:"order_id,omitempty"`
	Dish     string `json:"dish,omitempty"`
	Deadline int64  `json:"deadline,omitempty"`

	Delta int `json:"delta,omitempty"`
	Total int `json:"total,omitempty"`
	Combo int `json:"combo,omitempty"`

	Reason string `json:"reason,omitempty"`
}
