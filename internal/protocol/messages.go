package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	PlayerName      string `json:"player_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	PlayerID        string         `json:"player_id"`
	SessionID       string         `json:"session_id,omitempty"`
	TickMs          int            `json:"tick_ms"`
	Difficulty      string         `json:"difficulty"`
	Catalogs        CatalogDigests `json:"catalogs"`
	Stations        []StationView  `json:"stations"`
}

type CatalogDigests struct {
	IngredientsDigest string `json:"ingredients_digest"`
	RecipesDigest     string `json:"recipes_digest"`
	IngredientCount   int    `json:"ingredient_count"`
	RecipeCount       int    `json:"recipe_count"`
}

// INTERACT (client -> server): one press or one held-frame on a station.
type InteractMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	StationID       string `json:"station_id"`
	SignalHeld      bool   `json:"signal_held,omitempty"`
}

// OUTCOME (server -> client): reply to a single INTERACT.
type OutcomeMsg struct {
	Type    string    `json:"type"`
	ReqID   string    `json:"req_id,omitempty"`
	OK      bool      `json:"ok"`
	Code    string    `json:"code,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Held    *ItemView `json:"held,omitempty"`
	Delta   int       `json:"delta,omitempty"`
	OrderID string    `json:"order_id,omitempty"`
}

// STATE (server -> client): per-tick snapshot plus the tick's events.
type StateMsg struct {
	Type     string        `json:"type"`
	At       int64         `json:"at"`
	Held     *ItemView     `json:"held,omitempty"`
	Stations []StationView `json:"stations"`
	Orders   []OrderView   `json:"orders"`
	Stats    StatsView     `json:"stats"`
	Events   []Event       `json:"events,omitempty"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type ItemView struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	Ingredient string   `json:"ingredient,omitempty"`
	Dish       string   `json:"dish,omitempty"`
	State      string   `json:"state"`
	Progress   float64  `json:"progress,omitempty"`
	Contents   []string `json:"contents,omitempty"`
	Holder     string   `json:"holder"`
}

type StationView struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Ingredient string    `json:"ingredient,omitempty"`
	Occupant   *ItemView `json:"occupant,omitempty"`
}

type OrderView struct {
	ID          string `json:"id"`
	Dish        string `json:"dish"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	Deadline    int64  `json:"deadline"`
	TotalMs     int64  `json:"total_ms"`
	RemainingMs int64  `json:"remaining_ms"`
	BaseScore   int    `json:"base_score"`
}

type StatsView struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Expired   int     `json:"expired"`
	Perfect   int     `json:"perfect"`
	Combo     int     `json:"combo"`
	MaxCombo  int     `json:"max_combo"`
	Accuracy  float64 `json:"accuracy"`
}
