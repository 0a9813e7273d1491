package kitchen

type ItemID string

type StationID string

type ItemKind string

const (
	KindIngredient ItemKind = "INGREDIENT"
	KindPlate      ItemKind = "PLATE"
	KindDirtyPlate ItemKind = "DIRTY_PLATE"
	KindDish       ItemKind = "DISH"
)

type ItemState string

const (
	StateFrozen  ItemState = "FROZEN"
	StateThawing ItemState = "THAWING"
	StateThawed  ItemState = "THAWED"
	StateClean   ItemState = "CLEAN"
	StateDirty   ItemState = "DIRTY"
	StateWashing ItemState = "WASHING"
	StateReady   ItemState = "READY"
)

// Holder is the single owning location of an item: a player hand or a station
// slot. Exactly one of the fields is set.
type Holder struct {
	Hand    string
	Station StationID
}

func HandOf(player string) Holder       { return Holder{Hand: player} }
func StationOf(id StationID) Holder     { return Holder{Station: id} }
func (h Holder) InHand() bool           { return h.Hand != "" }
func (h Holder) AtStation() bool        { return h.Station != "" }
func (h Holder) key() string {
	if h.Hand != "" {
		return "hand:" + h.Hand
	}
	return "station:" + string(h.Station)
}

// Item is a physical single-owner entity. Which fields are meaningful depends
// on Kind; illegal combinations (a dish with thaw progress) never arise
// because state transitions are gated per kind.
type Item struct {
	ID         ItemID
	Kind       ItemKind
	Ingredient string // ingredient type, Kind==KindIngredient
	Dish       string // dish type, Kind==KindDish
	State      ItemState
	Holder     Holder

	// Contents is the ordered multiset of ingredient types already placed on
	// a plate mid-assembly. Empty for a bare plate.
	Contents []string

	// Progress is the thaw or wash progress in [0,1]. For a thawing item it
	// is derived from thawStart while the item sits on a heat source and
	// frozen in place when it is removed.
	Progress float64

	thawStart    int64 // virtual start time (ms); valid while thawing on heat
	washSignalAt int64 // last sim time the wash-hold signal was seen
}

func initialState(kind ItemKind) ItemState {
	switch kind {
	case KindIngredient:
		return StateFrozen
	case KindPlate:
		return StateClean
	case KindDirtyPlate:
		return StateDirty
	default:
		return StateReady
	}
}
