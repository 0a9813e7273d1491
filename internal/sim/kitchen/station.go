package kitchen

import (
	"fmt"
	"sort"
)

type StationKind string

const (
	StationStorage    StationKind = "STORAGE"
	StationHeatSource StationKind = "HEAT_SOURCE"
	StationWashBasin  StationKind = "WASH_BASIN"
	StationAssembly   StationKind = "ASSEMBLY_SURFACE"
	StationServing    StationKind = "SERVING_WINDOW"
)

// Station is a fixed interaction point with a single occupancy slot.
// Occupancy itself lives in the registry's holder index so that an item can
// never be in two places.
type Station struct {
	ID         StationID
	Kind       StationKind
	Ingredient string // storage slots only: the ingredient type they dispense
}

// Accepts is the static capability table. Storage is a source, never a sink.
// The serving window accepts anything because it consumes anything.
func (s *Station) Accepts(kind ItemKind) bool {
	switch s.Kind {
	case StationStorage:
		return false
	case StationHeatSource:
		return kind == KindIngredient
	case StationWashBasin:
		return kind == KindDirtyPlate
	case StationAssembly, StationServing:
		return true
	default:
		return false
	}
}

// Layout is the fixed set of stations for one kitchen. surfaceOrder is the
// distance-ordered candidate list used when a freshly washed plate needs a
// place to land.
type Layout struct {
	byID         map[StationID]*Station
	order        []StationID
	surfaceOrder []StationID
}

func NewLayout(stations []Station, surfaceOrder []StationID) (*Layout, error) {
	l := &Layout{byID: make(map[StationID]*Station, len(stations))}
	for i := range stations {
		s := stations[i]
		if s.ID == "" {
			return nil, fmt.Errorf("layout: station with empty id")
		}
		if _, dup := l.byID[s.ID]; dup {
			return nil, fmt.Errorf("layout: duplicate station %s", s.ID)
		}
		if s.Kind == StationStorage && s.Ingredient == "" {
			return nil, fmt.Errorf("layout: storage %s has no ingredient type", s.ID)
		}
		l.byID[s.ID] = &s
		l.order = append(l.order, s.ID)
	}
	for _, id := range surfaceOrder {
		if _, ok := l.byID[id]; !ok {
			return nil, fmt.Errorf("layout: surface candidate %s does not exist", id)
		}
	}
	l.surfaceOrder = surfaceOrder
	return l, nil
}

func (l *Layout) Station(id StationID) (*Station, bool) {
	s, ok := l.byID[id]
	return s, ok
}

func (l *Layout) IDs() []StationID {
	out := make([]StationID, len(l.order))
	copy(out, l.order)
	return out
}

// DefaultLayout builds the standard kitchen floor: one storage slot per
// ingredient type, two heat sources, one wash basin, a row of assembly
// surfaces and the serving window. The surfaces nearest the basin come first
// in the wash-spawn candidate list.
func DefaultLayout(ingredients []string, surfaces int) (*Layout, error) {
	if surfaces < 1 {
		surfaces = 1
	}
	sorted := make([]string, len(ingredients))
	copy(sorted, ingredients)
	sort.Strings(sorted)

	var stations []Station
	for _, ing := range sorted {
		stations = append(stations, Station{
			ID:         StationID("storage_" + ing),
			Kind:       StationStorage,
			Ingredient: ing,
		})
	}
	stations = append(stations,
		Station{ID: "heat_1", Kind: StationHeatSource},
		Station{ID: "heat_2", Kind: StationHeatSource},
		Station{ID: "basin", Kind: StationWashBasin},
		Station{ID: "window", Kind: StationServing},
	)
	var surfaceOrder []StationID
	for i := 1; i <= surfaces; i++ {
		id := StationID(fmt.Sprintf("surface_%d", i))
		stations = append(stations, Station{ID: id, Kind: StationAssembly})
		surfaceOrder = append(surfaceOrder, id)
	}
	return NewLayout(stations, surfaceOrder)
}
