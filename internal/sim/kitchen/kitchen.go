package kitchen

import (
	"fmt"
	"log"
	"time"

	"freezerush/internal/protocol"
	"freezerush/internal/sim/catalogs"
	"freezerush/internal/sim/tuning"
)

// Kitchen is the authoritative simulation: item registry, station layout,
// order book and score ledger behind one single-threaded mutation surface.
// The Run loop in loop.go serializes external access; tests drive Tick and
// Interact directly.
type Kitchen struct {
	tun      tuning.Tuning
	diff     tuning.Difficulty
	diffName string
	cats     *catalogs.Catalogs
	layout   *Layout
	reg      *Registry
	orders   *OrderBook
	ledger   *Ledger
	logger   *log.Logger

	sessionID   string
	now         int64
	nextDirtyAt int64
	events      []protocol.Event

	joinCh     chan joinRequest
	leaveCh    chan string
	interactCh chan interactRequest
	stateCh    chan stateRequest
	stop       chan struct{}

	clients map[string]chan []byte
	nextPID int
	sink    func([]protocol.Event)
	tickObs func(time.Duration)
}

// SetEventSink registers an observer for each tick's event batch. It must be
// called before Run starts; the sink runs on the sim goroutine and should not
// block.
func (k *Kitchen) SetEventSink(fn func([]protocol.Event)) { k.sink = fn }

// SetTickObserver registers an observer for per-tick step durations. Same
// rules as SetEventSink.
func (k *Kitchen) SetTickObserver(fn func(time.Duration)) { k.tickObs = fn }

func New(tun tuning.Tuning, diffName string, cats *catalogs.Catalogs, seed int64, logger *log.Logger) (*Kitchen, error) {
	diff, err := tun.Difficulty(diffName)
	if err != nil {
		return nil, err
	}
	layout, err := DefaultLayout(cats.Ingredients.Palette, 6)
	if err != nil {
		return nil, err
	}
	k := &Kitchen{
		sessionID: fmt.Sprintf("K%08X", uint64(seed)),
		tun:       tun,
		diff:      diff,
		diffName:  diffName,
		cats:      cats,
		layout:    layout,
		reg:       NewRegistry(layout, int64(tun.ThawDurationMs), int64(tun.WashDurationMs)),
		orders:    NewOrderBook(&cats.Recipes, diff, seed, 0),
		ledger:    NewLedger(tun.ScoreFloor, int64(tun.ComboWindowMs), tun.ComboBonusCap),
		logger:    logger,

		joinCh:     make(chan joinRequest, 8),
		leaveCh:    make(chan string, 8),
		interactCh: make(chan interactRequest, 64),
		stateCh:    make(chan stateRequest, 8),
		stop:       make(chan struct{}),
		clients:    map[string]chan []byte{},
	}
	if tun.DirtyPlateEveryMs > 0 {
		k.nextDirtyAt = int64(tun.DirtyPlateEveryMs)
	}
	k.seedPlates()
	_ = k.reg.DrainEvents() // initial layout is not an event stream
	return k, nil
}

// seedPlates puts the starting clean plates on the surfaces nearest the
// basin.
func (k *Kitchen) seedPlates() {
	for i := 0; i < k.tun.StartingPlates; i++ {
		target, ok := k.reg.FindNearestFreeSurface()
		if !ok {
			return
		}
		if _, code := k.reg.Create(KindPlate, "", StationOf(target), 0); code != "" {
			return
		}
	}
}

func (k *Kitchen) emit(ev protocol.Event) {
	k.events = append(k.events, ev)
}

// Tick advances every countdown by the wall of elapsed sim time and returns
// the tick's events. Within one tick: item timers, then order expiries, then
// order generation, so a slot freed by an expiry can refill immediately.
func (k *Kitchen) Tick(now int64) []protocol.Event {
	prev := k.now

	k.reg.AdvanceThaw(now)
	for _, res := range k.reg.AdvanceWash(now, prev) {
		if res.Dropped && k.logger != nil {
			k.logger.Printf("wash: no free surface for clean plate (was %s), dropped", res.Plate)
		}
	}
	k.tickDirtyPlates(now)

	expired, generated := k.orders.Tick(now)
	for _, o := range expired {
		k.ledger.RecordExpiry(k.tun.ExpiryPenalty)
		k.emit(protocol.Event{
			Kind:    protocol.EvOrderExpired,
			At:      now,
			OrderID: o.ID,
			Dish:    o.Dish,
		})
		k.emit(protocol.Event{
			Kind:  protocol.EvScoreChanged,
			At:    now,
			Delta: -k.tun.ExpiryPenalty,
			Total: k.ledger.Total(),
		})
	}
	for _, o := range generated {
		k.emit(protocol.Event{
			Kind:     protocol.EvOrderGenerated,
			At:       now,
			OrderID:  o.ID,
			Dish:     o.Dish,
			Deadline: o.Deadline,
		})
	}

	k.now = now
	out := append(k.reg.DrainEvents(), k.events...)
	k.events = nil
	return out
}

// tickDirtyPlates drops a dirty plate into an empty wash basin on a fixed
// cadence, keeping the wash loop fed.
func (k *Kitchen) tickDirtyPlates(now int64) {
	if k.tun.DirtyPlateEveryMs <= 0 || now < k.nextDirtyAt {
		return
	}
	k.nextDirtyAt = now + int64(k.tun.DirtyPlateEveryMs)
	for _, id := range k.layout.IDs() {
		s, _ := k.layout.Station(id)
		if s.Kind != StationWashBasin || k.reg.Occupied(StationOf(id)) {
			continue
		}
		_, _ = k.reg.Create(KindDirtyPlate, "", StationOf(id), now)
		return
	}
}

// Now returns the sim time of the last tick.
func (k *Kitchen) Now() int64 { return k.now }

// ActiveOrders returns a read-only snapshot of the display queue,
// newest-first.
func (k *Kitchen) ActiveOrders() []protocol.OrderView {
	orders := k.orders.Active()
	out := make([]protocol.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView(o, k.now))
	}
	return out
}

// Item returns a read-only snapshot of one item.
func (k *Kitchen) Item(id ItemID) (protocol.ItemView, bool) {
	it, ok := k.reg.Get(id)
	if !ok {
		return protocol.ItemView{}, false
	}
	return itemView(it), true
}

// Held returns the item in a player's hand, if any.
func (k *Kitchen) Held(player string) (protocol.ItemView, bool) {
	it, ok := k.reg.At(HandOf(player))
	if !ok {
		return protocol.ItemView{}, false
	}
	return itemView(it), true
}

func (k *Kitchen) Stats() protocol.StatsView { return k.ledger.Snapshot() }

// Stations returns the full station list with occupants, layout order.
func (k *Kitchen) Stations() []protocol.StationView {
	ids := k.layout.IDs()
	out := make([]protocol.StationView, 0, len(ids))
	for _, id := range ids {
		s, _ := k.layout.Station(id)
		v := protocol.StationView{
			ID:         string(s.ID),
			Kind:       string(s.Kind),
			Ingredient: s.Ingredient,
		}
		if it, ok := k.reg.At(StationOf(id)); ok {
			iv := itemView(it)
			v.Occupant = &iv
		}
		out = append(out, v)
	}
	return out
}

func (k *Kitchen) CatalogDigests() protocol.CatalogDigests {
	return protocol.CatalogDigests{
		IngredientsDigest: k.cats.Ingredients.Digest,
		RecipesDigest:     k.cats.Recipes.Digest,
		IngredientCount:   len(k.cats.Ingredients.Defs),
		RecipeCount:       len(k.cats.Recipes.ByDish),
	}
}

func (k *Kitchen) TickMs() int { return k.tun.TickMs }

func (k *Kitchen) SessionID() string { return k.sessionID }

func (k *Kitchen) DifficultyName() string { return k.diffName }

func (k *Kitchen) newPlayerID() string {
	k.nextPID++
	return fmt.Sprintf("P%03d", k.nextPID)
}

func itemView(it *Item) protocol.ItemView {
	return protocol.ItemView{
		ID:         string(it.ID),
		Kind:       string(it.Kind),
		Ingredient: it.Ingredient,
		Dish:       it.Dish,
		State:      string(it.State),
		Progress:   it.Progress,
		Contents:   append([]string(nil), it.Contents...),
		Holder:     it.Holder.key(),
	}
}

func orderView(o *Order, now int64) protocol.OrderView {
	v := protocol.OrderView{
		ID:        o.ID,
		Dish:      o.Dish,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Deadline:  o.Deadline,
		TotalMs:   o.TotalMs,
		BaseScore: o.BaseScore,
	}
	if o.Status == OrderWaiting {
		v.RemainingMs = o.RemainingMs(now)
	}
	return v
}
