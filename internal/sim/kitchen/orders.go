package kitchen

import (
	"fmt"
	"math/rand"

	"freezerush/internal/sim/catalogs"
	"freezerush/internal/sim/tuning"
)

type OrderStatus string

const (
	OrderWaiting   OrderStatus = "WAITING"
	OrderExpired   OrderStatus = "EXPIRED"
	OrderFulfilled OrderStatus = "FULFILLED"
)

// Order is a live request for one dish. Status only ever moves
// Waiting->Expired or Waiting->Fulfilled.
type Order struct {
	ID         string
	Dish       string
	Name       string
	Status     OrderStatus
	CreatedAt  int64
	Deadline   int64
	TotalMs    int64
	BaseScore  int
	Tier       string
	Complexity int
}

func (o *Order) RemainingMs(now int64) int64 {
	rem := o.Deadline - now
	if rem < 0 {
		return 0
	}
	return rem
}

// OrderBook generates, times out and resolves orders. Expired orders stay in
// the queue grayed-out for display but are inert for matching; fulfilled
// orders are removed.
type OrderBook struct {
	cat  *catalogs.RecipeCatalog
	diff tuning.Difficulty
	rng  *rand.Rand

	queue   []*Order // display order, newest first
	nextID  int
	lastGen int64
}

func NewOrderBook(cat *catalogs.RecipeCatalog, diff tuning.Difficulty, seed, start int64) *OrderBook {
	return &OrderBook{
		cat:     cat,
		diff:    diff,
		rng:     rand.New(rand.NewSource(seed)),
		lastGen: start,
	}
}

func (b *OrderBook) waitingCount() int {
	n := 0
	for _, o := range b.queue {
		if o.Status == OrderWaiting {
			n++
		}
	}
	return n
}

// Tick expires overdue orders first, then considers generating a new one, so
// a slot freed by an expiry can be refilled within the same tick.
func (b *OrderBook) Tick(now int64) (expired, generated []*Order) {
	for _, o := range b.queue {
		if o.Status == OrderWaiting && now >= o.Deadline {
			o.Status = OrderExpired
			expired = append(expired, o)
		}
	}
	if b.waitingCount() < b.diff.MaxConcurrentOrders &&
		now-b.lastGen >= int64(b.diff.OrderIntervalMs) {
		if o := b.generate(now); o != nil {
			b.lastGen = now
			generated = append(generated, o)
		}
	}
	return expired, generated
}

func (b *OrderBook) generate(now int64) *Order {
	recipes := b.cat.ForTier(b.diff.RecipeTier)
	if len(recipes) == 0 {
		return nil
	}
	r := recipes[b.rng.Intn(len(recipes))]

	base := r.BaseScore
	if base <= 0 {
		base = r.Complexity * 100
	}
	total := int64(float64(r.BaseTimeMs) * b.diff.TimeMultiplier)
	b.nextID++
	o := &Order{
		ID:         fmt.Sprintf("O%04d", b.nextID),
		Dish:       r.Dish,
		Name:       r.Name,
		Status:     OrderWaiting,
		CreatedAt:  now,
		Deadline:   now + total,
		TotalMs:    total,
		BaseScore:  base * b.diff.ScoreMultiplier,
		Tier:       r.Tier,
		Complexity: r.Complexity,
	}
	// Newest orders go to the front of the display queue.
	b.queue = append([]*Order{o}, b.queue...)
	return o
}

// Complete fulfills the first waiting order for the dish, in queue order.
// When two orders share a dish type exactly one is removed (first match
// wins, deliberately not the most time-pressured one).
func (b *OrderBook) Complete(dish string, now int64) (*Order, int, bool) {
	for i, o := range b.queue {
		if o.Status != OrderWaiting || o.Dish != dish {
			continue
		}
		o.Status = OrderFulfilled
		b.queue = append(b.queue[:i], b.queue[i+1:]...)
		timeBonus := 0
		if o.TotalMs > 0 {
			timeBonus = int(50 * o.RemainingMs(now) / o.TotalMs)
		}
		return o, o.BaseScore + timeBonus, true
	}
	return nil, 0, false
}

// Active returns the display queue newest-first, expired orders included.
func (b *OrderBook) Active() []*Order {
	out := make([]*Order, len(b.queue))
	copy(out, b.queue)
	return out
}

// HasWaiting reports whether any waiting order asks for the dish.
func (b *OrderBook) HasWaiting(dish string) bool {
	for _, o := range b.queue {
		if o.Status == OrderWaiting && o.Dish == dish {
			return true
		}
	}
	return false
}
