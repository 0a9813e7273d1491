package kitchen

import (
	"testing"

	"freezerush/internal/sim/tuning"
)

func newTestBook(t *testing.T, diff tuning.Difficulty) *OrderBook {
	t.Helper()
	cats := testCatalogs(t)
	return NewOrderBook(&cats.Recipes, diff, 1337, 0)
}

func onlySimple() tuning.Difficulty {
	// Tier "simple" holds a single recipe, so generation is deterministic
	// regardless of the rng draw.
	return tuning.Difficulty{
		OrderIntervalMs:     8000,
		MaxConcurrentOrders: 4,
		ScoreMultiplier:     1,
		TimeMultiplier:      1.0,
		RecipeTier:          "simple",
	}
}

func TestOrderGenerationInterval(t *testing.T) {
	b := newTestBook(t, onlySimple())

	for now := int64(1000); now < 8000; now += 1000 {
		if _, gen := b.Tick(now); len(gen) != 0 {
			t.Fatalf("order generated at %dms, before the interval elapsed", now)
		}
	}
	_, gen := b.Tick(8000)
	if len(gen) != 1 {
		t.Fatalf("got %d orders at the interval boundary, want 1", len(gen))
	}
	o := gen[0]
	if o.Dish != "millet_cake" || o.Status != OrderWaiting {
		t.Fatalf("generated %q/%s", o.Dish, o.Status)
	}
	if o.Deadline != 8000+30000 || o.TotalMs != 30000 {
		t.Fatalf("deadline=%d total=%d", o.Deadline, o.TotalMs)
	}
	// Interval restarts from the generation time.
	if _, gen := b.Tick(15000); len(gen) != 0 {
		t.Fatalf("second order before a full interval")
	}
	if _, gen := b.Tick(16000); len(gen) != 1 {
		t.Fatalf("no second order after a full interval")
	}
}

func TestOrderQueueNewestFirst(t *testing.T) {
	b := newTestBook(t, onlySimple())
	b.Tick(8000)
	b.Tick(16000)
	b.Tick(24000)

	q := b.Active()
	if len(q) != 3 {
		t.Fatalf("queue length %d", len(q))
	}
	for i := 1; i < len(q); i++ {
		if q[i-1].CreatedAt <= q[i].CreatedAt {
			t.Fatalf("queue not newest-first: %d then %d", q[i-1].CreatedAt, q[i].CreatedAt)
		}
	}
}

func TestOrderConcurrencyCap(t *testing.T) {
	diff := onlySimple()
	diff.MaxConcurrentOrders = 2
	b := newTestBook(t, diff)
	b.Tick(8000)
	b.Tick(16000)
	if _, gen := b.Tick(24000); len(gen) != 0 {
		t.Fatalf("generated past the concurrency cap")
	}
}

func TestOrderExpiryFreesSlotSameTick(t *testing.T) {
	diff := onlySimple()
	diff.MaxConcurrentOrders = 1
	b := newTestBook(t, diff)
	b.Tick(8000) // deadline 38000

	// At the deadline the waiting order expires and, with the interval long
	// since elapsed, its slot refills within the same tick.
	expired, generated := b.Tick(38000)
	if len(expired) != 1 || expired[0].Status != OrderExpired {
		t.Fatalf("expired=%v", expired)
	}
	if len(generated) != 1 {
		t.Fatalf("slot freed by expiry not refilled: generated=%d", len(generated))
	}
}

func TestOrderExpiredRetainedButInert(t *testing.T) {
	b := newTestBook(t, onlySimple())
	b.Tick(8000)
	b.Tick(38000) // expires the first, generates a second

	q := b.Active()
	if len(q) != 2 {
		t.Fatalf("queue length %d, want expired order retained", len(q))
	}
	// Fulfill must skip the expired entry even though both ask for the same
	// dish.
	o, _, ok := b.Complete("millet_cake", 39000)
	if !ok {
		t.Fatalf("no completable order")
	}
	if o.Status != OrderFulfilled || o.CreatedAt != 38000 {
		t.Fatalf("completed order %+v, want the waiting one", o)
	}
	for _, rem := range b.Active() {
		if rem.Status != OrderExpired {
			t.Fatalf("leftover order %+v", rem)
		}
	}
}

func TestCompleteFirstMatchWins(t *testing.T) {
	diff := onlySimple()
	diff.OrderIntervalMs = 1000
	b := newTestBook(t, diff)
	b.Tick(1000)
	b.Tick(2000)

	_, _, ok := b.Complete("millet_cake", 3000)
	if !ok {
		t.Fatalf("complete failed")
	}
	q := b.Active()
	if len(q) != 1 {
		t.Fatalf("exactly one of two identical orders should be removed, got %d left", len(q))
	}
	// Newest-first queue order means the newer order is the first match.
	if q[0].CreatedAt != 1000 {
		t.Fatalf("remaining order created at %d, want the older one", q[0].CreatedAt)
	}
}

func TestCompleteTimeBonus(t *testing.T) {
	b := newTestBook(t, onlySimple())
	b.Tick(8000) // base 100, total 30000, deadline 38000

	_, delta, ok := b.Complete("millet_cake", 20000)
	if !ok {
		t.Fatalf("complete failed")
	}
	// remaining 18000 of 30000: bonus floor(50*18000/30000) = 30.
	if delta != 130 {
		t.Fatalf("delta %d, want 130", delta)
	}
}

func TestCompleteNoMatchingDish(t *testing.T) {
	b := newTestBook(t, onlySimple())
	b.Tick(8000)
	if _, _, ok := b.Complete("beef_rice", 9000); ok {
		t.Fatalf("completed a dish no order asked for")
	}
	if len(b.Active()) != 1 {
		t.Fatalf("failed completion mutated the queue")
	}
}
