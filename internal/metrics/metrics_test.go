package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"freezerush/internal/protocol"
)

func TestObserveEvents(t *testing.T) {
	c := New()
	c.ObserveEvents([]protocol.Event{
		{Kind: protocol.EvOrderGenerated},
		{Kind: protocol.EvOrderGenerated},
		{Kind: protocol.EvOrderFulfilled, Delta: 141},
		{Kind: protocol.EvScoreChanged, Total: 141},
		{Kind: protocol.EvComboChanged, Combo: 2},
	})

	if got := testutil.ToFloat64(c.ordersGenerated); got != 2 {
		t.Fatalf("orders generated: got %v", got)
	}
	if got := testutil.ToFloat64(c.ordersFulfilled); got != 1 {
		t.Fatalf("orders fulfilled: got %v", got)
	}
	if got := testutil.ToFloat64(c.ordersActive); got != 1 {
		t.Fatalf("orders active: got %v", got)
	}
	if got := testutil.ToFloat64(c.score); got != 141 {
		t.Fatalf("score gauge: got %v", got)
	}
	if got := testutil.ToFloat64(c.combo); got != 2 {
		t.Fatalf("combo gauge: got %v", got)
	}
}

func TestObserveTick(t *testing.T) {
	c := New()
	c.ObserveTick(250 * time.Microsecond)
	c.ObserveTick(time.Millisecond)
	if got := testutil.CollectAndCount(c.tickDuration); got != 1 {
		t.Fatalf("tick histogram series: got %d", got)
	}
}
