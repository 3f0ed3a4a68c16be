package effectchain

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

func TestSetParamsAppliedBetweenTicks(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	id := mustAdd(t, c, "scale")

	values := []float64{1, 3}
	if err := c.SetParams(id, values); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	values[1] = 100

	if got := c.Effect(id).Params(); got[1] != 2 {
		t.Fatalf("update applied before the tick: %v", got)
	}

	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", c.Pending())
	}

	if got := c.ProcessSample(10); got != 30 {
		t.Fatalf("ProcessSample(10) = %d, want 30", got)
	}

	if c.Pending() != 0 {
		t.Fatalf("Pending() = %d after tick", c.Pending())
	}
}

func TestSwitchQueued(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	id := mustAdd(t, c, "scale")

	if err := c.Switch(id, effects.Off); err != nil {
		t.Fatalf("Switch() error = %v", err)
	}

	if c.Effect(id).State() != effects.On {
		t.Fatal("switch applied before the tick")
	}

	if got := c.ProcessSample(10); got != 10 {
		t.Fatalf("ProcessSample(10) = %d, want bypassed 10", got)
	}
}

func TestControlQueueFull(t *testing.T) {
	t.Parallel()

	c := newTestChain(t, WithControlQueue(2))
	id := mustAdd(t, c, "add")

	for i := range 2 {
		if err := c.SetParams(id, []float64{1, float64(i)}); err != nil {
			t.Fatalf("post %d: error = %v", i, err)
		}
	}

	if err := c.SetParams(id, []float64{1, 9}); !errors.Is(err, ErrControlQueueFull) {
		t.Fatalf("third post: error = %v, want ErrControlQueueFull", err)
	}

	// Updates run in order; the last accepted one wins.
	if got := c.ProcessSample(10); got != 11 {
		t.Fatalf("ProcessSample(10) = %d, want 11", got)
	}
}

func TestQueuedUpdateForMissingNode(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)

	if err := c.SetParams("ghost", []float64{1}); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	c.DrainControl()

	if c.Pending() != 0 {
		t.Fatalf("Pending() = %d", c.Pending())
	}
}

func TestQueryRunsOnTickingGoroutine(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	mustAdd(t, c, "add")

	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			select {
			case <-stop:
				return
			default:
				c.ProcessSample(0)
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var ids []string

	err := c.Query(ctx, func(c *Chain) {
		for _, n := range c.Nodes() {
			ids = append(ids, n.ID)
		}
	})

	close(stop)
	<-done

	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if !slices.Equal(ids, []string{"add-1"}) {
		t.Fatalf("ids = %v", ids)
	}
}

func TestQueryTimesOutWithoutTicks(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.Query(ctx, func(*Chain) {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Query() error = %v, want DeadlineExceeded", err)
	}
}

func TestResetDropsPendingUpdates(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	id := mustAdd(t, c, "add")

	_ = c.SetParams(id, []float64{1, 50})
	c.ProcessSample(1)
	_ = c.SetParams(id, []float64{1, 70})
	c.Reset()

	if c.Pending() != 0 || c.History().Cursor() != 0 {
		t.Fatalf("Reset left %d pending, cursor %d", c.Pending(), c.History().Cursor())
	}

	if got := c.ProcessSample(0); got != 50 {
		t.Fatalf("ProcessSample(0) = %d, want 50", got)
	}
}
