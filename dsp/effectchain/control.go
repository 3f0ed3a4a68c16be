package effectchain

import (
	"context"
	"errors"
	"slices"

	"github.com/cwbudde/algo-gtrfx/dsp/effects"
)

// ErrControlQueueFull is returned by Post when the audio side has not
// drained earlier updates yet.
var ErrControlQueueFull = errors.New("effectchain: control queue full")

// Post enqueues update to run on the audio goroutine before the next
// tick. It never blocks.
func (c *Chain) Post(update func(*Chain)) error {
	if update == nil {
		return nil
	}

	select {
	case c.control <- update:
		return nil
	default:
		c.logger.Warn("control update rejected", "pending", len(c.control))
		return ErrControlQueueFull
	}
}

// SetParams queues a parameter vector for the node with the given ID.
// The copy of values is taken before Post returns.
func (c *Chain) SetParams(id string, values []float64) error {
	values = slices.Clone(values)

	return c.Post(func(c *Chain) {
		if err := c.ApplyParams(id, values); err != nil {
			c.logger.Warn("queued params dropped", "id", id, "error", err)
		}
	})
}

// Switch queues an on/off change for the node with the given ID.
func (c *Chain) Switch(id string, state effects.State) error {
	return c.Post(func(c *Chain) {
		if err := c.ApplySwitch(id, state); err != nil {
			c.logger.Warn("queued switch dropped", "id", id, "error", err)
		}
	})
}

// Query runs fn on the audio goroutine and waits for it to finish. The
// chain must be ticking, otherwise Query blocks until ctx is done.
func (c *Chain) Query(ctx context.Context, fn func(*Chain)) error {
	done := make(chan struct{})

	err := c.Post(func(c *Chain) {
		fn(c)
		close(done)
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of queued updates.
func (c *Chain) Pending() int { return len(c.control) }

// DrainControl applies every queued update. ProcessSample calls it each
// tick; callers that are not ticking may call it directly.
func (c *Chain) DrainControl() { c.drainControl() }

func (c *Chain) drainControl() {
	for {
		select {
		case update := <-c.control:
			update(c)
		default:
			return
		}
	}
}
