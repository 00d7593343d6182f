package analyzer

import (
	"context"
	"sync"
)

// Coalescer serialises analyses for a stream of triggers. At most one
// analysis runs at a time, and any number of triggers arriving while one runs
// collapse into a single follow-up run.
type Coalescer struct {
	analyzer *Analyzer
	deliver  func(*Result, error)

	mu      sync.Mutex
	idle    *sync.Cond
	running bool
	pending bool
	ctx     context.Context
}

// NewCoalescer creates a coalescer that hands every completed analysis to
// deliver. Deliveries happen on the coalescer's goroutine, one at a time.
func NewCoalescer(ctx context.Context, a *Analyzer, deliver func(*Result, error)) *Coalescer {
	c := &Coalescer{analyzer: a, deliver: deliver, ctx: ctx}
	c.idle = sync.NewCond(&c.mu)
	return c
}

// Trigger requests an analysis.
func (c *Coalescer) Trigger() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.pending = true
		return
	}
	c.running = true
	go c.loop()
}

func (c *Coalescer) loop() {
	for {
		result, err := c.analyzer.Analyze(c.ctx)
		c.deliver(result, err)

		c.mu.Lock()
		if !c.pending || c.ctx.Err() != nil {
			c.running = false
			c.pending = false
			c.idle.Broadcast()
			c.mu.Unlock()
			return
		}
		c.pending = false
		c.mu.Unlock()
	}
}

// Wait blocks until no analysis is running or pending.
func (c *Coalescer) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.running {
		c.idle.Wait()
	}
}
