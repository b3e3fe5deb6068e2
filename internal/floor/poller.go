package floor

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the cadence shared by the overview and print queue
// loops. Each loop owns an independent Poller instance.
const DefaultPollInterval = 4 * time.Second

// Poller invokes fn at a fixed cadence. Every tick runs on its own
// goroutine, fire-and-forget: a slow or failed tick never blocks or skips
// the next scheduled one, and responses are applied in arrival order with no
// sequencing guarantee. Owners guard their own state against late responses
// after teardown (see OverviewBoard.Close).
type Poller struct {
	interval time.Duration
	fn       func(context.Context)

	stop     chan struct{}
	stopOnce sync.Once
}

func NewPoller(interval time.Duration, fn func(context.Context)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
	}
}

// Start launches the loop. It returns immediately; the loop ends when ctx is
// done or Stop is called. In-flight ticks are not aborted.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
				go p.fn(ctx)
			}
		}
	}()
}

// Stop halts scheduling. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}
