package opendota

import (
	"context"
	"sync"
	"time"
)

// pacer spaces outbound network calls at least one interval apart.
//
// Each caller reserves the next departure slot under the lock, then sleeps
// until its slot arrives, so concurrent callers serialize without holding
// the lock while waiting. The slot is reserved before the call departs, not
// after it completes: a call that ends up failing still counts against the
// budget, which is also how the service meters call frequency.
type pacer struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time // departure slot of the most recent call
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval}
}

// wait blocks until the caller's reserved slot arrives and returns the time
// spent waiting. It returns early with the context error if ctx is done
// first; the reserved slot stays consumed either way.
func (p *pacer) wait(ctx context.Context) (time.Duration, error) {
	if p == nil || p.interval <= 0 {
		return 0, nil
	}

	p.mu.Lock()
	now := time.Now()
	slot := p.last.Add(p.interval)
	if slot.Before(now) {
		slot = now
	}
	p.last = slot
	p.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return 0, nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
		return delay, nil
	}
}
