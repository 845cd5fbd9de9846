package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Guard serialises passes per table key. Callers arriving while a pass for the
// same key runs wait for it and receive its result instead of starting another.
type Guard struct {
	group singleflight.Group

	mu   sync.RWMutex
	last map[string]*Report
}

// NewGuard creates a guard.
func NewGuard() *Guard {
	return &Guard{last: make(map[string]*Report)}
}

// Do runs fn for key unless a pass for key is already running. shared reports
// whether the result came from another caller's pass. fn runs with the context
// of the caller that started it.
func (g *Guard) Do(ctx context.Context, key string, fn func(ctx context.Context) (*Report, error)) (report *Report, shared bool, err error) {
	ch := g.group.DoChan(key, func() (interface{}, error) {
		r, err := fn(ctx)
		if err == nil && r != nil {
			g.mu.Lock()
			g.last[key] = r
			g.mu.Unlock()
		}
		return r, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, res.Err
		}
		r, _ := res.Val.(*Report)
		return r, res.Shared, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Last returns the most recent successful report for key.
func (g *Guard) Last(key string) (*Report, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.last[key]
	return r, ok
}
