// ABOUTME: Background insight refresh triggered by state changes
// ABOUTME: Each trigger runs independently; whichever finishes last sets the current list

package insights

import (
	"context"
	"sync"
	"time"

	"github.com/harperreed/opslog/models"
	"go.uber.org/zap"
)

// Refresher keeps the most recently resolved insight list.
type Refresher struct {
	summarizer Summarizer
	timeout    time.Duration
	logger     *zap.Logger

	mu       sync.Mutex
	idle     *sync.Cond
	pending  int
	current  []string
	resolved time.Time
}

func NewRefresher(s Summarizer, timeout time.Duration, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Refresher{summarizer: s, timeout: timeout, logger: logger}
	r.idle = sync.NewCond(&r.mu)
	return r
}

// Trigger starts a refresh from state and returns immediately. It does nothing without
// consent or when there is nothing to analyze. state must not be mutated afterwards.
func (r *Refresher) Trigger(state *models.UserState) {
	if !r.wants(state) {
		return
	}

	r.mu.Lock()
	r.pending++
	r.mu.Unlock()

	go func() {
		out := Generate(context.Background(), r.summarizer, state, r.timeout, r.logger)

		r.mu.Lock()
		r.setLocked(out)
		r.pending--
		if r.pending == 0 {
			r.idle.Broadcast()
		}
		r.mu.Unlock()
	}()
}

// Refresh generates insights from state in the caller's goroutine and records them.
// Without consent or data it returns nil and leaves the current list alone.
func (r *Refresher) Refresh(ctx context.Context, state *models.UserState) []string {
	if !r.wants(state) {
		return nil
	}
	out := Generate(ctx, r.summarizer, state, r.timeout, r.logger)
	r.Set(out)
	return append([]string(nil), out...)
}

// Set records list as the current insights.
func (r *Refresher) Set(list []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setLocked(append([]string(nil), list...))
}

func (r *Refresher) setLocked(list []string) {
	r.current = list
	r.resolved = time.Now()
}

func (r *Refresher) wants(state *models.UserState) bool {
	return state != nil && state.Consent && !BuildDigest(state).Empty()
}

// Current returns a copy of the latest insights, or nil before the first refresh resolves.
func (r *Refresher) Current() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	return append([]string(nil), r.current...)
}

// ResolvedAt returns when the current list was produced.
func (r *Refresher) ResolvedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// Wait blocks until no triggered refresh is in flight. It is safe to call while
// other goroutines keep triggering.
func (r *Refresher) Wait() {
	r.mu.Lock()
	for r.pending > 0 {
		r.idle.Wait()
	}
	r.mu.Unlock()
}
