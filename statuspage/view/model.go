// Package view models the status page as seen by a client: it fetches the
// status from the proxy, keeps the last result and decides what to show.
package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/df-mc/atomic"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/proxy"
)

// Fetcher retrieves the current status from the status proxy. An error means no
// status could be obtained at all; offline statuses are returned without error.
type Fetcher interface {
	Fetch(ctx context.Context) (proxy.Status, error)
}

// State is what the view currently knows. Status is nil until the first poll completes.
type State struct {
	Status     *proxy.Status
	Loading    bool
	LastUpdate time.Time
}

// Model holds the state of one view. Polls may overlap; the last one to
// complete wins.
type Model struct {
	log     *slog.Logger
	fetcher Fetcher
	now     func() time.Time

	mu    sync.Mutex
	state atomic.Value[State]
}

// NewModel returns a model in the loading state.
func NewModel(log *slog.Logger, fetcher Fetcher) *Model {
	m := &Model{
		log:     log,
		fetcher: fetcher,
		now:     time.Now,
	}
	m.state.Store(State{Loading: true})
	return m
}

// State returns a snapshot of the current state.
func (m *Model) State() State {
	return m.state.Load()
}

// Poll fetches the status and stores the result, regardless of whether a poll is
// already in progress. It returns the state after the poll.
func (m *Model) Poll(ctx context.Context) State {
	m.begin(false)
	st, responded := m.fetch(ctx)
	return m.finish(ctx, st, responded)
}

// Refresh is the manual refresh control. It does nothing and returns false
// while the model is loading.
func (m *Model) Refresh(ctx context.Context) bool {
	if !m.begin(true) {
		return false
	}
	st, responded := m.fetch(ctx)
	m.finish(ctx, st, responded)
	return true
}

// begin moves the model into the loading state. If exclusive is set, it fails
// when the model is loading already.
func (m *Model) begin(exclusive bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state.Load()
	if exclusive && s.Loading {
		return false
	}
	s.Loading = true
	m.state.Store(s)
	return true
}

// fetch returns the status from the proxy. If the proxy could not be reached,
// it returns a synthesized offline status and false.
func (m *Model) fetch(ctx context.Context) (proxy.Status, bool) {
	st, err := m.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.log.Warn("error fetching server status", "error", err)
		}
		return proxy.OfflineStatus(proxy.MessageFetchFailed), false
	}
	return st, true
}

// finish stores st as the latest status. LastUpdate only moves when the proxy
// responded. If ctx was cancelled, the view is being torn down and only the
// loading flag is cleared.
func (m *Model) finish(ctx context.Context, st proxy.Status, responded bool) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state.Load()
	s.Loading = false
	if ctx.Err() == nil {
		s.Status = &st
		if responded {
			s.LastUpdate = m.now()
		}
	}
	m.state.Store(s)
	return s
}
