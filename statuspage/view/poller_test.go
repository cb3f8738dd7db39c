package view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicker replaces the poller's ticker with a channel driven by the test.
type manualTicker struct {
	c        chan time.Time
	interval time.Duration
	released chan struct{}
}

func withManualTicker(p *Poller) *manualTicker {
	mt := &manualTicker{c: make(chan time.Time), released: make(chan struct{})}
	p.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		mt.interval = d
		return mt.c, func() { close(mt.released) }
	}
	return mt
}

func waitFetch(t *testing.T, f *fakeFetcher) {
	t.Helper()
	select {
	case <-f.fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a fetch")
	}
}

func TestPollerCadence(t *testing.T) {
	f := newFakeFetcher(onlineStatus)
	polled := make(chan State, 8)
	p := NewPoller(NewModel(discardLogger(), f), 0, func(s State) { polled <- s })
	mt := withManualTicker(p)

	require.NoError(t, p.Start(context.Background()))
	assert.Equal(t, 10*time.Second, mt.interval)

	waitFetch(t, f)
	s := <-polled
	assert.False(t, s.Loading)
	assert.Equal(t, 1, f.Count(), "exactly one poll on start")

	for i := 2; i <= 4; i++ {
		mt.c <- time.Now()
		waitFetch(t, f)
		<-polled
		assert.Equal(t, i, f.Count())
	}

	p.Stop()
	assert.False(t, p.Running())
	select {
	case <-mt.released:
	default:
		t.Fatal("ticker was not released on stop")
	}

	select {
	case mt.c <- time.Now():
		t.Fatal("stopped poller still receives ticks")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 4, f.Count(), "no polls after stop")
}

func TestPollerStopCancelsOutstandingPoll(t *testing.T) {
	f := newFakeFetcher(onlineStatus)
	f.block = make(chan struct{})
	called := false
	p := NewPoller(NewModel(discardLogger(), f), time.Hour, func(State) { called = true })
	withManualTicker(p)

	require.NoError(t, p.Start(context.Background()))
	waitFetch(t, f)
	p.Stop()

	assert.False(t, called, "a poll cancelled by stop is not reported")
	assert.Equal(t, 1, f.Count())
}

func TestPollerStartTwice(t *testing.T) {
	p := NewPoller(NewModel(discardLogger(), newFakeFetcher(onlineStatus)), time.Hour, nil)
	withManualTicker(p)

	require.NoError(t, p.Start(context.Background()))
	defer p.Stop()
	assert.ErrorIs(t, p.Start(context.Background()), ErrPollerRunning)
}

func TestPollerRestart(t *testing.T) {
	f := newFakeFetcher(onlineStatus)
	p := NewPoller(NewModel(discardLogger(), f), time.Hour, nil)

	withManualTicker(p)
	require.NoError(t, p.Start(context.Background()))
	waitFetch(t, f)
	p.Stop()

	withManualTicker(p)
	require.NoError(t, p.Start(context.Background()))
	waitFetch(t, f)
	p.Stop()

	assert.Equal(t, 2, f.Count())
}

func TestPollerStopWithoutStart(t *testing.T) {
	p := NewPoller(NewModel(discardLogger(), newFakeFetcher(onlineStatus)), time.Second, nil)
	assert.NotPanics(t, p.Stop)
}

func TestPollerRealTicker(t *testing.T) {
	f := newFakeFetcher(onlineStatus)
	p := NewPoller(NewModel(discardLogger(), f), 10*time.Millisecond, nil)

	require.NoError(t, p.Start(context.Background()))
	require.Eventually(t, func() bool { return f.Count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	p.Stop()

	n := f.Count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, f.Count())
}

func TestPollerParentCancel(t *testing.T) {
	f := newFakeFetcher(onlineStatus)
	p := NewPoller(NewModel(discardLogger(), f), time.Hour, nil)
	mt := withManualTicker(p)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx))
	waitFetch(t, f)
	cancel()

	require.Eventually(t, func() bool { return !p.Running() }, 2*time.Second, 5*time.Millisecond)
	select {
	case <-mt.released:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker was not released after cancel")
	}
	assert.NotPanics(t, p.Stop)

	withManualTicker(p)
	require.NoError(t, p.Start(context.Background()))
	waitFetch(t, f)
	assert.True(t, p.Running())
	p.Stop()

	assert.False(t, p.Running())
	assert.Equal(t, 2, f.Count())
}
