package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/df-mc/atomic"
	"github.com/smell-of-curry/pokebedrock-status/statuspage/internal"
)

// ErrPollerRunning is returned by Start if the poller was started already.
var ErrPollerRunning = errors.New("poller already running")

// Poller polls a Model once when started and then on every interval, until stopped.
type Poller struct {
	model    *Model
	interval time.Duration
	onPoll   func(State)

	// newTicker returns a tick channel and a function releasing it.
	newTicker func(d time.Duration) (<-chan time.Time, func())

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPoller returns a poller for the model. onPoll, if non-nil, is called with
// the state after every poll that completed while the poller was running.
func NewPoller(model *Model, interval time.Duration, onPoll func(State)) *Poller {
	if interval <= 0 {
		interval = internal.DefaultPollInterval
	}
	return &Poller{
		model:    model,
		interval: interval,
		onPoll:   onPoll,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Start polls once right away and then keeps polling in the background every
// interval. The poller stops when ctx is done or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return ErrPollerRunning
	}
	p.running.Store(true)

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	tick, release := p.newTicker(p.interval)
	go p.run(ctx, p.done, tick, release)
	return nil
}

// Stop cancels the poller and waits for its loop to exit. No poll is issued
// after Stop returns. Stop on a poller that is not running, including one whose
// context was cancelled, does nothing.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() {
		return
	}
	p.cancel()
	<-p.done
	p.running.Store(false)
}

// Running ...
func (p *Poller) Running() bool {
	return p.running.Load()
}

// run polls until ctx is done. The running flag is cleared before done is
// closed, so a Start that observes it cleared never races the old loop.
func (p *Poller) run(ctx context.Context, done chan struct{}, tick <-chan time.Time, release func()) {
	defer close(done)
	defer p.running.Store(false)
	defer release()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			p.poll(ctx)
		}
	}
}

// poll ...
func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s := p.model.Poll(ctx)
	if ctx.Err() == nil && p.onPoll != nil {
		p.onPoll(s)
	}
}
