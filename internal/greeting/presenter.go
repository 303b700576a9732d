package greeting

import (
	"context"
	"sync"
	"time"

	"memory-album/internal/store"
)

// DefaultTitle is shown when no greeting card row exists; absence is
// valid and carries no default body.
const DefaultTitle = "Happy Birthday!"

const (
	messageRevealDelay  = 1000 * time.Millisecond
	continueRevealDelay = 2500 * time.Millisecond
)

// Source is what the presenter needs from the record store.
type Source interface {
	Greeting(ctx context.Context) (*store.GreetingCard, error)
}

// Presenter loads the greeting singleton and runs the two-stage timed
// reveal. The fetch and the timers are concurrent and independent:
// neither blocks the other. Close cancels the timers; a fetch that
// lands after Close is discarded.
type Presenter struct {
	source Source

	// reveal delays; fixed in production, shortened in tests
	messageDelay  time.Duration
	continueDelay time.Duration

	mu             sync.Mutex
	card           *store.GreetingCard
	loadErr        error
	messageVisible bool
	continueReady  bool
	closed         bool
	timers         []*time.Timer
}

func NewPresenter(source Source) *Presenter {
	return &Presenter{
		source:        source,
		messageDelay:  messageRevealDelay,
		continueDelay: continueRevealDelay,
	}
}

// Start kicks off the fetch and arms both reveal timers.
func (p *Presenter) Start(ctx context.Context) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.timers = append(p.timers,
		time.AfterFunc(p.messageDelay, func() { p.reveal(&p.messageVisible) }),
		time.AfterFunc(p.continueDelay, func() { p.reveal(&p.continueReady) }),
	)
	p.mu.Unlock()

	go p.Reload(ctx)
}

// Reload fetches the greeting singleton. It is also the retry path
// after a failed load.
func (p *Presenter) Reload(ctx context.Context) error {
	card, err := p.source.Greeting(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return err
	}
	p.loadErr = err
	if err == nil {
		p.card = card
	}
	return err
}

// Title falls back to the built-in default when there is no card.
func (p *Presenter) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.card != nil && p.card.Title != "" {
		return p.card.Title
	}
	return DefaultTitle
}

func (p *Presenter) Message() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.card == nil {
		return ""
	}
	return p.card.MainMessage
}

func (p *Presenter) MessageVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messageVisible
}

func (p *Presenter) ContinueReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.continueReady
}

// LoadError reports the last fetch failure, if any, so the caller can
// offer a retry.
func (p *Presenter) LoadError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Close stops both timers. No callback fires after Close returns as
// far as observable state goes: late fires and late fetches no-op.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = nil
}

func (p *Presenter) reveal(flag *bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	*flag = true
}
