package session

import (
	"context"
	"sync"

	"memory-album/internal/auth"
)

// State is the three-valued session snapshot. Loading means the
// provider has not resolved yet and must gate all rendering decisions.
type State int

const (
	Loading State = iota
	Absent
	Present
)

// Session is a synchronous snapshot of the client's auth state.
type Session struct {
	State    State
	Identity *auth.Identity
}

// Provider is what the manager needs from the identity provider.
// *auth.Client satisfies it.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (auth.Identity, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	GetSession(ctx context.Context) (*auth.Identity, error)
	OnAuthStateChange(fn func(*auth.Identity)) (unsubscribe func())
}

// Manager owns the process-wide session. It is the sole subscriber to
// the provider's change stream and re-broadcasts a simplified snapshot
// to its own listeners. Construct with NewManager, release with Close.
type Manager struct {
	provider Provider

	mu          sync.Mutex
	session     Session
	listeners   map[int]func(Session)
	nextID      int
	unsubscribe func()
}

func NewManager(p Provider) *Manager {
	m := &Manager{
		provider:  p,
		session:   Session{State: Loading},
		listeners: make(map[int]func(Session)),
	}
	m.unsubscribe = p.OnAuthStateChange(m.onAuthChange)
	return m
}

// Start resolves the initial session: Loading becomes Absent or
// Present. On provider failure the session falls back to Absent.
func (m *Manager) Start(ctx context.Context) error {
	ident, err := m.provider.GetSession(ctx)
	m.set(ident)
	return err
}

// Current returns the session snapshot without blocking.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SignIn delegates to the provider. On success the session becomes
// Present via the provider's change event before this returns; on
// failure the raw provider error comes back and the session is
// untouched. Callers classify the error with Classify.
func (m *Manager) SignIn(ctx context.Context, identifier, secret string) error {
	_, err := m.provider.SignInWithPassword(ctx, identifier, secret)
	return err
}

// SignUp creates the account. Success does not populate the session;
// the caller surfaces a "registered, please sign in" confirmation and
// returns to the sign-in form.
func (m *Manager) SignUp(ctx context.Context, identifier, secret string) error {
	return m.provider.SignUp(ctx, identifier, secret)
}

// SignOut clears the session and notifies subscribers. Idempotent.
func (m *Manager) SignOut(ctx context.Context) {
	// The provider emits the signed-out event even if revocation
	// fails; local state is cleared either way.
	_ = m.provider.SignOut(ctx)
}

// Subscribe registers a listener for session changes and returns its
// unsubscribe func.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Close releases the provider subscription. The manager must not be
// used afterwards.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Manager) onAuthChange(ident *auth.Identity) {
	m.set(ident)
}

func (m *Manager) set(ident *auth.Identity) {
	next := Session{State: Absent}
	if ident != nil {
		next = Session{State: Present, Identity: ident}
	}

	m.mu.Lock()
	m.session = next
	fns := make([]func(Session), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
}
