package auth

import (
	"context"
	"sync"
)

// Client is a per-process handle over the identity service, the shape
// a hosted provider SDK gives a single app instance: it keeps the
// current access token and emits auth-state changes to subscribers.
// A change event carries the signed-in identity, or nil on sign-out.
type Client struct {
	svc *Service

	mu        sync.Mutex
	token     string
	identity  *Identity
	listeners map[int]func(*Identity)
	nextID    int
}

func NewClient(svc *Service) *Client {
	return &Client{
		svc:       svc,
		listeners: make(map[int]func(*Identity)),
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (Identity, error) {
	token, ident, err := c.svc.SignIn(ctx, email, password)
	if err != nil {
		return Identity{}, err
	}

	c.mu.Lock()
	c.token = token
	saved := ident
	c.identity = &saved
	fns := c.snapshotListeners()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(&saved)
	}
	return ident, nil
}

// SignUp creates the account without touching the current session.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.svc.SignUp(ctx, email, password)
}

// SignOut clears the local session first and always emits a signed-out
// event, even when the revocation call fails.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.identity = nil
	fns := c.snapshotListeners()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(nil)
	}

	if token == "" {
		return nil
	}
	return c.svc.SignOut(ctx, token)
}

// GetSession resolves the current session. A missing or stale token is
// an absent session, not an error.
func (c *Client) GetSession(ctx context.Context) (*Identity, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	if token == "" {
		return nil, nil
	}
	ident, err := c.svc.Validate(ctx, token)
	if err != nil {
		return nil, nil
	}
	return &ident, nil
}

// OnAuthStateChange registers a callback for session changes and
// returns its unsubscribe func.
func (c *Client) OnAuthStateChange(fn func(*Identity)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// caller must hold c.mu
func (c *Client) snapshotListeners() []func(*Identity) {
	fns := make([]func(*Identity), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	return fns
}
