package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memory-album/internal/auth"
)

// fakeProvider emits auth-state changes the way *auth.Client does:
// synchronously, from within the delegated call.
type fakeProvider struct {
	resolved  *auth.Identity
	signInErr error
	signUpErr error

	signInCalls  int
	signUpCalls  int
	signOutCalls int

	listeners map[int]func(*auth.Identity)
	nextID    int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{listeners: make(map[int]func(*auth.Identity))}
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, email, _ string) (auth.Identity, error) {
	f.signInCalls++
	if f.signInErr != nil {
		return auth.Identity{}, f.signInErr
	}
	ident := auth.Identity{ID: 7, Email: email}
	f.emit(&ident)
	return ident, nil
}

func (f *fakeProvider) SignUp(_ context.Context, _, _ string) error {
	f.signUpCalls++
	return f.signUpErr
}

func (f *fakeProvider) SignOut(_ context.Context) error {
	f.signOutCalls++
	f.emit(nil)
	return nil
}

func (f *fakeProvider) GetSession(_ context.Context) (*auth.Identity, error) {
	return f.resolved, nil
}

func (f *fakeProvider) OnAuthStateChange(fn func(*auth.Identity)) func() {
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() { delete(f.listeners, id) }
}

func (f *fakeProvider) emit(ident *auth.Identity) {
	for _, fn := range f.listeners {
		fn(ident)
	}
}

func TestManagerStartResolvesSession(t *testing.T) {
	tests := []struct {
		name      string
		resolved  *auth.Identity
		wantState State
	}{
		{
			name:      "no stored session resolves absent",
			resolved:  nil,
			wantState: Absent,
		},
		{
			name:      "stored session resolves present",
			resolved:  &auth.Identity{ID: 3, Email: "dana@example.com"},
			wantState: Present,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakeProvider()
			p.resolved = tt.resolved
			m := NewManager(p)
			defer m.Close()

			assert.Equal(t, Loading, m.Current().State)

			require.NoError(t, m.Start(context.Background()))
			got := m.Current()
			assert.Equal(t, tt.wantState, got.State)
			assert.Equal(t, tt.resolved, got.Identity)
		})
	}
}

func TestManagerSignInSuccess(t *testing.T) {
	p := newFakeProvider()
	m := NewManager(p)
	defer m.Close()
	require.NoError(t, m.Start(context.Background()))

	var transitions []State
	unsub := m.Subscribe(func(s Session) {
		transitions = append(transitions, s.State)
	})
	defer unsub()

	require.NoError(t, m.SignIn(context.Background(), "dana@example.com", "secret"))

	got := m.Current()
	assert.Equal(t, Present, got.State)
	require.NotNil(t, got.Identity)
	assert.Equal(t, "dana@example.com", got.Identity.Email)

	// exactly one transition to present
	assert.Equal(t, []State{Present}, transitions)
}

func TestManagerSignInFailureLeavesSessionUntouched(t *testing.T) {
	p := newFakeProvider()
	p.signInErr = errors.New("invalid login credentials")
	m := NewManager(p)
	defer m.Close()
	require.NoError(t, m.Start(context.Background()))

	err := m.SignIn(context.Background(), "dana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, KindInvalidCredentials, Classify(err))
	assert.Equal(t, Absent, m.Current().State)
}

func TestManagerSignUpNeverPopulatesSession(t *testing.T) {
	tests := []struct {
		name      string
		signUpErr error
	}{
		{name: "success"},
		{name: "failure", signUpErr: errors.New("user already registered")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakeProvider()
			p.signUpErr = tt.signUpErr
			m := NewManager(p)
			defer m.Close()
			require.NoError(t, m.Start(context.Background()))

			err := m.SignUp(context.Background(), "dana@example.com", "secret")
			if tt.signUpErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, Absent, m.Current().State, "sign-up must not sign the user in")
			assert.Equal(t, 1, p.signUpCalls)
		})
	}
}

func TestManagerSignOutIdempotent(t *testing.T) {
	p := newFakeProvider()
	m := NewManager(p)
	defer m.Close()
	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.SignIn(context.Background(), "dana@example.com", "secret"))
	require.Equal(t, Present, m.Current().State)

	m.SignOut(context.Background())
	first := m.Current()
	m.SignOut(context.Background())
	second := m.Current()

	assert.Equal(t, Absent, first.State)
	assert.Equal(t, first, second, "second sign-out must land in the same terminal state")
}

func TestManagerCloseReleasesSubscription(t *testing.T) {
	p := newFakeProvider()
	m := NewManager(p)
	require.NoError(t, m.Start(context.Background()))
	require.Len(t, p.listeners, 1)

	m.Close()
	assert.Empty(t, p.listeners, "close must unsubscribe from the provider")

	// A late provider event no longer reaches the manager.
	ident := auth.Identity{ID: 9, Email: "late@example.com"}
	p.emit(&ident)
	assert.Equal(t, Absent, m.Current().State)
}

func TestSubscribeUnsubscribeStopsNotifications(t *testing.T) {
	p := newFakeProvider()
	m := NewManager(p)
	defer m.Close()
	require.NoError(t, m.Start(context.Background()))

	calls := 0
	unsub := m.Subscribe(func(Session) { calls++ })
	require.NoError(t, m.SignIn(context.Background(), "a@example.com", "x"))
	assert.Equal(t, 1, calls)

	unsub()
	m.SignOut(context.Background())
	assert.Equal(t, 1, calls, "no notifications after unsubscribe")
}
