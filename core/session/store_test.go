package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermowatch/thermowatch/core/session"
)

// authFunc adapts a function to the Authenticator interface.
type authFunc func(ctx context.Context, username, password string) (session.Grant, error)

func (f authFunc) ExchangeCredentials(ctx context.Context, username, password string) (session.Grant, error) {
	return f(ctx, username, password)
}

func staticAuth(grant session.Grant, err error) session.Authenticator {
	return authFunc(func(context.Context, string, string) (session.Grant, error) {
		return grant, err
	})
}

// requireInvariant checks the central session invariant: the credential is
// non-empty exactly when the mode is Authenticated.
func requireInvariant(t *testing.T, sess session.Session) {
	t.Helper()
	if sess.Mode == session.Authenticated {
		require.NotEmpty(t, sess.Credential)
	} else {
		require.Empty(t, sess.Credential)
		require.Nil(t, sess.Identity)
	}
}

func TestNewStore_StartsAnonymous(t *testing.T) {
	store := session.NewStore(nil)

	sess := store.Current()
	assert.Equal(t, session.Anonymous, sess.Mode)
	requireInvariant(t, sess)
}

func TestStore_Login_Success(t *testing.T) {
	identity := &session.Identity{Name: "Alice"}
	store := session.NewStore(staticAuth(session.Grant{Token: "t1", Identity: identity}, nil))

	sess, err := store.Login(context.Background(), "alice", "secret")

	require.NoError(t, err)
	assert.Equal(t, session.Authenticated, sess.Mode)
	assert.Equal(t, "t1", sess.Credential)
	assert.Equal(t, identity, sess.Identity)
	assert.Equal(t, sess, store.Current())
	requireInvariant(t, sess)
}

func TestStore_Login_InvalidCredentials_DoesNotMutate(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{}, session.ErrInvalidCredentials))
	before := store.ContinueAsGuest()

	_, err := store.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
	assert.Equal(t, before, store.Current(), "failed login must not mutate the session")
}

func TestStore_Login_EmptyToken_MalformedResponse(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{Token: ""}, nil))

	_, err := store.Login(context.Background(), "alice", "secret")

	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrMalformedResponse)
	assert.Equal(t, session.Anonymous, store.Current().Mode)
}

func TestStore_Login_ServiceUnavailable(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{}, session.ErrServiceUnavailable))

	_, err := store.Login(context.Background(), "alice", "secret")

	assert.ErrorIs(t, err, session.ErrServiceUnavailable)
	assert.Equal(t, session.Anonymous, store.Current().Mode)
}

func TestStore_Login_NilAuthenticator(t *testing.T) {
	store := session.NewStore(nil)

	_, err := store.Login(context.Background(), "alice", "secret")

	assert.ErrorIs(t, err, session.ErrServiceUnavailable)
}

func TestStore_ContinueAsGuest_ClearsCredential(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{Token: "t1", Identity: &session.Identity{Name: "Alice"}}, nil))
	_, err := store.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	sess := store.ContinueAsGuest()

	assert.Equal(t, session.Guest, sess.Mode)
	requireInvariant(t, sess)
}

func TestStore_ContinueAsGuest_Idempotent(t *testing.T) {
	store := session.NewStore(nil)

	first := store.ContinueAsGuest()
	second := store.ContinueAsGuest()

	assert.Equal(t, first, second)
}

func TestStore_Logout_Idempotent(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{Token: "t1"}, nil))
	_, err := store.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	first := store.Logout()
	second := store.Logout()

	assert.Equal(t, session.Anonymous, first.Mode)
	assert.Equal(t, first, second)
	requireInvariant(t, first)
}

func TestStore_InvariantAfterEveryTransition(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{Token: "t1"}, nil))

	requireInvariant(t, store.Current())
	requireInvariant(t, store.ContinueAsGuest())

	sess, err := store.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	requireInvariant(t, sess)

	requireInvariant(t, store.Logout())
}

func TestStore_Watch_DeliversTransitions(t *testing.T) {
	store := session.NewStore(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := store.Watch(ctx)
	store.ContinueAsGuest()

	select {
	case sess := <-ch:
		assert.Equal(t, session.Guest, sess.Mode)
	case <-time.After(time.Second):
		t.Fatal("expected a session value on the watch channel")
	}
}

func TestStore_Watch_SlowConsumerSeesLatest(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{Token: "t1"}, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := store.Watch(ctx)

	// Two transitions without a read in between: the buffer holds only the
	// most recent value.
	store.ContinueAsGuest()
	store.Logout()

	select {
	case sess := <-ch:
		assert.Equal(t, session.Anonymous, sess.Mode)
	case <-time.After(time.Second):
		t.Fatal("expected a session value on the watch channel")
	}
}

func TestStore_Watch_ClosedOnCancel(t *testing.T) {
	store := session.NewStore(nil)
	ctx, cancel := context.WithCancel(context.Background())

	ch := store.Watch(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel must be closed after cancellation")
	case <-time.After(time.Second):
		t.Fatal("expected the watch channel to close")
	}
}

func TestStore_ConcurrentTransitions(t *testing.T) {
	store := session.NewStore(staticAuth(session.Grant{Token: "t1"}, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = store.Watch(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, err := store.Login(context.Background(), "alice", "secret")
				if err != nil && !errors.Is(err, session.ErrServiceUnavailable) {
					t.Error(err)
				}
			case 1:
				store.ContinueAsGuest()
			default:
				store.Logout()
			}
		}(i)
	}
	wg.Wait()

	requireInvariant(t, store.Current())
}
