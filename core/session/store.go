package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/thermowatch/thermowatch/core/logger"
)

// Grant is the outcome of a successful credential exchange: the opaque
// bearer token and the optional identity record the server attached to it.
type Grant struct {
	Token    string
	Identity *Identity
}

// Authenticator performs the credential exchange against the identity
// endpoint. Implementations classify failures into the package's error
// taxonomy: ErrInvalidCredentials for a rejected username/password pair,
// ErrMalformedResponse for a success response without a token, and
// ErrServiceUnavailable for transport or unexpected server failures.
type Authenticator interface {
	ExchangeCredentials(ctx context.Context, username, password string) (Grant, error)
}

// Store owns the single Session of a running client instance. All mutation
// goes through Login, ContinueAsGuest, and Logout; each transition is atomic
// and always leaves the session in a valid state. Reads are snapshots and
// must not be cached across mutating calls; reactive consumers use Watch.
//
// Store is safe for concurrent use.
type Store struct {
	auth   Authenticator
	logger *slog.Logger

	mu       sync.RWMutex
	current  Session
	watchers map[chan Session]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger configures structured logging for session transitions.
// Logging is disabled by default.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewStore creates a session store in the Anonymous state. The authenticator
// is consulted only by Login; a nil authenticator makes Login fail with
// ErrServiceUnavailable while guest and logout transitions keep working.
func NewStore(auth Authenticator, opts ...Option) *Store {
	s := &Store{
		auth:     auth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		current:  Session{Mode: Anonymous},
		watchers: make(map[chan Session]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Current returns a snapshot of the session. The snapshot is stale as soon
// as the next mutating call completes.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login exchanges the username/password pair for a bearer credential and,
// on success, atomically replaces the session with an Authenticated one.
// A failed exchange leaves the previous session untouched; the returned
// error is one of ErrInvalidCredentials, ErrMalformedResponse, or
// ErrServiceUnavailable, possibly wrapped with transport detail.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	if s.auth == nil {
		return s.Current(), ErrServiceUnavailable
	}

	grant, err := s.auth.ExchangeCredentials(ctx, username, password)
	if err != nil {
		s.logger.DebugContext(ctx, "login failed", logger.Error(err))
		return s.Current(), err
	}
	if grant.Token == "" {
		return s.Current(), ErrMalformedResponse
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{
		Mode:       Authenticated,
		Credential: grant.Token,
		Identity:   grant.Identity,
	}
	s.notifyLocked()
	s.logger.DebugContext(ctx, "session authenticated", slog.String("username", username))
	return s.current, nil
}

// ContinueAsGuest unconditionally switches to the Guest identity, clearing
// any prior credential and identity. Idempotent.
func (s *Store) ContinueAsGuest() Session {
	return s.replace(Session{Mode: Guest})
}

// Logout unconditionally resets the session to Anonymous. Idempotent.
func (s *Store) Logout() Session {
	return s.replace(Session{Mode: Anonymous})
}

// Watch returns a channel that receives each new session value installed
// after the call. Delivery is non-blocking: a consumer that lags only sees
// the most recent value, never a backlog, and never blocks a mutator. The
// channel is closed when ctx is cancelled.
func (s *Store) Watch(ctx context.Context) <-chan Session {
	ch := make(chan Session, 1)

	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, ch)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Store) replace(next Session) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	s.notifyLocked()
	s.logger.Debug("session replaced", slog.String("mode", next.Mode.String()))
	return s.current
}

// notifyLocked delivers the current session to every watcher. Callers must
// hold s.mu. A full buffer is drained first so the watcher observes the
// latest value rather than an intermediate one.
func (s *Store) notifyLocked() {
	for ch := range s.watchers {
		select {
		case ch <- s.current:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.current:
			default:
			}
		}
	}
}
