package threshold

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/thermowatch/thermowatch/core/apiclient"
	"github.com/thermowatch/thermowatch/core/gate"
	"github.com/thermowatch/thermowatch/core/logger"
	"github.com/thermowatch/thermowatch/core/session"
)

// Phase identifies where the workflow is in its lifecycle.
type Phase int

const (
	// Idle means no fetch or submit has run yet.
	Idle Phase = iota
	// Loading means a fetch or submit is in flight; further invocations are
	// suppressed until it settles.
	Loading
	// Loaded means the last operation settled with a threshold value.
	Loaded
	// Failed means the last operation settled with an error message.
	Failed
)

// String returns the phase name for logging and tests.
func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of the workflow. A previously loaded value stays
// visible across later failures: HasValue and Value survive a transition to
// Failed so the user keeps seeing the last known threshold.
type State struct {
	Phase    Phase
	Value    float64
	HasValue bool
	Message  string
}

// API is the slice of the backend client the workflow needs.
// apiclient.Client satisfies it.
type API interface {
	Threshold(ctx context.Context) (apiclient.ThresholdSetting, error)
	SetThreshold(ctx context.Context, value float64) (apiclient.ThresholdSetting, error)
}

// SessionSource supplies the session snapshot checked at each protected
// boundary. session.Store satisfies it.
type SessionSource interface {
	Current() session.Session
}

// Workflow drives the authenticated read-then-write flow for the alert
// threshold. Each invocation re-checks the access gate against the session
// at that moment, performs at most one call, and settles into Loaded or
// Failed. A second Fetch or Submit while one is outstanding is a no-op, not
// a queued retry.
//
// A response that arrives after the session has transitioned away from
// Authenticated is still applied to the state (last-response-wins); the view
// layer tolerates stale-screen updates.
type Workflow struct {
	api      API
	sessions SessionSource
	logger   *slog.Logger

	mu       sync.Mutex
	state    State
	input    string
	inFlight bool
	watchers map[chan State]struct{}
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger configures structured logging of workflow transitions.
// Logging is disabled by default.
func WithLogger(log *slog.Logger) Option {
	return func(w *Workflow) {
		if log != nil {
			w.logger = log
		}
	}
}

// NewWorkflow creates an idle workflow over the given API and session source.
func NewWorkflow(api API, sessions SessionSource, opts ...Option) *Workflow {
	w := &Workflow{
		api:      api,
		sessions: sessions,
		logger:   logger.Discard(),
		watchers: make(map[chan State]struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// State returns a snapshot of the workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Input returns the current contents of the input buffer.
func (w *Workflow) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// SetInput replaces the input buffer. The buffer belongs to the workflow so
// that failed submissions can keep it intact for a retry.
func (w *Workflow) SetInput(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = s
}

// Fetch loads the current threshold. The gate is consulted first: a denied
// session settles into Failed with the denial reason and no call is made.
// While another operation is in flight, Fetch is a no-op.
func (w *Workflow) Fetch(ctx context.Context) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return
	}

	decision := gate.Authorize(w.sessions.Current(), gate.CapabilityProtected)
	if !decision.Allowed() {
		w.failLocked(decision.Reason())
		w.mu.Unlock()
		return
	}

	w.inFlight = true
	w.state.Phase = Loading
	w.state.Message = ""
	w.notifyLocked()
	w.mu.Unlock()

	setting, err := w.api.Threshold(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		w.logger.DebugContext(ctx, "threshold fetch failed", logger.Error(err))
		w.failLocked(failureMessage(err))
		return
	}
	w.loadLocked(setting.Value)
}

// Submit validates the input buffer and writes it as the new threshold.
// Validation happens before any I/O: an empty or non-numeric buffer settles
// into Failed and the buffer is kept. The gate is consulted next; only then
// is the call made. On success the buffer is cleared; on any failure it is
// left unchanged so the user can correct and retry. While another operation
// is in flight, Submit is a no-op.
func (w *Workflow) Submit(ctx context.Context) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return
	}

	raw := strings.TrimSpace(w.input)
	if raw == "" {
		w.failLocked("Threshold value must not be empty.")
		w.mu.Unlock()
		return
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		w.failLocked("Threshold value must be a number.")
		w.mu.Unlock()
		return
	}

	decision := gate.Authorize(w.sessions.Current(), gate.CapabilityProtected)
	if !decision.Allowed() {
		w.failLocked(decision.Reason())
		w.mu.Unlock()
		return
	}

	w.inFlight = true
	w.state.Phase = Loading
	w.state.Message = ""
	w.notifyLocked()
	w.mu.Unlock()

	setting, err := w.api.SetThreshold(ctx, value)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = false
	if err != nil {
		w.logger.DebugContext(ctx, "threshold submit failed", logger.Error(err))
		w.failLocked(failureMessage(err))
		return
	}
	w.input = ""
	w.loadLocked(setting.Value)
}

// Watch returns a channel that receives each state transition after the
// call. Delivery follows the same non-blocking latest-wins contract as
// session.Store.Watch. The channel is closed when ctx is cancelled.
func (w *Workflow) Watch(ctx context.Context) <-chan State {
	ch := make(chan State, 1)

	w.mu.Lock()
	w.watchers[ch] = struct{}{}
	w.mu.Unlock()

	go func() {
		<-ctx.Done()
		w.mu.Lock()
		delete(w.watchers, ch)
		close(ch)
		w.mu.Unlock()
	}()

	return ch
}

func (w *Workflow) loadLocked(value float64) {
	w.state.Phase = Loaded
	w.state.Value = value
	w.state.HasValue = true
	w.state.Message = ""
	w.notifyLocked()
}

func (w *Workflow) failLocked(message string) {
	w.state.Phase = Failed
	w.state.Message = message
	w.notifyLocked()
}

func (w *Workflow) notifyLocked() {
	for ch := range w.watchers {
		select {
		case ch <- w.state:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- w.state:
			default:
			}
		}
	}
}

// failureMessage turns a classified client error into user wording that
// distinguishes an invalid session from a server-side rejection from an
// unreachable service.
func failureMessage(err error) string {
	var verr *apiclient.ValidationError
	switch {
	case errors.Is(err, apiclient.ErrUnauthorized):
		return "Your session is no longer valid. Please log in again."
	case errors.As(err, &verr):
		return "The server rejected the value: " + verr.Message
	default:
		return "The monitoring service is unreachable. Please try again later."
	}
}
