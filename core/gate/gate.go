package gate

import (
	"github.com/thermowatch/thermowatch/core/session"
)

// Capability names something a session may or may not be allowed to do.
type Capability int

const (
	// CapabilityProtected covers entering a protected screen and performing
	// a protected action. It is granted only to authenticated sessions.
	CapabilityProtected Capability = iota
)

// Decision is the outcome of an authorization check. The zero value denies.
type Decision struct {
	allowed bool
	reason  string
}

// Allowed reports whether the capability was granted.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Reason returns the human-readable deferral message for a denied decision,
// or an empty string when the decision is allowed.
func (d Decision) Reason() string {
	if d.allowed {
		return ""
	}
	return d.reason
}

// Authorize decides whether the session may exercise the capability. It is a
// pure function with no side effects: callers present the denial and redirect
// focus themselves. Because a logout can race an in-flight flow, callers must
// re-check at every protected boundary rather than caching a decision:
// once at navigation into a protected screen, and again before each
// protected write.
func Authorize(s session.Session, c Capability) Decision {
	switch c {
	case CapabilityProtected:
		if s.IsAuthenticated() {
			return Decision{allowed: true}
		}
		if s.IsGuest() {
			return Decision{reason: "Guests cannot open this screen. Please log in first."}
		}
		return Decision{reason: "Please log in first to open this screen."}
	default:
		return Decision{reason: "Unknown capability."}
	}
}
