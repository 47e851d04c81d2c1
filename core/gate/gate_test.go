package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thermowatch/thermowatch/core/gate"
	"github.com/thermowatch/thermowatch/core/session"
)

func TestAuthorize_Protected(t *testing.T) {
	tests := []struct {
		name    string
		sess    session.Session
		allowed bool
	}{
		{
			name:    "anonymous denied",
			sess:    session.Session{Mode: session.Anonymous},
			allowed: false,
		},
		{
			name:    "guest denied",
			sess:    session.Session{Mode: session.Guest},
			allowed: false,
		},
		{
			name:    "authenticated allowed",
			sess:    session.Session{Mode: session.Authenticated, Credential: "t1"},
			allowed: true,
		},
		{
			name:    "authenticated mode without credential denied",
			sess:    session.Session{Mode: session.Authenticated},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := gate.Authorize(tt.sess, gate.CapabilityProtected)

			assert.Equal(t, tt.allowed, decision.Allowed())
			if tt.allowed {
				assert.Empty(t, decision.Reason())
			} else {
				assert.NotEmpty(t, decision.Reason(), "a denial carries a user-facing reason")
			}
		})
	}
}

func TestAuthorize_GuestReasonMentionsLogin(t *testing.T) {
	decision := gate.Authorize(session.Session{Mode: session.Guest}, gate.CapabilityProtected)

	assert.False(t, decision.Allowed())
	assert.Contains(t, decision.Reason(), "log in")
}

func TestDecision_ZeroValueDenies(t *testing.T) {
	var decision gate.Decision

	assert.False(t, decision.Allowed())
}
