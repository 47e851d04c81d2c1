package session

// Mode identifies the client's current identity state.
type Mode int

const (
	// Anonymous is the initial state: no identity has been chosen yet.
	Anonymous Mode = iota
	// Guest is an explicit credential-free identity. Guests can browse
	// public data but cannot enter protected screens or actions.
	Guest
	// Authenticated means a successful login exchange installed a bearer
	// credential for this client instance.
	Authenticated
)

// String returns the mode name for logging and error messages.
func (m Mode) String() string {
	switch m {
	case Guest:
		return "guest"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Identity is the optional user record supplied by the server on login.
type Identity struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is an immutable snapshot of the client's identity state.
// Credential is non-empty if and only if Mode is Authenticated; Guest and
// Anonymous sessions never carry a credential or an identity.
type Session struct {
	Mode       Mode
	Credential string
	Identity   *Identity
}

// IsAuthenticated reports whether the session holds a bearer credential.
func (s Session) IsAuthenticated() bool {
	return s.Mode == Authenticated && s.Credential != ""
}

// IsGuest reports whether the session is an explicit guest identity.
func (s Session) IsGuest() bool {
	return s.Mode == Guest
}
