// Package session holds the client's identity state: Anonymous at start,
// Guest after an explicit credential-free choice, or Authenticated after a
// successful login exchange against the identity endpoint.
//
// The Store is the single owner of the session. It exposes a closed set of
// transitions (Login, ContinueAsGuest, Logout), snapshot reads via Current,
// and a non-blocking Watch channel for reactive consumers. There is no
// persistence: a new process always starts Anonymous, and no token refresh
// or expiry handling is performed client-side.
//
// Basic usage:
//
//	store := session.NewStore(client) // client implements session.Authenticator
//
//	sess, err := store.Login(ctx, "alice", "secret")
//	if errors.Is(err, session.ErrInvalidCredentials) {
//		// prompt the user to correct the password
//	}
//
//	if store.Current().IsAuthenticated() {
//		// enter protected flows
//	}
//
// Watching for transitions:
//
//	for sess := range store.Watch(ctx) {
//		render(sess)
//	}
package session
