// Package apiclient wraps outbound calls to the monitoring backend. Each
// call is a single attempt with no retries, backoff, or token refresh; the
// caller decides whether to re-invoke after user action such as re-login.
//
// The bearer credential is borrowed from a CredentialSource at call time and
// attached as an Authorization header only while the session is
// authenticated. Responses and transport failures are classified into a
// fixed taxonomy rather than surfaced raw:
//
//	resp, err := client.Threshold(ctx)
//	switch {
//	case errors.Is(err, apiclient.ErrUnauthorized):
//		// session invalid: prompt for re-login
//	case errors.Is(err, apiclient.ErrServiceUnavailable):
//		// transport or server fault: user may retry later
//	}
//
//	var verr *apiclient.ValidationError
//	if errors.As(err, &verr) {
//		// user-correctable rejection, verr.Message explains it
//	}
//
// The typed endpoint wrappers cover the full backend surface: the login
// exchange (which makes Client a session.Authenticator), the protected
// threshold read/write pair, and the public sensor-reading collection.
package apiclient
