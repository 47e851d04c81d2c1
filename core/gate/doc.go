// Package gate centralizes the authorization check performed before a
// protected screen or action proceeds. Every protected boundary calls the
// same pure decision function, so gating logic cannot diverge per screen.
//
//	decision := gate.Authorize(store.Current(), gate.CapabilityProtected)
//	if !decision.Allowed() {
//		notify(decision.Reason())
//		navigate("Monitoring")
//		return
//	}
package gate
