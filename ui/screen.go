package ui

// Screen identifies one of the client's views. Navigation is expressed as a
// message carrying a Screen value, so every screen change flows through the
// same routing point in the root model.
type Screen int

const (
	// ScreenLogin collects credentials or the explicit guest choice.
	ScreenLogin Screen = iota
	// ScreenMonitoring shows the paginated sensor readings. Public.
	ScreenMonitoring
	// ScreenControl shows and edits the alert threshold. Protected.
	ScreenControl
	// ScreenProfile shows the identity record and the logout action.
	ScreenProfile
)

// String returns the screen name used in navigation and logging.
func (s Screen) String() string {
	switch s {
	case ScreenMonitoring:
		return "Monitoring"
	case ScreenControl:
		return "Control"
	case ScreenProfile:
		return "Profile"
	default:
		return "Login"
	}
}

// navigateMsg asks the root model to switch the active screen.
type navigateMsg struct {
	screen Screen
}

// noticeMsg displays a dismissible notice in the status area.
type noticeMsg struct {
	text string
}
