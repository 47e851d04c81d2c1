package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thermowatch/thermowatch/core/session"
)

// profileView renders the identity record for the current session. Guests
// and anonymous sessions see placeholder values; there is no state to hold,
// so this screen is a plain view function over the session snapshot.
func profileView(sess session.Session) string {
	name, username, email := "Unknown", "Unknown", "Unknown"

	switch {
	case sess.IsGuest():
		name, username, email = "Guest", "-", "-"
	case sess.Identity != nil:
		if sess.Identity.Name != "" {
			name = sess.Identity.Name
		}
		if sess.Identity.Username != "" {
			username = sess.Identity.Username
		}
		if sess.Identity.Email != "" {
			email = sess.Identity.Email
		}
	}

	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Name"),
		valueStyle.Render(name),
		labelStyle.Render("Username"),
		valueStyle.Render(username),
		labelStyle.Render("Email"),
		valueStyle.Render(email),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		card,
		hintStyle.Render("ctrl+o log out · shift+tab previous screen"),
	)
}
