package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thermowatch/thermowatch/core/threshold"
)

// controlModel shows the current alert threshold and edits a new one. The
// authoritative input buffer lives in the workflow so failed submissions
// keep it for retry; this model mirrors it into a textinput for display.
type controlModel struct {
	input textinput.Model
}

func newControlModel() controlModel {
	input := textinput.New()
	input.Placeholder = "new threshold"
	input.CharLimit = 16
	input.Focus()
	return controlModel{input: input}
}

// syncInput pulls the workflow's buffer into the visible field, e.g. when
// re-entering the screen after a failed submit.
func (m *controlModel) syncInput(wf *threshold.Workflow) {
	m.input.SetValue(wf.Input())
	m.input.CursorEnd()
}

func (m *controlModel) onSettled(st threshold.State) {
	if st.Phase == threshold.Loaded {
		// Successful submit clears the workflow buffer; mirror that.
		m.input.SetValue("")
	}
}

func (m *controlModel) onKey(msg tea.KeyMsg, app *App) tea.Cmd {
	if msg.String() == "enter" {
		if app.workflow.State().Phase == threshold.Loading {
			// An outstanding operation suppresses further submissions.
			return nil
		}
		return app.submitThresholdCmd(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *controlModel) view(st threshold.State) string {
	current := "-"
	if st.HasValue {
		current = fmt.Sprintf("%.1f °C", st.Value)
	}

	currentCard := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Current threshold"),
		valueStyle.Render(current),
	))

	lines := []string{
		labelStyle.Render("Set a new threshold"),
		m.input.View(),
	}
	switch st.Phase {
	case threshold.Loading:
		lines = append(lines, "", labelStyle.Render("Working..."))
	case threshold.Failed:
		lines = append(lines, "", errorStyle.Render(st.Message))
	}
	lines = append(lines, "", hintStyle.Render("enter save · tab next screen"))
	editCard := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.JoinVertical(lipgloss.Left, currentCard, editCard)
}
