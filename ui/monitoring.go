package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thermowatch/thermowatch/core/apiclient"
	"github.com/thermowatch/thermowatch/core/pagination"
)

// monitoringModel shows the paginated sensor readings. The window owns the
// page index; every fresh fetch replaces the collection and snaps back to
// the first page.
type monitoringModel struct {
	window  *pagination.Window[apiclient.SensorReading]
	loading bool
	keys    keyMap
}

func newMonitoringModel(pageSize int) monitoringModel {
	return monitoringModel{
		window: pagination.New[apiclient.SensorReading](nil, pageSize),
		keys:   defaultKeyMap(),
	}
}

func (m *monitoringModel) onResult(msg readingsResultMsg) {
	m.loading = false
	if msg.err != nil {
		// Prior collection stays visible; the root model shows the notice.
		return
	}
	m.window.SetItems(msg.readings)
}

func (m *monitoringModel) onKey(msg tea.KeyMsg, app *App) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.NextPage):
		m.window.Next()
	case key.Matches(msg, m.keys.PrevPage):
		m.window.Previous()
	case key.Matches(msg, m.keys.Refresh):
		if !m.loading {
			m.loading = true
			return app.fetchReadingsCmd()
		}
	}
	return nil
}

func (m *monitoringModel) view() string {
	if m.loading && m.window.TotalItems() == 0 {
		return cardStyle.Render(labelStyle.Render("Loading sensor data..."))
	}

	page := m.window.Page()
	if len(page) == 0 {
		return cardStyle.Render(labelStyle.Render("No sensor data yet."))
	}

	cards := make([]string, 0, len(page)+1)
	for _, reading := range page {
		threshold := "-"
		if reading.ThresholdAtCapture != nil {
			threshold = fmt.Sprintf("%.1f °C", *reading.ThresholdAtCapture)
		}
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			valueStyle.Render(fmt.Sprintf("%.1f °C", reading.Temperature)),
			labelStyle.Render("Threshold: "+threshold),
			labelStyle.Render("Recorded: "+reading.RecordedAt.Local().Format("2006-01-02 15:04:05")),
		)))
	}

	footer := fmt.Sprintf("Page %d of %d", m.window.Index(), m.window.TotalPages())
	cards = append(cards,
		labelStyle.Render(footer),
		hintStyle.Render("n/p change page · r refresh · tab next screen"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
