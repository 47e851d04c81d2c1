package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thermowatch/thermowatch/core/apiclient"
	"github.com/thermowatch/thermowatch/core/gate"
	"github.com/thermowatch/thermowatch/core/logger"
	"github.com/thermowatch/thermowatch/core/session"
	"github.com/thermowatch/thermowatch/core/threshold"
)

// loginResultMsg reports a settled login attempt.
type loginResultMsg struct {
	err error
}

// guestChosenMsg reports the explicit guest choice.
type guestChosenMsg struct{}

// readingsResultMsg carries a settled sensor-reading fetch.
type readingsResultMsg struct {
	readings []apiclient.SensorReading
	err      error
}

// workflowSettledMsg signals that a threshold Fetch or Submit has settled;
// the fresh state is read from the workflow itself.
type workflowSettledMsg struct{}

// Config carries the tunables the UI needs.
type Config struct {
	PageSize int
}

// App is the root bubbletea model. It owns screen routing, the shared
// status notice, and the commands that bridge user intents to the core
// components. Screens render state and forward intents; all decisions about
// sessions, gating, and calls live in the core packages.
type App struct {
	store    *session.Store
	client   *apiclient.Client
	workflow *threshold.Workflow
	logger   *slog.Logger
	keys     keyMap

	active Screen
	notice string

	login      loginModel
	monitoring monitoringModel
	control    controlModel

	// fetchedOnAuth tracks the one opportunistic threshold fetch performed
	// when the session first becomes authenticated.
	fetchedOnAuth bool

	width int
}

// NewApp wires the root model. The workflow must be built over the same
// store and client.
func NewApp(store *session.Store, client *apiclient.Client, wf *threshold.Workflow, cfg Config, log *slog.Logger) *App {
	if log == nil {
		log = logger.Discard()
	}
	return &App{
		store:      store,
		client:     client,
		workflow:   wf,
		logger:     log,
		keys:       defaultKeyMap(),
		active:     ScreenLogin,
		login:      newLoginModel(),
		monitoring: newMonitoringModel(cfg.PageSize),
		control:    newControlModel(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.login.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case navigateMsg:
		return a, a.navigate(msg.screen)

	case noticeMsg:
		a.notice = msg.text
		return a, nil

	case loginResultMsg:
		return a, a.onLoginResult(msg.err)

	case guestChosenMsg:
		a.store.ContinueAsGuest()
		return a, a.navigate(ScreenMonitoring)

	case readingsResultMsg:
		a.monitoring.onResult(msg)
		if msg.err != nil {
			a.notice = "Could not load sensor data. Please try again later."
		}
		return a, nil

	case workflowSettledMsg:
		a.control.onSettled(a.workflow.State())
		return a, nil

	case tea.KeyMsg:
		return a.onKey(msg)
	}

	return a, nil
}

func (a *App) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Dismiss):
		a.notice = ""
		return a, nil

	case key.Matches(msg, a.keys.Logout):
		a.store.Logout()
		a.fetchedOnAuth = false
		a.notice = ""
		return a, a.navigate(ScreenLogin)

	case key.Matches(msg, a.keys.NextScreen) && a.active != ScreenLogin:
		return a, a.navigate(nextScreen(a.active))

	case key.Matches(msg, a.keys.PrevScreen) && a.active != ScreenLogin:
		return a, a.navigate(prevScreen(a.active))
	}

	// Remaining keys belong to the active screen.
	switch a.active {
	case ScreenLogin:
		cmd := a.login.onKey(msg, a)
		return a, cmd
	case ScreenMonitoring:
		cmd := a.monitoring.onKey(msg, a)
		return a, cmd
	case ScreenControl:
		cmd := a.control.onKey(msg, a)
		return a, cmd
	default:
		return a, nil
	}
}

// navigate is the single routing point for screen changes. The access gate
// is consulted on entry into the protected Control screen; a denial turns
// into a notice plus a redirect to the unguarded Monitoring screen instead
// of a hard failure.
func (a *App) navigate(target Screen) tea.Cmd {
	if target == ScreenControl {
		decision := gate.Authorize(a.store.Current(), gate.CapabilityProtected)
		if !decision.Allowed() {
			a.logger.Debug("navigation denied", logger.Screen(target.String()))
			a.notice = decision.Reason()
			target = ScreenMonitoring
		}
	}

	a.active = target
	a.logger.Debug("navigated", logger.Screen(target.String()))

	switch target {
	case ScreenMonitoring:
		// Pull-on-mount: every entry refreshes the collection.
		a.monitoring.loading = true
		return a.fetchReadingsCmd()
	case ScreenControl:
		a.control.syncInput(a.workflow)
		return a.fetchThresholdCmd()
	default:
		return nil
	}
}

func (a *App) onLoginResult(err error) tea.Cmd {
	a.login.busy = false
	if err != nil {
		a.login.errText = loginErrorMessage(err)
		return nil
	}

	a.notice = ""
	cmds := []tea.Cmd{a.navigate(ScreenMonitoring)}
	if !a.fetchedOnAuth {
		// Opportunistic threshold fetch, once per authenticated session.
		a.fetchedOnAuth = true
		cmds = append(cmds, a.fetchThresholdCmd())
	}
	return tea.Batch(cmds...)
}

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.store.Login(context.Background(), username, password)
		return loginResultMsg{err: err}
	}
}

func (a *App) fetchReadingsCmd() tea.Cmd {
	return func() tea.Msg {
		readings, err := a.client.SensorReadings(context.Background())
		return readingsResultMsg{readings: readings, err: err}
	}
}

func (a *App) fetchThresholdCmd() tea.Cmd {
	return func() tea.Msg {
		a.workflow.Fetch(context.Background())
		return workflowSettledMsg{}
	}
}

func (a *App) submitThresholdCmd(input string) tea.Cmd {
	return func() tea.Msg {
		a.workflow.SetInput(input)
		a.workflow.Submit(context.Background())
		return workflowSettledMsg{}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var body string
	switch a.active {
	case ScreenLogin:
		body = a.login.view()
	case ScreenMonitoring:
		body = a.monitoring.view()
	case ScreenControl:
		body = a.control.view(a.workflow.State())
	case ScreenProfile:
		body = profileView(a.store.Current())
	}

	sections := []string{a.tabBar(), body}
	if a.notice != "" {
		sections = append(sections, noticeStyle.Render(a.notice)+hintStyle.Render("  (esc to dismiss)"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) tabBar() string {
	if a.active == ScreenLogin {
		return titleStyle.Render("ThermoWatch")
	}

	tabs := make([]string, 0, 3)
	for _, s := range []Screen{ScreenMonitoring, ScreenControl, ScreenProfile} {
		if s == a.active {
			tabs = append(tabs, activeTabStyle.Render(s.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(s.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs[0], "  ", tabs[1], "  ", tabs[2])
}

func nextScreen(s Screen) Screen {
	switch s {
	case ScreenMonitoring:
		return ScreenControl
	case ScreenControl:
		return ScreenProfile
	default:
		return ScreenMonitoring
	}
}

func prevScreen(s Screen) Screen {
	switch s {
	case ScreenProfile:
		return ScreenControl
	case ScreenControl:
		return ScreenMonitoring
	default:
		return ScreenProfile
	}
}
