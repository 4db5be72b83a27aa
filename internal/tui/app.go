package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/config"
	"github.com/benchline/benchline/internal/portal"
	"github.com/benchline/benchline/internal/session"
)

// App ties the coordinators to the terminal. All state transitions happen on
// the Update loop; network work runs as commands that report back through
// the typed messages at the bottom of this file.
type App struct {
	ctx  context.Context
	cfg  config.Config
	sess session.Context
	gw   portal.Gateway
	log  zerolog.Logger

	newGateway gatewayFactory

	catalog *portal.Catalog
	roster  *portal.Roster
	actions *portal.Actions
	wizard  *portal.Wizard

	state viewState
	modal modalState

	projectsLoading bool
	listCursor      int
	rosterCursor    int
	rosterFocused   bool

	searching   bool
	searchInput textinput.Model

	resumeInput textinput.Model
	reasonInput textinput.Model
	// application the open reason modal decides on
	decisionAction portal.Action
	decisionAppID  string

	login loginView
	wiz   wizardView

	loadingSpin spinner.Model
	status      string
	tz          *time.Location
	width       int
	height      int
}

// gatewayFactory rebuilds the gateway after login; tests swap it out.
type gatewayFactory func(token string) portal.Gateway

type viewState string

const (
	viewLogin    viewState = "login"
	viewProjects viewState = "projects"
	viewWizard   viewState = "wizard"
	viewSettings viewState = "settings"
)

type modalState string

const (
	modalNone          modalState = ""
	modalApply         modalState = "apply"
	modalReason        modalState = "reason"
	modalConfirmDelete modalState = "confirmDelete"
	modalLeadPicker    modalState = "leadPicker"
)

// Deps bundles what New needs beyond config.
type Deps struct {
	Session    session.Context
	Gateway    portal.Gateway
	NewGateway gatewayFactory
	Log        zerolog.Logger
}

type loginView struct {
	input textinput.Model
	err   string
}

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	search := textinput.New()
	search.Placeholder = "search title or description"
	search.CharLimit = 120

	resume := textinput.New()
	resume.Placeholder = "https://example.com/resume.pdf"
	resume.CharLimit = 512

	reason := textinput.New()
	reason.Placeholder = "reason"
	reason.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	tz, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		tz = time.Local
	}

	a := &App{
		ctx:         ctx,
		cfg:         cfg,
		sess:        deps.Session,
		gw:          deps.Gateway,
		log:         deps.Log,
		newGateway:  deps.NewGateway,
		catalog:     portal.NewCatalog(),
		roster:      portal.NewRoster(deps.Session),
		actions:     portal.NewActions(),
		state:       viewProjects,
		searchInput: search,
		resumeInput: resume,
		reasonInput: reason,
		loadingSpin: spin,
		tz:          tz,
	}
	if deps.Session.Token == "" {
		a.state = viewLogin
		ti := textinput.New()
		ti.Placeholder = "paste bearer token"
		ti.EchoMode = textinput.EchoPassword
		ti.CharLimit = 4096
		ti.Focus()
		a.login.input = ti
	}
	return a
}

func (a *App) Init() tea.Cmd {
	if a.state == viewLogin {
		return textinput.Blink
	}
	a.projectsLoading = true
	return tea.Batch(a.loadProjectsCmd(), a.loadingSpin.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case spinner.TickMsg:
		if !a.anythingLoading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpin, cmd = a.loadingSpin.Update(m)
		return a, cmd
	case tea.KeyMsg:
		return a.handleKey(m)
	case projectsMsg:
		return a.handleProjects(m)
	case detailMsg:
		return a.handleDetail(m)
	case rosterMsg:
		return a.handleRoster(m)
	case employeesMsg:
		return a.handleEmployees(m)
	case wizardDoneMsg:
		return a.handleWizardDone(m)
	case actionDoneMsg:
		return a.handleActionDone(m)
	case deleteDoneMsg:
		return a.handleDeleteDone(m)
	}
	return a, nil
}

func (a *App) anythingLoading() bool {
	return a.projectsLoading || a.catalog.DetailLoading() || a.roster.Loading() ||
		(a.wizard != nil && a.wizard.Submitting())
}

// --- message handlers -------------------------------------------------------

func (a *App) handleProjects(m projectsMsg) (tea.Model, tea.Cmd) {
	a.projectsLoading = false
	if m.err != nil {
		a.status = "error: " + api.Surface(m.err)
		a.log.Warn().Err(m.err).Msg("project list load failed")
		return a, nil
	}
	selectedID, fence := a.catalog.SetProjects(m.projects)
	if a.listCursor >= len(a.catalog.Filtered()) {
		a.listCursor = 0
	}
	a.log.Info().Int("count", len(m.projects)).Msg("project list loaded")
	if fence != 0 {
		// new selection: clear per-user state before anything resolves
		a.roster.Clear()
		a.catalog.SetDetailLoading(true)
		return a, tea.Batch(a.loadDetailCmd(fence, selectedID), a.loadingSpin.Tick)
	}
	if a.catalog.SelectedID() == "" {
		// reload came back without the selection; derived state goes with it
		a.roster.Clear()
	}
	return a, nil
}

func (a *App) handleDetail(m detailMsg) (tea.Model, tea.Cmd) {
	if !a.catalog.IsCurrent(m.fence) {
		a.log.Debug().Uint64("fence", m.fence).Msg("stale detail response discarded")
		return a, nil
	}
	if m.err != nil {
		a.catalog.SetDetailLoading(false)
		a.status = "error: " + api.Surface(m.err)
		if api.IsKind(m.err, api.KindNotFound) {
			a.catalog.ClearSelection()
			a.roster.Clear()
			a.projectsLoading = true
			return a, a.loadProjectsCmd()
		}
		return a, nil
	}
	a.catalog.ApplyDetail(m.fence, m.project)
	// roster reload strictly after the detail resolved
	a.roster.SetLoading(true)
	return a, a.loadRosterCmd(m.fence, m.project.ID)
}

func (a *App) handleRoster(m rosterMsg) (tea.Model, tea.Cmd) {
	if !a.catalog.IsCurrent(m.fence) {
		a.log.Debug().Uint64("fence", m.fence).Msg("stale roster response discarded")
		return a, nil
	}
	if m.err != nil {
		// fail closed: an unknown roster reads as no application
		a.roster.Clear()
		a.status = "error: " + api.Surface(m.err)
		return a, nil
	}
	a.roster.Set(m.apps)
	if a.rosterCursor >= len(m.apps) {
		a.rosterCursor = 0
	}
	return a, nil
}

func (a *App) handleEmployees(m employeesMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		a.status = "error: " + api.Surface(m.err)
		return a, nil
	}
	a.wiz.directory = m.employees
	a.wiz.refreshPicker()
	return a, nil
}

func (a *App) handleWizardDone(m wizardDoneMsg) (tea.Model, tea.Cmd) {
	if a.wizard == nil {
		return a, nil
	}
	a.wizard.SetSubmitting(false)
	if m.err != nil {
		// keep the wizard open with entered data intact
		a.status = "error: " + api.Surface(m.err)
		return a, nil
	}
	mode := a.wizard.Mode()
	a.closeWizard()
	if mode == portal.ModeEdit {
		a.status = "project updated"
	} else {
		a.status = "project created"
	}
	a.projectsLoading = true
	return a, tea.Batch(a.loadProjectsCmd(), a.loadingSpin.Tick)
}

func (a *App) handleActionDone(m actionDoneMsg) (tea.Model, tea.Cmd) {
	a.actions.End(m.action)
	if m.err != nil {
		a.status = "error: " + api.Surface(m.err)
		a.log.Warn().Str("action", string(m.action)).Err(m.err).Msg("application action failed")
		return a, nil
	}
	switch m.action {
	case portal.ActionApply:
		a.status = "application submitted"
	case portal.ActionWithdraw:
		a.status = "application withdrawn"
	case portal.ActionApprove:
		a.status = "application approved"
	case portal.ActionReject:
		a.status = "application rejected"
	}
	// no optimistic merge: refetch the authoritative roster
	id := a.catalog.SelectedID()
	if id == "" || !a.catalog.IsCurrent(m.fence) {
		return a, nil
	}
	a.roster.SetLoading(true)
	return a, a.loadRosterCmd(m.fence, id)
}

func (a *App) handleDeleteDone(m deleteDoneMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		a.status = "error: " + api.Surface(m.err)
		if api.IsKind(m.err, api.KindNotFound) {
			a.catalog.ClearSelection()
			a.roster.Clear()
			a.projectsLoading = true
			return a, a.loadProjectsCmd()
		}
		return a, nil
	}
	a.catalog.Remove(m.id)
	if a.catalog.SelectedID() == "" {
		// the deleted project was the selection; its roster must not outlive it
		a.roster.Clear()
	}
	if a.listCursor >= len(a.catalog.Filtered()) {
		a.listCursor = 0
	}
	a.status = "project deleted"
	return a, nil
}

// selectProject starts the fenced detail/roster chain for a new selection.
// Derived per-user flags are cleared synchronously, before any fetch
// resolves, so the previous project's state can never flash onto this one.
func (a *App) selectProject(id string) tea.Cmd {
	fence := a.catalog.Select(id)
	a.roster.Clear()
	a.rosterCursor = 0
	a.catalog.SetDetailLoading(true)
	a.log.Info().Str("project_id", id).Uint64("fence", fence).Msg("project selected")
	return tea.Batch(a.loadDetailCmd(fence, id), a.loadingSpin.Tick)
}

func (a *App) closeWizard() {
	a.wizard = nil
	a.wiz = wizardView{}
	a.state = viewProjects
	a.modal = modalNone
}

// --- messages ---------------------------------------------------------------

type projectsMsg struct {
	projects []api.Project
	err      error
}

type detailMsg struct {
	fence   uint64
	project api.Project
	err     error
}

type rosterMsg struct {
	fence uint64
	apps  []api.Application
	err   error
}

type employeesMsg struct {
	employees []api.Employee
	err       error
}

type wizardDoneMsg struct {
	err error
}

type actionDoneMsg struct {
	action portal.Action
	fence  uint64
	err    error
}

type deleteDoneMsg struct {
	id  string
	err error
}
