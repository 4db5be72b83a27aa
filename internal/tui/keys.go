package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benchline/benchline/internal/portal"
	"github.com/benchline/benchline/internal/session"
)

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.state == viewLogin {
		return a.handleLoginKey(m)
	}
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	switch a.state {
	case viewWizard:
		return a.handleWizardKey(m)
	case viewSettings:
		return a.handleSettingsKey(m)
	default:
		return a.handleProjectsKey(m)
	}
}

// --- login ------------------------------------------------------------------

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "enter":
		token := strings.TrimSpace(a.login.input.Value())
		sess, err := session.FromToken(token)
		if err != nil {
			a.login.err = "that does not look like a valid token"
			return a, nil
		}
		if err := session.SaveToken(sess.Token); err != nil {
			a.log.Warn().Err(err).Msg("persist session token failed")
		}
		a.sess = sess
		a.roster = portal.NewRoster(sess)
		if a.newGateway != nil {
			a.gw = a.newGateway(sess.Token)
		}
		a.state = viewProjects
		a.login = loginView{}
		a.log.Info().Str("employee_id", sess.EmployeeID).Bool("is_admin", sess.IsAdmin).Msg("signed in")
		a.projectsLoading = true
		return a, tea.Batch(a.loadProjectsCmd(), a.loadingSpin.Tick)
	}
	var cmd tea.Cmd
	a.login.input, cmd = a.login.input.Update(m)
	return a, cmd
}

// --- projects view ----------------------------------------------------------

func (a *App) handleProjectsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		return a.handleSearchKey(m)
	}
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "/":
		a.searching = true
		a.searchInput.SetValue(a.catalog.Filter())
		a.searchInput.Focus()
		return a, textinput.Blink
	case "tab":
		if a.sess.IsAdmin {
			a.rosterFocused = !a.rosterFocused
		}
	case "up", "k":
		if a.rosterFocused {
			if a.rosterCursor > 0 {
				a.rosterCursor--
			}
		} else if a.listCursor > 0 {
			a.listCursor--
		}
	case "down", "j":
		if a.rosterFocused {
			if a.rosterCursor < len(a.roster.Applications())-1 {
				a.rosterCursor++
			}
		} else if a.listCursor < len(a.catalog.Filtered())-1 {
			a.listCursor++
		}
	case "enter":
		if a.rosterFocused {
			return a, nil
		}
		filtered := a.catalog.Filtered()
		if a.listCursor >= len(filtered) {
			return a, nil
		}
		id := filtered[a.listCursor].ID
		if id == a.catalog.SelectedID() {
			return a, nil
		}
		return a, a.selectProject(id)
	case "r":
		a.projectsLoading = true
		a.status = ""
		return a, tea.Batch(a.loadProjectsCmd(), a.loadingSpin.Tick)
	case "a":
		return a.openApplyModal()
	case "w":
		return a.startWithdraw()
	case "y":
		return a.openReasonModal(portal.ActionApprove)
	case "n":
		return a.openReasonModal(portal.ActionReject)
	case "c":
		if !a.sess.IsAdmin {
			return a, nil
		}
		return a.openWizard(nil)
	case "e":
		if !a.sess.IsAdmin {
			return a, nil
		}
		detail := a.catalog.Detail()
		if detail == nil {
			a.status = "project detail still loading"
			return a, nil
		}
		return a.openWizard(detail)
	case "x":
		if !a.sess.IsAdmin || a.catalog.SelectedID() == "" {
			return a, nil
		}
		a.modal = modalConfirmDelete
	case "s":
		a.state = viewSettings
		a.status = ""
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.searching = false
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		a.catalog.SetFilter("")
		a.listCursor = 0
		return a, nil
	case "enter":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(m)
	a.catalog.SetFilter(a.searchInput.Value())
	if a.listCursor >= len(a.catalog.Filtered()) {
		a.listCursor = 0
	}
	return a, cmd
}

// --- application actions ----------------------------------------------------

func (a *App) openApplyModal() (tea.Model, tea.Cmd) {
	if a.sess.IsAdmin || a.catalog.SelectedID() == "" {
		return a, nil
	}
	if a.roster.Loading() {
		a.status = "roster still loading"
		return a, nil
	}
	if a.roster.HasApplied() {
		a.status = "you have already applied to this project"
		return a, nil
	}
	a.modal = modalApply
	a.resumeInput.SetValue("")
	a.resumeInput.Focus()
	return a, textinput.Blink
}

func (a *App) startWithdraw() (tea.Model, tea.Cmd) {
	if a.sess.IsAdmin {
		return a, nil
	}
	app := a.roster.CurrentUserApplication()
	if app == nil {
		a.status = "no application to withdraw"
		return a, nil
	}
	if !a.actions.TryBegin(portal.ActionWithdraw) {
		return a, nil
	}
	fence := a.currentFence()
	return a, a.withdrawCmd(fence, *app)
}

func (a *App) openReasonModal(action portal.Action) (tea.Model, tea.Cmd) {
	if !a.sess.IsAdmin || !a.rosterFocused {
		return a, nil
	}
	apps := a.roster.Applications()
	if a.rosterCursor >= len(apps) {
		return a, nil
	}
	a.modal = modalReason
	a.decisionAction = action
	a.decisionAppID = apps[a.rosterCursor].ID
	a.reasonInput.SetValue("")
	a.reasonInput.Focus()
	return a, textinput.Blink
}

// currentFence tags an action with the live selection so its follow-up
// roster refresh is discarded if the selection moves meanwhile.
func (a *App) currentFence() uint64 {
	return a.catalog.Fence()
}

// --- modals -----------------------------------------------------------------

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalApply:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			a.resumeInput.Blur()
			return a, nil
		case "enter":
			resume := strings.TrimSpace(a.resumeInput.Value())
			if resume == "" {
				a.status = "a resume or portfolio link is required"
				return a, nil
			}
			if !a.actions.TryBegin(portal.ActionApply) {
				return a, nil
			}
			a.modal = modalNone
			a.resumeInput.Blur()
			fence := a.currentFence()
			return a, a.applyCmd(fence, a.roster.CurrentUserApplication(), a.catalog.SelectedID(), resume)
		}
		var cmd tea.Cmd
		a.resumeInput, cmd = a.resumeInput.Update(m)
		return a, cmd
	case modalReason:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			a.reasonInput.Blur()
			return a, nil
		case "enter":
			reason := strings.TrimSpace(a.reasonInput.Value())
			if reason == "" {
				a.status = "a reason is required"
				return a, nil
			}
			app := a.roster.ApplicationByID(a.decisionAppID)
			if app == nil {
				a.modal = modalNone
				return a, nil
			}
			if !a.actions.TryBegin(a.decisionAction) {
				return a, nil
			}
			action := a.decisionAction
			a.modal = modalNone
			a.reasonInput.Blur()
			fence := a.currentFence()
			return a, a.decideCmd(fence, app.ID, action, reason)
		}
		var cmd tea.Cmd
		a.reasonInput, cmd = a.reasonInput.Update(m)
		return a, cmd
	case modalConfirmDelete:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.deleteProjectCmd(a.catalog.SelectedID())
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalLeadPicker:
		return a.handleLeadPickerKey(m)
	}
	return a, nil
}

// --- settings ---------------------------------------------------------------

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "p":
		a.state = viewProjects
		a.status = ""
	case "o":
		if err := session.ClearToken(); err != nil {
			a.status = "error: could not clear session"
			return a, nil
		}
		a.log.Info().Msg("signed out")
		return a, tea.Quit
	}
	return a, nil
}
