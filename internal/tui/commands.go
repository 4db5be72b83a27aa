package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/portal"
)

// Every command bounds its call with the configured timeout so a hung
// request settles as a transport failure instead of wedging its guard
// forever.
func (a *App) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.ctx, a.cfg.API.Timeout)
}

func (a *App) loadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		projects, err := a.gw.ListProjects(ctx)
		return projectsMsg{projects: projects, err: err}
	}
}

func (a *App) loadDetailCmd(fence uint64, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		project, err := a.gw.GetProject(ctx, id)
		return detailMsg{fence: fence, project: project, err: err}
	}
}

func (a *App) loadRosterCmd(fence uint64, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		apps, err := a.roster.Fetch(ctx, a.gw, projectID)
		return rosterMsg{fence: fence, apps: apps, err: err}
	}
}

func (a *App) loadEmployeesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		employees, err := a.gw.ListEmployees(ctx)
		return employeesMsg{employees: employees, err: err}
	}
}

func (a *App) submitWizardCmd(w *portal.Wizard, payload api.ProjectPayload) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		var err error
		if w.Mode() == portal.ModeEdit {
			_, err = a.gw.UpdateProject(ctx, w.ProjectID(), payload)
		} else {
			_, err = a.gw.CreateProject(ctx, payload)
		}
		return wizardDoneMsg{err: err}
	}
}

func (a *App) applyCmd(fence uint64, existing *api.Application, projectID, resumeURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		_, err := a.actions.Apply(ctx, a.gw, existing, projectID, resumeURL)
		return actionDoneMsg{action: portal.ActionApply, fence: fence, err: err}
	}
}

func (a *App) withdrawCmd(fence uint64, app api.Application) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		err := a.actions.Withdraw(ctx, a.gw, app)
		return actionDoneMsg{action: portal.ActionWithdraw, fence: fence, err: err}
	}
}

// decideCmd refetches the application before deciding so the terminal-status
// guard runs against the server's current record, not the roster mirror.
func (a *App) decideCmd(fence uint64, appID string, action portal.Action, reason string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		app, err := a.gw.GetApplication(ctx, appID)
		if err != nil {
			return actionDoneMsg{action: action, fence: fence, err: err}
		}
		err = a.actions.Decide(ctx, a.gw, app, action, reason)
		return actionDoneMsg{action: action, fence: fence, err: err}
	}
}

func (a *App) deleteProjectCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.callCtx()
		defer cancel()
		err := a.gw.DeleteProject(ctx, id)
		return deleteDoneMsg{id: id, err: err}
	}
}
