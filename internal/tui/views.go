package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/portal"
)

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	badgeOpen    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badgeClosed  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	badgePending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewLogin:
		body = a.renderLogin()
	case viewWizard:
		body = a.renderWizard()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderProjects()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderLogin() string {
	out := titleStyle.Render("Benchline — sign in") + "\n\n"
	out += "Paste the bearer token issued by the staffing portal.\n\n"
	out += a.login.input.View() + "\n"
	if a.login.err != "" {
		out += errStyle.Render(a.login.err) + "\n"
	}
	out += "\n[enter] Sign in  [ctrl+c] Quit"
	return out
}

func (a *App) renderProjects() string {
	title := titleStyle.Render("Projects")
	out := title + "\n"

	if a.searching {
		out += "filter: " + a.searchInput.View() + "\n"
	} else if a.catalog.Filter() != "" {
		out += dimStyle.Render("filter: "+a.catalog.Filter()) + "\n"
	}

	if a.projectsLoading {
		out += a.loadingSpin.View() + " loading projects...\n"
	}

	filtered := a.catalog.Filtered()
	if len(filtered) == 0 && !a.projectsLoading {
		out += dimStyle.Render("no projects") + "\n"
	}
	for i, p := range filtered {
		marker := " "
		if i == a.listCursor && !a.rosterFocused {
			marker = "▶"
		}
		sel := " "
		if p.ID == a.catalog.SelectedID() {
			sel = "*"
		}
		out += fmt.Sprintf("%s%s %-8s %-32s %s\n", marker, sel, p.DisplayCode, p.Title, statusBadge(p.Status))
	}

	out += "\n" + a.renderDetail()
	out += "\n" + a.renderRoster()
	out += "\n" + a.footer()
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderDetail() string {
	out := titleStyle.Render("Detail") + "\n"
	if a.catalog.DetailLoading() {
		return out + a.loadingSpin.View() + " loading detail...\n"
	}
	p := a.catalog.Detail()
	if p == nil {
		return out + dimStyle.Render("no project selected") + "\n"
	}
	lead := "—"
	if p.TeamLead != nil {
		lead = p.TeamLead.Name
	}
	out += fmt.Sprintf("%s  %s\n", p.DisplayCode, p.Title)
	out += fmt.Sprintf("%s | %s | %s → %s\n", p.Department, statusBadge(p.Status), a.formatDate(p.StartDate), a.formatDate(p.EndDate))
	out += fmt.Sprintf("Lead: %s   Team: %d/%d\n", lead, len(p.AssignedEmployees), p.TeamSizeLimit)
	if len(p.RequiredSkills) > 0 {
		out += "Skills: " + strings.Join(p.RequiredSkills, ", ") + "\n"
	}
	if p.Client.Name != "" {
		out += fmt.Sprintf("Client: %s (%s)\n", p.Client.Name, p.Client.ContactEmail)
	}
	if p.Description != "" {
		out += dimStyle.Render(p.Description) + "\n"
	}
	return out
}

func (a *App) renderRoster() string {
	label := "Applications"
	if !a.sess.IsAdmin {
		label = "My application"
	}
	out := titleStyle.Render(label) + "\n"
	if a.roster.Loading() {
		return out + a.loadingSpin.View() + " loading applications...\n"
	}
	apps := a.roster.Applications()
	if len(apps) == 0 {
		return out + dimStyle.Render("none") + "\n"
	}
	for i, app := range apps {
		marker := " "
		if a.sess.IsAdmin && a.rosterFocused && i == a.rosterCursor {
			marker = "▶"
		}
		dropped := ""
		if app.DroppedByAdmin {
			dropped = dimStyle.Render("  (dropped)")
		}
		line := fmt.Sprintf("%s %-24s %-10s %s%s", marker, app.Employee.Name, applicationBadge(app.Status), a.formatTime(app.AppliedAt), dropped)
		if app.Status == api.StatusRejected && app.RejectedReason != "" {
			line += dimStyle.Render("  — " + app.RejectedReason)
		}
		out += line + "\n"
	}
	return out
}

func (a *App) footer() string {
	if a.sess.IsAdmin {
		return dimStyle.Render("[/] Search  [enter] Select  [tab] Focus roster  [y] Approve  [n] Reject  [c] New  [e] Edit  [x] Delete  [r] Refresh  [s] Settings  [q] Quit")
	}
	keys := "[/] Search  [enter] Select  [r] Refresh  [s] Settings  [q] Quit"
	if a.roster.HasApplied() {
		cur := a.roster.CurrentUserApplication()
		if cur != nil && cur.Status == api.StatusPending {
			keys = "[w] Withdraw  " + keys
		}
	} else if a.catalog.SelectedID() != "" {
		keys = "[a] Apply  " + keys
	}
	return dimStyle.Render(keys)
}

func (a *App) renderWizard() string {
	w := a.wizard
	names := []string{"Project Details", "Team Configuration", "Client Information"}
	out := titleStyle.Render(fmt.Sprintf("%s — step %d of 3: %s", a.wizardTitle(), w.Step()+1, names[w.Step()])) + "\n\n"

	errs := w.Errors()
	for i, row := range a.wiz.rows {
		marker := " "
		if i == a.wiz.focus {
			marker = "▶"
		}
		var value string
		switch row.kind {
		case rowChoice:
			value = "← " + a.departmentLabel() + " →"
		case rowLead:
			value = "—  (enter to pick)"
			if lead := w.Form().TeamLead; lead != nil {
				value = lead.Name + "  (enter to change)"
			}
		default:
			value = row.input.View()
		}
		out += fmt.Sprintf("%s %-18s %s\n", marker, row.label+":", value)
		if msg, ok := errs[row.key]; ok {
			out += "  " + errStyle.Render(msg) + "\n"
		}
	}

	out += "\n"
	if w.Submitting() {
		out += a.loadingSpin.View() + " submitting...\n"
	}
	nav := "[enter] Next field / Continue  [tab/shift+tab] Move  [esc] Cancel"
	if w.Step() > 0 {
		nav = "[ctrl+b] Back  " + nav
	}
	if w.Step() == portal.StepClient {
		nav = strings.Replace(nav, "Continue", "Submit", 1)
	}
	out += dimStyle.Render(nav)
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) wizardTitle() string {
	if a.wizard.Mode() == portal.ModeEdit {
		return "Edit project"
	}
	return "New project"
}

func (a *App) departmentLabel() string {
	if a.wiz.deptIdx < 0 || a.wiz.deptIdx >= len(api.Departments) {
		return "(choose)"
	}
	return api.Departments[a.wiz.deptIdx]
}

func (a *App) renderSettings() string {
	out := titleStyle.Render("Settings") + "\n"
	who := a.sess.EmployeeName
	if who == "" {
		who = a.sess.EmployeeID
	}
	role := "employee"
	if a.sess.IsAdmin {
		role = "admin"
	}
	out += fmt.Sprintf("Signed in as: %s (%s)\n", who, role)
	out += fmt.Sprintf("API: %s\n", a.cfg.API.BaseURL)
	out += fmt.Sprintf("Log file: %s\n", a.cfg.Log.Path)
	out += "\n[o] Sign out  [esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalApply:
		return titleStyle.Render("Apply to project") + "\nResume or portfolio link:\n" + a.resumeInput.View() + "\n[enter] Apply  [esc] Cancel"
	case modalReason:
		verb := "Approve"
		if a.decisionAction == portal.ActionReject {
			verb = "Reject"
		}
		return titleStyle.Render(verb+" application") + "\nReason (required):\n" + a.reasonInput.View() + "\n[enter] " + verb + "  [esc] Cancel"
	case modalConfirmDelete:
		return titleStyle.Render("Delete project?") + "\nThis cannot be undone; its applications go with it.\n[y] Yes  [n] No"
	case modalLeadPicker:
		out := titleStyle.Render("Pick team lead") + "\n" + a.wiz.pickerQuery.View() + "\n"
		if len(a.wiz.ranked) == 0 {
			out += dimStyle.Render("no matches") + "\n"
		}
		for i, e := range a.wiz.ranked {
			if i >= 8 {
				out += dimStyle.Render(fmt.Sprintf("(+%d more)", len(a.wiz.ranked)-8)) + "\n"
				break
			}
			marker := " "
			if i == a.wiz.pickerCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-24s %s\n", marker, e.Name, dimStyle.Render(e.Email))
		}
		out += "[enter] Select  [esc] Cancel"
		return out
	default:
		return ""
	}
}

func (a *App) formatDate(d api.Date) string {
	if d.IsZero() {
		return "—"
	}
	return d.Format(a.cfg.UI.DateFormat)
}

func (a *App) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(a.tz).Format(a.cfg.UI.DateFormat)
}

func statusBadge(status string) string {
	if status == api.ProjectClosed {
		return badgeClosed.Render("closed")
	}
	return badgeOpen.Render("open")
}

func applicationBadge(status string) string {
	switch status {
	case api.StatusApproved:
		return badgeOpen.Render("approved")
	case api.StatusRejected:
		return errStyle.Render("rejected")
	default:
		return badgePending.Render("pending")
	}
}
