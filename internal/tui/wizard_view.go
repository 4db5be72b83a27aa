package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/portal"
)

// wizardView is the terminal side of the wizard session: the text inputs for
// the current step, the department chooser and the team-lead picker. The
// validated state itself lives in portal.Wizard; this struct only holds what
// the user is typing.
type wizardView struct {
	rows  []formRow
	focus int

	deptIdx int

	directory    []api.Employee
	ranked       []api.Employee
	pickerQuery  textinput.Model
	pickerCursor int
}

type rowKind int

const (
	rowText rowKind = iota
	rowChoice
	rowLead
)

type formRow struct {
	kind  rowKind
	key   string
	label string
	input textinput.Model
}

func newFormInput(value, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.SetValue(value)
	return ti
}

func (a *App) openWizard(edit *api.Project) (tea.Model, tea.Cmd) {
	if edit != nil {
		a.wizard = portal.NewEditWizard(*edit)
	} else {
		a.wizard = portal.NewWizard()
	}
	a.wiz = wizardView{}
	a.wiz.pickerQuery = newFormInput("", "type to search employees")
	a.buildStep()
	a.state = viewWizard
	a.status = ""
	// the directory backs the team-lead picker on step two
	return a, tea.Batch(a.loadEmployeesCmd(), textinput.Blink)
}

// buildStep rebuilds the input rows for the wizard's current step from the
// form's stored values.
func (a *App) buildStep() {
	f := a.wizard.Form()
	var rows []formRow
	switch a.wizard.Step() {
	case portal.StepDetails:
		rows = []formRow{
			{kind: rowText, key: "title", label: "Title", input: newFormInput(f.Title, "project title")},
			{kind: rowText, key: "description", label: "Description", input: newFormInput(f.Description, "what the engagement covers")},
			{kind: rowChoice, key: "department", label: "Department"},
			{kind: rowText, key: "requiredSkills", label: "Required skills", input: newFormInput(strings.Join(f.Skills, ", "), "comma-separated, in display order")},
		}
		a.wiz.deptIdx = 0
		for i, d := range api.Departments {
			if d == f.Department {
				a.wiz.deptIdx = i
				break
			}
		}
		if f.Department == "" {
			a.wiz.deptIdx = -1
		}
	case portal.StepTeam:
		rows = []formRow{
			{kind: rowText, key: "teamSizeLimit", label: "Team size limit", input: newFormInput(f.TeamSize, "e.g. 5")},
			{kind: rowLead, key: "teamLead", label: "Team lead"},
			{kind: rowText, key: "startDate", label: "Start date", input: newFormInput(f.StartDate, "YYYY-MM-DD")},
			{kind: rowText, key: "endDate", label: "End date", input: newFormInput(f.EndDate, "YYYY-MM-DD")},
		}
	case portal.StepClient:
		c := f.Client
		rows = []formRow{
			{kind: rowText, key: "client.name", label: "Client name", input: newFormInput(c.Name, "company name")},
			{kind: rowText, key: "client.contactEmail", label: "Contact email", input: newFormInput(c.ContactEmail, "contact@company.com")},
			{kind: rowText, key: "client.mobile", label: "Mobile", input: newFormInput(c.Mobile, "+61 400 000 000")},
			{kind: rowText, key: "client.ceo", label: "CEO", input: newFormInput(c.CEO, "")},
			{kind: rowText, key: "client.industry", label: "Industry", input: newFormInput(c.Industry, "")},
			{kind: rowText, key: "client.location", label: "Location", input: newFormInput(c.Location, "")},
			{kind: rowText, key: "client.website", label: "Website", input: newFormInput(c.Website, "")},
			{kind: rowText, key: "client.address", label: "Address", input: newFormInput(c.Address, "")},
			{kind: rowText, key: "client.gstNumber", label: "GST number", input: newFormInput(c.GSTNumber, "")},
			{kind: rowText, key: "client.registrationId", label: "Registration id", input: newFormInput(c.RegistrationID, "")},
		}
	}
	a.wiz.rows = rows
	a.wiz.focus = 0
	a.focusRow(0)
}

func (a *App) focusRow(i int) {
	for r := range a.wiz.rows {
		if a.wiz.rows[r].kind != rowText {
			continue
		}
		if r == i {
			a.wiz.rows[r].input.Focus()
		} else {
			a.wiz.rows[r].input.Blur()
		}
	}
}

// syncForm copies the typed values back into the wizard form before any
// navigation or submission.
func (a *App) syncForm() {
	f := a.wizard.Form()
	for _, row := range a.wiz.rows {
		val := strings.TrimRight(row.input.Value(), " ")
		switch row.key {
		case "title":
			f.Title = val
		case "description":
			f.Description = val
		case "requiredSkills":
			f.Skills = portal.ParseSkills(row.input.Value())
		case "teamSizeLimit":
			f.TeamSize = val
		case "startDate":
			f.StartDate = val
		case "endDate":
			f.EndDate = val
		case "client.name":
			f.Client.Name = val
		case "client.contactEmail":
			f.Client.ContactEmail = val
		case "client.mobile":
			f.Client.Mobile = val
		case "client.ceo":
			f.Client.CEO = val
		case "client.industry":
			f.Client.Industry = val
		case "client.location":
			f.Client.Location = val
		case "client.website":
			f.Client.Website = val
		case "client.address":
			f.Client.Address = val
		case "client.gstNumber":
			f.Client.GSTNumber = val
		case "client.registrationId":
			f.Client.RegistrationID = val
		}
	}
	if a.wiz.deptIdx >= 0 && a.wiz.deptIdx < len(api.Departments) && a.wizard.Step() == portal.StepDetails {
		f.Department = api.Departments[a.wiz.deptIdx]
	}
}

func (a *App) handleWizardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := a.wizard
	switch m.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		// cancelling resets the whole session; nothing leaks into the next open
		a.closeWizard()
		a.status = ""
		return a, nil
	case "tab", "down":
		if a.wiz.focus < len(a.wiz.rows)-1 {
			a.wiz.focus++
			a.focusRow(a.wiz.focus)
		}
		return a, nil
	case "shift+tab", "up":
		if a.wiz.focus > 0 {
			a.wiz.focus--
			a.focusRow(a.wiz.focus)
		}
		return a, nil
	case "left", "right":
		row := a.wiz.rows[a.wiz.focus]
		if row.kind == rowChoice {
			n := len(api.Departments)
			if m.String() == "right" {
				a.wiz.deptIdx = (a.wiz.deptIdx + 1 + n + 1) % (n + 1)
			} else {
				a.wiz.deptIdx = (a.wiz.deptIdx + n) % (n + 1)
			}
			if a.wiz.deptIdx == n {
				a.wiz.deptIdx = -1
			}
			return a, nil
		}
	case "ctrl+b":
		a.syncForm()
		w.Retreat()
		a.buildStep()
		return a, nil
	case "enter":
		row := a.wiz.rows[a.wiz.focus]
		if row.kind == rowLead {
			a.modal = modalLeadPicker
			a.wiz.pickerQuery.SetValue("")
			a.wiz.pickerQuery.Focus()
			a.wiz.pickerCursor = 0
			a.wiz.refreshPicker()
			return a, textinput.Blink
		}
		if a.wiz.focus < len(a.wiz.rows)-1 {
			a.wiz.focus++
			a.focusRow(a.wiz.focus)
			return a, nil
		}
		return a.advanceWizard()
	}
	var cmd tea.Cmd
	if a.wiz.rows[a.wiz.focus].kind == rowText {
		a.wiz.rows[a.wiz.focus].input, cmd = a.wiz.rows[a.wiz.focus].input.Update(m)
	}
	return a, cmd
}

func (a *App) advanceWizard() (tea.Model, tea.Cmd) {
	w := a.wizard
	a.syncForm()
	submit := w.Advance()
	if !submit {
		if len(w.Errors()) == 0 {
			a.buildStep()
		}
		return a, nil
	}
	payload, errs := w.Payload()
	if errs != nil {
		return a, nil
	}
	if w.Submitting() {
		return a, nil
	}
	w.SetSubmitting(true)
	return a, tea.Batch(a.submitWizardCmd(w, payload), a.loadingSpin.Tick)
}

// --- team-lead picker -------------------------------------------------------

func (v *wizardView) refreshPicker() {
	v.ranked = portal.RankEmployees(v.directory, v.pickerQuery.Value())
	if v.pickerCursor >= len(v.ranked) {
		v.pickerCursor = 0
	}
}

func (a *App) handleLeadPickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
		a.wiz.pickerQuery.Blur()
		return a, nil
	case "up":
		if a.wiz.pickerCursor > 0 {
			a.wiz.pickerCursor--
		}
		return a, nil
	case "down":
		if a.wiz.pickerCursor < len(a.wiz.ranked)-1 {
			a.wiz.pickerCursor++
		}
		return a, nil
	case "enter":
		if a.wiz.pickerCursor < len(a.wiz.ranked) {
			lead := a.wiz.ranked[a.wiz.pickerCursor]
			a.wizard.Form().TeamLead = &lead
		}
		a.modal = modalNone
		a.wiz.pickerQuery.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.wiz.pickerQuery, cmd = a.wiz.pickerQuery.Update(m)
	a.wiz.refreshPicker()
	return a, cmd
}
