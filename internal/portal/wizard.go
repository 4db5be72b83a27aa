package portal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/benchline/benchline/internal/api"
)

// Wizard step indices. The wizard is a linear three-step machine; advancing
// past StepClient submits.
const (
	StepDetails = 0
	StepTeam    = 1
	StepClient  = 2
	stepCount   = 3
)

// WizardMode distinguishes create from edit.
type WizardMode int

const (
	ModeCreate WizardMode = iota
	ModeEdit
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// optional leading +, then digits, spaces and hyphens, at least ten of them
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{9,}$`)
)

// WizardForm holds the entered values. Numeric and date fields stay as typed
// text until validation; the nested client record is value-typed strings, so
// an edit session never sees a missing field.
type WizardForm struct {
	Title       string
	Description string
	Department  string
	Skills      []string
	Status      string

	TeamSize  string
	TeamLead  *api.Employee
	StartDate string
	EndDate   string

	Client api.ClientInfo
}

// Wizard is the three-step validated form session for creating or editing a
// project. Step navigation is gated on per-step validation only; earlier
// steps are never re-validated by Retreat, and Submit re-checks the final
// step as a last guard.
type Wizard struct {
	mode       WizardMode
	projectID  string
	step       int
	form       WizardForm
	errors     map[string]string
	submitting bool
}

// NewWizard opens a create-mode session with empty defaults.
func NewWizard() *Wizard {
	return &Wizard{mode: ModeCreate, form: WizardForm{Status: api.ProjectOpen}, errors: map[string]string{}}
}

// NewEditWizard opens an edit session pre-populated from the project,
// formatting dates back to entry form and copying the client record
// field-by-field.
func NewEditWizard(p api.Project) *Wizard {
	form := WizardForm{
		Title:       p.Title,
		Description: p.Description,
		Department:  p.Department,
		Skills:      append([]string(nil), p.RequiredSkills...),
		Status:      p.Status,
		TeamLead:    p.TeamLead,
		Client:      p.Client,
	}
	if p.Status == "" {
		form.Status = api.ProjectOpen
	}
	if p.TeamSizeLimit > 0 {
		form.TeamSize = strconv.Itoa(p.TeamSizeLimit)
	}
	if !p.StartDate.IsZero() {
		form.StartDate = p.StartDate.String()
	}
	if !p.EndDate.IsZero() {
		form.EndDate = p.EndDate.String()
	}
	return &Wizard{mode: ModeEdit, projectID: p.ID, form: form, errors: map[string]string{}}
}

func (w *Wizard) Mode() WizardMode  { return w.mode }
func (w *Wizard) ProjectID() string { return w.projectID }
func (w *Wizard) Step() int         { return w.step }
func (w *Wizard) Form() *WizardForm { return &w.form }

// Errors returns the error map from the last failed Advance or Submit,
// keyed by field path (nested client fields use dotted paths).
func (w *Wizard) Errors() map[string]string { return w.errors }

// Validate checks a single step and returns its error map. Pure: no state
// is touched, and other steps are never considered.
func (f *WizardForm) Validate(step int) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepDetails:
		if strings.TrimSpace(f.Title) == "" {
			errs["title"] = "Title is required"
		}
		if strings.TrimSpace(f.Description) == "" {
			errs["description"] = "Description is required"
		}
		if strings.TrimSpace(f.Department) == "" {
			errs["department"] = "Department is required"
		}
		if len(f.Skills) == 0 {
			errs["requiredSkills"] = "At least one skill is required"
		}
	case StepTeam:
		size, sizeErr := strconv.Atoi(strings.TrimSpace(f.TeamSize))
		if strings.TrimSpace(f.TeamSize) == "" || sizeErr != nil || size <= 0 {
			errs["teamSizeLimit"] = "Team size is required"
		}
		if f.TeamLead == nil || f.TeamLead.ID == "" {
			errs["teamLead"] = "Team lead is required"
		}
		start, startErr := parseEntryDate(f.StartDate)
		if startErr != nil {
			errs["startDate"] = "Start date is required"
		}
		end, endErr := parseEntryDate(f.EndDate)
		if endErr != nil {
			errs["endDate"] = "End date is required"
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			errs["endDate"] = "End date must not be before start date"
		}
	case StepClient:
		if strings.TrimSpace(f.Client.Name) == "" {
			errs["client.name"] = "Client name is required"
		}
		email := strings.TrimSpace(f.Client.ContactEmail)
		if email == "" {
			errs["client.contactEmail"] = "Contact email is required"
		} else if !emailPattern.MatchString(email) {
			errs["client.contactEmail"] = "Contact email is invalid"
		}
		mobile := strings.TrimSpace(f.Client.Mobile)
		if mobile == "" {
			errs["client.mobile"] = "Mobile number is required"
		} else if !phonePattern.MatchString(mobile) {
			errs["client.mobile"] = "Mobile number is invalid"
		}
	}
	return errs
}

// Advance validates the current step. With a clean step it moves forward and
// reports whether the caller should now submit (clean final step); otherwise
// the step is unchanged and the error map is stored for display.
func (w *Wizard) Advance() (submit bool) {
	errs := w.form.Validate(w.step)
	if len(errs) > 0 {
		w.errors = errs
		return false
	}
	w.errors = map[string]string{}
	if w.step < stepCount-1 {
		w.step++
		return false
	}
	return true
}

// Retreat steps back without validating or discarding anything.
func (w *Wizard) Retreat() {
	if w.step > 0 {
		w.step--
	}
}

// Payload re-validates the final step and assembles the normalized request
// body: trimmed strings, parsed dates, coerced team size, client fields
// defaulted to empty strings.
func (w *Wizard) Payload() (api.ProjectPayload, map[string]string) {
	if errs := w.form.Validate(StepClient); len(errs) > 0 {
		w.errors = errs
		return api.ProjectPayload{}, errs
	}
	f := &w.form
	size, _ := strconv.Atoi(strings.TrimSpace(f.TeamSize))
	skills := make([]string, 0, len(f.Skills))
	for _, s := range f.Skills {
		if t := strings.TrimSpace(s); t != "" {
			skills = append(skills, t)
		}
	}
	status := strings.TrimSpace(f.Status)
	if status == "" {
		status = api.ProjectOpen
	}
	leadID := ""
	if f.TeamLead != nil {
		leadID = f.TeamLead.ID
	}
	payload := api.ProjectPayload{
		Title:          strings.TrimSpace(f.Title),
		Description:    strings.TrimSpace(f.Description),
		Department:     strings.TrimSpace(f.Department),
		RequiredSkills: skills,
		Status:         status,
		StartDate:      strings.TrimSpace(f.StartDate),
		EndDate:        strings.TrimSpace(f.EndDate),
		TeamSizeLimit:  size,
		TeamLeadID:     leadID,
		Client: api.ClientInfo{
			Name:           strings.TrimSpace(f.Client.Name),
			ContactEmail:   strings.TrimSpace(f.Client.ContactEmail),
			Mobile:         strings.TrimSpace(f.Client.Mobile),
			CEO:            strings.TrimSpace(f.Client.CEO),
			Industry:       strings.TrimSpace(f.Client.Industry),
			Location:       strings.TrimSpace(f.Client.Location),
			Website:        strings.TrimSpace(f.Client.Website),
			Address:        strings.TrimSpace(f.Client.Address),
			GSTNumber:      strings.TrimSpace(f.Client.GSTNumber),
			RegistrationID: strings.TrimSpace(f.Client.RegistrationID),
		},
	}
	return payload, nil
}

// Submitting guards the submit control while the create/update call is
// outstanding.
func (w *Wizard) Submitting() bool { return w.submitting }

func (w *Wizard) SetSubmitting(v bool) { w.submitting = v }

// ParseSkills splits comma-separated input into the ordered skill list,
// preserving order and duplicates as entered.
func ParseSkills(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseEntryDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}
