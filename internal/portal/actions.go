package portal

import (
	"context"
	"strings"

	"github.com/benchline/benchline/internal/api"
)

// Action identifies one of the four mutating application operations. Each
// carries its own in-flight guard so repeated triggering of the same control
// cannot double-submit, while unrelated actions stay independent.
type Action string

const (
	ActionApply    Action = "apply"
	ActionWithdraw Action = "withdraw"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
)

// Actions executes the application-lifecycle transitions. Local guards run
// before any network call; a locally rejected action produces a validation
// error and leaves state untouched. Nothing here mutates local state on
// success either; callers refetch the roster so the mirror stays faithful.
type Actions struct {
	inFlight map[Action]bool
}

func NewActions() *Actions {
	return &Actions{inFlight: map[Action]bool{}}
}

// TryBegin claims the guard for an action. It returns false while a previous
// call for the same action is outstanding; the caller must skip dispatch.
func (a *Actions) TryBegin(action Action) bool {
	if a.inFlight[action] {
		return false
	}
	a.inFlight[action] = true
	return true
}

// End releases an action's guard once its call has settled.
func (a *Actions) End(action Action) {
	delete(a.inFlight, action)
}

// InFlight reports whether an action's call is outstanding.
func (a *Actions) InFlight(action Action) bool {
	return a.inFlight[action]
}

func validationErr(msg string) error {
	return &api.Error{Kind: api.KindValidation, Message: msg}
}

// Apply submits a new application. Refused locally when the employee already
// holds a live application for the project or the resume URL is blank.
func (a *Actions) Apply(ctx context.Context, gw Gateway, existing *api.Application, projectID, resumeURL string) (api.Application, error) {
	if existing != nil && !existing.DroppedByAdmin {
		return api.Application{}, validationErr("you have already applied to this project")
	}
	if strings.TrimSpace(resumeURL) == "" {
		return api.Application{}, validationErr("a resume or portfolio link is required")
	}
	return gw.Apply(ctx, projectID, strings.TrimSpace(resumeURL))
}

// Withdraw permanently removes the employee's own application. Only pending
// applications may be withdrawn; anything else is refused before the call.
func (a *Actions) Withdraw(ctx context.Context, gw Gateway, app api.Application) error {
	if app.Status != api.StatusPending {
		return validationErr("only pending applications can be withdrawn")
	}
	return gw.Withdraw(ctx, app.ID)
}

// Decide approves or rejects an application with a mandatory reason.
// Re-issuing the status an application already holds, or flipping between
// the two terminal statuses, is refused locally: terminal states are final.
func (a *Actions) Decide(ctx context.Context, gw Gateway, app api.Application, action Action, reason string) error {
	if action != ActionApprove && action != ActionReject {
		return validationErr("unknown decision")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return validationErr("a reason is required")
	}
	if app.Status == api.StatusApproved || app.Status == api.StatusRejected {
		return validationErr("this application has already been decided")
	}
	if action == ActionApprove {
		return gw.Approve(ctx, app.ID, reason)
	}
	return gw.Reject(ctx, app.ID, reason)
}
