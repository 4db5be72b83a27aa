package portal

import (
	"context"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/session"
)

// Roster holds the applications for the currently selected project together
// with the derived per-user flags. Admins see the whole project roster;
// everyone else sees only their own applications.
type Roster struct {
	sess    session.Context
	apps    []api.Application
	loading bool

	hasApplied bool
	currentApp *api.Application
}

func NewRoster(sess session.Context) *Roster {
	return &Roster{sess: sess}
}

// Fetch retrieves the applications visible to the session's actor, filtered
// to projectID. Safe to run off the event loop; the result is installed
// through Set on the loop.
func (r *Roster) Fetch(ctx context.Context, gw Gateway, projectID string) ([]api.Application, error) {
	var (
		apps []api.Application
		err  error
	)
	if r.sess.IsAdmin {
		apps, err = gw.ListApplications(ctx)
	} else {
		apps, err = gw.ListMyApplications(ctx)
	}
	if err != nil {
		return nil, err
	}
	var scoped []api.Application
	for _, a := range apps {
		if a.Project.ID == projectID {
			scoped = append(scoped, a)
		}
	}
	return scoped, nil
}

// Set replaces the roster and recomputes derived state. For non-admin actors
// the current-user application is the first non-dropped entry; the data
// model guarantees there is at most one.
func (r *Roster) Set(apps []api.Application) {
	r.apps = apps
	r.loading = false
	r.derive()
}

// Clear resets the roster and derived flags. Called synchronously on every
// selection change, and on fetch failure: an unknown roster reads as "no
// application" rather than stale state.
func (r *Roster) Clear() {
	r.apps = nil
	r.loading = false
	r.hasApplied = false
	r.currentApp = nil
}

func (r *Roster) derive() {
	r.hasApplied = false
	r.currentApp = nil
	if r.sess.IsAdmin {
		return
	}
	for i := range r.apps {
		if !r.apps[i].DroppedByAdmin {
			r.currentApp = &r.apps[i]
			r.hasApplied = true
			return
		}
	}
}

func (r *Roster) Applications() []api.Application {
	return r.apps
}

// HasApplied reports whether the session's employee holds a live (non-
// dropped) application for the selected project.
func (r *Roster) HasApplied() bool {
	return r.hasApplied
}

// CurrentUserApplication returns that application, or nil.
func (r *Roster) CurrentUserApplication() *api.Application {
	return r.currentApp
}

func (r *Roster) SetLoading(loading bool) {
	r.loading = loading
}

func (r *Roster) Loading() bool {
	return r.loading
}

// ApplicationByID returns the roster entry with the given id, or nil.
func (r *Roster) ApplicationByID(id string) *api.Application {
	for i := range r.apps {
		if r.apps[i].ID == id {
			return &r.apps[i]
		}
	}
	return nil
}
