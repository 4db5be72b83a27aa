package portal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchline/benchline/internal/api"
	"github.com/benchline/benchline/internal/session"
)

func TestRosterFetchScopesToProject(t *testing.T) {
	gw := &fakeGateway{
		myApps: []api.Application{
			{ID: "a1", Project: api.Project{ID: "p1"}},
			{ID: "a2", Project: api.Project{ID: "p2"}},
			{ID: "a3", Project: api.Project{ID: "p1"}, DroppedByAdmin: true},
		},
	}
	r := NewRoster(session.Context{EmployeeID: "e1"})

	apps, err := r.Fetch(context.Background(), gw, "p1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	require.Equal(t, 1, gw.myListCalls)
	require.Zero(t, gw.listCalls)
}

func TestRosterFetchUsesAdminEndpoint(t *testing.T) {
	gw := &fakeGateway{
		apps: []api.Application{
			{ID: "a1", Project: api.Project{ID: "p1"}, Employee: api.Employee{ID: "e2"}},
		},
	}
	r := NewRoster(session.Context{EmployeeID: "admin", IsAdmin: true})

	apps, err := r.Fetch(context.Background(), gw, "p1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.Equal(t, 1, gw.listCalls)
	require.Zero(t, gw.myListCalls)
}

func TestRosterDerivesCurrentApplication(t *testing.T) {
	r := NewRoster(session.Context{EmployeeID: "e1"})
	r.Set([]api.Application{
		{ID: "old", Status: api.StatusRejected, DroppedByAdmin: true},
		{ID: "live", Status: api.StatusPending},
	})

	require.True(t, r.HasApplied())
	require.NotNil(t, r.CurrentUserApplication())
	require.Equal(t, "live", r.CurrentUserApplication().ID)
}

func TestRosterDroppedOnlyMeansNotApplied(t *testing.T) {
	r := NewRoster(session.Context{EmployeeID: "e1"})
	r.Set([]api.Application{
		{ID: "old", Status: api.StatusPending, DroppedByAdmin: true},
	})

	require.False(t, r.HasApplied())
	require.Nil(t, r.CurrentUserApplication())
}

func TestRosterAdminNeverDerivesOwnApplication(t *testing.T) {
	r := NewRoster(session.Context{EmployeeID: "admin", IsAdmin: true})
	r.Set([]api.Application{
		{ID: "a1", Status: api.StatusPending},
	})

	require.False(t, r.HasApplied())
	require.Nil(t, r.CurrentUserApplication())
	require.Len(t, r.Applications(), 1)
}

func TestRosterClearFailsClosed(t *testing.T) {
	r := NewRoster(session.Context{EmployeeID: "e1"})
	r.Set([]api.Application{{ID: "a1", Status: api.StatusPending}})
	require.True(t, r.HasApplied())

	r.SetLoading(true)
	r.Clear()
	require.False(t, r.HasApplied())
	require.Nil(t, r.CurrentUserApplication())
	require.Empty(t, r.Applications())
	require.False(t, r.Loading())
}

func TestRosterApplicationByID(t *testing.T) {
	r := NewRoster(session.Context{IsAdmin: true})
	r.Set([]api.Application{{ID: "a1"}, {ID: "a2"}})

	require.NotNil(t, r.ApplicationByID("a2"))
	require.Nil(t, r.ApplicationByID("missing"))
}
