package portal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchline/benchline/internal/api"
)

func TestActionsGuardPerAction(t *testing.T) {
	a := NewActions()

	require.True(t, a.TryBegin(ActionApply))
	require.False(t, a.TryBegin(ActionApply))
	require.True(t, a.InFlight(ActionApply))

	// unrelated actions stay independent
	require.True(t, a.TryBegin(ActionWithdraw))

	a.End(ActionApply)
	require.False(t, a.InFlight(ActionApply))
	require.True(t, a.TryBegin(ActionApply))
}

func TestApplyRefusesDuplicate(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()
	existing := &api.Application{ID: "a1", Status: api.StatusPending}

	_, err := a.Apply(context.Background(), gw, existing, "p1", "https://cv.example/me.pdf")
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindValidation))
	require.Zero(t, gw.applyCalls)
}

func TestApplyAllowedAfterAdminDrop(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()
	dropped := &api.Application{ID: "a1", Status: api.StatusPending, DroppedByAdmin: true}

	app, err := a.Apply(context.Background(), gw, dropped, "p1", "  https://cv.example/me.pdf  ")
	require.NoError(t, err)
	require.Equal(t, 1, gw.applyCalls)
	require.Equal(t, "https://cv.example/me.pdf", app.ResumeOrPortfolio)
}

func TestApplyRequiresResumeLink(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()

	_, err := a.Apply(context.Background(), gw, nil, "p1", "   ")
	require.True(t, api.IsKind(err, api.KindValidation))
	require.Zero(t, gw.applyCalls)
}

func TestApplySurfacesBusinessRuleError(t *testing.T) {
	gw := &fakeGateway{applyErr: &api.Error{Kind: api.KindBusinessRule, Message: "project is closed"}}
	a := NewActions()

	_, err := a.Apply(context.Background(), gw, nil, "p1", "https://cv.example/me.pdf")
	require.True(t, api.IsKind(err, api.KindBusinessRule))
	require.Equal(t, "project is closed", api.Surface(err))
	require.Equal(t, 1, gw.applyCalls)
}

func TestWithdrawOnlyPending(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()

	err := a.Withdraw(context.Background(), gw, api.Application{ID: "a1", Status: api.StatusApproved})
	require.True(t, api.IsKind(err, api.KindValidation))
	require.Zero(t, gw.withdrawCalls)

	err = a.Withdraw(context.Background(), gw, api.Application{ID: "a1", Status: api.StatusPending})
	require.NoError(t, err)
	require.Equal(t, 1, gw.withdrawCalls)
}

func TestDecideRequiresReason(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()
	app := api.Application{ID: "a1", Status: api.StatusPending}

	err := a.Decide(context.Background(), gw, app, ActionApprove, "   ")
	require.True(t, api.IsKind(err, api.KindValidation))
	require.Zero(t, gw.approveCalls)
}

func TestDecideTerminalStatesAreFinal(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()

	tests := []struct {
		name   string
		status string
		action Action
	}{
		{"re-approve approved", api.StatusApproved, ActionApprove},
		{"reject approved", api.StatusApproved, ActionReject},
		{"approve rejected", api.StatusRejected, ActionApprove},
		{"re-reject rejected", api.StatusRejected, ActionReject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Decide(context.Background(), gw, api.Application{ID: "a1", Status: tt.status}, tt.action, "because")
			require.True(t, api.IsKind(err, api.KindValidation))
		})
	}
	require.Zero(t, gw.approveCalls)
	require.Zero(t, gw.rejectCalls)
}

func TestDecideDispatchesPending(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()
	app := api.Application{ID: "a1", Status: api.StatusPending}

	require.NoError(t, a.Decide(context.Background(), gw, app, ActionApprove, "strong fit"))
	require.Equal(t, 1, gw.approveCalls)

	require.NoError(t, a.Decide(context.Background(), gw, app, ActionReject, "team is full"))
	require.Equal(t, 1, gw.rejectCalls)
}

func TestDecideUnknownAction(t *testing.T) {
	gw := &fakeGateway{}
	a := NewActions()

	err := a.Decide(context.Background(), gw, api.Application{Status: api.StatusPending}, ActionApply, "r")
	require.True(t, api.IsKind(err, api.KindValidation))
}
