package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestClientSendsAuthAndCorrelationHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "  tok-123  ", srv.Client(), zerolog.Nop())
	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	require.Equal(t, "application/json", got.Get("Accept"))
	require.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestClientFreshRequestIDPerCall(t *testing.T) {
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())
	c.ListProjects(context.Background())
	c.ListProjects(context.Background())
	require.Len(t, ids, 2)
	require.NotEqual(t, ids[0], ids[1])
}

func TestClientErrorKindMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindBusinessRule},
		{http.StatusUnprocessableEntity, KindBusinessRule},
		{http.StatusInternalServerError, KindTransport},
		{http.StatusBadGateway, KindTransport},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(`{"message":"server says no"}`))
		}))
		c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())

		_, err := c.GetProject(context.Background(), "p1")
		require.Error(t, err, "status %d", tt.status)
		require.True(t, IsKind(err, tt.kind), "status %d should map to %s, got %v", tt.status, tt.kind, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, tt.status, apiErr.Status)
		require.Equal(t, "server says no", apiErr.Message)
		srv.Close()
	}
}

func TestClientErrorFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"already applied"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())
	_, err := c.Apply(context.Background(), "p1", "https://cv.example/me.pdf")
	require.Equal(t, "already applied", Surface(err))
}

func TestClientUnparseableErrorBodyFallsBackGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())
	_, err := c.ListProjects(context.Background())
	require.True(t, IsKind(err, KindTransport))
	require.Equal(t, "something went wrong, please try again", Surface(err))
}

func TestClientConnectionFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, "tok", nil, zerolog.Nop())
	_, err := c.ListProjects(context.Background())
	require.True(t, IsKind(err, KindTransport))
}

func TestClientApplyBody(t *testing.T) {
	var method, path string
	var body applyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(Application{ID: "a1", Status: StatusPending})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())
	app, err := c.Apply(context.Background(), "p1", "https://cv.example/me.pdf")
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "/project-applications/apply", path)
	require.Equal(t, "p1", body.ProjectID)
	require.Equal(t, "https://cv.example/me.pdf", body.ResumeOrPortfolio)
	require.Equal(t, StatusPending, app.Status)
}

func TestClientDecisionRoutes(t *testing.T) {
	var method, path string
	var body reasonRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())

	require.NoError(t, c.Approve(context.Background(), "a1", "strong fit"))
	require.Equal(t, http.MethodPatch, method)
	require.Equal(t, "/project-applications/approve/a1", path)
	require.Equal(t, "strong fit", body.Reason)

	require.NoError(t, c.Reject(context.Background(), "a2", "team full"))
	require.Equal(t, "/project-applications/reject/a2", path)
}

func TestClientWithdrawRoute(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())
	require.NoError(t, c.Withdraw(context.Background(), "a1"))
	require.Equal(t, http.MethodDelete, method)
	require.Equal(t, "/project-applications/my-applications/a1", path)
}

func TestClientUpdateProjectRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/projects/p1", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload ProjectPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(Project{ID: "p1", Title: payload.Title})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", srv.Client(), zerolog.Nop())
	p, err := c.UpdateProject(context.Background(), "p1", ProjectPayload{Title: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, "Renamed", p.Title)
}
