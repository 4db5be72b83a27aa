package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client talks to the staffing API. Every request carries the session's
// bearer token and a fresh X-Request-ID for log correlation. Methods return
// either a decoded payload or a *Error; they never retry on their own.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// New builds a gateway client. A nil httpClient falls back to
// http.DefaultClient; callers apply timeouts through the request context.
func New(baseURL, token string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:      strings.TrimSpace(token),
		httpClient: httpClient,
		log:        log,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("create request: %v", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("method", method).Str("path", path).Str("request_id", requestID).Err(err).Msg("gateway transport failure")
		return &Error{Kind: KindTransport, Message: ""}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: ""}
	}

	c.log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Int("status", resp.StatusCode).Msg("gateway call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapError(resp.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func mapError(status int, payload []byte) *Error {
	message := ""
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else {
			message = parsed.Error
		}
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Kind: KindAuth, Message: message, Status: status}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: message, Status: status}
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return &Error{Kind: KindBusinessRule, Message: message, Status: status}
	case status == http.StatusBadRequest:
		return &Error{Kind: KindValidation, Message: message, Status: status}
	default:
		return &Error{Kind: KindTransport, Message: message, Status: status}
	}
}

// ListProjects fetches the full project catalog.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject fetches one project's detail record.
func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+id, nil, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

// CreateProject submits a new project.
func (c *Client) CreateProject(ctx context.Context, payload ProjectPayload) (Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPost, "/projects", payload, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

// UpdateProject replaces an existing project.
func (c *Client) UpdateProject(ctx context.Context, id string, payload ProjectPayload) (Project, error) {
	var out Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+id, payload, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

// DeleteProject removes a project. Irreversible; the server cascades to its
// applications.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil)
}

// ListApplications fetches every application visible to an admin.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.do(ctx, http.MethodGet, "/project-applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyApplications fetches the calling employee's own applications.
func (c *Client) ListMyApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.do(ctx, http.MethodGet, "/project-applications/my-applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetApplication fetches one application for the admin review dialog.
func (c *Client) GetApplication(ctx context.Context, id string) (Application, error) {
	var out Application
	if err := c.do(ctx, http.MethodGet, "/project-applications/"+id, nil, &out); err != nil {
		return Application{}, err
	}
	return out, nil
}

type applyRequest struct {
	ProjectID         string `json:"projectId"`
	ResumeOrPortfolio string `json:"resumeOrPortfolio"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// Apply creates a pending application for the calling employee.
func (c *Client) Apply(ctx context.Context, projectID, resumeURL string) (Application, error) {
	var out Application
	body := applyRequest{ProjectID: projectID, ResumeOrPortfolio: resumeURL}
	if err := c.do(ctx, http.MethodPost, "/project-applications/apply", body, &out); err != nil {
		return Application{}, err
	}
	return out, nil
}

// Approve marks an application approved with the given reason.
func (c *Client) Approve(ctx context.Context, id, reason string) error {
	return c.do(ctx, http.MethodPatch, "/project-applications/approve/"+id, reasonRequest{Reason: reason}, nil)
}

// Reject marks an application rejected with the given reason.
func (c *Client) Reject(ctx context.Context, id, reason string) error {
	return c.do(ctx, http.MethodPatch, "/project-applications/reject/"+id, reasonRequest{Reason: reason}, nil)
}

// Withdraw permanently deletes the calling employee's own application.
func (c *Client) Withdraw(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/project-applications/my-applications/"+id, nil, nil)
}

// ListEmployees fetches the employee directory for the team-lead picker.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
