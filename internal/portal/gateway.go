package portal

import (
	"context"

	"github.com/benchline/benchline/internal/api"
)

// Gateway is the slice of the staffing API the coordinators consume.
// *api.Client satisfies it; tests substitute fakes.
type Gateway interface {
	ListProjects(ctx context.Context) ([]api.Project, error)
	GetProject(ctx context.Context, id string) (api.Project, error)
	CreateProject(ctx context.Context, payload api.ProjectPayload) (api.Project, error)
	UpdateProject(ctx context.Context, id string, payload api.ProjectPayload) (api.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListApplications(ctx context.Context) ([]api.Application, error)
	ListMyApplications(ctx context.Context) ([]api.Application, error)
	GetApplication(ctx context.Context, id string) (api.Application, error)
	Apply(ctx context.Context, projectID, resumeURL string) (api.Application, error)
	Approve(ctx context.Context, id, reason string) error
	Reject(ctx context.Context, id, reason string) error
	Withdraw(ctx context.Context, id string) error
	ListEmployees(ctx context.Context) ([]api.Employee, error)
}
