package portal

import (
	"context"

	"github.com/benchline/benchline/internal/api"
)

// fakeGateway counts calls and serves canned data; individual tests override
// the fields they care about.
type fakeGateway struct {
	projects  []api.Project
	detail    api.Project
	apps      []api.Application
	myApps    []api.Application
	employees []api.Employee

	applyErr    error
	approveErr  error
	rejectErr   error
	withdrawErr error

	applyCalls    int
	approveCalls  int
	rejectCalls   int
	withdrawCalls int
	listCalls     int
	myListCalls   int
}

func (f *fakeGateway) ListProjects(context.Context) ([]api.Project, error) {
	return f.projects, nil
}

func (f *fakeGateway) GetProject(context.Context, string) (api.Project, error) {
	return f.detail, nil
}

func (f *fakeGateway) CreateProject(_ context.Context, p api.ProjectPayload) (api.Project, error) {
	return api.Project{ID: "created", Title: p.Title}, nil
}

func (f *fakeGateway) UpdateProject(_ context.Context, id string, p api.ProjectPayload) (api.Project, error) {
	return api.Project{ID: id, Title: p.Title}, nil
}

func (f *fakeGateway) DeleteProject(context.Context, string) error { return nil }

func (f *fakeGateway) ListApplications(context.Context) ([]api.Application, error) {
	f.listCalls++
	return f.apps, nil
}

func (f *fakeGateway) ListMyApplications(context.Context) ([]api.Application, error) {
	f.myListCalls++
	return f.myApps, nil
}

func (f *fakeGateway) GetApplication(context.Context, string) (api.Application, error) {
	return api.Application{}, nil
}

func (f *fakeGateway) Apply(_ context.Context, projectID, resumeURL string) (api.Application, error) {
	f.applyCalls++
	if f.applyErr != nil {
		return api.Application{}, f.applyErr
	}
	return api.Application{
		ID:                "new-app",
		Project:           api.Project{ID: projectID},
		ResumeOrPortfolio: resumeURL,
		Status:            api.StatusPending,
	}, nil
}

func (f *fakeGateway) Approve(context.Context, string, string) error {
	f.approveCalls++
	return f.approveErr
}

func (f *fakeGateway) Reject(context.Context, string, string) error {
	f.rejectCalls++
	return f.rejectErr
}

func (f *fakeGateway) Withdraw(context.Context, string) error {
	f.withdrawCalls++
	return f.withdrawErr
}

func (f *fakeGateway) ListEmployees(context.Context) ([]api.Employee, error) {
	return f.employees, nil
}
