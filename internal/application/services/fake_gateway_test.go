package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/taskmaster/dashboard/internal/adapters/cache"
	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

var errGatewayDown = errors.New("gateway unavailable")

// fakeGateway serves fixed collections and records calls
type fakeGateway struct {
	mu        sync.Mutex
	tasks     []entities.Task
	projects  []entities.Project
	employees []entities.User
	works     []entities.IndependentWork

	listCalls   atomic.Int32
	mutateCalls atomic.Int32

	listErr    error
	commentErr error
	// onList runs at the start of every task list call
	onList func(ctx context.Context)
	// onComment runs while a comment submit is in flight
	onComment func()
	comments  []entities.Comment
}

func (f *fakeGateway) ListTasks(ctx context.Context) ([]entities.Task, error) {
	f.listCalls.Add(1)
	if f.onList != nil {
		f.onList(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entities.Task(nil), f.tasks...), nil
}

func (f *fakeGateway) ListUserTasks(ctx context.Context, userID entities.ID, _ entities.UserRole) ([]entities.Task, error) {
	all, err := f.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	var out []entities.Task
	for _, t := range all {
		if t.IsAssignedTo(userID) || t.CreatedBy.Matches(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeGateway) CreateTask(_ context.Context, task *entities.Task) (*entities.Task, error) {
	f.mutateCalls.Add(1)
	created := *task
	created.ID = "t-new"
	f.mu.Lock()
	f.tasks = append(f.tasks, created)
	f.mu.Unlock()
	return &created, nil
}

func (f *fakeGateway) UpdateTask(_ context.Context, id entities.ID, task *entities.Task) (*entities.Task, error) {
	f.mutateCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = *task
			updated := *task
			return &updated, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeGateway) DeleteTask(_ context.Context, id entities.ID) error {
	f.mutateCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

func (f *fakeGateway) UpdateExtensionStatus(_ context.Context, id entities.ID, req ports.ExtensionResponse) (*entities.Task, error) {
	f.mutateCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].ExtensionRequest != nil {
			f.tasks[i].ExtensionRequest.Status = req.Status
			f.tasks[i].ExtensionRequest.ResponseComment = req.ResponseComment
			updated := f.tasks[i]
			return &updated, nil
		}
	}
	return nil, entities.ErrTaskNotFound
}

func (f *fakeGateway) submitComment(input ports.CommentInput) ([]entities.Comment, error) {
	f.mutateCalls.Add(1)
	if f.onComment != nil {
		f.onComment()
	}
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, entities.Comment{
		ID:         "c1",
		AuthorID:   input.UserID,
		AuthorName: input.UserName,
		AuthorRole: input.UserRole,
		Content:    input.Content,
		Timestamp:  "2024-01-01T00:00:00Z",
		IsVisible:  input.IsVisible,
	})
	return append([]entities.Comment(nil), f.comments...), nil
}

func (f *fakeGateway) AddTaskComment(_ context.Context, id entities.ID, input ports.CommentInput) (*entities.Task, error) {
	comments, err := f.submitComment(input)
	if err != nil {
		return nil, err
	}
	return &entities.Task{ID: id, Comments: comments}, nil
}

func (f *fakeGateway) ListProjects(context.Context) ([]entities.Project, error) {
	f.listCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entities.Project(nil), f.projects...), nil
}

func (f *fakeGateway) GetProject(_ context.Context, id entities.ID) (*entities.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, entities.ErrProjectNotFound
}

func (f *fakeGateway) CreateProject(_ context.Context, project *entities.Project) (*entities.Project, error) {
	f.mutateCalls.Add(1)
	created := *project
	created.ID = "p-new"
	f.mu.Lock()
	f.projects = append(f.projects, created)
	f.mu.Unlock()
	return &created, nil
}

func (f *fakeGateway) UpdateProject(_ context.Context, id entities.ID, project *entities.Project) (*entities.Project, error) {
	f.mutateCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i] = *project
			updated := *project
			return &updated, nil
		}
	}
	return nil, entities.ErrProjectNotFound
}

func (f *fakeGateway) DeleteProject(_ context.Context, id entities.ID) error {
	f.mutateCalls.Add(1)
	return nil
}

func (f *fakeGateway) AddProjectComment(_ context.Context, id entities.ID, input ports.CommentInput) (*entities.Project, error) {
	comments, err := f.submitComment(input)
	if err != nil {
		return nil, err
	}
	return &entities.Project{ID: id, Comments: comments}, nil
}

func (f *fakeGateway) ListEmployees(context.Context) ([]entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entities.User(nil), f.employees...), nil
}

func (f *fakeGateway) CreateWork(_ context.Context, work *entities.IndependentWork) (*entities.IndependentWork, error) {
	f.mutateCalls.Add(1)
	created := *work
	created.ID = "w-new"
	f.mu.Lock()
	f.works = append(f.works, created)
	f.mu.Unlock()
	return &created, nil
}

func (f *fakeGateway) ListEmployeeWork(_ context.Context, employeeID entities.ID) ([]entities.IndependentWork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.IndependentWork
	for _, w := range f.works {
		if w.EmployeeID == employeeID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetWork(_ context.Context, id entities.ID) (*entities.IndependentWork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.works {
		if w.ID == id {
			found := w
			return &found, nil
		}
	}
	return nil, entities.ErrWorkNotFound
}

func (f *fakeGateway) UpdateWork(_ context.Context, id entities.ID, work *entities.IndependentWork) (*entities.IndependentWork, error) {
	f.mutateCalls.Add(1)
	updated := *work
	return &updated, nil
}

func (f *fakeGateway) DeleteWork(context.Context, entities.ID) error {
	f.mutateCalls.Add(1)
	return nil
}

func (f *fakeGateway) AddWorkComment(_ context.Context, id entities.ID, input ports.CommentInput) (*entities.IndependentWork, error) {
	comments, err := f.submitComment(input)
	if err != nil {
		return nil, err
	}
	return &entities.IndependentWork{ID: id, Comments: comments}, nil
}

var _ ports.Gateway = (*fakeGateway)(nil)

type testEnv struct {
	gateway    *fakeGateway
	store      *store.Store
	dashboard  *DashboardService
	reconciler *Reconciler
	tasks      *TaskService
	projects   *ProjectService
	works      *WorkService
}

func newTestEnv(gw *fakeGateway) *testEnv {
	log := logger.NewNop()
	st := store.New(cache.NewMemoryCache(), 0, log)
	ds := NewDashboardService(gw, st, log)
	rec := NewReconciler(gw, st, log)
	v := NewValidator()
	return &testEnv{
		gateway:    gw,
		store:      st,
		dashboard:  ds,
		reconciler: rec,
		tasks:      NewTaskService(gw, ds, rec, st, v, log),
		projects:   NewProjectService(gw, ds, rec, st, v, log),
		works:      NewWorkService(gw, rec, st, v, log),
	}
}

var (
	director    = entities.Viewer{ID: "d1", Name: "Dana", Role: entities.UserRoleDirector}
	projectHead = entities.Viewer{ID: "h1", Name: "Hugo", Role: entities.UserRoleProjectHead}
	employee    = entities.Viewer{ID: "e1", Name: "Eve", Role: entities.UserRoleEmployee}
)
