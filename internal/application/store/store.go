// Package store is the client-side normalized entity cache. Entity bodies
// live under one key per id and every list is an ordered index of ids, so
// a mutation only has to touch the entity and drop the indexes.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

const (
	taskPrefix    = "task:"
	projectPrefix = "project:"
	workPrefix    = "work:"

	taskIndexPrefix = "index:tasks:"
	projectIndexKey = "index:projects"
	workIndexPrefix = "index:work:"
	employeesKey    = "employees"
)

// Store gives typed access to the cache
type Store struct {
	cache  ports.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// New creates a store over cache. ttl bounds how long a list stays cached
// without a mutation; zero keeps entries until invalidated.
func New(cache ports.Cache, ttl time.Duration, appLogger *logger.Logger) *Store {
	if appLogger == nil {
		appLogger = logger.NewNop()
	}
	return &Store{cache: cache, ttl: ttl, logger: appLogger.WithComponent("store")}
}

// IsMiss reports whether err means the value has to be fetched again.
func IsMiss(err error) bool {
	return errors.Is(err, ports.ErrCacheMiss)
}

func putList[T any](ctx context.Context, s *Store, indexKey, prefix string, items []T, idOf func(*T) entities.ID) error {
	ids := make([]entities.ID, 0, len(items))
	for i := range items {
		id := idOf(&items[i])
		if id == "" {
			s.logger.Warnw("Skipping entity without id", "index", indexKey)
			continue
		}
		if err := s.cache.Set(ctx, prefix+id.String(), items[i], s.ttl); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	return s.cache.Set(ctx, indexKey, ids, s.ttl)
}

func getList[T any](ctx context.Context, s *Store, indexKey, prefix string) ([]T, error) {
	var ids []entities.ID
	if err := s.cache.Get(ctx, indexKey, &ids); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		var item T
		if err := s.cache.Get(ctx, prefix+id.String(), &item); err != nil {
			// a dropped body invalidates the whole list
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func getOne[T any](ctx context.Context, s *Store, key string) (*T, error) {
	var item T
	if err := s.cache.Get(ctx, key, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Tasks

// TaskScope names the cached task list a viewer reads from.
func TaskScope(viewer entities.Viewer) string {
	if viewer.IsEmployee() {
		return "user:" + viewer.ID.String()
	}
	return "all"
}

func (s *Store) PutTasks(ctx context.Context, scope string, tasks []entities.Task) error {
	if err := putList(ctx, s, taskIndexPrefix+scope, taskPrefix, tasks, func(t *entities.Task) entities.ID { return t.ID }); err != nil {
		return fmt.Errorf("cache tasks: %w", err)
	}
	return nil
}

func (s *Store) Tasks(ctx context.Context, scope string) ([]entities.Task, error) {
	return getList[entities.Task](ctx, s, taskIndexPrefix+scope, taskPrefix)
}

func (s *Store) Task(ctx context.Context, id entities.ID) (*entities.Task, error) {
	return getOne[entities.Task](ctx, s, taskPrefix+id.String())
}

// PutTask replaces one task body. Lists that hold its id see the change.
func (s *Store) PutTask(ctx context.Context, task *entities.Task) error {
	if task.ID == "" {
		return entities.ErrMissingID
	}
	return s.cache.Set(ctx, taskPrefix+task.ID.String(), task, s.ttl)
}

// InvalidateTasks drops every cached task list so the next read reloads.
func (s *Store) InvalidateTasks(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, taskIndexPrefix+"*")
}

func (s *Store) DeleteTask(ctx context.Context, id entities.ID) error {
	if err := s.cache.Delete(ctx, taskPrefix+id.String()); err != nil {
		return err
	}
	return s.InvalidateTasks(ctx)
}

// Projects

func (s *Store) PutProjects(ctx context.Context, projects []entities.Project) error {
	if err := putList(ctx, s, projectIndexKey, projectPrefix, projects, func(p *entities.Project) entities.ID { return p.ID }); err != nil {
		return fmt.Errorf("cache projects: %w", err)
	}
	return nil
}

func (s *Store) Projects(ctx context.Context) ([]entities.Project, error) {
	return getList[entities.Project](ctx, s, projectIndexKey, projectPrefix)
}

func (s *Store) Project(ctx context.Context, id entities.ID) (*entities.Project, error) {
	return getOne[entities.Project](ctx, s, projectPrefix+id.String())
}

func (s *Store) PutProject(ctx context.Context, project *entities.Project) error {
	if project.ID == "" {
		return entities.ErrMissingID
	}
	return s.cache.Set(ctx, projectPrefix+project.ID.String(), project, s.ttl)
}

func (s *Store) InvalidateProjects(ctx context.Context) error {
	return s.cache.Delete(ctx, projectIndexKey)
}

func (s *Store) DeleteProject(ctx context.Context, id entities.ID) error {
	if err := s.cache.Delete(ctx, projectPrefix+id.String()); err != nil {
		return err
	}
	return s.InvalidateProjects(ctx)
}

// Independent work, indexed per employee

func (s *Store) PutEmployeeWork(ctx context.Context, employeeID entities.ID, works []entities.IndependentWork) error {
	if err := putList(ctx, s, workIndexPrefix+employeeID.String(), workPrefix, works, func(w *entities.IndependentWork) entities.ID { return w.ID }); err != nil {
		return fmt.Errorf("cache independent work: %w", err)
	}
	return nil
}

func (s *Store) EmployeeWork(ctx context.Context, employeeID entities.ID) ([]entities.IndependentWork, error) {
	return getList[entities.IndependentWork](ctx, s, workIndexPrefix+employeeID.String(), workPrefix)
}

func (s *Store) Work(ctx context.Context, id entities.ID) (*entities.IndependentWork, error) {
	return getOne[entities.IndependentWork](ctx, s, workPrefix+id.String())
}

func (s *Store) PutWork(ctx context.Context, work *entities.IndependentWork) error {
	if work.ID == "" {
		return entities.ErrMissingID
	}
	return s.cache.Set(ctx, workPrefix+work.ID.String(), work, s.ttl)
}

func (s *Store) InvalidateWork(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, workIndexPrefix+"*")
}

func (s *Store) DeleteWork(ctx context.Context, id entities.ID) error {
	if err := s.cache.Delete(ctx, workPrefix+id.String()); err != nil {
		return err
	}
	return s.InvalidateWork(ctx)
}

// Employees

func (s *Store) PutEmployees(ctx context.Context, users []entities.User) error {
	return s.cache.Set(ctx, employeesKey, users, s.ttl)
}

func (s *Store) Employees(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := s.cache.Get(ctx, employeesKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Ping checks the backing cache
func (s *Store) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
