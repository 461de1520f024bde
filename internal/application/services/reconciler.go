package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
	"github.com/taskmaster/dashboard/internal/ports"
)

// LocalIDPrefix marks comment ids generated before the gateway answered.
const LocalIDPrefix = "local-"

// Draft is the text of a comment input field. Submitting clears it; a
// failed submit puts the text back.
type Draft struct {
	mu   sync.Mutex
	text string
}

func NewDraft(text string) *Draft {
	return &Draft{text: text}
}

func (d *Draft) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *Draft) Set(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}

func (d *Draft) take() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	text := d.text
	d.text = ""
	return text
}

// ReconcileState is where one comment submission stands
type ReconcileState string

const (
	StateIdle       ReconcileState = "idle"
	StatePending    ReconcileState = "pending"
	StateReconciled ReconcileState = "reconciled"
	StateRolledBack ReconcileState = "rolled_back"
)

// Reconciler applies comments to the cached entity before the gateway
// confirms them, then either adopts the gateway's comment list or restores
// the cached entity to what it was before.
type Reconciler struct {
	gateway ports.Gateway
	store   *store.Store
	logger  *logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	inFlight map[string]ReconcileState
}

func NewReconciler(gateway ports.Gateway, st *store.Store, logger *logger.Logger) *Reconciler {
	return &Reconciler{
		gateway:  gateway,
		store:    st,
		logger:   logger.WithComponent("reconciler"),
		now:      time.Now,
		inFlight: make(map[string]ReconcileState),
	}
}

// State reports the submission state of an entity's comment flow.
func (r *Reconciler) State(kind string, id entities.ID) ReconcileState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.inFlight[kind+":"+id.String()]; ok {
		return state
	}
	return StateIdle
}

func (r *Reconciler) acquire(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[key]; busy {
		return false
	}
	r.inFlight[key] = StatePending
	return true
}

func (r *Reconciler) release(key string) {
	r.mu.Lock()
	delete(r.inFlight, key)
	r.mu.Unlock()
}

type commentTarget[T any] struct {
	kind     string
	load     func(ctx context.Context) (*T, error)
	save     func(ctx context.Context, entity *T) error
	comments func(entity *T) *[]entities.Comment
	submit   func(ctx context.Context, input ports.CommentInput) (*T, error)
}

func submitComment[T any](ctx context.Context, r *Reconciler, viewer entities.Viewer, id entities.ID, draft *Draft, target commentTarget[T]) (*T, error) {
	log := r.logger.WithFields("entity", target.kind, "entity_id", id.String(), "user_id", viewer.ID.String())

	if id == "" {
		log.Warn("Comment submit without entity id, aborting")
		return nil, entities.ErrMissingID
	}
	if strings.TrimSpace(draft.Text()) == "" {
		return nil, entities.ErrEmptyComment
	}

	key := target.kind + ":" + id.String()
	if !r.acquire(key) {
		return nil, entities.ErrCommentInFlight
	}
	defer r.release(key)

	snapshot, err := target.load(ctx)
	if err != nil {
		if !store.IsMiss(err) {
			log.WithError(err).Warn("Cached entity unavailable, submitting without optimistic apply")
		}
		snapshot = nil
	}

	text := draft.take()
	optimistic := entities.Comment{
		ID:         entities.ID(LocalIDPrefix + ulid.Make().String()),
		AuthorID:   viewer.ID,
		AuthorName: viewer.Name,
		AuthorRole: viewer.Role,
		Content:    strings.TrimSpace(text),
		Timestamp:  r.now().UTC().Format(time.RFC3339),
		IsVisible:  true,
	}

	var working T
	if snapshot != nil {
		working = *snapshot
		list := target.comments(&working)
		*list = append(append(make([]entities.Comment, 0, len(*list)+1), *list...), optimistic)
		if err := target.save(ctx, &working); err != nil {
			log.WithError(err).Warn("Failed to apply optimistic comment")
		}
	}

	updated, err := target.submit(ctx, ports.CommentInput{
		UserID:    viewer.ID,
		UserName:  viewer.Name,
		UserRole:  viewer.Role,
		Content:   optimistic.Content,
		IsVisible: true,
	})
	if err != nil {
		r.setState(key, StateRolledBack)
		if snapshot != nil {
			// use a detached context so a cancelled request still restores the cache
			if saveErr := target.save(context.WithoutCancel(ctx), snapshot); saveErr != nil {
				log.WithError(saveErr).Error("Failed to roll back optimistic comment")
			}
		}
		draft.Set(text)
		log.WithError(err).Warn("Comment rejected, rolled back")
		return nil, fmt.Errorf("add %s comment: %w", target.kind, err)
	}

	r.setState(key, StateReconciled)
	serverComments := append([]entities.Comment{}, *target.comments(updated)...)
	result := updated
	if snapshot != nil {
		*target.comments(&working) = serverComments
		result = &working
	}
	if err := target.save(ctx, result); err != nil {
		log.WithError(err).Warn("Failed to store reconciled comments")
	}

	log.Debugw("Comment reconciled", "comments", len(serverComments))
	return result, nil
}

func (r *Reconciler) setState(key string, state ReconcileState) {
	r.mu.Lock()
	if _, ok := r.inFlight[key]; ok {
		r.inFlight[key] = state
	}
	r.mu.Unlock()
}

// AddTaskComment submits the draft as a comment on a task.
func (r *Reconciler) AddTaskComment(ctx context.Context, viewer entities.Viewer, id entities.ID, draft *Draft) (*entities.Task, error) {
	return submitComment(ctx, r, viewer, id, draft, commentTarget[entities.Task]{
		kind: "task",
		load: func(ctx context.Context) (*entities.Task, error) { return r.store.Task(ctx, id) },
		save: r.store.PutTask,
		comments: func(t *entities.Task) *[]entities.Comment {
			return &t.Comments
		},
		submit: func(ctx context.Context, input ports.CommentInput) (*entities.Task, error) {
			return r.gateway.AddTaskComment(ctx, id, input)
		},
	})
}

// AddProjectComment submits the draft as a comment on a project.
func (r *Reconciler) AddProjectComment(ctx context.Context, viewer entities.Viewer, id entities.ID, draft *Draft) (*entities.Project, error) {
	return submitComment(ctx, r, viewer, id, draft, commentTarget[entities.Project]{
		kind: "project",
		load: func(ctx context.Context) (*entities.Project, error) { return r.store.Project(ctx, id) },
		save: r.store.PutProject,
		comments: func(p *entities.Project) *[]entities.Comment {
			return &p.Comments
		},
		submit: func(ctx context.Context, input ports.CommentInput) (*entities.Project, error) {
			return r.gateway.AddProjectComment(ctx, id, input)
		},
	})
}

// AddWorkComment submits the draft as a comment on an independent work entry.
func (r *Reconciler) AddWorkComment(ctx context.Context, viewer entities.Viewer, id entities.ID, draft *Draft) (*entities.IndependentWork, error) {
	return submitComment(ctx, r, viewer, id, draft, commentTarget[entities.IndependentWork]{
		kind: "work",
		load: func(ctx context.Context) (*entities.IndependentWork, error) { return r.store.Work(ctx, id) },
		save: r.store.PutWork,
		comments: func(w *entities.IndependentWork) *[]entities.Comment {
			return &w.Comments
		},
		submit: func(ctx context.Context, input ports.CommentInput) (*entities.IndependentWork, error) {
			return r.gateway.AddWorkComment(ctx, id, input)
		},
	})
}
