package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taskmaster/dashboard/internal/application/store"
	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
)

// DefaultPollInterval is used when no interval is configured
const DefaultPollInterval = 3 * time.Second

// TaskPoller keeps an open task detail view fresh by re-reading the
// viewer's task list on a fixed interval.
type TaskPoller struct {
	dashboard *DashboardService
	interval  time.Duration
	logger    *logger.Logger
	group     singleflight.Group
}

func NewTaskPoller(dashboard *DashboardService, interval time.Duration, logger *logger.Logger) *TaskPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &TaskPoller{
		dashboard: dashboard,
		interval:  interval,
		logger:    logger.WithComponent("task_poller"),
	}
}

// Watch is one open task detail view
type Watch struct {
	TaskID entities.ID

	updates chan *entities.Task
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Updates delivers the freshest copy of the task. Only the latest copy is
// kept when the reader falls behind. The channel is closed once the watch
// stops.
func (w *Watch) Updates() <-chan *entities.Task {
	return w.updates
}

// Done is closed when the polling loop has exited.
func (w *Watch) Done() <-chan struct{} {
	return w.done
}

// Close stops polling and waits for the loop to exit, including a fetch
// already in flight. No gateway call for this watch happens after Close
// returns.
func (w *Watch) Close() {
	w.once.Do(w.cancel)
	<-w.done
}

// Watch starts polling for taskID. The first fetch happens immediately.
// Cancelling ctx has the same effect as Close.
func (p *TaskPoller) Watch(ctx context.Context, viewer entities.Viewer, taskID entities.ID) (*Watch, error) {
	if taskID == "" {
		p.logger.Warn("Watch requested without task id")
		return nil, entities.ErrMissingID
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watch{
		TaskID:  taskID,
		updates: make(chan *entities.Task, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go p.run(ctx, viewer, w)
	return w, nil
}

func (p *TaskPoller) run(ctx context.Context, viewer entities.Viewer, w *Watch) {
	defer close(w.done)
	defer close(w.updates)

	log := p.logger.WithFields("task_id", w.TaskID.String(), "user_id", viewer.ID.String())
	log.Debug("Task watch started")

	p.poll(ctx, viewer, w, log)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Task watch stopped")
			return
		case <-ticker.C:
			p.poll(ctx, viewer, w, log)
		}
	}
}

func (p *TaskPoller) poll(ctx context.Context, viewer entities.Viewer, w *Watch, log *logger.Logger) {
	task, err := p.fetch(ctx, viewer, w.TaskID)
	if ctx.Err() != nil {
		// the view closed while the fetch was in flight
		return
	}
	if err != nil {
		log.WithError(err).Warn("Task refresh failed")
		return
	}
	if task == nil {
		log.Debug("Watched task not in list")
		return
	}

	select {
	case <-w.updates:
	default:
	}
	w.updates <- task
}

// fetch shares one gateway call between the watches of one viewer. The key
// carries the viewer id because the call goes out with that viewer's token.
func (p *TaskPoller) fetch(ctx context.Context, viewer entities.Viewer, taskID entities.ID) (*entities.Task, error) {
	key := store.TaskScope(viewer) + "/" + viewer.ID.String()
	ch := p.group.DoChan(key, func() (interface{}, error) {
		return p.dashboard.FetchTasks(context.WithoutCancel(ctx), viewer)
	})

	select {
	case <-ctx.Done():
		// the shared call may serve other watchers; wait it out and drop the result
		<-ch
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("refresh task %s: %w", taskID, res.Err)
		}
		tasks, _ := res.Val.([]entities.Task)
		return findTask(tasks, taskID), nil
	}
}
