package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taskmaster/dashboard/internal/domain/entities"
	"github.com/taskmaster/dashboard/internal/infrastructure/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPoller_DeliversImmediatelyAndRefreshes(t *testing.T) {
	gw := &fakeGateway{tasks: []entities.Task{{ID: "t1", Title: "first", AssigneeIDs: []entities.ID{"e1"}}}}
	env := newTestEnv(gw)
	poller := NewTaskPoller(env.dashboard, 20*time.Millisecond, logger.NewNop())

	w, err := poller.Watch(context.Background(), employee, "t1")
	require.NoError(t, err)
	defer w.Close()

	select {
	case task := <-w.Updates():
		assert.Equal(t, "first", task.Title)
	case <-time.After(time.Second):
		t.Fatal("no immediate update")
	}

	gw.mu.Lock()
	gw.tasks[0].Title = "second"
	gw.mu.Unlock()

	require.Eventually(t, func() bool {
		select {
		case task := <-w.Updates():
			return task.Title == "second"
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestPoller_NoFetchAfterClose(t *testing.T) {
	gw := &fakeGateway{tasks: []entities.Task{{ID: "t1"}}}
	env := newTestEnv(gw)
	poller := NewTaskPoller(env.dashboard, 10*time.Millisecond, logger.NewNop())

	w, err := poller.Watch(context.Background(), director, "t1")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return gw.listCalls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	w.Close()

	plateau := gw.listCalls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, plateau, gw.listCalls.Load())

	_, open := <-w.Updates()
	for open {
		_, open = <-w.Updates()
	}
}

func TestPoller_ContextCancelStopsWatch(t *testing.T) {
	env := newTestEnv(&fakeGateway{})
	poller := NewTaskPoller(env.dashboard, 10*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	w, err := poller.Watch(ctx, director, "t1")
	require.NoError(t, err)

	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}
	w.Close()
}

func TestPoller_MissingID(t *testing.T) {
	env := newTestEnv(&fakeGateway{})
	poller := NewTaskPoller(env.dashboard, 0, logger.NewNop())

	_, err := poller.Watch(context.Background(), director, "")
	assert.ErrorIs(t, err, entities.ErrMissingID)
	assert.Zero(t, env.gateway.listCalls.Load())
}

func TestPoller_FetchErrorKeepsPolling(t *testing.T) {
	gw := &fakeGateway{listErr: errGatewayDown}
	env := newTestEnv(gw)
	poller := NewTaskPoller(env.dashboard, 10*time.Millisecond, logger.NewNop())

	w, err := poller.Watch(context.Background(), director, "t1")
	require.NoError(t, err)
	defer w.Close()

	require.Eventually(t, func() bool { return gw.listCalls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

type callerKey struct{}

func TestPoller_ViewersDoNotShareFetches(t *testing.T) {
	gate := make(chan struct{})
	var (
		mu      sync.Mutex
		callers = map[string]bool{}
	)
	gw := &fakeGateway{tasks: []entities.Task{{ID: "t1"}}}
	gw.onList = func(ctx context.Context) {
		who, _ := ctx.Value(callerKey{}).(string)
		mu.Lock()
		callers[who] = true
		mu.Unlock()
		<-gate
	}
	env := newTestEnv(gw)
	poller := NewTaskPoller(env.dashboard, time.Hour, logger.NewNop())

	first, err := poller.Watch(context.WithValue(context.Background(), callerKey{}, "director"), director, "t1")
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, func() bool { return gw.listCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second, err := poller.Watch(context.WithValue(context.Background(), callerKey{}, "head"), projectHead, "t1")
	require.NoError(t, err)
	defer second.Close()
	defer close(gate)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return callers["director"] && callers["head"]
	}, time.Second, 5*time.Millisecond)
}
