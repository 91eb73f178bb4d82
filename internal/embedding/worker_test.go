package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardro8e/api/internal/domain"
)

type fakeSource struct {
	mu       sync.Mutex
	failures int // fail this many calls before succeeding
	calls    int
	vec      []float64
}

func (f *fakeSource) Generate(_ context.Context, _ string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("service unavailable")
	}
	return f.vec, nil
}

type fakeUpdater struct {
	mu      sync.Mutex
	updates map[string]map[string]interface{}
	ctxErr  error // ctx.Err() observed on the last Update call
	done    chan struct{}
}

func newFakeUpdater() *fakeUpdater {
	return &fakeUpdater{updates: make(map[string]map[string]interface{}), done: make(chan struct{}, 8)}
}

func (f *fakeUpdater) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	f.mu.Lock()
	f.updates[productID] = updates
	f.ctxErr = ctx.Err()
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeUpdater) get(productID string) map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates[productID]
}

func waitForUpdate(t *testing.T, u *fakeUpdater) {
	t.Helper()
	select {
	case <-u.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for product update")
	}
}

func newTestWorker(source *fakeSource, updater *fakeUpdater) *Worker {
	w := NewWorker(source, updater, 8)
	w.baseBackoff = time.Millisecond
	return w
}

func TestWorker_WritesEmbeddingOnSuccess(t *testing.T) {
	source := &fakeSource{vec: []float64{0.1, 0.2, 0.3}}
	updater := newFakeUpdater()
	w := newTestWorker(source, updater)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.True(t, w.Enqueue("p1", "https://cdn.example.com/a.jpg"))
	waitForUpdate(t, updater)

	got := updater.get("p1")
	assert.Equal(t, domain.EmbeddingCompleted, got["embedding_status"])
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, got["embedding"])
}

func TestWorker_RetriesThenSucceeds(t *testing.T) {
	source := &fakeSource{failures: 2, vec: []float64{1}}
	updater := newFakeUpdater()
	w := newTestWorker(source, updater)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Enqueue("p1", "https://cdn.example.com/a.jpg")
	waitForUpdate(t, updater)

	assert.Equal(t, domain.EmbeddingCompleted, updater.get("p1")["embedding_status"])
	assert.Equal(t, 3, source.calls)
}

func TestWorker_MarksFailedAfterAllAttempts(t *testing.T) {
	source := &fakeSource{failures: 99}
	updater := newFakeUpdater()
	w := newTestWorker(source, updater)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	w.Enqueue("p1", "https://cdn.example.com/a.jpg")
	waitForUpdate(t, updater)

	got := updater.get("p1")
	assert.Equal(t, domain.EmbeddingFailed, got["embedding_status"])
	assert.NotContains(t, got, "embedding")
	assert.Equal(t, 3, source.calls)
}

// shutdownSource cancels the run context before returning, simulating a
// SIGTERM arriving while the job is in flight.
type shutdownSource struct {
	cancel context.CancelFunc
	vec    []float64
}

func (s *shutdownSource) Generate(_ context.Context, _ string) ([]float64, error) {
	s.cancel()
	return s.vec, nil
}

func TestWorker_RecordsOutcomeWhenRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updater := newFakeUpdater()
	w := NewWorker(&shutdownSource{cancel: cancel, vec: []float64{1}}, updater, 8)
	go w.Run(ctx)

	require.True(t, w.Enqueue("p1", "https://cdn.example.com/a.jpg"))
	waitForUpdate(t, updater)

	got := updater.get("p1")
	assert.Equal(t, domain.EmbeddingCompleted, got["embedding_status"])

	// The write ran on a context detached from the cancelled run context,
	// otherwise the row would have been stranded in pending.
	updater.mu.Lock()
	assert.NoError(t, updater.ctxErr)
	updater.mu.Unlock()
}

func TestWorker_EnqueueFailsWhenQueueFull(t *testing.T) {
	// Worker not running, so the queue only drains on Run.
	w := NewWorker(&fakeSource{}, newFakeUpdater(), 1)
	assert.True(t, w.Enqueue("p1", "u"))
	assert.False(t, w.Enqueue("p2", "u"))
}
