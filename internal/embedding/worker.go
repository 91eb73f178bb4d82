package embedding

import (
	"context"
	"log/slog"
	"time"

	"github.com/wardro8e/api/internal/domain"
)

type vectorSource interface {
	Generate(ctx context.Context, imageURL string) ([]float64, error)
}

type productUpdater interface {
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
}

type job struct {
	productID string
	imageURL  string
}

// Worker consumes embedding jobs from a bounded queue and writes the result
// back to the product row. Each job is retried with exponential backoff;
// the terminal outcome is always recorded on the row (embedding_status),
// so a failed generation is observable rather than silent.
type Worker struct {
	source   vectorSource
	products productUpdater
	queue    chan job

	maxAttempts int
	baseBackoff time.Duration
}

func NewWorker(source vectorSource, products productUpdater, queueSize int) *Worker {
	if queueSize < 1 {
		queueSize = 64
	}
	return &Worker{
		source:      source,
		products:    products,
		queue:       make(chan job, queueSize),
		maxAttempts: 3,
		baseBackoff: time.Second,
	}
}

// Enqueue schedules embedding generation for a product image. Returns false
// when the queue is full; the product then stays in the pending state and a
// later re-submission is required.
func (w *Worker) Enqueue(productID, imageURL string) bool {
	select {
	case w.queue <- job{productID: productID, imageURL: imageURL}:
		return true
	default:
		slog.Warn("embedding queue full, dropping job", "product_id", productID)
		return false
	}
}

// Run processes jobs until ctx is cancelled. Call in a goroutine.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-w.queue:
			w.process(ctx, j)
		}
	}
}

func (w *Worker) process(ctx context.Context, j job) {
	var vec []float64
	var err error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		vec, err = w.source.Generate(ctx, j.imageURL)
		if err == nil {
			break
		}
		slog.Warn("embedding generation failed",
			"product_id", j.productID, "attempt", attempt, "err", err)
		if attempt == w.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.baseBackoff << (attempt - 1)):
		}
	}

	updates := map[string]interface{}{}
	if err != nil {
		updates["embedding_status"] = domain.EmbeddingFailed
	} else {
		updates["embedding"] = vec
		updates["embedding_status"] = domain.EmbeddingCompleted
	}
	// The terminal write must survive shutdown: recording the outcome with
	// the run context would strand the row in pending when ctx is already
	// cancelled, so detach from it and bound the write on its own timeout.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if uerr := w.products.Update(writeCtx, j.productID, updates); uerr != nil {
		slog.Warn("failed to record embedding result", "product_id", j.productID, "err", uerr)
	}
}
