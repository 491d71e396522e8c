package jobs

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"startup-platform.backend/pkg/logger"
)

// MatchRefresher recomputes and caches the match lists for one startup.
type MatchRefresher interface {
	RefreshMatches(ctx context.Context, startupID uuid.UUID)
}

// MatchWorker drains a bounded queue of startup IDs and refreshes their
// matches in the background. Enqueue never blocks a request; when the queue
// is full the task is dropped and the caller is told so.
type MatchWorker struct {
	refresher MatchRefresher
	queue     chan uuid.UUID
	stop      chan struct{}
	done      chan struct{}
}

// NewMatchWorker creates a match worker with the given queue capacity.
func NewMatchWorker(refresher MatchRefresher, queueSize int) *MatchWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &MatchWorker{
		refresher: refresher,
		queue:     make(chan uuid.UUID, queueSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Enqueue hands a startup to the worker. Returns false when the queue is
// saturated and the task was dropped.
func (w *MatchWorker) Enqueue(startupID uuid.UUID) bool {
	select {
	case w.queue <- startupID:
		return true
	default:
		return false
	}
}

// Start runs the worker loop until Stop is called or the context ends.
func (w *MatchWorker) Start(ctx context.Context) {
	logger.Info(ctx, "match worker started", zap.Int("queue_capacity", cap(w.queue)))
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "match worker stopped, context cancelled")
			return
		case <-w.stop:
			logger.Info(ctx, "match worker stopped")
			return
		case startupID := <-w.queue:
			w.refresher.RefreshMatches(ctx, startupID)
		}
	}
}

// Stop signals the worker loop to exit and waits for it to drain the task in
// flight.
func (w *MatchWorker) Stop() {
	close(w.stop)
	<-w.done
}
