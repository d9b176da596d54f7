package engine

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/logger"
)

// job is one entry of the persistence outbox: the document to write, the
// snapshot to restore if the write fails, and the revision it produced.
// A job with a barrier only signals that everything before it settled.
type job struct {
	doc      domain.Document
	prev     *domain.Document // nil for non-undoable changes
	revision uint64
	barrier  chan struct{}
}

func (e *Engine) enqueueLocked(j job) {
	if e.closed {
		if j.barrier != nil {
			close(j.barrier)
		}
		return
	}
	e.queue = append(e.queue, j)
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) dequeue() (job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return job{}, false
	}
	j := e.queue[0]
	e.queue[0] = job{}
	e.queue = e.queue[1:]
	return j, true
}

// run is the outbox worker. Jobs are handled strictly in enqueue order, so
// a later document can never be overwritten by an earlier one.
func (e *Engine) run() {
	defer close(e.stopped)
	for {
		if j, ok := e.dequeue(); ok {
			e.process(j)
			continue
		}
		select {
		case <-e.wake:
		case <-e.quit:
			if j, ok := e.dequeue(); ok {
				e.process(j)
				continue
			}
			return
		}
	}
}

func (e *Engine) process(j job) {
	if j.barrier != nil {
		close(j.barrier)
		return
	}

	e.mu.Lock()
	username := e.username
	e.mu.Unlock()
	if username == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	start := time.Now()
	err := e.store.PersistDocument(ctx, username, j.doc)
	cancel()

	if err == nil {
		e.log.Debug("document persisted",
			logger.String("user", username),
			logger.Uint64("revision", j.revision),
			logger.Duration("took", time.Since(start)))
		return
	}
	e.fail(j, err)
}

// fail reports a rejected write. An undoable change is rolled back only
// while it is still the latest one; a superseded change is left in place
// because the next write already carries it.
func (e *Engine) fail(j job, err error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		e.log.Debug("ignoring write failure of closed session", logger.Error(err))
		return
	}

	rolledBack := false
	if j.prev != nil && e.revision == j.revision {
		prev := *j.prev
		e.doc = &prev
		if len(e.history) > 0 {
			e.history = e.history[1:]
		}
		e.revision++
		rolledBack = true
	}
	e.mu.Unlock()

	e.log.Warn("failed to persist document",
		logger.Uint64("revision", j.revision),
		logger.Bool("rolled_back", rolledBack),
		logger.Error(err))
	if j.prev != nil && !rolledBack {
		e.log.Info("rollback skipped, change superseded by a later one",
			logger.Uint64("revision", j.revision))
	}
	e.notify(LevelError, msgSaveFailed)
}
