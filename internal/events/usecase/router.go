// Package usecase implements the security event router.
//
// The router is the single place where delivery failures are allowed to die:
// callers publish events and move on, and no transport error, timeout or sink
// outage is ever visible to them. Delivery is at-most-once with no retries.
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	eventsDomain "github.com/allisson/gatekeeper/internal/events/domain"
	"github.com/allisson/gatekeeper/internal/events/sink"
)

// maxInFlightDeliveries bounds the number of concurrent sink calls so a slow
// collector cannot accumulate unbounded goroutines.
const maxInFlightDeliveries = 64

// Publisher defines the non-failing event publication contract. Both methods
// return nothing: every delivery failure is absorbed, logged and discarded.
type Publisher interface {
	// Publish dispatches a single event to its sink, fire-and-forget.
	Publish(event *eventsDomain.Event)

	// PublishAll dispatches each event independently. One event's delivery
	// failure never prevents the delivery attempt of the others.
	PublishAll(events []*eventsDomain.Event)
}

// Router routes events to the audit or directory sink based on the event
// category and dispatches them on detached goroutines.
type Router struct {
	auditSink     sink.Sink
	directorySink sink.Sink
	timeout       time.Duration
	logger        *slog.Logger

	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewRouter creates an event router. The timeout bounds every individual sink
// call; on expiry the delivery counts as failed and is dropped.
func NewRouter(
	auditSink sink.Sink,
	directorySink sink.Sink,
	timeout time.Duration,
	logger *slog.Logger,
) *Router {
	return &Router{
		auditSink:     auditSink,
		directorySink: directorySink,
		timeout:       timeout,
		logger:        logger,
		sem:           semaphore.NewWeighted(maxInFlightDeliveries),
	}
}

// Publish dispatches the event on a detached goroutine. The caller is never
// blocked by and never observes the outcome of the delivery.
func (r *Router) Publish(event *eventsDomain.Event) {
	if event == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.deliver(event)
	}()
}

// PublishAll dispatches every event independently. There is no fail-fast
// behavior: a failed delivery only affects its own event.
func (r *Router) PublishAll(events []*eventsDomain.Event) {
	for _, event := range events {
		r.Publish(event)
	}
}

// Wait blocks until all in-flight deliveries have finished. Used during
// shutdown and in tests; the request path never calls it.
func (r *Router) Wait() {
	r.wg.Wait()
}

// deliver performs one bounded delivery attempt and swallows any failure.
func (r *Router) deliver(event *eventsDomain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.sem.Acquire(ctx, 1); err != nil {
		r.logEventDropped(event, err)
		return
	}
	defer r.sem.Release(1)

	target := r.auditSink
	if event.Type.Category() == eventsDomain.CategoryDirectory {
		target = r.directorySink
	}

	if err := target.Deliver(ctx, event.Type.SinkPath(), event); err != nil {
		r.logEventDropped(event, err)
	}
}

func (r *Router) logEventDropped(event *eventsDomain.Event, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn("event delivery failed, dropping event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("category", string(event.Type.Category())),
		slog.Any("error", err),
	)
}
