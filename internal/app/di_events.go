package app

import (
	"github.com/allisson/gatekeeper/internal/events/sink"
	eventsUsecase "github.com/allisson/gatekeeper/internal/events/usecase"
)

// EventRouter returns the fire-and-forget security event router. Audit events
// go to the audit collector, user lifecycle events to the directory service;
// both sinks absorb their own failures.
func (c *Container) EventRouter() (*eventsUsecase.Router, error) {
	c.eventRouterInit.Do(func() {
		auditSink := sink.NewHTTPSink(c.config.AuditSinkURL)
		directorySink := sink.NewHTTPSink(c.config.DirectorySinkURL)

		c.eventRouter = eventsUsecase.NewRouter(
			auditSink,
			directorySink,
			c.config.SinkTimeout,
			c.Logger(),
		)
	})
	return c.eventRouter, nil
}
