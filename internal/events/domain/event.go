// Package domain defines the security event model and its routing rules.
//
// Events form a closed set of variants. Each event is classified into a sink
// category exactly once, at creation time, so routing never depends on
// open-ended type inspection.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a security event variant.
type EventType string

const (
	EventTypeAuthenticationSuccess EventType = "authentication.success"
	EventTypeAuthenticationFailure EventType = "authentication.failure"
	EventTypeAuthorizationGranted  EventType = "authorization.granted"
	EventTypeAuthorizationDenied   EventType = "authorization.denied"
	EventTypeTokenGenerated        EventType = "token.generated"
	EventTypeTokenRefreshed        EventType = "token.refreshed"
	EventTypeUserCreated           EventType = "user.created"
	EventTypeUserUpdated           EventType = "user.updated"
	EventTypeUserDeactivated       EventType = "user.deactivated"
)

// Category selects the downstream sink an event is delivered to.
type Category string

const (
	// CategoryAudit routes to the audit event collector.
	CategoryAudit Category = "audit"

	// CategoryDirectory routes to the user directory collector.
	CategoryDirectory Category = "directory"
)

// Category returns the sink category for the event type. Authentication,
// authorization and token events go to the audit sink; user lifecycle events
// go to the directory sink. Unknown types default to the audit sink.
func (t EventType) Category() Category {
	switch t {
	case EventTypeUserCreated, EventTypeUserUpdated, EventTypeUserDeactivated:
		return CategoryDirectory
	default:
		return CategoryAudit
	}
}

// SinkPath returns the collector sub-path for the event type. Audit events use
// category-specific sub-paths; directory events share a single endpoint.
func (t EventType) SinkPath() string {
	switch t {
	case EventTypeAuthenticationSuccess, EventTypeAuthenticationFailure:
		return "/events/authentication"
	case EventTypeAuthorizationGranted, EventTypeAuthorizationDenied:
		return "/events/authorization"
	case EventTypeTokenGenerated, EventTypeTokenRefreshed:
		return "/events/token"
	case EventTypeUserCreated, EventTypeUserUpdated, EventTypeUserDeactivated:
		return "/events"
	default:
		return "/events"
	}
}

// Event is an immutable record of a security-relevant action. Events are
// created when an orchestrator completes an operation and delivered best-effort
// exactly once per dispatch attempt (at-most-once overall, no retries).
type Event struct {
	ID         uuid.UUID `json:"event_id"`
	Type       EventType `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// AuthenticationPayload describes the outcome of an authentication attempt.
type AuthenticationPayload struct {
	Username string `json:"username"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
}

// AuthorizationPayload describes an authorization decision.
type AuthorizationPayload struct {
	Username    string   `json:"username"`
	Resource    string   `json:"resource"`
	Action      string   `json:"action"`
	Granted     bool     `json:"granted"`
	Permissions []string `json:"permissions,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// TokenPayload describes a token lifecycle action.
type TokenPayload struct {
	Username string `json:"username"`
	Action   string `json:"action"`
}

// UserLifecyclePayload describes a change to a user record.
type UserLifecyclePayload struct {
	Username string `json:"username"`
	Change   string `json:"change"`
}

// newEvent assembles the common envelope.
func newEvent(eventType EventType, payload any) *Event {
	return &Event{
		ID:         uuid.Must(uuid.NewV7()),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// NewAuthenticationEvent creates an authentication success or failure event.
func NewAuthenticationEvent(username string, success bool, message string) *Event {
	eventType := EventTypeAuthenticationSuccess
	if !success {
		eventType = EventTypeAuthenticationFailure
	}
	return newEvent(eventType, AuthenticationPayload{
		Username: username,
		Success:  success,
		Message:  message,
	})
}

// NewAuthorizationEvent creates an authorization granted or denied event.
func NewAuthorizationEvent(
	username, resource, action string,
	granted bool,
	permissions []string,
	reason string,
) *Event {
	eventType := EventTypeAuthorizationGranted
	if !granted {
		eventType = EventTypeAuthorizationDenied
	}
	return newEvent(eventType, AuthorizationPayload{
		Username:    username,
		Resource:    resource,
		Action:      action,
		Granted:     granted,
		Permissions: permissions,
		Reason:      reason,
	})
}

// NewTokenGeneratedEvent creates a token generation event.
func NewTokenGeneratedEvent(username string) *Event {
	return newEvent(EventTypeTokenGenerated, TokenPayload{Username: username, Action: "generated"})
}

// NewTokenRefreshedEvent creates a token refresh event.
func NewTokenRefreshedEvent(username string) *Event {
	return newEvent(EventTypeTokenRefreshed, TokenPayload{Username: username, Action: "refreshed"})
}

// NewUserLifecycleEvent creates a user lifecycle event for the given change.
// The change must be one of "created", "updated" or "deactivated".
func NewUserLifecycleEvent(username, change string) *Event {
	var eventType EventType
	switch change {
	case "created":
		eventType = EventTypeUserCreated
	case "updated":
		eventType = EventTypeUserUpdated
	case "deactivated":
		eventType = EventTypeUserDeactivated
	default:
		eventType = EventTypeUserUpdated
	}
	return newEvent(eventType, UserLifecyclePayload{Username: username, Change: change})
}
