package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventType_Category(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  Category
	}{
		{EventTypeAuthenticationSuccess, CategoryAudit},
		{EventTypeAuthenticationFailure, CategoryAudit},
		{EventTypeAuthorizationGranted, CategoryAudit},
		{EventTypeAuthorizationDenied, CategoryAudit},
		{EventTypeTokenGenerated, CategoryAudit},
		{EventTypeTokenRefreshed, CategoryAudit},
		{EventTypeUserCreated, CategoryDirectory},
		{EventTypeUserUpdated, CategoryDirectory},
		{EventTypeUserDeactivated, CategoryDirectory},
		// Unknown types fall back to the audit sink
		{EventType("mystery.event"), CategoryAudit},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.Category())
		})
	}
}

func TestEventType_SinkPath(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeAuthenticationSuccess, "/events/authentication"},
		{EventTypeAuthorizationDenied, "/events/authorization"},
		{EventTypeTokenGenerated, "/events/token"},
		{EventTypeUserCreated, "/events"},
		{EventType("mystery.event"), "/events"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.SinkPath())
		})
	}
}

func TestNewAuthenticationEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		event := NewAuthenticationEvent("admin", true, "")
		assert.Equal(t, EventTypeAuthenticationSuccess, event.Type)
		assert.NotEqual(t, "", event.ID.String())
		assert.False(t, event.OccurredAt.IsZero())

		payload, ok := event.Payload.(AuthenticationPayload)
		assert.True(t, ok)
		assert.Equal(t, "admin", payload.Username)
		assert.True(t, payload.Success)
	})

	t.Run("failure", func(t *testing.T) {
		event := NewAuthenticationEvent("unknown", false, "assertion rejected")
		assert.Equal(t, EventTypeAuthenticationFailure, event.Type)

		payload, ok := event.Payload.(AuthenticationPayload)
		assert.True(t, ok)
		assert.False(t, payload.Success)
		assert.Equal(t, "assertion rejected", payload.Message)
	})
}

func TestNewAuthorizationEvent(t *testing.T) {
	t.Run("granted carries permissions", func(t *testing.T) {
		event := NewAuthorizationEvent("admin", "portfolio", "delete", true, []string{"portfolio:delete"}, "")
		assert.Equal(t, EventTypeAuthorizationGranted, event.Type)

		payload := event.Payload.(AuthorizationPayload)
		assert.True(t, payload.Granted)
		assert.Contains(t, payload.Permissions, "portfolio:delete")
		assert.Empty(t, payload.Reason)
	})

	t.Run("denied carries reason", func(t *testing.T) {
		event := NewAuthorizationEvent("guest", "portfolio", "delete", false, nil, "no permission for portfolio:delete")
		assert.Equal(t, EventTypeAuthorizationDenied, event.Type)

		payload := event.Payload.(AuthorizationPayload)
		assert.False(t, payload.Granted)
		assert.Empty(t, payload.Permissions)
		assert.Equal(t, "no permission for portfolio:delete", payload.Reason)
	})
}

func TestNewUserLifecycleEvent(t *testing.T) {
	tests := []struct {
		change   string
		expected EventType
	}{
		{"created", EventTypeUserCreated},
		{"updated", EventTypeUserUpdated},
		{"deactivated", EventTypeUserDeactivated},
		{"unexpected", EventTypeUserUpdated},
	}

	for _, tt := range tests {
		t.Run(tt.change, func(t *testing.T) {
			event := NewUserLifecycleEvent("jane", tt.change)
			assert.Equal(t, tt.expected, event.Type)
		})
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		event := NewTokenGeneratedEvent("admin")
		id := event.ID.String()
		assert.False(t, seen[id], "duplicate event id %s", id)
		seen[id] = true
	}
}
