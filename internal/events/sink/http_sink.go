// Package sink implements outbound delivery of security events to downstream
// collectors over HTTP.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	eventsDomain "github.com/allisson/gatekeeper/internal/events/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Sink delivers a serialized event to a downstream collector.
type Sink interface {
	// Deliver posts the event to the collector endpoint identified by path.
	// The context bounds the whole call; callers decide what to do on error.
	Deliver(ctx context.Context, path string, event *eventsDomain.Event) error
}

// HTTPSink posts events as JSON to a collector base URL.
type HTTPSink struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSink creates a sink for the given collector base URL. The HTTP client
// carries no timeout of its own; delivery deadlines come from the caller's context.
func NewHTTPSink(baseURL string) *HTTPSink {
	return &HTTPSink{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Deliver posts the event. Non-2xx responses and transport failures are both
// reported as ErrUpstreamUnavailable; no response body is expected or parsed.
func (s *HTTPSink) Deliver(ctx context.Context, path string, event *eventsDomain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return apperrors.Wrap(err, "failed to serialize event")
	}

	url := s.baseURL + path
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, "failed to build sink request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := s.client.Do(request)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUpstreamUnavailable, "sink call to %s failed: %v", url, err)
	}
	defer func() {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return apperrors.Wrap(
			apperrors.ErrUpstreamUnavailable,
			fmt.Sprintf("sink call to %s returned status %d", url, response.StatusCode),
		)
	}

	return nil
}
