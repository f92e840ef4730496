// Package analytics sends product events to PostHog.
package analytics

import (
	"fmt"
	"log/slog"

	"github.com/posthog/posthog-go"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/gateways"
)

// PosthogClient wraps posthog.Client. Without an API key it drops every event.
type PosthogClient struct {
	client posthog.Client
	logger *slog.Logger
}

var _ gateways.Analytics = (*PosthogClient)(nil)

// NewPosthogClient creates the client. An empty apiKey yields a disabled client.
func NewPosthogClient(apiKey, endpoint string, logger *slog.Logger) (*PosthogClient, error) {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, analytics events are dropped")
		return &PosthogClient{logger: logger}, nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, fmt.Errorf("failed to create posthog client: %w", err)
	}
	logger.Info("PostHog analytics enabled", slog.String("endpoint", endpoint))
	return &PosthogClient{client: client, logger: logger}, nil
}

// Enabled reports whether events are sent.
func (p *PosthogClient) Enabled() bool {
	return p != nil && p.client != nil
}

// Capture enqueues event for distinctID. Sending happens in the background.
func (p *PosthogClient) Capture(distinctID, event string, properties map[string]any) {
	if !p.Enabled() {
		return
	}
	err := p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		p.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes queued events.
func (p *PosthogClient) Close() {
	if !p.Enabled() {
		return
	}
	if err := p.client.Close(); err != nil {
		p.logger.Warn("Failed to close posthog client", slog.String("error", err.Error()))
	}
}
