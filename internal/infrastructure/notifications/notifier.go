package notifications

import (
	"context"

	"go.uber.org/zap"

	"firmdesk.backend/pkg/logger"
)

// Event is one notification emitted by the onboarding workflow. Delivery is
// best-effort: a failed send is logged and never fails the triggering request.
type Event struct {
	Type      string            `json:"type"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	ClientID  uint              `json:"clientId,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// Notifier delivers workflow events
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// LogNotifier writes events to the application log. It backs every
// deployment; queue-based delivery is layered on top when configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the event
func (n *LogNotifier) Notify(ctx context.Context, event Event) {
	logger.WithContext(ctx).Info("notification",
		zap.String("type", event.Type),
		zap.String("recipient", event.Recipient),
		zap.String("subject", event.Subject),
		zap.Uint("client_id", event.ClientID),
	)
}
