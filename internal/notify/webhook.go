package notify

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// AlertEvent is the webhook payload posted when a critical alert is raised.
type AlertEvent struct {
	AlertID   string    `json:"alertId"`
	StationID string    `json:"stationId"`
	Title     string    `json:"title"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
}

// WebhookNotifier posts alert events to an external HTTP endpoint.
// A nil notifier or an empty URL disables delivery.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookNotifier returns nil when url is empty so callers can leave the
// notifier unset.
func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	if url == "" {
		return nil
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

// NotifyAsync delivers the event in the background. Delivery failures are
// logged and never surfaced to the caller.
func (n *WebhookNotifier) NotifyAsync(event AlertEvent) {
	if n == nil {
		return
	}
	go func() {
		if err := n.send(event); err != nil {
			n.logger.Error("Alert webhook delivery failed",
				zap.Error(err),
				zap.String("alert_id", event.AlertID),
			)
		}
	}()
}

func (n *WebhookNotifier) send(event AlertEvent) error {
	resp, err := n.httpClient.R().
		SetBody(event).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to post alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode())
	}

	n.logger.Info("Alert webhook delivered",
		zap.String("alert_id", event.AlertID),
		zap.String("level", event.Level),
	)
	return nil
}
