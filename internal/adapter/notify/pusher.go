package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"todoapp/internal/config"
	"todoapp/internal/core/ports"
)

// WebhookPusher forwards push notifications to an external delivery
// service as a JSON POST. Gateway-specific fan-out (APNs, FCM) lives
// behind the webhook, not here.
type WebhookPusher struct {
	url    string
	client *http.Client
}

var _ ports.Pusher = (*WebhookPusher)(nil)

func NewWebhookPusher(cfg *config.Config) *WebhookPusher {
	return &WebhookPusher{
		url:    cfg.PushWebhookURL,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *WebhookPusher) SendPush(ctx context.Context, ownerID string, payload ports.PushPayload) bool {
	if p.url == "" {
		zap.L().Debug("push webhook not configured, dropping push", zap.String("owner_id", ownerID))
		return false
	}

	body, err := json.Marshal(struct {
		OwnerID string `json:"owner_id"`
		ports.PushPayload
	}{OwnerID: ownerID, PushPayload: payload})
	if err != nil {
		zap.L().Warn("failed to encode push payload", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		zap.L().Warn("failed to build push request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		zap.L().Warn("failed to deliver push", zap.String("owner_id", ownerID), zap.Error(err))
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
