// Package notify publica señales de stock bajo hacia un webhook externo.
// El envío es best-effort: un fallo del webhook nunca revierte ni falla la
// operación de inventario que lo disparó.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/pkg/config"
	"github.com/gudangmaju/motorparts-api/pkg/logger"
)

var _ inventory.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier implementación de inventory.Notifier respaldada por resty.
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	log        *logger.Logger
}

// webhookPayload cuerpo JSON que recibe el webhook.
type webhookPayload struct {
	Event  string              `json:"event"`
	SentAt time.Time           `json:"sent_at"`
	Alerts []dto.LowStockAlert `json:"alerts"`
}

// NewWebhookNotifier construye el notificador. Si la URL está vacía el
// webhook queda deshabilitado y NotifyLowStock es un no-op.
func NewWebhookNotifier(cfg config.NotifyConfig, log *logger.Logger) *WebhookNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &WebhookNotifier{
		httpClient: client,
		url:        cfg.WebhookURL,
		log:        log,
	}
}

// NotifyLowStock envía las alertas al webhook. Los errores se registran y se
// descartan.
func (n *WebhookNotifier) NotifyLowStock(ctx context.Context, alerts []dto.LowStockAlert) {
	if n.url == "" || len(alerts) == 0 {
		return
	}

	payload := webhookPayload{
		Event:  "low_stock",
		SentAt: time.Now().UTC(),
		Alerts: alerts,
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(n.url)
	if err != nil {
		n.log.Warn().Err(err).Int("alerts", len(alerts)).Msg("low stock webhook failed")
		return
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		n.log.Warn().
			Int("status", resp.StatusCode()).
			Int("alerts", len(alerts)).
			Msg(fmt.Sprintf("low stock webhook rejected: %s", resp.Status()))
	}
}
