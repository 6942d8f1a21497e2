// Package sender 通知发送实现
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/solestride/storefront/internal/notification/domain"
)

// WebhookSender 向外部 Webhook 推送文本消息
type WebhookSender struct {
	client *http.Client
}

func NewWebhookSender() domain.Sender {
	return &WebhookSender{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *WebhookSender) Send(ctx context.Context, target string, subject string, content string) error {
	slog.InfoContext(ctx, "sending webhook", "url", target, "subject", subject)

	payload := map[string]string{
		"text": fmt.Sprintf("*%s*\n%s", subject, content),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}
