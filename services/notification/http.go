package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tripmate/models"
)

// HTTPChatNotifier POSTs chat notifications to the assistant endpoint. The response payload
// is not consumed.
type HTTPChatNotifier struct {
	url    string
	client *http.Client
}

func NewHTTPChatNotifier(url string, timeout time.Duration) *HTTPChatNotifier {
	return &HTTPChatNotifier{url: url, client: &http.Client{Timeout: timeout}}
}

func (n *HTTPChatNotifier) NotifyChat(ctx context.Context, msg models.ChatNotification) error {
	msg.RequestID = ""
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("NotifyChat: failed to encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("NotifyChat: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("NotifyChat: request to %s failed: %w", n.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("NotifyChat: assistant endpoint returned %s", resp.Status)
	}
	return nil
}
