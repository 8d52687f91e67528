// services/notifier.go
package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"grindspace-cafe/ledger"
	"grindspace-cafe/utils"
)

// LogNotifier writes notifications to the service log. Used when no webhook
// sink is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(n ledger.Notification) {
	log.Printf("🔔 [NOTIFY] %s — %s (%s)", n.Title, n.Body, n.Variant)
}

// WebhookNotifier forwards notification records to an external sink (the
// front-end's push channel, a Slack relay, whatever NOTIFY_WEBHOOK_URL points
// at). Delivery is fire-and-forget: failures are logged and dropped.
type WebhookNotifier struct {
	URL        string
	HTTPClient *http.Client
}

func (w *WebhookNotifier) Notify(n ledger.Notification) {
	go func() {
		payload, err := json.Marshal(n)
		if err != nil {
			log.Printf("❌ [NOTIFY] Failed to encode notification: %v", err)
			return
		}
		resp, err := w.HTTPClient.Post(w.URL, "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Printf("❌ [NOTIFY] Webhook delivery failed: %v", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			log.Printf("❌ [NOTIFY] Webhook sink returned status %d", resp.StatusCode)
		}
	}()
}

// NewNotifierFromEnv picks the webhook sink when NOTIFY_WEBHOOK_URL is set,
// the log sink otherwise.
func NewNotifierFromEnv() ledger.Notifier {
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		log.Printf("🔔 Notifications → webhook sink at %s", url)
		return &WebhookNotifier{URL: url, HTTPClient: utils.HTTPClient}
	}
	return LogNotifier{}
}
