package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"popflix/models"
)

// SlackNotifier posts a payment notification to an ops channel via an
// incoming webhook. Best effort, never blocks a purchase.
type SlackNotifier struct {
	webhookURL string
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

func (n *SlackNotifier) PremiumGranted(user models.User, txn models.PaymentTransaction) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Slack panic recovered: %v\n", r)
		}
	}()

	if n.webhookURL == "" {
		fmt.Println("Slack skipped: SLACK_WEBHOOK_URL not set")
		return
	}

	payload := map[string]string{
		"text": fmt.Sprintf("💰 Premium purchase\n\nUser: %s (%s)\nAmount: %.2f %s\nSession: %s",
			user.Name,
			user.Email,
			txn.Amount,
			txn.Currency,
			txn.SessionID,
		),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error marshaling Slack payload: %v\n", err)
		return
	}

	resp, err := http.Post(n.webhookURL, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		fmt.Printf("Error sending Slack request: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fmt.Printf("Slack API error: Status %d\n", resp.StatusCode)
	}
}
