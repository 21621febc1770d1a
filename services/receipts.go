package services

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"popflix/models"
)

// Receipts emails a purchase receipt after a premium grant. Best effort:
// the entitlement transition is already committed by the time this runs, so
// failures are only logged.
type Receipts struct {
	apiKey string
	from   string
}

func NewReceipts(apiKey, from string) *Receipts {
	return &Receipts{apiKey: apiKey, from: from}
}

func (r *Receipts) PremiumGranted(user models.User, txn models.PaymentTransaction) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Printf("Receipt email panic recovered: %v\n", rec)
		}
	}()

	if r.apiKey == "" {
		fmt.Println("Missing SendGrid config, skipping receipt email")
		return
	}

	expires := ""
	if user.PremiumExpiresAt != nil {
		expires = user.PremiumExpiresAt.Format(time.RFC1123)
	}

	subject := "Your PopFlix Premium is active"
	plainTextContent := fmt.Sprintf(`Hi %s,

Thanks for upgrading! Your PopFlix Premium membership is now active.

RECEIPT:
Amount: %.2f %s
Checkout session: %s
Premium active until: %s

Enjoy the show,
The PopFlix team`,
		user.Name,
		txn.Amount,
		txn.Currency,
		txn.SessionID,
		expires,
	)

	from := mail.NewEmail("PopFlix", r.from)
	to := mail.NewEmail(user.Name, user.Email)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, plainTextContent)
	client := sendgrid.NewSendClient(r.apiKey)

	response, err := client.Send(message)
	if err != nil {
		fmt.Printf("Error sending receipt email: %v\n", err)
	} else {
		fmt.Printf("Receipt email sent. Status Code: %d\n", response.StatusCode)
	}
}
