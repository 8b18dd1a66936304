package utils

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends notifications through SendGrid. With no API key
// configured it degrades to a logged no-op so local development works
// without credentials.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService reads SENDGRID_API_KEY and EMAIL_SENDER from the
// environment.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	es := &EmailService{sender: os.Getenv("EMAIL_SENDER")}
	if apiKey == "" {
		slog.Warn("SENDGRID_API_KEY not set, email notifications disabled")
		return es
	}
	es.client = sendgrid.NewSendClient(apiKey)
	return es
}

// SendEmail sends one plain-text email.
func (es *EmailService) SendEmail(toEmail, subject, content string) error {
	if es.client == nil {
		slog.Info("email skipped (service disabled)", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail("Local Market", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)

	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderPlaced notifies the vendor that checkout succeeded.
func (es *EmailService) SendOrderPlaced(toEmail string, orderID string, total float64) error {
	subject := "Order Placed - Local Market"
	content := fmt.Sprintf("Your order %s has been placed.\nTotal: %.2f\n\nThe supplier will confirm it shortly.", orderID, total)
	return es.SendEmail(toEmail, subject, content)
}

// SendGrievanceFiled notifies the supplier that a complaint was filed
// against one of their orders.
func (es *EmailService) SendGrievanceFiled(toEmail string, orderID string) error {
	subject := "Complaint Filed - Local Market"
	content := fmt.Sprintf("A vendor has filed a complaint about order %s. You can add a note from your grievances page.", orderID)
	return es.SendEmail(toEmail, subject, content)
}

// SendGrievanceUpdated notifies the vendor of an admin status change.
func (es *EmailService) SendGrievanceUpdated(toEmail string, status string) error {
	subject := "Complaint Status Updated - Local Market"
	content := fmt.Sprintf("The status of your complaint is now: %s.", status)
	return es.SendEmail(toEmail, subject, content)
}
