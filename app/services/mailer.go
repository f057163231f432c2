package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailMessage is a plain-text outbound mail.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// EmailService sends transactional mail (verification notices).
type EmailService interface {
	Send(msg EmailMessage) error
}

// consoleMailer logs messages instead of sending them. Development default.
type consoleMailer struct {
	log *zap.Logger
}

func NewConsoleMailer(log *zap.Logger) EmailService {
	return &consoleMailer{log: log}
}

func (m *consoleMailer) Send(msg EmailMessage) error {
	m.log.Info("console mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	return nil
}

// sendgridMailer delivers through the SendGrid API.
type sendgridMailer struct {
	client  *sendgrid.Client
	from    *mail.Email
	appName string
}

func NewSendgridMailer(apiKey, fromAddr, appName string) EmailService {
	return &sendgridMailer{
		client:  sendgrid.NewSendClient(apiKey),
		from:    mail.NewEmail(appName, fromAddr),
		appName: appName,
	}
}

func (m *sendgridMailer) Send(msg EmailMessage) error {
	to := mail.NewEmail(msg.ToName, msg.To)
	message := mail.NewSingleEmail(m.from, "["+m.appName+"] "+msg.Subject, to, msg.Body, "")
	resp, err := m.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}
