package mailer

import (
	"bytes"
	"fmt"
	"html"

	"cassie-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendConfirmationLink(toEmail, fullName, link string) error
	SendPlanReceipt(toEmail, fullName, planName string, amountCents int64, currency string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

// NewEmailService returns a gomail backed sender. With an empty host the
// service only logs, which keeps local setups free of SMTP.
func NewEmailService(host string, port int, username, password, senderName string, log logger.ILogger) IEmailService {
	var d *gomail.Dialer
	if host != "" {
		d = gomail.NewDialer(host, port, username, password)
	}
	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) SendConfirmationLink(toEmail, fullName, link string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to Cassie, %s!</h2>
			<p>Please confirm your email address to keep your journey safe.</p>
			<p><a href="%s" style="color: #f97316;">Confirm my email</a></p>
			<p>This link will expire in 24 hours.</p>
			<p>If you didn't sign up, please ignore this email.</p>
		</div>
	`, html.EscapeString(fullName), html.EscapeString(link))

	return s.send(toEmail, "Confirm your email", body)
}

func (s *emailService) SendPlanReceipt(toEmail, fullName, planName string, amountCents int64, currency string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you, %s!</h2>
			<p>Your <strong>%s</strong> plan is active.</p>
			<p>Amount paid: %s %d.%02d</p>
			<p>Your first prompt is waiting for you.</p>
		</div>
	`, html.EscapeString(fullName), html.EscapeString(planName), currency, amountCents/100, amountCents%100)

	return s.send(toEmail, "Your Cassie plan is active", body)
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := s.newMessage(toEmail, subject, body)

	if s.dialer == nil {
		s.logger.Warn("Mailer", "SMTP not configured, email skipped", map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
		})
		return nil
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("Mailer", "Failed to send email", map[string]interface{}{"error": err, "to": toEmail})
		return err
	}

	s.logger.Info("Mailer", "Email sent", map[string]interface{}{"to": toEmail, "subject": subject})
	return nil
}

func (s *emailService) newMessage(toEmail, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return m
}

// render is used by tests to inspect a composed message.
func render(m *gomail.Message) (string, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
