package smtp

import (
	"fmt"

	mail "github.com/go-mail/mail"
	"github.com/wardro8e/api/internal/config"
)

// Mailer sends transactional emails.
type Mailer interface {
	SendOTPEmail(to, otp, brandName string) error
	SendVerificationSubmittedEmail(to, contactName, status string) error
}

type mailer struct {
	host     string
	port     int
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) send(to, subject, htmlBody string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}

func (m *mailer) SendOTPEmail(to, otp, brandName string) error {
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #0D9488; text-align: center;">Wardro8e</h1>
  <h2>Hello %s,</h2>
  <p>Thank you for signing up as a brand partner with Wardro8e. To complete your
  registration, please verify your email address using the code below:</p>
  <div style="text-align: center; margin: 25px 0;">
    <span style="background-color: #0D9488; color: white; font-size: 32px; font-weight: bold; padding: 20px; border-radius: 12px; letter-spacing: 8px; display: inline-block;">%s</span>
  </div>
  <p style="color: #6B7280; font-size: 14px; text-align: center;">
    This code will expire in 10 minutes. If you didn't request this verification, please ignore this email.
  </p>
</div>`, brandName, otp)
	return m.send(to, "Verify Your Wardro8e Brand Account", body)
}

func (m *mailer) SendVerificationSubmittedEmail(to, contactName, status string) error {
	next := "Our team will review your submission and get back to you within 3-5 business days."
	if status == "awaiting_esign" {
		next = "You will shortly receive a separate email with your partnership contract for electronic signing."
	}
	body := fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #0D9488; text-align: center;">Wardro8e</h1>
  <h2>Hello %s,</h2>
  <p>We have received your brand verification submission.</p>
  <p>%s</p>
</div>`, contactName, next)
	return m.send(to, "Wardro8e Verification Received", body)
}
