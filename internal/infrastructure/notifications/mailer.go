package notifications

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// MailerImpl implements domain.NotificationService over SMTP.
type MailerImpl struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.SugaredLogger
}

// NewMailer creates a new SMTP notification service. With no host
// configured it logs the message instead of sending, which keeps local
// development working without an SMTP server.
func NewMailer(host string, port int, username, password, from string, logger *zap.SugaredLogger) domain.NotificationService {
	var dialer *gomail.Dialer
	if host != "" {
		dialer = gomail.NewDialer(host, port, username, password)
	}
	return &MailerImpl{
		dialer: dialer,
		from:   from,
		logger: logger,
	}
}

// SendVerificationCode implements domain.NotificationService
func (m *MailerImpl) SendVerificationCode(to, name, code string) error {
	subject := "Your MultiQuote verification code"
	text := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in 10 minutes.\n\nIf you did not attempt to log in, ignore this email.", name, code)
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>MultiQuote login verification</h2>
    <p>Hi %s, your verification code is:</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>The code expires in 10 minutes. If you did not attempt to log in, ignore this email.</p>
  </div>
</body>
</html>`, name, code)

	return m.send(to, subject, text, html)
}

// SendGeneratedPassword implements domain.NotificationService
func (m *MailerImpl) SendGeneratedPassword(to, firstName, password string, created bool) error {
	verb := "updated"
	if created {
		verb = "created"
	}
	subject := fmt.Sprintf("Your MultiQuote account has been %s", verb)
	text := fmt.Sprintf("Hi %s,\n\nYour account password is: %s\n\nPlease change it after your first login.", firstName, password)
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Your MultiQuote account has been %s</h2>
    <p>Hi %s, your account password is:</p>
    <div style="font-size: 20px; font-weight: bold;">%s</div>
    <p>Please change it after your first login.</p>
  </div>
</body>
</html>`, verb, firstName, password)

	return m.send(to, subject, text, html)
}

func (m *MailerImpl) send(to, subject, text, html string) error {
	if m.dialer == nil {
		m.logger.Warnw("smtp not configured, skipping email", "to", to, "subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Infow("email sent", "to", to, "subject", subject)
	return nil
}
