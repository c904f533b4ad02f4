// File: services/notification/email.go
package notification

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"transformai/config"
	"transformai/utils"
)

// SMTPEmailSender sends mail through the configured SMTP relay. When email is
// disabled by configuration, Send logs and reports false without dialing.
type SMTPEmailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPEmailSender constructs an EmailSender from the app configuration.
func NewSMTPEmailSender() *SMTPEmailSender {
	cfg := config.AppConfig
	return &SMTPEmailSender{
		dialer: gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass),
		from:   cfg.EmailFrom,
	}
}

func (s *SMTPEmailSender) Send(to, subject, htmlBody, textBody string) bool {
	logger := utils.GetLogger()

	if !config.AppConfig.EmailEnabled {
		logger.Debug("Email sending is disabled", zap.String("recipient", to))
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(s.from, "TransformAI"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		logger.Error("Error sending email",
			zap.String("recipient", to),
			zap.String("subject", subject),
			zap.Error(err))
		return false
	}

	logger.Sugar().Infof("Email sent successfully to %s", to)
	return true
}
