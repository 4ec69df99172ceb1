// internal/pkg/email/service.go
package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// Service sends transactional email over SMTP
type Service struct {
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		logger: logrus.New(),
	}
}

// SendOrderConfirmation sends the post-payment confirmation email.
// When email is disabled the send is logged and skipped.
func (s *Service) SendOrderConfirmation(toEmail, orderNumber string, totalAmount int64) error {
	if toEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Order %s confirmed", orderNumber)
	body := fmt.Sprintf(
		"Thank you for your purchase!\r\n\r\n"+
			"Order number: %s\r\n"+
			"Total: $%.2f\r\n\r\n"+
			"We'll let you know when your order ships.\r\n",
		orderNumber, float64(totalAmount)/100,
	)

	return s.send(toEmail, subject, body)
}

func (s *Service) send(toEmail, subject, body string) error {
	emailCfg := s.config.External.Email

	if !emailCfg.Enabled {
		s.logger.WithFields(logrus.Fields{
			"to":      toEmail,
			"subject": subject,
		}).Info("Email disabled, skipping send")
		return nil
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", emailCfg.FromName, emailCfg.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", toEmail))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", emailCfg.SMTPHost, emailCfg.SMTPPort)
	auth := smtp.PlainAuth("", emailCfg.SMTPUser, emailCfg.SMTPPass, emailCfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, emailCfg.FromEmail, []string{toEmail}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"to":      toEmail,
		"subject": subject,
	}).Info("Email sent")
	return nil
}
