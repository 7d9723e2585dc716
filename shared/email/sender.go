package email

import (
	"fmt"
	"net/smtp"
	"time"

	"adlens/shared/config"
)

// Sender delivers the final report by SMTP when delivery is configured.
type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendReport mails the generated HTML report for one brand run.
func (s *Sender) SendReport(brand, htmlBody string) error {
	if htmlBody == "" {
		return fmt.Errorf("report body cannot be empty")
	}

	subject := fmt.Sprintf("Creative Effectiveness Report - %s (%s)",
		brand, time.Now().Format("Jan 2, 2006"))
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}
