// Package notify emails the site owner about new contact submissions.
package notify

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/model"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

type Notifier interface {
	ContactReceived(c model.Contact) error
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

// Mailer sends one plain-text mail per submission.
type Mailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg SMTPConfig) *Mailer {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Password != "" && m.cfg.To != ""
}

func (m *Mailer) ContactReceived(c model.Contact) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	projectType := "not specified"
	if c.ProjectType != nil {
		projectType = *c.ProjectType
	}
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(c.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Project type: %s
Message:
%s

---
Sent from your portfolio contact form
`, c.Name, c.Email, projectType, c.Message)

	msg := []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(c.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	log.Printf("Email sent for contact %s", c.ID)
	return nil
}

// headerSafe strips line breaks so submitted values cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
