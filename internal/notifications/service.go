package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service sends failure alerts via configured channels. With no channel
// configured every call is a no-op.
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements Alerter
var _ Alerter = (*Service)(nil)

type webhookMessage struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Kind     string `json:"kind"`
	Attempts int    `json:"attempts"`
	Date     string `json:"date"`
}

// NewService creates a new alerting service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendFailureAlert notifies configured channels that a posting run exhausted
// its attempts
func (s *Service) SendFailureAlert(record *models.PostRecord) error {
	if record == nil || record.Failure == nil {
		return nil
	}

	var errors []string

	if s.config.AlertWebhookURL != "" {
		if err := s.sendWebhook(record); err != nil {
			logrus.Errorf("Failed to send webhook alert: %v", err)
			errors = append(errors, fmt.Sprintf("webhook: %v", err))
		} else {
			logrus.Info("Successfully sent webhook alert")
		}
	}

	if s.config.AlertEmail != "" {
		if err := s.sendEmail(record); err != nil {
			logrus.Errorf("Failed to send email alert: %v", err)
			errors = append(errors, fmt.Sprintf("email: %v", err))
		} else {
			logrus.Info("Successfully sent email alert")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("alert errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendWebhook(record *models.PostRecord) error {
	message := webhookMessage{
		Title:    "LinkedIn post run failed",
		Text:     record.Failure.Message,
		Kind:     record.Failure.Kind,
		Attempts: record.Failure.Attempts,
		Date:     record.Date,
	}

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.AlertWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send webhook message: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) sendEmail(record *models.PostRecord) error {
	body := fmt.Sprintf(
		"The scheduled LinkedIn post run on %s failed after %d attempts.\n\nError kind: %s\nError: %s\n",
		record.Date, record.Failure.Attempts, record.Failure.Kind, record.Failure.Message,
	)
	if record.Content != "" {
		body += fmt.Sprintf("\nLast generated content:\n\n%s\n", record.Content)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.AlertEmail)
	m.SetHeader("Subject", "LinkedIn SEO poster: run failed")
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
