package notifications

import "github.com/mabdullah/linkedin-seo-poster/internal/models"

// Alerter defines the contract for failure alerting
type Alerter interface {
	SendFailureAlert(record *models.PostRecord) error
}
