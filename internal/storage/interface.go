package storage

import "github.com/mabdullah/linkedin-seo-poster/internal/models"

// RecordStore defines the contract for audit-record persistence
type RecordStore interface {
	Append(record models.PostRecord) error
	All() ([]models.PostRecord, error)
	Count() (int, error)
}
