package notifications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedRecord() *models.PostRecord {
	return &models.PostRecord{
		ID:   "rec-1",
		Date: "2025-01-01T10:00:00Z",
		Failure: &models.FailureDetail{
			Message:  "completion service down",
			Kind:     "completion",
			Attempts: 3,
		},
	}
}

func TestSendFailureAlert_NoChannelsConfigured(t *testing.T) {
	service := NewService(&config.Config{})
	assert.NoError(t, service.SendFailureAlert(failedRecord()))
}

func TestSendFailureAlert_IgnoresSuccessRecords(t *testing.T) {
	service := NewService(&config.Config{AlertWebhookURL: "http://unreachable.invalid"})

	// A record without a failure block never triggers an alert
	assert.NoError(t, service.SendFailureAlert(&models.PostRecord{ID: "rec-2", Success: true}))
	assert.NoError(t, service.SendFailureAlert(nil))
}

func TestSendFailureAlert_Webhook(t *testing.T) {
	var received webhookMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := NewService(&config.Config{AlertWebhookURL: server.URL})
	require.NoError(t, service.SendFailureAlert(failedRecord()))

	assert.Equal(t, "completion", received.Kind)
	assert.Equal(t, 3, received.Attempts)
	assert.Contains(t, received.Text, "completion service down")
}

func TestSendFailureAlert_WebhookErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := NewService(&config.Config{AlertWebhookURL: server.URL})
	err := service.SendFailureAlert(failedRecord())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook")
}
