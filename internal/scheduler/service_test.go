package scheduler

import (
	"testing"

	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_InvalidTimezone(t *testing.T) {
	cfg := &config.Config{TimeZone: "Not/AZone", PostHour: 10}

	_, err := NewService(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestService_StartStop(t *testing.T) {
	cfg := &config.Config{TimeZone: "UTC", PostHour: 10, MaxAttempts: 3}

	service, err := NewService(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, service.Start())
	service.Stop()
}
