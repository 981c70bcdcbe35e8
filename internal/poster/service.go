package poster

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/content"
	"github.com/mabdullah/linkedin-seo-poster/internal/linkedin"
	"github.com/mabdullah/linkedin-seo-poster/internal/models"
	"github.com/mabdullah/linkedin-seo-poster/internal/notifications"
	"github.com/mabdullah/linkedin-seo-poster/internal/storage"
	"github.com/sirupsen/logrus"
)

// ContentPipeline is the slice of the content pipeline the orchestrator needs
type ContentPipeline interface {
	Generate(ctx context.Context) (string, error)
	FormatContent(raw string) string
	ValidateLength(content string) bool
	KeywordDensity(content string) map[string]float64
}

// Publisher publishes a text post to the target network
type Publisher interface {
	CreateTextPost(ctx context.Context, text string, visibility models.Visibility) (*models.PostResult, error)
}

// Service drives one end-to-end publish cycle with bounded retry and
// guaranteed audit persistence: every call ends in exactly one persisted
// record and one returned result.
type Service struct {
	config   *config.Config
	pipeline ContentPipeline
	client   Publisher
	store    storage.RecordStore
	alerter  notifications.Alerter

	metrics   models.RunMetrics
	metricsMu sync.RWMutex

	// Guards against overlapping runs; the cron period is far longer than a
	// run but the platform does not enforce that.
	runMu sync.Mutex
}

// NewService creates a new posting orchestrator
func NewService(cfg *config.Config, pipeline ContentPipeline, client Publisher, store storage.RecordStore, alerter notifications.Alerter) *Service {
	return &Service{
		config:   cfg,
		pipeline: pipeline,
		client:   client,
		store:    store,
		alerter:  alerter,
	}
}

// CreateSEOPost generates, formats, validates and publishes one post,
// retrying generation up to maxAttempts times on length-invalid content or
// errors. A publish failure is returned immediately and not retried.
func (s *Service) CreateSEOPost(ctx context.Context, maxAttempts int) *models.PostResult {
	if maxAttempts < 1 {
		maxAttempts = s.config.MaxAttempts
	}

	if !s.runMu.TryLock() {
		logrus.Warn("Posting run already in progress, skipping")
		return &models.PostResult{
			Success:   false,
			ErrorKind: "busy",
			Error:     "a posting run is already in progress",
			Timestamp: time.Now(),
		}
	}
	defer s.runMu.Unlock()

	start := time.Now()
	visibility := models.Visibility(s.config.PostVisibility)

	var formattedContent string

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		logrus.Infof("Attempt %d/%d: generating content", attempt, maxAttempts)

		raw, err := s.pipeline.Generate(ctx)
		if err != nil {
			if result := s.handleAttemptError(err, "completion", attempt, maxAttempts, formattedContent, start); result != nil {
				return result
			}
			continue
		}

		formattedContent = s.pipeline.FormatContent(raw)

		if !s.pipeline.ValidateLength(formattedContent) {
			logrus.Info("Content length validation failed, retrying")
			continue
		}

		logrus.Info("Publishing to LinkedIn")
		result, err := s.client.CreateTextPost(ctx, formattedContent, visibility)
		if err != nil {
			// The publish outcome is recorded and returned without further
			// retries within this run
			result = &models.PostResult{
				Success:   false,
				ErrorKind: linkedin.ErrorKind(err),
				Error:     err.Error(),
				Timestamp: time.Now(),
			}
			logrus.Errorf("Publish failed: %v", err)
		}

		record := s.buildRecord(formattedContent, result, attempt)
		if err := s.store.Append(record); err != nil {
			logrus.Errorf("Failed to persist post record: %v", err)
		}

		s.updateMetrics(result, time.Since(start))
		return result
	}

	// Every attempt produced length-invalid content
	return s.recordExhaustion("content length validation failed on every attempt",
		"length_validation", maxAttempts, formattedContent, start)
}

// handleAttemptError logs an attempt failure and, on the final attempt,
// persists an error record and produces the terminal failure result. A nil
// return means attempts remain and the loop should continue.
func (s *Service) handleAttemptError(err error, kind string, attempt, maxAttempts int, partialContent string, start time.Time) *models.PostResult {
	logrus.Errorf("Attempt %d failed: %v", attempt, err)

	if attempt < maxAttempts {
		return nil
	}

	return s.recordExhaustion(err.Error(), kind, maxAttempts, partialContent, start)
}

func (s *Service) recordExhaustion(message, kind string, attempts int, partialContent string, start time.Time) *models.PostResult {
	record := models.PostRecord{
		ID:      uuid.NewString(),
		Date:    time.Now().Format(time.RFC3339),
		Content: partialContent,
		Success: false,
		Failure: &models.FailureDetail{
			Message:  message,
			Kind:     kind,
			Attempts: attempts,
		},
	}

	if err := s.store.Append(record); err != nil {
		logrus.Errorf("Failed to persist error record: %v", err)
	}

	if s.alerter != nil {
		// Alerting is best effort and never fails the run
		if err := s.alerter.SendFailureAlert(&record); err != nil {
			logrus.Errorf("Failed to send failure alert: %v", err)
		}
	}

	result := &models.PostResult{
		Success:   false,
		ErrorKind: kind,
		Error:     message,
		Timestamp: time.Now(),
	}

	s.updateMetrics(result, time.Since(start))
	return result
}

func (s *Service) buildRecord(formattedContent string, result *models.PostResult, attempt int) models.PostRecord {
	record := models.PostRecord{
		ID:      uuid.NewString(),
		Date:    time.Now().Format(time.RFC3339),
		Content: formattedContent,
		Success: result.Success,
		Attempt: attempt,
		Metrics: &models.SEOMetrics{
			KeywordDensity: s.pipeline.KeywordDensity(formattedContent),
			HashtagCount:   content.CountHashtags(formattedContent),
			WordCount:      content.WordCount(formattedContent),
			EmojiCount:     content.CountEmojis(formattedContent),
		},
	}

	if result.Success {
		record.PostID = result.PostID
	} else {
		record.Error = result.Error
	}

	return record
}

func (s *Service) updateMetrics(result *models.PostResult, duration time.Duration) {
	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()

	s.metrics.TotalRuns++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()

	if result.Success {
		s.metrics.SuccessfulPosts++
		s.metrics.LastPostID = result.PostID
	} else {
		s.metrics.FailedRuns++
	}
}

// GetMetrics returns current run metrics as JSON
func (s *Service) GetMetrics() string {
	s.metricsMu.RLock()
	defer s.metricsMu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
