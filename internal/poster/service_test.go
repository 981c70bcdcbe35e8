package poster

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/linkedin"
	"github.com/mabdullah/linkedin-seo-poster/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPipeline is a mock implementation of the content pipeline
type MockPipeline struct {
	mock.Mock
}

func (m *MockPipeline) Generate(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPipeline) FormatContent(raw string) string {
	args := m.Called(raw)
	return args.String(0)
}

func (m *MockPipeline) ValidateLength(content string) bool {
	args := m.Called(content)
	return args.Bool(0)
}

func (m *MockPipeline) KeywordDensity(content string) map[string]float64 {
	args := m.Called(content)
	return args.Get(0).(map[string]float64)
}

// MockPublisher is a mock implementation of the LinkedIn client
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) CreateTextPost(ctx context.Context, text string, visibility models.Visibility) (*models.PostResult, error) {
	args := m.Called(ctx, text, visibility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostResult), args.Error(1)
}

// MockStore captures appended audit records
type MockStore struct {
	mock.Mock
	records []models.PostRecord
}

func (m *MockStore) Append(record models.PostRecord) error {
	m.records = append(m.records, record)
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockStore) All() ([]models.PostRecord, error) {
	args := m.Called()
	return args.Get(0).([]models.PostRecord), args.Error(1)
}

func (m *MockStore) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		PostVisibility: "PUBLIC",
		MaxAttempts:    3,
	}
}

func validContent() string {
	return strings.TrimSpace(strings.Repeat("word ", 160))
}

func TestCreateSEOPost_AllAttemptsLengthInvalid(t *testing.T) {
	pipeline := &MockPipeline{}
	publisher := &MockPublisher{}
	store := &MockStore{}

	pipeline.On("Generate", mock.Anything).Return("too short", nil).Times(3)
	pipeline.On("FormatContent", "too short").Return("too short").Times(3)
	pipeline.On("ValidateLength", "too short").Return(false).Times(3)
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, publisher, store, nil)
	result := service.CreateSEOPost(context.Background(), 3)

	assert.False(t, result.Success)
	pipeline.AssertNumberOfCalls(t, "Generate", 3)
	publisher.AssertNotCalled(t, "CreateTextPost")

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.False(t, record.Success)
	require.NotNil(t, record.Failure)
	assert.Equal(t, 3, record.Failure.Attempts)
	assert.Equal(t, "length_validation", record.Failure.Kind)
}

func TestCreateSEOPost_SecondAttemptValid(t *testing.T) {
	pipeline := &MockPipeline{}
	publisher := &MockPublisher{}
	store := &MockStore{}

	content := validContent()

	pipeline.On("Generate", mock.Anything).Return("raw one", nil).Once()
	pipeline.On("FormatContent", "raw one").Return("short").Once()
	pipeline.On("ValidateLength", "short").Return(false).Once()

	pipeline.On("Generate", mock.Anything).Return("raw two", nil).Once()
	pipeline.On("FormatContent", "raw two").Return(content).Once()
	pipeline.On("ValidateLength", content).Return(true).Once()
	pipeline.On("KeywordDensity", content).Return(map[string]float64{"python": 1.23})

	publisher.On("CreateTextPost", mock.Anything, content, models.VisibilityPublic).
		Return(&models.PostResult{Success: true, PostID: "urn:li:share:42", Timestamp: time.Now()}, nil).Once()
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, publisher, store, nil)
	result := service.CreateSEOPost(context.Background(), 3)

	assert.True(t, result.Success)
	assert.Equal(t, "urn:li:share:42", result.PostID)
	pipeline.AssertNumberOfCalls(t, "Generate", 2)
	publisher.AssertNumberOfCalls(t, "CreateTextPost", 1)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.True(t, record.Success)
	assert.Equal(t, 2, record.Attempt)
	assert.Equal(t, "urn:li:share:42", record.PostID)
	require.NotNil(t, record.Metrics)
	assert.Equal(t, 1.23, record.Metrics.KeywordDensity["python"])
	assert.Equal(t, 160, record.Metrics.WordCount)
}

func TestCreateSEOPost_PublishFailureNotRetried(t *testing.T) {
	pipeline := &MockPipeline{}
	publisher := &MockPublisher{}
	store := &MockStore{}

	content := validContent()

	pipeline.On("Generate", mock.Anything).Return("raw", nil).Once()
	pipeline.On("FormatContent", "raw").Return(content).Once()
	pipeline.On("ValidateLength", content).Return(true).Once()
	pipeline.On("KeywordDensity", content).Return(map[string]float64{})

	publisher.On("CreateTextPost", mock.Anything, content, models.VisibilityPublic).
		Return(nil, &linkedin.PublishError{Message: "boom", StatusCode: 503}).Once()
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, publisher, store, nil)
	result := service.CreateSEOPost(context.Background(), 3)

	assert.False(t, result.Success)
	assert.Equal(t, linkedin.KindPublish, result.ErrorKind)

	// A publish failure ends the run; generation is not retried
	pipeline.AssertNumberOfCalls(t, "Generate", 1)
	publisher.AssertNumberOfCalls(t, "CreateTextPost", 1)

	require.Len(t, store.records, 1)
	record := store.records[0]
	assert.False(t, record.Success)
	assert.Equal(t, 1, record.Attempt)
	assert.NotEmpty(t, record.Error)
	assert.Empty(t, record.PostID)
}

func TestCreateSEOPost_GenerationErrorRetriedThenRecorded(t *testing.T) {
	pipeline := &MockPipeline{}
	publisher := &MockPublisher{}
	store := &MockStore{}

	pipeline.On("Generate", mock.Anything).Return("", errors.New("completion service down")).Times(3)
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, publisher, store, nil)
	result := service.CreateSEOPost(context.Background(), 3)

	assert.False(t, result.Success)
	assert.Equal(t, "completion", result.ErrorKind)
	pipeline.AssertNumberOfCalls(t, "Generate", 3)
	publisher.AssertNotCalled(t, "CreateTextPost")

	require.Len(t, store.records, 1)
	require.NotNil(t, store.records[0].Failure)
	assert.Equal(t, 3, store.records[0].Failure.Attempts)
	assert.Contains(t, store.records[0].Failure.Message, "completion service down")
}

func TestCreateSEOPost_GenerationErrorThenSuccess(t *testing.T) {
	pipeline := &MockPipeline{}
	publisher := &MockPublisher{}
	store := &MockStore{}

	content := validContent()

	pipeline.On("Generate", mock.Anything).Return("", errors.New("transient")).Once()
	pipeline.On("Generate", mock.Anything).Return("raw", nil).Once()
	pipeline.On("FormatContent", "raw").Return(content).Once()
	pipeline.On("ValidateLength", content).Return(true).Once()
	pipeline.On("KeywordDensity", content).Return(map[string]float64{})

	publisher.On("CreateTextPost", mock.Anything, content, models.VisibilityPublic).
		Return(&models.PostResult{Success: true, PostID: "urn:li:share:7", Timestamp: time.Now()}, nil).Once()
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, publisher, store, nil)
	result := service.CreateSEOPost(context.Background(), 3)

	assert.True(t, result.Success)
	require.Len(t, store.records, 1)
	assert.Equal(t, 2, store.records[0].Attempt)
}

type blockingPipeline struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingPipeline) Generate(ctx context.Context) (string, error) {
	close(b.started)
	<-b.release
	return "", errors.New("released")
}

func (b *blockingPipeline) FormatContent(raw string) string { return raw }

func (b *blockingPipeline) ValidateLength(content string) bool { return false }

func (b *blockingPipeline) KeywordDensity(string) map[string]float64 { return nil }

func TestCreateSEOPost_ConcurrentRunRejected(t *testing.T) {
	pipeline := &blockingPipeline{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := &MockStore{}
	store.On("Append", mock.Anything).Return(nil)

	service := NewService(testConfig(), pipeline, &MockPublisher{}, store, nil)

	done := make(chan *models.PostResult, 1)
	go func() {
		done <- service.CreateSEOPost(context.Background(), 1)
	}()

	<-pipeline.started
	overlapping := service.CreateSEOPost(context.Background(), 1)
	close(pipeline.release)
	<-done

	assert.False(t, overlapping.Success)
	assert.Equal(t, "busy", overlapping.ErrorKind)
	// The rejected run writes no audit record; only the first run records
	assert.Len(t, store.records, 1)
}

type failingAlerter struct{ called bool }

func (f *failingAlerter) SendFailureAlert(record *models.PostRecord) error {
	f.called = true
	return errors.New("smtp down")
}

func TestCreateSEOPost_AlerterFailureDoesNotFailRun(t *testing.T) {
	pipeline := &MockPipeline{}
	store := &MockStore{}
	alerter := &failingAlerter{}

	pipeline.On("Generate", mock.Anything).Return("", errors.New("down")).Once()
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, &MockPublisher{}, store, alerter)
	result := service.CreateSEOPost(context.Background(), 1)

	assert.False(t, result.Success)
	assert.True(t, alerter.called)
	assert.Len(t, store.records, 1)
}

func TestGetMetrics(t *testing.T) {
	pipeline := &MockPipeline{}
	store := &MockStore{}

	pipeline.On("Generate", mock.Anything).Return("", errors.New("down")).Once()
	store.On("Append", mock.Anything).Return(nil).Once()

	service := NewService(testConfig(), pipeline, &MockPublisher{}, store, nil)
	service.CreateSEOPost(context.Background(), 1)

	metrics := service.GetMetrics()
	assert.Contains(t, metrics, `"total_runs": 1`)
	assert.Contains(t, metrics, `"failed_runs": 1`)
}
