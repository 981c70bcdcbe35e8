package models

import "time"

// Visibility controls the audience of a published post
type Visibility string

const (
	VisibilityPublic      Visibility = "PUBLIC"
	VisibilityConnections Visibility = "CONNECTIONS"
)

// PostResult represents the outcome of a single publish call
type PostResult struct {
	Success   bool      `json:"success"`
	PostID    string    `json:"post_id,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SEOMetrics holds derived content metrics stored alongside a post
type SEOMetrics struct {
	KeywordDensity map[string]float64 `json:"keyword_density"`
	HashtagCount   int                `json:"hashtag_count"`
	WordCount      int                `json:"word_count"`
	EmojiCount     int                `json:"emoji_count"`
}

// PostRecord is one append-only audit entry per orchestration run
type PostRecord struct {
	ID      string      `json:"id"`
	Date    string      `json:"date"`
	Content string      `json:"content,omitempty"`
	PostID  string      `json:"post_id,omitempty"`
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Attempt int         `json:"attempt,omitempty"`
	Metrics *SEOMetrics `json:"seo_metrics,omitempty"`

	// Populated only when every attempt failed
	Failure *FailureDetail `json:"failure,omitempty"`
}

// FailureDetail captures the terminal error of an exhausted run
type FailureDetail struct {
	Message  string `json:"message"`
	Kind     string `json:"kind"`
	Attempts int    `json:"attempts"`
}

// RunMetrics tracks orchestrator activity across runs
type RunMetrics struct {
	TotalRuns       int       `json:"total_runs"`
	SuccessfulPosts int       `json:"successful_posts"`
	FailedRuns      int       `json:"failed_runs"`
	LastRun         time.Time `json:"last_run"`
	LastRunDuration string    `json:"last_run_duration"`
	LastPostID      string    `json:"last_post_id,omitempty"`
}
