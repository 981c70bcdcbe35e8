package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mabdullah/linkedin-seo-poster/internal/config"
	"github.com/mabdullah/linkedin-seo-poster/internal/poster"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service triggers the daily posting run
type Service struct {
	config        *config.Config
	posterService *poster.Service
	cron          *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, posterService *poster.Service) (*Service, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.TimeZone, err)
	}

	return &Service{
		config:        cfg,
		posterService: posterService,
		cron:          cron.New(cron.WithLocation(location)),
	}, nil
}

// Start begins the daily posting schedule
func (s *Service) Start() error {
	cronExpression := fmt.Sprintf("0 %d * * *", s.config.PostHour)

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled posting run")
		result := s.posterService.CreateSEOPost(context.Background(), s.config.MaxAttempts)
		if result.Success {
			logrus.Infof("Scheduled run published post %s", result.PostID)
		} else {
			logrus.Errorf("Scheduled run failed (%s): %s", result.ErrorKind, result.Error)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started, posting daily at %02d:00 %s", s.config.PostHour, s.config.TimeZone)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
