package service

import (
	"context"

	"sttock-tracker/internal/tracker/repository"
	"sttock-tracker/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SessionCleanupService periodically sweeps expired session rows.
type SessionCleanupService struct {
	sessionRepo repository.SessionRepository
	logger      *logger.Logger
	schedule    string
	cron        *cron.Cron
}

// NewSessionCleanupService creates a cleanup service with a cron schedule,
// defaulting to an hourly sweep.
func NewSessionCleanupService(sessionRepo repository.SessionRepository, log *logger.Logger, schedule string) *SessionCleanupService {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &SessionCleanupService{
		sessionRepo: sessionRepo,
		logger:      log,
		schedule:    schedule,
	}
}

// Start schedules the sweep and stops it when the context is canceled.
func (s *SessionCleanupService) Start(ctx context.Context) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.schedule, func() {
		swept, err := s.sessionRepo.DeleteExpired(ctx)
		if err != nil {
			s.logger.Error("Expired session sweep failed", logger.ErrorField(err))
			return
		}
		if swept > 0 {
			s.logger.Info("Swept expired sessions", logger.Field("count", swept))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	return nil
}
