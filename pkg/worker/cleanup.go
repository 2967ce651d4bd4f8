package worker

import (
	"context"
	"time"

	"github.com/fsfcare/care-api/internal/repository"
	"github.com/fsfcare/care-api/pkg/logger"
)

// AccessCodeCleanupWorker periodically purges expired access codes.
type AccessCodeCleanupWorker struct {
	repo     repository.AccessCodeRepository
	interval time.Duration
	logger   *logger.Logger
}

func NewAccessCodeCleanupWorker(repo repository.AccessCodeRepository, interval time.Duration, logger *logger.Logger) *AccessCodeCleanupWorker {
	return &AccessCodeCleanupWorker{
		repo:     repo,
		interval: interval,
		logger:   logger,
	}
}

func (w *AccessCodeCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := w.repo.DeleteExpiredBefore(ctx, time.Now())
			if err != nil {
				w.logger.Error(err, "Failed to clean up expired access codes")
				continue
			}
			if deleted > 0 {
				w.logger.Info("Purged expired access codes", "count", deleted)
			}
		}
	}
}

// AuditCleanupWorker prunes audit logs past the retention window.
type AuditCleanupWorker struct {
	repo          repository.AuditRepository
	retentionDays int
	interval      time.Duration
	logger        *logger.Logger
}

func NewAuditCleanupWorker(repo repository.AuditRepository, retentionDays int, interval time.Duration, logger *logger.Logger) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		repo:          repo,
		retentionDays: retentionDays,
		interval:      interval,
		logger:        logger,
	}
}

func (w *AuditCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().AddDate(0, 0, -w.retentionDays)
			if _, err := w.repo.Cleanup(ctx, cutoff); err != nil {
				w.logger.Error(err, "Failed to clean up audit logs")
			}
		}
	}
}
