package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/landgov/backend/domain"
	"github.com/landgov/backend/internal/infrastructure/outbox"
	"github.com/landgov/backend/repository"
)

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxProcessor re-drives journaled notifications into the primary store
// on a cron schedule until they deliver or exhaust their retries.
type OutboxProcessor struct {
	journal       *outbox.Journal
	notifications repository.NotificationRepository
	logger        *zap.Logger
	cron          *cron.Cron
	cfg           ProcessorConfig
}

func NewOutboxProcessor(
	journal *outbox.Journal,
	notifications repository.NotificationRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *OutboxProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	op := &OutboxProcessor{
		journal:       journal,
		notifications: notifications,
		logger:        logger,
		cfg:           cfg,
		cron:          cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = op.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := op.Drain(ctx); err != nil {
			op.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return op
}

// Start launches the cron scheduler.
func (op *OutboxProcessor) Start() {
	if op == nil || op.cron == nil {
		return
	}
	op.cron.Start()
	op.logger.Info("outbox processor started")
}

// Stop gracefully stops the scheduler.
func (op *OutboxProcessor) Stop(ctx context.Context) {
	if op == nil || op.cron == nil {
		return
	}
	stopCtx := op.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	op.logger.Info("outbox processor stopped")
}

// Drain redelivers journaled entries synchronously.
func (op *OutboxProcessor) Drain(ctx context.Context) error {
	if op == nil || op.journal == nil {
		return nil
	}

	entries, err := op.journal.GetBatch(op.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		notification := &domain.Notification{
			ID:        entry.ID,
			ToUserID:  entry.ToUserID,
			Message:   entry.Message,
			Timestamp: entry.Timestamp,
		}
		if notification.ID == "" {
			notification.ID = uuid.NewString()
		}

		if err := op.notifications.Append(ctx, notification); err != nil {
			op.logger.Error("failed to redeliver notification",
				zap.String("entry_id", entry.ID),
				zap.Error(err))

			entry.Retries++
			if entry.Retries >= op.cfg.MaxRetries {
				op.logger.Warn("dropping outbox entry (max retries reached)", zap.String("entry_id", entry.ID))
				_ = op.journal.Remove(entry)
				continue
			}

			if err := op.journal.Remove(entry); err != nil {
				op.logger.Warn("failed to remove outbox entry", zap.Error(err))
			}
			if err := op.journal.Requeue(entry); err != nil {
				op.logger.Error("failed to requeue outbox entry", zap.Error(err))
			}
			continue
		}

		if err := op.journal.Remove(entry); err != nil {
			op.logger.Warn("failed to purge delivered outbox entry", zap.Error(err))
		}
	}
	return nil
}

// Size returns the number of journaled entries.
func (op *OutboxProcessor) Size() int {
	if op == nil || op.journal == nil {
		return 0
	}
	size, err := op.journal.Size()
	if err != nil {
		return 0
	}
	return size
}
