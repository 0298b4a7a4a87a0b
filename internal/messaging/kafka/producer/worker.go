package producer

import (
	"context"
	"time"

	"staffops/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ProcessOutbox polls staged messages and publishes them until the context
// is cancelled. Failures are marked for retry, never dropped.
func ProcessOutbox(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainPending(ctx, repo, writer, log); err != nil {
				log.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

func drainPending(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	msgs, err := repo.ListPending(ctx, 50)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}

	logger.Info("publishing pending outbox messages", zap.Int("count", len(msgs)))

	for _, msg := range msgs {
		if err := publishMessage(ctx, writer, msg); err != nil {
			logger.Error("publish outbox message failed",
				zap.String("outbox_id", msg.ID),
				zap.String("event_type", msg.EventType),
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, msg.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, msg.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", msg.ID),
				zap.Error(err),
			)
			continue
		}

		logger.Info("outbox message sent",
			zap.String("outbox_id", msg.ID),
			zap.String("event_type", msg.EventType),
			zap.String("topic", msg.Topic),
		)
	}

	return nil
}
