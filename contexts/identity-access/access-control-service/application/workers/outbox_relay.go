package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "themis/contexts/identity-access/access-control-service/application"
	"themis/contexts/identity-access/access-control-service/ports"
)

// OutboxRelay publishes recorded access-control notifications to the event bus.
type OutboxRelay struct {
	Outbox    ports.OutboxRepository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce publishes a bounded batch of pending outbox rows and marks each row
// sent only after broker publish succeeds. It stops on the first failure so
// the retry loop can reprocess remaining rows safely.
func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("access outbox list failed",
			"event", "access_outbox_list_failed",
			"module", "identity-access/access-control-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("access outbox relay found no pending rows",
			"event", "access_outbox_relay_noop",
			"module", "identity-access/access-control-service",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("access outbox decode failed",
				"event", "access_outbox_decode_failed",
				"module", "identity-access/access-control-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("access outbox publish failed",
				"event", "access_outbox_publish_failed",
				"module", "identity-access/access-control-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxSent(ctx, row.OutboxID, now); err != nil {
			logger.Error("access outbox ack failed",
				"event", "access_outbox_ack_failed",
				"module", "identity-access/access-control-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("access outbox relay cycle finished",
		"event", "access_outbox_relay_finished",
		"module", "identity-access/access-control-service",
		"layer", "worker",
		"published", len(pending),
	)
	return nil
}
