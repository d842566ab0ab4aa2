package ports

import (
	"context"
	"time"

	"themis/contexts/identity-access/access-control-service/domain/entities"
	contractsv1 "themis/contracts/gen/events/v1"
)

// GrantRepository stores role grants and pause flags.
type GrantRepository interface {
	SaveGrant(ctx context.Context, grant entities.RoleGrant) error
	DeleteGrant(ctx context.Context, accountID string, member string, role entities.Role) error
	HasGrant(ctx context.Context, accountID string, member string, role entities.Role) (bool, error)
	ListGrants(ctx context.Context, accountID string, member string) ([]entities.RoleGrant, error)
	SetPaused(ctx context.Context, state entities.PauseState) error
	IsPaused(ctx context.Context, accountID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event EventEnvelope) error
}

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
