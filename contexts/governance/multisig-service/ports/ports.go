package ports

import (
	"context"
	"time"

	"themis/contexts/governance/multisig-service/domain/entities"
	contractsv1 "themis/contracts/gen/events/v1"
)

// AccountRepository stores whole governance aggregates. Commands load a
// snapshot, run every guard against it, then save; adapters must present the
// saved state atomically to subsequent reads.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account entities.Account) error
	GetAccount(ctx context.Context, accountID string) (entities.Account, error)
	SaveAccount(ctx context.Context, account entities.Account) error
}

// PermissionOracle answers capability checks for proposer/voter/executor
// roles. It is owned by a sibling context and injected at the composition
// root.
type PermissionOracle interface {
	HasPermission(ctx context.Context, accountID string, member entities.Address, role entities.Role) (bool, error)
}

// PauseGuard is the account-wide circuit breaker consulted before mutating
// operations. It returns the domain paused error when the account is paused.
type PauseGuard interface {
	AssertNotPaused(ctx context.Context, accountID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// OutboxWriter records notifications for later publication.
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

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
