package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "themis/contexts/governance/multisig-service/application"
	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
	"themis/contexts/governance/multisig-service/ports"
)

// AccountUseCase orchestrates every mutating governance operation. Each
// command runs its full guard chain against a loaded aggregate snapshot
// before any write, so a failed guard commits nothing.
type AccountUseCase struct {
	Accounts    ports.AccountRepository
	Permissions ports.PermissionOracle
	Pause       ports.PauseGuard
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// CreateAccount allocates an empty governance aggregate.
func (uc AccountUseCase) CreateAccount(ctx context.Context) (entities.Account, error) {
	logger := application.ResolveLogger(uc.Logger)
	accountID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Account{}, err
	}
	now := uc.now()
	account := entities.NewAccount(accountID, now)
	if err := uc.Accounts.CreateAccount(ctx, account); err != nil {
		return entities.Account{}, err
	}
	if err := uc.appendEvent(ctx, "governance.account.created", accountID, now, map[string]any{
		"account_id": accountID,
	}); err != nil {
		return entities.Account{}, err
	}
	logger.Info("governance account created",
		"event", "governance_account_created",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", accountID,
	)
	return account, nil
}

func (uc AccountUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc AccountUseCase) loadAccount(ctx context.Context, accountID string) (entities.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Account{}, domainerrors.ErrInvalidInput
	}
	return uc.Accounts.GetAccount(ctx, accountID)
}

func (uc AccountUseCase) appendEvent(
	ctx context.Context,
	eventType string,
	accountID string,
	occurredAt time.Time,
	data map[string]any,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newGovernanceEnvelope(eventID, eventType, accountID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
