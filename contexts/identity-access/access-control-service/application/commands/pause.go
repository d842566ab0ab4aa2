package commands

import (
	"context"
	"strings"

	application "themis/contexts/identity-access/access-control-service/application"
	"themis/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "themis/contexts/identity-access/access-control-service/domain/errors"
)

// PauseCommand flips the account-wide circuit breaker.
type PauseCommand struct {
	AccountID string
	ActorID   string
}

func (uc AccessUseCase) PauseAccount(ctx context.Context, cmd PauseCommand) error {
	return uc.setPaused(ctx, cmd, true, "access.account.paused", "access_account_paused")
}

func (uc AccessUseCase) ResumeAccount(ctx context.Context, cmd PauseCommand) error {
	return uc.setPaused(ctx, cmd, false, "access.account.resumed", "access_account_resumed")
}

func (uc AccessUseCase) setPaused(
	ctx context.Context,
	cmd PauseCommand,
	paused bool,
	eventType string,
	logEvent string,
) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	if accountID == "" {
		return domainerrors.ErrInvalidInput
	}

	now := uc.now()
	if err := uc.Grants.SetPaused(ctx, entities.PauseState{
		AccountID: accountID,
		Paused:    paused,
		UpdatedAt: now,
	}); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, eventType, accountID, now, map[string]any{
		"account_id": accountID,
		"actor_id":   strings.TrimSpace(cmd.ActorID),
	}); err != nil {
		return err
	}
	logger.Info("account pause state changed",
		"event", logEvent,
		"module", "identity-access/access-control-service",
		"layer", "application",
		"account_id", accountID,
		"paused", paused,
		"actor_id", strings.TrimSpace(cmd.ActorID),
	)
	return nil
}
