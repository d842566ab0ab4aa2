package commands

import (
	"context"

	application "themis/contexts/governance/multisig-service/application"
)

// SetThresholdCommand updates the account's quorum value.
type SetThresholdCommand struct {
	AccountID string
	Threshold int
}

func (uc AccountUseCase) SetThreshold(ctx context.Context, cmd SetThresholdCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Pause.AssertNotPaused(ctx, cmd.AccountID); err != nil {
		return err
	}
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	if err := account.SetThreshold(cmd.Threshold); err != nil {
		logger.Warn("threshold update rejected",
			"event", "governance_threshold_rejected",
			"module", "governance/multisig-service",
			"layer", "application",
			"account_id", account.AccountID,
			"threshold", cmd.Threshold,
			"members_count", account.Members.Count,
			"error", err.Error(),
		)
		return err
	}
	now := uc.now()
	account.UpdatedAt = now
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, "governance.threshold.updated", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"threshold":  cmd.Threshold,
	}); err != nil {
		return err
	}
	logger.Info("threshold updated",
		"event", "governance_threshold_updated",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"threshold", cmd.Threshold,
	)
	return nil
}
