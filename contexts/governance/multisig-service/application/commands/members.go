package commands

import (
	"context"
	"strings"

	application "themis/contexts/governance/multisig-service/application"
	"themis/contexts/governance/multisig-service/domain/entities"
)

// AddMemberCommand registers an address in the account's member registry.
type AddMemberCommand struct {
	AccountID string
	Member    entities.Address
}

// RemoveMemberCommand removes the first registry occurrence of an address.
type RemoveMemberCommand struct {
	AccountID string
	Member    entities.Address
}

func (uc AccountUseCase) AddMember(ctx context.Context, cmd AddMemberCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	if err := account.AddMember(cmd.Member); err != nil {
		logger.Warn("member add rejected",
			"event", "governance_member_add_rejected",
			"module", "governance/multisig-service",
			"layer", "application",
			"account_id", strings.TrimSpace(cmd.AccountID),
			"error", err.Error(),
		)
		return err
	}
	now := uc.now()
	account.UpdatedAt = now
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, "governance.member.added", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"member":     string(cmd.Member),
	}); err != nil {
		return err
	}
	logger.Info("member added",
		"event", "governance_member_added",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"member", string(cmd.Member),
		"members_count", account.Members.Count,
	)
	return nil
}

func (uc AccountUseCase) RemoveMember(ctx context.Context, cmd RemoveMemberCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	if err := account.RemoveMember(cmd.Member); err != nil {
		logger.Warn("member remove rejected",
			"event", "governance_member_remove_rejected",
			"module", "governance/multisig-service",
			"layer", "application",
			"account_id", strings.TrimSpace(cmd.AccountID),
			"error", err.Error(),
		)
		return err
	}
	now := uc.now()
	account.UpdatedAt = now
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, "governance.member.removed", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"member":     string(cmd.Member),
	}); err != nil {
		return err
	}
	logger.Info("member removed",
		"event", "governance_member_removed",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"member", string(cmd.Member),
		"members_count", account.Members.Count,
	)
	return nil
}
