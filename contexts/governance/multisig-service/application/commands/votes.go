package commands

import (
	"context"

	application "themis/contexts/governance/multisig-service/application"
	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
)

// VoteCommand casts one member's ballot on a transaction.
type VoteCommand struct {
	AccountID     string
	TransactionID uint64
	Voter         entities.Address
}

// ApproveTransaction records an approval and transitions the transaction to
// approved once the quorum threshold is reached. A voted notification is
// always recorded, after any approved notification.
func (uc AccountUseCase) ApproveTransaction(ctx context.Context, cmd VoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Pause.AssertNotPaused(ctx, cmd.AccountID); err != nil {
		return err
	}
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	if err := uc.assertCallerCanVote(ctx, account, cmd.TransactionID, cmd.Voter); err != nil {
		logger.Warn("approval rejected by voting guard",
			"event", "governance_approve_guard_failed",
			"module", "governance/multisig-service",
			"layer", "application",
			"account_id", account.AccountID,
			"tx_id", cmd.TransactionID,
			"voter", string(cmd.Voter),
			"error", err.Error(),
		)
		return err
	}

	now := uc.now()
	reachedQuorum, err := account.RecordApproval(cmd.TransactionID, cmd.Voter, now)
	if err != nil {
		return err
	}
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return err
	}
	if reachedQuorum {
		if err := uc.appendEvent(ctx, "governance.transaction.approved", account.AccountID, now, map[string]any{
			"account_id": account.AccountID,
			"tx_id":      cmd.TransactionID,
		}); err != nil {
			return err
		}
	}
	if err := uc.appendEvent(ctx, "governance.transaction.voted", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"tx_id":      cmd.TransactionID,
		"voter":      string(cmd.Voter),
		"support":    true,
	}); err != nil {
		return err
	}
	logger.Info("approval recorded",
		"event", "governance_transaction_approval_recorded",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"tx_id", cmd.TransactionID,
		"voter", string(cmd.Voter),
		"reached_quorum", reachedQuorum,
	)
	return nil
}

// RejectTransaction records a rejection and transitions the transaction to
// rejected as soon as quorum becomes mathematically unreachable, possibly
// well before every eligible voter has voted.
func (uc AccountUseCase) RejectTransaction(ctx context.Context, cmd VoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Pause.AssertNotPaused(ctx, cmd.AccountID); err != nil {
		return err
	}
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	if err := uc.assertCallerCanVote(ctx, account, cmd.TransactionID, cmd.Voter); err != nil {
		logger.Warn("rejection rejected by voting guard",
			"event", "governance_reject_guard_failed",
			"module", "governance/multisig-service",
			"layer", "application",
			"account_id", account.AccountID,
			"tx_id", cmd.TransactionID,
			"voter", string(cmd.Voter),
			"error", err.Error(),
		)
		return err
	}

	possibleVoters, err := uc.countRoleHolders(ctx, account, entities.RoleVoter)
	if err != nil {
		return err
	}
	now := uc.now()
	terminated, err := account.RecordRejection(cmd.TransactionID, cmd.Voter, possibleVoters, now)
	if err != nil {
		return err
	}
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return err
	}
	if terminated {
		if err := uc.appendEvent(ctx, "governance.transaction.rejected", account.AccountID, now, map[string]any{
			"account_id": account.AccountID,
			"tx_id":      cmd.TransactionID,
		}); err != nil {
			return err
		}
	}
	if err := uc.appendEvent(ctx, "governance.transaction.voted", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"tx_id":      cmd.TransactionID,
		"voter":      string(cmd.Voter),
		"support":    false,
	}); err != nil {
		return err
	}
	logger.Info("rejection recorded",
		"event", "governance_transaction_rejection_recorded",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"tx_id", cmd.TransactionID,
		"voter", string(cmd.Voter),
		"terminated", terminated,
		"possible_voters", possibleVoters,
	)
	return nil
}

// assertCallerCanVote is the shared voting guard: transaction validity and
// votability, membership, the voter role, and the one-vote rule, checked in
// that order before anything is written.
func (uc AccountUseCase) assertCallerCanVote(
	ctx context.Context,
	account entities.Account,
	transactionID uint64,
	voter entities.Address,
) error {
	if err := account.AssertVotable(transactionID); err != nil {
		return err
	}
	if !account.IsMember(voter) {
		return domainerrors.ErrNotMember
	}
	allowed, err := uc.Permissions.HasPermission(ctx, account.AccountID, voter, entities.RoleVoter)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNotVoter
	}
	if account.HasVoted(transactionID, voter) {
		return domainerrors.ErrAlreadyVoted
	}
	return nil
}

// countRoleHolders counts registry entries holding the role against one
// registry snapshot. Duplicate registry entries count once each.
func (uc AccountUseCase) countRoleHolders(
	ctx context.Context,
	account entities.Account,
	role entities.Role,
) (int, error) {
	count := 0
	for _, member := range account.Members.List() {
		allowed, err := uc.Permissions.HasPermission(ctx, account.AccountID, member, role)
		if err != nil {
			return 0, err
		}
		if allowed {
			count++
		}
	}
	return count, nil
}
