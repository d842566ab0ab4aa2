package commands

import (
	"context"
	"strings"

	application "themis/contexts/governance/multisig-service/application"
	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
)

// CreateTransactionCommand proposes a new action for the account.
type CreateTransactionCommand struct {
	AccountID string
	TxType    string
	Proposer  entities.Address
}

// ExecuteTransactionCommand finalizes an approved transaction.
type ExecuteTransactionCommand struct {
	AccountID     string
	TransactionID uint64
	Executor      entities.Address
}

func (uc AccountUseCase) CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (uint64, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Pause.AssertNotPaused(ctx, cmd.AccountID); err != nil {
		return 0, err
	}
	if strings.TrimSpace(cmd.TxType) == "" || cmd.Proposer.IsZero() {
		return 0, domainerrors.ErrInvalidInput
	}
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return 0, err
	}
	if !account.IsMember(cmd.Proposer) {
		return 0, domainerrors.ErrNotMember
	}
	allowed, err := uc.Permissions.HasPermission(ctx, account.AccountID, cmd.Proposer, entities.RoleProposer)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, domainerrors.ErrNotProposer
	}

	now := uc.now()
	id := account.AppendTransaction(strings.TrimSpace(cmd.TxType), cmd.Proposer, now)
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return 0, err
	}
	if err := uc.appendEvent(ctx, "governance.transaction.created", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"tx_id":      id,
		"tx_type":    strings.TrimSpace(cmd.TxType),
		"proposer":   string(cmd.Proposer),
	}); err != nil {
		return 0, err
	}
	logger.Info("transaction created",
		"event", "governance_transaction_created",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"tx_id", id,
		"tx_type", strings.TrimSpace(cmd.TxType),
		"proposer", string(cmd.Proposer),
	)
	return id, nil
}

// ExecuteTransaction validates id, status, membership, and the executor role
// in that fixed order, then records executor and execution time.
func (uc AccountUseCase) ExecuteTransaction(ctx context.Context, cmd ExecuteTransactionCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Pause.AssertNotPaused(ctx, cmd.AccountID); err != nil {
		return err
	}
	account, err := uc.loadAccount(ctx, cmd.AccountID)
	if err != nil {
		return err
	}
	tx, err := account.Transaction(cmd.TransactionID)
	if err != nil {
		return err
	}
	if tx.Status != entities.StatusApproved {
		return domainerrors.ErrTransactionNotExecutable
	}
	if !account.IsMember(cmd.Executor) {
		return domainerrors.ErrNotMember
	}
	allowed, err := uc.Permissions.HasPermission(ctx, account.AccountID, cmd.Executor, entities.RoleExecutor)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrNotExecutor
	}

	now := uc.now()
	if err := account.MarkExecuted(cmd.TransactionID, cmd.Executor, now); err != nil {
		return err
	}
	if err := uc.Accounts.SaveAccount(ctx, account); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, "governance.transaction.executed", account.AccountID, now, map[string]any{
		"account_id": account.AccountID,
		"tx_id":      cmd.TransactionID,
		"executor":   string(cmd.Executor),
	}); err != nil {
		return err
	}
	logger.Info("transaction executed",
		"event", "governance_transaction_executed",
		"module", "governance/multisig-service",
		"layer", "application",
		"account_id", account.AccountID,
		"tx_id", cmd.TransactionID,
		"executor", string(cmd.Executor),
	)
	return nil
}
