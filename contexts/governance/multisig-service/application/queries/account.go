package queries

import (
	"context"
	"strings"

	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
	"themis/contexts/governance/multisig-service/ports"
)

// AccountQueries answers read-only governance questions. Every query loads
// one aggregate snapshot so compound answers (threshold + members count, role
// tallies) are internally consistent.
type AccountQueries struct {
	Accounts    ports.AccountRepository
	Permissions ports.PermissionOracle
}

// ThresholdSnapshot pairs the quorum value with the members count observed at
// the same instant.
type ThresholdSnapshot struct {
	Threshold    int
	MembersCount int
}

func (q AccountQueries) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	return q.loadAccount(ctx, accountID)
}

func (q AccountQueries) Members(ctx context.Context, accountID string) ([]entities.Address, error) {
	account, err := q.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Members.List(), nil
}

func (q AccountQueries) MembersCount(ctx context.Context, accountID string) (int, error) {
	account, err := q.loadAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Members.Count, nil
}

func (q AccountQueries) IsMember(ctx context.Context, accountID string, member entities.Address) (bool, error) {
	account, err := q.loadAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	return account.IsMember(member), nil
}

func (q AccountQueries) Threshold(ctx context.Context, accountID string) (ThresholdSnapshot, error) {
	account, err := q.loadAccount(ctx, accountID)
	if err != nil {
		return ThresholdSnapshot{}, err
	}
	return ThresholdSnapshot{
		Threshold:    account.Threshold,
		MembersCount: account.Members.Count,
	}, nil
}

func (q AccountQueries) Transaction(ctx context.Context, accountID string, transactionID uint64) (entities.Transaction, error) {
	account, err := q.loadAccount(ctx, accountID)
	if err != nil {
		return entities.Transaction{}, err
	}
	return account.Transaction(transactionID)
}

func (q AccountQueries) NumberOfVoters(ctx context.Context, accountID string) (int, error) {
	return q.countRoleHolders(ctx, accountID, entities.RoleVoter)
}

func (q AccountQueries) NumberOfProposers(ctx context.Context, accountID string) (int, error) {
	return q.countRoleHolders(ctx, accountID, entities.RoleProposer)
}

func (q AccountQueries) NumberOfExecutors(ctx context.Context, accountID string) (int, error) {
	return q.countRoleHolders(ctx, accountID, entities.RoleExecutor)
}

func (q AccountQueries) countRoleHolders(ctx context.Context, accountID string, role entities.Role) (int, error) {
	account, err := q.loadAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, member := range account.Members.List() {
		allowed, err := q.Permissions.HasPermission(ctx, account.AccountID, member, role)
		if err != nil {
			return 0, err
		}
		if allowed {
			count++
		}
	}
	return count, nil
}

func (q AccountQueries) loadAccount(ctx context.Context, accountID string) (entities.Account, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Account{}, domainerrors.ErrInvalidInput
	}
	return q.Accounts.GetAccount(ctx, accountID)
}
