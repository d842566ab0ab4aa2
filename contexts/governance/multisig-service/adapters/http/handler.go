package httpadapter

import (
	"context"
	"log/slog"

	"themis/contexts/governance/multisig-service/application/commands"
	"themis/contexts/governance/multisig-service/application/queries"
	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
	httptransport "themis/contexts/governance/multisig-service/transport/http"
)

// Handler adapts transport DTOs to application commands and queries. The
// caller identity arrives as a trusted header value resolved by the server.
type Handler struct {
	Accounts commands.AccountUseCase
	Queries  queries.AccountQueries
	Logger   *slog.Logger
}

func (h Handler) CreateAccountHandler(ctx context.Context) (httptransport.AccountResponse, error) {
	account, err := h.Accounts.CreateAccount(ctx)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	return httptransport.AccountResponse{
		AccountID:    account.AccountID,
		Threshold:    account.Threshold,
		MembersCount: account.Members.Count,
		CreatedAt:    account.CreatedAt,
	}, nil
}

func (h Handler) AddMemberHandler(ctx context.Context, accountID string, req httptransport.AddMemberRequest) error {
	return h.Accounts.AddMember(ctx, commands.AddMemberCommand{
		AccountID: accountID,
		Member:    entities.Address(req.Member),
	})
}

func (h Handler) RemoveMemberHandler(ctx context.Context, accountID string, member string) error {
	return h.Accounts.RemoveMember(ctx, commands.RemoveMemberCommand{
		AccountID: accountID,
		Member:    entities.Address(member),
	})
}

func (h Handler) MembersHandler(ctx context.Context, accountID string) (httptransport.MembersResponse, error) {
	members, err := h.Queries.Members(ctx, accountID)
	if err != nil {
		return httptransport.MembersResponse{}, err
	}
	items := make([]string, 0, len(members))
	for _, member := range members {
		items = append(items, string(member))
	}
	return httptransport.MembersResponse{
		Members: items,
		Count:   len(items),
	}, nil
}

func (h Handler) IsMemberHandler(ctx context.Context, accountID string, member string) (httptransport.MemberCheckResponse, error) {
	isMember, err := h.Queries.IsMember(ctx, accountID, entities.Address(member))
	if err != nil {
		return httptransport.MemberCheckResponse{}, err
	}
	return httptransport.MemberCheckResponse{
		Member:   member,
		IsMember: isMember,
	}, nil
}

func (h Handler) SetThresholdHandler(ctx context.Context, accountID string, req httptransport.SetThresholdRequest) error {
	return h.Accounts.SetThreshold(ctx, commands.SetThresholdCommand{
		AccountID: accountID,
		Threshold: req.Threshold,
	})
}

func (h Handler) ThresholdHandler(ctx context.Context, accountID string) (httptransport.ThresholdResponse, error) {
	snapshot, err := h.Queries.Threshold(ctx, accountID)
	if err != nil {
		return httptransport.ThresholdResponse{}, err
	}
	return httptransport.ThresholdResponse{
		Threshold:    snapshot.Threshold,
		MembersCount: snapshot.MembersCount,
	}, nil
}

func (h Handler) CreateTransactionHandler(
	ctx context.Context,
	accountID string,
	proposer string,
	req httptransport.CreateTransactionRequest,
) (httptransport.CreateTransactionResponse, error) {
	id, err := h.Accounts.CreateTransaction(ctx, commands.CreateTransactionCommand{
		AccountID: accountID,
		TxType:    req.TxType,
		Proposer:  entities.Address(proposer),
	})
	if err != nil {
		return httptransport.CreateTransactionResponse{}, err
	}
	return httptransport.CreateTransactionResponse{TransactionID: id}, nil
}

func (h Handler) TransactionHandler(ctx context.Context, accountID string, transactionID uint64) (httptransport.TransactionResponse, error) {
	tx, err := h.Queries.Transaction(ctx, accountID, transactionID)
	if err != nil {
		return httptransport.TransactionResponse{}, err
	}
	return httptransport.TransactionResponse{
		TransactionID: tx.ID,
		TxType:        tx.TxType,
		Status:        string(tx.Status),
		Proposer:      string(tx.Proposer),
		Executor:      string(tx.Executor),
		Approved:      addressStrings(tx.Approved),
		Rejected:      addressStrings(tx.Rejected),
		CreatedAt:     tx.CreatedAt,
		ExecutedAt:    tx.ExecutedAt,
	}, nil
}

func (h Handler) ApproveTransactionHandler(ctx context.Context, accountID string, transactionID uint64, voter string) error {
	return h.Accounts.ApproveTransaction(ctx, commands.VoteCommand{
		AccountID:     accountID,
		TransactionID: transactionID,
		Voter:         entities.Address(voter),
	})
}

func (h Handler) RejectTransactionHandler(ctx context.Context, accountID string, transactionID uint64, voter string) error {
	return h.Accounts.RejectTransaction(ctx, commands.VoteCommand{
		AccountID:     accountID,
		TransactionID: transactionID,
		Voter:         entities.Address(voter),
	})
}

func (h Handler) ExecuteTransactionHandler(ctx context.Context, accountID string, transactionID uint64, executor string) error {
	return h.Accounts.ExecuteTransaction(ctx, commands.ExecuteTransactionCommand{
		AccountID:     accountID,
		TransactionID: transactionID,
		Executor:      entities.Address(executor),
	})
}

func (h Handler) RoleCountHandler(ctx context.Context, accountID string, role string) (httptransport.RoleCountResponse, error) {
	var (
		count int
		err   error
	)
	switch entities.Role(role) {
	case entities.RoleVoter:
		count, err = h.Queries.NumberOfVoters(ctx, accountID)
	case entities.RoleProposer:
		count, err = h.Queries.NumberOfProposers(ctx, accountID)
	case entities.RoleExecutor:
		count, err = h.Queries.NumberOfExecutors(ctx, accountID)
	default:
		return httptransport.RoleCountResponse{}, domainerrors.ErrInvalidInput
	}
	if err != nil {
		return httptransport.RoleCountResponse{}, err
	}
	return httptransport.RoleCountResponse{Role: role, Count: count}, nil
}

func addressStrings(addresses []entities.Address) []string {
	items := make([]string, 0, len(addresses))
	for _, address := range addresses {
		items = append(items, string(address))
	}
	return items
}
