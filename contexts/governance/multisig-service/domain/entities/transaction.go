package entities

import "time"

type TransactionStatus string

const (
	StatusInitiated TransactionStatus = "initiated"
	StatusApproved  TransactionStatus = "approved"
	StatusRejected  TransactionStatus = "rejected"
	StatusExecuted  TransactionStatus = "executed"
)

// Transaction is one proposed action tracked through its own ballot.
// IDs start at 1; id 0 is reserved and always invalid.
type Transaction struct {
	ID         uint64
	TxType     string
	Status     TransactionStatus
	Proposer   Address
	Executor   Address
	Approved   []Address
	Rejected   []Address
	CreatedAt  time.Time
	ExecutedAt *time.Time
}

func (t Transaction) clone() Transaction {
	out := t
	out.Approved = append([]Address(nil), t.Approved...)
	out.Rejected = append([]Address(nil), t.Rejected...)
	if t.ExecutedAt != nil {
		executedAt := *t.ExecutedAt
		out.ExecutedAt = &executedAt
	}
	return out
}

// VoteKey identifies one member's ballot on one transaction.
type VoteKey struct {
	TransactionID uint64
	Member        Address
}
