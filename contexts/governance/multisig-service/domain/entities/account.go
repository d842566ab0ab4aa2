package entities

import (
	"time"

	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
)

// Account is one independent governance aggregate: a member registry, a
// quorum threshold, and an append-only transaction store with per-member
// vote records. Accounts share no state with each other.
type Account struct {
	AccountID    string
	Members      MemberSet
	Threshold    int
	Transactions []Transaction
	Votes        map[VoteKey]bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewAccount(accountID string, now time.Time) Account {
	return Account{
		AccountID: accountID,
		Votes:     make(map[VoteKey]bool),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (a *Account) AddMember(addr Address) error {
	return a.Members.Add(addr)
}

func (a *Account) RemoveMember(addr Address) error {
	return a.Members.Remove(addr)
}

func (a Account) IsMember(addr Address) bool {
	return a.Members.Contains(addr)
}

// SetThreshold stores the quorum value. Zero stays reserved for the
// "not yet configured" state and is rejected here.
func (a *Account) SetThreshold(value int) error {
	if value > a.Members.Count {
		return domainerrors.ErrThresholdTooHigh
	}
	if value == 0 {
		return domainerrors.ErrThresholdZero
	}
	a.Threshold = value
	return nil
}

// AppendTransaction allocates the next id and stores a new initiated record.
// Capability checks happen in the command layer before this is called.
func (a *Account) AppendTransaction(txType string, proposer Address, now time.Time) uint64 {
	id := uint64(len(a.Transactions)) + 1
	a.Transactions = append(a.Transactions, Transaction{
		ID:        id,
		TxType:    txType,
		Status:    StatusInitiated,
		Proposer:  proposer,
		CreatedAt: now.UTC(),
	})
	return id
}

// Transaction returns a value snapshot of the record. The shared validity
// guard lives here: id must be nonzero and within the allocated range.
func (a Account) Transaction(id uint64) (Transaction, error) {
	if id == 0 || id > uint64(len(a.Transactions)) {
		return Transaction{}, domainerrors.ErrInvalidTransaction
	}
	return a.Transactions[id-1].clone(), nil
}

// AssertVotable checks the transaction exists and is still initiated.
func (a Account) AssertVotable(id uint64) error {
	if id == 0 || id > uint64(len(a.Transactions)) {
		return domainerrors.ErrInvalidTransaction
	}
	if a.Transactions[id-1].Status != StatusInitiated {
		return domainerrors.ErrTransactionNotVotable
	}
	return nil
}

func (a Account) HasVoted(id uint64, member Address) bool {
	return a.Votes[VoteKey{TransactionID: id, Member: member}]
}

// RecordApproval marks the member's vote and appends it to the approved list.
// When the approval count reaches a configured threshold the transaction
// transitions to approved; an unset threshold never resolves to approved.
// Reports whether the transition happened.
func (a *Account) RecordApproval(id uint64, voter Address, now time.Time) (bool, error) {
	if err := a.AssertVotable(id); err != nil {
		return false, err
	}
	if a.HasVoted(id, voter) {
		return false, domainerrors.ErrAlreadyVoted
	}
	tx := &a.Transactions[id-1]
	a.Votes[VoteKey{TransactionID: id, Member: voter}] = true
	tx.Approved = append(tx.Approved, voter)
	a.UpdatedAt = now.UTC()
	if a.Threshold > 0 && len(tx.Approved) >= a.Threshold {
		tx.Status = StatusApproved
		return true, nil
	}
	return false, nil
}

// RecordRejection marks the member's vote and appends it to the rejected
// list, then checks whether quorum is still mathematically reachable given
// possibleVoters (current members holding the voter role). If the best case
// of every remaining voter approving falls short of the threshold, the
// transaction transitions to rejected early. Reports whether it did.
func (a *Account) RecordRejection(id uint64, voter Address, possibleVoters int, now time.Time) (bool, error) {
	if err := a.AssertVotable(id); err != nil {
		return false, err
	}
	if a.HasVoted(id, voter) {
		return false, domainerrors.ErrAlreadyVoted
	}
	tx := &a.Transactions[id-1]
	a.Votes[VoteKey{TransactionID: id, Member: voter}] = true
	tx.Rejected = append(tx.Rejected, voter)
	a.UpdatedAt = now.UTC()

	votedSoFar := len(tx.Approved) + len(tx.Rejected)
	maxPossibleApproved := len(tx.Approved) + (possibleVoters - votedSoFar)
	if maxPossibleApproved < a.Threshold {
		tx.Status = StatusRejected
		return true, nil
	}
	return false, nil
}

// MarkExecuted finalizes an approved transaction with the executor identity
// and execution timestamp.
func (a *Account) MarkExecuted(id uint64, executor Address, now time.Time) error {
	if id == 0 || id > uint64(len(a.Transactions)) {
		return domainerrors.ErrInvalidTransaction
	}
	tx := &a.Transactions[id-1]
	if tx.Status != StatusApproved {
		return domainerrors.ErrTransactionNotExecutable
	}
	executedAt := now.UTC()
	tx.Status = StatusExecuted
	tx.Executor = executor
	tx.ExecutedAt = &executedAt
	a.UpdatedAt = executedAt
	return nil
}

// Clone deep-copies the aggregate so stores can hand out snapshots without
// sharing ballot or vote-record storage.
func (a Account) Clone() Account {
	out := a
	out.Members = a.Members.Clone()
	out.Transactions = make([]Transaction, len(a.Transactions))
	for i, tx := range a.Transactions {
		out.Transactions[i] = tx.clone()
	}
	out.Votes = make(map[VoteKey]bool, len(a.Votes))
	for key, voted := range a.Votes {
		out.Votes[key] = voted
	}
	return out
}
