package errors

import "errors"

var (
	ErrAccountNotFound          = errors.New("governance account not found")
	ErrZeroAddress              = errors.New("zero address")
	ErrNotMember                = errors.New("address is not a member")
	ErrNotProposer              = errors.New("member does not hold the proposer role")
	ErrNotVoter                 = errors.New("member does not hold the voter role")
	ErrNotExecutor              = errors.New("member does not hold the executor role")
	ErrAlreadyVoted             = errors.New("member has already voted on this transaction")
	ErrInvalidTransaction       = errors.New("invalid transaction id")
	ErrTransactionNotVotable    = errors.New("transaction is not open for voting")
	ErrTransactionNotExecutable = errors.New("transaction is not executable")
	ErrThresholdTooHigh         = errors.New("threshold exceeds members count")
	ErrThresholdZero            = errors.New("threshold must be greater than zero")
	ErrAccountPaused            = errors.New("account is paused")
	ErrInvalidInput             = errors.New("invalid governance input")
	ErrConflict                 = errors.New("governance state conflict")
)
