package entities

import (
	"errors"
	"testing"
	"time"

	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
)

func newTestAccount(t *testing.T, members ...Address) Account {
	t.Helper()
	account := NewAccount("account-1", time.Now().UTC())
	for _, member := range members {
		if err := account.AddMember(member); err != nil {
			t.Fatalf("add member %s failed: %v", member, err)
		}
	}
	return account
}

func TestSetThresholdBounds(t *testing.T) {
	account := newTestAccount(t, "alice", "bob", "carol")

	if err := account.SetThreshold(4); !errors.Is(err, domainerrors.ErrThresholdTooHigh) {
		t.Fatalf("expected threshold-too-high error, got %v", err)
	}
	if err := account.SetThreshold(0); !errors.Is(err, domainerrors.ErrThresholdZero) {
		t.Fatalf("expected threshold-zero error, got %v", err)
	}
	if err := account.SetThreshold(3); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}
	if account.Threshold != 3 {
		t.Fatalf("expected threshold 3, got %d", account.Threshold)
	}
}

func TestTransactionIDsStartAtOne(t *testing.T) {
	account := newTestAccount(t, "alice")
	now := time.Now().UTC()

	if id := account.AppendTransaction("transfer", "alice", now); id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}
	if id := account.AppendTransaction("transfer", "alice", now); id != 2 {
		t.Fatalf("expected second id 2, got %d", id)
	}

	if _, err := account.Transaction(0); !errors.Is(err, domainerrors.ErrInvalidTransaction) {
		t.Fatalf("id 0 must be invalid, got %v", err)
	}
	if _, err := account.Transaction(3); !errors.Is(err, domainerrors.ErrInvalidTransaction) {
		t.Fatalf("id past the allocated range must be invalid, got %v", err)
	}
	tx, err := account.Transaction(1)
	if err != nil {
		t.Fatalf("read transaction failed: %v", err)
	}
	if tx.Status != StatusInitiated {
		t.Fatalf("new transaction must start initiated, got %s", tx.Status)
	}
}

func TestRecordApprovalReachesQuorum(t *testing.T) {
	account := newTestAccount(t, "alice", "bob", "carol")
	if err := account.SetThreshold(2); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	reached, err := account.RecordApproval(id, "alice", now)
	if err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	if reached {
		t.Fatalf("one approval must not reach a threshold of two")
	}

	reached, err = account.RecordApproval(id, "bob", now)
	if err != nil {
		t.Fatalf("second approval failed: %v", err)
	}
	if !reached {
		t.Fatalf("second approval must reach the threshold")
	}
	tx, _ := account.Transaction(id)
	if tx.Status != StatusApproved {
		t.Fatalf("expected approved status, got %s", tx.Status)
	}
}

func TestRecordApprovalWithUnsetThresholdNeverApproves(t *testing.T) {
	account := newTestAccount(t, "alice", "bob")
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	for _, voter := range []Address{"alice", "bob"} {
		reached, err := account.RecordApproval(id, voter, now)
		if err != nil {
			t.Fatalf("approval by %s failed: %v", voter, err)
		}
		if reached {
			t.Fatalf("unset threshold must never resolve to approved")
		}
	}
	tx, _ := account.Transaction(id)
	if tx.Status != StatusInitiated {
		t.Fatalf("expected transaction to stay initiated, got %s", tx.Status)
	}
}

func TestRecordApprovalDeduplicatesVoters(t *testing.T) {
	account := newTestAccount(t, "alice", "bob")
	_ = account.SetThreshold(2)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	if _, err := account.RecordApproval(id, "alice", now); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if _, err := account.RecordApproval(id, "alice", now); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already-voted error, got %v", err)
	}
	if _, err := account.RecordRejection(id, "alice", 2, now); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("rejection after approval must hit the one-vote rule, got %v", err)
	}
}

func TestRecordRejectionTerminatesWhenQuorumUnreachable(t *testing.T) {
	// Threshold 2 with three eligible voters: one rejection leaves the best
	// case at 2, a second rejection drops it to 1 and terminates early.
	account := newTestAccount(t, "alice", "bob", "carol")
	_ = account.SetThreshold(2)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	terminated, err := account.RecordRejection(id, "alice", 3, now)
	if err != nil {
		t.Fatalf("first rejection failed: %v", err)
	}
	if terminated {
		t.Fatalf("quorum is still reachable after one rejection")
	}

	terminated, err = account.RecordRejection(id, "bob", 3, now)
	if err != nil {
		t.Fatalf("second rejection failed: %v", err)
	}
	if !terminated {
		t.Fatalf("expected early rejection once quorum became unreachable")
	}
	tx, _ := account.Transaction(id)
	if tx.Status != StatusRejected {
		t.Fatalf("expected rejected status, got %s", tx.Status)
	}
}

func TestRecordRejectionCountsPriorApprovals(t *testing.T) {
	// One approval plus one rejection with threshold 2 and three voters: the
	// remaining voter could still push approvals to 2, so no early exit.
	account := newTestAccount(t, "alice", "bob", "carol")
	_ = account.SetThreshold(2)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	if _, err := account.RecordApproval(id, "alice", now); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	terminated, err := account.RecordRejection(id, "bob", 3, now)
	if err != nil {
		t.Fatalf("rejection failed: %v", err)
	}
	if terminated {
		t.Fatalf("quorum is still reachable, transaction must stay initiated")
	}
	tx, _ := account.Transaction(id)
	if tx.Status != StatusInitiated {
		t.Fatalf("expected initiated status, got %s", tx.Status)
	}
}

func TestTerminalTransactionRejectsFurtherVotes(t *testing.T) {
	account := newTestAccount(t, "alice", "bob", "carol")
	_ = account.SetThreshold(1)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	if _, err := account.RecordApproval(id, "alice", now); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if _, err := account.RecordApproval(id, "bob", now); !errors.Is(err, domainerrors.ErrTransactionNotVotable) {
		t.Fatalf("expected not-votable error on approved transaction, got %v", err)
	}
	if _, err := account.RecordRejection(id, "carol", 3, now); !errors.Is(err, domainerrors.ErrTransactionNotVotable) {
		t.Fatalf("expected not-votable error on approved transaction, got %v", err)
	}
}

func TestMarkExecutedRequiresApprovedStatus(t *testing.T) {
	account := newTestAccount(t, "alice", "bob")
	_ = account.SetThreshold(1)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	if err := account.MarkExecuted(id, "bob", now); !errors.Is(err, domainerrors.ErrTransactionNotExecutable) {
		t.Fatalf("initiated transaction must not execute, got %v", err)
	}

	if _, err := account.RecordApproval(id, "alice", now); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if err := account.MarkExecuted(id, "bob", now); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	tx, _ := account.Transaction(id)
	if tx.Status != StatusExecuted {
		t.Fatalf("expected executed status, got %s", tx.Status)
	}
	if tx.Executor != "bob" {
		t.Fatalf("expected executor bob, got %s", tx.Executor)
	}
	if tx.ExecutedAt == nil {
		t.Fatalf("expected execution timestamp")
	}

	if err := account.MarkExecuted(id, "bob", now); !errors.Is(err, domainerrors.ErrTransactionNotExecutable) {
		t.Fatalf("executed transaction must not execute again, got %v", err)
	}
}

func TestRemovedMemberVotesSurvive(t *testing.T) {
	account := newTestAccount(t, "alice", "bob", "carol")
	_ = account.SetThreshold(2)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	if _, err := account.RecordApproval(id, "alice", now); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if err := account.RemoveMember("alice"); err != nil {
		t.Fatalf("remove member failed: %v", err)
	}

	tx, _ := account.Transaction(id)
	if len(tx.Approved) != 1 || tx.Approved[0] != "alice" {
		t.Fatalf("recorded approval must survive membership removal: %v", tx.Approved)
	}
	if !account.HasVoted(id, "alice") {
		t.Fatalf("vote record must survive membership removal")
	}
}

func TestAccountCloneIsolatesBallots(t *testing.T) {
	account := newTestAccount(t, "alice", "bob")
	_ = account.SetThreshold(2)
	now := time.Now().UTC()
	id := account.AppendTransaction("transfer", "alice", now)

	clone := account.Clone()
	if _, err := clone.RecordApproval(id, "alice", now); err != nil {
		t.Fatalf("approval on clone failed: %v", err)
	}

	if account.HasVoted(id, "alice") {
		t.Fatalf("vote on clone leaked into the original vote records")
	}
	tx, _ := account.Transaction(id)
	if len(tx.Approved) != 0 {
		t.Fatalf("ballot on clone leaked into the original: %v", tx.Approved)
	}
}
