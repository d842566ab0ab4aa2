package unit

import (
	"context"
	"errors"
	"testing"

	multisigadapter "themis/contexts/governance/multisig-service/adapters/http"
	multisigerrors "themis/contexts/governance/multisig-service/domain/errors"
	multisightransport "themis/contexts/governance/multisig-service/transport/http"
	accessadapter "themis/contexts/identity-access/access-control-service/adapters/http"
	accesshttp "themis/contexts/identity-access/access-control-service/transport/http"
	"themis/internal/app/bootstrap"
)

type governanceFixture struct {
	multisig  multisigadapter.Handler
	access    accessadapter.Handler
	accountID string
}

func newGovernanceFixture(t *testing.T, members ...string) governanceFixture {
	t.Helper()
	multisigModule, accessModule := bootstrap.BuildInMemoryModules(nil)

	ctx := context.Background()
	account, err := multisigModule.Handler.CreateAccountHandler(ctx)
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	for _, member := range members {
		if err := multisigModule.Handler.AddMemberHandler(ctx, account.AccountID, multisightransport.AddMemberRequest{Member: member}); err != nil {
			t.Fatalf("add member %s failed: %v", member, err)
		}
	}
	return governanceFixture{
		multisig:  multisigModule.Handler,
		access:    accessModule.Handler,
		accountID: account.AccountID,
	}
}

func (f governanceFixture) grant(t *testing.T, member string, roles ...string) {
	t.Helper()
	for _, role := range roles {
		err := f.access.GrantRoleHandler(context.Background(), f.accountID, "root", accesshttp.GrantRoleRequest{
			Member: member,
			Role:   role,
		})
		if err != nil {
			t.Fatalf("grant %s to %s failed: %v", role, member, err)
		}
	}
}

func TestMultisigFullTransactionLifecycle(t *testing.T) {
	f := newGovernanceFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	f.grant(t, "alice", "proposer", "voter")
	f.grant(t, "bob", "voter")
	f.grant(t, "carol", "executor")

	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 2}); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}

	created, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	if created.TransactionID != 1 {
		t.Fatalf("expected first transaction id 1, got %d", created.TransactionID)
	}

	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "alice"); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	tx, err := f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if err != nil {
		t.Fatalf("read transaction failed: %v", err)
	}
	if tx.Status != "initiated" {
		t.Fatalf("one of two approvals must leave the transaction initiated, got %s", tx.Status)
	}

	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "bob"); err != nil {
		t.Fatalf("second approval failed: %v", err)
	}
	tx, _ = f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if tx.Status != "approved" {
		t.Fatalf("expected approved status after quorum, got %s", tx.Status)
	}
	if len(tx.Approved) != 2 {
		t.Fatalf("expected 2 recorded approvals, got %v", tx.Approved)
	}

	if err := f.multisig.ExecuteTransactionHandler(ctx, f.accountID, created.TransactionID, "carol"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	tx, _ = f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if tx.Status != "executed" {
		t.Fatalf("expected executed status, got %s", tx.Status)
	}
	if tx.Executor != "carol" {
		t.Fatalf("expected executor carol, got %s", tx.Executor)
	}
	if tx.ExecutedAt == nil {
		t.Fatalf("expected execution timestamp")
	}
}

func TestMultisigEarlyRejection(t *testing.T) {
	f := newGovernanceFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	f.grant(t, "alice", "proposer", "voter")
	f.grant(t, "bob", "voter")
	f.grant(t, "carol", "voter")

	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 2}); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}
	created, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}

	if err := f.multisig.RejectTransactionHandler(ctx, f.accountID, created.TransactionID, "alice"); err != nil {
		t.Fatalf("first rejection failed: %v", err)
	}
	tx, _ := f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if tx.Status != "initiated" {
		t.Fatalf("quorum still reachable after one rejection, got %s", tx.Status)
	}

	if err := f.multisig.RejectTransactionHandler(ctx, f.accountID, created.TransactionID, "bob"); err != nil {
		t.Fatalf("second rejection failed: %v", err)
	}
	tx, _ = f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if tx.Status != "rejected" {
		t.Fatalf("expected early rejection once quorum became unreachable, got %s", tx.Status)
	}

	err = f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "carol")
	if !errors.Is(err, multisigerrors.ErrTransactionNotVotable) {
		t.Fatalf("votes on a rejected transaction must fail, got %v", err)
	}
}

func TestMultisigVotingGuards(t *testing.T) {
	f := newGovernanceFixture(t, "alice", "bob")
	ctx := context.Background()

	f.grant(t, "alice", "proposer", "voter")

	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 2}); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}

	if _, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "mallory", multisightransport.CreateTransactionRequest{TxType: "transfer"}); !errors.Is(err, multisigerrors.ErrNotMember) {
		t.Fatalf("non-member proposal must fail, got %v", err)
	}
	if _, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "bob", multisightransport.CreateTransactionRequest{TxType: "transfer"}); !errors.Is(err, multisigerrors.ErrNotProposer) {
		t.Fatalf("member without proposer role must fail, got %v", err)
	}

	created, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}

	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "bob"); !errors.Is(err, multisigerrors.ErrNotVoter) {
		t.Fatalf("member without voter role must fail, got %v", err)
	}
	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "alice"); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if err := f.multisig.RejectTransactionHandler(ctx, f.accountID, created.TransactionID, "alice"); !errors.Is(err, multisigerrors.ErrAlreadyVoted) {
		t.Fatalf("second ballot by the same member must fail, got %v", err)
	}

	if err := f.multisig.ExecuteTransactionHandler(ctx, f.accountID, created.TransactionID, "alice"); !errors.Is(err, multisigerrors.ErrTransactionNotExecutable) {
		t.Fatalf("executing an initiated transaction must fail, got %v", err)
	}
	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, 99, "alice"); !errors.Is(err, multisigerrors.ErrInvalidTransaction) {
		t.Fatalf("vote on unknown transaction must fail, got %v", err)
	}
}

func TestMultisigFailedGuardWritesNothing(t *testing.T) {
	f := newGovernanceFixture(t, "alice", "bob")
	ctx := context.Background()

	f.grant(t, "alice", "proposer", "voter")
	f.grant(t, "bob", "voter")

	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 2}); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}
	created, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}

	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "mallory"); !errors.Is(err, multisigerrors.ErrNotMember) {
		t.Fatalf("non-member ballot must fail, got %v", err)
	}
	tx, _ := f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if len(tx.Approved) != 0 || len(tx.Rejected) != 0 {
		t.Fatalf("failed guard must not record a ballot: approved=%v rejected=%v", tx.Approved, tx.Rejected)
	}

	// A failed dedup check must not keep the duplicate ballot either.
	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "bob"); err != nil {
		t.Fatalf("approval failed: %v", err)
	}
	if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, "bob"); !errors.Is(err, multisigerrors.ErrAlreadyVoted) {
		t.Fatalf("duplicate ballot must fail, got %v", err)
	}
	tx, _ = f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if len(tx.Approved) != 1 {
		t.Fatalf("duplicate ballot leaked into the approved list: %v", tx.Approved)
	}
}

func TestMultisigThresholdRules(t *testing.T) {
	f := newGovernanceFixture(t, "alice", "bob")
	ctx := context.Background()

	f.grant(t, "alice", "proposer", "voter")
	f.grant(t, "bob", "voter")

	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 0}); !errors.Is(err, multisigerrors.ErrThresholdZero) {
		t.Fatalf("threshold zero must be rejected, got %v", err)
	}
	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 3}); !errors.Is(err, multisigerrors.ErrThresholdTooHigh) {
		t.Fatalf("threshold above member count must be rejected, got %v", err)
	}

	// With no threshold configured, approvals accumulate but never resolve.
	created, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"})
	if err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
	for _, voter := range []string{"alice", "bob"} {
		if err := f.multisig.ApproveTransactionHandler(ctx, f.accountID, created.TransactionID, voter); err != nil {
			t.Fatalf("approval by %s failed: %v", voter, err)
		}
	}
	tx, _ := f.multisig.TransactionHandler(ctx, f.accountID, created.TransactionID)
	if tx.Status != "initiated" {
		t.Fatalf("unconfigured threshold must never approve, got %s", tx.Status)
	}

	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 2}); err != nil {
		t.Fatalf("set threshold failed: %v", err)
	}
	snapshot, err := f.multisig.ThresholdHandler(ctx, f.accountID)
	if err != nil {
		t.Fatalf("read threshold failed: %v", err)
	}
	if snapshot.Threshold != 2 || snapshot.MembersCount != 2 {
		t.Fatalf("unexpected threshold snapshot: %+v", snapshot)
	}
}

func TestMultisigPauseBlocksGovernanceButNotRegistry(t *testing.T) {
	f := newGovernanceFixture(t, "alice")
	ctx := context.Background()

	f.grant(t, "alice", "proposer")

	if err := f.access.PauseAccountHandler(ctx, f.accountID, "root"); err != nil {
		t.Fatalf("pause failed: %v", err)
	}

	if _, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"}); !errors.Is(err, multisigerrors.ErrAccountPaused) {
		t.Fatalf("proposal on paused account must fail, got %v", err)
	}
	if err := f.multisig.SetThresholdHandler(ctx, f.accountID, multisightransport.SetThresholdRequest{Threshold: 1}); !errors.Is(err, multisigerrors.ErrAccountPaused) {
		t.Fatalf("threshold update on paused account must fail, got %v", err)
	}

	// Registry maintenance stays available while paused.
	if err := f.multisig.AddMemberHandler(ctx, f.accountID, multisightransport.AddMemberRequest{Member: "bob"}); err != nil {
		t.Fatalf("add member on paused account failed: %v", err)
	}
	if err := f.multisig.RemoveMemberHandler(ctx, f.accountID, "bob"); err != nil {
		t.Fatalf("remove member on paused account failed: %v", err)
	}

	if err := f.access.ResumeAccountHandler(ctx, f.accountID, "root"); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if _, err := f.multisig.CreateTransactionHandler(ctx, f.accountID, "alice", multisightransport.CreateTransactionRequest{TxType: "transfer"}); err != nil {
		t.Fatalf("proposal after resume failed: %v", err)
	}
}

func TestMultisigMembershipAndRoleCounts(t *testing.T) {
	f := newGovernanceFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	f.grant(t, "alice", "voter")
	f.grant(t, "bob", "voter")
	f.grant(t, "carol", "executor")

	members, err := f.multisig.MembersHandler(ctx, f.accountID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if members.Count != 3 {
		t.Fatalf("expected 3 members, got %d", members.Count)
	}

	check, err := f.multisig.IsMemberHandler(ctx, f.accountID, "bob")
	if err != nil {
		t.Fatalf("membership check failed: %v", err)
	}
	if !check.IsMember {
		t.Fatalf("bob must be a member")
	}

	voters, err := f.multisig.RoleCountHandler(ctx, f.accountID, "voter")
	if err != nil {
		t.Fatalf("voter count failed: %v", err)
	}
	if voters.Count != 2 {
		t.Fatalf("expected 2 voters, got %d", voters.Count)
	}
	executors, err := f.multisig.RoleCountHandler(ctx, f.accountID, "executor")
	if err != nil {
		t.Fatalf("executor count failed: %v", err)
	}
	if executors.Count != 1 {
		t.Fatalf("expected 1 executor, got %d", executors.Count)
	}
	if _, err := f.multisig.RoleCountHandler(ctx, f.accountID, "janitor"); !errors.Is(err, multisigerrors.ErrInvalidInput) {
		t.Fatalf("unknown role must be rejected, got %v", err)
	}

	// Removing a member shrinks the eligible voter pool.
	if err := f.multisig.RemoveMemberHandler(ctx, f.accountID, "bob"); err != nil {
		t.Fatalf("remove member failed: %v", err)
	}
	voters, err = f.multisig.RoleCountHandler(ctx, f.accountID, "voter")
	if err != nil {
		t.Fatalf("voter count failed: %v", err)
	}
	if voters.Count != 1 {
		t.Fatalf("expected 1 voter after removal, got %d", voters.Count)
	}
}

func TestMultisigUnknownAccount(t *testing.T) {
	multisigModule, _ := bootstrap.BuildInMemoryModules(nil)
	ctx := context.Background()

	if _, err := multisigModule.Handler.MembersHandler(ctx, "missing"); !errors.Is(err, multisigerrors.ErrAccountNotFound) {
		t.Fatalf("expected account-not-found, got %v", err)
	}
	err := multisigModule.Handler.AddMemberHandler(ctx, "missing", multisightransport.AddMemberRequest{Member: "alice"})
	if !errors.Is(err, multisigerrors.ErrAccountNotFound) {
		t.Fatalf("expected account-not-found, got %v", err)
	}
}
