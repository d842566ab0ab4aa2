package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
	"themis/contexts/governance/multisig-service/ports"
)

func TestStoreCreateAndGetAccount(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	account := entities.NewAccount("account-1", time.Now().UTC())
	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	if err := store.CreateAccount(ctx, account); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("duplicate create must conflict, got %v", err)
	}

	loaded, err := store.GetAccount(ctx, "account-1")
	if err != nil {
		t.Fatalf("get account failed: %v", err)
	}
	if loaded.AccountID != "account-1" {
		t.Fatalf("unexpected account id %q", loaded.AccountID)
	}

	if _, err := store.GetAccount(ctx, "missing"); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestStoreSaveRequiresExistingAccount(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	account := entities.NewAccount("account-1", time.Now().UTC())
	if err := store.SaveAccount(ctx, account); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("save of unknown account must fail, got %v", err)
	}
}

func TestStoreHandsOutSnapshots(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	account := entities.NewAccount("account-1", time.Now().UTC())
	if err := account.AddMember("alice"); err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account failed: %v", err)
	}

	first, err := store.GetAccount(ctx, "account-1")
	if err != nil {
		t.Fatalf("get account failed: %v", err)
	}
	if err := first.AddMember("mallory"); err != nil {
		t.Fatalf("add member on snapshot failed: %v", err)
	}

	second, err := store.GetAccount(ctx, "account-1")
	if err != nil {
		t.Fatalf("get account failed: %v", err)
	}
	if second.IsMember("mallory") {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
}

func TestStoreOutboxLifecycle(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, eventID := range []string{"evt-1", "evt-2"} {
		err := store.AppendOutbox(ctx, ports.EventEnvelope{
			EventID:      eventID,
			EventType:    "governance.member.added",
			OccurredAt:   base.Add(time.Duration(i) * time.Second),
			PartitionKey: "account-1",
		})
		if err != nil {
			t.Fatalf("append outbox %s failed: %v", eventID, err)
		}
	}

	pending, err := store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending rows, got %d", len(pending))
	}
	if pending[0].OutboxID != "evt-1" {
		t.Fatalf("pending rows must be ordered by creation time, got %s first", pending[0].OutboxID)
	}

	if err := store.MarkOutboxSent(ctx, "evt-1", base); err != nil {
		t.Fatalf("mark sent failed: %v", err)
	}
	pending, err = store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].OutboxID != "evt-2" {
		t.Fatalf("expected only evt-2 pending, got %v", pending)
	}

	if err := store.MarkOutboxSent(ctx, "missing", base); !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("ack of unknown row must conflict, got %v", err)
	}
}
