package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	multisigmemory "themis/contexts/governance/multisig-service/adapters/memory"
	multisigworkers "themis/contexts/governance/multisig-service/application/workers"
	"themis/contexts/governance/multisig-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type capturingPublisher struct {
	published []ports.EventEnvelope
	topics    []string
	failOn    string
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.failOn != "" && topic == p.failOn {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	p.topics = append(p.topics, topic)
	return nil
}

func seedOutbox(t *testing.T, store *multisigmemory.Store, base time.Time, eventTypes ...string) {
	t.Helper()
	for i, eventType := range eventTypes {
		err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
			EventID:      eventType + "-seed",
			EventType:    eventType,
			OccurredAt:   base.Add(time.Duration(i) * time.Second),
			PartitionKey: "account-1",
		})
		if err != nil {
			t.Fatalf("seed outbox %s failed: %v", eventType, err)
		}
	}
}

func TestGovernanceOutboxRelayPublishesAndAcks(t *testing.T) {
	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	store := multisigmemory.NewStore()
	seedOutbox(t, store, now.Add(-time.Minute),
		"governance.transaction.created",
		"governance.transaction.voted",
	)

	publisher := &capturingPublisher{}
	relay := multisigworkers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     fixedClock{now: now},
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	if publisher.topics[0] != "governance.transaction.created" {
		t.Fatalf("events must publish in creation order, got %s first", publisher.topics[0])
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("published rows must be acknowledged, %d still pending", len(pending))
	}

	// A second cycle with nothing pending is a no-op.
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("idle relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("idle cycle must not republish, got %d events", len(publisher.published))
	}
}

func TestGovernanceOutboxRelayStopsOnPublishFailure(t *testing.T) {
	now := time.Date(2026, 8, 23, 11, 0, 0, 0, time.UTC)
	store := multisigmemory.NewStore()
	seedOutbox(t, store, now.Add(-time.Minute),
		"governance.transaction.created",
		"governance.transaction.voted",
	)

	publisher := &capturingPublisher{failOn: "governance.transaction.created"}
	relay := multisigworkers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     fixedClock{now: now},
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected relay to surface the publish failure")
	}
	if len(publisher.published) != 0 {
		t.Fatalf("relay must stop on first failure, got %d published", len(publisher.published))
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("failed rows must stay pending for retry, got %d", len(pending))
	}

	// Once the broker recovers, the retry cycle drains the backlog.
	publisher.failOn = ""
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry relay run failed: %v", err)
	}
	pending, _ = store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("retry must drain the backlog, %d still pending", len(pending))
	}
}

func TestGovernanceOutboxRelayHonorsBatchSize(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	store := multisigmemory.NewStore()
	seedOutbox(t, store, now.Add(-time.Minute),
		"governance.member.added",
		"governance.member.removed",
		"governance.threshold.updated",
	)

	publisher := &capturingPublisher{}
	relay := multisigworkers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		Clock:     fixedClock{now: now},
		BatchSize: 2,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected batch of 2, got %d", len(publisher.published))
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 row left for the next cycle, got %d", len(pending))
	}
}
