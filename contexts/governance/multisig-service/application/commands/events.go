package commands

import (
	"encoding/json"
	"time"

	"themis/contexts/governance/multisig-service/ports"
)

// newGovernanceEnvelope builds canonical envelopes for command-side events.
// Events are partitioned by account so per-account consumers see them in
// emission order.
func newGovernanceEnvelope(
	eventID string,
	eventType string,
	accountID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "multisig-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "account_id",
		PartitionKey:     accountID,
		Data:             payload,
	}, nil
}
