package commands

import (
	"encoding/json"
	"time"

	"themis/contexts/identity-access/access-control-service/ports"
)

func newAccessEnvelope(
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
		SourceService:    "access-control-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "account_id",
		PartitionKey:     accountID,
		Data:             payload,
	}, nil
}
