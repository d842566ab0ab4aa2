package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"themis/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "themis/contexts/identity-access/access-control-service/domain/errors"
	"themis/contexts/identity-access/access-control-service/ports"

	"github.com/google/uuid"
)

type grantKey struct {
	accountID string
	member    string
	role      entities.Role
}

type outboxRecord struct {
	message ports.OutboxMessage
	sent    bool
}

type Store struct {
	mu sync.RWMutex

	grants map[grantKey]entities.RoleGrant
	paused map[string]entities.PauseState
	outbox map[string]outboxRecord
}

func NewStore() *Store {
	return &Store{
		grants: make(map[grantKey]entities.RoleGrant),
		paused: make(map[string]entities.PauseState),
		outbox: make(map[string]outboxRecord),
	}
}

func (s *Store) SaveGrant(_ context.Context, grant entities.RoleGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := grantKey{
		accountID: strings.TrimSpace(grant.AccountID),
		member:    strings.TrimSpace(grant.Member),
		role:      grant.Role,
	}
	s.grants[key] = grant
	return nil
}

func (s *Store) DeleteGrant(_ context.Context, accountID string, member string, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := grantKey{
		accountID: strings.TrimSpace(accountID),
		member:    strings.TrimSpace(member),
		role:      role,
	}
	if _, ok := s.grants[key]; !ok {
		return domainerrors.ErrGrantNotFound
	}
	delete(s.grants, key)
	return nil
}

func (s *Store) HasGrant(_ context.Context, accountID string, member string, role entities.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.grants[grantKey{
		accountID: strings.TrimSpace(accountID),
		member:    strings.TrimSpace(member),
		role:      role,
	}]
	return ok, nil
}

func (s *Store) ListGrants(_ context.Context, accountID string, member string) ([]entities.RoleGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.RoleGrant, 0)
	for key, grant := range s.grants {
		if key.accountID == strings.TrimSpace(accountID) && key.member == strings.TrimSpace(member) {
			items = append(items, grant)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Role < items[j].Role
	})
	return items, nil
}

func (s *Store) SetPaused(_ context.Context, state entities.PauseState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused[strings.TrimSpace(state.AccountID)] = state
	return nil
}

func (s *Store) IsPaused(_ context.Context, accountID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.paused[strings.TrimSpace(accountID)]
	if !ok {
		return false, nil
	}
	return state.Paused, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := s.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.sent {
			continue
		}
		items = append(items, row.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.sent = true
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
