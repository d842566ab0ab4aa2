package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"themis/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "themis/contexts/identity-access/access-control-service/domain/errors"
	"themis/contexts/identity-access/access-control-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveGrant(ctx context.Context, grant entities.RoleGrant) error {
	row := grantModel{
		AccountID: strings.TrimSpace(grant.AccountID),
		Member:    strings.TrimSpace(grant.Member),
		Role:      string(grant.Role),
		GrantedBy: strings.TrimSpace(grant.GrantedBy),
		CreatedAt: grant.CreatedAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "member"}, {Name: "role"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return r.logError("access_repo_save_grant_failed", err,
			"account_id", row.AccountID,
			"member", row.Member,
			"role", row.Role,
		)
	}
	return nil
}

func (r *Repository) DeleteGrant(ctx context.Context, accountID string, member string, role entities.Role) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Where("member = ?", strings.TrimSpace(member)).
		Where("role = ?", string(role)).
		Delete(&grantModel{})
	if result.Error != nil {
		return r.logError("access_repo_delete_grant_failed", result.Error,
			"account_id", strings.TrimSpace(accountID),
			"member", strings.TrimSpace(member),
			"role", string(role),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrGrantNotFound
	}
	return nil
}

func (r *Repository) HasGrant(ctx context.Context, accountID string, member string, role entities.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&grantModel{}).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Where("member = ?", strings.TrimSpace(member)).
		Where("role = ?", string(role)).
		Count(&count).Error
	if err != nil {
		return false, r.logError("access_repo_has_grant_failed", err,
			"account_id", strings.TrimSpace(accountID),
			"member", strings.TrimSpace(member),
			"role", string(role),
		)
	}
	return count > 0, nil
}

func (r *Repository) ListGrants(ctx context.Context, accountID string, member string) ([]entities.RoleGrant, error) {
	var rows []grantModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		Where("member = ?", strings.TrimSpace(member)).
		Order("role ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("access_repo_list_grants_failed", err,
			"account_id", strings.TrimSpace(accountID),
			"member", strings.TrimSpace(member),
		)
	}
	items := make([]entities.RoleGrant, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.RoleGrant{
			AccountID: row.AccountID,
			Member:    row.Member,
			Role:      entities.Role(row.Role),
			GrantedBy: row.GrantedBy,
			CreatedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) SetPaused(ctx context.Context, state entities.PauseState) error {
	row := pauseModel{
		AccountID: strings.TrimSpace(state.AccountID),
		Paused:    state.Paused,
		UpdatedAt: state.UpdatedAt.UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"paused":     row.Paused,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("access_repo_set_paused_failed", err, "account_id", row.AccountID)
	}
	return nil
}

func (r *Repository) IsPaused(ctx context.Context, accountID string) (bool, error) {
	var row pauseModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, r.logError("access_repo_is_paused_failed", err, "account_id", strings.TrimSpace(accountID))
	}
	return row.Paused, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("access_repo_append_outbox_failed", err, "outbox_id", row.OutboxID)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("access_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	sentAt = sentAt.UTC()
	result := r.db.WithContext(ctx).Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": &sentAt,
		})
	if result.Error != nil {
		return r.logError("access_repo_mark_outbox_failed", result.Error, "outbox_id", outboxID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/access-control-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("access control postgres operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.GrantRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
