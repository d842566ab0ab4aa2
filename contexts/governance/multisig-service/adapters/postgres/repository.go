package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"themis/contexts/governance/multisig-service/domain/entities"
	domainerrors "themis/contexts/governance/multisig-service/domain/errors"
	"themis/contexts/governance/multisig-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) CreateAccount(ctx context.Context, account entities.Account) error {
	row, _, _, _, _ := accountRows(account)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("governance_repo_create_account_failed", err, "account_id", row.ID)
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	accountID = strings.TrimSpace(accountID)

	var row accountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Account{}, domainerrors.ErrAccountNotFound
		}
		return entities.Account{}, r.logError("governance_repo_get_account_failed", err, "account_id", accountID)
	}

	var members []memberModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("position ASC").
		Find(&members).Error; err != nil {
		return entities.Account{}, r.logError("governance_repo_list_members_failed", err, "account_id", accountID)
	}

	var transactions []transactionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("tx_id ASC").
		Find(&transactions).Error; err != nil {
		return entities.Account{}, r.logError("governance_repo_list_transactions_failed", err, "account_id", accountID)
	}

	var ballots []ballotModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("tx_id ASC, position ASC").
		Find(&ballots).Error; err != nil {
		return entities.Account{}, r.logError("governance_repo_list_ballots_failed", err, "account_id", accountID)
	}

	var votes []voteRecordModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Find(&votes).Error; err != nil {
		return entities.Account{}, r.logError("governance_repo_list_votes_failed", err, "account_id", accountID)
	}

	return assembleAccount(row, members, transactions, ballots, votes), nil
}

// SaveAccount rewrites the whole aggregate inside one database transaction so
// readers never observe a partially-applied command.
func (r *Repository) SaveAccount(ctx context.Context, account entities.Account) error {
	row, members, transactions, ballots, votes := accountRows(account)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&accountModel{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"threshold":  row.Threshold,
				"updated_at": row.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrAccountNotFound
		}

		for _, model := range []any{&memberModel{}, &transactionModel{}, &ballotModel{}, &voteRecordModel{}} {
			if err := tx.Where("account_id = ?", row.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		if len(transactions) > 0 {
			if err := tx.Create(&transactions).Error; err != nil {
				return err
			}
		}
		if len(ballots) > 0 {
			if err := tx.Create(&ballots).Error; err != nil {
				return err
			}
		}
		if len(votes) > 0 {
			if err := tx.Create(&votes).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		return r.logError("governance_repo_save_account_failed", err, "account_id", row.ID)
	}
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := marshalEnvelope(envelope)
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
		return r.logError("governance_repo_append_outbox_failed", err, "outbox_id", row.OutboxID)
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
		return nil, r.logError("governance_repo_list_outbox_failed", err)
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
		return r.logError("governance_repo_mark_outbox_failed", result.Error, "outbox_id", outboxID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/multisig-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("governance postgres operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AccountRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
