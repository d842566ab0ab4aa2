package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "themis/contexts/identity-access/access-control-service/application"
	"themis/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "themis/contexts/identity-access/access-control-service/domain/errors"
	"themis/contexts/identity-access/access-control-service/ports"
)

// AccessUseCase owns role-grant and pause-switch mutations.
type AccessUseCase struct {
	Grants ports.GrantRepository
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// GrantRoleCommand assigns a role to a member within an account.
type GrantRoleCommand struct {
	AccountID string
	Member    string
	Role      entities.Role
	GrantedBy string
}

// RevokeRoleCommand removes a previously granted role.
type RevokeRoleCommand struct {
	AccountID string
	Member    string
	Role      entities.Role
}

// GrantRole is idempotent: granting an already-held role is a no-op.
func (uc AccessUseCase) GrantRole(ctx context.Context, cmd GrantRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	member := strings.TrimSpace(cmd.Member)
	if accountID == "" || member == "" {
		return domainerrors.ErrInvalidInput
	}
	if !cmd.Role.Valid() {
		return domainerrors.ErrInvalidRole
	}

	held, err := uc.Grants.HasGrant(ctx, accountID, member, cmd.Role)
	if err != nil {
		return err
	}
	if held {
		return nil
	}

	now := uc.now()
	if err := uc.Grants.SaveGrant(ctx, entities.RoleGrant{
		AccountID: accountID,
		Member:    member,
		Role:      cmd.Role,
		GrantedBy: strings.TrimSpace(cmd.GrantedBy),
		CreatedAt: now,
	}); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, "access.role.granted", accountID, now, map[string]any{
		"account_id": accountID,
		"member":     member,
		"role":       string(cmd.Role),
	}); err != nil {
		return err
	}
	logger.Info("role granted",
		"event", "access_role_granted",
		"module", "identity-access/access-control-service",
		"layer", "application",
		"account_id", accountID,
		"member", member,
		"role", string(cmd.Role),
	)
	return nil
}

func (uc AccessUseCase) RevokeRole(ctx context.Context, cmd RevokeRoleCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	member := strings.TrimSpace(cmd.Member)
	if accountID == "" || member == "" {
		return domainerrors.ErrInvalidInput
	}
	if !cmd.Role.Valid() {
		return domainerrors.ErrInvalidRole
	}

	held, err := uc.Grants.HasGrant(ctx, accountID, member, cmd.Role)
	if err != nil {
		return err
	}
	if !held {
		return domainerrors.ErrGrantNotFound
	}

	now := uc.now()
	if err := uc.Grants.DeleteGrant(ctx, accountID, member, cmd.Role); err != nil {
		return err
	}
	if err := uc.appendEvent(ctx, "access.role.revoked", accountID, now, map[string]any{
		"account_id": accountID,
		"member":     member,
		"role":       string(cmd.Role),
	}); err != nil {
		return err
	}
	logger.Info("role revoked",
		"event", "access_role_revoked",
		"module", "identity-access/access-control-service",
		"layer", "application",
		"account_id", accountID,
		"member", member,
		"role", string(cmd.Role),
	)
	return nil
}

func (uc AccessUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc AccessUseCase) appendEvent(
	ctx context.Context,
	eventType string,
	accountID string,
	occurredAt time.Time,
	data map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newAccessEnvelope(eventID, eventType, accountID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
