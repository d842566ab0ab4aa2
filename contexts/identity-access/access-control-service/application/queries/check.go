package queries

import (
	"context"
	"strings"

	"themis/contexts/identity-access/access-control-service/domain/entities"
	domainerrors "themis/contexts/identity-access/access-control-service/domain/errors"
	"themis/contexts/identity-access/access-control-service/ports"
)

// AccessQueries answers permission and pause checks. The multisig engine
// consumes these through its oracle/guard ports via the composition root.
type AccessQueries struct {
	Grants ports.GrantRepository
}

func (q AccessQueries) HasPermission(ctx context.Context, accountID string, member string, role entities.Role) (bool, error) {
	accountID = strings.TrimSpace(accountID)
	member = strings.TrimSpace(member)
	if accountID == "" || member == "" {
		return false, domainerrors.ErrInvalidInput
	}
	if !role.Valid() {
		return false, domainerrors.ErrInvalidRole
	}
	return q.Grants.HasGrant(ctx, accountID, member, role)
}

func (q AccessQueries) IsPaused(ctx context.Context, accountID string) (bool, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return false, domainerrors.ErrInvalidInput
	}
	return q.Grants.IsPaused(ctx, accountID)
}

func (q AccessQueries) ListRoles(ctx context.Context, accountID string, member string) ([]entities.RoleGrant, error) {
	accountID = strings.TrimSpace(accountID)
	member = strings.TrimSpace(member)
	if accountID == "" || member == "" {
		return nil, domainerrors.ErrInvalidInput
	}
	return q.Grants.ListGrants(ctx, accountID, member)
}
