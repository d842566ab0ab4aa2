package httpadapter

import (
	"context"
	"log/slog"

	"themis/contexts/identity-access/access-control-service/application/commands"
	"themis/contexts/identity-access/access-control-service/application/queries"
	"themis/contexts/identity-access/access-control-service/domain/entities"
	httptransport "themis/contexts/identity-access/access-control-service/transport/http"
)

// Handler adapts transport DTOs to access-control commands and queries.
type Handler struct {
	Access  commands.AccessUseCase
	Queries queries.AccessQueries
	Logger  *slog.Logger
}

func (h Handler) GrantRoleHandler(ctx context.Context, accountID string, actor string, req httptransport.GrantRoleRequest) error {
	return h.Access.GrantRole(ctx, commands.GrantRoleCommand{
		AccountID: accountID,
		Member:    req.Member,
		Role:      entities.Role(req.Role),
		GrantedBy: actor,
	})
}

func (h Handler) RevokeRoleHandler(ctx context.Context, accountID string, member string, role string) error {
	return h.Access.RevokeRole(ctx, commands.RevokeRoleCommand{
		AccountID: accountID,
		Member:    member,
		Role:      entities.Role(role),
	})
}

func (h Handler) RolesHandler(ctx context.Context, accountID string, member string) (httptransport.RolesResponse, error) {
	grants, err := h.Queries.ListRoles(ctx, accountID, member)
	if err != nil {
		return httptransport.RolesResponse{}, err
	}
	items := make([]httptransport.RoleGrantResponse, 0, len(grants))
	for _, grant := range grants {
		items = append(items, httptransport.RoleGrantResponse{
			AccountID: grant.AccountID,
			Member:    grant.Member,
			Role:      string(grant.Role),
			GrantedBy: grant.GrantedBy,
			CreatedAt: grant.CreatedAt,
		})
	}
	return httptransport.RolesResponse{
		Member: member,
		Roles:  items,
	}, nil
}

func (h Handler) PermissionCheckHandler(ctx context.Context, accountID string, member string, role string) (httptransport.PermissionCheckResponse, error) {
	allowed, err := h.Queries.HasPermission(ctx, accountID, member, entities.Role(role))
	if err != nil {
		return httptransport.PermissionCheckResponse{}, err
	}
	return httptransport.PermissionCheckResponse{
		Member:  member,
		Role:    role,
		Allowed: allowed,
	}, nil
}

func (h Handler) PauseAccountHandler(ctx context.Context, accountID string, actor string) error {
	return h.Access.PauseAccount(ctx, commands.PauseCommand{
		AccountID: accountID,
		ActorID:   actor,
	})
}

func (h Handler) ResumeAccountHandler(ctx context.Context, accountID string, actor string) error {
	return h.Access.ResumeAccount(ctx, commands.PauseCommand{
		AccountID: accountID,
		ActorID:   actor,
	})
}

func (h Handler) PauseStateHandler(ctx context.Context, accountID string) (httptransport.PauseStateResponse, error) {
	paused, err := h.Queries.IsPaused(ctx, accountID)
	if err != nil {
		return httptransport.PauseStateResponse{}, err
	}
	return httptransport.PauseStateResponse{
		AccountID: accountID,
		Paused:    paused,
	}, nil
}
