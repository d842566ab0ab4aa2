package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GrantRoleRequest struct {
	Member string `json:"member"`
	Role   string `json:"role"`
}

type RoleGrantResponse struct {
	AccountID string    `json:"account_id"`
	Member    string    `json:"member"`
	Role      string    `json:"role"`
	GrantedBy string    `json:"granted_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RolesResponse struct {
	Member string              `json:"member"`
	Roles  []RoleGrantResponse `json:"roles"`
}

type PermissionCheckResponse struct {
	Member  string `json:"member"`
	Role    string `json:"role"`
	Allowed bool   `json:"allowed"`
}

type PauseStateResponse struct {
	AccountID string `json:"account_id"`
	Paused    bool   `json:"paused"`
}
