package entities

import "time"

// Role is a governance capability. Values mirror the roles the multisig
// engine checks through its permission oracle port.
type Role string

const (
	RoleProposer Role = "proposer"
	RoleVoter    Role = "voter"
	RoleExecutor Role = "executor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleProposer, RoleVoter, RoleExecutor:
		return true
	default:
		return false
	}
}

// RoleGrant assigns one role to one member within one governance account.
type RoleGrant struct {
	AccountID string
	Member    string
	Role      Role
	GrantedBy string
	CreatedAt time.Time
}

// PauseState is the account-wide circuit breaker flag.
type PauseState struct {
	AccountID string
	Paused    bool
	UpdatedAt time.Time
}
