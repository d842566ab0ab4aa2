package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AccountResponse struct {
	AccountID    string    `json:"account_id"`
	Threshold    int       `json:"threshold"`
	MembersCount int       `json:"members_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type AddMemberRequest struct {
	Member string `json:"member"`
}

type MembersResponse struct {
	Members []string `json:"members"`
	Count   int      `json:"count"`
}

type MemberCheckResponse struct {
	Member   string `json:"member"`
	IsMember bool   `json:"is_member"`
}

type SetThresholdRequest struct {
	Threshold int `json:"threshold"`
}

type ThresholdResponse struct {
	Threshold    int `json:"threshold"`
	MembersCount int `json:"members_count"`
}

type CreateTransactionRequest struct {
	TxType string `json:"tx_type"`
}

type CreateTransactionResponse struct {
	TransactionID uint64 `json:"tx_id"`
}

type TransactionResponse struct {
	TransactionID uint64     `json:"tx_id"`
	TxType        string     `json:"tx_type"`
	Status        string     `json:"status"`
	Proposer      string     `json:"proposer"`
	Executor      string     `json:"executor,omitempty"`
	Approved      []string   `json:"approved"`
	Rejected      []string   `json:"rejected"`
	CreatedAt     time.Time  `json:"created_at"`
	ExecutedAt    *time.Time `json:"executed_at,omitempty"`
}

type RoleCountResponse struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}
