package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	multisigerrors "themis/contexts/governance/multisig-service/domain/errors"
	multisighttp "themis/contexts/governance/multisig-service/transport/http"
)

func (s *Server) registerGovernanceRoutes() {
	s.mux.HandleFunc("POST /api/governance/v1/accounts", s.handleCreateAccount)
	s.mux.HandleFunc("GET /api/governance/v1/accounts/{account_id}/members", s.handleListMembers)
	s.mux.HandleFunc("POST /api/governance/v1/accounts/{account_id}/members", s.handleAddMember)
	s.mux.HandleFunc("GET /api/governance/v1/accounts/{account_id}/members/{member}", s.handleIsMember)
	s.mux.HandleFunc("DELETE /api/governance/v1/accounts/{account_id}/members/{member}", s.handleRemoveMember)
	s.mux.HandleFunc("GET /api/governance/v1/accounts/{account_id}/threshold", s.handleGetThreshold)
	s.mux.HandleFunc("PUT /api/governance/v1/accounts/{account_id}/threshold", s.handleSetThreshold)
	s.mux.HandleFunc("POST /api/governance/v1/accounts/{account_id}/transactions", s.handleCreateTransaction)
	s.mux.HandleFunc("GET /api/governance/v1/accounts/{account_id}/transactions/{tx_id}", s.handleGetTransaction)
	s.mux.HandleFunc("POST /api/governance/v1/accounts/{account_id}/transactions/{tx_id}/approve", s.handleApproveTransaction)
	s.mux.HandleFunc("POST /api/governance/v1/accounts/{account_id}/transactions/{tx_id}/reject", s.handleRejectTransaction)
	s.mux.HandleFunc("POST /api/governance/v1/accounts/{account_id}/transactions/{tx_id}/execute", s.handleExecuteTransaction)
	s.mux.HandleFunc("GET /api/governance/v1/accounts/{account_id}/roles/{role}/count", s.handleRoleCount)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.multisig.Handler.CreateAccountHandler(r.Context())
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.multisig.Handler.MembersHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req multisighttp.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.multisig.Handler.AddMemberHandler(r.Context(), r.PathValue("account_id"), req); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIsMember(w http.ResponseWriter, r *http.Request) {
	resp, err := s.multisig.Handler.IsMemberHandler(r.Context(), r.PathValue("account_id"), r.PathValue("member"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if err := s.multisig.Handler.RemoveMemberHandler(r.Context(), r.PathValue("account_id"), r.PathValue("member")); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetThreshold(w http.ResponseWriter, r *http.Request) {
	resp, err := s.multisig.Handler.ThresholdHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetThreshold(w http.ResponseWriter, r *http.Request) {
	var req multisighttp.SetThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.multisig.Handler.SetThresholdHandler(r.Context(), r.PathValue("account_id"), req); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	proposer := resolveMemberAddress(r)
	if proposer == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_member", "X-Member-Address header is required")
		return
	}

	var req multisighttp.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.multisig.Handler.CreateTransactionHandler(r.Context(), r.PathValue("account_id"), proposer, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txID, ok := parseTransactionID(w, r)
	if !ok {
		return
	}
	resp, err := s.multisig.Handler.TransactionHandler(r.Context(), r.PathValue("account_id"), txID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveTransaction(w http.ResponseWriter, r *http.Request) {
	s.handleVote(w, r, s.multisig.Handler.ApproveTransactionHandler)
}

func (s *Server) handleRejectTransaction(w http.ResponseWriter, r *http.Request) {
	s.handleVote(w, r, s.multisig.Handler.RejectTransactionHandler)
}

func (s *Server) handleVote(
	w http.ResponseWriter,
	r *http.Request,
	vote func(ctx context.Context, accountID string, transactionID uint64, voter string) error,
) {
	voter := resolveMemberAddress(r)
	if voter == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_member", "X-Member-Address header is required")
		return
	}
	txID, ok := parseTransactionID(w, r)
	if !ok {
		return
	}
	if err := vote(r.Context(), r.PathValue("account_id"), txID, voter); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExecuteTransaction(w http.ResponseWriter, r *http.Request) {
	executor := resolveMemberAddress(r)
	if executor == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_member", "X-Member-Address header is required")
		return
	}
	txID, ok := parseTransactionID(w, r)
	if !ok {
		return
	}
	if err := s.multisig.Handler.ExecuteTransactionHandler(r.Context(), r.PathValue("account_id"), txID, executor); err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRoleCount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.multisig.Handler.RoleCountHandler(r.Context(), r.PathValue("account_id"), r.PathValue("role"))
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseTransactionID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	txID, err := strconv.ParseUint(r.PathValue("tx_id"), 10, 64)
	if err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_tx_id", "tx_id must be a positive integer")
		return 0, false
	}
	return txID, true
}

func writeGovernanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, multisigerrors.ErrAccountNotFound):
		writeGovernanceError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, multisigerrors.ErrInvalidTransaction):
		writeGovernanceError(w, http.StatusNotFound, "transaction_not_found", err.Error())
	case errors.Is(err, multisigerrors.ErrZeroAddress),
		errors.Is(err, multisigerrors.ErrInvalidInput):
		writeGovernanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, multisigerrors.ErrNotMember),
		errors.Is(err, multisigerrors.ErrNotProposer),
		errors.Is(err, multisigerrors.ErrNotVoter),
		errors.Is(err, multisigerrors.ErrNotExecutor):
		writeGovernanceError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, multisigerrors.ErrAlreadyVoted),
		errors.Is(err, multisigerrors.ErrTransactionNotVotable),
		errors.Is(err, multisigerrors.ErrTransactionNotExecutable),
		errors.Is(err, multisigerrors.ErrConflict):
		writeGovernanceError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, multisigerrors.ErrThresholdTooHigh),
		errors.Is(err, multisigerrors.ErrThresholdZero):
		writeGovernanceError(w, http.StatusUnprocessableEntity, "invalid_threshold", err.Error())
	case errors.Is(err, multisigerrors.ErrAccountPaused):
		writeGovernanceError(w, http.StatusLocked, "account_paused", err.Error())
	default:
		writeGovernanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGovernanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, multisighttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
