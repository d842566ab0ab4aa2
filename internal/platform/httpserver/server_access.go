package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accesserrors "themis/contexts/identity-access/access-control-service/domain/errors"
	accesshttp "themis/contexts/identity-access/access-control-service/transport/http"
)

func (s *Server) registerAccessRoutes() {
	s.mux.HandleFunc("POST /api/access/v1/accounts/{account_id}/roles", s.handleGrantRole)
	s.mux.HandleFunc("DELETE /api/access/v1/accounts/{account_id}/members/{member}/roles/{role}", s.handleRevokeRole)
	s.mux.HandleFunc("GET /api/access/v1/accounts/{account_id}/members/{member}/roles", s.handleListRoles)
	s.mux.HandleFunc("GET /api/access/v1/accounts/{account_id}/members/{member}/permissions/{role}", s.handlePermissionCheck)
	s.mux.HandleFunc("POST /api/access/v1/accounts/{account_id}/pause", s.handlePauseAccount)
	s.mux.HandleFunc("POST /api/access/v1/accounts/{account_id}/resume", s.handleResumeAccount)
	s.mux.HandleFunc("GET /api/access/v1/accounts/{account_id}/pause", s.handlePauseState)
}

func (s *Server) handleGrantRole(w http.ResponseWriter, r *http.Request) {
	actor := resolveMemberAddress(r)
	if actor == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_member", "X-Member-Address header is required")
		return
	}

	var req accesshttp.GrantRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccessError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := s.access.Handler.GrantRoleHandler(r.Context(), r.PathValue("account_id"), actor, req); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRevokeRole(w http.ResponseWriter, r *http.Request) {
	err := s.access.Handler.RevokeRoleHandler(
		r.Context(),
		r.PathValue("account_id"),
		r.PathValue("member"),
		r.PathValue("role"),
	)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.RolesHandler(r.Context(), r.PathValue("account_id"), r.PathValue("member"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePermissionCheck(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.PermissionCheckHandler(
		r.Context(),
		r.PathValue("account_id"),
		r.PathValue("member"),
		r.PathValue("role"),
	)
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePauseAccount(w http.ResponseWriter, r *http.Request) {
	actor := resolveMemberAddress(r)
	if actor == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_member", "X-Member-Address header is required")
		return
	}
	if err := s.access.Handler.PauseAccountHandler(r.Context(), r.PathValue("account_id"), actor); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResumeAccount(w http.ResponseWriter, r *http.Request) {
	actor := resolveMemberAddress(r)
	if actor == "" {
		writeAccessError(w, http.StatusUnauthorized, "missing_member", "X-Member-Address header is required")
		return
	}
	if err := s.access.Handler.ResumeAccountHandler(r.Context(), r.PathValue("account_id"), actor); err != nil {
		writeAccessDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePauseState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.access.Handler.PauseStateHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeAccessDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAccessDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesserrors.ErrInvalidInput):
		writeAccessError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, accesserrors.ErrInvalidRole):
		writeAccessError(w, http.StatusUnprocessableEntity, "invalid_role", err.Error())
	case errors.Is(err, accesserrors.ErrGrantNotFound):
		writeAccessError(w, http.StatusNotFound, "grant_not_found", err.Error())
	case errors.Is(err, accesserrors.ErrConflict):
		writeAccessError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeAccessError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccessError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accesshttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
