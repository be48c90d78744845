package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-approvals-api/internal/application/verification"
	"github.com/go-approvals-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// VerificationHandler handles the client-facing approval endpoints.
type VerificationHandler struct {
	svc                 verification.Service
	pollIntervalSeconds int
}

func NewVerificationHandler(svc verification.Service, pollIntervalSeconds int) *VerificationHandler {
	return &VerificationHandler{svc: svc, pollIntervalSeconds: pollIntervalSeconds}
}

// Create registers an approval request and returns its correlation id
// immediately; the operator prompt is dispatched in the background.
func (h *VerificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req verification.RequestInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := h.svc.Request(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, VerificationEnvelope{
		ID:                  id,
		Status:              domain.StatusPending,
		PollIntervalSeconds: h.pollIntervalSeconds,
	})
}

// Status is the polling endpoint. Expired requests are plain 404s.
func (h *VerificationHandler) Status(w http.ResponseWriter, r *http.Request) {
	verificationID := chi.URLParam(r, "id")
	st, err := h.svc.Status(r.Context(), verificationID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerificationEnvelope{ID: verificationID, Status: st})
}
