package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-approvals-api/internal/application/verification"
	"github.com/go-approvals-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockVerificationService struct{ mock.Mock }

func (m *mockVerificationService) Request(ctx context.Context, in verification.RequestInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockVerificationService) Status(ctx context.Context, verificationID string) (domain.Status, error) {
	args := m.Called(ctx, verificationID)
	st, _ := args.Get(0).(domain.Status)
	return st, args.Error(1)
}

func (m *mockVerificationService) HandleDecision(ctx context.Context, d domain.Decision) string {
	return m.Called(ctx, d).String(0)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// --- Create ---

func TestCreate_ReturnsIDAndPollHint(t *testing.T) {
	svc := &mockVerificationService{}
	svc.On("Request", mock.Anything, verification.RequestInput{
		PaymentMethodID: "pm_1", UserID: "u_1", Code: "482913",
	}).Return("v1", nil)

	h := NewVerificationHandler(svc, 2)
	body := bytes.NewBufferString(`{"payment_method_id":"pm_1","user_id":"u_1","code":"482913"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/verifications", body)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var env VerificationEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "v1", env.ID)
	assert.Equal(t, domain.StatusPending, env.Status)
	assert.Equal(t, 2, env.PollIntervalSeconds)
}

func TestCreate_InvalidBody(t *testing.T) {
	h := NewVerificationHandler(&mockVerificationService{}, 2)
	req := httptest.NewRequest(http.MethodPost, "/v1/verifications", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_MissingField(t *testing.T) {
	svc := &mockVerificationService{}
	svc.On("Request", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("field 'Code' failed 'required': %w", domain.ErrBadRequest))

	h := NewVerificationHandler(svc, 2)
	req := httptest.NewRequest(http.MethodPost, "/v1/verifications",
		bytes.NewBufferString(`{"payment_method_id":"pm_1","user_id":"u_1"}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Status ---

func TestStatus_Found(t *testing.T) {
	svc := &mockVerificationService{}
	svc.On("Status", mock.Anything, "v1").Return(domain.StatusApproved, nil)

	h := NewVerificationHandler(svc, 2)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/v1/verifications/v1", nil), "id", "v1")
	rec := httptest.NewRecorder()

	h.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env VerificationEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, domain.StatusApproved, env.Status)
	assert.Zero(t, env.PollIntervalSeconds)
}

func TestStatus_NotFound(t *testing.T) {
	svc := &mockVerificationService{}
	svc.On("Status", mock.Anything, "gone").
		Return(domain.Status(""), fmt.Errorf("verification not found: %w", domain.ErrNotFound))

	h := NewVerificationHandler(svc, 2)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/v1/verifications/gone", nil), "id", "gone")
	rec := httptest.NewRecorder()

	h.Status(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
