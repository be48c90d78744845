package verification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-approvals-api/internal/domain"
	"github.com/go-approvals-api/internal/infrastructure/sns"
	"github.com/go-approvals-api/internal/infrastructure/telegram"
	"github.com/go-approvals-api/internal/pkg/validate"
)

// RequestInput is the client's approval request.
type RequestInput struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	UserID          string `json:"user_id" validate:"required"`
	Code            string `json:"code" validate:"required"`
	Phone           string `json:"phone"`
}

// Store is the verification table the service drives.
type Store interface {
	Create(paymentMethodID, userID, code, phone string) domain.Verification
	Get(verificationID string) (domain.Verification, bool)
	Transition(verificationID string, to domain.Status) bool
}

// PaymentMethodStore is the slice of the record store the service touches:
// a read for the prompt's display label and one idempotent update on
// approval.
type PaymentMethodStore interface {
	Get(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)
	SetVerified(ctx context.Context, paymentMethodID string) error
}

type Service interface {
	Request(ctx context.Context, in RequestInput) (string, error)
	Status(ctx context.Context, verificationID string) (domain.Status, error)
	HandleDecision(ctx context.Context, d domain.Decision) string
}

type service struct {
	store          Store
	paymentMethods PaymentMethodStore
	channel        telegram.Channel
	smsSender      sns.SMSSender
	notifyTimeout  time.Duration
}

type ServiceDeps struct {
	Store          Store
	PaymentMethods PaymentMethodStore
	Channel        telegram.Channel // nil when the bot is not configured
	SMSSender      sns.SMSSender    // nil when SNS is not configured
	NotifyTimeout  time.Duration
}

func NewService(deps ServiceDeps) Service {
	timeout := deps.NotifyTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &service{
		store:          deps.Store,
		paymentMethods: deps.PaymentMethods,
		channel:        deps.Channel,
		smsSender:      deps.SMSSender,
		notifyTimeout:  timeout,
	}
}

// Request validates the input, inserts a pending record and dispatches the
// operator prompt without waiting for it. The id is returned once the
// record exists; a failed or unconfigured prompt only means the record
// expires unapproved.
func (s *service) Request(_ context.Context, in RequestInput) (string, error) {
	if err := validate.Struct(&in); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	rec := s.store.Create(in.PaymentMethodID, in.UserID, in.Code, in.Phone)

	if s.channel == nil {
		slog.Warn("no operator channel configured, verification will expire unapproved", "verification_id", rec.ID)
		return rec.ID, nil
	}
	// The prompt is detached from the request: it gets its own deadline and
	// outlives the HTTP handler that triggered it.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()
		if err := s.channel.SendApprovalPrompt(ctx, rec, s.displayLabel(ctx, rec.PaymentMethodID)); err != nil {
			slog.Warn("approval prompt delivery failed", "verification_id", rec.ID, "err", err)
		}
	}()
	return rec.ID, nil
}

// displayLabel resolves the human-readable name of the payment method for
// the operator prompt. Best-effort: the prompt falls back to the raw id
// when the lookup fails.
func (s *service) displayLabel(ctx context.Context, paymentMethodID string) string {
	if s.paymentMethods == nil {
		return ""
	}
	pm, err := s.paymentMethods.Get(ctx, paymentMethodID)
	if err != nil {
		slog.Warn("payment method lookup failed", "payment_method_id", paymentMethodID, "err", err)
		return ""
	}
	return pm.Label
}

// Status reads the current state. Expired and unknown ids are the same
// absence.
func (s *service) Status(_ context.Context, verificationID string) (domain.Status, error) {
	rec, ok := s.store.Get(verificationID)
	if !ok {
		return "", fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	return rec.Status, nil
}

// HandleDecision applies the operator's verb and returns the ack text for
// the messaging channel. It never returns an error: duplicate, late and
// malformed callbacks are all acknowledged no-ops.
func (s *service) HandleDecision(ctx context.Context, d domain.Decision) string {
	if d.Verb != domain.VerbApprove && d.Verb != domain.VerbDecline {
		return "unrecognized action"
	}
	rec, ok := s.store.Get(d.VerificationID)
	if !ok {
		return "verification not found or expired"
	}
	if !s.store.Transition(d.VerificationID, d.Status()) {
		// Lost the race against another callback (or expiry). No-op.
		if cur, ok := s.store.Get(d.VerificationID); ok {
			return fmt.Sprintf("already %s", cur.Status)
		}
		return "verification not found or expired"
	}
	if d.Verb == domain.VerbApprove {
		// Safe to run more than once; never retried against the store.
		if err := s.paymentMethods.SetVerified(ctx, rec.PaymentMethodID); err != nil {
			slog.Error("verified-flag update failed", "payment_method_id", rec.PaymentMethodID, "err", err)
		}
		if s.smsSender != nil && rec.Phone != "" {
			if err := s.smsSender.SendSMS(ctx, rec.Phone, "Your payment method has been verified."); err != nil {
				slog.Warn("verification SMS failed", "verification_id", rec.ID, "err", err)
			}
		}
	}
	return string(d.Status())
}
