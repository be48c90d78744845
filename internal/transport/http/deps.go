package http

import (
	"github.com/go-approvals-api/internal/application/verification"
	"github.com/go-approvals-api/internal/infrastructure/memstore"
	"github.com/go-approvals-api/internal/infrastructure/sns"
	"github.com/go-approvals-api/internal/infrastructure/telegram"
)

// Deps holds all infrastructure dependencies for the router. Channel and
// SMSSender may be nil when the corresponding credentials are missing;
// PaymentMethods is any store satisfying the service's narrow interface.
type Deps struct {
	Store          *memstore.VerificationStore
	PaymentMethods verification.PaymentMethodStore
	Channel        telegram.Channel
	SMSSender      sns.SMSSender
}
