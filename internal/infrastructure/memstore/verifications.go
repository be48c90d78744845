package memstore

import (
	"sync"
	"time"

	"github.com/go-approvals-api/internal/domain"
	"github.com/go-approvals-api/internal/pkg/id"
)

// VerificationStore is the in-process table of approval requests, keyed by
// correlation id. All access goes through one mutex; the table stays small
// (records live at most one TTL) so finer striping buys nothing.
//
// Expiry is enforced lazily on every read: Get and Transition treat a
// record older than the TTL as absent even before Sweep has removed it.
type VerificationStore struct {
	mu   sync.Mutex
	recs map[string]*domain.Verification
	ttl  time.Duration
	now  func() time.Time // swapped out in tests
}

func NewVerificationStore(ttl time.Duration) *VerificationStore {
	return &VerificationStore{
		recs: make(map[string]*domain.Verification),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Create inserts a pending record under a fresh ULID and returns a copy.
// Ids are never reused: ULIDs are unique per (timestamp, entropy) pair.
func (s *VerificationStore) Create(paymentMethodID, userID, code, phone string) domain.Verification {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := &domain.Verification{
		ID:              id.New(),
		Status:          domain.StatusPending,
		PaymentMethodID: paymentMethodID,
		UserID:          userID,
		Code:            code,
		Phone:           phone,
		CreatedAt:       s.now(),
	}
	s.recs[rec.ID] = rec
	return *rec
}

// Get returns a copy of the record and true if it exists and has not
// expired. An expired record is indistinguishable from a missing one.
func (s *VerificationStore) Get(verificationID string) (domain.Verification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[verificationID]
	if !ok || s.expired(rec, s.now()) {
		return domain.Verification{}, false
	}
	return *rec, true
}

// Transition atomically moves the record from pending to the given
// terminal status. Returns false if the record is missing, expired, or
// already terminal — the first caller wins, later ones see false.
func (s *VerificationStore) Transition(verificationID string, to domain.Status) bool {
	if !to.Terminal() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[verificationID]
	if !ok || s.expired(rec, s.now()) || rec.Status != domain.StatusPending {
		return false
	}
	rec.Status = to
	return true
}

// Sweep removes every record older than the TTL, regardless of status.
// Advisory cleanup only: Get/Transition never rely on it for correctness.
func (s *VerificationStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, rec := range s.recs {
		if s.expired(rec, now) {
			delete(s.recs, key)
		}
	}
}

// Len reports the number of physically present records, expired or not.
func (s *VerificationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

func (s *VerificationStore) expired(rec *domain.Verification, now time.Time) bool {
	return now.Sub(rec.CreatedAt) > s.ttl
}
