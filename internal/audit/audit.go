// Package audit records the compliance trail of marketplace activity.
// Entries are retained for seven years and never updated or deleted.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RetentionYears is the minimum time audit entries must be kept.
const RetentionYears = 7

// Event types emitted by the transaction core.
const (
	EventOfferMade         = "OFFER_MADE"
	EventOfferAccepted     = "OFFER_ACCEPTED"
	EventOfferRejected     = "OFFER_REJECTED"
	EventOfferWithdrawn    = "OFFER_WITHDRAWN"
	EventDepositPaid       = "DEPOSIT_PAID"
	EventConditionResolved = "CONDITION_RESOLVED"
	EventCompleted         = "TRANSACTION_COMPLETED"
	EventCancelled         = "TRANSACTION_CANCELLED"
	EventFailed            = "TRANSACTION_FAILED"
	EventTermsAccepted     = "TERMS_ACCEPTED"
	EventProvinceAcked     = "PROVINCE_ACKNOWLEDGED"
)

// complianceRelevant marks the event types regulators may ask for.
var complianceRelevant = map[string]bool{
	EventOfferMade:     true,
	EventOfferAccepted: true,
	EventDepositPaid:   true,
	EventCompleted:     true,
	EventTermsAccepted: true,
	EventProvinceAcked: true,
}

// Entry is one audit record.
type Entry struct {
	ID                 uuid.UUID
	EventType          string
	ActorID            uuid.UUID
	TargetType         string
	TargetID           uuid.UUID
	Description        string
	Details            map[string]any
	ComplianceRelevant bool
	CreatedAt          time.Time
}

type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Log persists an audit entry, stamping the compliance flag from the event
// type. Callers treat failures as best-effort.
func (s *Service) Log(ctx context.Context, e Entry) error {
	e.ComplianceRelevant = complianceRelevant[e.EventType]
	return s.repo.CreateEntry(ctx, &e)
}
