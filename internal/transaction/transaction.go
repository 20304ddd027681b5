package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/fees"
)

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrUnauthorized      = errors.New("caller is not authorized for this transaction")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidOperation  = errors.New("operation not allowed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("transaction was modified concurrently")
)

// Type distinguishes purchases from rentals.
type Type string

const (
	TypeSale Type = "sale"
	TypeRent Type = "rent"
)

// Status is the negotiation lifecycle state.
type Status string

const (
	StatusOfferMade        Status = "offer_made"
	StatusOfferAccepted    Status = "offer_accepted"
	StatusOfferRejected    Status = "offer_rejected"
	StatusConditionsWaived Status = "conditions_waived"
	StatusDepositPaid      Status = "deposit_paid"
	StatusInProgress       Status = "in_progress"
	StatusClosing          Status = "closing"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
	StatusFailed           Status = "failed"
)

// transitions is the full state machine. Cancellation and failure are legal
// from every non-terminal state; completion is legal anywhere between
// acceptance and closing. Offers without conditions may skip conditions_waived.
var transitions = map[Status][]Status{
	StatusOfferMade:        {StatusOfferAccepted, StatusOfferRejected, StatusCancelled, StatusFailed},
	StatusOfferAccepted:    {StatusConditionsWaived, StatusDepositPaid, StatusCompleted, StatusCancelled, StatusFailed},
	StatusConditionsWaived: {StatusDepositPaid, StatusCompleted, StatusCancelled, StatusFailed},
	StatusDepositPaid:      {StatusInProgress, StatusCompleted, StatusCancelled, StatusFailed},
	StatusInProgress:       {StatusClosing, StatusCompleted, StatusCancelled, StatusFailed},
	StatusClosing:          {StatusCompleted, StatusCancelled, StatusFailed},
	StatusOfferRejected:    nil,
	StatusCompleted:        nil,
	StatusCancelled:        nil,
	StatusFailed:           nil,
}

// CanTransition reports whether the state machine allows moving from one
// status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Terminal reports whether s admits no further transitions. Terminal
// transactions are retained indefinitely for compliance.
func (s Status) Terminal() bool {
	next, known := transitions[s]
	return known && len(next) == 0
}

// ConditionType classifies offer contingencies.
type ConditionType string

const (
	ConditionFinancing      ConditionType = "financing"
	ConditionInspection     ConditionType = "inspection"
	ConditionSaleOfProperty ConditionType = "sale_of_property"
	ConditionOther          ConditionType = "other"
)

// ConditionStatus tracks one contingency; each moves independently from
// pending to exactly one resolution.
type ConditionStatus string

const (
	ConditionPending   ConditionStatus = "pending"
	ConditionWaived    ConditionStatus = "waived"
	ConditionFulfilled ConditionStatus = "fulfilled"
	ConditionFailed    ConditionStatus = "failed"
)

// Condition is one contingency attached to the offer.
type Condition struct {
	ID          uuid.UUID       `json:"id"`
	Type        ConditionType   `json:"type"`
	Description string          `json:"description"`
	Status      ConditionStatus `json:"status"`
	Deadline    *time.Time      `json:"deadline,omitempty"`
	FulfilledAt *time.Time      `json:"fulfilled_at,omitempty"`
}

// Resolved reports whether the condition no longer blocks completion.
func (c Condition) Resolved() bool {
	return c.Status == ConditionWaived || c.Status == ConditionFulfilled
}

// ComplianceStatus summarizes the transaction's regulatory checklist.
type ComplianceStatus string

const (
	ComplianceNotStarted   ComplianceStatus = "not_started"
	ComplianceInProgress   ComplianceStatus = "in_progress"
	ComplianceCompleted    ComplianceStatus = "completed"
	ComplianceNonCompliant ComplianceStatus = "non_compliant"
)

// ComplianceCheck is one provincial requirement and its completion state.
type ComplianceCheck struct {
	Requirement string     `json:"requirement"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Party identifies who owes a platform fee.
type Party string

const (
	PartySeller Party = "seller"
	PartyBuyer  Party = "buyer"
	PartyBoth   Party = "both"
)

// FeeItem is a single charge and its payment state.
type FeeItem struct {
	AmountCents int64      `json:"amount_cents"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// SuccessFee is the completion-contingent charge. Recalculated once against
// the final price when the transaction completes.
type SuccessFee struct {
	AmountCents int64      `json:"amount_cents"`
	Percentage  float64    `json:"percentage"`
	Calculated  bool       `json:"calculated"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// PlatformFees is the fee breakdown frozen onto the transaction at offer
// time. Later fee-policy changes never rewrite it.
type PlatformFees struct {
	ListingFee FeeItem    `json:"listing_fee"`
	SuccessFee SuccessFee `json:"success_fee"`
	TotalCents int64      `json:"total_cents"`
	Model      fees.Model `json:"model"`
	PayableBy  Party      `json:"payable_by"`
}

// StatusEntry is one append-only audit record of a status change.
type StatusEntry struct {
	Status    Status    `json:"status"`
	ChangedBy uuid.UUID `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Reason    string    `json:"reason"`
}

// Message is one entry of the buyer-seller thread scoped to the transaction.
type Message struct {
	ID     uuid.UUID `json:"id"`
	From   uuid.UUID `json:"from"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// Transaction is one buyer-seller negotiation over one property. History,
// messages, conditions and fees are embedded so the full negotiation record
// stays atomically co-located with the status.
type Transaction struct {
	ID         uuid.UUID
	BuyerID    uuid.UUID
	SellerID   uuid.UUID
	PropertyID uuid.UUID

	Type   Type
	Status Status

	OfferPriceCents int64
	FinalPriceCents *int64
	DepositCents    int64
	DepositPaid     bool
	DepositPaidAt   *time.Time

	OfferDate           time.Time
	AcceptanceDate      *time.Time
	ClosingDate         *time.Time
	CompletionDate      *time.Time
	CoolingOffPeriodEnd time.Time

	Conditions []Condition

	Province         string
	ComplianceStatus ComplianceStatus
	ComplianceChecks []ComplianceCheck

	Fees PlatformFees

	StatusHistory []StatusEntry
	Messages      []Message

	CancellationReason string
	CancelledAt        *time.Time

	// Version guards every read-modify-write; the store only applies an
	// update when the stored version still matches.
	Version   int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IsParty reports whether id is the buyer or the seller.
func (t *Transaction) IsParty(id uuid.UUID) bool {
	return id == t.BuyerID || id == t.SellerID
}

// ConditionsResolved reports whether every condition has been waived or
// fulfilled. Completion requires this.
func (t *Transaction) ConditionsResolved() bool {
	for _, c := range t.Conditions {
		if !c.Resolved() {
			return false
		}
	}

	return true
}

// setStatus moves the transaction to a new status and appends exactly one
// history entry. Callers validate the transition first.
func (t *Transaction) setStatus(to Status, by uuid.UUID, reason string, now time.Time) {
	t.Status = to
	t.StatusHistory = append(t.StatusHistory, StatusEntry{
		Status:    to,
		ChangedBy: by,
		ChangedAt: now,
		Reason:    reason,
	})
}
