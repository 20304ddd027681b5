package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/audit"
	"github.com/maplelisted/maplelisted/internal/compliance"
	"github.com/maplelisted/maplelisted/internal/fees"
	"github.com/maplelisted/maplelisted/internal/metrics"
	"github.com/maplelisted/maplelisted/internal/notification"
	"github.com/maplelisted/maplelisted/internal/property"
	"github.com/maplelisted/maplelisted/internal/regulation"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=transaction
type Repository interface {
	// CreateOffer inserts the transaction and bumps the property's interest
	// counter in one database transaction.
	CreateOffer(ctx context.Context, tx *Transaction) error

	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Transaction, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*Transaction, error)

	// ApplyTransition persists a status change conditioned on the stored
	// status and version still matching `from` and tx.Version. When
	// propertyStatus is non-nil the property row is updated in the same
	// database transaction. Returns ErrConflict when the guard fails.
	ApplyTransition(ctx context.Context, tx *Transaction, from Status, propertyStatus *property.Status) error

	// UpdateTerms persists condition and message changes without a status
	// change, conditioned on tx.Version. Returns ErrConflict on a lost race.
	UpdateTerms(ctx context.Context, tx *Transaction) error
}

type PropertyDirectory interface {
	GetProperty(ctx context.Context, id uuid.UUID) (*property.Property, error)
}

type ComplianceGate interface {
	Check(ctx context.Context, userID uuid.UUID, province string) error
}

type AuditLogger interface {
	Log(ctx context.Context, e audit.Entry) error
}

type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, kind string, payload map[string]any) error
}

type Service struct {
	repo       Repository
	properties PropertyDirectory
	gate       ComplianceGate
	policy     fees.Policy
	auditor    AuditLogger
	notifier   Notifier
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(
	repo Repository,
	properties PropertyDirectory,
	gate ComplianceGate,
	policy fees.Policy,
	auditor AuditLogger,
	notifier Notifier,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:       repo,
		properties: properties,
		gate:       gate,
		policy:     policy,
		auditor:    auditor,
		notifier:   notifier,
		metrics:    m,
		now:        time.Now,
	}
}

// ConditionInput describes one contingency on a new offer.
type ConditionInput struct {
	Type        ConditionType
	Description string
	Deadline    *time.Time
}

// SubmitOfferParams carries everything needed to open a negotiation.
// DepositCents of zero derives the provincial minimum; DepositOverride skips
// the provincial bounds check for an explicitly supplied deposit.
type SubmitOfferParams struct {
	BuyerID         uuid.UUID
	PropertyID      uuid.UUID
	OfferPriceCents int64
	DepositCents    int64
	DepositOverride bool
	ClosingDate     *time.Time
	Conditions      []ConditionInput
}

// SubmitOffer validates the buyer, the property and the compliance
// prerequisites, derives deposit, cooling-off deadline and platform fees, and
// persists the new transaction in state offer_made. Nothing is written when
// any guard fails.
func (s *Service) SubmitOffer(ctx context.Context, params SubmitOfferParams) (*Transaction, error) {
	if params.OfferPriceCents <= 0 {
		return nil, fmt.Errorf("%w: offer price must be positive", ErrInvalidInput)
	}

	prop, err := s.properties.GetProperty(ctx, params.PropertyID)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return nil, fmt.Errorf("%w: property %s", ErrNotFound, params.PropertyID)
		}

		return nil, fmt.Errorf("loading property: %w", err)
	}

	if prop.Status != property.StatusActive {
		return nil, fmt.Errorf("%w: property is not accepting offers (status %s)", ErrInvalidOperation, prop.Status)
	}

	if prop.SellerID == params.BuyerID {
		return nil, fmt.Errorf("%w: cannot make an offer on your own property", ErrInvalidOperation)
	}

	reg, ok := regulation.Get(prop.Province)
	if !ok {
		return nil, fmt.Errorf("%w: unknown province %q", ErrInvalidInput, prop.Province)
	}

	if err := s.gate.Check(ctx, params.BuyerID, reg.Code); err != nil {
		var cerr *compliance.Error
		if errors.As(err, &cerr) && s.metrics != nil {
			s.metrics.ComplianceBlocks.WithLabelValues(string(cerr.Requirement)).Inc()
		}

		return nil, err
	}

	deposit, err := deriveDeposit(params, reg)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.policy.Calculate(params.OfferPriceCents, s.policy.DefaultModel)
	if err != nil {
		return nil, fmt.Errorf("calculating platform fees: %w", err)
	}

	now := s.now()

	txType := TypeSale
	if prop.ListingType == property.ListingRent {
		txType = TypeRent
	}

	tx := &Transaction{
		BuyerID:             params.BuyerID,
		SellerID:            prop.SellerID,
		PropertyID:          prop.ID,
		Type:                txType,
		OfferPriceCents:     params.OfferPriceCents,
		DepositCents:        deposit,
		OfferDate:           now,
		ClosingDate:         params.ClosingDate,
		CoolingOffPeriodEnd: now.AddDate(0, 0, reg.CoolingOffDays),
		Conditions:          buildConditions(params.Conditions),
		Province:            reg.Code,
		ComplianceStatus:    ComplianceNotStarted,
		Fees: PlatformFees{
			ListingFee: FeeItem{AmountCents: breakdown.ListingFeeCents},
			SuccessFee: SuccessFee{
				AmountCents: breakdown.SuccessFeeCents,
				Percentage:  breakdown.Percentage,
				Calculated:  true,
			},
			TotalCents: breakdown.TotalCents,
			Model:      breakdown.Model,
			PayableBy:  PartySeller,
		},
	}
	tx.setStatus(StatusOfferMade, params.BuyerID, "offer submitted", now)

	if err := s.repo.CreateOffer(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating offer: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OffersSubmitted.Inc()
	}

	s.logEvent(ctx, audit.EventOfferMade, params.BuyerID, tx.ID, "offer made on property", map[string]any{
		"offer_price_cents": params.OfferPriceCents,
		"deposit_cents":     deposit,
		"cooling_off_days":  reg.CoolingOffDays,
	})
	s.sendNotification(ctx, tx.SellerID, notification.KindNewOffer, map[string]any{
		"transaction_id":    tx.ID,
		"offer_price_cents": tx.OfferPriceCents,
	})

	return tx, nil
}

// AcceptOffer moves an offer to offer_accepted and flips the listing to
// pending. Seller only; the offer must still be in offer_made.
func (s *Service) AcceptOffer(ctx context.Context, txID, callerID uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if callerID != tx.SellerID {
		return nil, fmt.Errorf("%w: only the seller can accept offers", ErrUnauthorized)
	}

	from := tx.Status
	if !CanTransition(from, StatusOfferAccepted) {
		return nil, fmt.Errorf("%w: cannot accept from %s", ErrInvalidTransition, from)
	}

	now := s.now()
	tx.AcceptanceDate = &now
	tx.setStatus(StatusOfferAccepted, callerID, "seller accepted the offer", now)

	pending := property.StatusPending
	if err := s.repo.ApplyTransition(ctx, tx, from, &pending); err != nil {
		return nil, err
	}

	s.recordTransition(StatusOfferAccepted)
	s.logEvent(ctx, audit.EventOfferAccepted, callerID, tx.ID, "offer accepted", map[string]any{
		"offer_price_cents": tx.OfferPriceCents,
	})
	s.sendNotification(ctx, tx.BuyerID, notification.KindOfferAccepted, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// RejectOffer moves an offer to offer_rejected. Seller only.
func (s *Service) RejectOffer(ctx context.Context, txID, callerID uuid.UUID, reason string) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if callerID != tx.SellerID {
		return nil, fmt.Errorf("%w: only the seller can reject offers", ErrUnauthorized)
	}

	from := tx.Status
	if !CanTransition(from, StatusOfferRejected) {
		return nil, fmt.Errorf("%w: cannot reject from %s", ErrInvalidTransition, from)
	}

	if reason == "" {
		reason = "offer rejected by seller"
	}

	tx.setStatus(StatusOfferRejected, callerID, reason, s.now())

	if err := s.repo.ApplyTransition(ctx, tx, from, nil); err != nil {
		return nil, err
	}

	s.recordTransition(StatusOfferRejected)
	s.logEvent(ctx, audit.EventOfferRejected, callerID, tx.ID, "offer rejected", map[string]any{
		"offer_price_cents": tx.OfferPriceCents,
		"reason":            reason,
	})
	s.sendNotification(ctx, tx.BuyerID, notification.KindOfferRejected, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// WithdrawOffer cancels a pending offer. Buyer only, and only while the
// offer has not been answered.
func (s *Service) WithdrawOffer(ctx context.Context, txID, callerID uuid.UUID, reason string) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if callerID != tx.BuyerID {
		return nil, fmt.Errorf("%w: only the buyer can withdraw an offer", ErrUnauthorized)
	}

	if tx.Status != StatusOfferMade {
		return nil, fmt.Errorf("%w: can only withdraw a pending offer (status %s)", ErrInvalidTransition, tx.Status)
	}

	if reason == "" {
		reason = "withdrawn by buyer"
	}

	now := s.now()
	tx.CancellationReason = reason
	tx.CancelledAt = &now
	tx.setStatus(StatusCancelled, callerID, reason, now)

	if err := s.repo.ApplyTransition(ctx, tx, StatusOfferMade, nil); err != nil {
		return nil, err
	}

	s.recordTransition(StatusCancelled)
	s.logEvent(ctx, audit.EventOfferWithdrawn, callerID, tx.ID, "offer withdrawn by buyer", map[string]any{
		"reason": reason,
	})
	s.sendNotification(ctx, tx.SellerID, notification.KindOfferWithdrawn, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// RecordDeposit marks the buyer's deposit as paid and advances the status.
func (s *Service) RecordDeposit(ctx context.Context, txID, callerID uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if callerID != tx.BuyerID {
		return nil, fmt.Errorf("%w: only the buyer can record the deposit", ErrUnauthorized)
	}

	if tx.DepositPaid {
		return nil, fmt.Errorf("%w: deposit already paid", ErrInvalidOperation)
	}

	from := tx.Status
	if !CanTransition(from, StatusDepositPaid) {
		return nil, fmt.Errorf("%w: cannot record deposit from %s", ErrInvalidTransition, from)
	}

	now := s.now()
	tx.DepositPaid = true
	tx.DepositPaidAt = &now
	tx.setStatus(StatusDepositPaid, callerID, "deposit paid", now)

	if err := s.repo.ApplyTransition(ctx, tx, from, nil); err != nil {
		return nil, err
	}

	s.recordTransition(StatusDepositPaid)
	s.logEvent(ctx, audit.EventDepositPaid, callerID, tx.ID, "deposit paid", map[string]any{
		"deposit_cents": tx.DepositCents,
	})
	s.sendNotification(ctx, tx.SellerID, notification.KindDepositPaid, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// Advance moves the transaction along the closing pipeline (in_progress,
// closing). Either party may advance.
func (s *Service) Advance(ctx context.Context, txID, callerID uuid.UUID, to Status, reason string) (*Transaction, error) {
	if to != StatusInProgress && to != StatusClosing {
		return nil, fmt.Errorf("%w: cannot advance to %s", ErrInvalidInput, to)
	}

	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(callerID) {
		return nil, fmt.Errorf("%w: caller is not a party", ErrUnauthorized)
	}

	from := tx.Status
	if !CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if reason == "" {
		reason = "status advanced"
	}

	tx.setStatus(to, callerID, reason, s.now())

	if err := s.repo.ApplyTransition(ctx, tx, from, nil); err != nil {
		return nil, err
	}

	s.recordTransition(to)

	return tx, nil
}

// Complete records the closing of the sale. Seller only; every condition
// must be waived or fulfilled. The success fee is recalculated against the
// final price and the listing is marked sold.
func (s *Service) Complete(ctx context.Context, txID, callerID uuid.UUID, finalPriceCents int64) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if callerID != tx.SellerID {
		return nil, fmt.Errorf("%w: only the seller can complete the transaction", ErrUnauthorized)
	}

	from := tx.Status
	if !CanTransition(from, StatusCompleted) {
		return nil, fmt.Errorf("%w: cannot complete from %s", ErrInvalidTransition, from)
	}

	if !tx.ConditionsResolved() {
		return nil, fmt.Errorf("%w: unresolved conditions remain", ErrInvalidTransition)
	}

	if finalPriceCents == 0 {
		finalPriceCents = tx.OfferPriceCents
	}

	if finalPriceCents < 0 {
		return nil, fmt.Errorf("%w: final price must be positive", ErrInvalidInput)
	}

	breakdown, err := s.policy.Calculate(finalPriceCents, tx.Fees.Model)
	if err != nil {
		return nil, fmt.Errorf("calculating success fee: %w", err)
	}

	now := s.now()
	tx.FinalPriceCents = &finalPriceCents
	tx.CompletionDate = &now

	// Only the hybrid model splits into listing + success components; the
	// other models carry the whole fee in the total.
	if tx.Fees.Model == fees.ModelHybrid {
		tx.Fees.SuccessFee.AmountCents = breakdown.SuccessFeeCents
		tx.Fees.SuccessFee.Calculated = true
		tx.Fees.TotalCents = tx.Fees.ListingFee.AmountCents + tx.Fees.SuccessFee.AmountCents
	} else {
		tx.Fees.TotalCents = breakdown.TotalCents
	}

	tx.setStatus(StatusCompleted, callerID, "transaction completed", now)

	sold := property.StatusSold
	if err := s.repo.ApplyTransition(ctx, tx, from, &sold); err != nil {
		return nil, err
	}

	s.recordTransition(StatusCompleted)
	s.logEvent(ctx, audit.EventCompleted, callerID, tx.ID, "transaction completed", map[string]any{
		"final_price_cents": finalPriceCents,
		"success_fee_cents": tx.Fees.SuccessFee.AmountCents,
	})
	s.sendNotification(ctx, tx.BuyerID, notification.KindCompleted, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// Cancel aborts a non-terminal transaction. Either party may cancel; the
// reason is recorded on the transaction and in its history.
func (s *Service) Cancel(ctx context.Context, txID, callerID uuid.UUID, reason string) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(callerID) {
		return nil, fmt.Errorf("%w: caller is not a party", ErrUnauthorized)
	}

	from := tx.Status
	if !CanTransition(from, StatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel from %s", ErrInvalidTransition, from)
	}

	if reason == "" {
		reason = "cancelled"
	}

	now := s.now()
	tx.CancellationReason = reason
	tx.CancelledAt = &now
	tx.setStatus(StatusCancelled, callerID, reason, now)

	// An accepted offer holds the listing in pending; release it.
	var propStatus *property.Status

	if from != StatusOfferMade {
		active := property.StatusActive
		propStatus = &active
	}

	if err := s.repo.ApplyTransition(ctx, tx, from, propStatus); err != nil {
		return nil, err
	}

	s.recordTransition(StatusCancelled)
	s.logEvent(ctx, audit.EventCancelled, callerID, tx.ID, "transaction cancelled", map[string]any{
		"reason": reason,
	})

	other := tx.SellerID
	if callerID == tx.SellerID {
		other = tx.BuyerID
	}

	s.sendNotification(ctx, other, notification.KindCancelled, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// Fail records that the deal fell through (failed financing, failed
// conditions). Either party may record it; the listing is released like a
// cancellation.
func (s *Service) Fail(ctx context.Context, txID, callerID uuid.UUID, reason string) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(callerID) {
		return nil, fmt.Errorf("%w: caller is not a party", ErrUnauthorized)
	}

	from := tx.Status
	if !CanTransition(from, StatusFailed) {
		return nil, fmt.Errorf("%w: cannot fail from %s", ErrInvalidTransition, from)
	}

	if reason == "" {
		reason = "transaction failed"
	}

	now := s.now()
	tx.CancellationReason = reason
	tx.CancelledAt = &now
	tx.setStatus(StatusFailed, callerID, reason, now)

	var propStatus *property.Status

	if from != StatusOfferMade {
		active := property.StatusActive
		propStatus = &active
	}

	if err := s.repo.ApplyTransition(ctx, tx, from, propStatus); err != nil {
		return nil, err
	}

	s.recordTransition(StatusFailed)
	s.logEvent(ctx, audit.EventFailed, callerID, tx.ID, "transaction failed", map[string]any{
		"reason": reason,
	})

	other := tx.SellerID
	if callerID == tx.SellerID {
		other = tx.BuyerID
	}

	s.sendNotification(ctx, other, notification.KindFailed, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// ResolveCondition moves a single condition out of pending. When the last
// open condition resolves while the offer is accepted, the transaction
// advances to conditions_waived.
func (s *Service) ResolveCondition(ctx context.Context, txID, callerID, conditionID uuid.UUID, status ConditionStatus) (*Transaction, error) {
	if status != ConditionWaived && status != ConditionFulfilled && status != ConditionFailed {
		return nil, fmt.Errorf("%w: invalid condition resolution %q", ErrInvalidInput, status)
	}

	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(callerID) {
		return nil, fmt.Errorf("%w: caller is not a party", ErrUnauthorized)
	}

	if tx.Status.Terminal() {
		return nil, fmt.Errorf("%w: transaction is %s", ErrInvalidTransition, tx.Status)
	}

	idx := -1

	for i, c := range tx.Conditions {
		if c.ID == conditionID {
			idx = i
			break
		}
	}

	if idx < 0 {
		return nil, fmt.Errorf("%w: condition %s", ErrNotFound, conditionID)
	}

	if tx.Conditions[idx].Status != ConditionPending {
		return nil, fmt.Errorf("%w: condition already %s", ErrInvalidTransition, tx.Conditions[idx].Status)
	}

	now := s.now()
	tx.Conditions[idx].Status = status

	if status == ConditionFulfilled {
		tx.Conditions[idx].FulfilledAt = &now
	}

	if from := tx.Status; from == StatusOfferAccepted && tx.ConditionsResolved() {
		tx.setStatus(StatusConditionsWaived, callerID, "all conditions resolved", now)

		if err := s.repo.ApplyTransition(ctx, tx, from, nil); err != nil {
			return nil, err
		}

		s.recordTransition(StatusConditionsWaived)
	} else if err := s.repo.UpdateTerms(ctx, tx); err != nil {
		return nil, err
	}

	s.logEvent(ctx, audit.EventConditionResolved, callerID, tx.ID, "condition resolved", map[string]any{
		"condition_id": conditionID,
		"resolution":   status,
	})

	return tx, nil
}

// AddMessage appends to the transaction's buyer-seller thread.
func (s *Service) AddMessage(ctx context.Context, txID, callerID uuid.UUID, body string) (*Transaction, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: message body is empty", ErrInvalidInput)
	}

	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(callerID) {
		return nil, fmt.Errorf("%w: caller is not a party", ErrUnauthorized)
	}

	tx.Messages = append(tx.Messages, Message{
		ID:     uuid.New(),
		From:   callerID,
		Body:   body,
		SentAt: s.now(),
	})

	if err := s.repo.UpdateTerms(ctx, tx); err != nil {
		return nil, err
	}

	other := tx.SellerID
	if callerID == tx.SellerID {
		other = tx.BuyerID
	}

	s.sendNotification(ctx, other, notification.KindNewMessage, map[string]any{"transaction_id": tx.ID})

	return tx, nil
}

// Get returns the transaction when the caller is a party to it.
func (s *Service) Get(ctx context.Context, txID, callerID uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(callerID) {
		return nil, fmt.Errorf("%w: caller is not a party", ErrUnauthorized)
	}

	return tx, nil
}

// ListOffers returns the caller's offers as a buyer, newest first.
func (s *Service) ListOffers(ctx context.Context, buyerID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

// ListListingOffers returns offers received on the caller's listings.
func (s *Service) ListListingOffers(ctx context.Context, sellerID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// logEvent and sendNotification are best-effort: auxiliary failures are
// logged and swallowed so they never roll back a committed transition.
func (s *Service) logEvent(ctx context.Context, eventType string, actor, txID uuid.UUID, description string, details map[string]any) {
	err := s.auditor.Log(ctx, audit.Entry{
		EventType:   eventType,
		ActorID:     actor,
		TargetType:  "transaction",
		TargetID:    txID,
		Description: description,
		Details:     details,
	})
	if err != nil {
		slog.Error("failed to write audit entry", "event", eventType, "transaction", txID, "error", err)
	}
}

func (s *Service) sendNotification(ctx context.Context, userID uuid.UUID, kind string, payload map[string]any) {
	if err := s.notifier.Notify(ctx, userID, kind, payload); err != nil {
		slog.Error("failed to send notification", "kind", kind, "user", userID, "error", err)
	}
}

func (s *Service) recordTransition(to Status) {
	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(to)).Inc()
	}
}

func deriveDeposit(params SubmitOfferParams, reg regulation.Regulation) (int64, error) {
	minDeposit := int64(math.Round(float64(params.OfferPriceCents) * reg.DepositMinFraction))
	maxDeposit := int64(math.Round(float64(params.OfferPriceCents) * reg.DepositMaxFraction))

	if params.DepositCents == 0 {
		return minDeposit, nil
	}

	if params.DepositCents < 0 {
		return 0, fmt.Errorf("%w: deposit must be positive", ErrInvalidInput)
	}

	if !params.DepositOverride && (params.DepositCents < minDeposit || params.DepositCents > maxDeposit) {
		return 0, fmt.Errorf("%w: deposit outside provincial bounds [%d, %d]", ErrInvalidInput, minDeposit, maxDeposit)
	}

	return params.DepositCents, nil
}

func buildConditions(inputs []ConditionInput) []Condition {
	if len(inputs) == 0 {
		return nil
	}

	conditions := make([]Condition, len(inputs))
	for i, in := range inputs {
		conditions[i] = Condition{
			ID:          uuid.New(),
			Type:        in.Type,
			Description: in.Description,
			Status:      ConditionPending,
			Deadline:    in.Deadline,
		}
	}

	return conditions
}
