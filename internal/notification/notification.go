// Package notification delivers in-app notifications. Delivery is
// best-effort; a failed notification never rolls back the operation that
// produced it.
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kinds sent by the transaction core.
const (
	KindNewOffer       = "new_offer"
	KindOfferAccepted  = "offer_accepted"
	KindOfferRejected  = "offer_rejected"
	KindOfferWithdrawn = "offer_withdrawn"
	KindDepositPaid    = "deposit_paid"
	KindCompleted      = "transaction_completed"
	KindCancelled      = "transaction_cancelled"
	KindFailed         = "transaction_failed"
	KindNewMessage     = "new_message"
)

// Notification is one unread-until-acknowledged message for a user.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      string
	Payload   map[string]any
	ReadAt    *time.Time
	CreatedAt time.Time
}

type Repository interface {
	CreateNotification(ctx context.Context, n *Notification) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Notify(ctx context.Context, userID uuid.UUID, kind string, payload map[string]any) error {
	return s.repo.CreateNotification(ctx, &Notification{
		UserID:  userID,
		Kind:    kind,
		Payload: payload,
	})
}
