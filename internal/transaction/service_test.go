package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/maplelisted/maplelisted/internal/compliance"
	"github.com/maplelisted/maplelisted/internal/fees"
	"github.com/maplelisted/maplelisted/internal/property"
	"github.com/maplelisted/maplelisted/internal/transaction"
)

var testPolicy = fees.Policy{
	DefaultModel:    fees.ModelHybrid,
	Percentage:      1.5,
	MinimumCents:    99_900,
	MaximumCents:    999_900,
	ListingFeeCents: 29_900,
	Currency:        "CAD",
}

type serviceMocks struct {
	repo       *transaction.MockRepository
	properties *transaction.MockPropertyDirectory
	gate       *transaction.MockComplianceGate
	auditor    *transaction.MockAuditLogger
	notifier   *transaction.MockNotifier
}

func newTestService(t *testing.T) (*transaction.Service, serviceMocks) {
	t.Helper()
	return newTestServiceWithPolicy(t, testPolicy)
}

func newTestServiceWithPolicy(t *testing.T, policy fees.Policy) (*transaction.Service, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:       transaction.NewMockRepository(ctrl),
		properties: transaction.NewMockPropertyDirectory(ctrl),
		gate:       transaction.NewMockComplianceGate(ctrl),
		auditor:    transaction.NewMockAuditLogger(ctrl),
		notifier:   transaction.NewMockNotifier(ctrl),
	}

	// Audit and notifications are best-effort side channels.
	m.auditor.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := transaction.NewService(m.repo, m.properties, m.gate, policy, m.auditor, m.notifier, nil)

	return svc, m
}

func activeProperty(sellerID uuid.UUID) *property.Property {
	return &property.Property{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Title:       "123 Maple Street",
		PriceCents:  50_000_000,
		Province:    "ON",
		City:        "Toronto",
		ListingType: property.ListingSale,
		Status:      property.StatusActive,
	}
}

func TestService_SubmitOffer(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		m.gate.EXPECT().Check(gomock.Any(), buyerID, "ON").Return(nil)
		m.repo.EXPECT().
			CreateOffer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
				tx.ID = uuid.New()
				tx.Version = 1
				return nil
			})

		tx, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 50_000_000,
		})
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusOfferMade, tx.Status)
		assert.Equal(t, sellerID, tx.SellerID)
		assert.Equal(t, transaction.TypeSale, tx.Type)

		// No deposit supplied: derive the Ontario 5% minimum.
		assert.Equal(t, int64(2_500_000), tx.DepositCents)

		// Ontario cooling-off is ten days.
		assert.Equal(t, tx.OfferDate.AddDate(0, 0, 10), tx.CoolingOffPeriodEnd)

		// Hybrid fees frozen at offer time: listing + clamped 1.5% success fee.
		assert.Equal(t, int64(29_900), tx.Fees.ListingFee.AmountCents)
		assert.Equal(t, int64(750_000), tx.Fees.SuccessFee.AmountCents)
		assert.Equal(t, int64(779_900), tx.Fees.TotalCents)

		require.Len(t, tx.StatusHistory, 1)
		assert.Equal(t, transaction.StatusOfferMade, tx.StatusHistory[0].Status)
	})

	t.Run("WithConditions", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		m.gate.EXPECT().Check(gomock.Any(), buyerID, "ON").Return(nil)
		m.repo.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(nil)

		tx, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 40_000_000,
			Conditions: []transaction.ConditionInput{
				{Type: transaction.ConditionFinancing, Description: "mortgage approval"},
				{Type: transaction.ConditionInspection, Description: "home inspection"},
			},
		})
		require.NoError(t, err)

		require.Len(t, tx.Conditions, 2)
		for _, c := range tx.Conditions {
			assert.NotEqual(t, uuid.Nil, c.ID)
			assert.Equal(t, transaction.ConditionPending, c.Status)
		}

		assert.False(t, tx.ConditionsResolved())
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      uuid.New(),
			OfferPriceCents: 0,
		})
		assert.ErrorIs(t, err, transaction.ErrInvalidInput)
	})

	t.Run("PropertyNotFound", func(t *testing.T) {
		svc, m := newTestService(t)
		propID := uuid.New()

		m.properties.EXPECT().GetProperty(gomock.Any(), propID).Return(nil, property.ErrNotFound)

		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      propID,
			OfferPriceCents: 1_000_000,
		})
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})

	t.Run("PropertyNotActive", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)
		prop.Status = property.StatusPending

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)

		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 1_000_000,
		})
		assert.ErrorIs(t, err, transaction.ErrInvalidOperation)
	})

	t.Run("SelfOffer", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)

		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         sellerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 1_000_000,
		})
		assert.ErrorIs(t, err, transaction.ErrInvalidOperation)
	})

	t.Run("ComplianceBlockedWritesNothing", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		blocked := &compliance.Error{Requirement: compliance.RequirementTerms}

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		m.gate.EXPECT().Check(gomock.Any(), buyerID, "ON").Return(blocked)

		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 1_000_000,
		})

		var cerr *compliance.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, compliance.RequirementTerms, cerr.Requirement)
	})

	t.Run("DepositOutsideBounds", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		m.gate.EXPECT().Check(gomock.Any(), buyerID, "ON").Return(nil)

		// 1% of the offer price: below the 5% provincial minimum.
		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 50_000_000,
			DepositCents:    500_000,
		})
		assert.ErrorIs(t, err, transaction.ErrInvalidInput)
	})

	t.Run("DepositOverrideSkipsBounds", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		m.gate.EXPECT().Check(gomock.Any(), buyerID, "ON").Return(nil)
		m.repo.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(nil)

		tx, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 50_000_000,
			DepositCents:    500_000,
			DepositOverride: true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(500_000), tx.DepositCents)
	})

	t.Run("RepoError", func(t *testing.T) {
		svc, m := newTestService(t)
		prop := activeProperty(sellerID)

		m.properties.EXPECT().GetProperty(gomock.Any(), prop.ID).Return(prop, nil)
		m.gate.EXPECT().Check(gomock.Any(), buyerID, "ON").Return(nil)
		m.repo.EXPECT().CreateOffer(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		_, err := svc.SubmitOffer(context.Background(), transaction.SubmitOfferParams{
			BuyerID:         buyerID,
			PropertyID:      prop.ID,
			OfferPriceCents: 1_000_000,
		})
		assert.Error(t, err)
	})
}

func storedTransaction(buyerID, sellerID uuid.UUID, status transaction.Status) *transaction.Transaction {
	return &transaction.Transaction{
		ID:              uuid.New(),
		BuyerID:         buyerID,
		SellerID:        sellerID,
		PropertyID:      uuid.New(),
		Type:            transaction.TypeSale,
		Status:          status,
		OfferPriceCents: 50_000_000,
		DepositCents:    2_500_000,
		OfferDate:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Province:        "ON",
		Fees: transaction.PlatformFees{
			ListingFee: transaction.FeeItem{AmountCents: 29_900},
			SuccessFee: transaction.SuccessFee{AmountCents: 750_000, Percentage: 1.5, Calculated: true},
			TotalCents: 779_900,
			Model:      fees.ModelHybrid,
			PayableBy:  transaction.PartySeller,
		},
		StatusHistory: []transaction.StatusEntry{
			{Status: transaction.StatusOfferMade, ChangedBy: buyerID},
		},
		Version: 1,
	}
}

func TestService_AcceptOffer(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().
			ApplyTransition(gomock.Any(), stored, transaction.StatusOfferMade, gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction, _ transaction.Status, propStatus *property.Status) error {
				require.NotNil(t, propStatus)
				assert.Equal(t, property.StatusPending, *propStatus)
				tx.Version++
				return nil
			})

		tx, err := svc.AcceptOffer(context.Background(), stored.ID, sellerID)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusOfferAccepted, tx.Status)
		assert.NotNil(t, tx.AcceptanceDate)
		require.Len(t, tx.StatusHistory, 2)
		assert.Equal(t, sellerID, tx.StatusHistory[1].ChangedBy)
	})

	t.Run("NotSeller", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.AcceptOffer(context.Background(), stored.ID, buyerID)
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})

	t.Run("AlreadyAnswered", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferRejected)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.AcceptOffer(context.Background(), stored.ID, sellerID)
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
		assert.Len(t, stored.StatusHistory, 1)
	})

	t.Run("LostRace", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().
			ApplyTransition(gomock.Any(), gomock.Any(), transaction.StatusOfferMade, gomock.Any()).
			Return(transaction.ErrConflict)

		_, err := svc.AcceptOffer(context.Background(), stored.ID, sellerID)
		assert.ErrorIs(t, err, transaction.ErrConflict)
	})
}

func TestService_RejectOffer(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("DefaultReason", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusOfferMade, nil).Return(nil)

		tx, err := svc.RejectOffer(context.Background(), stored.ID, sellerID, "")
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusOfferRejected, tx.Status)
		require.Len(t, tx.StatusHistory, 2)
		assert.Equal(t, "offer rejected by seller", tx.StatusHistory[1].Reason)
	})

	t.Run("NotSeller", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.RejectOffer(context.Background(), stored.ID, buyerID, "")
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})
}

func TestService_WithdrawOffer(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusOfferMade, nil).Return(nil)

		tx, err := svc.WithdrawOffer(context.Background(), stored.ID, buyerID, "found another place")
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusCancelled, tx.Status)
		assert.Equal(t, "found another place", tx.CancellationReason)
		assert.NotNil(t, tx.CancelledAt)
	})

	t.Run("OnlyBuyer", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.WithdrawOffer(context.Background(), stored.ID, sellerID, "")
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})

	t.Run("OnlyPendingOffer", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.WithdrawOffer(context.Background(), stored.ID, buyerID, "")
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
	})
}

func TestService_RecordDeposit(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusConditionsWaived)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusConditionsWaived, nil).Return(nil)

		tx, err := svc.RecordDeposit(context.Background(), stored.ID, buyerID)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusDepositPaid, tx.Status)
		assert.True(t, tx.DepositPaid)
		assert.NotNil(t, tx.DepositPaidAt)
	})

	t.Run("SkipsConditionsWaivedForConditionlessOffer", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusOfferAccepted, nil).Return(nil)

		tx, err := svc.RecordDeposit(context.Background(), stored.ID, buyerID)
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusDepositPaid, tx.Status)
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusDepositPaid)
		stored.DepositPaid = true

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.RecordDeposit(context.Background(), stored.ID, buyerID)
		assert.ErrorIs(t, err, transaction.ErrInvalidOperation)
	})

	t.Run("OnlyBuyer", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusConditionsWaived)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.RecordDeposit(context.Background(), stored.ID, sellerID)
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})
}

func TestService_Advance(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusDepositPaid)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusDepositPaid, nil).Return(nil)

		tx, err := svc.Advance(context.Background(), stored.ID, buyerID, transaction.StatusInProgress, "")
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusInProgress, tx.Status)
	})

	t.Run("OnlyPipelineStatuses", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Advance(context.Background(), uuid.New(), buyerID, transaction.StatusCompleted, "")
		assert.ErrorIs(t, err, transaction.ErrInvalidInput)
	})

	t.Run("InvalidTransition", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Advance(context.Background(), stored.ID, buyerID, transaction.StatusClosing, "")
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
	})
}

func TestService_Complete(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("RecalculatesSuccessFee", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusClosing)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().
			ApplyTransition(gomock.Any(), stored, transaction.StatusClosing, gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction, _ transaction.Status, propStatus *property.Status) error {
				require.NotNil(t, propStatus)
				assert.Equal(t, property.StatusSold, *propStatus)
				return nil
			})

		// Negotiated down from the 500k offer.
		tx, err := svc.Complete(context.Background(), stored.ID, sellerID, 48_000_000)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusCompleted, tx.Status)
		require.NotNil(t, tx.FinalPriceCents)
		assert.Equal(t, int64(48_000_000), *tx.FinalPriceCents)
		assert.NotNil(t, tx.CompletionDate)

		// 1.5% of 480k = 7200 dollars in cents, plus the frozen listing fee.
		assert.Equal(t, int64(720_000), tx.Fees.SuccessFee.AmountCents)
		assert.Equal(t, int64(749_900), tx.Fees.TotalCents)
	})

	t.Run("PercentageModelKeepsWholeFee", func(t *testing.T) {
		percentagePolicy := fees.Policy{
			DefaultModel: fees.ModelPercentage,
			Percentage:   1.5,
			MinimumCents: 99_900,
			MaximumCents: 999_900,
			Currency:     "CAD",
		}

		svc, m := newTestServiceWithPolicy(t, percentagePolicy)

		stored := storedTransaction(buyerID, sellerID, transaction.StatusClosing)
		stored.Fees = transaction.PlatformFees{
			TotalCents: 750_000,
			Model:      fees.ModelPercentage,
			PayableBy:  transaction.PartySeller,
		}

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusClosing, gomock.Any()).Return(nil)

		tx, err := svc.Complete(context.Background(), stored.ID, sellerID, 0)
		require.NoError(t, err)

		// The percentage model carries the whole fee in the total; completion
		// must not recompose it from the empty listing/success sub-records.
		assert.Equal(t, int64(750_000), tx.Fees.TotalCents)
		assert.Equal(t, int64(0), tx.Fees.SuccessFee.AmountCents)
		assert.Equal(t, int64(0), tx.Fees.ListingFee.AmountCents)
	})

	t.Run("DefaultsToOfferPrice", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusClosing)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusClosing, gomock.Any()).Return(nil)

		tx, err := svc.Complete(context.Background(), stored.ID, sellerID, 0)
		require.NoError(t, err)

		require.NotNil(t, tx.FinalPriceCents)
		assert.Equal(t, stored.OfferPriceCents, *tx.FinalPriceCents)
	})

	t.Run("UnresolvedConditions", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusClosing)
		stored.Conditions = []transaction.Condition{
			{ID: uuid.New(), Type: transaction.ConditionFinancing, Status: transaction.ConditionPending},
		}

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Complete(context.Background(), stored.ID, sellerID, 0)
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
	})

	t.Run("OnlySeller", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusClosing)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Complete(context.Background(), stored.ID, buyerID, 0)
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})

	t.Run("NegativeFinalPrice", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusClosing)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Complete(context.Background(), stored.ID, sellerID, -1)
		assert.ErrorIs(t, err, transaction.ErrInvalidInput)
	})
}

func TestService_Cancel(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("ReleasesHeldListing", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().
			ApplyTransition(gomock.Any(), stored, transaction.StatusOfferAccepted, gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction, _ transaction.Status, propStatus *property.Status) error {
				require.NotNil(t, propStatus)
				assert.Equal(t, property.StatusActive, *propStatus)
				return nil
			})

		tx, err := svc.Cancel(context.Background(), stored.ID, buyerID, "financing fell through")
		require.NoError(t, err)
		assert.Equal(t, transaction.StatusCancelled, tx.Status)
	})

	t.Run("PendingOfferLeavesListingAlone", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusOfferMade, nil).Return(nil)

		_, err := svc.Cancel(context.Background(), stored.ID, sellerID, "")
		require.NoError(t, err)
	})

	t.Run("Terminal", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusCompleted)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Cancel(context.Background(), stored.ID, buyerID, "")
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
	})

	t.Run("NotAParty", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Cancel(context.Background(), stored.ID, uuid.New(), "")
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})
}

func TestService_Fail(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusInProgress)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().
			ApplyTransition(gomock.Any(), stored, transaction.StatusInProgress, gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction, _ transaction.Status, propStatus *property.Status) error {
				require.NotNil(t, propStatus)
				assert.Equal(t, property.StatusActive, *propStatus)
				return nil
			})

		tx, err := svc.Fail(context.Background(), stored.ID, buyerID, "financing denied")
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusFailed, tx.Status)
		assert.Equal(t, "financing denied", tx.CancellationReason)
	})

	t.Run("Terminal", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusCancelled)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Fail(context.Background(), stored.ID, buyerID, "")
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
	})
}

func TestService_ResolveCondition(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("LastConditionAdvancesStatus", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		conditionID := uuid.New()
		stored.Conditions = []transaction.Condition{
			{ID: uuid.New(), Type: transaction.ConditionFinancing, Status: transaction.ConditionFulfilled},
			{ID: conditionID, Type: transaction.ConditionInspection, Status: transaction.ConditionPending},
		}

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().ApplyTransition(gomock.Any(), stored, transaction.StatusOfferAccepted, nil).Return(nil)

		tx, err := svc.ResolveCondition(context.Background(), stored.ID, buyerID, conditionID, transaction.ConditionWaived)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusConditionsWaived, tx.Status)
		assert.True(t, tx.ConditionsResolved())
	})

	t.Run("OpenConditionsRemain", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		conditionID := uuid.New()
		stored.Conditions = []transaction.Condition{
			{ID: conditionID, Type: transaction.ConditionFinancing, Status: transaction.ConditionPending},
			{ID: uuid.New(), Type: transaction.ConditionInspection, Status: transaction.ConditionPending},
		}

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().UpdateTerms(gomock.Any(), stored).Return(nil)

		tx, err := svc.ResolveCondition(context.Background(), stored.ID, buyerID, conditionID, transaction.ConditionFulfilled)
		require.NoError(t, err)

		assert.Equal(t, transaction.StatusOfferAccepted, tx.Status)
		assert.NotNil(t, tx.Conditions[0].FulfilledAt)
	})

	t.Run("AlreadyResolved", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		conditionID := uuid.New()
		stored.Conditions = []transaction.Condition{
			{ID: conditionID, Type: transaction.ConditionFinancing, Status: transaction.ConditionWaived},
		}

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.ResolveCondition(context.Background(), stored.ID, buyerID, conditionID, transaction.ConditionFulfilled)
		assert.ErrorIs(t, err, transaction.ErrInvalidTransition)
	})

	t.Run("UnknownCondition", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferAccepted)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.ResolveCondition(context.Background(), stored.ID, buyerID, uuid.New(), transaction.ConditionWaived)
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})

	t.Run("InvalidResolution", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.ResolveCondition(context.Background(), uuid.New(), buyerID, uuid.New(), transaction.ConditionPending)
		assert.ErrorIs(t, err, transaction.ErrInvalidInput)
	})
}

func TestService_AddMessage(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)
		m.repo.EXPECT().UpdateTerms(gomock.Any(), stored).Return(nil)

		tx, err := svc.AddMessage(context.Background(), stored.ID, buyerID, "can we close earlier?")
		require.NoError(t, err)

		require.Len(t, tx.Messages, 1)
		assert.Equal(t, buyerID, tx.Messages[0].From)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AddMessage(context.Background(), uuid.New(), buyerID, "")
		assert.ErrorIs(t, err, transaction.ErrInvalidInput)
	})
}

func TestService_Get(t *testing.T) {
	buyerID := uuid.New()
	sellerID := uuid.New()

	t.Run("NotAParty", func(t *testing.T) {
		svc, m := newTestService(t)
		stored := storedTransaction(buyerID, sellerID, transaction.StatusOfferMade)

		m.repo.EXPECT().GetTransaction(gomock.Any(), stored.ID).Return(stored, nil)

		_, err := svc.Get(context.Background(), stored.ID, uuid.New())
		assert.ErrorIs(t, err, transaction.ErrUnauthorized)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, m := newTestService(t)
		id := uuid.New()

		m.repo.EXPECT().GetTransaction(gomock.Any(), id).Return(nil, transaction.ErrNotFound)

		_, err := svc.Get(context.Background(), id, buyerID)
		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})
}
