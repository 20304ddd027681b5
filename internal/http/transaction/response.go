package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/fees"
	"github.com/maplelisted/maplelisted/internal/transaction"
)

type transactionResponse struct {
	ID         uuid.UUID `json:"id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	PropertyID uuid.UUID `json:"property_id"`

	Type   transaction.Type   `json:"type"`
	Status transaction.Status `json:"status"`

	OfferPriceCents int64      `json:"offer_price_cents"`
	FinalPriceCents *int64     `json:"final_price_cents,omitempty"`
	DepositCents    int64      `json:"deposit_cents"`
	DepositPaid     bool       `json:"deposit_paid"`
	DepositPaidAt   *time.Time `json:"deposit_paid_at,omitempty"`

	OfferDate           time.Time  `json:"offer_date"`
	AcceptanceDate      *time.Time `json:"acceptance_date,omitempty"`
	ClosingDate         *time.Time `json:"closing_date,omitempty"`
	CompletionDate      *time.Time `json:"completion_date,omitempty"`
	CoolingOffPeriodEnd time.Time  `json:"cooling_off_period_end"`

	Conditions []transaction.Condition `json:"conditions,omitempty"`

	Province         string                        `json:"province"`
	ComplianceStatus transaction.ComplianceStatus  `json:"compliance_status"`
	ComplianceChecks []transaction.ComplianceCheck `json:"compliance_checks,omitempty"`

	Fees feesResponse `json:"platform_fees"`

	StatusHistory []transaction.StatusEntry `json:"status_history"`
	Messages      []transaction.Message     `json:"messages,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type feesResponse struct {
	ListingFee transaction.FeeItem    `json:"listing_fee"`
	SuccessFee transaction.SuccessFee `json:"success_fee"`
	TotalCents int64                  `json:"total_cents"`
	Model      fees.Model             `json:"model"`
	PayableBy  transaction.Party      `json:"payable_by"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                  tx.ID,
		BuyerID:             tx.BuyerID,
		SellerID:            tx.SellerID,
		PropertyID:          tx.PropertyID,
		Type:                tx.Type,
		Status:              tx.Status,
		OfferPriceCents:     tx.OfferPriceCents,
		FinalPriceCents:     tx.FinalPriceCents,
		DepositCents:        tx.DepositCents,
		DepositPaid:         tx.DepositPaid,
		DepositPaidAt:       tx.DepositPaidAt,
		OfferDate:           tx.OfferDate,
		AcceptanceDate:      tx.AcceptanceDate,
		ClosingDate:         tx.ClosingDate,
		CompletionDate:      tx.CompletionDate,
		CoolingOffPeriodEnd: tx.CoolingOffPeriodEnd,
		Conditions:          tx.Conditions,
		Province:            tx.Province,
		ComplianceStatus:    tx.ComplianceStatus,
		ComplianceChecks:    tx.ComplianceChecks,
		Fees: feesResponse{
			ListingFee: tx.Fees.ListingFee,
			SuccessFee: tx.Fees.SuccessFee,
			TotalCents: tx.Fees.TotalCents,
			Model:      tx.Fees.Model,
			PayableBy:  tx.Fees.PayableBy,
		},
		StatusHistory:      tx.StatusHistory,
		Messages:           tx.Messages,
		CancellationReason: tx.CancellationReason,
		CancelledAt:        tx.CancelledAt,
		CreatedAt:          tx.CreatedAt,
		UpdatedAt:          tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
