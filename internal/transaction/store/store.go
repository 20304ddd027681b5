package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/property"
	"github.com/maplelisted/maplelisted/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	id, buyer_id, seller_id, property_id, type, status,
	offer_price, final_price, deposit_amount, deposit_paid, deposit_paid_at,
	offer_date, acceptance_date, closing_date, completion_date, cooling_off_end,
	conditions, province, compliance_status, compliance_checks, platform_fees,
	status_history, messages, cancellation_reason, cancelled_at,
	version, created_at, updated_at
`

// scanTransaction reads one transaction row. Conditions, compliance checks,
// fees, history and messages are embedded JSONB documents so a negotiation's
// full record travels with its status in a single row.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx                 transaction.Transaction
		conditionsRaw      []byte
		checksRaw          []byte
		feesRaw            []byte
		historyRaw         []byte
		messagesRaw        []byte
		cancellationReason sql.NullString
	)

	if err := s.Scan(
		&tx.ID, &tx.BuyerID, &tx.SellerID, &tx.PropertyID, &tx.Type, &tx.Status,
		&tx.OfferPriceCents, &tx.FinalPriceCents, &tx.DepositCents, &tx.DepositPaid, &tx.DepositPaidAt,
		&tx.OfferDate, &tx.AcceptanceDate, &tx.ClosingDate, &tx.CompletionDate, &tx.CoolingOffPeriodEnd,
		&conditionsRaw, &tx.Province, &tx.ComplianceStatus, &checksRaw, &feesRaw,
		&historyRaw, &messagesRaw, &cancellationReason, &tx.CancelledAt,
		&tx.Version, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.CancellationReason = cancellationReason.String

	for _, dst := range []struct {
		raw  []byte
		into any
	}{
		{conditionsRaw, &tx.Conditions},
		{checksRaw, &tx.ComplianceChecks},
		{feesRaw, &tx.Fees},
		{historyRaw, &tx.StatusHistory},
		{messagesRaw, &tx.Messages},
	} {
		if len(dst.raw) == 0 {
			continue
		}

		if err := json.Unmarshal(dst.raw, dst.into); err != nil {
			return nil, fmt.Errorf("decoding embedded document: %w", err)
		}
	}

	return &tx, nil
}

type embeddedDocs struct {
	conditions []byte
	checks     []byte
	fees       []byte
	history    []byte
	messages   []byte
}

func encodeEmbedded(tx *transaction.Transaction) (embeddedDocs, error) {
	var (
		docs embeddedDocs
		err  error
	)

	if docs.conditions, err = json.Marshal(tx.Conditions); err != nil {
		return docs, fmt.Errorf("encoding conditions: %w", err)
	}

	if docs.checks, err = json.Marshal(tx.ComplianceChecks); err != nil {
		return docs, fmt.Errorf("encoding compliance checks: %w", err)
	}

	if docs.fees, err = json.Marshal(tx.Fees); err != nil {
		return docs, fmt.Errorf("encoding platform fees: %w", err)
	}

	if docs.history, err = json.Marshal(tx.StatusHistory); err != nil {
		return docs, fmt.Errorf("encoding status history: %w", err)
	}

	if docs.messages, err = json.Marshal(tx.Messages); err != nil {
		return docs, fmt.Errorf("encoding messages: %w", err)
	}

	return docs, nil
}

// CreateOffer inserts the transaction and increments the property's interest
// counter inside one database transaction.
func (s *Store) CreateOffer(ctx context.Context, tx *transaction.Transaction) error {
	docs, err := encodeEmbedded(tx)
	if err != nil {
		return err
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertQuery := `
		INSERT INTO transactions (
			buyer_id, seller_id, property_id, type, status,
			offer_price, final_price, deposit_amount, deposit_paid, deposit_paid_at,
			offer_date, acceptance_date, closing_date, completion_date, cooling_off_end,
			conditions, province, compliance_status, compliance_checks, platform_fees,
			status_history, messages, cancellation_reason, cancelled_at,
			version, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, 1, NOW(), NOW())
		RETURNING id, version, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		tx.BuyerID, tx.SellerID, tx.PropertyID, tx.Type, tx.Status,
		tx.OfferPriceCents, tx.FinalPriceCents, tx.DepositCents, tx.DepositPaid, tx.DepositPaidAt,
		tx.OfferDate, tx.AcceptanceDate, tx.ClosingDate, tx.CompletionDate, tx.CoolingOffPeriodEnd,
		docs.conditions, tx.Province, tx.ComplianceStatus, docs.checks, docs.fees,
		docs.history, docs.messages, nullString(tx.CancellationReason), tx.CancelledAt,
	).Scan(&tx.ID, &tx.Version, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	interestQuery := `
		UPDATE properties
		SET interest_count = interest_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := dbTx.ExecContext(ctx, interestQuery, tx.PropertyID); err != nil {
		return fmt.Errorf("incrementing property interest: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.list(ctx, "buyer_id", buyerID)
}

func (s *Store) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.list(ctx, "seller_id", sellerID)
}

func (s *Store) list(ctx context.Context, column string, id uuid.UUID) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE ` + column + ` = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// ApplyTransition writes the new status and derived fields, guarded by the
// expected previous status and version so concurrent transitions resolve to
// exactly one winner. The optional property status change rides in the same
// database transaction to keep the two entities consistent.
func (s *Store) ApplyTransition(ctx context.Context, tx *transaction.Transaction, from transaction.Status, propertyStatus *property.Status) error {
	docs, err := encodeEmbedded(tx)
	if err != nil {
		return err
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	updateQuery := `
		UPDATE transactions
		SET status = $1, final_price = $2, deposit_paid = $3, deposit_paid_at = $4,
			acceptance_date = $5, completion_date = $6,
			conditions = $7, compliance_status = $8, compliance_checks = $9,
			platform_fees = $10, status_history = $11, messages = $12,
			cancellation_reason = $13, cancelled_at = $14,
			version = version + 1, updated_at = NOW()
		WHERE id = $15 AND status = $16 AND version = $17
	`

	res, err := dbTx.ExecContext(ctx, updateQuery,
		tx.Status, tx.FinalPriceCents, tx.DepositPaid, tx.DepositPaidAt,
		tx.AcceptanceDate, tx.CompletionDate,
		docs.conditions, tx.ComplianceStatus, docs.checks,
		docs.fees, docs.history, docs.messages,
		nullString(tx.CancellationReason), tx.CancelledAt,
		tx.ID, from, tx.Version,
	)
	if err != nil {
		return fmt.Errorf("applying transition: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking transition result: %w", err)
	}

	if affected == 0 {
		return transaction.ErrConflict
	}

	if propertyStatus != nil {
		propertyQuery := `
			UPDATE properties
			SET status = $1, updated_at = NOW()
			WHERE id = $2
		`

		if _, err := dbTx.ExecContext(ctx, propertyQuery, *propertyStatus, tx.PropertyID); err != nil {
			return fmt.Errorf("updating property status: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transition: %w", err)
	}

	tx.Version++

	return nil
}

// UpdateTerms persists condition and message changes without touching the
// status, guarded by the version.
func (s *Store) UpdateTerms(ctx context.Context, tx *transaction.Transaction) error {
	docs, err := encodeEmbedded(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET conditions = $1, messages = $2, compliance_status = $3, compliance_checks = $4,
			version = version + 1, updated_at = NOW()
		WHERE id = $5 AND version = $6
	`

	res, err := s.db.ExecContext(ctx, query,
		docs.conditions, docs.messages, tx.ComplianceStatus, docs.checks,
		tx.ID, tx.Version,
	)
	if err != nil {
		return fmt.Errorf("updating transaction terms: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return transaction.ErrConflict
	}

	tx.Version++

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
