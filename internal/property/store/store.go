package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/property"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := `
		SELECT id, seller_id, title, price, province, city, listing_type, status, interest_count, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var p property.Property

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.SellerID, &p.Title, &p.PriceCents, &p.Province, &p.City,
		&p.ListingType, &p.Status, &p.InterestCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, property.ErrNotFound
		}

		return nil, fmt.Errorf("getting property: %w", err)
	}

	return &p, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status property.Status) error {
	query := `
		UPDATE properties
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating property status: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return property.ErrNotFound
	}

	return nil
}
