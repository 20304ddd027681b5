package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Terms and province acknowledgments are embedded JSONB documents so a user's
// compliance record reads and writes as one row.
func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, name, email, terms_accepted, province_acknowledgments, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var (
		u        user.User
		termsRaw []byte
		acksRaw  []byte
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &termsRaw, &acksRaw, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	if err := json.Unmarshal(termsRaw, &u.Terms); err != nil {
		return nil, fmt.Errorf("decoding terms: %w", err)
	}

	u.Acknowledgments = user.Acknowledgments{}
	if err := json.Unmarshal(acksRaw, &u.Acknowledgments); err != nil {
		return nil, fmt.Errorf("decoding acknowledgments: %w", err)
	}

	return &u, nil
}

func (s *Store) UpdateCompliance(ctx context.Context, u *user.User) error {
	termsRaw, err := json.Marshal(u.Terms)
	if err != nil {
		return fmt.Errorf("encoding terms: %w", err)
	}

	acksRaw, err := json.Marshal(u.Acknowledgments)
	if err != nil {
		return fmt.Errorf("encoding acknowledgments: %w", err)
	}

	query := `
		UPDATE users
		SET terms_accepted = $1, province_acknowledgments = $2, updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, termsRaw, acksRaw, u.ID)
	if err != nil {
		return fmt.Errorf("updating user compliance: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}
