package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/maplelisted/maplelisted/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *audit.Entry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("encoding details: %w", err)
	}

	query := `
		INSERT INTO audit_log (event_type, actor_id, target_type, target_id, description, details, compliance_relevant, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		e.EventType,
		e.ActorID,
		e.TargetType,
		e.TargetID,
		e.Description,
		details,
		e.ComplianceRelevant,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating audit entry: %w", err)
	}

	return nil
}
