package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/maplelisted/maplelisted/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateNotification(ctx context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	query := `
		INSERT INTO notifications (user_id, kind, payload, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err = s.db.QueryRowContext(ctx, query, n.UserID, n.Kind, payload).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}
