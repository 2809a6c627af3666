package chat

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, m *Message) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Message, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Insert(ctx context.Context, m *Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	var confidence sql.NullInt64
	if m.Confidence != nil {
		confidence = sql.NullInt64{Int64: int64(*m.Confidence), Valid: true}
	}

	query := `
		INSERT INTO chat_messages (id, user_id, type, content, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.UserID, m.Type, m.Content, confidence, m.CreatedAt)
	return err
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, type, content, confidence, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var confidence sql.NullInt64
		if err := rows.Scan(&m.ID, &m.UserID, &m.Type, &m.Content, &confidence, &m.CreatedAt); err != nil {
			return nil, err
		}
		if confidence.Valid {
			c := int(confidence.Int64)
			m.Confidence = &c
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
