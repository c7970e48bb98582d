package contact

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, m *Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	const q = `
		INSERT INTO contacts (id, name, company, email, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	row := s.db.QueryRowContext(ctx, q, m.ID, m.Name, m.Company, m.Email, m.Body, time.Now().UTC())
	return row.Scan(&m.CreatedAt)
}

func (s *Store) List(ctx context.Context) ([]Message, error) {
	const q = `
		SELECT id, name, company, email, message, created_at
		FROM contacts ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Company, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
