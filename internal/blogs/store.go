package blogs

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var ErrNotFound = errors.New("blog not found")

func (s *Store) Create(ctx context.Context, b *Blog) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Section == "" {
		b.Section = SectionResources
	}
	const q = `
		INSERT INTO blogs
		(id, title, description, category, section, file_url, object_key, uploaded_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at
	`
	now := time.Now().UTC()
	row := s.db.QueryRowContext(ctx, q,
		b.ID,
		b.Title,
		b.Description,
		nullable(string(b.Category)),
		string(b.Section),
		b.FileURL,
		b.ObjectKey,
		b.UploadedBy,
		now,
	)
	return row.Scan(&b.CreatedAt, &b.UpdatedAt)
}

// List returns blogs newest first. Rows written before the section column
// existed have it NULL or empty; the section clause matches those too, the
// single compatibility shim for the old schema.
func (s *Store) List(ctx context.Context, f Filter) ([]Blog, error) {
	clauses := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if f.Section != "" {
		clauses = append(clauses, "(section = $"+itoa(idx)+" OR section IS NULL OR section = '')")
		args = append(args, string(f.Section))
		idx++
	}
	if f.Category != "" {
		clauses = append(clauses, "category = $"+itoa(idx))
		args = append(args, string(f.Category))
		idx++
	}

	query := "SELECT id, title, description, category, section, file_url, object_key, uploaded_by, created_at, updated_at" +
		" FROM blogs WHERE " + strings.Join(clauses, " AND ") +
		" ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Blog, error) {
	const q = `
		SELECT id, title, description, category, section, file_url, object_key, uploaded_by, created_at, updated_at
		FROM blogs WHERE id = $1
	`
	b, err := scanBlog(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBlog(row scanner) (*Blog, error) {
	var b Blog
	var category, section sql.NullString
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &category, &section,
		&b.FileURL, &b.ObjectKey, &b.UploadedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Category = Category(category.String)
	b.Section = Section(section.String)
	return &b, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
