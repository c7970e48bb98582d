package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var ErrAccountNotFound = errors.New("account not found")

func (s *Store) GetByEmail(ctx context.Context, email string) (*Account, error) {
	const q = `SELECT id, name, company, email, password_hash, role, created_at, updated_at
		FROM accounts WHERE email = $1`
	row := s.db.QueryRowContext(ctx, q, email)
	a := &Account{}
	if err := row.Scan(&a.ID, &a.Name, &a.Company, &a.Email, &a.PasswordHash, &a.Role,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
		INSERT INTO accounts (name, company, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`
	now := time.Now().UTC()
	err := s.db.QueryRowContext(ctx, q, a.Name, a.Company, a.Email, a.PasswordHash, a.Role, now).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

type seedFile struct {
	Accounts []struct {
		Name     string `yaml:"name"`
		Company  string `yaml:"company"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"accounts"`
}

// SeedFromFile loads development accounts from a YAML file, skipping emails
// that already exist.
func (s *Store) SeedFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return err
	}
	for _, entry := range sf.Accounts {
		if entry.Email == "" || entry.Password == "" {
			continue
		}
		if _, err := s.GetByEmail(ctx, entry.Email); err == nil {
			continue
		} else if !errors.Is(err, ErrAccountNotFound) {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), hashCost)
		if err != nil {
			return err
		}
		a := &Account{
			Name:         entry.Name,
			Company:      entry.Company,
			Email:        entry.Email,
			PasswordHash: string(hash),
			Role:         RoleUser,
		}
		if err := s.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
