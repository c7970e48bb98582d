package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const hashCost = 10

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already exists")
)

// AccountStore is the persistence surface the service needs.
// *Store satisfies it; tests substitute fakes.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, a *Account) error
}

type Service struct {
	store         AccountStore
	secret        []byte
	tokenTTL      time.Duration
	adminEmail    string
	adminPassword string
}

func NewService(store AccountStore, secret, adminEmail, adminPassword string, tokenTTL time.Duration) *Service {
	return &Service{
		store:         store,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Register creates a user account. All fields are required; earlier revisions
// of this backend accepted blank fields, the stricter check is deliberate.
func (s *Service) Register(ctx context.Context, name, company, email, password string) error {
	if name == "" || company == "" || email == "" || password == "" {
		return ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a := &Account{
		Name:         name,
		Company:      company,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleUser,
	}
	return s.store.Create(ctx, a)
}

type Session struct {
	Token string
	Role  Role
	Name  string
}

// Authenticate checks the configured admin identity first, then falls back to
// the account store. The admin path never touches the store, so the admin
// email can never collide with a stored account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if s.isAdmin(email, password) {
		token, err := s.issueToken(RoleAdmin, nil)
		if err != nil {
			return nil, fmt.Errorf("issue token: %w", err)
		}
		return &Session{Token: token, Role: RoleAdmin}, nil
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(account.Role, account)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Session{Token: token, Role: account.Role, Name: account.Name}, nil
}

func (s *Service) isAdmin(email, password string) bool {
	if s.adminEmail == "" || s.adminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	return emailOK && passOK
}

type Claims struct {
	AccountID int64  `json:"uid,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

// issueToken mints an HS256 session token. account is nil for the admin
// identity, which carries only a role.
func (s *Service) issueToken(role Role, account *Account) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	if account != nil {
		claims.AccountID = account.ID
		claims.Email = account.Email
		claims.Subject = account.Email
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
