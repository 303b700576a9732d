package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// The two error messages callers are allowed to pattern-match on.
// Wrong email and wrong password are deliberately indistinguishable.
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAlreadyRegistered  = errors.New("user already registered")
)

// UserStore is what the service needs from the users table.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// TokenRevoker remembers revoked token IDs until their natural expiry,
// so sign-out actually terminates a session instead of just dropping
// the token client-side.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Claims struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	repo     UserStore
	revoker  TokenRevoker
	secret   string
	tokenTTL time.Duration
}

func NewService(repo UserStore, revoker TokenRevoker, secret string) *Service {
	return &Service{
		repo:     repo,
		revoker:  revoker,
		secret:   secret,
		tokenTTL: 24 * time.Hour,
	}
}

// SignUp creates the account only. It never issues a token; the user
// is expected to sign in explicitly afterwards.
func (s *Service) SignUp(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	if len(password) < 6 {
		return fmt.Errorf("password should be at least 6 characters")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &User{
		Email:    email,
		Password: string(hashedPwd),
	}

	if _, err := s.repo.CreateUser(ctx, u); err != nil {
		return err
	}
	return nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (string, Identity, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			return "", Identity{}, ErrInvalidCredentials
		}
		return "", Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", Identity{}, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    u.ID,
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "memory-album",
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	})

	ss, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", Identity{}, err
	}

	return ss, Identity{ID: u.ID, Email: u.Email}, nil
}

// SignOut revokes the token for the rest of its lifetime. Idempotent;
// an expired or unparseable token is a no-op.
func (s *Service) SignOut(ctx context.Context, tokenString string) error {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	})
	if err != nil || claims.RegisteredClaims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.RegisteredClaims.ID, ttl)
}

func (s *Service) Validate(ctx context.Context, tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		return Identity{}, err
	}
	if revoked {
		return Identity{}, fmt.Errorf("session revoked")
	}

	return Identity{ID: claims.ID, Email: claims.Email}, nil
}
