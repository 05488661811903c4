// Package auth checks the admin credentials and issues the signed session
// tokens the dashboard sends back in the Authorization header.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
)

const Issuer = "psyche-connect"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Authenticator struct {
	email        string
	passwordHash []byte
	dummyHash    []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func New(cfg config.Auth) (*Authenticator, error) {
	const op = "auth.New"

	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("%s: admin email is required", op)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%s: jwt secret is required", op)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("%s: token ttl must be positive", op)
	}

	hash := []byte(cfg.AdminPasswordHash)

	cost, err := bcrypt.Cost(hash)
	if err != nil {
		return nil, fmt.Errorf("%s: admin password hash: %w", op, err)
	}

	// Compared against on email mismatch so both paths pay the same bcrypt cost.
	dummy, err := bcrypt.GenerateFromPassword([]byte("psyche-connect-dummy"), cost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Authenticator{
		email:        normalizeEmail(cfg.AdminEmail),
		passwordHash: hash,
		dummyHash:    dummy,
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.TokenTTL,
		now:          time.Now,
	}, nil
}

// Login checks the credentials and returns a signed token valid for the configured TTL.
func (a *Authenticator) Login(email, password string) (Token, error) {
	const op = "auth.Login"

	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(a.email)) == 1

	hash := a.passwordHash
	if !emailOK {
		hash = a.dummyHash
	}

	passwordOK := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil

	if !emailOK || !passwordOK {
		return Token{}, ErrInvalidCredentials
	}

	now := a.now()
	expiresAt := now.Add(a.ttl)

	claims := Claims{
		Email: a.email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   a.email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Token{}, fmt.Errorf("%s: %w", op, err)
	}

	return Token{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Truncate(time.Second),
	}, nil
}

// Verify parses a token issued by Login. Any failure maps to ErrInvalidToken.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
