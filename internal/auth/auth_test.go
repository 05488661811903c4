package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
)

const (
	adminEmail    = "admin@saathimindcare.com"
	adminPassword = "s3cret-pass"
	secret        = "test-secret"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	a, err := New(config.Auth{
		AdminEmail:        adminEmail,
		AdminPasswordHash: string(hash),
		JWTSecret:         secret,
		TokenTTL:          2 * time.Hour,
	})
	require.NoError(t, err)

	return a
}

func TestLoginAndVerify(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	token, err := a.Login("  Admin@SaathiMindcare.com ", adminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, now.Add(2*time.Hour), token.ExpiresAt)

	claims, err := a.Verify(token.Token)
	require.NoError(t, err)
	assert.Equal(t, adminEmail, claims.Email)
	assert.Equal(t, adminEmail, claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: adminEmail, password: "nope"},
		{name: "wrong email", email: "someone@example.com", password: adminPassword},
		{name: "empty", email: "", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := a.Login(tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)
	issued := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issued }

	token, err := a.Login(adminEmail, adminPassword)
	require.NoError(t, err)

	a.now = func() time.Time { return issued.Add(2*time.Hour + time.Minute) }

	_, err = a.Verify(token.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForgedTokens(t *testing.T) {
	t.Parallel()

	a := newTestAuthenticator(t)

	claims := Claims{
		Email: adminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   adminEmail,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	noExpiry := claims
	noExpiry.ExpiresAt = nil
	withoutExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte(secret))
	require.NoError(t, err)

	foreign := claims
	foreign.Issuer = "someone-else"
	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, foreign).SignedString([]byte(secret))
	require.NoError(t, err)

	good, err := a.Login(adminEmail, adminPassword)
	require.NoError(t, err)
	parts := strings.Split(good.Token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	for name, token := range map[string]string{
		"other secret": otherSecret,
		"alg none":     unsigned,
		"hs512":        wrongAlg,
		"no expiry":    withoutExp,
		"wrong issuer": wrongIssuer,
		"tampered":     tampered,
		"garbage":      "not-a-jwt",
		"empty":        "",
	} {
		_, err := a.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := New(config.Auth{AdminEmail: adminEmail, AdminPasswordHash: "plain", JWTSecret: secret, TokenTTL: time.Hour})
	assert.Error(t, err)

	_, err = New(config.Auth{AdminEmail: adminEmail, AdminPasswordHash: "plain", TokenTTL: time.Hour})
	assert.Error(t, err)
}
