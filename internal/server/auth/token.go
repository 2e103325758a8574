// Package auth implements the token service and the password hasher.
//
// Tokens are stateless HS256 JWTs. Access and refresh tokens share one
// secret and differ only by lifetime and by the scope claim; the scope
// check on decode is mandatory so a stolen access token cannot be
// replayed against the refresh endpoint and vice versa.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/contacthub/internal/common"
)

// Scope identifies the operation a token is valid for.
type Scope string

const (
	ScopeAccess  Scope = "access_token"
	ScopeRefresh Scope = "refresh_token"
	ScopeEmail   Scope = "email_token"
)

// Claims is the flat claim set carried by every contacthub token:
// sub, iat, exp plus the custom scope claim.
type Claims struct {
	ScopeClaim string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates signed, time-limited tokens.
// The secret and default lifetimes are fixed at construction; there is
// no ambient global configuration.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	emailTTL   time.Duration
}

func NewTokenManager(secret []byte, accessTTL, refreshTTL, emailTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		emailTTL:   emailTTL,
	}
}

// CreateToken issues a token for subject with an explicit scope and ttl.
// A non-positive ttl produces an already-expired token; callers normally
// use one of the scope-specific helpers below.
func (m *TokenManager) CreateToken(subject string, scope Scope, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ScopeClaim: string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// CreateAccessToken issues a short-lived token with scope "access_token".
func (m *TokenManager) CreateAccessToken(subject string) (string, error) {
	return m.CreateToken(subject, ScopeAccess, m.accessTTL)
}

// CreateRefreshToken issues a long-lived token with scope "refresh_token".
func (m *TokenManager) CreateRefreshToken(subject string) (string, error) {
	return m.CreateToken(subject, ScopeRefresh, m.refreshTTL)
}

// CreateEmailToken issues the confirmation-link token with scope "email_token".
func (m *TokenManager) CreateEmailToken(subject string) (string, error) {
	return m.CreateToken(subject, ScopeEmail, m.emailTTL)
}

// Decode verifies signature and expiry and checks that the scope claim
// matches want. Signature/expiry/malformed failures return
// common.ErrInvalidToken; a valid token with the wrong scope returns
// common.ErrScopeMismatch.
func (m *TokenManager) Decode(tokenString string, want Scope) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.ScopeClaim != string(want) {
		return nil, common.ErrScopeMismatch
	}

	return claims, nil
}

// Subject decodes the token with the expected scope and returns its sub claim.
func (m *TokenManager) Subject(tokenString string, want Scope) (string, error) {
	claims, err := m.Decode(tokenString, want)
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
