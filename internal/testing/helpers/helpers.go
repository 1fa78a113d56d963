package helpers

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/goals/api/pkg/jwt"
)

// TestIssuer is the issuer used by test token services
const TestIssuer = "goals-test"

// JWTHelper mints tokens for test users
type JWTHelper struct {
	Service *jwt.Service
	t       *testing.T
}

// NewJWTHelper creates an HS256 token service with a fixed test secret
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()
	return &JWTHelper{
		Service: jwt.NewHMACService([]byte("goals-test-secret-0123456789abcdef"), TestIssuer, time.Hour),
		t:       t,
	}
}

// Token returns a valid bearer token for userID
func (h *JWTHelper) Token(userID string) string {
	h.t.Helper()
	return h.sign(jwt.Claims{UserID: userID})
}

// ExpiredToken returns a token for userID that expired a minute ago
func (h *JWTHelper) ExpiredToken(userID string) string {
	h.t.Helper()

	past := time.Now().Add(-time.Hour)
	return h.sign(jwt.Claims{
		UserID: userID,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(past),
			NotBefore: gojwt.NewNumericDate(past),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
}

// Bearer returns the Authorization header value for userID
func (h *JWTHelper) Bearer(userID string) string {
	h.t.Helper()
	return "Bearer " + h.Token(userID)
}

func (h *JWTHelper) sign(claims jwt.Claims) string {
	h.t.Helper()

	token, err := h.Service.Sign(claims)
	if err != nil {
		h.t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// StringPtr returns a pointer to the given string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the given bool
func BoolPtr(b bool) *bool {
	return &b
}
