package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/forgo/goals/api/pkg/jwt"
)

func newTestJWT() *jwt.Service {
	return jwt.NewHMACService([]byte("middleware-test-secret"), "goals-api", time.Hour)
}

func serveAuth(t *testing.T, svc *jwt.Service, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var userID string
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, userID
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Message
}

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWT()
	token, err := svc.Sign(jwt.Claims{UserID: "user-a"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rr, userID := serveAuth(t, svc, "Bearer "+token)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if userID != "user-a" {
		t.Errorf("expected user-a, got %q", userID)
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := newTestJWT()
	token, _ := svc.Sign(jwt.Claims{UserID: "user-a"})

	rr, _ := serveAuth(t, svc, "bearer "+token)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestAuth_Rejections(t *testing.T) {
	t.Parallel()

	svc := newTestJWT()
	expired, _ := svc.Sign(jwt.Claims{
		UserID: "user-a",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	foreign, _ := jwt.NewHMACService([]byte("other-secret"), "goals-api", time.Hour).Sign(jwt.Claims{UserID: "user-a"})

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Not authorized, no token"},
		{"wrong scheme", "Basic abc", "Not authorized, no token"},
		{"empty token", "Bearer ", "Not authorized, no token"},
		{"garbage token", "Bearer not-a-jwt", "Not authorized"},
		{"foreign signature", "Bearer " + foreign, "Not authorized"},
		{"expired", "Bearer " + expired, "Not authorized, token expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr, userID := serveAuth(t, svc, tt.header)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
			if userID != "" {
				t.Errorf("handler should not run, saw user %q", userID)
			}
			if got := messageOf(t, rr); got != tt.message {
				t.Errorf("expected %q, got %q", tt.message, got)
			}
		})
	}
}

func TestGetUserID_EmptyContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(req.Context()); got != "" {
		t.Errorf("expected empty user id, got %q", got)
	}
}

func TestWithClaims_FallsBackToSubject(t *testing.T) {
	t.Parallel()

	claims := &jwt.Claims{RegisteredClaims: gojwt.RegisteredClaims{Subject: "user-sub"}}
	ctx := WithClaims(httptest.NewRequest(http.MethodGet, "/", nil).Context(), claims)
	if got := GetUserID(ctx); got != "user-sub" {
		t.Errorf("expected user-sub, got %q", got)
	}
}
