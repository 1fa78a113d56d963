package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newCountingHandler(calls *int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"n":` + strconv.Itoa(int(n)) + `}`))
	})
}

func postWithKey(h http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:1000"
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestIdempotency_ReplaysSameRequest(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	var calls int32
	h := Idempotency(store)(newCountingHandler(&calls))

	first := postWithKey(h, "k1", `{"text":"a"}`)
	second := postWithKey(h, "k1", `{"text":"a"}`)

	if calls != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("expected replayed body %q, got %q", first.Body.String(), second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("expected replay header")
	}
}

func TestIdempotency_DifferentBodyRunsAgain(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Minute})
	defer store.Stop()

	var calls int32
	h := Idempotency(store)(newCountingHandler(&calls))

	postWithKey(h, "k1", `{"text":"a"}`)
	postWithKey(h, "k1", `{"text":"b"}`)

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{})
	defer store.Stop()

	var calls int32
	h := Idempotency(store)(newCountingHandler(&calls))

	postWithKey(h, "", `{"text":"a"}`)
	postWithKey(h, "", `{"text":"a"}`)

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestIdempotency_IgnoresNonPost(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{})
	defer store.Stop()

	var calls int32
	h := Idempotency(store)(newCountingHandler(&calls))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPut, "/goals/1", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyHeader, "k1")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestIdempotency_SweepRemovesExpired(t *testing.T) {
	t.Parallel()

	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Millisecond})
	defer store.Stop()

	var calls int32
	postWithKey(Idempotency(store)(newCountingHandler(&calls)), "k1", `{}`)

	store.sweep(time.Now().Add(time.Second))

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.entries) != 0 {
		t.Errorf("expected no entries, have %d", len(store.entries))
	}
}

func TestFingerprint_SeparatesFields(t *testing.T) {
	t.Parallel()

	a := fingerprint("ab", "c", http.MethodPost, "/goals", nil)
	b := fingerprint("a", "bc", http.MethodPost, "/goals", nil)
	if a == b {
		t.Error("expected distinct fingerprints for shifted fields")
	}
	if len(a) != 64 {
		t.Errorf("expected 32-byte hex digest, got %d chars", len(a))
	}
}
