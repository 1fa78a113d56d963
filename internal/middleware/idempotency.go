package middleware

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// IdempotencyHeader carries the client-chosen key for a retryable POST
const IdempotencyHeader = "Idempotency-Key"

// IdempotencyConfig holds configuration for the idempotency store
type IdempotencyConfig struct {
	TTL     time.Duration // How long a completed response is replayed (default 24h)
	Cleanup time.Duration // Sweep interval (default 1h)
}

// IdempotencyStore remembers responses to POST requests keyed by
// caller, Idempotency-Key and request fingerprint
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]*replay
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

type replay struct {
	status    int
	header    http.Header
	body      []byte
	expiresAt time.Time
	done      chan struct{}
}

func (e *replay) pending() bool {
	select {
	case <-e.done:
		return false
	default:
		return true
	}
}

// NewIdempotencyStore creates a store and starts its sweep goroutine
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = time.Hour
	}

	s := &IdempotencyStore{
		entries: make(map[string]*replay),
		ttl:     cfg.TTL,
		stop:    make(chan struct{}),
	}
	go s.sweepLoop(cfg.Cleanup)
	return s
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (s *IdempotencyStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

func (s *IdempotencyStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.stop:
			return
		}
	}
}

func (s *IdempotencyStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if !e.pending() && e.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// claim returns the existing entry for key, or registers a new pending one.
// owner is true when the caller must execute the request and call finish.
func (s *IdempotencyStore) claim(key string) (e *replay, owner bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok && (existing.pending() || existing.expiresAt.After(time.Now())) {
		return existing, false
	}
	e = &replay{done: make(chan struct{})}
	s.entries[key] = e
	return e, true
}

func (s *IdempotencyStore) finish(e *replay, rec *recordingWriter) {
	s.mu.Lock()
	e.status = rec.status
	e.header = rec.Header().Clone()
	e.body = rec.buf.Bytes()
	e.expiresAt = time.Now().Add(s.ttl)
	s.mu.Unlock()
	close(e.done)
}

// fingerprint hashes everything that makes two requests "the same"
func fingerprint(caller, key, method, path string, body []byte) string {
	h, _ := blake2b.New256(nil)
	for _, part := range [][]byte{[]byte(caller), []byte(key), []byte(method), []byte(path), body} {
		h.Write(part)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// recordingWriter tees the response into a buffer
type recordingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency returns a middleware that replays the first response for a
// repeated POST carrying the same Idempotency-Key and body
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			entry, owner := store.claim(fingerprint(clientKey(r), key, r.Method, r.URL.Path, body))
			if !owner {
				select {
				case <-entry.done:
				case <-r.Context().Done():
					return
				}
				writeReplay(w, entry)
				return
			}

			rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
			defer store.finish(entry, rec)
			next.ServeHTTP(rec, r)
		})
	}
}

func writeReplay(w http.ResponseWriter, e *replay) {
	// Headers set by outer middleware for this request take precedence
	for k, values := range e.header {
		if _, ok := w.Header()[k]; !ok {
			w.Header()[k] = append([]string(nil), values...)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}
