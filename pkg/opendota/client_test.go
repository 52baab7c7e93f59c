package opendota

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/go-opendota/pkg/cache"
)

// testClient builds a client against a test server, caching in a temp
// directory with pacing disabled. Callers append options to override.
func testClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	t.Setenv(EnvAPIKey, "")

	base := []Option{
		WithBaseURL(serverURL),
		WithCacheDir(t.TempDir()),
		WithMinInterval(0),
	}
	c, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// countingServer returns a test server that counts requests and replies with
// the given body.
func countingServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestNewDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	c, err := New(WithCacheDir(t.TempDir()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.timeout, DefaultTimeout)
	}
	if c.authMethod != AuthHeader {
		t.Errorf("authMethod = %v, want AuthHeader", c.authMethod)
	}
	if c.limiter == nil {
		t.Error("unauthenticated client should have a pacer")
	}
	if c.store == nil {
		t.Error("client should have a default store")
	}
	if len(c.fantasy) != len(defaultFantasyWeights) {
		t.Errorf("fantasy table has %d entries, want %d", len(c.fantasy), len(defaultFantasyWeights))
	}
}

func TestNewAPIKeyFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-secret")

	c, err := New(WithCacheDir(t.TempDir()))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	if c.apiKey != "env-secret" {
		t.Errorf("apiKey = %q, want env fallback", c.apiKey)
	}
	if c.limiter != nil {
		t.Error("authenticated client should not have a pacer")
	}
}

func TestGetCachesResponse(t *testing.T) {
	server, calls := countingServer(t, `{"match_id": 271145478, "radiant_win": true}`)
	c := testClient(t, server.URL)
	ctx := context.Background()

	first, err := c.Get(ctx, "matches/271145478", nil, false)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	second, err := c.Get(ctx, "matches/271145478", nil, false)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	// Second call is served from cache
	if got := calls.Load(); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}

	// Cached content matches the original response
	var a, b map[string]any
	if err := json.Unmarshal(first, &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(second, &b); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("cached response = %v, want %v", b, a)
	}
}

func TestGetRefreshOverwritesCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if n == 1 {
			w.Write([]byte(`{"version": 1}`))
			return
		}
		w.Write([]byte(`{"version": 2}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	if _, err := c.Get(ctx, "heroes", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	// refresh always reaches the network
	data, err := c.Get(ctx, "heroes", nil, true)
	if err != nil {
		t.Fatalf("Get(refresh) error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}

	var v map[string]int
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatal(err)
	}
	if v["version"] != 2 {
		t.Errorf("refresh returned version %d, want 2", v["version"])
	}

	// The overwritten entry serves subsequent cached calls
	data, err = c.Get(ctx, "heroes", nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatal(err)
	}
	if v["version"] != 2 {
		t.Errorf("cached entry has version %d, want overwritten 2", v["version"])
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestGetUncachedBypassesStore(t *testing.T) {
	server, calls := countingServer(t, `[]`)
	c := testClient(t, server.URL)
	ctx := context.Background()

	// Uncached calls never read the store
	if _, err := c.GetUncached(ctx, "proMatches", nil); err != nil {
		t.Fatalf("GetUncached() error: %v", err)
	}
	if _, err := c.GetUncached(ctx, "proMatches", nil); err != nil {
		t.Fatalf("GetUncached() error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}

	// They never wrote anything either: a cached call still misses
	if _, err := c.Get(ctx, "proMatches", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("network calls = %d, want 3", got)
	}
}

func TestPacingSpacesNetworkCalls(t *testing.T) {
	server, calls := countingServer(t, `{"ok": true}`)
	c := testClient(t, server.URL, WithMinInterval(200*time.Millisecond))
	ctx := context.Background()

	start := time.Now()
	if _, err := c.Get(ctx, "heroes", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	// A cache hit does not touch the pacer
	if _, err := c.Get(ctx, "heroes", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("cached call should not wait on the pacer, took %v", elapsed)
	}

	// The second network call departs at least one interval after the first
	if _, err := c.Get(ctx, "heroes", nil, true); err != nil {
		t.Fatalf("Get(refresh) error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Errorf("paced call departed after %v, want at least 200ms", elapsed)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestAuthenticatedSkipsPacing(t *testing.T) {
	var auth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL,
		WithMinInterval(300*time.Millisecond),
		WithAPIKey("secret"),
	)
	ctx := context.Background()

	start := time.Now()
	if _, err := c.Get(ctx, "heroes", nil, true); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if _, err := c.Get(ctx, "heroes", nil, true); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("authenticated calls should not be paced, took %v", elapsed)
	}

	if got := auth.Load(); got != "Bearer secret" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer secret")
	}
}

func TestAuthQueryExcludedFromCacheIdentity(t *testing.T) {
	var calls atomic.Int32
	var gotKey atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotKey.Store(r.URL.Query().Get("api_key"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Setenv(EnvAPIKey, "")
	dir := t.TempDir()
	params := url.Values{"limit": {"5"}}
	ctx := context.Background()

	authed, err := New(
		WithBaseURL(server.URL),
		WithCacheDir(dir),
		WithMinInterval(0),
		WithAPIKey("secret"),
		WithAuthMethod(AuthQuery),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer authed.Close()

	if _, err := authed.Get(ctx, "publicMatches", params, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got := gotKey.Load(); got != "secret" {
		t.Errorf("api_key param = %q, want %q", got, "secret")
	}

	// An anonymous client sharing the cache directory sees the same entry:
	// the credential was never part of the identity.
	anon, err := New(
		WithBaseURL(server.URL),
		WithCacheDir(dir),
		WithMinInterval(0),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer anon.Close()

	if _, err := anon.Get(ctx, "publicMatches", params, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("network calls = %d, want 1 (second client should hit cache)", got)
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   Code
		checkKind  func(error) bool
		otherKinds []func(error) bool
	}{
		{
			name:       "not found",
			status:     http.StatusNotFound,
			wantCode:   CodeNotFound,
			checkKind:  IsNotFound,
			otherKinds: []func(error) bool{IsRateLimited, IsTransport},
		},
		{
			name:       "rate limited",
			status:     http.StatusTooManyRequests,
			wantCode:   CodeRateLimited,
			checkKind:  IsRateLimited,
			otherKinds: []func(error) bool{IsNotFound, IsTransport},
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       "boom",
			wantCode:   CodeAPI,
			otherKinds: []func(error) bool{IsNotFound, IsRateLimited, IsTransport},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := testClient(t, server.URL)
			_, err := c.Get(context.Background(), "matches/1", nil, false)
			if err == nil {
				t.Fatalf("Get() should fail for status %d", tt.status)
			}

			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
			if tt.checkKind != nil && !tt.checkKind(err) {
				t.Errorf("kind predicate should match %v", err)
			}
			for _, other := range tt.otherKinds {
				if other(err) {
					t.Errorf("error %v matched a foreign kind predicate", err)
				}
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error should be *Error, got %T", err)
			}
			if e.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", e.StatusCode, tt.status)
			}
			if tt.body != "" && e.Body != tt.body {
				t.Errorf("Body = %q, want %q", e.Body, tt.body)
			}
		})
	}
}

func TestErrorsNotCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"match_id": 1}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	if _, err := c.Get(ctx, "matches/1", nil, false); !IsNotFound(err) {
		t.Fatalf("first call error = %v, want not-found", err)
	}

	// The failure was not cached; the next call reaches the network
	if _, err := c.Get(ctx, "matches/1", nil, false); err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	c := testClient(t, server.URL)
	server.Close()

	_, err := c.Get(context.Background(), "heroes", nil, false)
	if !IsTransport(err) {
		t.Errorf("error = %v, want transport kind", err)
	}
	if IsNotFound(err) || IsRateLimited(err) {
		t.Error("transport error matched a status kind predicate")
	}
}

func TestDeadlineUnwraps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Get(ctx, "heroes", nil, false)
	if !IsTransport(err) {
		t.Errorf("error = %v, want transport kind", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should unwrap to context.DeadlineExceeded: %v", err)
	}
}

func TestCorruptedEntryRefetched(t *testing.T) {
	server, calls := countingServer(t, `[{"id": 1, "localized_name": "Anti-Mage"}]`)

	t.Setenv(EnvAPIKey, "")
	dir := t.TempDir()
	c, err := New(WithBaseURL(server.URL), WithCacheDir(dir), WithMinInterval(0))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "heroes", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	// Truncate the entry on disk
	path := filepath.Join(dir, "heroes", cache.Key(server.URL+"/heroes", nil)+".json")
	if err := os.WriteFile(path, []byte(`[{"id`), 0o644); err != nil {
		t.Fatalf("corrupting entry: %v", err)
	}

	// The corrupted entry reads as a miss and the fetch proceeds
	if _, err := c.Get(ctx, "heroes", nil, false); err != nil {
		t.Fatalf("Get() after corruption error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}

	// The entry was rewritten healthy
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading rewritten entry: %v", err)
	}
	if !json.Valid(data) {
		t.Error("rewritten entry should be valid JSON")
	}
}

func TestNonGetNotCached(t *testing.T) {
	server, calls := countingServer(t, `{"job": 1}`)
	c := testClient(t, server.URL)
	ctx := context.Background()

	opts := fetchOptions{useCache: true}
	if _, err := c.fetch(ctx, http.MethodPost, "request/123", nil, opts); err != nil {
		t.Fatalf("fetch() error: %v", err)
	}
	if _, err := c.fetch(ctx, http.MethodPost, "request/123", nil, opts); err != nil {
		t.Fatalf("fetch() error: %v", err)
	}

	// Write verbs never read or populate the cache
	if got := calls.Load(); got != 2 {
		t.Errorf("network calls = %d, want 2", got)
	}
}

// recordingHooks captures hook events for assertions.
type recordingHooks struct {
	NoopHooks

	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(ev string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

func (h *recordingHooks) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

func (h *recordingHooks) OnRequest(_ context.Context, method, _ string) { h.record("request:" + method) }
func (h *recordingHooks) OnCacheHit(_ context.Context, family string)   { h.record("hit:" + family) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, family string)  { h.record("miss:" + family) }
func (h *recordingHooks) OnCacheWrite(_ context.Context, family string, _ int) {
	h.record("write:" + family)
}

func TestHooksObserveCacheFlow(t *testing.T) {
	server, _ := countingServer(t, `[]`)
	hooks := &recordingHooks{}
	c := testClient(t, server.URL, WithHooks(hooks))
	ctx := context.Background()

	if _, err := c.Get(ctx, "proMatches", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if _, err := c.Get(ctx, "proMatches", nil, false); err != nil {
		t.Fatalf("Get() error: %v", err)
	}

	want := []string{"miss:proMatches", "request:GET", "write:proMatches", "hit:proMatches"}
	if got := hooks.snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}
