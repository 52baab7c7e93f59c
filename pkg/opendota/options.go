package opendota

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/go-opendota/pkg/cache"
)

// AuthMethod selects where the API credential is placed on each request.
type AuthMethod int

const (
	// AuthHeader sends the credential as "Authorization: Bearer <key>".
	AuthHeader AuthMethod = iota

	// AuthQuery sends the credential as the api_key query parameter.
	// The credential never becomes part of a request's cache identity.
	AuthQuery
)

// Option configures a Client during construction.
type Option func(*Client)

// WithAPIKey sets the API credential. An explicit key beats the
// OPENDOTA_API_KEY environment fallback. Authenticated clients skip the
// rate-limit gate entirely.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout bounds each HTTP round-trip. Default 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMinInterval sets the minimum spacing between unauthenticated network
// calls. Default 3s; zero disables pacing. Ignored when a credential is set.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.minInterval = d }
}

// WithCacheDir roots the default file store at dir instead of the per-user
// cache directory. Ignored when WithStore is used.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// WithStore replaces the default file store with any cache backend. The
// caller keeps ownership: Close does not close an injected store.
func WithStore(s cache.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithAuthMethod selects header or query credential placement.
// Default AuthHeader.
func WithAuthMethod(m AuthMethod) Option {
	return func(c *Client) { c.authMethod = m }
}

// WithFantasyWeights overrides entries of the built-in fantasy scoring table.
// Keys must exist in the built-in table; New rejects unknown keys.
func WithFantasyWeights(overrides map[string]float64) Option {
	return func(c *Client) { c.fantasyOverrides = overrides }
}

// WithLogger attaches a logger for request, cache, and pacing events.
// Default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying HTTP client. The configured
// timeout is not applied to an injected client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithHooks attaches an event hook set, e.g. NewPrometheusHooks.
func WithHooks(h Hooks) Option {
	return func(c *Client) { c.hooks = h }
}
