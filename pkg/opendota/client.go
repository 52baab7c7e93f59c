package opendota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/go-opendota/pkg/cache"
)

// DefaultBaseURL is the public OpenDota API root.
const DefaultBaseURL = "https://api.opendota.com/api"

// Defaults applied by New when the corresponding option is absent.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMinInterval = 3 * time.Second
)

// EnvAPIKey is the environment variable consulted when no explicit API key
// is configured.
const EnvAPIKey = "OPENDOTA_API_KEY"

// Client is an OpenDota API client.
//
// Every call flows through one fetch path: the response cache is consulted
// first, unauthenticated calls are spaced apart by the rate-limit gate, the
// credential is placed, and failures are classified into error kinds.
// Construct with New and release with Close.
//
// All methods are safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	authMethod  AuthMethod
	minInterval time.Duration
	timeout     time.Duration
	cacheDir    string

	fantasyOverrides map[string]float64
	fantasy          map[string]float64

	httpClient *http.Client
	store      cache.Store
	ownStore   bool // Close only closes stores the client created
	limiter    *pacer
	logger     *log.Logger
	hooks      Hooks
}

// New constructs a Client with the given options.
//
// Without options the client talks to the public API unauthenticated (3s
// between network calls), caches responses under the per-user cache
// directory, and logs nothing. An OPENDOTA_API_KEY environment variable is
// picked up automatically.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:     DefaultBaseURL,
		authMethod:  AuthHeader,
		minInterval: DefaultMinInterval,
		timeout:     DefaultTimeout,
		logger:      log.New(io.Discard),
		hooks:       NoopHooks{},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimSuffix(c.baseURL, "/")
	if c.apiKey == "" {
		c.apiKey = os.Getenv(EnvAPIKey)
	}

	weights, err := mergeFantasyWeights(c.fantasyOverrides)
	if err != nil {
		return nil, err
	}
	c.fantasy = weights

	if c.store == nil {
		dir := c.cacheDir
		if dir == "" {
			d, err := cache.DefaultDir()
			if err != nil {
				return nil, wrapError(CodeConfig, err, "resolve cache directory")
			}
			dir = d
		}
		store, err := cache.NewFileStore(dir)
		if err != nil {
			return nil, wrapError(CodeConfig, err, "create cache directory %s", dir)
		}
		c.store = store
		c.ownStore = true
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	// Authenticated callers have their own quota; only pace anonymous ones.
	if c.apiKey == "" && c.minInterval > 0 {
		c.limiter = newPacer(c.minInterval)
	}

	return c, nil
}

// Close releases idle transport connections and any store the client
// created. Injected stores stay open.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	if c.ownStore {
		return c.store.Close()
	}
	return nil
}

// Get fetches an endpoint through the response cache and returns the raw
// JSON body. refresh forces a network call and overwrites the cached entry.
//
// Typed accessors such as GetMatch cover the documented endpoints; Get is
// the escape hatch for everything else.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, refresh bool) (json.RawMessage, error) {
	return c.fetch(ctx, http.MethodGet, endpoint, params, fetchOptions{useCache: true, force: refresh})
}

// GetUncached fetches an endpoint bypassing the cache entirely: nothing is
// read from it and nothing is written to it.
func (c *Client) GetUncached(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	return c.fetch(ctx, http.MethodGet, endpoint, params, fetchOptions{})
}

// fetchOptions control cache participation for a single fetch.
type fetchOptions struct {
	useCache bool // consult and populate the cache
	force    bool // skip the read but still write the result
}

// fetch runs one request through the full pipeline: cache read, rate-limit
// gate, credential placement, transport, status classification, cache write.
//
// The cache identity is derived from the URL and caller parameters before
// the credential is placed, so authenticated and anonymous runs share
// entries. Only GET responses are ever cached.
func (c *Client) fetch(ctx context.Context, method, endpoint string, params url.Values, opts fetchOptions) (json.RawMessage, error) {
	endpoint = strings.Trim(endpoint, "/")
	fullURL := c.baseURL + "/" + endpoint
	family := cache.Family(endpoint)
	digest := cache.Key(fullURL, params)
	cacheable := method == http.MethodGet && opts.useCache

	logger := c.logger.With("request_id", uuid.NewString(), "endpoint", endpoint)

	if cacheable && !opts.force {
		data, ok, err := c.store.Load(ctx, family, digest)
		if err != nil {
			logger.Warn("cache read failed", "family", family, "error", err)
		}
		if ok {
			logger.Debug("cache hit", "family", family)
			c.hooks.OnCacheHit(ctx, family)
			return data, nil
		}
		logger.Debug("cache miss", "family", family)
		c.hooks.OnCacheMiss(ctx, family)
	}

	if c.limiter != nil {
		waited, err := c.limiter.wait(ctx)
		if err != nil {
			return nil, wrapError(CodeTransport, err, "%s %s: interrupted while pacing", method, endpoint)
		}
		if waited > 0 {
			logger.Debug("paced", "waited", waited)
			c.hooks.OnRateLimitWait(ctx, waited)
		}
	}

	// Copy params before placing the credential; the caller's values and
	// the cache identity must never see it.
	reqURL := fullURL
	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	if c.apiKey != "" && c.authMethod == AuthQuery {
		query.Set("api_key", c.apiKey)
	}
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, wrapError(CodeTransport, err, "%s %s: build request", method, endpoint)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" && c.authMethod == AuthHeader {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.hooks.OnRequest(ctx, method, endpoint)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.hooks.OnError(ctx, method, endpoint, err)
		logger.Debug("request failed", "error", err)
		return nil, classifyTransport(method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	c.hooks.OnResponse(ctx, method, endpoint, resp.StatusCode, duration)
	if err != nil {
		return nil, wrapError(CodeTransport, err, "%s %s: read response", method, endpoint)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Debug("unexpected status", "status", resp.StatusCode)
		return nil, apiError(resp.StatusCode, method, endpoint, body)
	}

	if cacheable {
		if err := c.store.Save(ctx, family, digest, body); err != nil {
			logger.Warn("cache write failed", "family", family, "error", err)
		} else {
			c.hooks.OnCacheWrite(ctx, family, len(body))
		}
	}

	logger.Debug("fetched", "status", resp.StatusCode, "bytes", len(body), "duration", duration)
	return body, nil
}

// apiError maps a non-200 response to its error kind.
func apiError(status int, method, endpoint string, body []byte) *Error {
	switch status {
	case http.StatusNotFound:
		return &Error{
			Code:       CodeNotFound,
			StatusCode: status,
			Message:    fmt.Sprintf("%s %s: not found", method, endpoint),
		}
	case http.StatusTooManyRequests:
		return &Error{
			Code:       CodeRateLimited,
			StatusCode: status,
			Message:    fmt.Sprintf("%s %s: rate limited", method, endpoint),
		}
	default:
		return &Error{
			Code:       CodeAPI,
			StatusCode: status,
			Message:    fmt.Sprintf("%s %s: unexpected status %d", method, endpoint, status),
			Body:       strings.TrimSpace(string(body)),
		}
	}
}

// classifyTransport wraps a failure that produced no response.
func classifyTransport(method, endpoint string, err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return wrapError(CodeTransport, err, "%s %s: timeout", method, endpoint)
	}
	return wrapError(CodeTransport, err, "%s %s: network error", method, endpoint)
}

// getJSON fetches a cached GET and decodes the body into T.
func getJSON[T any](ctx context.Context, c *Client, endpoint string, params url.Values, refresh bool) (T, error) {
	var v T
	data, err := c.Get(ctx, endpoint, params, refresh)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, wrapError(CodeAPI, err, "decode %s response", endpoint)
	}
	return v, nil
}
