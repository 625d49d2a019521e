// Package cloud is the client of the remote state store.
//
// The store exposes two endpoints:
//
//	GET  {base}/get_state  the six collections as a JSON object
//	POST {base}/sync       {"module": name, "data": [...]} replaces one collection
//
// Remote failures never reach the caller: FetchAll degrades to the local cache,
// Persist reports false. The cause is kept in Status and LastError.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/hisab"
	"github.com/rs/zerolog"
)

// Status is the connectivity observed on the last remote call.
type Status int

const (
	Unknown Status = iota
	Connected
	Offline
)

func (s Status) String() string {
	switch s {
	case Connected:
		return "connected"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Client implements hisab.Syncer against a remote state store.
type Client struct {
	base     string
	http     *http.Client
	cache    Cache
	dataPath string
	logger   zerolog.Logger

	cacheMu sync.Mutex // serializes the read-modify-write of the cache blob.

	mu      sync.Mutex
	status  Status
	lastErr error
}

var _ hisab.Syncer = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http client used for remote calls.
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithCache sets the local cache. The default is a MemoryCache.
func WithCache(cache Cache) Option { return func(c *Client) { c.cache = cache } }

// WithDataPath sets the JSONPath locating the state object in the get_state answer.
//
// "$" (the default) reads the answer as is, "$.data" reads an envelope like
// {"status":"success","data":{...}}.
func WithDataPath(path string) Option { return func(c *Client) { c.dataPath = path } }

// WithLogger sets the logger. The default logs nothing.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.logger = l } }

// New returns a client of the store at base.
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:     strings.TrimSuffix(base, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    new(MemoryCache),
		dataPath: "$",
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status returns the connectivity observed on the last remote call.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastError returns the cause of the last degraded call, nil when none.
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) connected() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Connected
}

func (c *Client) offline(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Offline
	c.lastErr = err
}

// FetchAll returns the remote state and refreshes the cache with it.
// When the remote store fails it returns the cached state, or an empty one.
func (c *Client) FetchAll(ctx context.Context) hisab.State {
	state, err := c.fetch(ctx)
	if err != nil {
		c.offline(err)
		c.logger.Warn().Err(err).Msg("cannot fetch remote state, serving local cache")
		return c.cached()
	}
	c.connected()

	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if err := c.store(state); err != nil {
		c.logger.Error().Err(err).Msg("cannot write local cache")
	}
	return state
}

// Persist replaces module's collection in the cache, then in the remote store.
// It reports whether the remote store accepted it. The cache is written either way.
func (c *Client) Persist(ctx context.Context, module hisab.Module, collection any) bool {
	data, err := json.Marshal(collection)
	if err != nil {
		c.logger.Error().Err(err).Str("module", string(module)).Msg("cannot encode collection")
		return false
	}
	if err := c.cacheModule(module, data); err != nil {
		c.logger.Error().Err(err).Str("module", string(module)).Msg("cannot write local cache")
	}

	if err := c.push(ctx, module, data); err != nil {
		c.offline(err)
		c.logger.Warn().Err(err).Str("module", string(module)).Msg("cannot sync module")
		return false
	}
	c.connected()
	c.logger.Debug().Str("module", string(module)).Msg("synced")
	return true
}

func (c *Client) fetch(ctx context.Context) (hisab.State, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/get_state", nil)
	if err != nil {
		return hisab.State{}, err
	}
	body, err := c.do(req, "get_state")
	if err != nil {
		return hisab.State{}, err
	}
	data, err := c.locate(body)
	if err != nil {
		return hisab.State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	state, err := hisab.DecodeState(data)
	if err != nil {
		return hisab.State{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return state, nil
}

func (c *Client) push(ctx context.Context, module hisab.Module, data []byte) error {
	payload, err := json.Marshal(struct {
		Module hisab.Module    `json:"module"`
		Data   json.RawMessage `json:"data"`
	}{module, data})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/sync", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req, "sync")
	return err
}

// do sends req and returns the body of a 2xx answer.
func (c *Client) do(req *http.Request, op string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteRejectedError{Op: op, Status: resp.StatusCode}
	}
	return body, nil
}

// locate extracts the state object from the get_state answer.
func (c *Client) locate(body []byte) ([]byte, error) {
	if c.dataPath == "" || c.dataPath == "$" {
		return body, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(c.dataPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", c.dataPath, err)
	}
	// wildcard paths return a list, keep the first match.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return json.Marshal(jval)
}

// cached returns the state in the cache, or an empty state.
func (c *Client) cached() hisab.State {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	state, err := c.load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.offline(err)
			c.logger.Error().Err(err).Msg("cannot read local cache")
		}
		return hisab.NewState()
	}
	return state
}

func (c *Client) cacheModule(module hisab.Module, data []byte) error {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	state, err := c.load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn().Err(err).Msg("discarding local cache")
		}
		state = hisab.NewState()
	}
	if err := state.SetRaw(module, data); err != nil {
		return err
	}
	return c.store(state)
}

// load reads the cache. Callers hold cacheMu.
func (c *Client) load() (hisab.State, error) {
	data, err := c.cache.Load()
	if err != nil {
		return hisab.State{}, err
	}
	state, err := hisab.DecodeState(data)
	if err != nil {
		return hisab.State{}, fmt.Errorf("%w: %v", ErrLocalCacheCorrupt, err)
	}
	return state, nil
}

// store writes the cache. Callers hold cacheMu.
func (c *Client) store(state hisab.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.cache.Store(data)
}
