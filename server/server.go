// Package server implements the remote state store: the get_state and sync endpoints
// over a pluggable Store.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/etnz/hisab"
	"github.com/rs/zerolog"
)

// maxSyncBody bounds the size of a sync request.
const maxSyncBody = 10 << 20

// Store persists the six collections. Replace overwrites a whole collection, last writer wins.
type Store interface {
	Snapshot(ctx context.Context) (hisab.State, error)
	Replace(ctx context.Context, module hisab.Module, data json.RawMessage) error
}

type handler struct {
	store    Store
	logger   zerolog.Logger
	envelope bool
}

// Option configures the handler returned by New.
type Option func(*handler)

// WithLogger sets the request and error logger. The default logs nothing.
func WithLogger(l zerolog.Logger) Option { return func(h *handler) { h.logger = l } }

// WithEnvelope wraps the get_state answer as {"status":"success","data":{...}}.
func WithEnvelope() Option { return func(h *handler) { h.envelope = true } }

// New returns the http handler of the store.
func New(store Store, opts ...Option) http.Handler {
	h := &handler{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(h)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /get_state", h.getState)
	mux.HandleFunc("POST /sync", h.sync)
	return CORS(Logging(h.logger)(mux))
}

func (h *handler) getState(w http.ResponseWriter, r *http.Request) {
	state, err := h.store.Snapshot(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("cannot read state")
		http.Error(w, "cannot read state", http.StatusInternalServerError)
		return
	}
	state.Normalize()
	var body any = state
	if h.envelope {
		body = struct {
			Status string      `json:"status"`
			Data   hisab.State `json:"data"`
		}{"success", state}
	}
	writeJSON(w, http.StatusOK, body)
}

type syncRequest struct {
	Module string          `json:"module"`
	Data   json.RawMessage `json:"data"`
}

func (h *handler) sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSyncBody)).Decode(&req); err != nil {
		http.Error(w, "malformed sync request", http.StatusBadRequest)
		return
	}
	module, err := hisab.ParseModule(req.Module)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := canonical(module, req.Data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.store.Replace(r.Context(), module, data); err != nil {
		h.logger.Error().Err(err).Str("module", string(module)).Msg("cannot replace collection")
		http.Error(w, "cannot store collection", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var errNotArray = errors.New("data must be an array")

// canonical decodes data as module's records and encodes them back.
// null stands for an empty collection.
func canonical(module hisab.Module, data json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("[]")
	}
	if trimmed[0] != '[' {
		return nil, errNotArray
	}
	s := hisab.NewState()
	if err := s.SetRaw(module, trimmed); err != nil {
		return nil, err
	}
	return json.Marshal(s.Collection(module))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
