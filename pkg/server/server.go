// Package server exposes the agent over HTTP.
//
// The transport is deliberately thin: it decodes the request body, runs the
// payment gate, hands key and input to the dispatcher, and maps the
// dispatcher's error taxonomy onto HTTP status codes. All aggregation logic
// lives in the agent package.
//
// # Routes
//
//   - GET  /agent              — capability discovery document
//   - POST /entrypoints/{key}  — invoke an entrypoint
//
// # Status mapping
//
//   - soft not-found payloads    → 200 (inside the normal envelope)
//   - validation failure         → 400
//   - unknown entrypoint         → 404
//   - payment rejected           → 402
//   - upstream status or network → 502
//   - anything else              → 500
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gridfare/gridfare/pkg/agent"
	"github.com/gridfare/gridfare/pkg/config"
	gerrors "github.com/gridfare/gridfare/pkg/errors"
)

// maxBodyBytes caps inbound request bodies; entrypoint inputs are tiny.
const maxBodyBytes = 1 << 16

// Server serves the agent's entrypoints and its discovery document.
type Server struct {
	identity   config.Agent
	registry   *agent.Registry
	dispatcher *agent.Dispatcher
	verifier   Verifier
	logger     *log.Logger
}

// New creates a server over an initialized registry. A nil verifier
// defaults to [AllowAll]; a nil logger defaults to log.Default().
func New(identity config.Agent, registry *agent.Registry, verifier Verifier, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if verifier == nil {
		verifier = AllowAll{Logger: logger}
	}
	return &Server{
		identity:   identity,
		registry:   registry,
		dispatcher: agent.NewDispatcher(registry),
		verifier:   verifier,
		logger:     logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)

	r.Get("/agent", s.handleDiscovery)
	r.Post("/entrypoints/{key}", s.handleDispatch)

	return r
}

// Discovery is the capability discovery document generated from the
// registry. External directories consume this to list the agent.
type Discovery struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Endpoint    string           `json:"endpoint,omitempty"`
	Entrypoints []EntrypointInfo `json:"entrypoints"`
}

// EntrypointInfo describes one capability in the discovery document.
type EntrypointInfo struct {
	Key         string      `json:"key"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	Input       []FieldInfo `json:"input,omitempty"`
}

// FieldInfo describes one input field of an entrypoint contract.
type FieldInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// BuildDiscovery assembles the discovery document for an identity and
// registry.
func BuildDiscovery(identity config.Agent, registry *agent.Registry) Discovery {
	doc := Discovery{
		Name:        identity.Name,
		Description: identity.Description,
		Endpoint:    identity.Endpoint,
	}
	for _, ep := range registry.List() {
		info := EntrypointInfo{
			Key:         ep.Key,
			Description: ep.Description,
			Price:       ep.Price,
		}
		for _, f := range ep.Schema.Fields {
			info.Input = append(info.Input, FieldInfo{
				Name:        f.Name,
				Type:        string(f.Type),
				Description: f.Description,
				Required:    f.Required,
				Default:     f.Default,
			})
		}
		doc.Entrypoints = append(doc.Entrypoints, info)
	}
	return doc
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, BuildDiscovery(s.identity, s.registry))
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := chi.URLParam(r, "key")
	requestID := requestIDFrom(ctx)

	input, err := decodeInput(r)
	if err != nil {
		s.writeError(w, requestID, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}

	ep, err := s.registry.Get(key)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}

	if err := confirmPayment(ctx, s.verifier, ep.Key, ep.Price, requestID); err != nil {
		s.writeError(w, requestID, err)
		return
	}

	envelope, err := s.dispatcher.Dispatch(ctx, key, input)
	if err != nil {
		s.writeError(w, requestID, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

func decodeInput(r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return map[string]any{}, nil
	}
	var input map[string]any
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, err
	}
	return input, nil
}

// errorBody is the failure response shape surfaced by the transport layer.
type errorBody struct {
	Error struct {
		Code      string               `json:"code"`
		Message   string               `json:"message"`
		Fields    []gerrors.FieldError `json:"fields,omitempty"`
		RequestID string               `json:"requestId,omitempty"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	status := http.StatusInternalServerError
	code := gerrors.ErrCodeInternal

	var body errorBody
	var verr *gerrors.ValidationError
	var uerr *gerrors.UpstreamError

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		code = verr.Code()
		body.Error.Fields = verr.Fields
	case errors.As(err, &uerr):
		status = http.StatusBadGateway
		code = uerr.Code()
	case gerrors.Is(err, gerrors.ErrCodeNotRegistered):
		status = http.StatusNotFound
		code = gerrors.ErrCodeNotRegistered
	case gerrors.Is(err, gerrors.ErrCodeNetwork):
		status = http.StatusBadGateway
		code = gerrors.ErrCodeNetwork
	case gerrors.Is(err, gerrors.ErrCodeInvalidInput):
		status = http.StatusBadRequest
		code = gerrors.ErrCodeInvalidInput
	case errors.Is(err, ErrPaymentRejected):
		status = http.StatusPaymentRequired
		code = "PAYMENT_REQUIRED"
	}

	body.Error.Code = string(code)
	body.Error.Message = gerrors.UserMessage(err)
	body.Error.RequestID = requestID

	s.logger.Error("request failed", "status", status, "code", code, "request_id", requestID, "err", err)
	writeJSON(w, status, body)
}

// ErrPaymentRejected marks verifier rejections so the transport can map
// them to 402.
var ErrPaymentRejected = errors.New("payment rejected")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

// requestID attaches a fresh UUID to every request for log correlation and
// echoes it in the X-Request-Id response header.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	})
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// requestIDFrom retrieves the request ID attached by the middleware, or an
// empty string when none is present.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
