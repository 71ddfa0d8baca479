package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/opsboard/internal/mcp"
)

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, tenantID, sessionID, method string, params json.RawMessage) (any, error)
}

// Options configures the HTTP router.
type Options struct {
	// Handler serves direct JSON-RPC tool calls on /rpc.
	Handler MCPHandler
	// Streamable is the SDK streamable HTTP handler mounted on /mcp. Optional.
	Streamable http.Handler
	// Auth guards /rpc. When nil, requests are assigned DefaultTenant.
	Auth          func(http.Handler) http.Handler
	DefaultTenant string
	Logger        *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(SessionMiddleware)

	srv := &Server{handler: opts.Handler, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		} else {
			tenant := opts.DefaultTenant
			if tenant == "" {
				tenant = "default"
			}
			r.Use(DefaultTenantMiddleware(tenant))
		}
		r.Post("/rpc", srv.handleRPC)
	})

	// The SDK handler authenticates inside its own middleware chain.
	if opts.Streamable != nil {
		r.Handle("/mcp", opts.Streamable)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	tenantID, ok := TenantFromContext(r.Context())
	if !ok || tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	sessionID, _ := SessionIDFromContext(r.Context())

	result, err := s.handler.Handle(r.Context(), tenantID, sessionID, req.Method, req.Params)
	if err != nil {
		s.writeHandlerError(w, req, err)
		return
	}

	WriteResult(w, req.ID, result)
}

func (s *Server) writeHandlerError(w http.ResponseWriter, req Request, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, mcp.ErrUnknownMethod):
		WriteError(w, req.ID, ErrMethodNotFound, err.Error(), nil)
	default:
		if apiErr := mcp.MapError(err); apiErr != nil {
			code := ErrApplication
			if apiErr.Code == "INVALID_PARAMS" {
				code = ErrInvalidParams
			}
			WriteError(w, req.ID, code, apiErr.Message, apiErr)
			return
		}
		s.logger.Error("rpc call failed", "method", req.Method, "error", err)
		WriteError(w, req.ID, ErrInternal, err.Error(), nil)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}
