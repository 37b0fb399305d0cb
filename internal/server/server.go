// Package server exposes the render pipeline over HTTP.
//
// The API is small: POST /api/render accepts a JSON body with the source
// code, the art text, and optional overrides, and returns the rendered
// output plus metadata. GET /healthz reports liveness. Every request is
// tagged with a UUID that appears in the logs and the X-Request-ID
// response header.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/silhouette/pkg/pipeline"
)

// maxBodyBytes bounds request bodies. Code and art together rarely pass
// a few megabytes; anything larger is rejected early.
const maxBodyBytes = 16 << 20

// Server handles HTTP rendering requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/render", s.handleRender)
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// renderRequest is the body of POST /api/render.
type renderRequest struct {
	Code   string `json:"code"`
	Art    string `json:"art"`
	Width  int    `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
}

// renderResponse is the body of a successful render.
type renderResponse struct {
	Output   string `json:"output"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Tokens   int    `json:"tokens"`
	Lines    int    `json:"lines"`
	Seed     int64  `json:"seed"`
	CacheHit bool   `json:"cache_hit"`
	RunID    string `json:"run_id"`
}

// errorResponse is the body of any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}
	if req.Width < 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "width must be positive"})
		return
	}

	opts := pipeline.Options{
		Code:  req.Code,
		Art:   req.Art,
		Width: req.Width,
		Seed:  req.Seed,
	}
	if req.Height != nil {
		opts.Height = *req.Height
		opts.HasHeight = true
	}

	res, err := s.render(r, opts)
	if err != nil {
		s.logger.Error("render failed", "request", requestIDFrom(r), "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.logger.Info("rendered",
		"request", requestIDFrom(r),
		"tokens", res.Stats.TokenCount,
		"lines", res.Stats.Lines,
		"cache_hit", res.CacheHit,
		"duration", time.Since(start).Round(time.Millisecond))

	writeJSON(w, http.StatusOK, renderResponse{
		Output:   res.Output,
		Width:    res.Width,
		Height:   res.Height,
		Tokens:   res.Stats.TokenCount,
		Lines:    res.Stats.Lines,
		Seed:     res.Seed,
		CacheHit: res.CacheHit,
		RunID:    res.RunID,
	})
}

// render executes the pipeline, converting engine contract panics
// (undersized grid, oversized token) into errors so one bad request
// cannot take the server down.
func (s *Server) render(r *http.Request, opts pipeline.Options) (res *pipeline.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &renderPanic{value: rec}
		}
	}()
	return s.runner.Execute(r.Context(), opts)
}

// renderPanic wraps a recovered layout panic as an error.
type renderPanic struct{ value any }

func (p *renderPanic) Error() string {
	if s, ok := p.value.(string); ok {
		return s
	}
	return "render failed"
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

// requestID tags every request with a UUID, exposed via X-Request-ID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		ctx := contextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
