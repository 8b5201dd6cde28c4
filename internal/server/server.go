// Package server exposes the color operations as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/maax3v3/colr/internal/color"
	"github.com/maax3v3/colr/internal/config"
	"github.com/maax3v3/colr/internal/imaging"
	"github.com/maax3v3/colr/internal/renderer"
)

const (
	maxRandom       = 100
	shutdownTimeout = 5 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	conv   *color.Converter
	cfg    config.Config
	log    *slog.Logger
	font   renderer.FontRenderer
	router chi.Router
}

// New creates a Server backed by conv. cfg supplies the default blend step
// and factors, the read timeout and the swatch size limit.
func New(conv *color.Converter, cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		conv: conv,
		cfg:  cfg,
		log:  log.With("component", "server"),
		font: renderer.NewBitmapFont(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/parse", s.handleParse)
		r.Get("/blend", s.handleBlend)
		r.Get("/lighten", s.handleLighten)
		r.Get("/darken", s.handleDarken)
		r.Get("/invert", s.handleColorOp(s.conv.Invert))
		r.Get("/text-color", s.handleColorOp(s.conv.TextColor))
		r.Get("/random", s.handleRandom)
		r.Get("/name", s.handleName)
		r.Get("/swatch.png", s.handleSwatch)
	})
	return r
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type colorResponse struct {
	Space    string    `json:"space"`
	Channels []float64 `json:"channels"`
	CSS      string    `json:"css"`
	Hex      string    `json:"hex"`
}

func newColorResponse(c color.Color) colorResponse {
	return colorResponse{
		Space:    c.Space().String(),
		Channels: c.Channels(),
		CSS:      c.CSS(),
		Hex:      c.Hex(),
	}
}

type nameResponse struct {
	Name  string `json:"name"`
	Exact bool   `json:"exact"`
}

type randomResponse struct {
	Colors []string `json:"colors"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// badRequest marks errors caused by the request's parameters.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }
func (e badRequest) Unwrap() error { return e.err }

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	c, err := s.conv.Parse(color.CSS(r.URL.Query().Get("color")))
	s.respondColor(w, r, c, err)
}

func (s *Server) handleBlend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	// Blend clamps the step itself.
	t, err := floatParam(r, "t", s.cfg.Defaults.Blend, math.Inf(-1), math.Inf(1))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	a, b := color.CSS(q.Get("a")), color.CSS(q.Get("b"))

	var c color.Color
	switch space := q.Get("space"); space {
	case "", "rgb":
		c, err = s.conv.Blend(a, b, t)
	case "hsl":
		c, err = s.conv.BlendHSL(a, b, t)
	default:
		err = badRequest{fmt.Errorf("space must be rgb or hsl, got %q", space)}
	}
	s.respondColor(w, r, c, err)
}

func (s *Server) handleLighten(w http.ResponseWriter, r *http.Request) {
	f, err := floatParam(r, "factor", s.cfg.Defaults.Lighten, 0, math.Inf(1))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	c, err := s.conv.Lighten(color.CSS(r.URL.Query().Get("color")), f)
	s.respondColor(w, r, c, err)
}

func (s *Server) handleDarken(w http.ResponseWriter, r *http.Request) {
	f, err := floatParam(r, "factor", s.cfg.Defaults.Darken, 0, 1)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	c, err := s.conv.Darken(color.CSS(r.URL.Query().Get("color")), f)
	s.respondColor(w, r, c, err)
}

func (s *Server) handleColorOp(op func(color.Input) (color.Color, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := op(color.CSS(r.URL.Query().Get("color")))
		s.respondColor(w, r, c, err)
	}
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		var err error
		n, err = strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRandom {
			s.respondError(w, r, badRequest{fmt.Errorf("n must be an integer between 1 and %d, got %q", maxRandom, v)})
			return
		}
	}
	resp := randomResponse{Colors: make([]string, n)}
	for i := range resp.Colors {
		resp.Colors[i] = s.conv.Random()
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleName(w http.ResponseWriter, r *http.Request) {
	name, exact, err := s.conv.Name(color.CSS(r.URL.Query().Get("color")))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, nameResponse{Name: name, Exact: exact})
}

func (s *Server) handleSwatch(w http.ResponseWriter, r *http.Request) {
	inputs := r.URL.Query()["color"]
	if len(inputs) == 0 || len(inputs) > s.cfg.Server.MaxSwatch {
		s.respondError(w, r, badRequest{fmt.Errorf("between 1 and %d color parameters required, got %d", s.cfg.Server.MaxSwatch, len(inputs))})
		return
	}
	colors := make([]color.RGB, len(inputs))
	for i, in := range inputs {
		c, err := s.conv.Parse(color.CSS(in))
		if err != nil {
			s.respondError(w, r, fmt.Errorf("color %d: %w", i+1, err))
			return
		}
		colors[i] = c.RGB()
	}

	img := renderer.Render(colors, s.font, renderer.DefaultConfig())
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.EncodePNG(w, img); err != nil {
		s.log.Error("writing swatch", "err", err, "request_id", middleware.GetReqID(r.Context()))
	}
}

// floatParam reads an optional float query parameter within [lo, hi].
func floatParam(r *http.Request, name string, def, lo, hi float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) {
		return 0, badRequest{fmt.Errorf("%s: invalid number %q", name, v)}
	}
	if f < lo || f > hi {
		if math.IsInf(hi, 1) {
			return 0, badRequest{fmt.Errorf("%s must be >= %v, got %v", name, lo, f)}
		}
		return 0, badRequest{fmt.Errorf("%s must be between %v and %v, got %v", name, lo, hi, f)}
	}
	return f, nil
}

func (s *Server) respondColor(w http.ResponseWriter, r *http.Request, c color.Color, err error) {
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, newColorResponse(c))
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "err", err, "request_id", middleware.GetReqID(r.Context()))
	} else {
		s.log.Debug("bad request", "err", err, "request_id", middleware.GetReqID(r.Context()))
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		pe *color.ParseError
		br badRequest
	)
	switch {
	case errors.As(err, &pe), errors.As(err, &br), errors.Is(err, color.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v before sending the status, so a value that cannot be
// encoded turns into a 500 instead of an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encoding response", "err", err, "request_id", middleware.GetReqID(r.Context()))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "encoding response failed"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
