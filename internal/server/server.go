// Package server exposes the sentiment classifier over HTTP and websocket.
//
// The server plays the caller's part of the classifier contract: it rejects
// blank text before classifying and keeps one bounded History per websocket
// session.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tsawler/sentiment"
	"github.com/tsawler/sentiment/internal/config"
)

// errTextRequired is reported for blank input.
var errTextRequired = errors.New("text is required")

type textRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	ID        string           `json:"id"`
	Result    sentiment.Result `json:"result"`
	LatencyMS float64          `json:"latency_ms"`
}

type sentencesResponse struct {
	Sentences []sentiment.SentenceResult `json:"sentences"`
}

// Server routes classification requests to an Analyzer.
type Server struct {
	analyzer *sentiment.Analyzer
	cfg      config.ServerConfig
	delay    time.Duration
	logger   *slog.Logger
	upgrader websocket.Upgrader
	router   chi.Router
}

// New creates a Server. A nil logger discards log output.
func New(analyzer *sentiment.Analyzer, cfg config.ServerConfig, demo config.DemoConfig, logger *slog.Logger) *Server {
	if analyzer == nil {
		analyzer = sentiment.NewAnalyzer()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		analyzer: analyzer,
		cfg:      cfg,
		delay:    demo.Delay,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/sentiment", func(r chi.Router) {
		r.Get("/samples", s.handleSamples)
		r.Post("/classify", s.handleClassify)
		r.Post("/explain", s.handleExplain)
		r.Post("/sentences", s.handleSentences)
		r.Get("/ws", s.handleWebsocket)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on cfg.Addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("sentiment server started", "addr", s.cfg.Addr, "lexicon_size", s.analyzer.Lexicon().Size())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("sentiment server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"lexicon_size": s.analyzer.Lexicon().Size(),
	})
}

func (s *Server) handleSamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"samples": sentiment.SampleTexts()})
}

func (s *Server) handleClassify(w http.ResponseWriter, req *http.Request) {
	text, ok := s.readText(w, req)
	if !ok {
		return
	}

	start := time.Now()
	if err := s.pace(req.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	result := s.analyzer.Classify(text)

	writeJSON(w, http.StatusOK, classifyResponse{
		ID:        uuid.NewString(),
		Result:    result,
		LatencyMS: roundMillis(time.Since(start)),
	})
}

func (s *Server) handleExplain(w http.ResponseWriter, req *http.Request) {
	text, ok := s.readText(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.Explain(text))
}

func (s *Server) handleSentences(w http.ResponseWriter, req *http.Request) {
	text, ok := s.readText(w, req)
	if !ok {
		return
	}

	results, err := s.analyzer.ClassifySentences(text)
	if err != nil {
		s.logger.Error("sentence classification failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if results == nil {
		results = []sentiment.SentenceResult{}
	}
	writeJSON(w, http.StatusOK, sentencesResponse{Sentences: results})
}

// readText decodes a textRequest and rejects blank text. It writes the error
// response itself and reports whether the handler should continue.
func (s *Server) readText(w http.ResponseWriter, req *http.Request) (string, bool) {
	var in textRequest
	if err := decodeJSONBody(req, s.cfg.ReadBodyMaxBytes, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	if strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, errTextRequired)
		return "", false
	}
	return in.Text, true
}

// pace waits out the configured demo delay, returning early with the context
// error if ctx ends first.
func (s *Server) pace(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func decodeJSONBody(req *http.Request, maxBytes int64, out any) error {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("invalid json: multiple JSON values")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000.0
	return math.Round(ms*1000) / 1000
}
