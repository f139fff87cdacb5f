// Package web serves a read-only JSON leaderboard over HTTP.
//
// Routes:
//   - GET /health                  liveness probe
//   - GET /variants                boards with recorded scores
//   - GET /scores/{variant}?limit= top games and best score of one board
//   - GET /recent?limit=           latest games across all boards
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreReader is the part of the score store the API reads from.
type ScoreReader interface {
	Variants() ([]string, error)
	TopGames(variant string, limit int) ([]storage.GameRecord, error)
	RecentGames(limit int) ([]storage.GameRecord, error)
	Stats(variant string) (*storage.VariantStats, error)
}

// Server bundles the router and the score store.
type Server struct {
	r      *chi.Mux
	store  ScoreReader
	logger *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(store ScoreReader, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/variants", s.handleVariants)
	s.r.Get("/scores/{variant}", s.handleScores)
	s.r.Get("/recent", s.handleRecent)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}

// ------------------------------- handlers ----------------------------------

type gameJSON struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	Variant   string    `json:"variant"`
	Score     int       `json:"score"`
	Length    int       `json:"length"`
	Ticks     int64     `json:"ticks"`
	Won       bool      `json:"won"`
	CreatedAt time.Time `json:"createdAt"`
}

type scoresRes struct {
	Variant    string     `json:"variant"`
	BestScore  int        `json:"bestScore"`
	GamesCount int        `json:"gamesCount"`
	AvgScore   float64    `json:"avgScore"`
	Games      []gameJSON `json:"games"`
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := s.store.Variants()
	if err != nil {
		s.logger.Error("list variants", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if variants == nil {
		variants = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"variants": variants})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return
	}

	games, err := s.store.TopGames(variant, limit)
	if err != nil {
		s.logger.Error("top games", "variant", variant, "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	stats, err := s.store.Stats(variant)
	if err != nil {
		s.logger.Error("variant stats", "variant", variant, "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	writeJSON(w, http.StatusOK, scoresRes{
		Variant:    variant,
		BestScore:  stats.BestScore,
		GamesCount: stats.GamesCount,
		AvgScore:   stats.AvgScore,
		Games:      toJSON(games),
	})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_limit")
		return
	}

	games, err := s.store.RecentGames(limit)
	if err != nil {
		s.logger.Error("recent games", "error", err)
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]gameJSON{"games": toJSON(games)})
}

// parseLimit reads ?limit=, defaulting to defaultLimit and capping at maxLimit.
func parseLimit(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, maxLimit), true
}

func toJSON(games []storage.GameRecord) []gameJSON {
	out := make([]gameJSON, 0, len(games))
	for _, g := range games {
		out = append(out, gameJSON{
			ID:        g.ID,
			SessionID: g.SessionID,
			Variant:   g.Variant,
			Score:     g.Score,
			Length:    g.Length,
			Ticks:     g.Ticks,
			Won:       g.Won,
			CreatedAt: g.CreatedAt,
		})
	}
	return out
}

// ------------------------------ middleware ---------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with status and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
		)
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
