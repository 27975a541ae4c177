// Package server exposes the scoring service over HTTP and WebSocket. It
// persists settled scans in SQLite and pushes each new verdict to connected
// live-feed subscribers.
package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/ayeshahabib/scamshield/internal/logging"
	"github.com/ayeshahabib/scamshield/internal/model"
	"github.com/ayeshahabib/scamshield/internal/scoring"

	_ "modernc.org/sqlite" // SQLite driver
)

// historyLimit caps the /api/history response.
const historyLimit = 10

// Server is the HTTP + WebSocket API surface for the scoring service.
type Server struct {
	cfg      Config
	router   chi.Router
	engine    *scoring.Engine
	store     *scoring.ScanStore
	blacklist *scoring.Blacklist
	upgrader  websocket.Upgrader
	logger   logging.Logger
	db       *sql.DB

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter

	feedMu sync.Mutex
	feeds  map[chan model.ScanResult]struct{}
}

// NewServer opens the database, prepares the scoring layers and builds the
// route table.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "scamshield.db"
	}
	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	blacklist, err := scoring.NewBlacklist(db, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blacklist: %w", err)
	}
	store, err := scoring.NewScanStore(db, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating scan store: %w", err)
	}

	r := chi.NewRouter()
	s := &Server{
		cfg:       cfg,
		router:    r,
		engine:    scoring.NewEngine(blacklist, logger),
		store:     store,
		blacklist: blacklist,
		logger:    logger,
		db:        db,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
		limiters: make(map[string]*rate.Limiter),
		feeds:    make(map[chan model.ScanResult]struct{}),
	}

	s.routes()
	return s, nil
}

// SeedBlacklist inserts the starter blacklist rows. Idempotent.
func (s *Server) SeedBlacklist(ctx context.Context) error {
	return s.blacklist.Seed(ctx)
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/api/scan", s.optionsHandler("POST"))
	r.Options("/api/history", s.optionsHandler("GET"))
	r.Options("/api/stats", s.optionsHandler("GET"))
	r.Options("/api/health", s.optionsHandler("GET"))

	r.Post("/api/scan", s.handleScan)
	r.Get("/api/history", s.handleHistory)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/health", s.handleHealth)

	// WebSocket live feed of settled scans
	r.Get("/api/ws/scans", s.handleScanFeedWS)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && r.Method == http.MethodPost {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close releases the database and disconnects live-feed subscribers.
func (s *Server) Close() {
	s.feedMu.Lock()
	for ch := range s.feeds {
		close(ch)
		delete(s.feeds, ch)
	}
	s.feedMu.Unlock()

	if s.db != nil {
		s.db.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// --- Rate limiting ---

func (s *Server) limiterFor(remoteAddr string) *rate.Limiter {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()

	lim, ok := s.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(s.cfg.RateLimit.RPS), s.cfg.RateLimit.Burst)
		s.limiters[host] = lim
	}
	return lim
}

// --- HTTP handlers ---

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.cfg.RateLimit.Enabled && !s.limiterFor(r.RemoteAddr).Allow() {
		s.logger.Warn("scan rate limited", logging.Field{Key: "remote", Value: r.RemoteAddr})
		writeError(w, http.StatusTooManyRequests, "too many scan requests")
		return
	}

	var body model.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	res, err := s.engine.Score(r.Context(), body.Content, body.ScanType)
	if err != nil {
		if errors.Is(err, scoring.ErrEmptyContent) {
			writeError(w, http.StatusBadRequest, "content cannot be empty")
			return
		}
		s.logger.Warn("scoring content", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	if err := s.store.Insert(r.Context(), res); err != nil {
		// The verdict still stands; history just misses this entry.
		s.logger.Warn("persisting scan", logging.Field{Key: "error", Value: err.Error()})
	}

	s.broadcast(*res)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := historyLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 && v < historyLimit {
			limit = v
		}
	}

	scans, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Warn("listing scan history", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if scans == nil {
		scans = []model.ScanResult{}
	}
	s.logger.Info("listed scan history", logging.Field{Key: "count", Value: len(scans)})
	writeJSON(w, http.StatusOK, scans)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.TierCounts(r.Context())
	if err != nil {
		s.logger.Warn("aggregating stats", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// --- WebSocket live feed ---

// broadcast fans one settled scan out to all feed subscribers. Slow readers
// are skipped rather than blocking the scan response.
func (s *Server) broadcast(res model.ScanResult) {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	for ch := range s.feeds {
		select {
		case ch <- res:
		default:
		}
	}
}

func (s *Server) subscribe() chan model.ScanResult {
	ch := make(chan model.ScanResult, 16)
	s.feedMu.Lock()
	s.feeds[ch] = struct{}{}
	s.feedMu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan model.ScanResult) {
	s.feedMu.Lock()
	if _, ok := s.feeds[ch]; ok {
		delete(s.feeds, ch)
		close(ch)
	}
	s.feedMu.Unlock()
}

func (s *Server) handleScanFeedWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	s.logger.Info("scan feed subscriber connected", logging.Field{Key: "remote", Value: r.RemoteAddr})

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case res, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(res); err != nil {
				// Assume client disconnected
				return
			}
		}
	}
}
