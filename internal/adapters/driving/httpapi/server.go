package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/custodia-labs/foodtrend/internal/core/domain"
)

// shutdownTimeout bounds graceful shutdown once the context ends.
const shutdownTimeout = 5 * time.Second

// Server exposes the trend, search and post services over HTTP.
type Server struct {
	ports  *Ports
	opts   Options
	logger *logrus.Entry
	mux    *http.ServeMux
}

// NewServer creates a server. Zero-valued options fall back to DefaultOptions.
func NewServer(ports *Ports, opts Options, logger *logrus.Entry) (*Server, error) {
	if ports == nil || ports.Trends == nil || ports.Search == nil || ports.Posts == nil {
		return nil, errors.New("httpapi: trend, search and post services are required")
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		ports:  ports,
		opts:   withDefaults(opts),
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

func withDefaults(opts Options) Options {
	d := DefaultOptions()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&opts.TrendDays, d.TrendDays)
	fill(&opts.TrendLimit, d.TrendLimit)
	fill(&opts.CuisineDays, d.CuisineDays)
	fill(&opts.CuisineLimit, d.CuisineLimit)
	fill(&opts.SearchDays, d.SearchDays)
	fill(&opts.SearchLimit, d.SearchLimit)
	fill(&opts.PostLimit, d.PostLimit)
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = d.AllowOrigin
	}
	return opts
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/trends/", s.handleTrends)
	s.mux.HandleFunc("GET /api/trending-cuisines/", s.handleCuisines)
	s.mux.HandleFunc("GET /api/search/", s.handleSearch)
	s.mux.HandleFunc("GET /api/posts/", s.handlePosts)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the routed handler wrapped in CORS and access logging.
func (s *Server) Handler() http.Handler {
	return s.accessLog(s.cors(s.mux))
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting API server on %s", l.Addr())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// ==================== Handlers ====================

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	days, limit, ok := s.windowParams(w, r, s.opts.TrendDays, s.opts.TrendLimit)
	if !ok {
		return
	}

	rows, err := s.ports.Trends.TrendingTerms(r.Context(), domain.TrendOptions{Days: days, Limit: limit})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, trendResponse[termTrendView]{
		Days:    days,
		Limit:   limit,
		Results: termTrendViews(rows),
	})
}

func (s *Server) handleCuisines(w http.ResponseWriter, r *http.Request) {
	days, limit, ok := s.windowParams(w, r, s.opts.CuisineDays, s.opts.CuisineLimit)
	if !ok {
		return
	}

	rows, err := s.ports.Trends.TrendingCuisines(r.Context(), domain.TrendOptions{Days: days, Limit: limit})
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, trendResponse[cuisineTrendView]{
		Days:    days,
		Limit:   limit,
		Results: cuisineTrendViews(rows),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		jsonResponse(w, http.StatusBadRequest, errorResponse{Results: []any{}, Error: "Missing q parameter"})
		return
	}

	days, limit, ok := s.windowParams(w, r, s.opts.SearchDays, s.opts.SearchLimit)
	if !ok {
		return
	}

	var term *string
	if r.URL.Query().Has("term") {
		t := r.URL.Query().Get("term")
		term = &t
	}

	opts := domain.SearchOptions{Days: days, Limit: limit}
	if term != nil {
		opts.Term = *term
	}

	results, err := s.ports.Search.Search(r.Context(), q, opts)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, searchResponse{
		Query:   q,
		Days:    days,
		Limit:   limit,
		Term:    term,
		Results: searchViews(results),
	})
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", s.opts.PostLimit)
	if !ok {
		return
	}

	docs, err := s.ports.Posts.Recent(r.Context(), limit)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, postsResponse{Limit: limit, Results: postViews(docs)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ==================== Helpers ====================

func (s *Server) windowParams(w http.ResponseWriter, r *http.Request, defDays, defLimit int) (int, int, bool) {
	days, ok := intParam(w, r, "days", defDays)
	if !ok {
		return 0, 0, false
	}
	limit, ok := intParam(w, r, "limit", defLimit)
	if !ok {
		return 0, 0, false
	}
	return days, limit, true
}

// intParam reads a positive integer query parameter, writing a 400
// response when it is malformed.
func intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		jsonResponse(w, http.StatusBadRequest, errorResponse{
			Results: []any{},
			Error:   fmt.Sprintf("Invalid %s parameter", name),
		})
		return 0, false
	}
	return v, true
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.WithFields(logrus.Fields{
		"path":  r.URL.Path,
		"error": err.Error(),
	}).Error("request failed")

	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	jsonResponse(w, status, errorResponse{Results: []any{}, Error: err.Error()})
}

func jsonResponse(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
