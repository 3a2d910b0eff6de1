package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"swnations/database"
	"swnations/nations"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

const (
	rankingsEndpoint = "/api/rankings"
	reloadEndpoint   = "/api/reload"
)

type Options struct {
	RankingsRPM int           // Zero or less disables the limit.
	ReloadRPM   int           // Zero or less disables the limit.
	LoadTimeout time.Duration // Upper bound for a reload triggered over HTTP.
}

type ReloadResponse struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
	Nations  int       `json:"nations"`
}

type server struct {
	db       *database.Database
	opts     Options
	limiters *limiterPool
	cache    *responseCache
}

// Builds the router serving the rankings page, the JSON API and the health check.
func NewRouter(db *database.Database, opts Options) http.Handler {
	s := &server{
		db:       db,
		opts:     opts,
		limiters: newLimiterPool(),
		cache:    newResponseCache(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/rankings/{view}", s.serveRankings)
		r.Get("/nations", s.serveNations)
		r.Post("/reload", s.serveReload)
	})

	r.Get("/", s.servePage)
	r.Get("/{view}", s.servePage)

	return r
}

// Resolves the {view} URL param. An absent param means the default view.
func viewParam(r *http.Request) (nations.View, error) {
	param := chi.URLParam(r, "view")
	if param == "" {
		return nations.DefaultView, nil
	}

	return nations.ParseView(param)
}

func (s *server) servePage(w http.ResponseWriter, r *http.Request) {
	view, err := viewParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderPage(w, s.db.Snapshot(), view); err != nil {
		log.WithError(err).Error("error rendering rankings page")
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func (s *server) serveRankings(w http.ResponseWriter, r *http.Request) {
	view, err := viewParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	snap := s.db.Snapshot()
	entry, _, err := s.cache.get("rankings/"+view.String(), snap.ID.String(), func() (any, error) {
		return nations.RankView(snap.Nations, view), nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// serve 304 if ETag matches, cached responses don't touch the limiter
	if match := r.Header.Get("If-None-Match"); match != "" && match == entry.ETag {
		w.Header().Set("ETag", entry.ETag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if !s.limiters.allow(w, r, rankingsEndpoint, s.opts.RankingsRPM) {
		return
	}

	writeCached(w, r, entry, 60)
}

func (s *server) serveNations(w http.ResponseWriter, r *http.Request) {
	snap := s.db.Snapshot()
	entry, _, err := s.cache.get("nations", snap.ID.String(), func() (any, error) {
		return snap, nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if match := r.Header.Get("If-None-Match"); match != "" && match == entry.ETag {
		w.Header().Set("ETag", entry.ETag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeCached(w, r, entry, 60)
}

func (s *server) serveReload(w http.ResponseWriter, r *http.Request) {
	if !s.limiters.allow(w, r, reloadEndpoint, s.opts.ReloadRPM) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.LoadTimeout)
	defer cancel()

	snap := s.db.Reload(ctx)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReloadResponse{
		ID:       snap.ID.String(),
		Source:   snap.Source,
		LoadedAt: snap.LoadedAt,
		Nations:  snap.Count(),
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Skip noise from uptime checks.
		if strings.HasPrefix(r.URL.Path, "/health") {
			return
		}

		log.WithFields(log.Fields{
			"request": middleware.GetReqID(r.Context()),
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  ww.Status(),
			"bytes":   ww.BytesWritten(),
			"took":    time.Since(start).String(),
		}).Debug("served request")
	})
}

// Serves handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Rankings server listening on %s", addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down rankings server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.Shutdown(shutdownCtx)
}
