package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jekabolt/shopdesk-reports/internal/chart"
	"github.com/jekabolt/shopdesk-reports/internal/dependency"
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/jekabolt/shopdesk-reports/internal/metrics"
	"github.com/jekabolt/shopdesk-reports/internal/ratelimit"
)

const dateLayout = "2006-01-02"

// Config is the configuration for the http server
type Config struct {
	Port           string           `mapstructure:"port"`
	Address        string           `mapstructure:"address"`
	AllowedOrigins []string         `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration    `mapstructure:"request_timeout"`
	RateLimit      ratelimit.Config `mapstructure:"rate_limit"`
}

// ChartConfig holds chart defaults applied when a request leaves them out.
type ChartConfig struct {
	LabelBudget  int `mapstructure:"label_budget"`
	DefaultLimit int `mapstructure:"default_limit"`
}

// Server is the http server
type Server struct {
	hs     *http.Server
	c      *Config
	charts ChartConfig
	engine *metrics.Engine
	source dependency.Source
	auth   *jwtauth.JWTAuth
	limit  *ratelimit.Limiter
	now    func() time.Time
	done   chan struct{}
}

// New creates a new server. A nil auth leaves the API open.
func New(config *Config, charts ChartConfig, engine *metrics.Engine, source dependency.Source, auth *jwtauth.JWTAuth) *Server {
	return &Server{
		c:      config,
		charts: charts,
		engine: engine,
		source: source,
		auth:   auth,
		limit:  ratelimit.New(config.RateLimit),
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if s.c.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.c.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		if s.auth != nil {
			r.Use(jwtauth.Verifier(s.auth))
			r.Use(jwtauth.Authenticator)
		}
		if s.limit != nil {
			r.Use(ratelimit.Middleware(s.limit, clientKey))
		}
		r.Get("/reports", s.getReport)
		r.Get("/reports/{section}/chart", s.getSectionChart)
	})

	return r
}

// healthz pings the source when it holds a connection.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.source.(dependency.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			slog.Default().ErrorContext(r.Context(), "source ping failed", slog.String("err", err.Error()))
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	period, err := s.period(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rep, err := s.build(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rep)
}

type chartResponse struct {
	Section string        `json:"secao"`
	Shape   chart.Shape   `json:"formato"`
	Points  []chart.Point `json:"pontos"`
}

func (s *Server) getSectionChart(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if err := metrics.CheckSection(section); err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()

	shape := chart.Bar
	if v := q.Get("shape"); v != "" {
		sh, err := chart.ParseShape(v)
		if err != nil {
			writeError(w, r, err)
			return
		}
		shape = sh
	}
	limit := s.charts.DefaultLimit
	if v := q.Get("limit"); v != "" {
		if !govalidator.IsInt(v) {
			writeError(w, r, fmt.Errorf("%w: limit %q is not a number", gerr.ErrInvalidParam, v))
			return
		}
		n, _ := govalidator.ToInt(v)
		if n < 0 {
			writeError(w, r, fmt.Errorf("%w: limit %q is negative", gerr.ErrInvalidParam, v))
			return
		}
		limit = int(n)
	}
	period, err := s.period(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := s.build(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := metrics.Section(rep, section)
	if err != nil {
		writeError(w, r, err)
		return
	}
	points, err := chart.Project(items, chart.Options{
		Shape:       shape,
		Limit:       limit,
		LabelBudget: s.charts.LabelBudget,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, chartResponse{Section: section, Shape: shape, Points: points})
}

func (s *Server) build(ctx context.Context, period entity.TimeRange) (*entity.Report, error) {
	snap, err := s.source.LoadSnapshot(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return s.engine.Build(snap, period), nil
}

// period reads from/to (YYYY-MM-DD) in the engine's zone. Without from the
// period starts on the first day of the current month; without to it ends
// today.
func (s *Server) period(r *http.Request) (entity.TimeRange, error) {
	loc := s.engine.Location()
	now := s.now().In(loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := now

	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from", &from}, {"to", &to}} {
		v := strings.TrimSpace(q.Get(p.name))
		if v == "" {
			continue
		}
		if !govalidator.IsTime(v, dateLayout) {
			return entity.TimeRange{}, fmt.Errorf("%w: %s %q is not a %s date", gerr.ErrInvalidPeriod, p.name, v, dateLayout)
		}
		t, _ := time.ParseInLocation(dateLayout, v, loc)
		*p.dst = t
	}

	period := entity.DayRange(from, to, loc)
	if !period.Valid() {
		return entity.TimeRange{}, fmt.Errorf("%w: from is after to", gerr.ErrInvalidPeriod)
	}
	return period, nil
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, "shopdesk-reports listening", slog.String("addr", "http://"+listenerAddr))
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error", slog.String("err", err.Error()))
		}
		cancel()
		close(s.done)
	}()

	if s.limit != nil {
		go s.limit.Run(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := s.hs.Shutdown(shutdownCtx); err != nil {
			slog.Default().Error("http server shutdown", slog.String("err", err.Error()))
		}
	}()

	return nil
}

// clientKey counts authenticated requests against the operator and the
// rest against the client address.
func clientKey(r *http.Request) string {
	if tok, _, err := jwtauth.FromContext(r.Context()); err == nil && tok != nil && tok.Subject() != "" {
		return "operator:" + tok.Subject()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || origin == allowedOrigin {
			return true
		}
	}
	return false
}

type errorResponse struct {
	Error string `json:"erro"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gerr.ErrInvalidPeriod), errors.Is(err, gerr.ErrInvalidParam), errors.Is(err, gerr.ErrUnknownShape):
		status = http.StatusBadRequest
	case errors.Is(err, gerr.ErrUnknownSection):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		slog.Default().ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().ErrorContext(r.Context(), "failed to encode response",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}
}
