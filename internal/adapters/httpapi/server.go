package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/vfrplanner-go/internal/adapters/export"
	"github.com/andrescamacho/vfrplanner-go/internal/application/common"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/vfrplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
	"github.com/andrescamacho/vfrplanner-go/internal/infrastructure/config"
	"github.com/andrescamacho/vfrplanner-go/pkg/utils"
)

// Options wires a Server
type Options struct {
	Mediator   common.Mediator
	Server     config.ServerConfig
	StaticMap  config.StaticMapConfig
	SessionTTL time.Duration
	Logger     *slog.Logger

	// Metrics is served on MetricsPath when set
	Metrics     *prometheus.Registry
	MetricsPath string
}

// Server exposes the planner over HTTP. The planning session is carried in
// a cookie.
type Server struct {
	mediator    common.Mediator
	cfg         config.ServerConfig
	staticMap   config.StaticMapConfig
	sessionTTL  time.Duration
	logger      *slog.Logger
	metrics     *prometheus.Registry
	metricsPath string
}

// NewServer creates a server
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Server{
		mediator:    opts.Mediator,
		cfg:         opts.Server,
		staticMap:   opts.StaticMap,
		sessionTTL:  opts.SessionTTL,
		logger:      logger,
		metrics:     opts.Metrics,
		metricsPath: metricsPath,
	}
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such endpoint"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": r.Method + " not allowed"})
	})

	r.Post("/fplanner", s.handlePlan)
	r.Post("/update", s.handleUpdate)
	r.Get("/plan", s.handleGetPlan)
	r.Get("/plans/{sessionID}", s.handleGetPlanBySession)
	r.Get("/saveplan", s.handleSavePlan)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, s.metricsPath, promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port)),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("planner API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down planner API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, shared.NewValidationError("form", err.Error()))
		return
	}

	cmd := &commands.PlanRouteCommand{
		Origin:      strings.ToUpper(strings.TrimSpace(r.FormValue("orig"))),
		Destination: strings.ToUpper(strings.TrimSpace(r.FormValue("dest"))),
		Night:       formBool(r.FormValue("night")),
	}
	var err error
	if cmd.AltitudeFt, err = formInt(r, "alt"); err != nil {
		s.writeError(w, err)
		return
	}
	if cmd.SpeedKt, err = formFloat(r, "speed"); err != nil {
		s.writeError(w, err)
		return
	}
	if cmd.ClimbSpeedKt, err = formFloat(r, "climb_speed"); err != nil {
		s.writeError(w, err)
		return
	}
	if raw := strings.TrimSpace(r.FormValue("climb")); raw != "" {
		climb, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, shared.NewValidationError("climb", "must be a number"))
			return
		}
		cmd.ClimbDistNM = &climb
	}

	cmd.SessionID = s.sessionID(r)
	if cmd.SessionID == "" {
		cmd.SessionID = utils.GenerateSessionID()
	}

	resp, err := common.Dispatch[*commands.PlanRouteResponse](r.Context(), s.mediator, cmd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	plan := resp.Plan
	s.setSession(w, plan.SessionID)
	s.writePlan(w, plan)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sessionID := s.sessionID(r)
	if sessionID == "" {
		s.writeError(w, shared.NewSessionNotFoundError(""))
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeError(w, shared.NewValidationError("form", err.Error()))
		return
	}
	num, err := strconv.Atoi(strings.TrimSpace(r.FormValue("num")))
	if err != nil || num < 1 {
		s.writeError(w, shared.NewValidationError("num", "must be a leg number starting at 1"))
		return
	}

	resp, err := common.Dispatch[*commands.ReplanRouteResponse](r.Context(), s.mediator, &commands.ReplanRouteCommand{
		SessionID: sessionID,
		LegIndex:  num - 1,
		Place:     strings.TrimSpace(r.FormValue("place")),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.setSession(w, sessionID)
	s.writePlan(w, resp.Plan)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFor(r, s.sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePlan(w, plan)
}

// handleGetPlanBySession serves clients that track the session themselves
func (s *Server) handleGetPlanBySession(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFor(r, chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePlan(w, plan)
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planFor(r, s.sessionID(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", plan.ID+".pdf"))
	if err := export.WritePDF(w, plan, s.mapURL(plan)); err != nil {
		s.logger.Error("failed to write plan PDF", slog.String("plan_id", plan.ID), slog.String("error", err.Error()))
	}
}

func (s *Server) planFor(r *http.Request, sessionID string) (*planning.Plan, error) {
	if sessionID == "" {
		return nil, shared.NewSessionNotFoundError("")
	}
	resp, err := common.Dispatch[*queries.GetPlanResponse](r.Context(), s.mediator, &queries.GetPlanQuery{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return resp.Plan, nil
}

func (s *Server) writePlan(w http.ResponseWriter, plan *planning.Plan) {
	writeJSON(w, http.StatusOK, NewPlanView(plan, s.mapURL(plan)))
}

func (s *Server) mapURL(plan *planning.Plan) string {
	if s.staticMap.BaseURL == "" {
		return ""
	}
	u, err := export.StaticMapURL(s.staticMap, plan.Route)
	if err != nil {
		return ""
	}
	return u
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setSession(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeError maps planner errors onto HTTP statuses
func (s *Server) writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

// StatusFor returns the HTTP status for a planner error
func StatusFor(err error) int {
	switch shared.Classify(err) {
	case shared.ClassNone:
		return http.StatusOK
	case shared.ClassInvalid:
		return http.StatusBadRequest
	case shared.ClassNotFound:
		return http.StatusNotFound
	case shared.ClassUnplannable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func formInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewValidationError(key, "must be a whole number")
	}
	return v, nil
}

func formFloat(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, shared.NewValidationError(key, "must be a number")
	}
	return v, nil
}

func formBool(raw string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(raw))
	return v || raw == "on"
}


func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("elapsed", time.Since(start)))
	})
}
