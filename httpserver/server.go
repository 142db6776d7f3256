package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flashbots/go-utils/httplogger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/atomic"
)

// HTTPServerConfig holds the listener and lifecycle settings of the gateway.
type HTTPServerConfig struct {
	ListenAddr  string
	EnablePprof bool
	Log         *slog.Logger

	// DrainDuration is how long /drain keeps the gateway serving after
	// readiness flips, so load balancers can take it out of rotation.
	DrainDuration            time.Duration
	GracefulShutdownDuration time.Duration
	ReadTimeout              time.Duration
	WriteTimeout             time.Duration
}

// Server is the record API gateway.
type Server struct {
	cfg     *HTTPServerConfig
	log     *slog.Logger
	handler *Handler

	ready atomic.Bool
	http  *http.Server
}

// healthResponse is the body of every health and drain endpoint.
type healthResponse struct {
	Status    string   `json:"status"`
	Contracts []string `json:"contracts,omitempty"`
	Journal   bool     `json:"journal,omitempty"`
}

func New(cfg *HTTPServerConfig, handler *Handler) (*Server, error) {
	if handler == nil {
		return nil, errors.New("httpserver: nil handler")
	}

	srv := &Server{
		cfg:     cfg,
		log:     cfg.Log,
		handler: handler,
	}
	srv.ready.Store(true)

	srv.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      srv.getRouter(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return srv, nil
}

func (srv *Server) getRouter() http.Handler {
	mux := chi.NewRouter()
	mux.Use(srv.httpLogger)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/healthcare", func(r chi.Router) {
			r.Post("/", srv.handler.HandleRegisterHealthcare)
			r.Get("/events", srv.handler.HandleHealthcareEvents)
			r.Get("/{hash}", srv.handler.HandleHealthcareInfo)
			r.Delete("/{hash}", srv.handler.HandleDeleteHealthcare)
		})
		api.Route("/prescriptions", func(r chi.Router) {
			r.Post("/", srv.handler.HandleRegisterPrescription)
			r.Get("/events", srv.handler.HandlePrescriptionEvents)
			r.Get("/{hash}", srv.handler.HandlePrescriptionInfo)
			r.Post("/{hash}/use", srv.handler.HandleUsePrescription)
		})
		api.Get("/history", srv.handler.HandleHistory)
	})

	mux.Get("/livez", srv.handleLiveness)
	mux.Get("/readyz", srv.handleReadiness)
	mux.Get("/drain", srv.handleDrain)
	mux.Get("/undrain", srv.handleUndrain)

	if srv.cfg.EnablePprof {
		srv.log.Info("pprof API enabled")
		mux.Mount("/debug", middleware.Profiler())
	}
	return mux
}

func (srv *Server) httpLogger(next http.Handler) http.Handler {
	return httplogger.LoggingMiddlewareSlog(srv.log, next)
}

func (srv *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	srv.handler.writeJSON(w, http.StatusOK, healthResponse{Status: "alive"})
}

// handleReadiness reports which contracts the gateway fronts. A draining
// gateway answers 503 so it drops out of rotation.
func (srv *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ready",
		Contracts: srv.handler.backends.contracts(),
		Journal:   srv.handler.backends.History != nil,
	}
	if !srv.ready.Load() {
		resp.Status = "not ready"
		srv.handler.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	srv.handler.writeJSON(w, http.StatusOK, resp)
}

func (srv *Server) handleDrain(w http.ResponseWriter, r *http.Request) {
	if !srv.ready.Swap(false) {
		srv.handler.writeJSON(w, http.StatusOK, healthResponse{Status: "already draining"})
		return
	}
	srv.log.Info("Gateway draining", "drainDuration", srv.cfg.DrainDuration)

	time.AfterFunc(srv.cfg.DrainDuration, func() {
		srv.log.Info("Drain period completed")
	})
	srv.handler.writeJSON(w, http.StatusOK, healthResponse{Status: "draining"})
}

func (srv *Server) handleUndrain(w http.ResponseWriter, r *http.Request) {
	if srv.ready.Swap(true) {
		srv.handler.writeJSON(w, http.StatusOK, healthResponse{Status: "already ready"})
		return
	}
	srv.log.Info("Gateway back in rotation")
	srv.handler.writeJSON(w, http.StatusOK, healthResponse{Status: "ready"})
}

// RunInBackground starts listening without blocking the caller.
func (srv *Server) RunInBackground() {
	go func() {
		srv.log.Info("Starting record API gateway", "listenAddress", srv.cfg.ListenAddr, "contracts", srv.handler.backends.contracts())
		if err := srv.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.log.Error("Record API gateway failed", "err", err)
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight transactions up
// to GracefulShutdownDuration.
func (srv *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), srv.cfg.GracefulShutdownDuration)
	defer cancel()

	if err := srv.http.Shutdown(ctx); err != nil {
		srv.log.Error("Graceful shutdown failed", "err", err)
		return
	}
	srv.log.Info("Record API gateway stopped")
}
