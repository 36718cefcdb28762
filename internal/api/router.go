package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Clover-Hill/iot-project/internal/gateway"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Prometheus scrape endpoint
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/data", s.handleData)
		r.Get("/analytics", s.handleAnalytics)
		r.Post("/command", s.handleCommand)
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleData returns the full aggregate snapshot: latest sensors and
// actuators, bounded history, the notification log, and violation counters.
func (s *Server) handleData(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Snapshot())
}

// handleAnalytics returns the derived analytics view.
func (s *Server) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.data.Analytics(time.Now()))
}

// commandRequest is the body of POST /api/v1/command.
type commandRequest struct {
	ActuatorType string         `json:"actuator_type"`
	Command      map[string]any `json:"command"`
}

// handleCommand forwards a control command to an actuator's command topic.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.ActuatorType == "" || len(req.Command) == 0 {
		writeBadRequest(w, "actuator_type and command are required")
		return
	}

	if err := s.commands.Send(req.ActuatorType, req.Command); err != nil {
		if errors.Is(err, gateway.ErrEmptyActuatorType) || errors.Is(err, gateway.ErrEmptyCommand) {
			writeBadRequest(w, err.Error())
			return
		}
		s.logger.Error("command forwarding failed", "actuator_type", req.ActuatorType, "error", err)
		writeInternalError(w, "failed to send command")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}
