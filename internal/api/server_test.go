package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Clover-Hill/iot-project/internal/gateway"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
	"github.com/Clover-Hill/iot-project/internal/message"
)

type stubData struct {
	snapshot  gateway.Snapshot
	analytics gateway.Analytics
}

func (s *stubData) Snapshot() gateway.Snapshot            { return s.snapshot }
func (s *stubData) Analytics(time.Time) gateway.Analytics { return s.analytics }

type stubCommands struct {
	mu   sync.Mutex
	sent []string
	fail error
}

func (s *stubCommands) Send(actuatorType string, _ map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.sent = append(s.sent, actuatorType)
	return nil
}

func testServer(t *testing.T, data *stubData, commands *stubCommands) *Server {
	t.Helper()
	cfg := config.Default()
	srv, err := New(Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   logging.Default(),
		Data:     data,
		Commands: commands,
		Gatherer: prometheus.NewRegistry(),
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func TestNewRequiresDependencies(t *testing.T) {
	cfg := config.Default()
	if _, err := New(Deps{Config: cfg.API}); err == nil {
		t.Error("New() without logger = nil error")
	}
	if _, err := New(Deps{Config: cfg.API, Logger: logging.Default()}); err == nil {
		t.Error("New() without data source = nil error")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, &stubData{}, &stubCommands{})
	rec := httptest.NewRecorder()

	srv.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleData(t *testing.T) {
	data := &stubData{snapshot: gateway.Snapshot{
		Sensors: map[string]message.SensorReading{
			"temperature": {SensorID: "temp_01", Type: "temperature", Value: 22.5},
		},
		Analytics: gateway.SnapshotAnalytics{
			ComfortViolations: map[string]int{"noise": 3},
		},
	}}
	srv := testServer(t, data, &stubCommands{})
	rec := httptest.NewRecorder()

	srv.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/data", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var snap gateway.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Sensors["temperature"].Value != 22.5 {
		t.Errorf("sensor value = %v, want 22.5", snap.Sensors["temperature"].Value)
	}
	if snap.Analytics.ComfortViolations["noise"] != 3 {
		t.Errorf("violations = %v", snap.Analytics.ComfortViolations)
	}
}

func TestHandleAnalytics(t *testing.T) {
	data := &stubData{analytics: gateway.Analytics{
		ComfortScore:    96,
		Recommendations: []string{"Room is too warm. Consider cooling down."},
	}}
	srv := testServer(t, data, &stubCommands{})
	rec := httptest.NewRecorder()

	srv.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var analytics gateway.Analytics
	if err := json.Unmarshal(rec.Body.Bytes(), &analytics); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if analytics.ComfortScore != 96 || len(analytics.Recommendations) != 1 {
		t.Errorf("analytics = %+v", analytics)
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fail       error
		wantStatus int
	}{
		{
			name:       "valid command",
			body:       `{"actuator_type": "smart_light", "command": {"state": "ON"}}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing actuator type",
			body:       `{"command": {"state": "ON"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing command",
			body:       `{"actuator_type": "smart_light"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "publish failure",
			body:       `{"actuator_type": "smart_light", "command": {"state": "ON"}}`,
			fail:       errors.New("broker gone"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commands := &stubCommands{fail: tt.fail}
			srv := testServer(t, &stubData{}, commands)
			rec := httptest.NewRecorder()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/command", bytes.NewReader([]byte(tt.body)))
			srv.buildRouter().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && len(commands.sent) != 1 {
				t.Errorf("sent = %v, want one command", commands.sent)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, &stubData{}, &stubCommands{})
	rec := httptest.NewRecorder()

	srv.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t, &stubData{}, &stubCommands{})
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc123")
	srv.buildRouter().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc123" {
		t.Errorf("X-Request-ID = %q, want abc123", got)
	}
}
