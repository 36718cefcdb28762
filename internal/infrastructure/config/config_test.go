package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfigFile writes YAML content to a temp file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, "room:\n  id: test-room\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Room.ID != "test-room" {
		t.Errorf("Room.ID = %q, want %q", cfg.Room.ID, "test-room")
	}
	if cfg.MQTT.Broker.Host != "localhost" {
		t.Errorf("MQTT.Broker.Host = %q, want default %q", cfg.MQTT.Broker.Host, "localhost")
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want default 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Actuators.Interval != 5 {
		t.Errorf("Actuators.Interval = %d, want default 5", cfg.Actuators.Interval)
	}
	if cfg.Simulator.Interval != 2 {
		t.Errorf("Simulator.Interval = %d, want default 2", cfg.Simulator.Interval)
	}
}

func TestLoadComfortRanges(t *testing.T) {
	cfg := Default()

	tests := []struct {
		sensor string
		min    float64
		max    float64
	}{
		{"temperature", 20, 24},
		{"humidity", 40, 60},
		{"light", 300, 700},
		{"noise", 0, 45},
	}

	for _, tt := range tests {
		r, ok := cfg.Comfort.Ranges[tt.sensor]
		if !ok {
			t.Errorf("missing default comfort range for %s", tt.sensor)
			continue
		}
		if r.Min != tt.min || r.Max != tt.max {
			t.Errorf("%s range = [%v, %v], want [%v, %v]", tt.sensor, r.Min, r.Max, tt.min, tt.max)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 20, Max: 24}

	tests := []struct {
		value float64
		want  bool
	}{
		{19.9, false},
		{20, true},
		{22, true},
		{24, true},
		{24.1, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.value); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
room:
  id: room-42
mqtt:
  broker:
    host: broker.local
    port: 8883
    tls: true
actuators:
  interval: 10
  climate:
    target_temp: 21
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
	if !cfg.MQTT.Broker.TLS {
		t.Error("MQTT.Broker.TLS = false, want true")
	}
	if cfg.Actuators.Interval != 10 {
		t.Errorf("Actuators.Interval = %d, want 10", cfg.Actuators.Interval)
	}
	if cfg.Actuators.Climate.TargetTemp != 21 {
		t.Errorf("Climate.TargetTemp = %v, want 21", cfg.Actuators.Climate.TargetTemp)
	}
	// Untouched sections keep their defaults.
	if cfg.Actuators.Focus.NoiseThreshold != 50 {
		t.Errorf("Focus.NoiseThreshold = %v, want default 50", cfg.Actuators.Focus.NoiseThreshold)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SMARTROOM_MQTT_HOST", "env-broker")
	t.Setenv("SMARTROOM_API_PORT", "9999")

	path := writeConfigFile(t, "mqtt:\n  broker:\n    host: file-broker\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT.Broker.Host = %q, want env override %q", cfg.MQTT.Broker.Host, "env-broker")
	}
	if cfg.API.Port != 9999 {
		t.Errorf("API.Port = %d, want env override 9999", cfg.API.Port)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing room id", func(c *Config) { c.Room.ID = "" }},
		{"bad qos", func(c *Config) { c.MQTT.QoS = 3 }},
		{"bad api port", func(c *Config) { c.API.Port = 0 }},
		{"zero tick interval", func(c *Config) { c.Actuators.Interval = 0 }},
		{"inverted comfort range", func(c *Config) {
			c.Comfort.Ranges["temperature"] = Range{Min: 30, Max: 20}
		}},
		{"zero fanout queue", func(c *Config) { c.Gateway.FanoutQueueSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() = nil error for missing file, want error")
	}
}
