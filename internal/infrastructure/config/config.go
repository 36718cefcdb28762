package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Smart Room core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Room      RoomConfig      `yaml:"room"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Logging   LoggingConfig   `yaml:"logging"`
	Comfort   ComfortConfig   `yaml:"comfort"`
	Actuators ActuatorsConfig `yaml:"actuators"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

// RoomConfig contains room-level identity information.
type RoomConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT connection retry settings.
// InitialDelay and MaxDelay are in seconds. MaxAttempts bounds the
// initial connection attempts; 0 means a single attempt without retry.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ComfortConfig maps sensor types to their acceptable [min, max] bands.
// Readings outside the band count as comfort violations.
type ComfortConfig struct {
	Ranges map[string]Range `yaml:"ranges"`
}

// Range is an inclusive [Min, Max] comfort band for one sensor type.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v falls inside the band.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ActuatorsConfig contains per-actuator tuning.
type ActuatorsConfig struct {
	// Interval is the evaluation tick interval in seconds for all actuators.
	Interval int `yaml:"interval"`

	Light   LightConfig   `yaml:"light"`
	Climate ClimateConfig `yaml:"climate"`
	Focus   FocusConfig   `yaml:"focus"`
}

// LightConfig contains smart light settings.
type LightConfig struct {
	ID       string `yaml:"id"`
	AutoMode bool   `yaml:"auto_mode"`
}

// ClimateConfig contains climate control settings.
type ClimateConfig struct {
	ID             string  `yaml:"id"`
	TargetTemp     float64 `yaml:"target_temp"`
	TargetHumidity float64 `yaml:"target_humidity"`
}

// FocusConfig contains focus mode settings.
type FocusConfig struct {
	ID             string  `yaml:"id"`
	NoiseThreshold float64 `yaml:"noise_threshold"`
	// BreakAfterMinutes is the continuous study time before the break
	// reminder fires.
	BreakAfterMinutes int `yaml:"break_after_minutes"`
	// MinSessionMinutes is the minimum session length that produces a
	// session-ended notification.
	MinSessionMinutes int `yaml:"min_session_minutes"`
}

// GatewayConfig contains aggregator settings.
type GatewayConfig struct {
	// NotifierID identifies the notification system actuator.
	NotifierID string `yaml:"notifier_id"`
	// FanoutQueueSize bounds the queue between bus ingestion and observer
	// broadcast. Events are dropped (and counted) when the queue is full.
	FanoutQueueSize int `yaml:"fanout_queue_size"`
}

// SimulatorConfig contains sensor simulator settings.
type SimulatorConfig struct {
	// Interval is the publish interval in seconds for all simulated sensors.
	Interval int `yaml:"interval"`
	// Sensors lists the sensor types to simulate. Empty means all known types.
	Sensors []string `yaml:"sensors"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SMARTROOM_SECTION_KEY
// For example: SMARTROOM_MQTT_HOST, SMARTROOM_API_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults. The comfort bands and
// actuator tuning match the reference deployment for a single study room.
func Default() *Config {
	return &Config{
		Room: RoomConfig{
			ID:       "room-001",
			Name:     "Study Room",
			Timezone: "UTC",
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "smartroom-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     30,
				MaxAttempts:  5,
			},
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Comfort: ComfortConfig{
			Ranges: map[string]Range{
				"temperature": {Min: 20, Max: 24},
				"humidity":    {Min: 40, Max: 60},
				"light":       {Min: 300, Max: 700},
				"noise":       {Min: 0, Max: 45},
			},
		},
		Actuators: ActuatorsConfig{
			Interval: 5,
			Light: LightConfig{
				ID:       "light_01",
				AutoMode: true,
			},
			Climate: ClimateConfig{
				ID:             "climate_01",
				TargetTemp:     22,
				TargetHumidity: 50,
			},
			Focus: FocusConfig{
				ID:                "focus_01",
				NoiseThreshold:    50,
				BreakAfterMinutes: 45,
				MinSessionMinutes: 5,
			},
		},
		Gateway: GatewayConfig{
			NotifierID:      "notify_01",
			FanoutQueueSize: 256,
		},
		Simulator: SimulatorConfig{
			Interval: 2,
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SMARTROOM_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// MQTT
	if v := os.Getenv("SMARTROOM_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("SMARTROOM_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("SMARTROOM_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("SMARTROOM_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// API
	if v := os.Getenv("SMARTROOM_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("SMARTROOM_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Logging
	if v := os.Getenv("SMARTROOM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Room.ID == "" {
		errs = append(errs, "room.id is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.Actuators.Interval < 1 {
		errs = append(errs, "actuators.interval must be at least 1 second")
	}
	if c.Simulator.Interval < 1 {
		errs = append(errs, "simulator.interval must be at least 1 second")
	}

	for name, r := range c.Comfort.Ranges {
		if r.Min > r.Max {
			errs = append(errs, fmt.Sprintf("comfort.ranges.%s: min exceeds max", name))
		}
	}

	if c.Gateway.FanoutQueueSize < 1 {
		errs = append(errs, "gateway.fanout_queue_size must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// TickInterval returns the actuator evaluation interval as a Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Actuators.Interval) * time.Second
}

// SensorInterval returns the simulator publish interval as a Duration.
func (c *Config) SensorInterval() time.Duration {
	return time.Duration(c.Simulator.Interval) * time.Second
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
