package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `json:"server"`
	Session    SessionConfig    `json:"session"`
	Simulation SimulationConfig `json:"simulation"`
	Logging    LoggingConfig    `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host            string   `json:"host"`
	Port            int      `json:"port"`
	Mode            string   `json:"mode"` // gin mode: debug, release, test
	ReadTimeout     Duration `json:"read_timeout"`
	WriteTimeout    Duration `json:"write_timeout"`
	IdleTimeout     Duration `json:"idle_timeout"`
	ShutdownTimeout Duration `json:"shutdown_timeout"`
}

// SessionConfig controls visitor sessions and the session cookie
type SessionConfig struct {
	Secret        string   `json:"secret"`
	TTL           Duration `json:"ttl"`       // idle time before a session is swept
	TokenTTL      Duration `json:"token_ttl"` // lifetime of the signed cookie
	SecureCookie  bool     `json:"secure_cookie"`
	SweepSchedule string   `json:"sweep_schedule"`
}

// SimulationConfig tunes the simulated analysis and agent playback
type SimulationConfig struct {
	ProgressIncrement int      `json:"progress_increment"`
	ProgressInterval  Duration `json:"progress_interval"`
	CompletionDelay   Duration `json:"completion_delay"`
	TypingInterval    Duration `json:"typing_interval"`
}

// LoggingConfig
type LoggingConfig struct {
	Level       string `json:"level"`
	Development bool   `json:"development"`
}

// Duration is a time.Duration that reads "250ms" style strings from JSON
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Mode:            "debug",
			ReadTimeout:     Duration(15 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Session: SessionConfig{
			TTL:           Duration(30 * time.Minute),
			TokenTTL:      Duration(24 * time.Hour),
			SweepSchedule: "@every 1m",
		},
		Simulation: SimulationConfig{
			ProgressIncrement: 2,
			ProgressInterval:  Duration(100 * time.Millisecond),
			CompletionDelay:   Duration(500 * time.Millisecond),
			TypingInterval:    Duration(18 * time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// LoadConfig loads configuration from defaults, an optional JSON file, an
// optional .env file and environment variables, in that order.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// Load from file if exists
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := overrideWithEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func overrideWithEnv(config *Config) error {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		config.Server.Port = p
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		config.Session.Secret = secret
	}
	if secure := os.Getenv("SESSION_SECURE_COOKIE"); secure != "" {
		b, err := strconv.ParseBool(secure)
		if err != nil {
			return fmt.Errorf("invalid SESSION_SECURE_COOKIE: %w", err)
		}
		config.Session.SecureCookie = b
	}

	durations := []struct {
		env    string
		target *Duration
	}{
		{"SESSION_TTL", &config.Session.TTL},
		{"SESSION_TOKEN_TTL", &config.Session.TokenTTL},
		{"SIMULATION_PROGRESS_INTERVAL", &config.Simulation.ProgressInterval},
		{"SIMULATION_COMPLETION_DELAY", &config.Simulation.CompletionDelay},
		{"SIMULATION_TYPING_INTERVAL", &config.Simulation.TypingInterval},
	}
	for _, d := range durations {
		raw := os.Getenv(d.env)
		if raw == "" {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.env, err)
		}
		*d.target = Duration(v)
	}

	if inc := os.Getenv("SIMULATION_PROGRESS_INCREMENT"); inc != "" {
		v, err := strconv.Atoi(inc)
		if err != nil {
			return fmt.Errorf("invalid SIMULATION_PROGRESS_INCREMENT: %w", err)
		}
		config.Simulation.ProgressIncrement = v
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dev := os.Getenv("LOG_DEVELOPMENT"); dev != "" {
		b, err := strconv.ParseBool(dev)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT: %w", err)
		}
		config.Logging.Development = b
	}
	return nil
}

// Validate rejects configurations the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Session.Secret == "" {
		return errors.New("session secret is required (set SESSION_SECRET)")
	}
	if c.Session.TTL <= 0 || c.Session.TokenTTL <= 0 {
		return errors.New("session ttl and token ttl must be positive")
	}
	if c.Simulation.ProgressIncrement <= 0 {
		return fmt.Errorf("simulation progress increment must be positive: %d", c.Simulation.ProgressIncrement)
	}
	if c.Simulation.ProgressInterval <= 0 || c.Simulation.TypingInterval <= 0 {
		return errors.New("simulation intervals must be positive")
	}
	return nil
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
