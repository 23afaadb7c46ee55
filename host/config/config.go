package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v3"

	"unistep/host/serial"
)

// Transports a command link can use
const (
	TransportSerial = "serial"
	TransportTCP    = "tcp"
	TransportStdin  = "stdin"
)

// Config is the unistepd configuration
type Config struct {
	Link   LinkConfig   `yaml:"link"`
	Serial SerialConfig `yaml:"serial"`
	Motion MotionConfig `yaml:"motion"`
	Log    LogConfig    `yaml:"log"`
}

// LinkConfig selects where command lines come from
type LinkConfig struct {
	Transport string `yaml:"transport"` // serial, tcp or stdin
	Listen    string `yaml:"listen"`    // TCP listen address
}

// SerialConfig describes the serial command port
type SerialConfig struct {
	Device        string `yaml:"device"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// MotionConfig tunes the host motion loop
type MotionConfig struct {
	TickMicros int  `yaml:"tick_us"` // Length of one delay tick
	IdleMicros int  `yaml:"idle_us"` // Sleep when there is nothing to do
	DryRun     bool `yaml:"dry_run"` // Skip delays entirely
}

// LogConfig controls debug output
type LogConfig struct {
	Debug      bool `yaml:"debug"`
	TraceCoils bool `yaml:"trace_coils"`
}

// envOverrides are read from UNISTEP_* variables after the file
type envOverrides struct {
	Transport string `env:"UNISTEP_TRANSPORT"`
	Listen    string `env:"UNISTEP_LISTEN"`
	Device    string `env:"UNISTEP_SERIAL_DEVICE"`
	Baud      int    `env:"UNISTEP_SERIAL_BAUD"`
	Debug     bool   `env:"UNISTEP_DEBUG"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML file, applies defaults and environment overrides,
// and validates the result. An empty path means defaults only.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, Validate(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in missing values
func applyDefaults(cfg *Config) {
	if cfg.Link.Transport == "" {
		cfg.Link.Transport = TransportSerial
	}
	if cfg.Link.Listen == "" {
		cfg.Link.Listen = "127.0.0.1:7070"
	}

	if cfg.Serial.Device == "" {
		cfg.Serial.Device = "/dev/ttyUSB0"
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = serial.DefaultBaud
	}
	if cfg.Serial.ReadTimeoutMs == 0 {
		cfg.Serial.ReadTimeoutMs = 100
	}

	if cfg.Motion.TickMicros == 0 {
		cfg.Motion.TickMicros = 10
	}
	if cfg.Motion.IdleMicros == 0 {
		cfg.Motion.IdleMicros = 1000
	}
}

// applyEnv overlays UNISTEP_* environment variables
func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	if o.Transport != "" {
		cfg.Link.Transport = o.Transport
	}
	if o.Listen != "" {
		cfg.Link.Listen = o.Listen
	}
	if o.Device != "" {
		cfg.Serial.Device = o.Device
	}
	if o.Baud != 0 {
		cfg.Serial.Baud = o.Baud
	}
	if o.Debug {
		cfg.Log.Debug = true
	}
	return nil
}

// Validate checks a configuration for values the daemon cannot run with
func Validate(cfg *Config) error {
	switch cfg.Link.Transport {
	case TransportSerial:
		if cfg.Serial.Device == "" {
			return fmt.Errorf("serial transport needs a device")
		}
	case TransportTCP:
		if cfg.Link.Listen == "" {
			return fmt.Errorf("tcp transport needs a listen address")
		}
	case TransportStdin:
	default:
		return fmt.Errorf("invalid transport: %q", cfg.Link.Transport)
	}

	if cfg.Serial.Baud <= 0 {
		return fmt.Errorf("invalid baud rate: %d", cfg.Serial.Baud)
	}
	if cfg.Serial.ReadTimeoutMs < 0 {
		return fmt.Errorf("invalid read timeout: %d", cfg.Serial.ReadTimeoutMs)
	}
	if cfg.Motion.TickMicros < 1 || cfg.Motion.TickMicros > 1000000 {
		return fmt.Errorf("invalid tick length: %dus", cfg.Motion.TickMicros)
	}
	if cfg.Motion.IdleMicros < 0 {
		return fmt.Errorf("invalid idle interval: %dus", cfg.Motion.IdleMicros)
	}
	return nil
}

// SerialPort converts the serial section to a port configuration
func (c *Config) SerialPort() *serial.Config {
	return &serial.Config{
		Device:      c.Serial.Device,
		Baud:        c.Serial.Baud,
		ReadTimeout: c.Serial.ReadTimeoutMs,
	}
}

// Tick returns the length of one delay tick
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Motion.TickMicros) * time.Microsecond
}

// Idle returns the motion loop idle sleep
func (c *Config) Idle() time.Duration {
	return time.Duration(c.Motion.IdleMicros) * time.Microsecond
}
