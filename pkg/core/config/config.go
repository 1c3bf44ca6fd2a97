package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/scaliger/foundation/calendar"
	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	mdwlog "github.com/msto63/scaliger/foundation/core/log"
)

// EnvConfigPath names the environment variable read by LoadFromEnv
const EnvConfigPath = "SCALIGER_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Calendar CalendarConfig `toml:"calendar" yaml:"calendar"`
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
}

// CalendarConfig holds the defaults applied to requests that leave them out
type CalendarConfig struct {
	// Reform is italy, england, julian, gregorian or a JDN
	Reform calendar.Reform `toml:"reform" yaml:"reform"`
	// Offset is the default UTC offset of date-time results, e.g. "+09:00"
	Offset string `toml:"offset" yaml:"offset"`
	// WeekStartsMonday selects the first column of rendered month grids
	WeekStartsMonday bool `toml:"week_starts_monday" yaml:"week_starts_monday"`
}

// ServerConfig holds gRPC server configuration
type ServerConfig struct {
	Host              string   `toml:"host" yaml:"host"`
	Port              int      `toml:"port" yaml:"port"`
	MaxRecvMsgSize    int      `toml:"max_recv_msg_size" yaml:"max_recv_msg_size"`
	MaxSendMsgSize    int      `toml:"max_send_msg_size" yaml:"max_send_msg_size"`
	EnableReflection  bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	KeepaliveInterval Duration `toml:"keepalive_interval" yaml:"keepalive_interval"`
	KeepaliveTimeout  Duration `toml:"keepalive_timeout" yaml:"keepalive_timeout"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxStepItems      int      `toml:"max_step_items" yaml:"max_step_items"`
}

// CacheConfig holds the resolve cache settings
type CacheConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	MaxItems int      `toml:"max_items" yaml:"max_items"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	cfg := &Config{
		Cache: CacheConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.Newf("config file not found: %s", path).
				WithCode(mdwerror.CodeNotFound).
				WithOperation("config.Load")
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg := &Config{
		Cache: CacheConfig{Enabled: true},
	}
	if err := decode(content, detectFormat(path), cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the SCALIGER_CONFIG environment
// variable or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/scaliger.toml",
			"./scaliger.toml",
			"./scaliger.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/scaliger/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set SCALIGER_CONFIG or create configs/scaliger.toml").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// Format identifies a configuration file syntax
type Format string

// Supported formats
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// decode parses content into cfg
func decode(content []byte, format Format, cfg *Config) error {
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.decode")
		}
	default:
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.decode")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return mdwerror.Newf("unknown config key %q", undecoded[0].String()).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.decode")
		}
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "scaliger"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	// Calendar
	if c.Calendar.Offset == "" {
		c.Calendar.Offset = "+00:00"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9582
	}
	if c.Server.MaxRecvMsgSize == 0 {
		c.Server.MaxRecvMsgSize = 4 * 1024 * 1024
	}
	if c.Server.MaxSendMsgSize == 0 {
		c.Server.MaxSendMsgSize = 4 * 1024 * 1024
	}
	if c.Server.KeepaliveInterval.Duration == 0 {
		c.Server.KeepaliveInterval.Duration = 30 * time.Second
	}
	if c.Server.KeepaliveTimeout.Duration == 0 {
		c.Server.KeepaliveTimeout.Duration = 10 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Server.MaxStepItems == 0 {
		c.Server.MaxStepItems = 1000
	}

	// Cache
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 4096
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}
}

// Validate checks value ranges and names
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}) error {
		return mdwerror.Newf("invalid value for %s: %v", key, value).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("key", key)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat)
	}
	if _, err := ParseOffset(c.Calendar.Offset); err != nil {
		return invalid("calendar.offset", c.Calendar.Offset)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port)
	}
	if c.Server.MaxStepItems < 1 {
		return invalid("server.max_step_items", c.Server.MaxStepItems)
	}
	if c.Cache.MaxItems < 0 {
		return invalid("cache.max_items", c.Cache.MaxItems)
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl", c.Cache.TTL)
	}
	return nil
}

// Address returns host:port of the server
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// OffsetSeconds returns the default offset in seconds east of UTC
func (c CalendarConfig) OffsetSeconds() int {
	secs, err := ParseOffset(c.Offset)
	if err != nil {
		return 0
	}
	return secs
}

// ParseOffset parses a UTC offset of the form +hh:mm, -hhmm, +hh or Z
// and returns it in seconds
func ParseOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "z") || strings.EqualFold(s, "utc") {
		return 0, nil
	}

	fail := func() (int, error) {
		return 0, mdwerror.Newf("invalid offset %q", s).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.ParseOffset")
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return fail()
	}

	digits := strings.ReplaceAll(s[1:], ":", "")
	if len(digits) != 2 && len(digits) != 4 {
		return fail()
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fail()
		}
	}
	h, err := strconv.Atoi(digits[:2])
	if err != nil {
		return fail()
	}
	m := 0
	if len(digits) == 4 {
		if m, err = strconv.Atoi(digits[2:]); err != nil {
			return fail()
		}
	}
	if h > 23 || m > 59 {
		return fail()
	}
	return sign * (h*3600 + m*60), nil
}
