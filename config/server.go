package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the server reads,
// e.g. RESUME_MATCHER_PORT or RESUME_MATCHER_MATCHER_SKILL_MATCH_MODE.
const EnvPrefix = "RESUME_MATCHER"

// Default values for the server configuration
const (
	DefaultPort         = "5000"
	DefaultMaxBodyBytes = 10 << 20 // 10 MiB, enough for a PDF resume and a job description
)

// ServerConfig holds everything needed to run the HTTP server or the CLI.
type ServerConfig struct {
	Port         string          `json:"port" mapstructure:"port"`
	LogJSON      bool            `json:"log_json" mapstructure:"json"`
	Debug        bool            `json:"debug" mapstructure:"debug"`
	MaxBodyBytes int64           `json:"max_body_bytes" mapstructure:"max-body-bytes"`
	Matcher      MatcherSettings `json:"matcher" mapstructure:"matcher"`
}

// SetDefaults registers default values on v. Every key needs a default so that
// environment variables are picked up by viper.AutomaticEnv.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("json", false)
	v.SetDefault("debug", false)
	v.SetDefault("max-body-bytes", DefaultMaxBodyBytes)
	v.SetDefault("matcher.skills", []string{})
	v.SetDefault("matcher.skill-match-mode", "")
	v.SetDefault("matcher.max-text-length", 0)
	v.SetDefault("matcher.disable-stop-words", false)
}

// BindEnv makes v read RESUME_MATCHER_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", file, err)
		}
	}
	return nil
}

// Load decodes v into a ServerConfig, applies defaults and validates it.
func Load(v *viper.Viper) (*ServerConfig, error) {
	SetDefaults(v)
	BindEnv(v)

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.ApplyDefaults()
	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return &cfg, nil
}

// ApplyDefaults applies default values to the server configuration
func (cfg *ServerConfig) ApplyDefaults() {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	cfg.Matcher.ApplyDefaults()
}

// Validate checks the configuration and returns one message per problem found.
func (cfg *ServerConfig) Validate() []string {
	var problems []string
	if strings.TrimSpace(cfg.Port) == "" {
		problems = append(problems, "port cannot be empty")
	}
	if cfg.MaxBodyBytes < 0 {
		problems = append(problems, "max_body_bytes cannot be negative")
	}
	return append(problems, cfg.Matcher.Validate()...)
}
