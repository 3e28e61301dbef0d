package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string
	Port        int
	MetricsPort int `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost  string `toml:"postgres_host"`
	PostgresPort  string `toml:"postgres_port"`
	PostgresDB    string `toml:"postgres_db"`
	PostgresUser  string `toml:"postgres_user"`
	RunMigrations bool   `toml:"run_migrations"`
	SeedNews      bool   `toml:"seed_news"`
	// cache
	RedisEnabled     bool   `toml:"redis_enabled"`
	RedisHost        string `toml:"redis_host"`
	RedisPort        string `toml:"redis_port"`
	CacheTTLSeconds  int    `toml:"cache_ttl_seconds"`
	LocalCacheSizeMB int    `toml:"local_cache_size_mb"`
	// auth
	AdminEmail      string `toml:"admin_email"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	BcryptCost      int    `toml:"bcrypt_cost"`
	CookieSecure    bool   `toml:"cookie_secure"`
	// http
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
	AllowedOrigins []string `toml:"allowed_origins"`
	TrustedProxies []string `toml:"trusted_proxies"`
	ClientIPHeader string   `toml:"client_ip_header"`
	// rate limiting
	RateLimitSweepSeconds int                        `toml:"rate_limit_sweep_seconds"`
	RateLimits            map[string]RateLimitConfig `toml:"rate_limits"`
}

// RateLimitConfig overrides the default rule registered under the same name.
type RateLimitConfig struct {
	MaxRequests   int `toml:"max_requests"`
	WindowSeconds int `toml:"window_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the toml file and returns the validated config for the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.load(env)
}

// Parse is Load for an in-memory toml document.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return t.load(env)
}

func (t *Toml) load(env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = 60
	}
	if c.LocalCacheSizeMB == 0 {
		c.LocalCacheSizeMB = 16
	}
	if c.TokenTTLMinutes == 0 {
		c.TokenTTLMinutes = 24 * 60
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.RateLimitSweepSeconds == 0 {
		c.RateLimitSweepSeconds = 60
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("metrics port out of range: %d", c.MetricsPort))
	}
	if c.MetricsPort == c.Port {
		errs = append(errs, errors.New("metrics port must differ from port"))
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDB == "" {
		errs = append(errs, errors.New("postgres host, port and db are required"))
	}
	if c.RedisEnabled && (c.RedisHost == "" || c.RedisPort == "") {
		errs = append(errs, errors.New("redis host and port are required when redis is enabled"))
	}
	if c.TokenTTLMinutes < 0 {
		errs = append(errs, fmt.Errorf("negative token ttl: %d", c.TokenTTLMinutes))
	}
	if c.AdminEmail != "" && !strings.Contains(c.AdminEmail, "@") {
		errs = append(errs, fmt.Errorf("invalid admin email: %s", c.AdminEmail))
	}
	for name, rl := range c.RateLimits {
		if rl.MaxRequests <= 0 || rl.WindowSeconds <= 0 {
			errs = append(errs, fmt.Errorf("rate limit %s: max_requests and window_seconds must be positive", name))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) RateLimitSweepInterval() time.Duration {
	return time.Duration(c.RateLimitSweepSeconds) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
