package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type UpstreamConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type SessionConfig struct {
	CookieName   string `yaml:"cookie_name"`
	CookieSecret string `yaml:"cookie_secret"`
	Issuer       string `yaml:"issuer"`
	TTL          string `yaml:"ttl"`
}

type CasbinConfig struct {
	ModelPath  string `yaml:"model_path"`
	PolicyPath string `yaml:"policy_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Redis    RedisConfig    `yaml:"redis"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Session  SessionConfig  `yaml:"session"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port             string
	GinMode          string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	UpstreamBaseURL  string
	UpstreamTimeout  time.Duration
	CookieName       string
	CookieSecret     string
	CookieIssuer     string
	SessionTTL       time.Duration
	CasbinModelPath  string
	CasbinPolicyPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// the values that differ between deployments.
func Load() (*Config, error) {
	return LoadFrom(env("HRM_CONFIG", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	upTimeout, err := time.ParseDuration(configFile.Upstream.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	sessTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	cfg := &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          configFile.App.GinMode,
		RedisAddr:        env("HRM_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("HRM_REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		UpstreamBaseURL:  env("HRM_API_URL", configFile.Upstream.BaseURL),
		UpstreamTimeout:  upTimeout,
		CookieName:       configFile.Session.CookieName,
		CookieSecret:     env("HRM_COOKIE_SECRET", configFile.Session.CookieSecret),
		CookieIssuer:     configFile.Session.Issuer,
		SessionTTL:       sessTTL,
		CasbinModelPath:  configFile.Casbin.ModelPath,
		CasbinPolicyPath: configFile.Casbin.PolicyPath,
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if cfg.CookieSecret == "" {
		return nil, fmt.Errorf("cookie secret is required")
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
