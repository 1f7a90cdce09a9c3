package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Root struct {
	Env   string `yaml:"env"`
	Local Config `yaml:"local"`
	Dev   Config `yaml:"dev"`
	Prod  Config `yaml:"prod"`
}

type Config struct {
	Env string `yaml:"-"`

	Log struct {
		Level     string `yaml:"level" env:"LOG_LEVEL"`
		Format    string `yaml:"format" env:"LOG_FORMAT"`
		AddSource bool   `yaml:"add_source" env:"LOG_ADD_SOURCE"`
	} `yaml:"log"`

	Server struct {
		Host string `yaml:"host" env:"SERVER_HOST"`
		Port int    `yaml:"port" env:"SERVER_PORT"`
	} `yaml:"server"`

	SmartEvent struct {
		Host       string `yaml:"host" env:"SMARTEVENT_HOST"`
		APIVersion int    `yaml:"api_version" env:"SMARTEVENT_API_VERSION"`
		Channel    string `yaml:"channel" env:"SMARTEVENT_CHANNEL"`
		Language   string `yaml:"language" env:"SMARTEVENT_LANGUAGE"`
	} `yaml:"smartevent"`

	Cache struct {
		Dir        string `yaml:"dir" env:"CACHE_DIR"`
		TTLSeconds int    `yaml:"ttl_seconds" env:"CACHE_TTL_SECONDS"`
	} `yaml:"cache"`

	CLI struct {
		OutputFile string `yaml:"output_file" env:"CLI_OUTPUT_FILE"`
	} `yaml:"cli"`

	HTTP struct {
		ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds" env:"HTTP_CONNECT_TIMEOUT_SECONDS"`
		TimeoutSeconds        int `yaml:"timeout_seconds" env:"HTTP_TIMEOUT_SECONDS"`
		DNSCacheSeconds       int `yaml:"dns_cache_seconds" env:"HTTP_DNS_CACHE_SECONDS"`
		Retries               int `yaml:"retries" env:"HTTP_RETRIES"`
	} `yaml:"http"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root Root
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}

	e := strings.TrimSpace(strings.ToLower(root.Env))
	if e == "" {
		e = "local"
	}

	var p Config
	switch e {
	case "local":
		p = root.Local
	case "dev":
		p = root.Dev
	case "prod":
		p = root.Prod
	default:
		return nil, fmt.Errorf("unknown env=%q (expected local|dev|prod)", e)
	}
	p.Env = e

	// environment variables win over the profile
	if err := env.Parse(&p); err != nil {
		return nil, fmt.Errorf("parse env overrides: %w", err)
	}

	applyDefaults(&p)
	return &p, nil
}

func applyDefaults(p *Config) {
	if p.Server.Host == "" {
		p.Server.Host = "0.0.0.0"
	}
	if p.Server.Port == 0 {
		p.Server.Port = 7892
	}

	if p.SmartEvent.APIVersion <= 0 {
		p.SmartEvent.APIVersion = 1
	}
	if p.SmartEvent.Channel == "" {
		p.SmartEvent.Channel = "WEB-PL"
	}

	if p.Cache.Dir == "" {
		p.Cache.Dir = os.TempDir()
	}
	if p.Cache.TTLSeconds <= 0 {
		p.Cache.TTLSeconds = 300
	}

	// upstream contract: 2s connect, 4s total, short-lived DNS entries
	if p.HTTP.ConnectTimeoutSeconds <= 0 {
		p.HTTP.ConnectTimeoutSeconds = 2
	}
	if p.HTTP.TimeoutSeconds <= 0 {
		p.HTTP.TimeoutSeconds = 4
	}
	if p.HTTP.DNSCacheSeconds <= 0 {
		p.HTTP.DNSCacheSeconds = 1
	}
	if p.HTTP.Retries < 0 {
		p.HTTP.Retries = 0
	}

	if p.Log.Level == "" {
		if p.Env == "prod" {
			p.Log.Level = "info"
		} else {
			p.Log.Level = "debug"
		}
	}
	if p.Log.Format == "" {
		if p.Env == "prod" {
			p.Log.Format = "json"
		} else {
			p.Log.Format = "text"
		}
	}
}
