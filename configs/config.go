// Package configs загружает конфигурацию приложения: base.yaml плюс
// переопределения из переменных окружения с префиксом BACKOFFICE_.
package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name        string `koanf:"name"`
		HTTPAddr    string `koanf:"http_addr"`
		MetricsAddr string `koanf:"metrics_addr"`
		LogLevel    string `koanf:"log_level"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Postgres struct {
		DSN string `koanf:"dsn"`
	} `koanf:"postgres"`

	Kafka struct {
		Brokers     []string `koanf:"brokers"`
		TopicEvents string   `koanf:"topic_events"`
	} `koanf:"kafka"`

	Auth struct {
		JWTSecret string        `koanf:"jwt_secret"`
		Issuer    string        `koanf:"issuer"`
		Audience  string        `koanf:"audience"`
		TokenTTL  time.Duration `koanf:"token_ttl"`
		Username  string        `koanf:"username"`
		Password  string        `koanf:"password"`
	} `koanf:"auth"`
}

// Load читает base.yaml из pathDir, затем накладывает окружение.
// Вложенные ключи в окружении разделяются двойным подчёркиванием:
// BACKOFFICE_POSTGRES__DSN, BACKOFFICE_AUTH__JWT_SECRET.
func Load(pathDir string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	if err := k.Load(env.Provider("BACKOFFICE_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "BACKOFFICE_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля. DSN и брокеры опциональны:
// без DSN хранилище работает в памяти, без брокеров события отключены.
func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.App.MetricsAddr == "" {
		return fmt.Errorf("app.metrics_addr required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret required")
	}
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return fmt.Errorf("auth.username and auth.password required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}
