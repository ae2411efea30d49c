package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reservehq/concierge/internal/conversation"
)

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Rules  conversation.Rules
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// StoreConfig describes session persistence. An empty RedisAddr selects the
// in-memory store.
type StoreConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
}

// Load reads configuration from environment variables and the optional
// rules file.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	storeCfg, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	rules, err := loadRules()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Store: storeCfg, Rules: rules}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadStoreConfig() (StoreConfig, error) {
	db, err := parseOptionalIntEnv("REDIS_DB")
	if err != nil {
		return StoreConfig{}, err
	}
	redisDB := 0
	if db != nil {
		redisDB = *db
	}

	ttl, err := parseOptionalDurationEnv("SESSION_TTL")
	if err != nil {
		return StoreConfig{}, err
	}
	sessionTTL := time.Duration(0)
	if ttl != nil {
		sessionTTL = *ttl
	}

	return StoreConfig{
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		SessionTTL:    sessionTTL,
	}, nil
}

// loadRules starts from the house defaults and overlays the YAML file named
// by RULES_FILE, when set.
func loadRules() (conversation.Rules, error) {
	rules := conversation.DefaultRules()

	path := strings.TrimSpace(os.Getenv("RULES_FILE"))
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return conversation.Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return conversation.Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	if err := validateRules(rules); err != nil {
		return conversation.Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

func validateRules(r conversation.Rules) error {
	if r.PartyMin < 1 || r.PartyMax < r.PartyMin {
		return fmt.Errorf("invalid party bounds %d-%d", r.PartyMin, r.PartyMax)
	}
	if r.BookingHorizonDays < 1 {
		return fmt.Errorf("invalid booking horizon %d", r.BookingHorizonDays)
	}
	if r.OpeningHour < 0 || r.ClosingHour > 23 || r.ClosingHour < r.OpeningHour {
		return fmt.Errorf("invalid opening hours %d-%d", r.OpeningHour, r.ClosingHour)
	}
	return nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalDurationEnv(key string) (*time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := time.ParseDuration(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
