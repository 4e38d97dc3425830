package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cashback.backend/internal/domain/cashback"
)

// Config holds all configuration values. The cashback rules and the
// auto-approve allow-list are parsed once here and passed explicitly to
// the components that need them; nothing reads them from global state.
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Cashback       CashbackConfig
	Boticario      BoticarioConfig
	FirstSuperuser FirstSuperuserConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// CashbackConfig holds the bracket table and the auto-approve allow-list
type CashbackConfig struct {
	Rules           cashback.BracketTable
	AutoApproveCPFs cashback.AllowList
}

// BoticarioConfig holds the partner cashback API settings
type BoticarioConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// FirstSuperuserConfig holds the account seeded at startup
type FirstSuperuserConfig struct {
	Email    string
	Password string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cashback"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("SECRET_KEY", "change-this-in-production"),
			// 60 minutes * 24 hours * 8 days
			AccessExpiry: getEnvAsDuration("ACCESS_TOKEN_EXPIRY", 8*24*time.Hour),
		},
		Cashback: CashbackConfig{
			Rules:           getEnvAsBracketTable("CASHBACK_RULES"),
			AutoApproveCPFs: getEnvAsAllowList("AUTO_APPROVE_CPFS"),
		},
		Boticario: BoticarioConfig{
			BaseURL:  getEnv("BOTICARIO_BASE_URL", "https://mdaqk8ek5j.execute-api.us-east-1.amazonaws.com/v1"),
			APIToken: getEnv("BOTICARIO_API_TOKEN", ""),
			Timeout:  getEnvAsDuration("BOTICARIO_TIMEOUT", 10*time.Second),
		},
		FirstSuperuser: FirstSuperuserConfig{
			Email:    getEnv("FIRST_SUPERUSER_EMAIL", ""),
			Password: getEnv("FIRST_SUPERUSER_PASSWORD", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsBracketTable parses "pct:start:end;pct:start:end;..." into a
// bracket table, falling back to the default table when the variable is
// unset or malformed.
func getEnvAsBracketTable(key string) cashback.BracketTable {
	value := os.Getenv(key)
	if value == "" {
		return cashback.DefaultBracketTable()
	}
	table, err := ParseBracketRules(value)
	if err != nil {
		return cashback.DefaultBracketTable()
	}
	return table
}

// getEnvAsAllowList parses a comma-separated CPF list, falling back to the
// default allow-list when the variable is unset.
func getEnvAsAllowList(key string) cashback.AllowList {
	value := os.Getenv(key)
	if value == "" {
		return cashback.DefaultAllowList()
	}
	var cpfs []string
	for _, cpf := range strings.Split(value, ",") {
		if cpf = strings.TrimSpace(cpf); cpf != "" {
			cpfs = append(cpfs, cpf)
		}
	}
	if len(cpfs) == 0 {
		return cashback.DefaultAllowList()
	}
	return cashback.NewAllowList(cpfs...)
}

// ParseBracketRules parses the CASHBACK_RULES format: semicolon-separated
// "percentage:range_start:range_end" tuples, in table order.
func ParseBracketRules(raw string) (cashback.BracketTable, error) {
	var table cashback.BracketTable
	for _, rule := range strings.Split(raw, ";") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		parts := strings.Split(rule, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid cashback rule %q", rule)
		}
		pct, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid percentage in rule %q: %w", rule, err)
		}
		start, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid range start in rule %q: %w", rule, err)
		}
		end, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid range end in rule %q: %w", rule, err)
		}
		table = append(table, cashback.Bracket{Percentage: pct, Start: start, End: end})
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no cashback rules in %q", raw)
	}
	return table, nil
}
