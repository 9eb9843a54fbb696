package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Auth         AuthConfig
	Guard        GuardConfig
	Availability AvailabilityConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
	// CORSAllowedOrigins applies to /api/ routes; "*" allows any origin.
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// PricingConfig holds the app-level inputs of the quotation engine.
type PricingConfig struct {
	AgencyFeePercent float64
	RatePerKM        float64
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

// GuardConfig configures rate limiting and idempotency replay on request intake.
type GuardConfig struct {
	Backend           string // "memory" or "redis"
	RequestsPerMinute int
	Burst             int
	IdempotencyTTL    time.Duration
}

type AvailabilityConfig struct {
	DefaultWindowDays int
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:       GetServerConfig(),
		Database:     GetDatabaseConfig(),
		Redis:        GetRedisConfig(),
		Pricing:      GetPricingConfig(),
		Auth:         GetAuthConfig(),
		Guard:        GetGuardConfig(),
		Availability: GetAvailabilityConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB runs on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis runs on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8080", GinMode: "test", CORSAllowedOrigins: []string{"*"}},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Pricing: PricingConfig{
			AgencyFeePercent: 20,
			RatePerKM:        0.5,
		},
		Auth: AuthConfig{JWTSecret: "test-secret", Issuer: "artist-booking", TokenTTL: time.Hour},
		Guard: GuardConfig{
			Backend:           "memory",
			RequestsPerMinute: 60,
			Burst:             10,
			IdempotencyTTL:    time.Hour,
		},
		Availability: AvailabilityConfig{DefaultWindowDays: 365},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:               getEnv("SERVER_PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "release"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetPricingConfig() PricingConfig {
	return PricingConfig{
		AgencyFeePercent: getEnvFloat("AGENCY_FEE_PERCENT", 20),
		RatePerKM:        getEnvFloat("RATE_PER_KM", 0.5),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", ""),
		Issuer:    getEnv("JWT_ISSUER", ""),
		TokenTTL:  getEnvDuration("JWT_TTL", 24*time.Hour),
	}
}

func GetGuardConfig() GuardConfig {
	return GuardConfig{
		Backend:           getEnv("GUARD_BACKEND", "redis"),
		RequestsPerMinute: getEnvInt("GUARD_REQUESTS_PER_MINUTE", 10),
		Burst:             getEnvInt("GUARD_BURST", 3),
		IdempotencyTTL:    getEnvDuration("GUARD_IDEMPOTENCY_TTL", 24*time.Hour),
	}
}

func GetAvailabilityConfig() AvailabilityConfig {
	return AvailabilityConfig{
		DefaultWindowDays: getEnvInt("AVAILABILITY_WINDOW_DAYS", 365),
	}
}

// DSN renders the libpq connection string used by pgxpool.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode +
		" timezone=UTC"
}

// URL renders the postgres:// form golang-migrate expects.
func (c DatabaseConfig) URL() string {
	return "pgx5://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
