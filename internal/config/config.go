package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret string
	JWTTTL    time.Duration

	// The single administrator identity. Not stored in the database; admin
	// login compares against these values only.
	AdminEmail    string
	AdminPassword string

	// Optional. When empty the in-memory rate limiter is used instead.
	RedisAddr string

	RateLimitPerMin   int
	SessionCodeLength int
}

func Load() *Config {
	return &Config{
		Env:  getenv("ENV", "dev"),
		Port: getenv("PORT", "8080"),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "club_portal"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret: getenv("JWT_SECRET", "supersecret_change_me"),
		JWTTTL:    time.Duration(intEnv("JWT_TTL_MINUTES", 60)) * time.Minute,

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@ethicraft.com"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),

		RedisAddr: getenv("REDIS_ADDR", ""),

		RateLimitPerMin:   intEnv("RATE_LIMIT_PER_MIN", 60),
		SessionCodeLength: intEnv("SESSION_CODE_LENGTH", 8),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using fallback %d", key, err, fallback)
			return fallback
		}
		return n
	}
	return fallback
}
