package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Secure    SecureConfig
}

type ServerConfig struct {
	Port string
}

type MongoConfig struct {
	URI      string
	Database string
	// Bounded connect retry at boot; the process exits when exhausted.
	ConnectAttempts int
	ConnectDelay    time.Duration
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	// Secret is the plaintext signing secret. When empty, SecretEnc +
	// SecretKey hold the AES-256-GCM encrypted variant.
	Secret        string
	SecretEnc     string
	SecretKey     string
	Issuer        string
	AccessExpiry  int64 // seconds
	RefreshExpiry int64 // seconds
}

// SMTPConfig is one SMTP endpoint. A zero Host disables the endpoint.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type EmailConfig struct {
	From     string
	Primary  SMTPConfig
	Fallback SMTPConfig
	// Overall deadline for a single send, covering dial, greeting and body.
	SendTimeout time.Duration
	// LogOnly appends a log-only sender to the delivery chain (development).
	LogOnly bool
}

type RateLimitConfig struct {
	// Rate per IP ("100-M" = 100/min). Empty disables.
	RatePerIP string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SecureConfig struct {
	IsDevelopment bool
}

func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:             getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
			Database:        getEnvOrDefault("MONGODB_DATABASE", "taskdeck"),
			ConnectAttempts: viper.GetInt("MONGODB_CONNECT_ATTEMPTS"),
			ConnectDelay:    viper.GetDuration("MONGODB_CONNECT_DELAY"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			SecretEnc:     os.Getenv("JWT_SECRET_ENC"),
			SecretKey:     os.Getenv("JWT_SECRET_KEY"),
			Issuer:        getEnvOrDefault("JWT_ISSUER", "taskdeck"),
			AccessExpiry:  viper.GetInt64("JWT_ACCESS_EXPIRY"),
			RefreshExpiry: viper.GetInt64("JWT_REFRESH_EXPIRY"),
		},
		Email: EmailConfig{
			From: getEnvOrDefault("EMAIL_FROM", `"Task Manager" <noreply@taskdeck.io>`),
			Primary: SMTPConfig{
				Host:     os.Getenv("SMTP_HOST"),
				Port:     viper.GetInt("SMTP_PORT"),
				Username: os.Getenv("SMTP_USER"),
				Password: os.Getenv("SMTP_PASS"),
			},
			Fallback: SMTPConfig{
				Host:     os.Getenv("SMTP_FALLBACK_HOST"),
				Port:     viper.GetInt("SMTP_FALLBACK_PORT"),
				Username: os.Getenv("SMTP_FALLBACK_USER"),
				Password: os.Getenv("SMTP_FALLBACK_PASS"),
			},
			SendTimeout: viper.GetDuration("EMAIL_SEND_TIMEOUT"),
			LogOnly:     viper.GetBool("EMAIL_LOG_ONLY"),
		},
		RateLimit: RateLimitConfig{
			RatePerIP: os.Getenv("RATE_LIMIT_PER_IP"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
	}
	if cfg.Mongo.ConnectAttempts <= 0 {
		cfg.Mongo.ConnectAttempts = 5
	}
	if cfg.Mongo.ConnectDelay <= 0 {
		cfg.Mongo.ConnectDelay = 2 * time.Second
	}
	if cfg.JWT.AccessExpiry <= 0 {
		cfg.JWT.AccessExpiry = 900 // 15 min
	}
	if cfg.JWT.RefreshExpiry <= 0 {
		cfg.JWT.RefreshExpiry = 604800 // 7 days
	}
	if cfg.Email.SendTimeout <= 0 {
		cfg.Email.SendTimeout = 15 * time.Second
	}
	if cfg.Email.Primary.Port == 0 {
		cfg.Email.Primary.Port = 587
	}
	if cfg.Email.Fallback.Port == 0 {
		cfg.Email.Fallback.Port = 587
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
