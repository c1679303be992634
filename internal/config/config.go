package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/notification"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Verifier Config
	VerifierURL            string        `env:"VERIFIER_URL" envDefault:"http://localhost:8000"`
	VerifierAPIKey         string        `env:"VERIFIER_API_KEY"`
	VerifierTimeout        time.Duration `env:"VERIFIER_TIMEOUT" envDefault:"20s"`
	VerifierFallbackStatus string        `env:"VERIFIER_FALLBACK_STATUS" envDefault:"verified"`

	// Notification Config
	TelegramAPIURL string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	NotifyTimeout  time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`

	// Admin Config
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	JWTSigningKey string        `env:"JWT_SIGNING_KEY"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"geoface-attendance"`
	AdminTokenTTL time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`

	// Session Config
	SchoolTimezone string        `env:"SCHOOL_TIMEZONE" envDefault:"Asia/Jakarta"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	MaxSessions    int           `env:"MAX_SESSIONS" envDefault:"1000"`

	// Ограничение частоты новых сессий на один IP
	CheckinRatePerMinute int `env:"CHECKIN_RATE_PER_MINUTE" envDefault:"30"`
	CheckinRateBurst     int `env:"CHECKIN_RATE_BURST" envDefault:"10"`

	// Settings defaults, действуют пока администратор не сохранил свои
	DefaultSettings models.Settings
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		StorageBackend:         strings.ToLower(getEnv("STORAGE_BACKEND", StoragePostgres)),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		VerifierURL:            getEnv("VERIFIER_URL", "http://localhost:8000"),
		VerifierAPIKey:         os.Getenv("VERIFIER_API_KEY"),
		VerifierTimeout:        getEnvAsDuration("VERIFIER_TIMEOUT", 20*time.Second),
		VerifierFallbackStatus: strings.ToLower(getEnv("VERIFIER_FALLBACK_STATUS", string(models.StatusVerified))),
		TelegramAPIURL:         getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		NotifyTimeout:          getEnvAsDuration("NOTIFY_TIMEOUT", 5*time.Second),
		AdminPassword:          getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSigningKey:          getEnv("JWT_SIGNING_KEY", "dev-signing-key"),
		JWTIssuer:              getEnv("JWT_ISSUER", "geoface-attendance"),
		AdminTokenTTL:          getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		SchoolTimezone:         getEnv("SCHOOL_TIMEZONE", "Asia/Jakarta"),
		SessionTTL:             getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		MaxSessions:            getEnvAsInt("MAX_SESSIONS", 1000),
		CheckinRatePerMinute:   getEnvAsInt("CHECKIN_RATE_PER_MINUTE", 30),
		CheckinRateBurst:       getEnvAsInt("CHECKIN_RATE_BURST", 10),
		DefaultSettings: models.Settings{
			SchoolName: getEnv("SCHOOL_NAME", "Sekolah Digital Indonesia"),
			Geofence: models.GeofenceConfig{
				OriginLat:    getEnvAsFloat("SCHOOL_LAT", -6.175392),
				OriginLng:    getEnvAsFloat("SCHOOL_LNG", 106.827153),
				RadiusMeters: getEnvAsFloat("RADIUS_METERS", 200),
			},
			Schedule: models.ScheduleWindow{
				StartTime: getEnv("START_TIME", "07:00"),
				EndTime:   getEnv("END_TIME", "15:00"),
			},
			TelegramBotToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
			NotificationTemplate: getEnv("NOTIFICATION_TEMPLATE", notification.DefaultTemplate),
		},
	}

	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.StorageBackend)
	}

	status := models.VerificationStatus(cfg.VerifierFallbackStatus)
	if status != models.StatusVerified && status != models.StatusPending {
		return nil, fmt.Errorf("VERIFIER_FALLBACK_STATUS must be verified or pending, got %q", cfg.VerifierFallbackStatus)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if err := cfg.DefaultSettings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default settings: %w", err)
	}

	return cfg, nil
}

// Location возвращает часовой пояс школы
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.SchoolTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHOOL_TIMEZONE %q: %w", c.SchoolTimezone, err)
	}
	return loc, nil
}

// FallbackStatus - статус записи, если проверка селфи недоступна
func (c *Config) FallbackStatus() models.VerificationStatus {
	return models.VerificationStatus(c.VerifierFallbackStatus)
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
