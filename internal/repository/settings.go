package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/service"
)

const (
	settingsCacheKey = "settings:current"
	settingsCacheTTL = 5 * time.Minute
)

type SettingsRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewSettingsRepository(db *pgxpool.Pool, redisClient *redis.Client) service.SettingsRepository {
	return &SettingsRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Get возвращает сохраненные настройки или ErrNotFound, если их еще не сохраняли
func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT value FROM app_settings WHERE id = 1;`).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("settings: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	settings := &models.Settings{}
	if err := json.Unmarshal(raw, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return settings, nil
}

// Save сохраняет настройки целиком
func (r *SettingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	query := `
		INSERT INTO app_settings (id, value) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, raw); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetFromCache пытается получить настройки из Redis. Промах кеша возвращает nil без ошибки.
func (r *SettingsRepository) GetFromCache(ctx context.Context) (*models.Settings, error) {
	val, err := r.redisClient.Get(ctx, settingsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings from cache: %w", err)
	}

	settings := &models.Settings{}
	if err := json.Unmarshal(val, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings from cache: %w", err)
	}
	return settings, nil
}

// SetCache сохраняет настройки в Redis
func (r *SettingsRepository) SetCache(ctx context.Context, settings *models.Settings) error {
	val, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, settingsCacheKey, val, settingsCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set settings in cache: %w", err)
	}
	return nil
}

// InvalidateCache удаляет настройки из кеша
func (r *SettingsRepository) InvalidateCache(ctx context.Context) error {
	if err := r.redisClient.Del(ctx, settingsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}
