package config

import (
	"testing"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/geoface")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 20*time.Second, cfg.VerifierTimeout)
	assert.Equal(t, models.StatusVerified, cfg.FallbackStatus())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 1000, cfg.MaxSessions)
	assert.Equal(t, 30, cfg.CheckinRatePerMinute)
	assert.Equal(t, 10, cfg.CheckinRateBurst)
	assert.Equal(t, "Sekolah Digital Indonesia", cfg.DefaultSettings.SchoolName)
	assert.Equal(t, -6.175392, cfg.DefaultSettings.Geofence.OriginLat)
	assert.Equal(t, 106.827153, cfg.DefaultSettings.Geofence.OriginLng)
	assert.Equal(t, 200.0, cfg.DefaultSettings.Geofence.RadiusMeters)
	assert.Equal(t, "07:00", cfg.DefaultSettings.Schedule.StartTime)
	assert.Contains(t, cfg.DefaultSettings.NotificationTemplate, "{student_name}")

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", loc.String())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RADIUS_METERS", "350.5")
	t.Setenv("VERIFIER_FALLBACK_STATUS", "PENDING")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 350.5, cfg.DefaultSettings.Geofence.RadiusMeters)
	assert.Equal(t, models.StatusPending, cfg.FallbackStatus())
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing database url": {"DATABASE_URL": "", "STORAGE_BACKEND": "postgres"},
		"unknown backend":      {"STORAGE_BACKEND": "sqlite"},
		"bad fallback":         {"DATABASE_URL": "postgres://x", "VERIFIER_FALLBACK_STATUS": "rejected"},
		"bad timezone":         {"DATABASE_URL": "postgres://x", "SCHOOL_TIMEZONE": "Mars/Olympus"},
		"bad start time":       {"DATABASE_URL": "postgres://x", "START_TIME": "7am"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()

			assert.Error(t, err)
		})
	}
}
