package models

import (
	"errors"
	"fmt"
	"time"
)

// GeofenceConfig - точка школы и допустимый радиус отметки
type GeofenceConfig struct {
	OriginLat    float64 `json:"origin_lat"`
	OriginLng    float64 `json:"origin_lng"`
	RadiusMeters float64 `json:"radius_meters"`
}

// ScheduleWindow - учебный день в формате "HH:MM". StartTime служит границей опоздания.
type ScheduleWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Settings - настройки школы, которые читает конвейер отметок
type Settings struct {
	SchoolName           string         `json:"school_name"`
	Geofence             GeofenceConfig `json:"geofence"`
	Schedule             ScheduleWindow `json:"schedule"`
	TelegramBotToken     string         `json:"telegram_bot_token,omitempty"`
	NotificationTemplate string         `json:"notification_template"`
}

// Validate проверяет радиус и формат времени
func (s Settings) Validate() error {
	if !(s.Geofence.RadiusMeters > 0) {
		return errors.New("radius must be positive")
	}
	if _, err := time.Parse("15:04", s.Schedule.StartTime); err != nil {
		return fmt.Errorf("invalid start time %q: %w", s.Schedule.StartTime, err)
	}
	if _, err := time.Parse("15:04", s.Schedule.EndTime); err != nil {
		return fmt.Errorf("invalid end time %q: %w", s.Schedule.EndTime, err)
	}
	return nil
}
