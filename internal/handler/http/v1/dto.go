package v1

import (
	"time"
)

// LocationFix DTO геолокационной отметки, полученной браузером
// @Description Отметка геолокации. Клиент запрашивает ее с enableHighAccuracy=true, timeout=10000, maximumAge=0.
type LocationFix struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Accuracy  float64 `json:"accuracy" validate:"gte=0"`
}

// PermissionsRequest DTO с результатом запроса разрешений в браузере
// @Description Результат getUserMedia и getCurrentPosition
type PermissionsRequest struct {
	MediaGranted  bool         `json:"media_granted"`
	MediaError    string       `json:"media_error,omitempty" validate:"max=500"`
	Location      *LocationFix `json:"location,omitempty"`
	LocationError string       `json:"location_error,omitempty" validate:"max=500"`
}

// LocationRequest DTO с результатом повторного запроса геолокации
// @Description Результат getCurrentPosition
type LocationRequest struct {
	Location      *LocationFix `json:"location,omitempty"`
	LocationError string       `json:"location_error,omitempty" validate:"max=500"`
}

// ManualIdentityRequest DTO ручного ввода данных ученика
// @Description Номер и имя ученика, введенные вручную
type ManualIdentityRequest struct {
	StudentID   string `json:"student_id" validate:"max=64"`
	StudentName string `json:"student_name" validate:"max=255"`
}

// ImageRequest DTO снимка с камеры
// @Description JPEG в base64 или data URL
type ImageRequest struct {
	Image string `json:"image"`
}

// StepErrorResponse DTO ошибки шага для отображения под экраном
// @Description Ошибка последнего шага
type StepErrorResponse struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// IdentityResponse DTO данных ученика в сессии
// @Description Распознанные или введенные данные ученика
type IdentityResponse struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
}

// VerdictResponse DTO решения по селфи
// @Description Решение по селфи
type VerdictResponse struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// CoordinateResponse DTO координаты
// @Description Координата отметки
type CoordinateResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

// RecordResponse DTO записи посещаемости
// @Description Запись посещаемости
type RecordResponse struct {
	ID                 string             `json:"id"`
	StudentID          string             `json:"student_id"`
	StudentName        string             `json:"student_name"`
	CheckInTime        time.Time          `json:"check_in_time"`
	CheckInTimeMs      int64              `json:"check_in_time_ms"`
	Location           CoordinateResponse `json:"location"`
	VerificationStatus string             `json:"verification_status"`
	VerificationNote   *string            `json:"verification_note,omitempty"`
}

// OutcomeResponse DTO итога отметки
// @Description Итог завершенной отметки
type OutcomeResponse struct {
	Record         RecordResponse `json:"record"`
	IsLate         bool           `json:"is_late"`
	MinutesLate    int            `json:"minutes_late"`
	DistanceMeters float64        `json:"distance_meters"`
	InRange        bool           `json:"in_range"`
}

// SessionResponse DTO состояния сессии отметки
// @Description Снимок сессии отметки
type SessionResponse struct {
	ID             string              `json:"id"`
	State          string              `json:"state"`
	Processing     bool                `json:"processing"`
	Error          *StepErrorResponse  `json:"error,omitempty"`
	Identity       *IdentityResponse   `json:"identity,omitempty"`
	IdentitySource string              `json:"identity_source,omitempty"`
	SelfieCaptured bool                `json:"selfie_captured"`
	Verdict        *VerdictResponse    `json:"verdict,omitempty"`
	Location       *CoordinateResponse `json:"location,omitempty"`
	CanSubmit      bool                `json:"can_submit"`
	Outcome        *OutcomeResponse    `json:"outcome,omitempty"`
}

// CheckinErrorResponse DTO ответа с ошибкой шага
// @Description Ошибка операции над сессией вместе с ее текущим снимком
type CheckinErrorResponse struct {
	Error   string           `json:"error"`
	Kind    string           `json:"kind,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
}

// LoginRequest DTO входа администратора
// @Description Пароль администратора
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse DTO выданного токена
// @Description Токен администратора
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// AdminRecordResponse DTO записи для журнала администратора
// @Description Запись с расстоянием и опозданием по текущим настройкам
type AdminRecordResponse struct {
	RecordResponse
	DistanceMeters float64 `json:"distance_meters"`
	InRange        bool    `json:"in_range"`
	IsLate         bool    `json:"is_late"`
	MinutesLate    int     `json:"minutes_late"`
	SelfieURL      string  `json:"selfie_url"`
	WhatsAppLink   string  `json:"whatsapp_link,omitempty"`
}

// UpdateStatusRequest DTO решения администратора
// @Description Новый статус записи
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=verified rejected"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// ClearRecordsResponse DTO результата очистки
// @Description Сколько записей удалено
type ClearRecordsResponse struct {
	Removed int64 `json:"removed"`
}

// StatsResponse DTO счетчиков по статусам
// @Description Сколько записей всего и в каждом статусе проверки
type StatsResponse struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// SettingsDTO DTO настроек школы
// @Description Настройки школы
type SettingsDTO struct {
	SchoolName           string  `json:"school_name" validate:"required,max=255"`
	SchoolLat            float64 `json:"school_lat" validate:"latitude"`
	SchoolLng            float64 `json:"school_lng" validate:"longitude"`
	RadiusMeters         float64 `json:"radius_meters" validate:"gt=0"`
	StartTime            string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime              string  `json:"end_time" validate:"required,datetime=15:04"`
	TelegramBotToken     string  `json:"telegram_bot_token,omitempty"`
	NotificationTemplate string  `json:"notification_template" validate:"max=2000"`
}

// StudentDTO DTO ученика
// @Description Ученик и адреса каналов уведомлений
type StudentDTO struct {
	ID             string `json:"id" validate:"required,max=64"`
	Name           string `json:"name" validate:"required,max=255"`
	Class          string `json:"class,omitempty" validate:"max=64"`
	ParentWhatsapp string `json:"parent_whatsapp,omitempty" validate:"max=32"`
	TelegramChatID string `json:"telegram_chat_id,omitempty" validate:"max=64"`
}
