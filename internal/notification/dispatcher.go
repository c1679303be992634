package notification

import (
	"context"
	"errors"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/mock_dispatcher.go -package=mocks

// StudentDirectory ищет ученика по номеру
type StudentDirectory interface {
	GetStudent(ctx context.Context, id string) (*models.Student, error)
}

// SettingsProvider отдает текущие настройки школы
type SettingsProvider interface {
	GetSettings(ctx context.Context) (models.Settings, error)
}

// Dispatcher решает, кому и что отправить после отметки, и ставит сообщение в очередь.
// Все ошибки только логируются.
type Dispatcher struct {
	students  StudentDirectory
	settings  SettingsProvider
	publisher Publisher
	location  *time.Location
	logger    *logrus.Logger
}

func NewDispatcher(students StudentDirectory, settings SettingsProvider, publisher Publisher, location *time.Location, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		students:  students,
		settings:  settings,
		publisher: publisher,
		location:  location,
		logger:    logger,
	}
}

// NotifyCheckIn отправляет уведомление, только если бот настроен и у ученика есть чат
func (d *Dispatcher) NotifyCheckIn(ctx context.Context, record models.AttendanceRecord) {
	log := d.logger.WithFields(logrus.Fields{
		"service":    "notification",
		"method":     "NotifyCheckIn",
		"record_id":  record.ID,
		"student_id": record.StudentID,
	})

	settings, err := d.settings.GetSettings(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to read settings for notification")
		return
	}
	if settings.TelegramBotToken == "" {
		log.Debug("Telegram bot token is not configured. Skipping notification.")
		return
	}

	student, err := d.students.GetStudent(ctx, record.StudentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("Student is not in the roster. Skipping notification.")
			return
		}
		log.WithError(err).Error("Failed to look up student for notification")
		return
	}
	if student.TelegramChatID == "" {
		log.Info("Student has no Telegram chat. Skipping notification.")
		return
	}

	template := settings.NotificationTemplate
	if template == "" {
		template = DefaultTemplate
	}
	text := FormatMessage(template, NewData(record.StudentName, settings.SchoolName, record.CheckInTime, d.location))

	msg := Message{
		RecordID:  record.ID,
		StudentID: record.StudentID,
		ChatID:    student.TelegramChatID,
		BotToken:  settings.TelegramBotToken,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := d.publisher.Publish(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to queue notification")
		return
	}
	log.Info("Notification queued")
}
