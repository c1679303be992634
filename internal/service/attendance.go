package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/geoface_attendance/internal/geo"
	"github.com/shenikar/geoface_attendance/internal/lateness"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=attendance.go -destination=mocks/mock_attendance.go -package=mocks

var (
	// ErrInvalidStatus - администратор может выставить только verified или rejected
	ErrInvalidStatus = errors.New("status must be verified or rejected")
	// ErrInvalidSettings - настройки не прошли проверку
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrInvalidStudent - у ученика нет номера или имени
	ErrInvalidStudent = errors.New("student id and name are required")
	// ErrStatusFinal - проверенную или отклоненную запись повторно не пересматривают
	ErrStatusFinal = errors.New("only pending records can be reviewed")
)

// AttendanceRepository определяет контракт хранилища записей посещаемости
type AttendanceRepository interface {
	Append(ctx context.Context, record *models.AttendanceRecord) error
	GetByID(ctx context.Context, id string) (*models.AttendanceRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.VerificationStatus, note *string) error
	ListAll(ctx context.Context) ([]*models.AttendanceRecord, error)
	Clear(ctx context.Context) (int64, error)
}

// StudentRepository определяет контракт списка учеников
type StudentRepository interface {
	Upsert(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
}

// SettingsRepository хранит настройки школы и их кеш
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
	GetFromCache(ctx context.Context) (*models.Settings, error)
	SetCache(ctx context.Context, settings *models.Settings) error
	InvalidateCache(ctx context.Context) error
}

// AttendanceService определяет бизнес-логику записей, настроек и учеников
type AttendanceService interface {
	Append(ctx context.Context, record *models.AttendanceRecord) error
	GetRecord(ctx context.Context, id string) (*models.RecordView, error)
	ListRecords(ctx context.Context) ([]models.RecordView, error)
	UpdateStatus(ctx context.Context, id string, status models.VerificationStatus, note *string) (*models.RecordView, error)
	ClearRecords(ctx context.Context) (int64, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error
	UpsertStudent(ctx context.Context, student *models.Student) error
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context) ([]*models.Student, error)
}

type attendanceService struct {
	records  AttendanceRepository
	students StudentRepository
	settings SettingsRepository
	defaults models.Settings
	location *time.Location
	logger   *logrus.Logger
}

// NewAttendanceService создает сервис. defaults действуют, пока администратор не сохранил настройки,
// location - часовой пояс школы для расчета опозданий.
func NewAttendanceService(
	records AttendanceRepository,
	students StudentRepository,
	settings SettingsRepository,
	defaults models.Settings,
	location *time.Location,
	logger *logrus.Logger,
) AttendanceService {
	if location == nil {
		location = time.Local
	}
	return &attendanceService{
		records:  records,
		students: students,
		settings: settings,
		defaults: defaults,
		location: location,
		logger:   logger,
	}
}

// Append сохраняет завершенную отметку
func (s *attendanceService) Append(ctx context.Context, record *models.AttendanceRecord) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "attendance",
		"method":     "Append",
		"record_id":  record.ID,
		"student_id": record.StudentID,
	})

	if !record.VerificationStatus.Valid() {
		log.WithField("status", record.VerificationStatus).Error("Refusing record with unknown status")
		return fmt.Errorf("service: %w: %q", ErrInvalidStatus, record.VerificationStatus)
	}
	if err := s.records.Append(ctx, record); err != nil {
		log.WithError(err).Error("Failed to append attendance record")
		return fmt.Errorf("service: could not append attendance record: %w", err)
	}

	log.Info("Attendance record stored")
	return nil
}

// GetRecord возвращает запись с производными полями
func (s *attendanceService) GetRecord(ctx context.Context, id string) (*models.RecordView, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get attendance record: %w", err)
	}
	return s.recordView(ctx, *record)
}

// ListRecords возвращает все записи, новые первыми.
// Расстояние и опоздание пересчитываются по текущим настройкам при каждом чтении.
func (s *attendanceService) ListRecords(ctx context.Context) ([]models.RecordView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "attendance",
		"method":  "ListRecords",
	})

	records, err := s.records.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list attendance records")
		return nil, fmt.Errorf("service: could not list attendance records: %w", err)
	}
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.RecordView, 0, len(records))
	for _, rec := range records {
		view, err := s.view(*rec, settings)
		if err != nil {
			log.WithError(err).Error("Failed to evaluate attendance record")
			return nil, err
		}
		views = append(views, view)
	}

	log.WithField("count", len(views)).Debug("Attendance records listed")
	return views, nil
}

// UpdateStatus выставляет решение администратора. Повтор того же решения ничего не пишет.
// Пустой note сохраняет прежнее пояснение.
func (s *attendanceService) UpdateStatus(ctx context.Context, id string, status models.VerificationStatus, note *string) (*models.RecordView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "attendance",
		"method":    "UpdateStatus",
		"record_id": id,
		"status":    status,
	})

	if status != models.StatusVerified && status != models.StatusRejected {
		return nil, fmt.Errorf("service: %w: %q", ErrInvalidStatus, status)
	}

	existing, err := s.records.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent attendance record")
		return nil, fmt.Errorf("service: attendance record %s not found for update: %w", id, err)
	}

	if existing.VerificationStatus == status && (note == nil || sameNote(existing.VerificationNote, note)) {
		log.Info("Status unchanged, nothing to write")
		return s.recordView(ctx, *existing)
	}
	if existing.VerificationStatus != models.StatusPending {
		log.WithField("current", existing.VerificationStatus).Warn("Attempted to review a record that is already final")
		return nil, fmt.Errorf("service: record %s is %s: %w", id, existing.VerificationStatus, ErrStatusFinal)
	}

	if err := s.records.UpdateStatus(ctx, id, status, note); err != nil {
		log.WithError(err).Error("Failed to update attendance status")
		return nil, fmt.Errorf("service: could not update attendance status: %w", err)
	}
	existing.VerificationStatus = status
	if note != nil {
		existing.VerificationNote = note
	}

	log.Info("Attendance status updated")
	return s.recordView(ctx, *existing)
}

func (s *attendanceService) recordView(ctx context.Context, record models.AttendanceRecord) (*models.RecordView, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	view, err := s.view(record, settings)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// ClearRecords удаляет все записи
func (s *attendanceService) ClearRecords(ctx context.Context) (int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "attendance",
		"method":  "ClearRecords",
	})
	log.Warn("Clearing all attendance records")

	removed, err := s.records.Clear(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to clear attendance records")
		return 0, fmt.Errorf("service: could not clear attendance records: %w", err)
	}

	log.WithField("removed", removed).Info("Attendance records cleared")
	return removed, nil
}

// GetSettings читает настройки через кеш. Пока настройки не сохранены, действуют значения по умолчанию.
func (s *attendanceService) GetSettings(ctx context.Context) (models.Settings, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "attendance",
		"method":  "GetSettings",
	})

	cached, err := s.settings.GetFromCache(ctx)
	if err != nil {
		log.WithError(err).Warn("Settings cache unavailable, reading from repository")
	}
	if cached != nil {
		return *cached, nil
	}

	stored, err := s.settings.Get(ctx)
	switch {
	case errors.Is(err, models.ErrNotFound):
		stored = &s.defaults
	case err != nil:
		log.WithError(err).Error("Failed to read settings")
		return models.Settings{}, fmt.Errorf("service: could not read settings: %w", err)
	}

	if err := s.settings.SetCache(ctx, stored); err != nil {
		log.WithError(err).Warn("Failed to cache settings")
	}
	return *stored, nil
}

// SaveSettings проверяет и сохраняет настройки, сбрасывая кеш
func (s *attendanceService) SaveSettings(ctx context.Context, settings models.Settings) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "attendance",
		"method":      "SaveSettings",
		"school_name": settings.SchoolName,
	})

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("service: %w: %v", ErrInvalidSettings, err)
	}
	if err := s.settings.Save(ctx, &settings); err != nil {
		log.WithError(err).Error("Failed to save settings")
		return fmt.Errorf("service: could not save settings: %w", err)
	}
	if err := s.settings.InvalidateCache(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate settings cache")
	}

	log.Info("Settings saved")
	return nil
}

// UpsertStudent добавляет или обновляет ученика
func (s *attendanceService) UpsertStudent(ctx context.Context, student *models.Student) error {
	student.ID = strings.TrimSpace(student.ID)
	student.Name = strings.TrimSpace(student.Name)

	log := s.logger.WithFields(logrus.Fields{
		"service":    "attendance",
		"method":     "UpsertStudent",
		"student_id": student.ID,
	})

	if student.ID == "" || student.Name == "" {
		return fmt.Errorf("service: %w", ErrInvalidStudent)
	}
	if err := s.students.Upsert(ctx, student); err != nil {
		log.WithError(err).Error("Failed to upsert student")
		return fmt.Errorf("service: could not save student: %w", err)
	}

	log.Info("Student saved")
	return nil
}

// GetStudent возвращает ученика по номеру
func (s *attendanceService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get student: %w", err)
	}
	return student, nil
}

// ListStudents возвращает список учеников
func (s *attendanceService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "attendance",
			"method":  "ListStudents",
		}).WithError(err).Error("Failed to list students")
		return nil, fmt.Errorf("service: could not list students: %w", err)
	}
	return students, nil
}

func (s *attendanceService) view(record models.AttendanceRecord, settings models.Settings) (models.RecordView, error) {
	late, err := lateness.EvaluateString(record.CheckInTime.In(s.location), settings.Schedule.StartTime)
	if err != nil {
		return models.RecordView{}, fmt.Errorf("service: %w: %v", ErrInvalidSettings, err)
	}
	distance := geo.FromOrigin(settings.Geofence, record.Location)
	return models.RecordView{
		Record:         record,
		DistanceMeters: distance,
		InRange:        geo.IsInRange(distance, settings.Geofence.RadiusMeters),
		Lateness:       late,
	}, nil
}

func sameNote(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
