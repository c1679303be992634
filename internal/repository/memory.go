package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/service"
)

// MemoryAttendanceRepository хранит записи в памяти процесса.
// Используется для локального запуска без Postgres.
type MemoryAttendanceRepository struct {
	mu      sync.RWMutex
	records []*models.AttendanceRecord
}

func NewMemoryAttendanceRepository() service.AttendanceRepository {
	return &MemoryAttendanceRepository{}
}

func (r *MemoryAttendanceRepository) Append(_ context.Context, record *models.AttendanceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.ID == record.ID {
			return fmt.Errorf("attendance record %s already exists", record.ID)
		}
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.CheckInTime
	}
	stored := copyRecord(record)
	r.records = append(r.records, stored)
	return nil
}

func (r *MemoryAttendanceRepository) GetByID(_ context.Context, id string) (*models.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return copyRecord(rec), nil
		}
	}
	return nil, fmt.Errorf("attendance record %s: %w", id, ErrNotFound)
}

func (r *MemoryAttendanceRepository) UpdateStatus(_ context.Context, id string, status models.VerificationStatus, note *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.ID == id {
			rec.VerificationStatus = status
			if note != nil {
				n := *note
				rec.VerificationNote = &n
			}
			return nil
		}
	}
	return fmt.Errorf("attendance record %s for update: %w", id, ErrNotFound)
}

// ListAll возвращает копии записей без селфи, новые первыми
func (r *MemoryAttendanceRepository) ListAll(_ context.Context) ([]*models.AttendanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.AttendanceRecord, 0, len(r.records))
	for _, rec := range r.records {
		c := copyRecord(rec)
		c.SelfieImage = nil
		out = append(out, c)
	}
	// Стабильная сортировка сохраняет порядок вставки для одинакового времени: позже вставленные первыми
	reverse(out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckInTime.After(out[j].CheckInTime)
	})
	return out, nil
}

func (r *MemoryAttendanceRepository) Clear(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := int64(len(r.records))
	r.records = nil
	return removed, nil
}

// MemoryStudentRepository - список учеников в памяти
type MemoryStudentRepository struct {
	mu       sync.RWMutex
	students map[string]models.Student
}

func NewMemoryStudentRepository(seed ...models.Student) service.StudentRepository {
	r := &MemoryStudentRepository{students: make(map[string]models.Student, len(seed))}
	for _, s := range seed {
		r.students[s.ID] = s
	}
	return r
}

func (r *MemoryStudentRepository) Upsert(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students[student.ID] = *student
	return nil
}

func (r *MemoryStudentRepository) GetByID(_ context.Context, id string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
	}
	return &s, nil
}

func (r *MemoryStudentRepository) List(_ context.Context) ([]*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Student, 0, len(r.students))
	for _, s := range r.students {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemorySettingsRepository хранит настройки в памяти, кеш ему не нужен
type MemorySettingsRepository struct {
	mu       sync.RWMutex
	settings *models.Settings
}

func NewMemorySettingsRepository() service.SettingsRepository {
	return &MemorySettingsRepository{}
}

func (r *MemorySettingsRepository) Get(_ context.Context) (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return nil, fmt.Errorf("settings: %w", ErrNotFound)
	}
	s := *r.settings
	return &s, nil
}

func (r *MemorySettingsRepository) Save(_ context.Context, settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := *settings
	r.settings = &s
	return nil
}

func (r *MemorySettingsRepository) GetFromCache(context.Context) (*models.Settings, error) {
	return nil, nil
}

func (r *MemorySettingsRepository) SetCache(context.Context, *models.Settings) error {
	return nil
}

func (r *MemorySettingsRepository) InvalidateCache(context.Context) error {
	return nil
}

func copyRecord(rec *models.AttendanceRecord) *models.AttendanceRecord {
	c := *rec
	c.SelfieImage = append([]byte(nil), rec.SelfieImage...)
	if rec.VerificationNote != nil {
		n := *rec.VerificationNote
		c.VerificationNote = &n
	}
	return &c
}

func reverse(records []*models.AttendanceRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
