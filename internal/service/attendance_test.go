package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var wib = time.FixedZone("WIB", 7*60*60)

type serviceMocks struct {
	records  *mocks.MockAttendanceRepository
	students *mocks.MockStudentRepository
	settings *mocks.MockSettingsRepository
}

func testDefaults() models.Settings {
	return models.Settings{
		SchoolName: "Sekolah Digital Indonesia",
		Geofence: models.GeofenceConfig{
			OriginLat:    -6.175392,
			OriginLng:    106.827153,
			RadiusMeters: 200,
		},
		Schedule:             models.ScheduleWindow{StartTime: "07:00", EndTime: "15:00"},
		NotificationTemplate: "{student_name} arrived",
	}
}

// newTestAttendanceService - вспомогательная функция для создания сервиса с моками.
func newTestAttendanceService(t *testing.T) (*attendanceService, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		records:  mocks.NewMockAttendanceRepository(ctrl),
		students: mocks.NewMockStudentRepository(ctrl),
		settings: mocks.NewMockSettingsRepository(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewAttendanceService(m.records, m.students, m.settings, testDefaults(), wib, logger)
	return svc.(*attendanceService), m
}

func cachedSettings(m serviceMocks, settings models.Settings) {
	m.settings.EXPECT().GetFromCache(gomock.Any()).Return(&settings, nil).AnyTimes()
}

func record(id string, checkIn time.Time, status models.VerificationStatus) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:                 id,
		StudentID:          "STU001",
		StudentName:        "Ahmad Santoso",
		CheckInTime:        checkIn,
		Location:           models.Coordinate{Latitude: -6.175400, Longitude: 106.827100},
		VerificationStatus: status,
	}
}

func TestAppend_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	rec := record("r1", time.Now(), models.StatusVerified)

	// Ожидания
	m.records.EXPECT().Append(ctx, rec).Return(nil).Times(1)

	// Действие
	err := svc.Append(ctx, rec)

	// Проверки
	require.NoError(t, err)
}

func TestAppend_UnknownStatus(t *testing.T) {
	svc, _ := newTestAttendanceService(t)

	err := svc.Append(context.Background(), record("r1", time.Now(), "maybe"))

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAppend_RepositoryError(t *testing.T) {
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	m.records.EXPECT().Append(ctx, gomock.Any()).Return(dbErr)

	err := svc.Append(ctx, record("r1", time.Now(), models.StatusPending))

	assert.ErrorIs(t, err, dbErr)
}

func TestGetSettings_FromCache(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	expected := testDefaults()
	expected.SchoolName = "SMA Negeri 1"

	// Ожидания
	m.settings.EXPECT().GetFromCache(ctx).Return(&expected, nil).Times(1)

	// Действие
	settings, err := svc.GetSettings(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, settings)
}

func TestGetSettings_FromRepository(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	stored := testDefaults()
	stored.Geofence.RadiusMeters = 350

	// Ожидания
	// 1. Промах кеша
	m.settings.EXPECT().GetFromCache(ctx).Return(nil, nil).Times(1)
	// 2. Чтение из БД
	m.settings.EXPECT().Get(ctx).Return(&stored, nil).Times(1)
	// 3. Запись в кеш
	m.settings.EXPECT().SetCache(ctx, &stored).Return(nil).Times(1)

	// Действие
	settings, err := svc.GetSettings(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 350.0, settings.Geofence.RadiusMeters)
}

func TestGetSettings_DefaultsWhenNeverSaved(t *testing.T) {
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()

	m.settings.EXPECT().GetFromCache(ctx).Return(nil, errors.New("redis down"))
	m.settings.EXPECT().Get(ctx).Return(nil, models.ErrNotFound)
	m.settings.EXPECT().SetCache(ctx, gomock.Any()).Return(errors.New("redis down"))

	settings, err := svc.GetSettings(ctx)

	require.NoError(t, err)
	assert.Equal(t, testDefaults(), settings)
}

func TestGetSettings_RepositoryError(t *testing.T) {
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()

	m.settings.EXPECT().GetFromCache(ctx).Return(nil, nil)
	m.settings.EXPECT().Get(ctx).Return(nil, errors.New("timeout"))

	_, err := svc.GetSettings(ctx)

	assert.Error(t, err)
}

func TestSaveSettings(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	settings := testDefaults()
	settings.Schedule.StartTime = "07:30"

	// Ожидания
	gomock.InOrder(
		m.settings.EXPECT().Save(ctx, &settings).Return(nil),
		m.settings.EXPECT().InvalidateCache(ctx).Return(nil),
	)

	// Действие
	err := svc.SaveSettings(ctx, settings)

	// Проверки
	require.NoError(t, err)
}

func TestSaveSettings_Invalid(t *testing.T) {
	svc, _ := newTestAttendanceService(t)

	bad := testDefaults()
	bad.Geofence.RadiusMeters = 0
	assert.ErrorIs(t, svc.SaveSettings(context.Background(), bad), ErrInvalidSettings)

	bad = testDefaults()
	bad.Schedule.StartTime = "7am"
	assert.ErrorIs(t, svc.SaveSettings(context.Background(), bad), ErrInvalidSettings)
}

func TestListRecords_DerivedFields(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	late := record("r2", time.Date(2026, time.March, 2, 7, 5, 0, 0, wib), models.StatusVerified)
	farAway := record("r1", time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), models.StatusPending)
	farAway.Location = models.Coordinate{Latitude: -6.185392, Longitude: 106.827153}

	// Ожидания
	m.records.EXPECT().ListAll(ctx).Return([]*models.AttendanceRecord{late, farAway}, nil)
	cachedSettings(m, testDefaults())

	// Действие
	views, err := svc.ListRecords(ctx)

	// Проверки
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "r2", views[0].Record.ID)
	assert.True(t, views[0].Lateness.IsLate)
	assert.Equal(t, 5, views[0].Lateness.MinutesLate)
	assert.True(t, views[0].InRange)

	assert.False(t, views[1].Lateness.IsLate)
	assert.False(t, views[1].InRange)
	assert.InDelta(t, 1112, views[1].DistanceMeters, 2)
}

func TestListRecords_BrokenStartTime(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	broken := testDefaults()
	broken.Schedule.StartTime = "7am"

	// Ожидания
	m.records.EXPECT().ListAll(ctx).
		Return([]*models.AttendanceRecord{record("r1", time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), models.StatusVerified)}, nil)
	cachedSettings(m, broken)

	// Действие
	views, err := svc.ListRecords(ctx)

	// Проверки
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Nil(t, views)
}

func TestListRecords_RetroactiveReclassification(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	// 00:05 UTC = 07:05 WIB, день берется по часовому поясу школы
	rec := record("r1", time.Date(2026, time.March, 2, 0, 5, 0, 0, time.UTC), models.StatusVerified)

	before := testDefaults()
	after := testDefaults()
	after.Schedule.StartTime = "07:30"
	after.Geofence.RadiusMeters = 0.5

	// Ожидания
	m.records.EXPECT().ListAll(ctx).Return([]*models.AttendanceRecord{rec}, nil).Times(2)
	gomock.InOrder(
		m.settings.EXPECT().GetFromCache(ctx).Return(&before, nil),
		m.settings.EXPECT().GetFromCache(ctx).Return(&after, nil),
	)

	// Действие
	first, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	second, err := svc.ListRecords(ctx)
	require.NoError(t, err)

	// Проверки
	assert.True(t, first[0].Lateness.IsLate)
	assert.Equal(t, 5, first[0].Lateness.MinutesLate)
	assert.True(t, first[0].InRange)

	assert.False(t, second[0].Lateness.IsLate)
	assert.False(t, second[0].InRange)
	assert.Equal(t, first[0].Record, second[0].Record)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, _ := newTestAttendanceService(t)

	_, err := svc.UpdateStatus(context.Background(), "r1", models.StatusPending, nil)

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()

	m.records.EXPECT().GetByID(ctx, "missing").Return(nil, models.ErrNotFound)

	_, err := svc.UpdateStatus(ctx, "missing", models.StatusRejected, nil)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateStatus_Writes(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	rec := record("r1", time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), models.StatusPending)
	note := "Face does not match ID"

	// Ожидания
	m.records.EXPECT().GetByID(ctx, "r1").Return(rec, nil)
	m.records.EXPECT().UpdateStatus(ctx, "r1", models.StatusRejected, &note).Return(nil).Times(1)
	cachedSettings(m, testDefaults())

	// Действие
	view, err := svc.UpdateStatus(ctx, "r1", models.StatusRejected, &note)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, view.Record.VerificationStatus)
	require.NotNil(t, view.Record.VerificationNote)
	assert.Equal(t, note, *view.Record.VerificationNote)
}

func TestUpdateStatus_IdempotentRepeat(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	note := "checked by admin"
	rec := record("r1", time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), models.StatusVerified)
	rec.VerificationNote = &note
	same := "checked by admin"

	// Ожидания
	m.records.EXPECT().GetByID(ctx, "r1").Return(rec, nil).Times(2)
	m.records.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	cachedSettings(m, testDefaults())

	// Действие
	_, err := svc.UpdateStatus(ctx, "r1", models.StatusVerified, nil)
	require.NoError(t, err)
	view, err := svc.UpdateStatus(ctx, "r1", models.StatusVerified, &same)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusVerified, view.Record.VerificationStatus)
}

func TestUpdateStatus_FinalRecordIsNotOverwritten(t *testing.T) {
	for _, current := range []models.VerificationStatus{models.StatusVerified, models.StatusRejected} {
		t.Run(string(current), func(t *testing.T) {
			// Подготовка
			svc, m := newTestAttendanceService(t)
			ctx := context.Background()
			rec := record("r1", time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), current)
			target := models.StatusVerified
			if current == models.StatusVerified {
				target = models.StatusRejected
			}

			// Ожидания
			m.records.EXPECT().GetByID(ctx, "r1").Return(rec, nil)
			m.records.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			// Действие
			view, err := svc.UpdateStatus(ctx, "r1", target, nil)

			// Проверки
			assert.ErrorIs(t, err, ErrStatusFinal)
			assert.Nil(t, view)
			assert.Equal(t, current, rec.VerificationStatus)
		})
	}
}

func TestUpdateStatus_FinalRecordNoteIsNotChanged(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	rec := record("r1", time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), models.StatusRejected)
	note := "another reason"

	// Ожидания
	m.records.EXPECT().GetByID(ctx, "r1").Return(rec, nil)
	m.records.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, err := svc.UpdateStatus(ctx, "r1", models.StatusRejected, &note)

	// Проверки
	assert.ErrorIs(t, err, ErrStatusFinal)
}

func TestClearRecords(t *testing.T) {
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()

	m.records.EXPECT().Clear(ctx).Return(int64(3), nil)

	removed, err := svc.ClearRecords(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestUpsertStudent(t *testing.T) {
	// Подготовка
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()
	student := &models.Student{ID: " STU001 ", Name: "Ahmad Santoso", TelegramChatID: "12345"}

	// Ожидания
	m.students.EXPECT().
		Upsert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, s *models.Student) error {
			assert.Equal(t, "STU001", s.ID)
			return nil
		})

	// Действие
	err := svc.UpsertStudent(ctx, student)

	// Проверки
	require.NoError(t, err)
	assert.ErrorIs(t, svc.UpsertStudent(ctx, &models.Student{ID: "STU002"}), ErrInvalidStudent)
}

func TestGetStudent_NotFound(t *testing.T) {
	svc, m := newTestAttendanceService(t)
	ctx := context.Background()

	m.students.EXPECT().GetByID(ctx, "STU404").Return(nil, models.ErrNotFound)

	_, err := svc.GetStudent(ctx, "STU404")

	assert.ErrorIs(t, err, models.ErrNotFound)
}
