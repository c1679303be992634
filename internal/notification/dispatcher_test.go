package notification_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/notification"
	"github.com/shenikar/geoface_attendance/internal/notification/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var wib = time.FixedZone("WIB", 7*60*60)

type dispatcherMocks struct {
	students  *mocks.MockStudentDirectory
	settings  *mocks.MockSettingsProvider
	publisher *mocks.MockPublisher
}

// newTestDispatcher - вспомогательная функция для создания диспетчера с моками.
func newTestDispatcher(t *testing.T) (*notification.Dispatcher, dispatcherMocks) {
	ctrl := gomock.NewController(t)
	m := dispatcherMocks{
		students:  mocks.NewMockStudentDirectory(ctrl),
		settings:  mocks.NewMockSettingsProvider(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return notification.NewDispatcher(m.students, m.settings, m.publisher, wib, logger), m
}

func botSettings(token string) models.Settings {
	return models.Settings{
		SchoolName:       "Sekolah Digital Indonesia",
		TelegramBotToken: token,
	}
}

func checkIn() models.AttendanceRecord {
	return models.AttendanceRecord{
		ID:          "r1",
		StudentID:   "STU001",
		StudentName: "Jane Doe",
		CheckInTime: time.Date(2026, time.March, 2, 6, 55, 0, 0, wib),
	}
}

func TestNotifyCheckIn_Publishes(t *testing.T) {
	// Подготовка
	d, m := newTestDispatcher(t)
	ctx := context.Background()

	// Ожидания
	m.settings.EXPECT().GetSettings(ctx).Return(botSettings("TOKEN"), nil)
	m.students.EXPECT().GetStudent(ctx, "STU001").Return(&models.Student{ID: "STU001", TelegramChatID: "42"}, nil)
	m.publisher.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg notification.Message) error {
			assert.Equal(t, "42", msg.ChatID)
			assert.Equal(t, "TOKEN", msg.BotToken)
			assert.Equal(t, "r1", msg.RecordID)
			assert.Equal(t, "Hello, this is to inform you that Jane Doe has arrived at Sekolah Digital Indonesia at 06:55:00 on 02/03/2026.", msg.Text)
			return nil
		}).Times(1)

	// Действие
	d.NotifyCheckIn(ctx, checkIn())
}

func TestNotifyCheckIn_SkipsWithoutToken(t *testing.T) {
	d, m := newTestDispatcher(t)
	ctx := context.Background()

	m.settings.EXPECT().GetSettings(ctx).Return(botSettings(""), nil)
	m.students.EXPECT().GetStudent(gomock.Any(), gomock.Any()).Times(0)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	d.NotifyCheckIn(ctx, checkIn())
}

func TestNotifyCheckIn_SkipsUnknownStudentOrNoChat(t *testing.T) {
	d, m := newTestDispatcher(t)
	ctx := context.Background()

	m.settings.EXPECT().GetSettings(ctx).Return(botSettings("TOKEN"), nil).Times(2)
	gomock.InOrder(
		m.students.EXPECT().GetStudent(ctx, "STU001").Return(nil, models.ErrNotFound),
		m.students.EXPECT().GetStudent(ctx, "STU001").Return(&models.Student{ID: "STU001"}, nil),
	)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	d.NotifyCheckIn(ctx, checkIn())
	d.NotifyCheckIn(ctx, checkIn())
}

func TestNotifyCheckIn_ErrorsAreSwallowed(t *testing.T) {
	d, m := newTestDispatcher(t)
	ctx := context.Background()

	m.settings.EXPECT().GetSettings(ctx).Return(models.Settings{}, errors.New("redis down"))
	m.settings.EXPECT().GetSettings(ctx).Return(botSettings("TOKEN"), nil)
	m.students.EXPECT().GetStudent(ctx, "STU001").Return(&models.Student{TelegramChatID: "42"}, nil)
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down"))

	assert.NotPanics(t, func() {
		d.NotifyCheckIn(ctx, checkIn())
		d.NotifyCheckIn(ctx, checkIn())
	})
}
