package checkin

import (
	"context"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
)

// MediaRequest - какие устройства нужно открыть
type MediaRequest struct {
	Video bool
	Audio bool
}

// LocateOptions - параметры запроса геолокации
type LocateOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	// MaximumAge - допустимый возраст кешированной отметки, ноль запрещает кеш
	MaximumAge time.Duration
}

// DefaultLocateOptions - единственный разрешенный режим: высокая точность, 10 секунд, без кеша
var DefaultLocateOptions = LocateOptions{
	HighAccuracy: true,
	Timeout:      10 * time.Second,
	MaximumAge:   0,
}

// MediaOpener открывает поток камеры и микрофона
type MediaOpener interface {
	OpenMedia(ctx context.Context, req MediaRequest) error
}

// Locator получает одну отметку геолокации
type Locator interface {
	Locate(ctx context.Context, opts LocateOptions) (models.Coordinate, error)
}

// Devices - устройства клиента, нужные для выдачи разрешений
type Devices interface {
	MediaOpener
	Locator
}

// ReportedDevices передает машине результаты, которые браузер уже получил сам.
// Клиент обязан запрашивать позицию с теми же параметрами, что и DefaultLocateOptions.
// CapturedAt у Fix оставляют пустым: часам клиента не доверяем, машина ставит время приема.
type ReportedDevices struct {
	MediaErr error
	Fix      *models.Coordinate
	FixErr   error
}

func (d ReportedDevices) OpenMedia(_ context.Context, req MediaRequest) error {
	return d.MediaErr
}

func (d ReportedDevices) Locate(_ context.Context, _ LocateOptions) (models.Coordinate, error) {
	if d.FixErr != nil {
		return models.Coordinate{}, d.FixErr
	}
	if d.Fix == nil {
		return models.Coordinate{}, errNoFix
	}
	return *d.Fix, nil
}
