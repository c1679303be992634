// Package checkin ведет сессию отметки ученика: разрешения, билет, селфи, геолокация, сохранение.
package checkin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geoface_attendance/internal/geo"
	"github.com/shenikar/geoface_attendance/internal/lateness"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/shenikar/geoface_attendance/internal/verifier"
	"github.com/sirupsen/logrus"
)

// RecordStore сохраняет завершенные записи
type RecordStore interface {
	Append(ctx context.Context, record *models.AttendanceRecord) error
}

// SettingsSource отдает текущие настройки школы
type SettingsSource interface {
	GetSettings(ctx context.Context) (models.Settings, error)
}

// Notifier отправляет уведомление о приходе. Ошибки остаются внутри реализации.
type Notifier interface {
	NotifyCheckIn(ctx context.Context, record models.AttendanceRecord)
}

// Observer получает события конвейера для метрик
type Observer interface {
	StepFailed(kind ErrorKind)
	VerifierFallback()
	Completed(late bool)
}

type nopObserver struct{}

func (nopObserver) StepFailed(ErrorKind) {}
func (nopObserver) VerifierFallback()    {}
func (nopObserver) Completed(bool)       {}

// IdentitySource - откуда получены данные ученика
type IdentitySource string

const (
	SourceScan   IdentitySource = "scan"
	SourceManual IdentitySource = "manual"
)

const notifyTimeout = 30 * time.Second

// Deps - зависимости сессии
type Deps struct {
	Verifier verifier.Verifier
	Records  RecordStore
	Settings SettingsSource
	Notifier Notifier
	Observer Observer
	Logger   *logrus.Logger
	// Location - часовой пояс школы, по нему считается календарный день
	Location *time.Location
	// FallbackStatus - статус при сбое проверки селфи
	FallbackStatus models.VerificationStatus
	Now            func() time.Time
	NewID          func() string
}

func (d Deps) withDefaults() Deps {
	if d.Observer == nil {
		d.Observer = nopObserver{}
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.FallbackStatus == "" {
		d.FallbackStatus = models.StatusVerified
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return d
}

// Outcome - итог завершенной отметки для экрана результата
type Outcome struct {
	Record         models.AttendanceRecord
	Lateness       lateness.Result
	DistanceMeters float64
	InRange        bool
}

// View - снимок сессии для интерфейса
type View struct {
	State          State
	Processing     bool
	Error          *StepError
	Identity       *verifier.ExtractedIdentity
	IdentitySource IdentitySource
	SelfieCaptured bool
	Verdict        *verifier.SelfieVerdict
	Location       *models.Coordinate
	CanSubmit      bool
	Outcome        *Outcome
}

// Machine - одна сессия отметки. Переходы строго линейные с двумя развилками:
// выбор способа ввода и повторное сканирование билета.
type Machine struct {
	mu   sync.Mutex
	deps Deps

	state      State
	processing bool
	lastErr    *StepError
	touchedAt  time.Time

	grantedAt      time.Time
	identity       *verifier.ExtractedIdentity
	identitySource IdentitySource
	selfie         []byte
	verdict        *verifier.SelfieVerdict
	location       *models.Coordinate
	outcome        *Outcome
}

// NewMachine создает сессию в состоянии ожидания разрешений
func NewMachine(deps Deps) *Machine {
	deps = deps.withDefaults()
	return &Machine{
		deps:      deps,
		state:     StateAwaitingPermissions,
		touchedAt: deps.Now(),
	}
}

// State - текущее состояние
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot возвращает копию данных сессии
func (m *Machine) Snapshot() View {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := View{
		State:          m.state,
		Processing:     m.processing,
		Error:          m.lastErr,
		IdentitySource: m.identitySource,
		SelfieCaptured: len(m.selfie) > 0,
		CanSubmit:      m.state == StateReadyToSubmit && m.location != nil && !m.processing,
	}
	if m.identity != nil {
		identity := *m.identity
		v.Identity = &identity
	}
	if m.verdict != nil {
		verdict := *m.verdict
		v.Verdict = &verdict
	}
	if m.location != nil {
		loc := *m.location
		v.Location = &loc
	}
	if m.outcome != nil {
		outcome := *m.outcome
		v.Outcome = &outcome
	}
	return v
}

// IdleSince - сколько времени сессия не менялась. Занятая сессия не простаивает.
func (m *Machine) IdleSince(now time.Time) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processing {
		return 0
	}
	return now.Sub(m.touchedAt)
}

// RequestPermissions открывает камеру с микрофоном и получает одну отметку геолокации.
// Переход дальше только если удалось и то и другое.
func (m *Machine) RequestPermissions(ctx context.Context, devices Devices) error {
	if err := m.begin("request permissions", StateAwaitingPermissions); err != nil {
		return err
	}

	err := devices.OpenMedia(ctx, MediaRequest{Video: true, Audio: true})
	if err == nil {
		_, err = m.locate(ctx, devices)
	}

	return m.finish(func() error {
		if err != nil {
			return m.fail(KindPermission, msgPermission, err)
		}
		m.grantedAt = m.deps.Now()
		m.state = StateChoosingMethod
		return nil
	})
}

// ChooseScan - оператор выбрал сканирование билета
func (m *Machine) ChooseScan() error {
	return m.step("choose scan", func() error {
		m.state = StateScanningID
		return nil
	}, StateChoosingMethod)
}

// SubmitManual - ручной ввод номера и имени, минуя распознавание и подтверждение
func (m *Machine) SubmitManual(studentID, studentName string) error {
	studentID = strings.TrimSpace(studentID)
	studentName = strings.TrimSpace(studentName)

	return m.step("submit manual identity", func() error {
		if studentID == "" || studentName == "" {
			return m.fail(KindInput, msgManualRequired, nil)
		}
		m.identity = &verifier.ExtractedIdentity{StudentID: studentID, StudentName: studentName, Valid: true}
		m.identitySource = SourceManual
		m.state = StateCapturingSelfie
		return nil
	}, StateChoosingMethod)
}

// CaptureID отправляет снимок билета на распознавание.
// Нечитаемый билет и сбой сервиса - разные ошибки, обе оставляют сессию на сканировании.
func (m *Machine) CaptureID(ctx context.Context, image []byte) error {
	if err := m.begin("capture id", StateScanningID); err != nil {
		return err
	}
	if len(image) == 0 {
		return m.finish(func() error { return m.fail(KindCapture, msgNoFrame, errNoFrame) })
	}

	identity, err := m.deps.Verifier.ExtractIdentity(ctx, image)

	return m.finish(func() error {
		if err != nil {
			return m.fail(KindExtractionService, msgExtractionService, err)
		}
		if !identity.Valid {
			return m.fail(KindUnreadableID, msgUnreadableID, nil)
		}
		m.identity = &identity
		m.identitySource = SourceScan
		m.state = StateConfirmingID
		return nil
	})
}

// BackToMethod возвращает со сканирования к выбору способа
func (m *Machine) BackToMethod() error {
	return m.step("back to method", func() error {
		m.identity = nil
		m.identitySource = ""
		m.state = StateChoosingMethod
		return nil
	}, StateScanningID)
}

// ConfirmID - оператор подтвердил распознанные данные
func (m *Machine) ConfirmID() error {
	return m.step("confirm id", func() error {
		m.state = StateCapturingSelfie
		return nil
	}, StateConfirmingID)
}

// RejectID - данные неверны, сканируем заново
func (m *Machine) RejectID() error {
	return m.step("reject id", func() error {
		m.identity = nil
		m.identitySource = ""
		m.state = StateScanningID
		return nil
	}, StateConfirmingID)
}

// CaptureSelfie сохраняет селфи и проверяет его. Сбой проверки не ошибка шага:
// используется запасной вердикт.
func (m *Machine) CaptureSelfie(ctx context.Context, image []byte) error {
	if err := m.begin("capture selfie", StateCapturingSelfie); err != nil {
		return err
	}
	if len(image) == 0 {
		return m.finish(func() error { return m.fail(KindCapture, msgNoFrame, errNoFrame) })
	}

	verdict, err := m.deps.Verifier.VerifySelfie(ctx, image)
	if err == nil && verdict.Status != models.StatusVerified && verdict.Status != models.StatusRejected {
		err = fmt.Errorf("%w: unexpected status %q", verifier.ErrMalformedResponse, verdict.Status)
	}
	if err != nil {
		m.deps.Logger.WithFields(logrus.Fields{
			"service": "checkin",
			"method":  "CaptureSelfie",
		}).WithError(err).Warn("Selfie verification unavailable, using fallback verdict")
		m.deps.Observer.VerifierFallback()
		verdict = verifier.FallbackVerdict(m.deps.FallbackStatus)
	}

	return m.finish(func() error {
		m.selfie = append([]byte(nil), image...)
		m.verdict = &verdict
		m.state = StateAcquiringLocation
		return nil
	})
}

// AcquireLocation получает отметку геолокации без кеша
func (m *Machine) AcquireLocation(ctx context.Context, locator Locator) error {
	if err := m.begin("acquire location", StateAcquiringLocation); err != nil {
		return err
	}

	fix, err := m.locate(ctx, locator)

	return m.finish(func() error {
		if err != nil {
			return m.fail(KindLocation, msgLocation, err)
		}
		if fix.CapturedAt.Before(m.grantedAt) {
			return m.fail(KindLocation, msgStaleLocation, fmt.Errorf("fix captured at %s before permissions granted", fix.CapturedAt))
		}
		m.location = &fix
		m.state = StateReadyToSubmit
		return nil
	})
}

// Submit считает опоздание, сохраняет запись ровно один раз и запускает уведомление.
// Отправка уведомления не влияет на результат.
func (m *Machine) Submit(ctx context.Context) (Outcome, error) {
	if err := m.begin("submit", StateReadyToSubmit); err != nil {
		return Outcome{}, err
	}

	m.mu.Lock()
	identity, verdict, fix := *m.identity, *m.verdict, *m.location
	selfie := m.selfie
	m.mu.Unlock()

	log := m.deps.Logger.WithFields(logrus.Fields{
		"service":    "checkin",
		"method":     "Submit",
		"student_id": identity.StudentID,
	})

	settings, err := m.deps.Settings.GetSettings(ctx)
	var start lateness.Clock
	if err == nil {
		start, err = lateness.ParseClock(settings.Schedule.StartTime)
	}
	if err != nil {
		log.WithError(err).Error("Failed to read attendance settings")
		return Outcome{}, m.finish(func() error { return m.fail(KindSettings, msgSettings, err) })
	}

	now := m.deps.Now().In(m.deps.Location)
	record := models.AttendanceRecord{
		ID:                 m.deps.NewID(),
		StudentID:          identity.StudentID,
		StudentName:        identity.StudentName,
		CheckInTime:        now,
		Location:           fix,
		SelfieImage:        selfie,
		VerificationStatus: verdict.Status,
	}
	if verdict.Note != "" {
		note := verdict.Note
		record.VerificationNote = &note
	}

	if err := m.deps.Records.Append(ctx, &record); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"record_id":     record.ID,
			"check_in_time": record.CheckInTime,
		}).Error("Failed to persist attendance record, session aborted")
		return Outcome{}, m.finish(func() error {
			m.state = StateFailed
			return m.fail(KindPersistence, msgPersistence, err)
		})
	}

	distance := geo.FromOrigin(settings.Geofence, fix)
	outcome := Outcome{
		Record:         record,
		Lateness:       lateness.Evaluate(now, start),
		DistanceMeters: distance,
		InRange:        geo.IsInRange(distance, settings.Geofence.RadiusMeters),
	}
	log.WithFields(logrus.Fields{
		"record_id":    record.ID,
		"is_late":      outcome.Lateness.IsLate,
		"minutes_late": outcome.Lateness.MinutesLate,
		"in_range":     outcome.InRange,
	}).Info("Check-in completed")

	m.deps.Observer.Completed(outcome.Lateness.IsLate)
	if m.deps.Notifier != nil {
		go m.notify(ctx, record)
	}

	return outcome, m.finish(func() error {
		m.outcome = &outcome
		m.state = StateCompleted
		return nil
	})
}

// Cancel отменяет сессию без сохранения. Доступно только до выбора способа включительно.
func (m *Machine) Cancel() error {
	return m.step("cancel", func() error {
		m.identity = nil
		m.identitySource = ""
		m.selfie = nil
		m.verdict = nil
		m.location = nil
		m.lastErr = nil
		m.state = StateAborted
		return nil
	}, StateAwaitingPermissions, StateChoosingMethod)
}

func (m *Machine) notify(ctx context.Context, record models.AttendanceRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	m.deps.Notifier.NotifyCheckIn(ctx, record)
}

func (m *Machine) locate(ctx context.Context, locator Locator) (models.Coordinate, error) {
	opts := DefaultLocateOptions
	requestedAt := m.deps.Now()

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	fix, err := locator.Locate(ctx, opts)
	if err != nil {
		return models.Coordinate{}, err
	}
	if fix.CapturedAt.IsZero() {
		fix.CapturedAt = m.deps.Now()
	}
	if fix.CapturedAt.Before(requestedAt.Add(-opts.MaximumAge)) {
		return models.Coordinate{}, fmt.Errorf("cached fix from %s rejected", fix.CapturedAt)
	}
	return fix, nil
}

// begin занимает сессию под асинхронную операцию
func (m *Machine) begin(op string, allowed ...State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processing {
		return ErrBusy
	}
	if !stateIn(m.state, allowed) {
		return transitionError(op, m.state)
	}
	m.processing = true
	m.lastErr = nil
	return nil
}

// finish освобождает сессию и применяет результат под блокировкой
func (m *Machine) finish(apply func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processing = false
	m.touchedAt = m.deps.Now()
	return apply()
}

// step - синхронный переход
func (m *Machine) step(op string, apply func() error, allowed ...State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.processing {
		return ErrBusy
	}
	if !stateIn(m.state, allowed) {
		return transitionError(op, m.state)
	}
	m.lastErr = nil
	m.touchedAt = m.deps.Now()
	return apply()
}

// fail запоминает ошибку шага для интерфейса. Вызывается под блокировкой.
func (m *Machine) fail(kind ErrorKind, message string, cause error) error {
	m.lastErr = &StepError{Kind: kind, Message: message, Err: cause}
	m.deps.Observer.StepFailed(kind)
	return m.lastErr
}

func stateIn(s State, allowed []State) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
