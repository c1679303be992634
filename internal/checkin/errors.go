package checkin

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition - операция недоступна в текущем состоянии
	ErrInvalidTransition = errors.New("checkin: invalid transition")
	// ErrBusy - предыдущая операция сессии еще выполняется
	ErrBusy = errors.New("checkin: operation in progress")
	// ErrSessionNotFound - сессии нет или она истекла
	ErrSessionNotFound = errors.New("checkin: session not found")
	// ErrTooManySessions - достигнут предел одновременных сессий
	ErrTooManySessions = errors.New("checkin: too many active sessions")

	errNoFix   = errors.New("no location fix reported")
	errNoFrame = errors.New("empty image")
)

// ErrorKind - категория ошибки шага, которую видит оператор
type ErrorKind string

const (
	KindPermission        ErrorKind = "permission"
	KindCapture           ErrorKind = "capture"
	KindInput             ErrorKind = "input"
	KindUnreadableID      ErrorKind = "unreadable_id"
	KindExtractionService ErrorKind = "extraction_service"
	KindLocation          ErrorKind = "location"
	KindSettings          ErrorKind = "settings"
	KindPersistence       ErrorKind = "persistence"
)

const (
	msgPermission        = "Access denied. Please allow Camera, Microphone, and Location permissions in your browser settings to continue."
	msgNoFrame           = "No image was captured. Please try again."
	msgManualRequired    = "Student ID and name are required."
	msgUnreadableID      = "Could not read ID card. Please try again or use manual entry."
	msgExtractionService = "AI service error. Please try again or use manual entry."
	msgLocation          = "Unable to retrieve your location. Please ensure GPS is enabled."
	msgStaleLocation     = "Location fix is outdated. Please try again."
	msgSettings          = "Attendance settings are unavailable. Please try again."
	msgPersistence       = "Attendance could not be saved. Please contact the administrator."
)

// StepError - ошибка шага, показываемая в интерфейсе рядом с кнопкой повтора
type StepError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Retryable - после ошибки можно повторить шаг в той же сессии
func (e *StepError) Retryable() bool {
	return e.Kind != KindPersistence
}

func transitionError(op string, from State) error {
	return fmt.Errorf("%w: %s not allowed in %s", ErrInvalidTransition, op, from)
}
