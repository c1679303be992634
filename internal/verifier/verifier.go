// Package verifier описывает контракт внешнего AI-сервиса, который читает ученический
// билет и проверяет селфи на живость.
package verifier

import (
	"context"
	"errors"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
)

//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks

// FallbackNote - пояснение к вердикту, выданному без проверки
const FallbackNote = "AI Verification unavailable, accepted by default."

// ErrMalformedResponse - ответ сервиса не соответствует контракту
var ErrMalformedResponse = errors.New("verifier: malformed response")

// ExtractedIdentity - данные, прочитанные с билета или введенные вручную
type ExtractedIdentity struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Valid       bool   `json:"valid"`
}

// SelfieVerdict - решение по селфи. Status бывает только verified или rejected,
// кроме запасного вердикта с политикой pending.
type SelfieVerdict struct {
	Status models.VerificationStatus `json:"status"`
	Note   string                    `json:"note"`
}

// Verifier - внешний сервис распознавания.
// Ошибка означает сбой транспорта или сервиса, а не отрицательный результат.
type Verifier interface {
	ExtractIdentity(ctx context.Context, image []byte) (ExtractedIdentity, error)
	VerifySelfie(ctx context.Context, image []byte) (SelfieVerdict, error)
}

// FallbackVerdict - вердикт при недоступности проверки селфи.
// По умолчанию verified (fail-open), pending оставляет запись на ручную проверку.
func FallbackVerdict(status models.VerificationStatus) SelfieVerdict {
	if status != models.StatusPending {
		status = models.StatusVerified
	}
	return SelfieVerdict{Status: status, Note: FallbackNote}
}

type timeoutVerifier struct {
	next    Verifier
	timeout time.Duration
}

// WithTimeout ограничивает каждый вызов сервиса по времени
func WithTimeout(next Verifier, timeout time.Duration) Verifier {
	if timeout <= 0 {
		return next
	}
	return &timeoutVerifier{next: next, timeout: timeout}
}

func (v *timeoutVerifier) ExtractIdentity(ctx context.Context, image []byte) (ExtractedIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	return v.next.ExtractIdentity(ctx, image)
}

func (v *timeoutVerifier) VerifySelfie(ctx context.Context, image []byte) (SelfieVerdict, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	return v.next.VerifySelfie(ctx, image)
}
