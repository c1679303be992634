// Package lateness определяет опоздание относительно начала учебного дня.
package lateness

import (
	"fmt"
	"time"
)

// Clock - время суток из настроек расписания
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock разбирает строку "HH:MM"
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("lateness: invalid time %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Result - итог оценки опоздания
type Result struct {
	IsLate      bool `json:"is_late"`
	MinutesLate int  `json:"minutes_late"`
}

// Cutoff строит границу опоздания в тот же календарный день и в той же зоне, что и checkIn
func Cutoff(checkIn time.Time, start Clock) time.Time {
	y, m, d := checkIn.Date()
	return time.Date(y, m, d, start.Hour, start.Minute, 0, 0, checkIn.Location())
}

// Evaluate сравнивает время отметки с границей. Ровно в срок - не опоздание.
func Evaluate(checkIn time.Time, start Clock) Result {
	cutoff := Cutoff(checkIn, start)
	if !checkIn.After(cutoff) {
		return Result{}
	}
	return Result{
		IsLate:      true,
		MinutesLate: int(checkIn.Sub(cutoff) / time.Minute),
	}
}

// EvaluateString - Evaluate для времени начала в виде строки "HH:MM"
func EvaluateString(checkIn time.Time, startTime string) (Result, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(checkIn, start), nil
}
