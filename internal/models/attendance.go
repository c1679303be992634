package models

import (
	"time"
)

// VerificationStatus статус проверки записи о посещаемости
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusPending  VerificationStatus = "pending"
	StatusRejected VerificationStatus = "rejected"
)

// Valid сообщает, является ли статус одним из допустимых значений
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusVerified, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Coordinate - геолокационная отметка, полученная во время сессии отметки
type Coordinate struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

// AttendanceRecord - завершенная отметка ученика.
// После создания меняются только VerificationStatus и VerificationNote.
type AttendanceRecord struct {
	ID                 string             `json:"id"`
	StudentID          string             `json:"student_id"`
	StudentName        string             `json:"student_name"`
	CheckInTime        time.Time          `json:"check_in_time"`
	Location           Coordinate         `json:"location"`
	SelfieImage        []byte             `json:"selfie_image"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	VerificationNote   *string            `json:"verification_note,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}
