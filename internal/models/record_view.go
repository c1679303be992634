package models

import "github.com/shenikar/geoface_attendance/internal/lateness"

// RecordView - запись с производными полями, посчитанными по текущим настройкам. Не хранится.
type RecordView struct {
	Record         AttendanceRecord
	DistanceMeters float64
	InRange        bool
	Lateness       lateness.Result
}
