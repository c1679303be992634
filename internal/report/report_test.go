package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shenikar/geoface_attendance/internal/lateness"
	"github.com/shenikar/geoface_attendance/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func TestWriteAttendanceCSV(t *testing.T) {
	// Подготовка
	views := []models.RecordView{
		{
			Record: models.AttendanceRecord{
				ID:                 "rec-1",
				StudentID:          "STU001",
				StudentName:        "Ahmad Santoso",
				CheckInTime:        time.Date(2026, time.March, 2, 0, 10, 0, 0, time.UTC),
				VerificationStatus: models.StatusVerified,
			},
			DistanceMeters: 12.6,
			InRange:        true,
			Lateness:       lateness.Result{IsLate: true, MinutesLate: 10},
		},
	}
	var buf bytes.Buffer

	// Действие
	err := WriteAttendanceCSV(&buf, views, wib)

	// Проверки
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Name,Date,Time,Status,Is Late,Minutes Late,Distance,Link Photo", lines[0])
	assert.Equal(t, "STU001,Ahmad Santoso,02/03/2026,07:10:00,verified,Yes,10,13m,rec-1", lines[1])
}

func TestMonthlyRecap(t *testing.T) {
	// Подготовка
	students := []*models.Student{
		{ID: "STU001", Name: "Ahmad", Class: "XII IPA 1"},
		{ID: "STU002", Name: "Siti"},
	}
	records := []*models.AttendanceRecord{
		// Понедельник 2 марта 2026, по времени школы
		{StudentID: "STU001", CheckInTime: time.Date(2026, time.March, 2, 6, 50, 0, 0, wib), VerificationStatus: models.StatusVerified},
		// Вторая запись в тот же день не удваивает присутствие
		{StudentID: "STU001", CheckInTime: time.Date(2026, time.March, 2, 8, 0, 0, 0, wib), VerificationStatus: models.StatusVerified},
		// 23:30 UTC 2 марта - это уже 3 марта в WIB
		{StudentID: "STU001", CheckInTime: time.Date(2026, time.March, 2, 23, 30, 0, 0, time.UTC), VerificationStatus: models.StatusVerified},
		// Отклоненная запись не засчитывается
		{StudentID: "STU002", CheckInTime: time.Date(2026, time.March, 2, 7, 0, 0, 0, wib), VerificationStatus: models.StatusRejected},
		// Другой месяц
		{StudentID: "STU002", CheckInTime: time.Date(2026, time.April, 1, 7, 0, 0, 0, wib), VerificationStatus: models.StatusVerified},
	}

	// Действие
	recap, err := MonthlyRecap("2026-03", students, records, wib)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 31, recap.Days)
	require.Len(t, recap.Rows, 2)

	ahmad := recap.Rows[0]
	assert.Equal(t, MarkWeekend, ahmad.Days[0]) // 1 марта - воскресенье
	assert.Equal(t, MarkPresent, ahmad.Days[1])
	assert.Equal(t, MarkPresent, ahmad.Days[2])
	assert.Equal(t, MarkAbsent, ahmad.Days[3])
	assert.Equal(t, 2, ahmad.Present)
	// В марте 2026 года 22 рабочих дня
	assert.Equal(t, 20, ahmad.Absent)
	assert.Equal(t, 9, ahmad.Percent)

	siti := recap.Rows[1]
	assert.Equal(t, 0, siti.Present)
	assert.Equal(t, 22, siti.Absent)
	assert.Equal(t, 0, siti.Percent)
}

func TestFilterClass(t *testing.T) {
	students := []*models.Student{
		{ID: "STU001", Name: "Ahmad", Class: "XII IPA 1"},
		{ID: "STU002", Name: "Siti", Class: "XII IPA 2"},
		{ID: "STU003", Name: "Budi"},
	}

	assert.Len(t, FilterClass(students, ""), 3)
	assert.Len(t, FilterClass(students, AllClasses), 3)

	only := FilterClass(students, "XII IPA 2")
	require.Len(t, only, 1)
	assert.Equal(t, "STU002", only[0].ID)

	assert.Empty(t, FilterClass(students, "X IPS 1"))
}

func TestMonthlyRecap_InvalidMonth(t *testing.T) {
	_, err := MonthlyRecap("March", nil, nil, wib)
	assert.Error(t, err)
}

func TestWriteRecapCSV(t *testing.T) {
	recap := &Recap{
		Month: "2026-02",
		Days:  3,
		Rows: []RecapRow{{
			Student: models.Student{ID: "STU001", Name: "Ahmad"},
			Days:    []Mark{MarkWeekend, MarkPresent, MarkAbsent},
			Present: 1,
			Absent:  1,
			Percent: 50,
		}},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteRecapCSV(&buf, recap))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Student ID,Name,Class,1,2,3,Hadir,Sakit,Ijin,Alpa,Percent", lines[0])
	assert.Equal(t, "STU001,Ahmad,-,-,v,x,1,0,0,1,50%", lines[1])
}
