// Package report строит выгрузки для администратора: журнал отметок и помесячную сводку.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/shenikar/geoface_attendance/internal/models"
)

var attendanceHeader = []string{"ID", "Name", "Date", "Time", "Status", "Is Late", "Minutes Late", "Distance", "Link Photo"}

// WriteAttendanceCSV пишет журнал отметок. Дата и время выводятся в часовом поясе школы,
// последняя колонка содержит идентификатор записи для ссылки на фото.
func WriteAttendanceCSV(w io.Writer, views []models.RecordView, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(attendanceHeader); err != nil {
		return fmt.Errorf("report: failed to write header: %w", err)
	}

	for _, v := range views {
		at := v.Record.CheckInTime.In(loc)
		row := []string{
			v.Record.StudentID,
			v.Record.StudentName,
			at.Format("02/01/2006"),
			at.Format("15:04:05"),
			string(v.Record.VerificationStatus),
			yesNo(v.Lateness.IsLate),
			strconv.Itoa(v.Lateness.MinutesLate),
			formatDistance(v.DistanceMeters),
			v.Record.ID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: failed to write record %s: %w", v.Record.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Mark - отметка дня в сводке
type Mark string

const (
	MarkPresent Mark = "v"
	MarkWeekend Mark = "-"
	MarkAbsent  Mark = "x"
)

// RecapRow - строка сводки по одному ученику
type RecapRow struct {
	Student models.Student `json:"student"`
	Days    []Mark         `json:"days"`
	Present int            `json:"present"`
	Absent  int            `json:"absent"`
	Percent int            `json:"percent"`
}

// Recap - сводка за месяц
type Recap struct {
	Month string     `json:"month"`
	Days  int        `json:"days"`
	Rows  []RecapRow `json:"rows"`
}

// AllClasses - значение фильтра класса, при котором в сводку попадают все ученики
const AllClasses = "All"

// FilterClass оставляет учеников одного класса. Пустой класс или AllClasses не фильтрует.
func FilterClass(students []*models.Student, class string) []*models.Student {
	if class == "" || class == AllClasses {
		return students
	}
	out := make([]*models.Student, 0, len(students))
	for _, s := range students {
		if s.Class == class {
			out = append(out, s)
		}
	}
	return out
}

// MonthlyRecap считает посещаемость за месяц "YYYY-MM". Присутствие засчитывается только
// по подтвержденной записи в этот календарный день школы, выходные не считаются рабочими днями.
func MonthlyRecap(month string, students []*models.Student, records []*models.AttendanceRecord, loc *time.Location) (*Recap, error) {
	if loc == nil {
		loc = time.Local
	}
	first, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return nil, fmt.Errorf("report: invalid month %q: %w", month, err)
	}
	days := first.AddDate(0, 1, -1).Day()

	present := make(map[string]map[int]bool)
	for _, rec := range records {
		if rec.VerificationStatus != models.StatusVerified {
			continue
		}
		at := rec.CheckInTime.In(loc)
		if at.Year() != first.Year() || at.Month() != first.Month() {
			continue
		}
		if present[rec.StudentID] == nil {
			present[rec.StudentID] = make(map[int]bool)
		}
		present[rec.StudentID][at.Day()] = true
	}

	recap := &Recap{Month: first.Format("2006-01"), Days: days, Rows: make([]RecapRow, 0, len(students))}
	for _, s := range students {
		row := RecapRow{Student: *s, Days: make([]Mark, days)}
		working := 0
		for d := 1; d <= days; d++ {
			date := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, loc)
			weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
			if !weekend {
				working++
			}
			switch {
			case present[s.ID][d]:
				row.Days[d-1] = MarkPresent
				row.Present++
			case weekend:
				row.Days[d-1] = MarkWeekend
			default:
				row.Days[d-1] = MarkAbsent
			}
		}
		row.Absent = working - row.Present
		if working > 0 {
			row.Percent = int(math.Round(float64(row.Present) / float64(working) * 100))
		}
		recap.Rows = append(recap.Rows, row)
	}
	return recap, nil
}

// WriteRecapCSV пишет сводку. Колонки Sakit и Ijin всегда нулевые: больничных и отпросов система не ведет.
func WriteRecapCSV(w io.Writer, recap *Recap) error {
	cw := csv.NewWriter(w)

	header := []string{"Student ID", "Name", "Class"}
	for d := 1; d <= recap.Days; d++ {
		header = append(header, strconv.Itoa(d))
	}
	header = append(header, "Hadir", "Sakit", "Ijin", "Alpa", "Percent")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("report: failed to write header: %w", err)
	}

	for _, r := range recap.Rows {
		class := r.Student.Class
		if class == "" {
			class = "-"
		}
		row := []string{r.Student.ID, r.Student.Name, class}
		for _, m := range r.Days {
			row = append(row, string(m))
		}
		row = append(row,
			strconv.Itoa(r.Present),
			"0",
			"0",
			strconv.Itoa(r.Absent),
			strconv.Itoa(r.Percent)+"%",
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: failed to write row for %s: %w", r.Student.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatDistance(meters float64) string {
	if math.IsNaN(meters) {
		return "NaN"
	}
	return strconv.FormatFloat(math.Round(meters), 'f', 0, 64) + "m"
}
