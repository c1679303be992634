// Package notification доставляет родителям сообщение о приходе ученика.
// Доставка идет через очередь Redis и никогда не влияет на сохранение отметки.
package notification

import (
	"net/url"
	"strings"
	"time"
)

// DefaultTemplate - текст уведомления по умолчанию
const DefaultTemplate = "Hello, this is to inform you that {student_name} has arrived at {school_name} at {time} on {date}."

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04:05"
)

// Data - значения для подстановки в шаблон
type Data struct {
	StudentName string
	SchoolName  string
	Date        string
	Time        string
}

// NewData готовит подстановки, дата и время берутся в часовом поясе школы
func NewData(studentName, schoolName string, at time.Time, loc *time.Location) Data {
	if loc != nil {
		at = at.In(loc)
	}
	return Data{
		StudentName: studentName,
		SchoolName:  schoolName,
		Date:        at.Format(dateLayout),
		Time:        at.Format(timeLayout),
	}
}

// FormatMessage подставляет значения в шаблон. Заменяется только первое вхождение каждой метки.
func FormatMessage(template string, data Data) string {
	text := strings.Replace(template, "{student_name}", data.StudentName, 1)
	text = strings.Replace(text, "{school_name}", data.SchoolName, 1)
	text = strings.Replace(text, "{date}", data.Date, 1)
	text = strings.Replace(text, "{time}", data.Time, 1)
	return text
}

// WhatsAppLink строит ссылку wa.me с готовым текстом для ручной отправки администратором
func WhatsAppLink(phone, text string) string {
	phone = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}
