package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessage(t *testing.T) {
	data := Data{StudentName: "Jane Doe", SchoolName: "SMA 1", Date: "02/03/2026", Time: "06:55:00"}

	text := FormatMessage(DefaultTemplate, data)
	assert.Equal(t, "Hello, this is to inform you that Jane Doe has arrived at SMA 1 at 06:55:00 on 02/03/2026.", text)

	// Заменяется только первое вхождение
	text = FormatMessage("{student_name} / {student_name} {unknown}", data)
	assert.Equal(t, "Jane Doe / {student_name} {unknown}", text)
}

func TestNewData_UsesSchoolZone(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	at := time.Date(2026, time.March, 1, 23, 55, 0, 0, time.UTC)

	data := NewData("Jane", "SMA 1", at, wib)

	assert.Equal(t, "02/03/2026", data.Date)
	assert.Equal(t, "06:55:00", data.Time)
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+62 812-3456", "Jane arrived at 07:00")

	assert.Equal(t, "https://wa.me/628123456?text=Jane+arrived+at+07%3A00", link)
}
