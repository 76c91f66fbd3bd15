package entity

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// Date - календарный день в UTC (время всегда 00:00:00)
type Date struct {
	t time.Time
}

// ParseDate строго разбирает YYYY-MM-DD; "2024-13-01" и "2024-01-32" отклоняются
func ParseDate(raw string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// NewDate нормализует произвольный момент в UTC-день
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf возвращает UTC-день, в который попадает момент t
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// Start - начало дня (включительно)
func (d Date) Start() time.Time { return d.t }

// End - начало следующего дня (исключительно)
func (d Date) End() time.Time { return d.t.AddDate(0, 0, 1) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) IsZero() bool { return d.t.IsZero() }

const secondsPerDay = 24 * 60 * 60

// DaysUntil - число дней от d до o (o >= d).
// Считаем через Unix-секунды: time.Duration переполняется на интервалах длиннее ~292 лет
func (d Date) DaysUntil(o Date) int {
	return int((o.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
