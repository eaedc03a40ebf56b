// Package timeutil provides date utilities for the teacher journal.
// The journal is a Russian-language gradebook: lesson dates are rendered and
// compared as DD.MM.YYYY strings, note timestamps use DD.MM.YYYY HH:MM.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// MoscowTZ is the Moscow timezone (UTC+3, no DST since 2014).
var MoscowTZ = time.FixedZone("Europe/Moscow", 3*60*60)

// Common date/time formats.
const (
	// FormatJournalDate is the journal date format (DD.MM.YYYY).
	FormatJournalDate = "02.01.2006"
	// FormatJournalDateTime is the journal datetime format (DD.MM.YYYY HH:MM).
	FormatJournalDateTime = "02.01.2006 15:04"
	// FormatISODate is the ISO date format (YYYY-MM-DD).
	FormatISODate = "2006-01-02"
)

// Now returns the current time in Moscow timezone.
func Now() time.Time {
	return time.Now().In(MoscowTZ)
}

// ToMoscow converts a time to Moscow timezone.
func ToMoscow(t time.Time) time.Time {
	return t.In(MoscowTZ)
}

// Date creates a time in Moscow timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, MoscowTZ)
}

// FormatJournal formats a time as a journal date string (DD.MM.YYYY).
func FormatJournal(t time.Time) string {
	return ToMoscow(t).Format(FormatJournalDate)
}

// FormatJournalTimestamp formats a time as a journal datetime string.
func FormatJournalTimestamp(t time.Time) string {
	return ToMoscow(t).Format(FormatJournalDateTime)
}

// ParseJournalDate parses a DD.MM.YYYY string in Moscow timezone.
func ParseJournalDate(value string) (time.Time, error) {
	return time.ParseInLocation(FormatJournalDate, value, MoscowTZ)
}

// IsSameDay checks if two times are on the same day in Moscow timezone.
func IsSameDay(t1, t2 time.Time) bool {
	m1, m2 := ToMoscow(t1), ToMoscow(t2)
	return m1.Year() == m2.Year() && m1.YearDay() == m2.YearDay()
}

// StartOfDay returns the start of the day (00:00:00) in Moscow timezone.
func StartOfDay(t time.Time) time.Time {
	m := ToMoscow(t)
	return time.Date(m.Year(), m.Month(), m.Day(), 0, 0, 0, 0, MoscowTZ)
}

// Clock is the date provider consumed by the journal core.
// Swapped for a fixed clock in tests to make "jump to today" deterministic.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Today returns the current date as a DD.MM.YYYY string.
	Today() string
}

// SystemClock implements Clock using the real wall clock in Moscow timezone.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return Now()
}

// Today implements Clock.
func (SystemClock) Today() string {
	return FormatJournal(Now())
}

// FixedClock implements Clock with a fixed point in time. Used in tests.
type FixedClock struct {
	Time time.Time
}

// NewFixedClock creates a FixedClock pinned to the given time.
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{Time: t}
}

// Now implements Clock.
func (c FixedClock) Now() time.Time {
	return c.Time
}

// Today implements Clock.
func (c FixedClock) Today() string {
	return FormatJournal(c.Time)
}

// WeekdayNameRu returns the Russian name for a weekday.
func WeekdayNameRu(t time.Time) string {
	switch ToMoscow(t).Weekday() {
	case time.Monday:
		return "Понедельник"
	case time.Tuesday:
		return "Вторник"
	case time.Wednesday:
		return "Среда"
	case time.Thursday:
		return "Четверг"
	case time.Friday:
		return "Пятница"
	case time.Saturday:
		return "Суббота"
	case time.Sunday:
		return "Воскресенье"
	default:
		return ""
	}
}
