package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatJournal(t *testing.T) {
	d := time.Date(2025, 9, 2, 14, 30, 0, 0, MoscowTZ)

	assert.Equal(t, "02.09.2025", FormatJournal(d))
	assert.Equal(t, "02.09.2025 14:30", FormatJournalTimestamp(d))
}

func TestParseJournalDate(t *testing.T) {
	d, err := ParseJournalDate("15.09.2025")
	assert.NoError(t, err)
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.September, d.Month())

	_, err = ParseJournalDate("2025-09-15")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	moment := time.Date(2025, 9, 15, 10, 0, 0, 0, MoscowTZ)
	clock := NewFixedClock(moment)

	assert.Equal(t, moment, clock.Now())
	assert.Equal(t, "15.09.2025", clock.Today())
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 9, 15, 0, 30, 0, 0, MoscowTZ)
	b := time.Date(2025, 9, 15, 23, 30, 0, 0, MoscowTZ)
	c := time.Date(2025, 9, 16, 0, 30, 0, 0, MoscowTZ)

	assert.True(t, IsSameDay(a, b))
	assert.False(t, IsSameDay(a, c))
}
