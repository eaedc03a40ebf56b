package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lessonSeq(n int) []Lesson {
	lessons := make([]Lesson, 0, n)
	for i := 0; i < n; i++ {
		lessons = append(lessons, Lesson{
			ID:     LessonID(i + 1),
			Date:   LessonDate(fmt.Sprintf("%02d.09.2025", i+1)),
			Type:   TypeLecture,
			Number: i + 1,
		})
	}
	return lessons
}

func TestWindowPagination(t *testing.T) {
	w := NewWindow(6)
	lessons := lessonSeq(25)

	assert.Equal(t, ViewModeScroll, w.Mode())
	assert.Len(t, w.Slice(lessons), 25)

	w.SetMode(ViewModePagination, lessons, "")
	assert.Equal(t, 5, w.TotalPages(len(lessons)))
	assert.Len(t, w.Slice(lessons), 6)

	// Last page holds the remainder.
	w.SetPage(4, len(lessons))
	assert.Len(t, w.Slice(lessons), 1)

	// Out-of-range pages clamp instead of failing.
	w.SetPage(99, len(lessons))
	assert.Equal(t, 4, w.Page())
	w.SetPage(-3, len(lessons))
	assert.Equal(t, 0, w.Page())
}

func TestWindowZeroLessons(t *testing.T) {
	w := NewWindow(6)

	assert.Equal(t, 0, w.TotalPages(0))

	w.SetMode(ViewModePagination, nil, "15.09.2025")
	assert.Equal(t, 0, w.Page())
	assert.Empty(t, w.Slice(nil))
}

func TestWindowSetPerPage(t *testing.T) {
	w := NewWindow(6)
	lessons := lessonSeq(12)

	w.SetMode(ViewModePagination, lessons, "")
	w.SetPage(1, len(lessons))

	// Growing the page size shrinks the page count; the page clamps.
	assert.NoError(t, w.SetPerPage(12, len(lessons)))
	assert.Equal(t, 0, w.Page())

	assert.Error(t, w.SetPerPage(0, len(lessons)))
	assert.Error(t, w.SetPerPage(-5, len(lessons)))
	assert.Equal(t, 12, w.PerPage())
}

func TestWindowJumpToToday(t *testing.T) {
	w := NewWindow(6)
	lessons := lessonSeq(25)

	// Lesson 15 is dated 15.09.2025 and lives on page 2 (indexes 12-17).
	jumped := w.SetMode(ViewModePagination, lessons, "15.09.2025")
	assert.True(t, jumped)
	assert.Equal(t, 2, w.Page())
}

func TestWindowJumpToTodayFiresOncePerEntry(t *testing.T) {
	w := NewWindow(6)
	lessons := lessonSeq(25)

	jumped := w.SetMode(ViewModePagination, lessons, "15.09.2025")
	assert.True(t, jumped)

	// Manual navigation afterwards must stick.
	w.SetPage(0, len(lessons))
	assert.Equal(t, 0, w.Page())

	// Re-entering pagination re-arms the jump.
	w.SetMode(ViewModeScroll, lessons, "15.09.2025")
	jumped = w.SetMode(ViewModePagination, lessons, "15.09.2025")
	assert.True(t, jumped)
	assert.Equal(t, 2, w.Page())
}

func TestWindowJumpMissConsumesFlag(t *testing.T) {
	w := NewWindow(6)
	lessons := lessonSeq(25)

	// No lesson matches the date: no navigation, but the flag is spent.
	jumped := w.SetMode(ViewModePagination, lessons, "31.12.2025")
	assert.False(t, jumped)
	assert.Equal(t, 0, w.Page())

	// Setting the same mode again is a no-op and must not retry the jump.
	jumped = w.SetMode(ViewModePagination, lessons, "15.09.2025")
	assert.False(t, jumped)
	assert.Equal(t, 0, w.Page())
}

func TestWindowSetModeInvalid(t *testing.T) {
	w := NewWindow(6)

	jumped := w.SetMode(ViewMode("grid"), lessonSeq(3), "")
	assert.False(t, jumped)
	assert.Equal(t, ViewModeScroll, w.Mode())
}
