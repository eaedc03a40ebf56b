package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory("")
	assert.True(t, ok)
	assert.Equal(t, CategoryAll, cat)

	cat, ok = ParseCategory("  Lecture ")
	assert.True(t, ok)
	assert.Equal(t, CategoryLecture, cat)

	_, ok = ParseCategory("seminar")
	assert.False(t, ok)
}

func TestFilterLessonsAllSortsByDate(t *testing.T) {
	lessons := []Lesson{
		{ID: 1, Date: "10.09.2025", Type: TypeLecture, Number: 2},
		{ID: 2, Date: "01.09.2025", Type: TypePractical, Number: 1},
		{ID: 3, Date: "05.09.2025", Type: TypeLecture, Number: 1},
	}

	all := FilterLessons(lessons, CategoryAll)
	assert.Equal(t, []LessonID{2, 3, 1}, lessonIDs(all))

	// The input slice is left untouched.
	assert.Equal(t, LessonID(1), lessons[0].ID)
}

func TestFilterLessonsSingleCategoryKeepsStorageOrder(t *testing.T) {
	lessons := []Lesson{
		{ID: 1, Date: "10.09.2025", Type: TypeLecture, Number: 2},
		{ID: 2, Date: "01.09.2025", Type: TypePractical, Number: 1},
		{ID: 3, Date: "05.09.2025", Type: TypeLecture, Number: 1},
	}

	lectures := FilterLessons(lessons, CategoryLecture)
	assert.Equal(t, []LessonID{1, 3}, lessonIDs(lectures))
}

func TestSortLessonsByDateUnparsableLast(t *testing.T) {
	lessons := []Lesson{
		{ID: 1, Date: "мусор", Type: TypeLecture},
		{ID: 2, Date: "01.09.2025", Type: TypeLecture},
		{ID: 3, Date: "тоже мусор", Type: TypeLecture},
	}

	sorted := SortLessonsByDate(lessons)
	assert.Equal(t, []LessonID{2, 1, 3}, lessonIDs(sorted))
}

func TestNewLessonValidation(t *testing.T) {
	_, err := NewLesson(0, "01.09.2025", TypeLecture, 1)
	assert.Error(t, err)

	_, err = NewLesson(1, "2025-09-01", TypeLecture, 1)
	assert.Error(t, err)

	_, err = NewLesson(1, "01.09.2025", LessonType("seminar"), 1)
	assert.Error(t, err)

	l, err := NewLesson(1, "01.09.2025", TypeLecture, 3)
	assert.NoError(t, err)
	assert.Equal(t, "Лек 3, 01.09.2025", l.Title())
}

func TestGradeValuesEqual(t *testing.T) {
	a := GradeValues{Attended: true, Score: score(5), Comment: "x"}

	assert.True(t, a.Equal(GradeValues{Attended: true, Score: score(5), Comment: "x"}))
	assert.False(t, a.Equal(GradeValues{Attended: false, Score: score(5), Comment: "x"}))
	assert.False(t, a.Equal(GradeValues{Attended: true, Score: nil, Comment: "x"}))
	assert.False(t, a.Equal(GradeValues{Attended: true, Score: score(5.5), Comment: "x"}))

	// nil and zero are different values.
	b := GradeValues{Attended: true, Score: nil}
	assert.False(t, b.Equal(GradeValues{Attended: true, Score: score(0)}))
	assert.True(t, b.Equal(GradeValues{Attended: true}))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "8", FormatScore(8))
	assert.Equal(t, "7.5", FormatScore(7.5))
	assert.Equal(t, "0", FormatScore(0))
}

func lessonIDs(lessons []Lesson) []LessonID {
	ids := make([]LessonID, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	return ids
}
