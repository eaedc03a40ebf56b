package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/persistence/memory"
	"github.com/journal-hub/teacher-journal-hub/pkg/timeutil"
)

func score(v float64) *float64 { return &v }

type viewQueryFixture struct {
	handler *GetJournalViewHandler
	window  *journal.Window
	editor  *journal.Editor
	plans   *memory.PlanRepository
}

func newViewQueryFixture(t *testing.T) *viewQueryFixture {
	t.Helper()
	ctx := context.Background()

	students := memory.NewStudentRepository()
	s1, err := roster.NewStudent(1, "Иванов", "Иван", "Иванович")
	assert.NoError(t, err)
	s2, err := roster.NewStudent(2, "Петрова", "Анна", "Сергеевна")
	assert.NoError(t, err)
	assert.NoError(t, students.Seed([]roster.Student{s1, s2}))

	lessons := memory.NewLessonRepository()
	assert.NoError(t, lessons.Seed([]journal.Lesson{
		{ID: 1, Date: "01.09.2025", Type: journal.TypeLecture, Number: 1},
		{ID: 2, Date: "03.09.2025", Type: journal.TypePractical, Number: 1},
		{ID: 3, Date: "05.09.2025", Type: journal.TypeLecture, Number: 2},
	}))

	ledger := memory.NewGradeLedger()
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: true, Score: score(8)}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 3, Attended: false, Score: score(5)}))

	notes := memory.NewNoteRepository(timeutil.SystemClock{})
	plans := memory.NewPlanRepository()
	window := journal.NewWindow(6)
	editor := journal.NewEditor()

	handler := NewGetJournalViewHandler(students, lessons, ledger, notes, plans, window, editor)
	return &viewQueryFixture{handler: handler, window: window, editor: editor, plans: plans}
}

func TestJournalViewAllCategories(t *testing.T) {
	ctx := context.Background()
	f := newViewQueryFixture(t)

	view, err := f.handler.Handle(ctx, GetJournalViewQuery{})
	assert.NoError(t, err)

	assert.Equal(t, "all", view.Category)
	assert.Equal(t, "scroll", view.Mode)
	assert.Len(t, view.Lessons, 3)
	assert.Len(t, view.Rows, 2)

	row := view.Rows[0]
	assert.Equal(t, "Иванов Иван Иванович", row.FullName)
	assert.Len(t, row.Cells, 2)
	assert.Equal(t, "50%", row.AttendanceRate)
	assert.Equal(t, 13.0, row.TotalScore)
	assert.Equal(t, "13.0", row.TotalScoreText)

	// Student without grades: defined zero aggregates.
	empty := view.Rows[1]
	assert.Empty(t, empty.Cells)
	assert.Equal(t, "0%", empty.AttendanceRate)
	assert.Equal(t, "0.0", empty.TotalScoreText)

	assert.False(t, view.Editor.Open)
}

func TestJournalViewCategoryFilter(t *testing.T) {
	ctx := context.Background()
	f := newViewQueryFixture(t)

	view, err := f.handler.Handle(ctx, GetJournalViewQuery{Category: "lecture"})
	assert.NoError(t, err)

	assert.Len(t, view.Lessons, 2)
	row := view.Rows[0]
	assert.Equal(t, "50%", row.AttendanceRate)
	assert.Equal(t, 13.0, row.TotalScore)
}

func TestJournalViewInvalidCategory(t *testing.T) {
	f := newViewQueryFixture(t)

	_, err := f.handler.Handle(context.Background(), GetJournalViewQuery{Category: "seminar"})
	assert.Error(t, err)
}

func TestJournalViewReflectsEditor(t *testing.T) {
	ctx := context.Background()
	f := newViewQueryFixture(t)

	f.editor.Open(journal.Grade{StudentID: 1, LessonID: 1, Attended: true, Score: score(8)})

	view, err := f.handler.Handle(ctx, GetJournalViewQuery{})
	assert.NoError(t, err)
	assert.True(t, view.Editor.Open)
	assert.Equal(t, int64(1), view.Editor.StudentID)
	assert.Equal(t, "8", view.Editor.Draft.Score)
}

func TestJournalViewPaginationWindow(t *testing.T) {
	ctx := context.Background()
	f := newViewQueryFixture(t)

	f.window.SetMode(journal.ViewModePagination, nil, "")
	assert.NoError(t, f.window.SetPerPage(2, 3))

	view, err := f.handler.Handle(ctx, GetJournalViewQuery{})
	assert.NoError(t, err)
	assert.Equal(t, "pagination", view.Mode)
	assert.Equal(t, 2, view.TotalPages)
	assert.Len(t, view.Lessons, 2)
}
