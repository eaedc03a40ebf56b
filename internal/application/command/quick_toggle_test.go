package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/persistence/memory"
)

type toggleFixture struct {
	handler *QuickToggleHandler
	ledger  *memory.GradeLedger
	sink    *captureSink
	flags   *config.FeatureFlags
}

func newToggleFixture(t *testing.T) *toggleFixture {
	t.Helper()
	ctx := context.Background()

	lessons := memory.NewLessonRepository()
	assert.NoError(t, lessons.Seed([]journal.Lesson{
		{ID: 1, Date: "01.09.2025", Type: journal.TypeLecture, Number: 1},
		{ID: 2, Date: "03.09.2025", Type: journal.TypePractical, Number: 1},
	}))

	ledger := memory.NewGradeLedger()
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: true, Score: score(6)}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 2, Attended: true}))

	students := memory.NewStudentRepository()
	s, err := roster.NewStudent(1, "Иванов", "Иван", "Иванович")
	assert.NoError(t, err)
	assert.NoError(t, students.Seed([]roster.Student{s}))

	sink := &captureSink{}
	flags := config.LoadFeatureFlags()

	handler := NewQuickToggleHandler(
		ledger, lessons, students, sink, nil,
		flags, journal.TypeLecture, nil,
	)
	return &toggleFixture{handler: handler, ledger: ledger, sink: sink, flags: flags}
}

func TestQuickToggleDisabledFlag(t *testing.T) {
	ctx := context.Background()
	f := newToggleFixture(t)

	// Quick mode is off by default: the click is not consumed.
	result, err := f.handler.Handle(ctx, QuickToggleCommand{StudentID: 1, LessonID: 1})
	assert.NoError(t, err)
	assert.False(t, result.Handled)

	got, _ := f.ledger.Lookup(ctx, journal.GradeKey{StudentID: 1, LessonID: 1})
	assert.True(t, got.Attended)
	assert.Empty(t, f.sink.messages)
}

func TestQuickToggleIneligibleLessonType(t *testing.T) {
	ctx := context.Background()
	f := newToggleFixture(t)
	f.flags.Set(config.FeatureQuickMode, true)

	// Lesson 2 is a practical; only lectures are eligible here.
	result, err := f.handler.Handle(ctx, QuickToggleCommand{StudentID: 1, LessonID: 2})
	assert.NoError(t, err)
	assert.False(t, result.Handled)

	got, _ := f.ledger.Lookup(ctx, journal.GradeKey{StudentID: 1, LessonID: 2})
	assert.True(t, got.Attended)
}

func TestQuickToggleMissingCell(t *testing.T) {
	f := newToggleFixture(t)
	f.flags.Set(config.FeatureQuickMode, true)

	result, err := f.handler.Handle(context.Background(), QuickToggleCommand{StudentID: 9, LessonID: 1})
	assert.NoError(t, err)
	assert.False(t, result.Handled)
}

func TestQuickToggleUnknownStudentLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	f := newToggleFixture(t)
	f.flags.Set(config.FeatureQuickMode, true)

	// A ledger cell for a student the roster does not know (possible with a
	// hand-written seed file).
	assert.NoError(t, f.ledger.Put(ctx, journal.Grade{StudentID: 7, LessonID: 1, Attended: true}))

	_, err := f.handler.Handle(ctx, QuickToggleCommand{StudentID: 7, LessonID: 1})
	assert.Error(t, err)

	// The failed toggle must not have written anything.
	got, _ := f.ledger.Lookup(ctx, journal.GradeKey{StudentID: 7, LessonID: 1})
	assert.True(t, got.Attended)
	assert.Empty(t, f.sink.messages)
}

func TestQuickToggleFlipsAttendanceKeepsScore(t *testing.T) {
	ctx := context.Background()
	f := newToggleFixture(t)
	f.flags.Set(config.FeatureQuickMode, true)

	result, err := f.handler.Handle(ctx, QuickToggleCommand{StudentID: 1, LessonID: 1})
	assert.NoError(t, err)
	assert.True(t, result.Handled)
	assert.False(t, result.Updated.Attended)
	assert.Equal(t, 6.0, *result.Updated.Score)

	// Absent with a kept score is the warning case, named after the student.
	assert.Equal(t, notification.SeverityWarning, result.Severity)
	assert.Contains(t, result.Message, "Иванов И. И.")
	assert.Contains(t, result.Message, "6")
	assert.Equal(t, []string{"quick_toggle"}, f.sink.sources)

	// A second toggle flips back.
	result, err = f.handler.Handle(ctx, QuickToggleCommand{StudentID: 1, LessonID: 1})
	assert.NoError(t, err)
	assert.True(t, result.Handled)
	assert.True(t, result.Updated.Attended)
	assert.Equal(t, notification.SeveritySuccess, result.Severity)
}
