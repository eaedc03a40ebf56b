package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

func score(v float64) *float64 { return &v }

func TestLessonRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLessonRepository()

	lessons := []journal.Lesson{
		{ID: 2, Date: "03.09.2025", Type: journal.TypePractical, Number: 1},
		{ID: 1, Date: "01.09.2025", Type: journal.TypeLecture, Number: 1},
	}
	assert.NoError(t, repo.Seed(lessons))

	// Storage order is preserved, not date order.
	got, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, journal.LessonID(2), got[0].ID)

	l, err := repo.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, journal.TypeLecture, l.Type)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Duplicate IDs are rejected at load time.
	assert.Error(t, repo.Seed([]journal.Lesson{{ID: 1, Date: "05.09.2025", Type: journal.TypeLecture, Number: 2}}))
}

func TestGradeLedgerUniqueness(t *testing.T) {
	ctx := context.Background()
	ledger := NewGradeLedger()

	g := journal.Grade{StudentID: 1, LessonID: 1, Attended: true, Score: score(8)}
	assert.NoError(t, ledger.Put(ctx, g))

	// One grade per (student, lesson) pair.
	err := ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: false})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// A different pair is a different key.
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 2, Attended: true}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 2, LessonID: 1, Attended: true}))
}

func TestGradeLedgerLookupAndApply(t *testing.T) {
	ctx := context.Background()
	ledger := NewGradeLedger()

	key := journal.GradeKey{StudentID: 1, LessonID: 1}

	// Absence is not an error.
	_, ok := ledger.Lookup(ctx, key)
	assert.False(t, ok)

	// Applying over a missing cell is an error.
	err := ledger.Apply(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: true})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: true, Score: score(5)}))

	updated := journal.Grade{StudentID: 1, LessonID: 1, Attended: false, Score: score(5)}
	assert.NoError(t, ledger.Apply(ctx, updated))

	got, ok := ledger.Lookup(ctx, key)
	assert.True(t, ok)
	assert.False(t, got.Attended)
	assert.Equal(t, 5.0, *got.Score)
}

func TestGradeLedgerListByStudent(t *testing.T) {
	ctx := context.Background()
	ledger := NewGradeLedger()

	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: true}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 2, LessonID: 1, Attended: true}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 2, Attended: false}))

	all, err := ledger.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := ledger.ListByStudent(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestHistoryLog(t *testing.T) {
	ctx := context.Background()
	log := NewHistoryLog()

	key := journal.GradeKey{StudentID: 1, LessonID: 1}

	entries, err := log.List(ctx, key)
	assert.NoError(t, err)
	assert.Empty(t, entries)

	first := journal.GradeHistoryEntry{
		Timestamp: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Old:       journal.GradeValues{Attended: true},
		New:       journal.GradeValues{Attended: false},
		ChangedBy: "Преподаватель",
	}
	assert.NoError(t, log.Append(ctx, key, first))
	assert.NoError(t, log.Append(ctx, key, journal.GradeHistoryEntry{
		Timestamp: time.Date(2025, 9, 1, 11, 0, 0, 0, time.UTC),
		Old:       journal.GradeValues{Attended: false},
		New:       journal.GradeValues{Attended: true},
		ChangedBy: "Преподаватель",
	}))

	entries, err = log.List(ctx, key)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
}
