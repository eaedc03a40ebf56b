package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/persistence/memory"
)

func score(v float64) *float64 { return &v }

func exportFixture(t *testing.T) *CSVExporter {
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
	}))

	ledger := memory.NewGradeLedger()
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 1, Attended: true, Score: score(8)}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 1, LessonID: 2, Attended: false, Score: score(5)}))
	assert.NoError(t, ledger.Put(ctx, journal.Grade{StudentID: 2, LessonID: 1, Attended: true}))

	return NewCSVExporter(students, lessons, ledger)
}

func TestCSVExport(t *testing.T) {
	exporter := exportFixture(t)

	var buf bytes.Buffer
	assert.NoError(t, exporter.Export(context.Background(), journal.CategoryAll, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)

	assert.Equal(t, "ФИО;Лек 1, 01.09.2025;Пр 1, 03.09.2025;Посещаемость;Сумма баллов", lines[0])

	// Absence with a kept score renders as "н (5)".
	assert.Equal(t, "Иванов Иван Иванович;8;н (5);50%;13.0", lines[1])

	// Attended without a score renders as "+"; the missing cell is blank.
	assert.Equal(t, "Петрова Анна Сергеевна;+;;100%;0.0", lines[2])
}

func TestCSVExportSingleCategory(t *testing.T) {
	exporter := exportFixture(t)

	var buf bytes.Buffer
	assert.NoError(t, exporter.Export(context.Background(), journal.CategoryLecture, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "ФИО;Лек 1, 01.09.2025;Посещаемость;Сумма баллов", lines[0])

	// Aggregates cover the lecture category only.
	assert.Equal(t, "Иванов Иван Иванович;8;100%;8.0", lines[1])
}

func TestCSVExportInvalidCategory(t *testing.T) {
	exporter := exportFixture(t)

	var buf bytes.Buffer
	err := exporter.Export(context.Background(), journal.Category("seminar"), &buf)
	assert.Error(t, err)
}
