// Package export implements the export collaborator: a read-only view over
// the same ledger and aggregation contract the table view uses. It performs
// no mutation.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
)

// CSVExporter renders the journal of one category as delimited text.
// The semicolon delimiter follows the Russian-locale spreadsheet convention.
type CSVExporter struct {
	students roster.StudentRepository
	lessons  journal.LessonRepository
	grades   journal.GradeLedger
	comma    rune
}

// NewCSVExporter creates an exporter over the given repositories.
func NewCSVExporter(students roster.StudentRepository, lessons journal.LessonRepository, grades journal.GradeLedger) *CSVExporter {
	return &CSVExporter{
		students: students,
		lessons:  lessons,
		grades:   grades,
		comma:    ';',
	}
}

// Export writes the journal table for the category: one row per student,
// one column per lesson, plus the attendance and total score aggregates.
func (e *CSVExporter) Export(ctx context.Context, category journal.Category, w io.Writer) error {
	if !category.IsValid() {
		return fmt.Errorf("export: invalid category %q", category)
	}

	students, err := e.students.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list students: %w", err)
	}
	allLessons, err := e.lessons.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list lessons: %w", err)
	}
	grades, err := e.grades.List(ctx)
	if err != nil {
		return fmt.Errorf("export: list grades: %w", err)
	}

	lessons := journal.FilterLessons(allLessons, category)
	gradesByKey := make(map[journal.GradeKey]journal.Grade, len(grades))
	for _, g := range grades {
		gradesByKey[g.Key()] = g
	}

	cw := csv.NewWriter(w)
	cw.Comma = e.comma

	header := make([]string, 0, len(lessons)+3)
	header = append(header, "ФИО")
	for _, l := range lessons {
		header = append(header, l.Title())
	}
	header = append(header, "Посещаемость", "Сумма баллов")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, s := range students {
		row := make([]string, 0, len(lessons)+3)
		row = append(row, s.FullName())
		for _, l := range lessons {
			g, ok := gradesByKey[journal.GradeKey{StudentID: s.ID, LessonID: l.ID}]
			row = append(row, cellText(g, ok))
		}
		row = append(row,
			journal.AttendanceRate(s.ID, grades, allLessons, category),
			fmt.Sprintf("%.1f", journal.TotalScore(s.ID, grades, allLessons, category)),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// cellText renders one journal cell: "н" marks an absence, a kept score for
// an absentee is shown alongside the mark.
func cellText(g journal.Grade, ok bool) string {
	if !ok {
		return ""
	}
	switch {
	case !g.Attended && g.HasScore():
		return "н (" + journal.FormatScore(*g.Score) + ")"
	case !g.Attended:
		return "н"
	case g.HasScore():
		return journal.FormatScore(*g.Score)
	default:
		return "+"
	}
}
