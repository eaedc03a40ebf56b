// Package query contains the read-side handlers. They assemble DTOs for the
// rendering layer and never mutate journal state; every derived value is
// recomputed from the ledger on each call.
package query

import (
	"context"
	"fmt"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// GetJournalViewQuery requests the journal table of one category.
type GetJournalViewQuery struct {
	Category string `json:"category,omitempty"`
}

// LessonDTO is one column header of the table.
type LessonDTO struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// GradeCellDTO is one cell of the table.
type GradeCellDTO struct {
	Attended    bool     `json:"attended"`
	Score       *float64 `json:"score"`
	Comment     string   `json:"comment,omitempty"`
	ExtraPoints int      `json:"extra_points,omitempty"`
}

// StudentRowDTO is one row of the table. Cells cover the visible lessons
// only; the aggregates always cover the whole category.
type StudentRowDTO struct {
	StudentID      int64                  `json:"student_id"`
	FullName       string                 `json:"full_name"`
	ShortName      string                 `json:"short_name"`
	IndividualPlan bool                   `json:"individual_plan"`
	NotesCount     int                    `json:"notes_count"`
	Cells          map[int64]GradeCellDTO `json:"cells"`
	AttendanceRate string                 `json:"attendance_rate"`
	TotalScore     float64                `json:"total_score"`
	TotalScoreText string                 `json:"total_score_text"`
}

// EditorStateDTO mirrors the grade edit transaction.
type EditorStateDTO struct {
	Open      bool          `json:"open"`
	StudentID int64         `json:"student_id,omitempty"`
	LessonID  int64         `json:"lesson_id,omitempty"`
	Draft     journal.Draft `json:"draft"`
}

// JournalViewDTO is the full table view: window state, visible lessons,
// student rows and the edit transaction state.
type JournalViewDTO struct {
	Category   string          `json:"category"`
	Mode       string          `json:"mode"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
	Lessons    []LessonDTO     `json:"lessons"`
	Rows       []StudentRowDTO `json:"rows"`
	Editor     EditorStateDTO  `json:"editor"`
}

// GetJournalViewHandler assembles the journal table.
type GetJournalViewHandler struct {
	students roster.StudentRepository
	lessons  journal.LessonRepository
	grades   journal.GradeLedger
	notes    roster.NoteRepository
	plans    roster.PlanRepository
	window   *journal.Window
	editor   *journal.Editor
}

// NewGetJournalViewHandler creates the handler.
func NewGetJournalViewHandler(
	students roster.StudentRepository,
	lessons journal.LessonRepository,
	grades journal.GradeLedger,
	notes roster.NoteRepository,
	plans roster.PlanRepository,
	window *journal.Window,
	editor *journal.Editor,
) *GetJournalViewHandler {
	return &GetJournalViewHandler{
		students: students,
		lessons:  lessons,
		grades:   grades,
		notes:    notes,
		plans:    plans,
		window:   window,
		editor:   editor,
	}
}

// Handle builds the view. The window page is clamped first, so a category
// switch that shrank the lesson set can never show an out-of-range page.
func (h *GetJournalViewHandler) Handle(ctx context.Context, q GetJournalViewQuery) (*JournalViewDTO, error) {
	category, ok := journal.ParseCategory(q.Category)
	if !ok {
		return nil, fmt.Errorf("journal view: %w: %q", shared.ErrInvalidCategory, q.Category)
	}

	allLessons, err := h.lessons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal view: list lessons: %w", err)
	}
	filtered := journal.FilterLessons(allLessons, category)

	h.window.Clamp(len(filtered))
	visible := h.window.Slice(filtered)

	grades, err := h.grades.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal view: list grades: %w", err)
	}
	byKey := make(map[journal.GradeKey]journal.Grade, len(grades))
	for _, g := range grades {
		byKey[g.Key()] = g
	}

	students, err := h.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal view: list students: %w", err)
	}

	rows := make([]StudentRowDTO, 0, len(students))
	for _, s := range students {
		row, err := h.buildRow(ctx, s, visible, byKey, grades, allLessons, category)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	lessonDTOs := make([]LessonDTO, 0, len(visible))
	for _, l := range visible {
		lessonDTOs = append(lessonDTOs, LessonDTO{
			ID:     int64(l.ID),
			Date:   string(l.Date),
			Type:   string(l.Type),
			Number: l.Number,
			Title:  l.Title(),
		})
	}

	return &JournalViewDTO{
		Category:   string(category),
		Mode:       string(h.window.Mode()),
		Page:       h.window.Page(),
		PerPage:    h.window.PerPage(),
		TotalPages: h.window.TotalPages(len(filtered)),
		Lessons:    lessonDTOs,
		Rows:       rows,
		Editor: EditorStateDTO{
			Open:      h.editor.IsOpen(),
			StudentID: int64(h.editor.StudentID()),
			LessonID:  int64(h.editor.LessonID()),
			Draft:     h.editor.Draft(),
		},
	}, nil
}

func (h *GetJournalViewHandler) buildRow(
	ctx context.Context,
	s roster.Student,
	visible []journal.Lesson,
	byKey map[journal.GradeKey]journal.Grade,
	grades []journal.Grade,
	allLessons []journal.Lesson,
	category journal.Category,
) (StudentRowDTO, error) {
	cells := make(map[int64]GradeCellDTO, len(visible))
	for _, l := range visible {
		g, ok := byKey[journal.GradeKey{StudentID: s.ID, LessonID: l.ID}]
		if !ok {
			continue
		}
		cells[int64(l.ID)] = GradeCellDTO{
			Attended:    g.Attended,
			Score:       g.Score,
			Comment:     g.Comment,
			ExtraPoints: g.ExtraPoints,
		}
	}

	planEnabled, err := h.plans.IsEnabled(ctx, s.ID)
	if err != nil {
		return StudentRowDTO{}, fmt.Errorf("journal view: plan flag for student %d: %w", s.ID, err)
	}
	notes, err := h.notes.ListByStudent(ctx, s.ID)
	if err != nil {
		return StudentRowDTO{}, fmt.Errorf("journal view: notes for student %d: %w", s.ID, err)
	}

	total := journal.TotalScore(s.ID, grades, allLessons, category)

	return StudentRowDTO{
		StudentID:      int64(s.ID),
		FullName:       s.FullName(),
		ShortName:      s.ShortName(),
		IndividualPlan: planEnabled,
		NotesCount:     len(notes),
		Cells:          cells,
		AttendanceRate: journal.AttendanceRate(s.ID, grades, allLessons, category),
		TotalScore:     total,
		TotalScoreText: fmt.Sprintf("%.1f", total),
	}, nil
}
