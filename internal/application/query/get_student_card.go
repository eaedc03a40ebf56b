package query

import (
	"context"
	"fmt"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// GetStudentCardQuery requests one student's card: notes, plan flag and
// per-category aggregates. An empty Category yields the full breakdown.
type GetStudentCardQuery struct {
	StudentID int64  `json:"student_id"`
	Category  string `json:"category,omitempty"`
}

// CategoryStatsDTO is the aggregate pair of one category.
type CategoryStatsDTO struct {
	Category       string  `json:"category"`
	Lessons        int     `json:"lessons"`
	AttendanceRate string  `json:"attendance_rate"`
	TotalScore     float64 `json:"total_score"`
	TotalScoreText string  `json:"total_score_text"`
}

// StudentCardDTO is the student detail view.
type StudentCardDTO struct {
	StudentID      int64                `json:"student_id"`
	FullName       string               `json:"full_name"`
	ShortName      string               `json:"short_name"`
	IndividualPlan bool                 `json:"individual_plan"`
	Notes          []roster.StudentNote `json:"notes"`
	Stats          []CategoryStatsDTO   `json:"stats"`
}

// GetStudentCardHandler assembles student cards.
type GetStudentCardHandler struct {
	students roster.StudentRepository
	lessons  journal.LessonRepository
	grades   journal.GradeLedger
	notes    roster.NoteRepository
	plans    roster.PlanRepository
}

// NewGetStudentCardHandler creates the handler.
func NewGetStudentCardHandler(
	students roster.StudentRepository,
	lessons journal.LessonRepository,
	grades journal.GradeLedger,
	notes roster.NoteRepository,
	plans roster.PlanRepository,
) *GetStudentCardHandler {
	return &GetStudentCardHandler{
		students: students,
		lessons:  lessons,
		grades:   grades,
		notes:    notes,
		plans:    plans,
	}
}

// Handle builds the card.
func (h *GetStudentCardHandler) Handle(ctx context.Context, q GetStudentCardQuery) (*StudentCardDTO, error) {
	if q.StudentID <= 0 {
		return nil, fmt.Errorf("student card: %w: student id %d", shared.ErrInvalidID, q.StudentID)
	}

	student, err := h.students.GetByID(ctx, journal.StudentID(q.StudentID))
	if err != nil {
		return nil, fmt.Errorf("student card: %w", err)
	}

	lessons, err := h.lessons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("student card: list lessons: %w", err)
	}
	grades, err := h.grades.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("student card: list grades: %w", err)
	}
	notes, err := h.notes.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("student card: list notes: %w", err)
	}
	planEnabled, err := h.plans.IsEnabled(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("student card: plan flag: %w", err)
	}

	categories, err := h.resolveCategories(q.Category)
	if err != nil {
		return nil, err
	}

	stats := make([]CategoryStatsDTO, 0, len(categories))
	for _, cat := range categories {
		total := journal.TotalScore(student.ID, grades, lessons, cat)
		stats = append(stats, CategoryStatsDTO{
			Category:       string(cat),
			Lessons:        len(journal.FilterLessons(lessons, cat)),
			AttendanceRate: journal.AttendanceRate(student.ID, grades, lessons, cat),
			TotalScore:     total,
			TotalScoreText: fmt.Sprintf("%.1f", total),
		})
	}

	return &StudentCardDTO{
		StudentID:      int64(student.ID),
		FullName:       student.FullName(),
		ShortName:      student.ShortName(),
		IndividualPlan: planEnabled,
		Notes:          notes,
		Stats:          stats,
	}, nil
}

// resolveCategories expands an empty query category into the full breakdown.
func (h *GetStudentCardHandler) resolveCategories(raw string) ([]journal.Category, error) {
	if raw == "" {
		return []journal.Category{
			journal.CategoryAll,
			journal.CategoryLecture,
			journal.CategoryPractical,
			journal.CategoryLaboratory,
		}, nil
	}
	cat, ok := journal.ParseCategory(raw)
	if !ok {
		return nil, fmt.Errorf("student card: %w: %q", shared.ErrInvalidCategory, raw)
	}
	return []journal.Category{cat}, nil
}
