package query

import (
	"context"
	"fmt"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// GetGradeHistoryQuery requests the audit trail of one cell.
type GetGradeHistoryQuery struct {
	StudentID int64 `json:"student_id"`
	LessonID  int64 `json:"lesson_id"`
}

// GradeHistoryDTO carries the audit entries of one cell in append order.
type GradeHistoryDTO struct {
	StudentID int64                       `json:"student_id"`
	LessonID  int64                       `json:"lesson_id"`
	Entries   []journal.GradeHistoryEntry `json:"entries"`
}

// GetGradeHistoryHandler reads the audit log.
type GetGradeHistoryHandler struct {
	history journal.HistoryLog
}

// NewGetGradeHistoryHandler creates the handler.
func NewGetGradeHistoryHandler(history journal.HistoryLog) *GetGradeHistoryHandler {
	return &GetGradeHistoryHandler{history: history}
}

// Handle returns the entries. A cell with no recorded changes yields an
// empty list, not an error.
func (h *GetGradeHistoryHandler) Handle(ctx context.Context, q GetGradeHistoryQuery) (*GradeHistoryDTO, error) {
	if q.StudentID <= 0 || q.LessonID <= 0 {
		return nil, fmt.Errorf("grade history: %w: key %d:%d", shared.ErrInvalidID, q.StudentID, q.LessonID)
	}

	key := journal.GradeKey{
		StudentID: journal.StudentID(q.StudentID),
		LessonID:  journal.LessonID(q.LessonID),
	}
	entries, err := h.history.List(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("grade history: %w", err)
	}
	if entries == nil {
		entries = []journal.GradeHistoryEntry{}
	}

	return &GradeHistoryDTO{
		StudentID: q.StudentID,
		LessonID:  q.LessonID,
		Entries:   entries,
	}, nil
}
