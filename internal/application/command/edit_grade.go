// Package command contains the write-side application handlers. They are the
// only writers of journal state; the HTTP layer serializes every invocation,
// so handlers hold no locks of their own.
package command

import (
	"context"
	"fmt"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
	"github.com/journal-hub/teacher-journal-hub/pkg/timeutil"
)

// OpenGradeEditCommand opens an edit transaction on one journal cell.
type OpenGradeEditCommand struct {
	StudentID int64 `json:"student_id"`
	LessonID  int64 `json:"lesson_id"`
}

// Validate checks the command.
func (c OpenGradeEditCommand) Validate() error {
	if c.StudentID <= 0 {
		return fmt.Errorf("open grade edit: %w: student id %d", shared.ErrInvalidID, c.StudentID)
	}
	if c.LessonID <= 0 {
		return fmt.Errorf("open grade edit: %w: lesson id %d", shared.ErrInvalidID, c.LessonID)
	}
	return nil
}

// UpdateDraftCommand mutates the open draft. Nil fields are left untouched,
// so a single request can carry any subset of changes.
type UpdateDraftCommand struct {
	Attended    *bool    `json:"attended,omitempty"`
	Score       *string  `json:"score,omitempty"`
	Comment     *string  `json:"comment,omitempty"`
	AdjustScore *float64 `json:"adjust_score,omitempty"`
}

// GradeEditState mirrors the transaction for the rendering layer.
type GradeEditState struct {
	Open      bool          `json:"open"`
	StudentID int64         `json:"student_id,omitempty"`
	LessonID  int64         `json:"lesson_id,omitempty"`
	Draft     journal.Draft `json:"draft"`
}

// CommitGradeResult describes the outcome of a commit.
type CommitGradeResult struct {
	// Changed is false for a no-op commit: the transaction closed without
	// producing an update, history entry or notification.
	Changed  bool                  `json:"changed"`
	Updated  journal.Grade         `json:"updated,omitempty"`
	Message  string                `json:"message,omitempty"`
	Severity notification.Severity `json:"severity,omitempty"`
}

// EditGradeHandler owns the single grade edit transaction.
type EditGradeHandler struct {
	editor   *journal.Editor
	grades   journal.GradeLedger
	history  journal.HistoryLog
	notifier notification.Sink
	events   shared.EventPublisher
	flags    *config.FeatureFlags
	clock    timeutil.Clock
	author   string
	log      *logger.Logger
}

// NewEditGradeHandler creates the handler.
func NewEditGradeHandler(
	editor *journal.Editor,
	grades journal.GradeLedger,
	history journal.HistoryLog,
	notifier notification.Sink,
	events shared.EventPublisher,
	flags *config.FeatureFlags,
	clock timeutil.Clock,
	author string,
	log *logger.Logger,
) *EditGradeHandler {
	if log == nil {
		log = logger.Default()
	}
	return &EditGradeHandler{
		editor:   editor,
		grades:   grades,
		history:  history,
		notifier: notifier,
		events:   events,
		flags:    flags,
		clock:    clock,
		author:   author,
		log:      log.With(logger.Component("edit_grade")),
	}
}

// Open loads the cell into the draft and opens the transaction. Opening a
// missing cell is a silent no-op; reopening replaces the current draft.
func (h *EditGradeHandler) Open(ctx context.Context, cmd OpenGradeEditCommand) (*GradeEditState, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	key := journal.GradeKey{
		StudentID: journal.StudentID(cmd.StudentID),
		LessonID:  journal.LessonID(cmd.LessonID),
	}
	grade, ok := h.grades.Lookup(ctx, key)
	if !ok {
		h.log.Debug("edit open ignored, cell not found",
			logger.StudentID(cmd.StudentID),
			logger.LessonID(cmd.LessonID),
		)
		return h.State(), nil
	}

	h.editor.Open(grade)
	return h.State(), nil
}

// UpdateDraft applies draft changes. Draft mutations on a closed transaction
// are ignored by the editor itself.
func (h *EditGradeHandler) UpdateDraft(ctx context.Context, cmd UpdateDraftCommand) *GradeEditState {
	if cmd.Attended != nil {
		h.editor.SetAttended(*cmd.Attended)
	}
	if cmd.Score != nil {
		h.editor.SetScore(*cmd.Score)
	}
	if cmd.Comment != nil {
		h.editor.SetComment(*cmd.Comment)
	}
	if cmd.AdjustScore != nil {
		h.editor.AdjustScore(*cmd.AdjustScore)
	}
	return h.State()
}

// Commit closes the transaction. On a real change the history entry, the
// ledger update and the notification are produced in that fixed order.
func (h *EditGradeHandler) Commit(ctx context.Context) (*CommitGradeResult, error) {
	if !h.editor.IsOpen() {
		return nil, shared.ErrEditorNotOpen
	}

	studentID := int64(h.editor.StudentID())
	lessonID := int64(h.editor.LessonID())
	key := journal.GradeKey{
		StudentID: h.editor.StudentID(),
		LessonID:  h.editor.LessonID(),
	}

	result, err := h.editor.Commit()
	if err != nil {
		return nil, err
	}
	if !result.Changed {
		h.log.Debug("commit without changes",
			logger.StudentID(studentID),
			logger.LessonID(lessonID),
		)
		return &CommitGradeResult{Changed: false}, nil
	}

	if h.flags.IsEnabled(config.FeatureGradeHistory) {
		entry := journal.GradeHistoryEntry{
			Timestamp: h.clock.Now(),
			Old:       result.Old,
			New:       result.New,
			ChangedBy: h.author,
		}
		if err := h.history.Append(ctx, key, entry); err != nil {
			return nil, fmt.Errorf("edit grade: append history: %w", err)
		}
	}

	if err := h.grades.Apply(ctx, result.Updated); err != nil {
		return nil, fmt.Errorf("edit grade: apply: %w", err)
	}

	h.notifier.Notify(result.Message, result.Severity, notification.Options{
		Source:    "editor",
		StudentID: studentID,
	})

	if h.events != nil {
		_ = h.events.Publish(shared.NewGradeUpdatedEvent(
			studentID, lessonID,
			result.Updated.Attended, result.Updated.Score, result.Updated.Comment,
			false,
		))
	}

	h.log.Info("grade updated",
		logger.StudentID(studentID),
		logger.LessonID(lessonID),
		logger.Severity(result.Severity.String()),
	)

	return &CommitGradeResult{
		Changed:  true,
		Updated:  result.Updated,
		Message:  result.Message,
		Severity: result.Severity,
	}, nil
}

// Cancel discards the draft and closes the transaction. Cancelling a closed
// transaction is harmless.
func (h *EditGradeHandler) Cancel(ctx context.Context) *GradeEditState {
	h.editor.Close()
	return h.State()
}

// State returns the current transaction state.
func (h *EditGradeHandler) State() *GradeEditState {
	return &GradeEditState{
		Open:      h.editor.IsOpen(),
		StudentID: int64(h.editor.StudentID()),
		LessonID:  int64(h.editor.LessonID()),
		Draft:     h.editor.Draft(),
	}
}
