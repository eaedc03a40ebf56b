package command

import (
	"context"
	"fmt"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
)

// QuickToggleCommand flips attendance of one cell in a single click.
type QuickToggleCommand struct {
	StudentID int64 `json:"student_id"`
	LessonID  int64 `json:"lesson_id"`
}

// Validate checks the command.
func (c QuickToggleCommand) Validate() error {
	if c.StudentID <= 0 {
		return fmt.Errorf("quick toggle: %w: student id %d", shared.ErrInvalidID, c.StudentID)
	}
	if c.LessonID <= 0 {
		return fmt.Errorf("quick toggle: %w: lesson id %d", shared.ErrInvalidID, c.LessonID)
	}
	return nil
}

// QuickToggleResult reports whether the toggle consumed the click.
// Handled=false tells the caller to fall back to the regular edit flow.
type QuickToggleResult struct {
	Handled  bool                  `json:"handled"`
	Updated  journal.Grade         `json:"updated,omitempty"`
	Message  string                `json:"message,omitempty"`
	Severity notification.Severity `json:"severity,omitempty"`
}

// QuickToggleHandler implements the one-click attendance toggle. It writes to
// the ledger directly, without draft or transaction state, and only on
// lessons of the configured eligible type while the quick mode flag is on.
type QuickToggleHandler struct {
	grades   journal.GradeLedger
	lessons  journal.LessonRepository
	students roster.StudentRepository
	notifier notification.Sink
	events   shared.EventPublisher
	flags    *config.FeatureFlags
	eligible journal.LessonType
	log      *logger.Logger
}

// NewQuickToggleHandler creates the handler. eligible names the one lesson
// type the toggle applies to.
func NewQuickToggleHandler(
	grades journal.GradeLedger,
	lessons journal.LessonRepository,
	students roster.StudentRepository,
	notifier notification.Sink,
	events shared.EventPublisher,
	flags *config.FeatureFlags,
	eligible journal.LessonType,
	log *logger.Logger,
) *QuickToggleHandler {
	if log == nil {
		log = logger.Default()
	}
	return &QuickToggleHandler{
		grades:   grades,
		lessons:  lessons,
		students: students,
		notifier: notifier,
		events:   events,
		flags:    flags,
		eligible: eligible,
		log:      log.With(logger.Component("quick_toggle")),
	}
}

// Handle flips the attendance of the cell. The score and comment are never
// touched, so toggling to "absent" keeps an already granted score.
func (h *QuickToggleHandler) Handle(ctx context.Context, cmd QuickToggleCommand) (*QuickToggleResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !h.flags.IsEnabled(config.FeatureQuickMode) {
		return &QuickToggleResult{Handled: false}, nil
	}

	lesson, err := h.lessons.GetByID(ctx, journal.LessonID(cmd.LessonID))
	if err != nil {
		if shared.IsNotFound(err) {
			return &QuickToggleResult{Handled: false}, nil
		}
		return nil, fmt.Errorf("quick toggle: get lesson: %w", err)
	}
	if lesson.Type != h.eligible {
		return &QuickToggleResult{Handled: false}, nil
	}

	key := journal.GradeKey{
		StudentID: journal.StudentID(cmd.StudentID),
		LessonID:  journal.LessonID(cmd.LessonID),
	}
	grade, ok := h.grades.Lookup(ctx, key)
	if !ok {
		return &QuickToggleResult{Handled: false}, nil
	}

	// Resolve the student before writing: an error here must leave the
	// ledger untouched.
	student, err := h.students.GetByID(ctx, key.StudentID)
	if err != nil {
		return nil, fmt.Errorf("quick toggle: get student: %w", err)
	}

	grade.Attended = !grade.Attended
	if err := h.grades.Apply(ctx, grade); err != nil {
		return nil, fmt.Errorf("quick toggle: apply: %w", err)
	}

	message, severity := journal.QuickToggleMessage(student.ShortName(), grade)
	h.notifier.Notify(message, severity, notification.Options{
		Source:    "quick_toggle",
		StudentID: cmd.StudentID,
	})

	if h.events != nil {
		_ = h.events.Publish(shared.NewGradeUpdatedEvent(
			cmd.StudentID, cmd.LessonID,
			grade.Attended, grade.Score, grade.Comment,
			true,
		))
	}

	h.log.Info("attendance toggled",
		logger.StudentID(cmd.StudentID),
		logger.LessonID(cmd.LessonID),
		logger.Bool("attended", grade.Attended),
	)

	return &QuickToggleResult{
		Handled:  true,
		Updated:  grade,
		Message:  message,
		Severity: severity,
	}, nil
}
