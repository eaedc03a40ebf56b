package command

import (
	"context"
	"fmt"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
)

// TogglePlanCommand flips the individual plan flag of a student.
type TogglePlanCommand struct {
	StudentID int64 `json:"student_id"`
}

// Validate checks the command.
func (c TogglePlanCommand) Validate() error {
	if c.StudentID <= 0 {
		return fmt.Errorf("toggle plan: %w: student id %d", shared.ErrInvalidID, c.StudentID)
	}
	return nil
}

// TogglePlanResult carries the new flag value.
type TogglePlanResult struct {
	Enabled bool `json:"enabled"`
}

// TogglePlanHandler owns the individual plan flag set.
type TogglePlanHandler struct {
	plans    roster.PlanRepository
	students roster.StudentRepository
	notifier notification.Sink
	events   shared.EventPublisher
	log      *logger.Logger
}

// NewTogglePlanHandler creates the handler.
func NewTogglePlanHandler(
	plans roster.PlanRepository,
	students roster.StudentRepository,
	notifier notification.Sink,
	events shared.EventPublisher,
	log *logger.Logger,
) *TogglePlanHandler {
	if log == nil {
		log = logger.Default()
	}
	return &TogglePlanHandler{
		plans:    plans,
		students: students,
		notifier: notifier,
		events:   events,
		log:      log.With(logger.Component("plan")),
	}
}

// Handle toggles the flag and emits a directional confirmation naming the
// student.
func (h *TogglePlanHandler) Handle(ctx context.Context, cmd TogglePlanCommand) (*TogglePlanResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	student, err := h.students.GetByID(ctx, journal.StudentID(cmd.StudentID))
	if err != nil {
		return nil, fmt.Errorf("toggle plan: get student: %w", err)
	}

	enabled, err := h.plans.Toggle(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("toggle plan: %w", err)
	}

	message := fmt.Sprintf("Индивидуальный план деактивирован: %s", student.ShortName())
	severity := notification.SeverityInfo
	if enabled {
		message = fmt.Sprintf("Индивидуальный план активирован: %s", student.ShortName())
		severity = notification.SeveritySuccess
	}
	h.notifier.Notify(message, severity, notification.Options{
		Source:    "plan",
		StudentID: cmd.StudentID,
	})

	if h.events != nil {
		_ = h.events.Publish(shared.NewPlanToggledEvent(cmd.StudentID, enabled))
	}

	h.log.Info("individual plan toggled",
		logger.StudentID(cmd.StudentID),
		logger.Bool("enabled", enabled),
	)

	return &TogglePlanResult{Enabled: enabled}, nil
}
