// Package eventhandler contains subscribers wired to the in-memory event bus.
package eventhandler

import (
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
)

// OnGradeUpdated writes an audit line for every grade mutation, whether it
// came from a committed edit or a quick toggle.
type OnGradeUpdated struct {
	log *logger.Logger
}

// NewOnGradeUpdated creates the subscriber.
func NewOnGradeUpdated(log *logger.Logger) *OnGradeUpdated {
	if log == nil {
		log = logger.Default()
	}
	return &OnGradeUpdated{log: log.With(logger.Component("audit"))}
}

// Handle implements shared.EventHandler for EventGradeUpdated.
func (h *OnGradeUpdated) Handle(event shared.Event) error {
	e, ok := event.(shared.GradeUpdatedEvent)
	if !ok {
		h.log.Debug("unexpected event type", logger.String("type", string(event.EventType())))
		return nil
	}

	fields := []logger.Field{
		logger.StudentID(e.StudentID),
		logger.LessonID(e.LessonID),
		logger.Bool("attended", e.Attended),
		logger.Bool("quick_toggle", e.QuickToggle),
	}
	if e.Score != nil {
		fields = append(fields, logger.Float64("score", *e.Score))
	}
	h.log.Info("grade audit", fields...)
	return nil
}
