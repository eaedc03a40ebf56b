// Package shared contains common domain types, errors and events.
package shared

import (
	"fmt"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types - each event represents something significant that
// happened in the journal.
const (
	// Grade events
	EventGradeUpdated EventType = "grade.updated"

	// Side collection events
	EventNoteAdded   EventType = "journal.note_added"
	EventNoteRemoved EventType = "journal.note_removed"
	EventPlanToggled EventType = "journal.plan_toggled"

	// View events
	EventViewModeChanged EventType = "view.mode_changed"
	EventPageChanged     EventType = "view.page_changed"

	// Notification events
	EventNotificationSent EventType = "notification.sent"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// EventHandler processes a published domain event.
type EventHandler func(event Event) error

// EventPublisher publishes domain events to subscribers.
type EventPublisher interface {
	Publish(event Event) error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type          EventType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	AggregateId   string    `json:"aggregate_id"`
	Version       int       `json:"version"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
		Version:     1,
	}
}

// WithCorrelationID sets the correlation ID for tracing.
func (e BaseEvent) WithCorrelationID(id string) BaseEvent {
	e.CorrelationID = id
	return e
}

// GradeAggregateID builds the aggregate ID for a grade cell.
func GradeAggregateID(studentID, lessonID int64) string {
	return fmt.Sprintf("grade:%d:%d", studentID, lessonID)
}

// ═══════════════════════════════════════════════════════════════════════════
// Grade Events
// ═══════════════════════════════════════════════════════════════════════════

// GradeUpdatedEvent is emitted when a grade cell changes, either through a
// committed edit or a quick attendance toggle.
type GradeUpdatedEvent struct {
	BaseEvent
	StudentID   int64    `json:"student_id"`
	LessonID    int64    `json:"lesson_id"`
	Attended    bool     `json:"attended"`
	Score       *float64 `json:"score"`
	Comment     string   `json:"comment,omitempty"`
	QuickToggle bool     `json:"quick_toggle"`
}

// Payload implements Event interface.
func (e GradeUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id":   e.StudentID,
		"lesson_id":    e.LessonID,
		"attended":     e.Attended,
		"score":        e.Score,
		"comment":      e.Comment,
		"quick_toggle": e.QuickToggle,
	}
}

// NewGradeUpdatedEvent creates a new GradeUpdatedEvent.
func NewGradeUpdatedEvent(studentID, lessonID int64, attended bool, score *float64, comment string, quickToggle bool) GradeUpdatedEvent {
	return GradeUpdatedEvent{
		BaseEvent:   NewBaseEvent(EventGradeUpdated, GradeAggregateID(studentID, lessonID)),
		StudentID:   studentID,
		LessonID:    lessonID,
		Attended:    attended,
		Score:       score,
		Comment:     comment,
		QuickToggle: quickToggle,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Side Collection Events
// ═══════════════════════════════════════════════════════════════════════════

// NoteAddedEvent is emitted when a note is attached to a student.
type NoteAddedEvent struct {
	BaseEvent
	StudentID int64  `json:"student_id"`
	NoteID    int64  `json:"note_id"`
	Author    string `json:"author"`
}

// Payload implements Event interface.
func (e NoteAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"note_id":    e.NoteID,
		"author":     e.Author,
	}
}

// NewNoteAddedEvent creates a new NoteAddedEvent.
func NewNoteAddedEvent(studentID, noteID int64, author string) NoteAddedEvent {
	return NoteAddedEvent{
		BaseEvent: NewBaseEvent(EventNoteAdded, fmt.Sprintf("student:%d", studentID)),
		StudentID: studentID,
		NoteID:    noteID,
		Author:    author,
	}
}

// NoteRemovedEvent is emitted when a note is deleted.
type NoteRemovedEvent struct {
	BaseEvent
	StudentID int64 `json:"student_id"`
	NoteID    int64 `json:"note_id"`
}

// Payload implements Event interface.
func (e NoteRemovedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"note_id":    e.NoteID,
	}
}

// NewNoteRemovedEvent creates a new NoteRemovedEvent.
func NewNoteRemovedEvent(studentID, noteID int64) NoteRemovedEvent {
	return NoteRemovedEvent{
		BaseEvent: NewBaseEvent(EventNoteRemoved, fmt.Sprintf("student:%d", studentID)),
		StudentID: studentID,
		NoteID:    noteID,
	}
}

// PlanToggledEvent is emitted when a student's individual plan flag flips.
type PlanToggledEvent struct {
	BaseEvent
	StudentID int64 `json:"student_id"`
	Enabled   bool  `json:"enabled"`
}

// Payload implements Event interface.
func (e PlanToggledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"student_id": e.StudentID,
		"enabled":    e.Enabled,
	}
}

// NewPlanToggledEvent creates a new PlanToggledEvent.
func NewPlanToggledEvent(studentID int64, enabled bool) PlanToggledEvent {
	return PlanToggledEvent{
		BaseEvent: NewBaseEvent(EventPlanToggled, fmt.Sprintf("student:%d", studentID)),
		StudentID: studentID,
		Enabled:   enabled,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// View Events
// ═══════════════════════════════════════════════════════════════════════════

// ViewModeChangedEvent is emitted when the lesson window switches between
// scroll and pagination modes.
type ViewModeChangedEvent struct {
	BaseEvent
	Mode string `json:"mode"`
}

// Payload implements Event interface.
func (e ViewModeChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"mode": e.Mode}
}

// NewViewModeChangedEvent creates a new ViewModeChangedEvent.
func NewViewModeChangedEvent(mode string) ViewModeChangedEvent {
	return ViewModeChangedEvent{
		BaseEvent: NewBaseEvent(EventViewModeChanged, "view"),
		Mode:      mode,
	}
}

// PageChangedEvent is emitted when the visible page changes.
type PageChangedEvent struct {
	BaseEvent
	Page       int  `json:"page"`
	AutoJump   bool `json:"auto_jump"`
	TotalPages int  `json:"total_pages"`
}

// Payload implements Event interface.
func (e PageChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"page":        e.Page,
		"auto_jump":   e.AutoJump,
		"total_pages": e.TotalPages,
	}
}

// NewPageChangedEvent creates a new PageChangedEvent.
func NewPageChangedEvent(page, totalPages int, autoJump bool) PageChangedEvent {
	return PageChangedEvent{
		BaseEvent:  NewBaseEvent(EventPageChanged, "view"),
		Page:       page,
		AutoJump:   autoJump,
		TotalPages: totalPages,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Notification Events
// ═══════════════════════════════════════════════════════════════════════════

// NotificationSentEvent is emitted after a notification reaches the sink.
type NotificationSentEvent struct {
	BaseEvent
	NotificationID string `json:"notification_id"`
	Severity       string `json:"severity"`
}

// Payload implements Event interface.
func (e NotificationSentEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"notification_id": e.NotificationID,
		"severity":        e.Severity,
	}
}

// NewNotificationSentEvent creates a new NotificationSentEvent.
func NewNotificationSentEvent(notificationID, severity string) NotificationSentEvent {
	return NotificationSentEvent{
		BaseEvent:      NewBaseEvent(EventNotificationSent, "notification:"+notificationID),
		NotificationID: notificationID,
		Severity:       severity,
	}
}
