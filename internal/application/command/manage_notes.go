package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
	"github.com/journal-hub/teacher-journal-hub/pkg/timeutil"
)

// AddNoteCommand attaches a free-text note to a student.
type AddNoteCommand struct {
	StudentID int64  `json:"student_id"`
	Text      string `json:"text"`
}

// Validate checks the command. Blank text is not a validation error: it is
// a runtime no-op, matching the "empty input does nothing" contract.
func (c AddNoteCommand) Validate() error {
	if c.StudentID <= 0 {
		return fmt.Errorf("add note: %w: student id %d", shared.ErrInvalidID, c.StudentID)
	}
	return nil
}

// AddNoteResult reports whether a note was actually appended.
type AddNoteResult struct {
	Added bool               `json:"added"`
	Note  roster.StudentNote `json:"note,omitempty"`
}

// DeleteNoteCommand removes a note by its identifier.
type DeleteNoteCommand struct {
	StudentID int64 `json:"student_id"`
	NoteID    int64 `json:"note_id"`
}

// Validate checks the command.
func (c DeleteNoteCommand) Validate() error {
	if c.StudentID <= 0 {
		return fmt.Errorf("delete note: %w: student id %d", shared.ErrInvalidID, c.StudentID)
	}
	if c.NoteID <= 0 {
		return fmt.Errorf("delete note: %w: note id %d", shared.ErrInvalidID, c.NoteID)
	}
	return nil
}

// DeleteNoteResult reports whether a note was actually removed.
type DeleteNoteResult struct {
	Deleted bool `json:"deleted"`
}

// ManageNotesHandler owns the student note side collection.
type ManageNotesHandler struct {
	notes    roster.NoteRepository
	students roster.StudentRepository
	notifier notification.Sink
	events   shared.EventPublisher
	clock    timeutil.Clock
	author   string
	log      *logger.Logger
}

// NewManageNotesHandler creates the handler. author is the fixed label
// recorded on every note.
func NewManageNotesHandler(
	notes roster.NoteRepository,
	students roster.StudentRepository,
	notifier notification.Sink,
	events shared.EventPublisher,
	clock timeutil.Clock,
	author string,
	log *logger.Logger,
) *ManageNotesHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ManageNotesHandler{
		notes:    notes,
		students: students,
		notifier: notifier,
		events:   events,
		clock:    clock,
		author:   author,
		log:      log.With(logger.Component("notes")),
	}
}

// Add appends a note with the localized creation timestamp and the fixed
// author label. Blank or whitespace-only text is a silent no-op.
func (h *ManageNotesHandler) Add(ctx context.Context, cmd AddNoteCommand) (*AddNoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.Text) == "" {
		h.log.Debug("blank note ignored", logger.StudentID(cmd.StudentID))
		return &AddNoteResult{Added: false}, nil
	}

	student, err := h.students.GetByID(ctx, journal.StudentID(cmd.StudentID))
	if err != nil {
		return nil, fmt.Errorf("add note: get student: %w", err)
	}

	note, err := h.notes.Append(ctx,
		student.ID,
		cmd.Text,
		timeutil.FormatJournalTimestamp(h.clock.Now()),
		h.author,
	)
	if err != nil {
		return nil, fmt.Errorf("add note: append: %w", err)
	}

	h.notifier.Notify(
		fmt.Sprintf("Заметка добавлена: %s", student.ShortName()),
		notification.SeveritySuccess,
		notification.Options{Source: "notes", StudentID: cmd.StudentID},
	)

	if h.events != nil {
		_ = h.events.Publish(shared.NewNoteAddedEvent(cmd.StudentID, note.ID, h.author))
	}

	h.log.Info("note added",
		logger.StudentID(cmd.StudentID),
		logger.NoteID(note.ID),
	)

	return &AddNoteResult{Added: true, Note: note}, nil
}

// Delete removes a note. A missing note is a silent no-op.
func (h *ManageNotesHandler) Delete(ctx context.Context, cmd DeleteNoteCommand) (*DeleteNoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	deleted, err := h.notes.Delete(ctx, journal.StudentID(cmd.StudentID), cmd.NoteID)
	if err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		h.log.Debug("delete of missing note ignored",
			logger.StudentID(cmd.StudentID),
			logger.NoteID(cmd.NoteID),
		)
		return &DeleteNoteResult{Deleted: false}, nil
	}

	h.notifier.Notify(
		"Заметка удалена",
		notification.SeverityInfo,
		notification.Options{Source: "notes", StudentID: cmd.StudentID},
	)

	if h.events != nil {
		_ = h.events.Publish(shared.NewNoteRemovedEvent(cmd.StudentID, cmd.NoteID))
	}

	h.log.Info("note removed",
		logger.StudentID(cmd.StudentID),
		logger.NoteID(cmd.NoteID),
	)

	return &DeleteNoteResult{Deleted: true}, nil
}
