package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/timeutil"
)

// StudentRepository is an in-memory roster.StudentRepository.
type StudentRepository struct {
	mu       sync.RWMutex
	order    []journal.StudentID
	students map[journal.StudentID]roster.Student
}

// NewStudentRepository creates an empty student repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		students: make(map[journal.StudentID]roster.Student),
	}
}

// Seed loads the student roster.
func (r *StudentRepository) Seed(students []roster.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range students {
		if _, exists := r.students[s.ID]; exists {
			return shared.WrapError("roster", "Seed", shared.ErrAlreadyExists, "duplicate student id", nil)
		}
		r.students[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return nil
}

// GetByID implements roster.StudentRepository.
func (r *StudentRepository) GetByID(ctx context.Context, id journal.StudentID) (roster.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.students[id]
	if !ok {
		return roster.Student{}, shared.ErrStudentNotFound
	}
	return s, nil
}

// List implements roster.StudentRepository.
func (r *StudentRepository) List(ctx context.Context) ([]roster.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Student, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.students[id])
	}
	return out, nil
}

// NoteRepository is an in-memory roster.NoteRepository.
// Note IDs are creation timestamps in milliseconds, bumped on collision so
// they stay strictly monotonic within a student.
type NoteRepository struct {
	mu     sync.Mutex
	clock  timeutil.Clock
	lastID int64
	notes  map[journal.StudentID][]roster.StudentNote
}

// NewNoteRepository creates an empty note repository.
func NewNoteRepository(clock timeutil.Clock) *NoteRepository {
	return &NoteRepository{
		clock: clock,
		notes: make(map[journal.StudentID][]roster.StudentNote),
	}
}

// Append implements roster.NoteRepository.
func (r *NoteRepository) Append(ctx context.Context, studentID journal.StudentID, text, timestamp, author string) (roster.StudentNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.clock.Now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id

	note := roster.StudentNote{
		ID:        id,
		Text:      text,
		Timestamp: timestamp,
		Author:    author,
	}
	r.notes[studentID] = append(r.notes[studentID], note)
	return note, nil
}

// Delete implements roster.NoteRepository.
func (r *NoteRepository) Delete(ctx context.Context, studentID journal.StudentID, noteID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.notes[studentID]
	for i, n := range list {
		if n.ID == noteID {
			r.notes[studentID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListByStudent implements roster.NoteRepository.
func (r *NoteRepository) ListByStudent(ctx context.Context, studentID journal.StudentID) ([]roster.StudentNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	src := r.notes[studentID]
	out := make([]roster.StudentNote, len(src))
	copy(out, src)
	return out, nil
}

// PlanRepository is an in-memory roster.PlanRepository.
// A missing key is equivalent to false.
type PlanRepository struct {
	mu    sync.Mutex
	flags map[journal.StudentID]bool
}

// NewPlanRepository creates an empty plan repository.
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{
		flags: make(map[journal.StudentID]bool),
	}
}

// IsEnabled implements roster.PlanRepository.
func (r *PlanRepository) IsEnabled(ctx context.Context, studentID journal.StudentID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flags[studentID], nil
}

// Toggle implements roster.PlanRepository.
func (r *PlanRepository) Toggle(ctx context.Context, studentID journal.StudentID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := !r.flags[studentID]
	r.flags[studentID] = next
	return next, nil
}

// ListEnabled implements roster.PlanRepository.
func (r *PlanRepository) ListEnabled(ctx context.Context) ([]journal.StudentID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]journal.StudentID, 0)
	for id, enabled := range r.flags {
		if enabled {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
