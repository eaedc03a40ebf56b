// Package memory implements the domain repositories as in-memory stores.
// All journal state is process-lifetime only: there is no file or wire
// format, persistence across sessions is out of scope by design.
package memory

import (
	"context"
	"sync"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// LessonRepository is an in-memory journal.LessonRepository.
// Lessons are loaded once and never mutated afterwards.
type LessonRepository struct {
	mu      sync.RWMutex
	order   []journal.LessonID
	lessons map[journal.LessonID]journal.Lesson
}

// NewLessonRepository creates an empty lesson repository.
func NewLessonRepository() *LessonRepository {
	return &LessonRepository{
		lessons: make(map[journal.LessonID]journal.Lesson),
	}
}

// Seed loads the lesson timeline. Storage order is preserved as given.
func (r *LessonRepository) Seed(lessons []journal.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range lessons {
		if _, exists := r.lessons[l.ID]; exists {
			return shared.WrapError("journal", "Seed", shared.ErrAlreadyExists, "duplicate lesson id", nil)
		}
		r.lessons[l.ID] = l
		r.order = append(r.order, l.ID)
	}
	return nil
}

// GetByID implements journal.LessonRepository.
func (r *LessonRepository) GetByID(ctx context.Context, id journal.LessonID) (journal.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lessons[id]
	if !ok {
		return journal.Lesson{}, shared.ErrLessonNotFound
	}
	return l, nil
}

// List implements journal.LessonRepository.
func (r *LessonRepository) List(ctx context.Context) ([]journal.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]journal.Lesson, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.lessons[id])
	}
	return out, nil
}

// GradeLedger is an in-memory journal.GradeLedger keyed by the composite
// (student, lesson) key. The map key enforces the one-grade-per-pair
// invariant structurally.
type GradeLedger struct {
	mu     sync.RWMutex
	order  []journal.GradeKey
	grades map[journal.GradeKey]journal.Grade
}

// NewGradeLedger creates an empty grade ledger.
func NewGradeLedger() *GradeLedger {
	return &GradeLedger{
		grades: make(map[journal.GradeKey]journal.Grade),
	}
}

// Lookup implements journal.GradeLedger. A missing pair means "no cell data",
// never an error.
func (l *GradeLedger) Lookup(ctx context.Context, key journal.GradeKey) (journal.Grade, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	g, ok := l.grades[key]
	return g, ok
}

// Put implements journal.GradeLedger.
func (l *GradeLedger) Put(ctx context.Context, grade journal.Grade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := grade.Key()
	if _, exists := l.grades[key]; exists {
		return shared.ErrDuplicateGrade
	}
	l.grades[key] = grade
	l.order = append(l.order, key)
	return nil
}

// Apply implements journal.GradeLedger.
func (l *GradeLedger) Apply(ctx context.Context, grade journal.Grade) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := grade.Key()
	if _, exists := l.grades[key]; !exists {
		return shared.ErrGradeNotFound
	}
	l.grades[key] = grade
	return nil
}

// List implements journal.GradeLedger. Insertion order is preserved so that
// derived computations stay deterministic.
func (l *GradeLedger) List(ctx context.Context) ([]journal.Grade, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]journal.Grade, 0, len(l.order))
	for _, key := range l.order {
		out = append(out, l.grades[key])
	}
	return out, nil
}

// ListByStudent implements journal.GradeLedger.
func (l *GradeLedger) ListByStudent(ctx context.Context, studentID journal.StudentID) ([]journal.Grade, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]journal.Grade, 0)
	for _, key := range l.order {
		if key.StudentID == studentID {
			out = append(out, l.grades[key])
		}
	}
	return out, nil
}

// HistoryLog is an in-memory journal.HistoryLog.
type HistoryLog struct {
	mu      sync.RWMutex
	entries map[journal.GradeKey][]journal.GradeHistoryEntry
}

// NewHistoryLog creates an empty history log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{
		entries: make(map[journal.GradeKey][]journal.GradeHistoryEntry),
	}
}

// Append implements journal.HistoryLog.
func (h *HistoryLog) Append(ctx context.Context, key journal.GradeKey, entry journal.GradeHistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[key] = append(h.entries[key], entry)
	return nil
}

// List implements journal.HistoryLog.
func (h *HistoryLog) List(ctx context.Context, key journal.GradeKey) ([]journal.GradeHistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	src := h.entries[key]
	out := make([]journal.GradeHistoryEntry, len(src))
	copy(out, src)
	return out, nil
}
