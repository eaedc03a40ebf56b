package roster

import (
	"context"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
)

// StudentRepository - справочник студентов, заполняется при загрузке.
type StudentRepository interface {
	// GetByID возвращает студента по идентификатору.
	GetByID(ctx context.Context, id journal.StudentID) (Student, error)

	// List возвращает всех студентов группы.
	List(ctx context.Context) ([]Student, error)
}

// NoteRepository - заметки по студентам.
type NoteRepository interface {
	// Append сохраняет заметку, назначая ей свежий монотонный ID.
	// Возвращает заметку с назначенным идентификатором.
	Append(ctx context.Context, studentID journal.StudentID, text, timestamp, author string) (StudentNote, error)

	// Delete удаляет заметку по ID. Возвращает false, если заметки нет
	// (молчаливый no-op на уровне вызывающей стороны).
	Delete(ctx context.Context, studentID journal.StudentID, noteID int64) (bool, error)

	// ListByStudent возвращает заметки студента в порядке добавления.
	ListByStudent(ctx context.Context, studentID journal.StudentID) ([]StudentNote, error)
}

// PlanRepository - флаги индивидуального плана. Отсутствие ключа
// эквивалентно false.
type PlanRepository interface {
	// IsEnabled возвращает текущее значение флага студента.
	IsEnabled(ctx context.Context, studentID journal.StudentID) (bool, error)

	// Toggle переключает флаг студента и возвращает новое значение.
	Toggle(ctx context.Context, studentID journal.StudentID) (bool, error)

	// ListEnabled возвращает студентов с включённым флагом.
	ListEnabled(ctx context.Context) ([]journal.StudentID, error)
}
