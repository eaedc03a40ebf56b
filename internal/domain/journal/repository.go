package journal

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Реализации живут в infrastructure/persistence. Всё состояние живёт только
// в памяти процесса: персистентность между сессиями - вне рамок журнала.
// ══════════════════════════════════════════════════════════════════════════════

// LessonRepository - справочник занятий. Занятия создаются при загрузке и
// далее неизменяемы.
type LessonRepository interface {
	// GetByID возвращает занятие по идентификатору.
	GetByID(ctx context.Context, id LessonID) (Lesson, error)

	// List возвращает все занятия в порядке хранения
	// (не обязательно в порядке дат).
	List(ctx context.Context) ([]Lesson, error)
}

// GradeLedger - авторитетная коллекция оценок, единственный источник истины.
// Ровно одна оценка на пару (студент, занятие); отсутствие пары означает
// "нет данных по ячейке", не ноль.
type GradeLedger interface {
	// Lookup возвращает ячейку по составному ключу.
	// Отсутствие - не ошибка: второй результат false.
	Lookup(ctx context.Context, key GradeKey) (Grade, bool)

	// Put добавляет новую ячейку. Нарушение инварианта уникальности
	// (ячейка уже существует) - ошибка.
	Put(ctx context.Context, grade Grade) error

	// Apply записывает обновлённую ячейку поверх существующей.
	// Обновление отсутствующей ячейки - ошибка.
	Apply(ctx context.Context, grade Grade) error

	// List возвращает все оценки журнала.
	List(ctx context.Context) ([]Grade, error)

	// ListByStudent возвращает все оценки студента.
	ListByStudent(ctx context.Context, studentID StudentID) ([]Grade, error)
}

// HistoryLog - журнал аудита изменений ячеек, ключуется составным ключом.
// Заполняется только при включённой фиче истории.
type HistoryLog interface {
	// Append добавляет запись аудита для ячейки.
	Append(ctx context.Context, key GradeKey, entry GradeHistoryEntry) error

	// List возвращает записи аудита ячейки в порядке добавления.
	List(ctx context.Context, key GradeKey) ([]GradeHistoryEntry, error)
}
