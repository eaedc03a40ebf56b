// Package journal содержит доменную модель журнала преподавателя.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package journal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// StudentID представляет уникальный идентификатор студента.
type StudentID int64

// IsValid проверяет, что StudentID положительный.
func (id StudentID) IsValid() bool {
	return id > 0
}

// LessonID представляет уникальный идентификатор занятия.
type LessonID int64

// IsValid проверяет, что LessonID положительный.
func (id LessonID) IsValid() bool {
	return id > 0
}

// LessonType определяет тип занятия.
type LessonType string

const (
	// TypeLecture - лекция.
	TypeLecture LessonType = "lecture"

	// TypePractical - практическое занятие.
	TypePractical LessonType = "practical"

	// TypeLaboratory - лабораторная работа.
	TypeLaboratory LessonType = "laboratory"
)

// IsValid проверяет, что тип занятия корректен.
func (t LessonType) IsValid() bool {
	switch t {
	case TypeLecture, TypePractical, TypeLaboratory:
		return true
	default:
		return false
	}
}

// TitleRu возвращает русское название типа занятия.
func (t LessonType) TitleRu() string {
	switch t {
	case TypeLecture:
		return "Лекция"
	case TypePractical:
		return "Практика"
	case TypeLaboratory:
		return "Лабораторная"
	default:
		return ""
	}
}

// ShortRu возвращает короткую русскую метку для шапки таблицы и экспорта.
func (t LessonType) ShortRu() string {
	switch t {
	case TypeLecture:
		return "Лек"
	case TypePractical:
		return "Пр"
	case TypeLaboratory:
		return "Лаб"
	default:
		return "?"
	}
}

// Category - измерение фильтрации занятий и агрегатов.
// Либо один из типов занятий, либо "all" (все занятия).
type Category string

const (
	// CategoryLecture - только лекции.
	CategoryLecture Category = "lecture"

	// CategoryPractical - только практические.
	CategoryPractical Category = "practical"

	// CategoryLaboratory - только лабораторные.
	CategoryLaboratory Category = "laboratory"

	// CategoryAll - все занятия без фильтра.
	CategoryAll Category = "all"
)

// IsValid проверяет, что категория корректна.
func (c Category) IsValid() bool {
	switch c {
	case CategoryLecture, CategoryPractical, CategoryLaboratory, CategoryAll:
		return true
	default:
		return false
	}
}

// Matches проверяет, попадает ли тип занятия в категорию.
func (c Category) Matches(t LessonType) bool {
	if c == CategoryAll {
		return true
	}
	return string(c) == string(t)
}

// ParseCategory разбирает строку категории; пустая строка означает "all".
func ParseCategory(s string) (Category, bool) {
	if strings.TrimSpace(s) == "" {
		return CategoryAll, true
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// LessonDate представляет дату занятия в формате DD.MM.YYYY.
// Сравнение с "сегодня" выполняется строгим строковым равенством.
type LessonDate string

// dateLayout - формат даты занятия (DD.MM.YYYY).
const dateLayout = "02.01.2006"

// IsValid проверяет, что дата разбирается как DD.MM.YYYY.
func (d LessonDate) IsValid() bool {
	_, err := d.Time()
	return err == nil
}

// Time разбирает дату занятия.
func (d LessonDate) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

// String возвращает строковое представление даты.
func (d LessonDate) String() string {
	return string(d)
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSON
// ══════════════════════════════════════════════════════════════════════════════

// Lesson - занятие в таймлайне журнала. Неизменяемые справочные данные:
// создаются при загрузке и движком не мутируются.
// Порядок хранения не обязан совпадать с порядком дат.
type Lesson struct {
	// ID - уникальный идентификатор занятия.
	ID LessonID

	// Date - дата занятия (DD.MM.YYYY).
	Date LessonDate

	// Type - тип занятия.
	Type LessonType

	// Number - порядковый номер внутри своего типа.
	Number int
}

// NewLesson создаёт занятие с валидацией полей.
func NewLesson(id LessonID, date LessonDate, lessonType LessonType, number int) (Lesson, error) {
	if !id.IsValid() {
		return Lesson{}, fmt.Errorf("journal.NewLesson: invalid lesson id %d", id)
	}
	if !date.IsValid() {
		return Lesson{}, fmt.Errorf("journal.NewLesson: invalid lesson date %q", date)
	}
	if !lessonType.IsValid() {
		return Lesson{}, fmt.Errorf("journal.NewLesson: invalid lesson type %q", lessonType)
	}
	if number <= 0 {
		return Lesson{}, fmt.Errorf("journal.NewLesson: invalid lesson number %d", number)
	}
	return Lesson{ID: id, Date: date, Type: lessonType, Number: number}, nil
}

// Title возвращает подпись занятия для шапки таблицы: "Лек 3, 02.09.2025".
func (l Lesson) Title() string {
	return fmt.Sprintf("%s %d, %s", l.Type.ShortRu(), l.Number, l.Date)
}

// FilterLessons возвращает занятия категории. Для CategoryAll последовательность
// сортируется по разобранной дате по возрастанию (порядок хранения дат не
// гарантирует): занятия с неразбираемой датой уходят в конец, сохраняя
// исходный относительный порядок. Для одиночной категории порядок хранения
// сохраняется.
func FilterLessons(lessons []Lesson, category Category) []Lesson {
	if category == CategoryAll {
		return SortLessonsByDate(lessons)
	}
	filtered := make([]Lesson, 0, len(lessons))
	for _, l := range lessons {
		if category.Matches(l.Type) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// SortLessonsByDate возвращает копию занятий, отсортированную по дате по
// возрастанию (устойчиво).
func SortLessonsByDate(lessons []Lesson) []Lesson {
	sorted := make([]Lesson, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, erri := sorted[i].Date.Time()
		tj, errj := sorted[j].Date.Time()
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})
	return sorted
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE
// ══════════════════════════════════════════════════════════════════════════════

// GradeKey - составной ключ ячейки журнала.
// Инвариант журнала: на пару (студент, занятие) существует не более одной оценки.
type GradeKey struct {
	StudentID StudentID
	LessonID  LessonID
}

// String возвращает строковое представление ключа.
func (k GradeKey) String() string {
	return fmt.Sprintf("%d:%d", k.StudentID, k.LessonID)
}

// Grade - ячейка журнала: посещаемость и баллы студента за занятие.
//
// Score == nil означает "баллы не выставлены" и отличается от нуля баллов.
// Attended == false при ненулевом Score - допустимое состояние (баллы,
// выставленные отсутствовавшему задним числом).
// ExtraPoints - вспомогательный счётчик, который поток редактирования не
// трогает, но обязан сохранять при обновлении ячейки.
type Grade struct {
	StudentID   StudentID
	LessonID    LessonID
	Score       *float64
	Attended    bool
	Comment     string
	ExtraPoints int
}

// Key возвращает составной ключ ячейки.
func (g Grade) Key() GradeKey {
	return GradeKey{StudentID: g.StudentID, LessonID: g.LessonID}
}

// HasScore проверяет, выставлены ли баллы.
func (g Grade) HasScore() bool {
	return g.Score != nil
}

// ScoreValue возвращает баллы, nil считается нулём.
func (g Grade) ScoreValue() float64 {
	if g.Score == nil {
		return 0
	}
	return *g.Score
}

// Values возвращает тройку отслеживаемых полей ячейки.
func (g Grade) Values() GradeValues {
	return GradeValues{Attended: g.Attended, Score: g.Score, Comment: g.Comment}
}

// GradeValues - тройка (посещение, баллы, комментарий), сравниваемая при
// коммите и сохраняемая в истории изменений.
type GradeValues struct {
	Attended bool     `json:"attended"`
	Score    *float64 `json:"score"`
	Comment  string   `json:"comment,omitempty"`
}

// Equal сравнивает две тройки. Баллы равны, если оба nil или оба значения совпадают.
func (v GradeValues) Equal(other GradeValues) bool {
	if v.Attended != other.Attended {
		return false
	}
	if v.Comment != other.Comment {
		return false
	}
	if (v.Score == nil) != (other.Score == nil) {
		return false
	}
	if v.Score != nil && *v.Score != *other.Score {
		return false
	}
	return true
}

// GradeHistoryEntry - запись аудита одной ячейки: старая и новая тройка значений.
type GradeHistoryEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Old       GradeValues `json:"old"`
	New       GradeValues `json:"new"`
	ChangedBy string      `json:"changed_by"`
}

// FormatScore форматирует баллы для пользовательских сообщений: без
// хвостовых нулей ("8", "7.5").
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
