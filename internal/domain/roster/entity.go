// Package roster содержит справочник студентов и боковые коллекции журнала:
// заметки по студентам и флаги индивидуального плана. Коллекции не зависят
// от оценок - это простые операции над ключёванными отображениями.
package roster

import (
	"fmt"
	"strings"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
)

// Student - студент группы. Неизменяемые справочные данные: создаются при
// загрузке и движком не мутируются.
type Student struct {
	// ID - уникальный стабильный идентификатор.
	ID journal.StudentID

	// FirstName, LastName, Patronymic - ФИО студента.
	FirstName  string
	LastName   string
	Patronymic string
}

// NewStudent создаёт студента с валидацией полей.
func NewStudent(id journal.StudentID, lastName, firstName, patronymic string) (Student, error) {
	if !id.IsValid() {
		return Student{}, fmt.Errorf("roster.NewStudent: invalid student id %d", id)
	}
	if strings.TrimSpace(lastName) == "" || strings.TrimSpace(firstName) == "" {
		return Student{}, fmt.Errorf("roster.NewStudent: name cannot be empty")
	}
	return Student{
		ID:         id,
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		Patronymic: strings.TrimSpace(patronymic),
	}, nil
}

// FullName возвращает полное ФИО: "Иванов Иван Иванович".
func (s Student) FullName() string {
	parts := []string{s.LastName, s.FirstName}
	if s.Patronymic != "" {
		parts = append(parts, s.Patronymic)
	}
	return strings.Join(parts, " ")
}

// ShortName возвращает сокращённое ФИО: "Иванов И. И.".
func (s Student) ShortName() string {
	name := s.LastName
	if s.FirstName != "" {
		name += " " + string([]rune(s.FirstName)[:1]) + "."
	}
	if s.Patronymic != "" {
		name += " " + string([]rune(s.Patronymic)[:1]) + "."
	}
	return name
}

// StudentNote - заметка преподавателя по студенту. Коллекция заметок
// append-only: удаление возможно только по идентификатору.
type StudentNote struct {
	// ID - монотонный идентификатор (миллисекунды создания).
	ID int64 `json:"id"`

	// Text - текст заметки.
	Text string `json:"text"`

	// Timestamp - локализованная метка времени создания (DD.MM.YYYY HH:MM).
	Timestamp string `json:"timestamp"`

	// Author - фиксированная метка автора.
	Author string `json:"author"`
}
