// Package seed builds the load-time journal state: the student roster, the
// lesson timeline and the initial grade ledger. State can come from a JSON
// fixture file or from the built-in demo group.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/roster"
)

// Fixture is the JSON shape of a seed file.
type Fixture struct {
	Students []StudentFixture `json:"students"`
	Lessons  []LessonFixture  `json:"lessons"`
	Grades   []GradeFixture   `json:"grades"`
}

// StudentFixture describes one roster entry.
type StudentFixture struct {
	ID         int64  `json:"id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	Patronymic string `json:"patronymic"`
}

// LessonFixture describes one lesson of the timeline.
type LessonFixture struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Number int    `json:"number"`
}

// GradeFixture describes one initial ledger cell.
type GradeFixture struct {
	StudentID   int64    `json:"student_id"`
	LessonID    int64    `json:"lesson_id"`
	Attended    bool     `json:"attended"`
	Score       *float64 `json:"score"`
	Comment     string   `json:"comment,omitempty"`
	ExtraPoints int      `json:"extra_points,omitempty"`
}

// Load reads a fixture from a JSON file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	return &f, nil
}

// Build validates the fixture and converts it into domain values.
// Grades must reference students and lessons declared in the same fixture:
// a dangling reference would otherwise surface much later, as a ledger cell
// no mutation path can resolve.
func (f *Fixture) Build() ([]roster.Student, []journal.Lesson, []journal.Grade, error) {
	studentIDs := make(map[journal.StudentID]struct{}, len(f.Students))
	students := make([]roster.Student, 0, len(f.Students))
	for _, sf := range f.Students {
		s, err := roster.NewStudent(journal.StudentID(sf.ID), sf.LastName, sf.FirstName, sf.Patronymic)
		if err != nil {
			return nil, nil, nil, err
		}
		students = append(students, s)
		studentIDs[s.ID] = struct{}{}
	}

	lessonIDs := make(map[journal.LessonID]struct{}, len(f.Lessons))
	lessons := make([]journal.Lesson, 0, len(f.Lessons))
	for _, lf := range f.Lessons {
		l, err := journal.NewLesson(journal.LessonID(lf.ID), journal.LessonDate(lf.Date), journal.LessonType(lf.Type), lf.Number)
		if err != nil {
			return nil, nil, nil, err
		}
		lessons = append(lessons, l)
		lessonIDs[l.ID] = struct{}{}
	}

	grades := make([]journal.Grade, 0, len(f.Grades))
	for _, gf := range f.Grades {
		if _, ok := studentIDs[journal.StudentID(gf.StudentID)]; !ok {
			return nil, nil, nil, fmt.Errorf("seed: grade references unknown student %d", gf.StudentID)
		}
		if _, ok := lessonIDs[journal.LessonID(gf.LessonID)]; !ok {
			return nil, nil, nil, fmt.Errorf("seed: grade references unknown lesson %d", gf.LessonID)
		}
		grades = append(grades, journal.Grade{
			StudentID:   journal.StudentID(gf.StudentID),
			LessonID:    journal.LessonID(gf.LessonID),
			Attended:    gf.Attended,
			Score:       gf.Score,
			Comment:     gf.Comment,
			ExtraPoints: gf.ExtraPoints,
		})
	}

	return students, lessons, grades, nil
}

// Default returns the built-in demo group: a small roster and a two-week
// timeline with a mix of lectures, practicals and labs.
func Default() *Fixture {
	score := func(v float64) *float64 { return &v }

	return &Fixture{
		Students: []StudentFixture{
			{ID: 1, LastName: "Иванов", FirstName: "Иван", Patronymic: "Иванович"},
			{ID: 2, LastName: "Петрова", FirstName: "Анна", Patronymic: "Сергеевна"},
			{ID: 3, LastName: "Сидоров", FirstName: "Алексей", Patronymic: "Павлович"},
			{ID: 4, LastName: "Кузнецова", FirstName: "Мария", Patronymic: "Андреевна"},
		},
		Lessons: []LessonFixture{
			{ID: 1, Date: "01.09.2025", Type: "lecture", Number: 1},
			{ID: 2, Date: "03.09.2025", Type: "practical", Number: 1},
			{ID: 3, Date: "05.09.2025", Type: "laboratory", Number: 1},
			{ID: 4, Date: "08.09.2025", Type: "lecture", Number: 2},
			{ID: 5, Date: "10.09.2025", Type: "practical", Number: 2},
			{ID: 6, Date: "12.09.2025", Type: "laboratory", Number: 2},
			{ID: 7, Date: "15.09.2025", Type: "lecture", Number: 3},
			{ID: 8, Date: "17.09.2025", Type: "practical", Number: 3},
		},
		Grades: []GradeFixture{
			{StudentID: 1, LessonID: 1, Attended: true, Score: score(8)},
			{StudentID: 1, LessonID: 2, Attended: false},
			{StudentID: 1, LessonID: 3, Attended: true, Score: score(7.5)},
			{StudentID: 2, LessonID: 1, Attended: true, Score: score(9)},
			{StudentID: 2, LessonID: 2, Attended: true, Score: score(8.5), Comment: "отличная работа"},
			{StudentID: 2, LessonID: 3, Attended: true},
			{StudentID: 3, LessonID: 1, Attended: false, Score: score(5), Comment: "сдал позже"},
			{StudentID: 3, LessonID: 2, Attended: true, Score: score(6)},
			{StudentID: 4, LessonID: 1, Attended: true},
			{StudentID: 4, LessonID: 2, Attended: true, Score: score(7)},
			{StudentID: 4, LessonID: 3, Attended: false},
		},
	}
}
