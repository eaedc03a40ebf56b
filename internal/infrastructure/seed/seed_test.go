package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFixtureBuilds(t *testing.T) {
	students, lessons, grades, err := Default().Build()
	assert.NoError(t, err)
	assert.Len(t, students, 4)
	assert.Len(t, lessons, 8)
	assert.Len(t, grades, 11)
}

func TestBuildRejectsGradeForUnknownStudent(t *testing.T) {
	f := &Fixture{
		Students: []StudentFixture{{ID: 1, LastName: "Иванов", FirstName: "Иван"}},
		Lessons:  []LessonFixture{{ID: 1, Date: "01.09.2025", Type: "lecture", Number: 1}},
		Grades:   []GradeFixture{{StudentID: 7, LessonID: 1, Attended: true}},
	}

	_, _, _, err := f.Build()
	assert.ErrorContains(t, err, "unknown student 7")
}

func TestBuildRejectsGradeForUnknownLesson(t *testing.T) {
	f := &Fixture{
		Students: []StudentFixture{{ID: 1, LastName: "Иванов", FirstName: "Иван"}},
		Lessons:  []LessonFixture{{ID: 1, Date: "01.09.2025", Type: "lecture", Number: 1}},
		Grades:   []GradeFixture{{StudentID: 1, LessonID: 9, Attended: true}},
	}

	_, _, _, err := f.Build()
	assert.ErrorContains(t, err, "unknown lesson 9")
}

func TestBuildRejectsInvalidLesson(t *testing.T) {
	f := &Fixture{
		Lessons: []LessonFixture{{ID: 1, Date: "2025-09-01", Type: "lecture", Number: 1}},
	}

	_, _, _, err := f.Build()
	assert.Error(t, err)
}
