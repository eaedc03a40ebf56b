package journal

import (
	"fmt"
	"math"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATION FUNCTIONS
// Чистые функции производной статистики. Тотальны (не возвращают ошибок) и
// идемпотентны: повторный вызов на тех же данных даёт тот же результат.
// ══════════════════════════════════════════════════════════════════════════════

// AttendanceRate вычисляет процент посещаемости студента по категории занятий.
// Пустое множество релевантных оценок - определённый краевой случай, не
// ошибка: возвращается "0%".
// Округление - математическое, половина от нуля (math.Round): 49.5% -> "50%".
func AttendanceRate(studentID StudentID, grades []Grade, lessons []Lesson, category Category) string {
	relevant := lessonIDSet(lessons, category)

	total := 0
	attended := 0
	for _, g := range grades {
		if g.StudentID != studentID {
			continue
		}
		if _, ok := relevant[g.LessonID]; !ok {
			continue
		}
		total++
		if g.Attended {
			attended++
		}
	}

	if total == 0 {
		return "0%"
	}
	percent := math.Round(float64(attended) / float64(total) * 100)
	return fmt.Sprintf("%d%%", int(percent))
}

// TotalScore вычисляет сумму баллов студента по категории занятий.
// Невыставленные баллы (nil) дают ноль. Отображаемая точность - забота
// вызывающей стороны (интерфейс показывает один знак после запятой).
func TotalScore(studentID StudentID, grades []Grade, lessons []Lesson, category Category) float64 {
	relevant := lessonIDSet(lessons, category)

	sum := 0.0
	for _, g := range grades {
		if g.StudentID != studentID {
			continue
		}
		if _, ok := relevant[g.LessonID]; !ok {
			continue
		}
		sum += g.ScoreValue()
	}
	return sum
}

// lessonIDSet возвращает множество идентификаторов занятий категории.
func lessonIDSet(lessons []Lesson, category Category) map[LessonID]struct{} {
	set := make(map[LessonID]struct{}, len(lessons))
	for _, l := range lessons {
		if category.Matches(l.Type) {
			set[l.ID] = struct{}{}
		}
	}
	return set
}
