package journal

import (
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON WINDOW SELECTOR
// Определяет видимое подмножество занятий: либо все (scroll), либо страница
// фиксированного размера (pagination). Переход в pagination один раз
// выполняет автонавигацию к занятию с сегодняшней датой.
// ══════════════════════════════════════════════════════════════════════════════

// ViewMode определяет режим отображения занятий.
type ViewMode string

const (
	// ViewModeScroll - видны все занятия категории, без окна.
	ViewModeScroll ViewMode = "scroll"

	// ViewModePagination - занятия нарезаны на страницы по lessonsPerPage.
	ViewModePagination ViewMode = "pagination"
)

// IsValid проверяет, что режим корректен.
func (m ViewMode) IsValid() bool {
	return m == ViewModeScroll || m == ViewModePagination
}

// DefaultLessonsPerPage - размер страницы по умолчанию.
const DefaultLessonsPerPage = 6

// Window - машина состояний окна занятий.
//
// hasAutoNavigated - явный одноразовый флаг автонавигации "к сегодня":
// сбрасывается только событием выхода из режима pagination и проверяется
// заново при повторном входе. Промах по дате тоже расходует флаг - повторных
// попыток на каждую перерисовку не бывает.
type Window struct {
	mode             ViewMode
	perPage          int
	page             int
	hasAutoNavigated bool
}

// NewWindow создаёт окно в режиме scroll на нулевой странице.
func NewWindow(perPage int) *Window {
	if perPage <= 0 {
		perPage = DefaultLessonsPerPage
	}
	return &Window{
		mode:    ViewModeScroll,
		perPage: perPage,
		page:    0,
	}
}

// Mode возвращает текущий режим отображения.
func (w *Window) Mode() ViewMode {
	return w.mode
}

// Page возвращает текущую страницу (с нуля).
func (w *Window) Page() int {
	return w.page
}

// PerPage возвращает размер страницы.
func (w *Window) PerPage() int {
	return w.perPage
}

// TotalPages возвращает количество страниц для данного числа занятий.
// Ноль занятий - ноль страниц (окно пустое).
func (w *Window) TotalPages(lessonCount int) int {
	if lessonCount <= 0 {
		return 0
	}
	return (lessonCount + w.perPage - 1) / w.perPage
}

// SetMode переключает режим отображения. Возвращает true, если при входе в
// pagination сработала автонавигация к сегодняшнему занятию.
//
// lessons - последовательность занятий текущей категории (уже отсортированная,
// если категория того требует), today - дата "сегодня" в формате DD.MM.YYYY
// от провайдера даты. Сопоставление - строгое строковое равенство.
func (w *Window) SetMode(mode ViewMode, lessons []Lesson, today string) bool {
	if !mode.IsValid() || mode == w.mode {
		return false
	}

	if w.mode == ViewModePagination {
		// Выход из pagination: флаг снова доступен для следующего входа.
		w.hasAutoNavigated = false
	}
	w.mode = mode

	if mode != ViewModePagination {
		return false
	}

	jumped := false
	if !w.hasAutoNavigated {
		jumped = w.jumpToToday(lessons, today)
		w.hasAutoNavigated = true
	}
	w.Clamp(len(lessons))
	return jumped
}

// jumpToToday находит занятие с датой today и открывает содержащую его
// страницу. Промах - не ошибка: навигация просто не происходит.
func (w *Window) jumpToToday(lessons []Lesson, today string) bool {
	for i, l := range lessons {
		if string(l.Date) == today {
			w.page = i / w.perPage
			return true
		}
	}
	return false
}

// SetPage устанавливает страницу с зажимом в допустимый диапазон.
func (w *Window) SetPage(page, lessonCount int) {
	w.page = page
	w.Clamp(lessonCount)
}

// SetPerPage меняет размер страницы и зажимает текущую страницу.
// Неположительный размер отклоняется.
func (w *Window) SetPerPage(perPage, lessonCount int) error {
	if perPage <= 0 {
		return shared.ErrInvalidPageSize
	}
	w.perPage = perPage
	w.Clamp(lessonCount)
	return nil
}

// Clamp приводит текущую страницу в диапазон [0, totalPages-1] после любой
// мутации данных или размера страницы. Защита от выхода за диапазон, когда
// вызывающая сторона уменьшает размер страницы или набор занятий меняется.
func (w *Window) Clamp(lessonCount int) {
	totalPages := w.TotalPages(lessonCount)
	if totalPages == 0 {
		w.page = 0
		return
	}
	if w.page >= totalPages {
		w.page = totalPages - 1
	}
	if w.page < 0 {
		w.page = 0
	}
}

// Slice возвращает видимое подмножество занятий.
// В режиме scroll видны все занятия; в pagination - текущая страница.
func (w *Window) Slice(lessons []Lesson) []Lesson {
	if w.mode == ViewModeScroll {
		return lessons
	}
	start := w.page * w.perPage
	if start >= len(lessons) {
		return []Lesson{}
	}
	end := start + w.perPage
	if end > len(lessons) {
		end = len(lessons)
	}
	return lessons[start:end]
}
