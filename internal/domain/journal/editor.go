package journal

import (
	"strconv"
	"strings"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRADE EDIT TRANSACTION
// Машина состояний редактирования одной ячейки: closed -> open -> closed
// (коммитом или отменой). Черновик хранит баллы свободным текстом и
// парсится только в момент коммита.
// ══════════════════════════════════════════════════════════════════════════════

// editorState - состояние транзакции редактирования.
type editorState int

const (
	editorClosed editorState = iota
	editorOpen
)

// Draft - черновик редактируемой ячейки.
// Score - свободный текст ("" означает "баллы не выставлены").
type Draft struct {
	Attended bool   `json:"attended"`
	Score    string `json:"score"`
	Comment  string `json:"comment"`
}

// defaultDraft - значения черновика после закрытия транзакции.
func defaultDraft() Draft {
	return Draft{Attended: true, Score: "", Comment: ""}
}

// CommitResult - результат коммита транзакции.
type CommitResult struct {
	// Changed - изменилась ли тройка (посещение, баллы, комментарий).
	// false означает no-op: транзакция закрыта, обновление и уведомление
	// не порождаются.
	Changed bool

	// Updated - обновлённая ячейка (поверхностное слияние поверх исходной:
	// ExtraPoints и прочие нетрогаемые поля сохранены). Значима при Changed.
	Updated Grade

	// Old, New - тройки значений до и после (для истории изменений).
	Old GradeValues
	New GradeValues

	// Message, Severity - готовый текст уведомления и его важность.
	// Важность определяется комбинацией посещение/баллы, не комментарием.
	Message  string
	Severity notification.Severity
}

// Editor - транзакция редактирования ячейки журнала.
type Editor struct {
	state    editorState
	original Grade
	draft    Draft
}

// NewEditor создаёт закрытую транзакцию с черновиком по умолчанию.
func NewEditor() *Editor {
	return &Editor{
		state: editorClosed,
		draft: defaultDraft(),
	}
}

// IsOpen проверяет, открыта ли транзакция.
func (e *Editor) IsOpen() bool {
	return e.state == editorOpen
}

// StudentID возвращает студента редактируемой ячейки (0 - транзакция закрыта).
func (e *Editor) StudentID() StudentID {
	if e.state != editorOpen {
		return 0
	}
	return e.original.StudentID
}

// LessonID возвращает занятие редактируемой ячейки (0 - транзакция закрыта).
func (e *Editor) LessonID() LessonID {
	if e.state != editorOpen {
		return 0
	}
	return e.original.LessonID
}

// Draft возвращает текущий черновик.
func (e *Editor) Draft() Draft {
	return e.draft
}

// Open загружает черновик из существующей ячейки и открывает транзакцию.
// Предусловие "ячейка существует" проверяет вызывающая сторона: открытие по
// отсутствующей ячейке - молчаливый no-op на её уровне.
// Повторный Open замещает текущий черновик.
func (e *Editor) Open(grade Grade) {
	e.state = editorOpen
	e.original = grade
	e.draft = Draft{
		Attended: grade.Attended,
		Score:    scoreToText(grade.Score),
		Comment:  grade.Comment,
	}
}

// SetAttended меняет посещение в черновике. Игнорируется при закрытой транзакции.
func (e *Editor) SetAttended(attended bool) {
	if e.state != editorOpen {
		return
	}
	e.draft.Attended = attended
}

// SetScore меняет баллы в черновике свободным текстом, без парсинга.
func (e *Editor) SetScore(score string) {
	if e.state != editorOpen {
		return
	}
	e.draft.Score = score
}

// SetComment меняет комментарий в черновике.
func (e *Editor) SetComment(comment string) {
	if e.state != editorOpen {
		return
	}
	e.draft.Comment = comment
}

// AdjustScore сдвигает баллы черновика на delta: текущий текст парсится
// (пустой или некорректный даёт 0), прибавляется delta, результат зажимается
// снизу нулём и записывается обратно текстом. Так степперы ±0.5/±1 работают,
// не ломая свободный ввод.
func (e *Editor) AdjustScore(delta float64) {
	if e.state != editorOpen {
		return
	}
	current := 0.0
	if v, err := strconv.ParseFloat(strings.TrimSpace(e.draft.Score), 64); err == nil {
		current = v
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	e.draft.Score = FormatScore(next)
}

// Commit парсит черновик, сравнивает с исходной тройкой и закрывает
// транзакцию. Без изменений - no-op (Changed=false), с изменениями -
// обновлённая ячейка, тройки для истории и текст уведомления.
func (e *Editor) Commit() (CommitResult, error) {
	if e.state != editorOpen {
		return CommitResult{}, shared.ErrEditorNotOpen
	}

	newValues := GradeValues{
		Attended: e.draft.Attended,
		Score:    parseScoreText(e.draft.Score),
		Comment:  e.draft.Comment,
	}
	oldValues := e.original.Values()

	if newValues.Equal(oldValues) {
		e.Close()
		return CommitResult{Changed: false}, nil
	}

	updated := e.original
	updated.Attended = newValues.Attended
	updated.Score = newValues.Score
	updated.Comment = newValues.Comment

	message, severity := CommitMessage(oldValues, newValues)

	e.Close()
	return CommitResult{
		Changed:  true,
		Updated:  updated,
		Old:      oldValues,
		New:      newValues,
		Message:  message,
		Severity: severity,
	}, nil
}

// Close отбрасывает черновик и возвращает транзакцию в closed.
// Никакого наблюдаемого эффекта на журнал или историю.
func (e *Editor) Close() {
	e.state = editorClosed
	e.original = Grade{}
	e.draft = defaultDraft()
}

// scoreToText переводит баллы в текст черновика ("" для nil).
func scoreToText(score *float64) string {
	if score == nil {
		return ""
	}
	return FormatScore(*score)
}

// parseScoreText парсит текст черновика при коммите: пустой текст даёт nil
// ("баллы не выставлены"). Некорректный числовой ввод тоже деградирует в nil,
// никогда не ошибка.
func parseScoreText(text string) *float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &v
}
