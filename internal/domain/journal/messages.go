package journal

import (
	"fmt"
	"strings"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
)

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION MESSAGES
// Текст уведомления - детерминированная функция изменения. Важность выбирает
// комбинация посещение/баллы; состояние комментария добавляет только суффикс.
// ══════════════════════════════════════════════════════════════════════════════

// gradeStatusMessage возвращает базовый текст и важность по четырёхвариантному
// правилу посещение/баллы.
func gradeStatusMessage(v GradeValues) (string, notification.Severity) {
	switch {
	case !v.Attended && v.Score != nil:
		return fmt.Sprintf("Отмечено отсутствие, баллы сохранены: %s", FormatScore(*v.Score)), notification.SeverityWarning
	case !v.Attended:
		return "Отмечено отсутствие", notification.SeverityError
	case v.Score != nil:
		return fmt.Sprintf("Отмечено присутствие, баллы: %s", FormatScore(*v.Score)), notification.SeveritySuccess
	default:
		return "Отмечено присутствие", notification.SeveritySuccess
	}
}

// commentSuffix возвращает суффикс состояния комментария по пустоте и
// равенству текста до и после.
func commentSuffix(oldComment, newComment string) string {
	oldEmpty := strings.TrimSpace(oldComment) == ""
	newEmpty := strings.TrimSpace(newComment) == ""

	switch {
	case !oldEmpty && newEmpty:
		return " (комментарий удалён)"
	case oldEmpty && !newEmpty:
		return " (комментарий добавлен)"
	case !oldEmpty && !newEmpty && oldComment != newComment:
		return " (комментарий изменён)"
	default:
		return ""
	}
}

// CommitMessage строит текст уведомления о коммите редактирования.
func CommitMessage(oldValues, newValues GradeValues) (string, notification.Severity) {
	message, severity := gradeStatusMessage(newValues)
	return message + commentSuffix(oldValues.Comment, newValues.Comment), severity
}

// QuickToggleMessage строит уведомление быстрого переключения посещаемости:
// то же четырёхвариантное правило, но в третьем лице с именем студента.
func QuickToggleMessage(studentName string, g Grade) (string, notification.Severity) {
	switch {
	case !g.Attended && g.HasScore():
		return fmt.Sprintf("%s: отсутствие, баллы сохранены (%s)", studentName, FormatScore(*g.Score)), notification.SeverityWarning
	case !g.Attended:
		return fmt.Sprintf("%s: отмечено отсутствие", studentName), notification.SeverityError
	case g.HasScore():
		return fmt.Sprintf("%s: присутствие, баллы: %s", studentName, FormatScore(*g.Score)), notification.SeveritySuccess
	default:
		return fmt.Sprintf("%s: отмечено присутствие", studentName), notification.SeveritySuccess
	}
}
