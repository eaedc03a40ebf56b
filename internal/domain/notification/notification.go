// Package notification содержит доменную модель уведомлений журнала.
// Ядро журнала только формирует текст и выбирает важность уведомления;
// доставка и отображение - забота получателя (fire-and-forget).
package notification

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Severity определяет важность уведомления.
type Severity string

const (
	// SeveritySuccess - подтверждение успешного действия.
	// "Присутствовал, баллы: 8"
	SeveritySuccess Severity = "success"

	// SeverityInfo - нейтральная информация.
	// "Режим просмотра: постраничный"
	SeverityInfo Severity = "info"

	// SeverityWarning - действие выполнено, но требует внимания.
	// "Отсутствовал, но баллы сохранены: 5"
	SeverityWarning Severity = "warning"

	// SeverityError - негативное событие или некорректный ввод.
	// "Отмечен как отсутствующий", "Введите корректное число"
	SeverityError Severity = "error"
)

// IsValid проверяет, что важность корректна.
func (s Severity) IsValid() bool {
	switch s {
	case SeveritySuccess, SeverityInfo, SeverityWarning, SeverityError:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление важности.
func (s Severity) String() string {
	return string(s)
}

// ══════════════════════════════════════════════════════════════════════════════
// NOTIFICATION
// ══════════════════════════════════════════════════════════════════════════════

// Options - необязательные параметры доставки уведомления.
type Options struct {
	// Source - компонент, породивший уведомление
	// ("editor", "quick_toggle", "notes", "plan", "view").
	Source string

	// StudentID - студент, к которому относится уведомление (0 = нет).
	StudentID int64

	// AutoHideMs - время показа в миллисекундах (0 = по умолчанию у получателя).
	AutoHideMs int
}

// Notification - одно уведомление, прошедшее через sink.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Options   Options   `json:"-"`
	Source    string    `json:"source,omitempty"`
	StudentID int64     `json:"student_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ══════════════════════════════════════════════════════════════════════════════
// SINK
// ══════════════════════════════════════════════════════════════════════════════

// Sink - граница доставки уведомлений. Вызов fire-and-forget: ядро никогда
// не зависит от результата доставки и не получает ошибок.
type Sink interface {
	Notify(message string, severity Severity, opts Options)
}

// NopSink - заглушка, отбрасывающая уведомления. Используется в тестах.
type NopSink struct{}

// Notify implements Sink.
func (NopSink) Notify(message string, severity Severity, opts Options) {}
