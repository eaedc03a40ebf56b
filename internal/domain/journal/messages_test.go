package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
)

func TestCommitMessageFourWayRule(t *testing.T) {
	tests := []struct {
		name     string
		values   GradeValues
		message  string
		severity notification.Severity
	}{
		{
			name:     "absent with kept score",
			values:   GradeValues{Attended: false, Score: score(5)},
			message:  "Отмечено отсутствие, баллы сохранены: 5",
			severity: notification.SeverityWarning,
		},
		{
			name:     "absent without score",
			values:   GradeValues{Attended: false},
			message:  "Отмечено отсутствие",
			severity: notification.SeverityError,
		},
		{
			name:     "present with score",
			values:   GradeValues{Attended: true, Score: score(8)},
			message:  "Отмечено присутствие, баллы: 8",
			severity: notification.SeveritySuccess,
		},
		{
			name:     "present without score",
			values:   GradeValues{Attended: true},
			message:  "Отмечено присутствие",
			severity: notification.SeveritySuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, sev := CommitMessage(GradeValues{Attended: true}, tt.values)
			assert.Equal(t, tt.message, msg)
			assert.Equal(t, tt.severity, sev)
		})
	}
}

func TestCommitMessageCommentSuffix(t *testing.T) {
	base := GradeValues{Attended: true}

	msg, _ := CommitMessage(base, GradeValues{Attended: true, Score: score(1), Comment: "новый"})
	assert.Equal(t, "Отмечено присутствие, баллы: 1 (комментарий добавлен)", msg)

	msg, _ = CommitMessage(GradeValues{Attended: true, Comment: "старый"}, GradeValues{Attended: false})
	assert.Equal(t, "Отмечено отсутствие (комментарий удалён)", msg)

	msg, _ = CommitMessage(
		GradeValues{Attended: true, Comment: "было"},
		GradeValues{Attended: true, Comment: "стало"},
	)
	assert.Equal(t, "Отмечено присутствие (комментарий изменён)", msg)

	// Severity comes from the attendance/score rule, never the comment.
	_, sev := CommitMessage(
		GradeValues{Attended: false, Comment: "было"},
		GradeValues{Attended: false, Comment: "стало"},
	)
	assert.Equal(t, notification.SeverityError, sev)
}

func TestQuickToggleMessage(t *testing.T) {
	name := "Иванов И. И."

	msg, sev := QuickToggleMessage(name, Grade{Attended: false, Score: score(6)})
	assert.Equal(t, "Иванов И. И.: отсутствие, баллы сохранены (6)", msg)
	assert.Equal(t, notification.SeverityWarning, sev)

	msg, sev = QuickToggleMessage(name, Grade{Attended: false})
	assert.Equal(t, "Иванов И. И.: отмечено отсутствие", msg)
	assert.Equal(t, notification.SeverityError, sev)

	msg, sev = QuickToggleMessage(name, Grade{Attended: true, Score: score(9)})
	assert.Equal(t, "Иванов И. И.: присутствие, баллы: 9", msg)
	assert.Equal(t, notification.SeveritySuccess, sev)

	msg, sev = QuickToggleMessage(name, Grade{Attended: true})
	assert.Equal(t, "Иванов И. И.: отмечено присутствие", msg)
	assert.Equal(t, notification.SeveritySuccess, sev)
}
