package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
)

func editorGrade() Grade {
	return Grade{
		StudentID:   1,
		LessonID:    2,
		Attended:    true,
		Score:       score(7.5),
		Comment:     "хорошо",
		ExtraPoints: 3,
	}
}

func TestEditorLifecycle(t *testing.T) {
	e := NewEditor()
	assert.False(t, e.IsOpen())
	assert.Equal(t, StudentID(0), e.StudentID())

	e.Open(editorGrade())
	assert.True(t, e.IsOpen())
	assert.Equal(t, StudentID(1), e.StudentID())
	assert.Equal(t, LessonID(2), e.LessonID())
	assert.Equal(t, Draft{Attended: true, Score: "7.5", Comment: "хорошо"}, e.Draft())

	e.Close()
	assert.False(t, e.IsOpen())
	assert.Equal(t, defaultDraft(), e.Draft())
}

func TestEditorDraftIgnoredWhenClosed(t *testing.T) {
	e := NewEditor()

	e.SetAttended(false)
	e.SetScore("10")
	e.SetComment("потеряно")
	e.AdjustScore(1)

	assert.Equal(t, defaultDraft(), e.Draft())
}

func TestEditorAdjustScore(t *testing.T) {
	e := NewEditor()
	e.Open(Grade{StudentID: 1, LessonID: 1, Attended: true})

	// Empty draft score counts as zero.
	e.AdjustScore(0.5)
	assert.Equal(t, "0.5", e.Draft().Score)

	e.AdjustScore(1)
	assert.Equal(t, "1.5", e.Draft().Score)

	// Clamped at zero from below.
	e.AdjustScore(-5)
	assert.Equal(t, "0", e.Draft().Score)

	// Garbage text degrades to zero before the delta.
	e.SetScore("abc")
	e.AdjustScore(1)
	assert.Equal(t, "1", e.Draft().Score)
}

func TestEditorCommitClosed(t *testing.T) {
	e := NewEditor()

	_, err := e.Commit()
	assert.ErrorIs(t, err, shared.ErrEditorNotOpen)
}

func TestEditorCommitNoChanges(t *testing.T) {
	e := NewEditor()
	e.Open(editorGrade())

	res, err := e.Commit()
	assert.NoError(t, err)
	assert.False(t, res.Changed)
	assert.False(t, e.IsOpen())
}

func TestEditorCommitChange(t *testing.T) {
	e := NewEditor()
	e.Open(editorGrade())

	e.SetAttended(false)
	res, err := e.Commit()
	assert.NoError(t, err)
	assert.True(t, res.Changed)
	assert.False(t, e.IsOpen())

	// Shallow merge keeps untouched fields.
	assert.Equal(t, 3, res.Updated.ExtraPoints)
	assert.False(t, res.Updated.Attended)
	assert.Equal(t, 7.5, *res.Updated.Score)

	// Absent with a kept score is the warning case.
	assert.Equal(t, notification.SeverityWarning, res.Severity)
	assert.Contains(t, res.Message, "отсутствие")
	assert.Contains(t, res.Message, "7.5")
}

func TestEditorCommitScoreParsing(t *testing.T) {
	e := NewEditor()
	e.Open(editorGrade())

	// Blank text commits as "no score".
	e.SetScore("   ")
	res, err := e.Commit()
	assert.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Nil(t, res.Updated.Score)

	// Garbage text also degrades to nil, never an error.
	e.Open(editorGrade())
	e.SetScore("не число")
	res, err = e.Commit()
	assert.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Nil(t, res.Updated.Score)
}

func TestEditorReopenReplacesDraft(t *testing.T) {
	e := NewEditor()
	e.Open(editorGrade())
	e.SetScore("99")

	other := Grade{StudentID: 5, LessonID: 6, Attended: false}
	e.Open(other)

	assert.Equal(t, StudentID(5), e.StudentID())
	assert.Equal(t, Draft{Attended: false, Score: "", Comment: ""}, e.Draft())
}
