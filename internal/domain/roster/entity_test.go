package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStudentValidation(t *testing.T) {
	_, err := NewStudent(0, "Иванов", "Иван", "Иванович")
	assert.Error(t, err)

	_, err = NewStudent(1, "  ", "Иван", "Иванович")
	assert.Error(t, err)

	_, err = NewStudent(1, "Иванов", "", "Иванович")
	assert.Error(t, err)

	// Patronymic is optional.
	s, err := NewStudent(1, "Иванов", "Иван", "")
	assert.NoError(t, err)
	assert.Equal(t, "Иванов Иван", s.FullName())
}

func TestStudentNames(t *testing.T) {
	s, err := NewStudent(1, "Иванов", "Иван", "Иванович")
	assert.NoError(t, err)

	assert.Equal(t, "Иванов Иван Иванович", s.FullName())
	assert.Equal(t, "Иванов И. И.", s.ShortName())

	// Initials are the first runes, not the first bytes.
	s2, err := NewStudent(2, "Ёлкина", "Юлия", "Олеговна")
	assert.NoError(t, err)
	assert.Equal(t, "Ёлкина Ю. О.", s2.ShortName())
}
