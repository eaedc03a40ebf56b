package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/persistence/memory"
)

type viewFixture struct {
	handler *ChangeViewHandler
	window  *journal.Window
	sink    *captureSink
	flags   *config.FeatureFlags
}

// newViewFixture builds 25 lectures dated 01.09.2025..25.09.2025; the fixed
// clock says today is 15.09.2025 (page 2 at six lessons per page).
func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()

	lessons := make([]journal.Lesson, 0, 25)
	for i := 0; i < 25; i++ {
		lessons = append(lessons, journal.Lesson{
			ID:     journal.LessonID(i + 1),
			Date:   journal.LessonDate(fmt.Sprintf("%02d.09.2025", i+1)),
			Type:   journal.TypeLecture,
			Number: i + 1,
		})
	}
	repo := memory.NewLessonRepository()
	assert.NoError(t, repo.Seed(lessons))

	window := journal.NewWindow(6)
	sink := &captureSink{}
	flags := config.LoadFeatureFlags()

	handler := NewChangeViewHandler(window, repo, sink, nil, flags, testClock(), nil)
	return &viewFixture{handler: handler, window: window, sink: sink, flags: flags}
}

func TestSetModeJumpsToToday(t *testing.T) {
	ctx := context.Background()
	f := newViewFixture(t)

	state, err := f.handler.SetMode(ctx, SetViewModeCommand{Mode: "pagination"})
	assert.NoError(t, err)
	assert.True(t, state.Jumped)
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, 5, state.TotalPages)

	// Mode switches always confirm with an info notification.
	assert.Equal(t, []string{"Режим просмотра: постраничный"}, f.sink.messages)
	assert.Equal(t, notification.SeverityInfo, f.sink.severities[0])
}

func TestSetModeJumpDisabledByFlag(t *testing.T) {
	ctx := context.Background()
	f := newViewFixture(t)
	f.flags.Set(config.FeatureJumpToToday, false)

	state, err := f.handler.SetMode(ctx, SetViewModeCommand{Mode: "pagination"})
	assert.NoError(t, err)
	assert.False(t, state.Jumped)
	assert.Equal(t, 0, state.Page)
}

func TestSetModeInvalid(t *testing.T) {
	f := newViewFixture(t)

	_, err := f.handler.SetMode(context.Background(), SetViewModeCommand{Mode: "grid"})
	assert.Error(t, err)
}

func TestSetPageClamps(t *testing.T) {
	ctx := context.Background()
	f := newViewFixture(t)

	_, err := f.handler.SetMode(ctx, SetViewModeCommand{Mode: "pagination"})
	assert.NoError(t, err)

	state, err := f.handler.SetPage(ctx, SetPageCommand{Page: 99})
	assert.NoError(t, err)
	assert.Equal(t, 4, state.Page)

	state, err = f.handler.SetPage(ctx, SetPageCommand{Page: -1})
	assert.NoError(t, err)
	assert.Equal(t, 0, state.Page)
}

func TestSetPageSizeFreeText(t *testing.T) {
	ctx := context.Background()
	f := newViewFixture(t)

	state, err := f.handler.SetPageSize(ctx, SetPageSizeCommand{Size: "10"})
	assert.NoError(t, err)
	assert.Equal(t, 10, state.PerPage)
	assert.Equal(t, 3, state.TotalPages)
}

func TestSetPageSizeInvalidInputAdvisory(t *testing.T) {
	ctx := context.Background()
	f := newViewFixture(t)

	for _, input := range []string{"abc", "", "0", "-3", "6.5"} {
		state, err := f.handler.SetPageSize(ctx, SetPageSizeCommand{Size: input})
		assert.NoError(t, err)
		// The current size survives invalid input.
		assert.Equal(t, 6, state.PerPage)
	}

	assert.Len(t, f.sink.messages, 5)
	for i, msg := range f.sink.messages {
		assert.Equal(t, "Введите корректное число", msg)
		assert.Equal(t, notification.SeverityError, f.sink.severities[i])
	}
}
