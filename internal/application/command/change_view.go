package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
	"github.com/journal-hub/teacher-journal-hub/pkg/timeutil"
)

// SetViewModeCommand switches the lesson window between scroll and pagination.
type SetViewModeCommand struct {
	Mode     string `json:"mode"`
	Category string `json:"category,omitempty"`
}

// SetPageCommand navigates to a page of the current window.
type SetPageCommand struct {
	Page     int    `json:"page"`
	Category string `json:"category,omitempty"`
}

// SetPageSizeCommand changes the page size. Size arrives as free text from
// the UI input and is validated here, not in the window.
type SetPageSizeCommand struct {
	Size     string `json:"size"`
	Category string `json:"category,omitempty"`
}

// ViewState mirrors the window for the rendering layer.
type ViewState struct {
	Mode       string `json:"mode"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	TotalPages int    `json:"total_pages"`

	// Jumped is true when entering pagination auto-navigated to today.
	Jumped bool `json:"jumped,omitempty"`
}

// ChangeViewHandler owns the lesson window state machine.
type ChangeViewHandler struct {
	window   *journal.Window
	lessons  journal.LessonRepository
	notifier notification.Sink
	events   shared.EventPublisher
	flags    *config.FeatureFlags
	clock    timeutil.Clock
	log      *logger.Logger
}

// NewChangeViewHandler creates the handler.
func NewChangeViewHandler(
	window *journal.Window,
	lessons journal.LessonRepository,
	notifier notification.Sink,
	events shared.EventPublisher,
	flags *config.FeatureFlags,
	clock timeutil.Clock,
	log *logger.Logger,
) *ChangeViewHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ChangeViewHandler{
		window:   window,
		lessons:  lessons,
		notifier: notifier,
		events:   events,
		flags:    flags,
		clock:    clock,
		log:      log.With(logger.Component("view")),
	}
}

// SetMode switches the view mode. Entering pagination may auto-navigate to
// the lesson dated today; the jump-to-today feature flag turns that off by
// feeding the window an empty date that matches nothing.
func (h *ChangeViewHandler) SetMode(ctx context.Context, cmd SetViewModeCommand) (*ViewState, error) {
	mode := journal.ViewMode(cmd.Mode)
	if !mode.IsValid() {
		return nil, fmt.Errorf("change view: %w: mode %q", shared.ErrInvalidInput, cmd.Mode)
	}

	filtered, err := h.categoryLessons(ctx, cmd.Category)
	if err != nil {
		return nil, err
	}

	today := ""
	if h.flags.IsEnabled(config.FeatureJumpToToday) {
		today = h.clock.Today()
	}
	jumped := h.window.SetMode(mode, filtered, today)

	label := "Режим просмотра: прокрутка"
	if mode == journal.ViewModePagination {
		label = "Режим просмотра: постраничный"
	}
	h.notifier.Notify(label, notification.SeverityInfo, notification.Options{Source: "view"})

	if h.events != nil {
		_ = h.events.Publish(shared.NewViewModeChangedEvent(string(mode)))
		if jumped {
			_ = h.events.Publish(shared.NewPageChangedEvent(
				h.window.Page(), h.window.TotalPages(len(filtered)), true,
			))
		}
	}

	h.log.Info("view mode changed",
		logger.String("mode", string(mode)),
		logger.Bool("jumped", jumped),
	)

	state := h.state(len(filtered))
	state.Jumped = jumped
	return state, nil
}

// SetPage navigates to the page, clamped into the valid range.
func (h *ChangeViewHandler) SetPage(ctx context.Context, cmd SetPageCommand) (*ViewState, error) {
	filtered, err := h.categoryLessons(ctx, cmd.Category)
	if err != nil {
		return nil, err
	}

	h.window.SetPage(cmd.Page, len(filtered))

	if h.events != nil {
		_ = h.events.Publish(shared.NewPageChangedEvent(
			h.window.Page(), h.window.TotalPages(len(filtered)), false,
		))
	}

	return h.state(len(filtered)), nil
}

// SetPageSize applies a page size typed by the user. Non-numeric or
// non-positive input keeps the current size and emits the advisory
// notification instead of failing the request.
func (h *ChangeViewHandler) SetPageSize(ctx context.Context, cmd SetPageSizeCommand) (*ViewState, error) {
	filtered, err := h.categoryLessons(ctx, cmd.Category)
	if err != nil {
		return nil, err
	}

	size, parseErr := strconv.Atoi(strings.TrimSpace(cmd.Size))
	if parseErr != nil || size <= 0 {
		h.notifier.Notify("Введите корректное число", notification.SeverityError,
			notification.Options{Source: "view"})
		h.log.Debug("invalid page size input", logger.String("input", cmd.Size))
		return h.state(len(filtered)), nil
	}

	if err := h.window.SetPerPage(size, len(filtered)); err != nil {
		return nil, fmt.Errorf("change view: %w", err)
	}

	if h.events != nil {
		_ = h.events.Publish(shared.NewPageChangedEvent(
			h.window.Page(), h.window.TotalPages(len(filtered)), false,
		))
	}

	h.log.Info("page size changed", logger.Page(size))

	return h.state(len(filtered)), nil
}

// State returns the current window state for the category.
func (h *ChangeViewHandler) State(ctx context.Context, category string) (*ViewState, error) {
	filtered, err := h.categoryLessons(ctx, category)
	if err != nil {
		return nil, err
	}
	return h.state(len(filtered)), nil
}

// categoryLessons loads the lesson sequence of the category, in the order
// the window paginates it.
func (h *ChangeViewHandler) categoryLessons(ctx context.Context, category string) ([]journal.Lesson, error) {
	cat, ok := journal.ParseCategory(category)
	if !ok {
		return nil, fmt.Errorf("change view: %w: %q", shared.ErrInvalidCategory, category)
	}
	all, err := h.lessons.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("change view: list lessons: %w", err)
	}
	return journal.FilterLessons(all, cat), nil
}

func (h *ChangeViewHandler) state(lessonCount int) *ViewState {
	return &ViewState{
		Mode:       string(h.window.Mode()),
		Page:       h.window.Page(),
		PerPage:    h.window.PerPage(),
		TotalPages: h.window.TotalPages(lessonCount),
	}
}
