// Package main - точка входа сервера Teacher Journal Hub.
//
// Журнал преподавателя: посещаемость, баллы и заметки одной учебной группы.
// Всё состояние живёт в памяти процесса и собирается заново при каждом
// запуске из seed-файла или встроенной демо-группы.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистые модели журнала (ячейки, окно занятий, транзакция правки)
// - Application: command/query handlers поверх доменных машин состояний
// - Infrastructure: in-memory репозитории, event bus, экспорт, уведомления
// - Interface: REST API с сериализацией мутаций на уровне сервера
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/application/command"
	"github.com/journal-hub/teacher-journal-hub/internal/application/eventhandler"
	"github.com/journal-hub/teacher-journal-hub/internal/application/query"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/export"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/messaging"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/persistence/memory"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/seed"
	"github.com/journal-hub/teacher-journal-hub/internal/infrastructure/service"
	httpserver "github.com/journal-hub/teacher-journal-hub/internal/interface/http"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
	"github.com/journal-hub/teacher-journal-hub/pkg/timeutil"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Teacher Journal Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ЗАГРУЗКА НАЧАЛЬНОГО СОСТОЯНИЯ (seed)
	// ─────────────────────────────────────────────────────────────────────────
	fixture := seed.Default()
	if cfg.Journal.SeedFile != "" {
		fixture, err = seed.Load(cfg.Journal.SeedFile)
		if err != nil {
			return fmt.Errorf("failed to load seed file: %w", err)
		}
		log.Info("seed file loaded", logger.String("path", cfg.Journal.SeedFile))
	}

	students, lessons, grades, err := fixture.Build()
	if err != nil {
		return fmt.Errorf("invalid seed data: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ
	// ─────────────────────────────────────────────────────────────────────────
	clock := timeutil.SystemClock{}

	lessonRepo := memory.NewLessonRepository()
	if err := lessonRepo.Seed(lessons); err != nil {
		return fmt.Errorf("failed to seed lessons: %w", err)
	}

	gradeLedger := memory.NewGradeLedger()
	for _, g := range grades {
		if err := gradeLedger.Put(ctx, g); err != nil {
			return fmt.Errorf("failed to seed grades: %w", err)
		}
	}

	studentRepo := memory.NewStudentRepository()
	if err := studentRepo.Seed(students); err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	noteRepo := memory.NewNoteRepository(clock)
	planRepo := memory.NewPlanRepository()
	historyLog := memory.NewHistoryLog()

	log.Info("journal state loaded",
		logger.Int("students", len(students)),
		logger.Int("lessons", len(lessons)),
		logger.Int("grades", len(grades)),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	eventBus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{
		Logger:        slog.Default(),
		EnableMetrics: true,
	})
	defer func() {
		_ = eventBus.Close()
	}()

	auditHandler := eventhandler.NewOnGradeUpdated(log)
	if err := eventBus.Subscribe(shared.EventGradeUpdated, auditHandler.Handle); err != nil {
		return fmt.Errorf("failed to subscribe audit handler: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ СЕРВИСОВ И ДОМЕННЫХ МАШИН СОСТОЯНИЙ
	// ─────────────────────────────────────────────────────────────────────────
	notifier := service.NewFeedNotifier(log, eventBus, cfg.Journal.NotificationFeedSize)
	window := journal.NewWindow(cfg.Journal.LessonsPerPage)
	editor := journal.NewEditor()

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	editGrade := command.NewEditGradeHandler(
		editor, gradeLedger, historyLog, notifier, eventBus,
		cfg.Features, clock, cfg.Journal.Author, log,
	)
	quickToggle := command.NewQuickToggleHandler(
		gradeLedger, lessonRepo, studentRepo, notifier, eventBus,
		cfg.Features, journal.LessonType(cfg.Journal.QuickToggleType), log,
	)
	notes := command.NewManageNotesHandler(
		noteRepo, studentRepo, notifier, eventBus, clock, cfg.Journal.Author, log,
	)
	plan := command.NewTogglePlanHandler(planRepo, studentRepo, notifier, eventBus, log)
	view := command.NewChangeViewHandler(
		window, lessonRepo, notifier, eventBus, cfg.Features, clock, log,
	)

	journalView := query.NewGetJournalViewHandler(
		studentRepo, lessonRepo, gradeLedger, noteRepo, planRepo, window, editor,
	)
	studentCard := query.NewGetStudentCardHandler(
		studentRepo, lessonRepo, gradeLedger, noteRepo, planRepo,
	)
	gradeHistory := query.NewGetGradeHistoryHandler(historyLog)

	exporter := export.NewCSVExporter(studentRepo, lessonRepo, gradeLedger)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК HTTP СЕРВЕРА
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpserver.DefaultConfig()
	serverCfg.Host = cfg.HTTP.Host
	serverCfg.Port = cfg.HTTP.Port
	serverCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	serverCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	serverCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	serverCfg.EnableCORS = cfg.HTTP.EnableCORS
	serverCfg.Version = cfg.App.Version

	server := httpserver.NewServer(serverCfg, httpserver.Dependencies{
		JournalView:  journalView,
		StudentCard:  studentCard,
		GradeHistory: gradeHistory,
		EditGrade:    editGrade,
		QuickToggle:  quickToggle,
		Notes:        notes,
		Plan:         plan,
		View:         view,
		Exporter:     exporter,
		Notifier:     notifier,
		Flags:        cfg.Features,
		Logger:       log,
	})

	errCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ОЖИДАНИЕ ЗАВЕРШЕНИЯ (graceful shutdown)
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// setupLogger строит логгер по конфигурации приложения.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.App.LogLevel)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
		opts.AddCaller = true
	}
	return logger.New(opts)
}
