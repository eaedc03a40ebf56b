package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/journal-hub/teacher-journal-hub/config"
	"github.com/journal-hub/teacher-journal-hub/internal/application/command"
	"github.com/journal-hub/teacher-journal-hub/internal/application/query"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/journal"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":    "Teacher Journal Hub API",
		"version": s.config.Version,
		"endpoints": map[string]string{
			"health":        "/health",
			"journal":       "/api/v1/journal",
			"students":      "/api/v1/students/{id}",
			"export":        "/api/v1/export/csv",
			"notifications": "/api/v1/notifications",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": s.config.Version,
	})
}

// handleLive handles the liveness probe endpoint.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// JOURNAL TABLE & VIEW WINDOW
// ══════════════════════════════════════════════════════════════════════════════

// handleGetJournal handles GET /api/v1/journal?category=
func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	q := query.GetJournalViewQuery{
		Category: getQueryParam(r, "category", ""),
	}

	result, err := s.deps.JournalView.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, err, "failed to build journal view")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSetViewMode handles POST /api/v1/journal/view/mode
func (s *Server) handleSetViewMode(w http.ResponseWriter, r *http.Request) {
	var cmd command.SetViewModeCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}

	state, err := s.deps.View.SetMode(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err, "failed to set view mode")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleSetPage handles POST /api/v1/journal/view/page
func (s *Server) handleSetPage(w http.ResponseWriter, r *http.Request) {
	var cmd command.SetPageCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}

	state, err := s.deps.View.SetPage(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err, "failed to set page")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleSetPageSize handles POST /api/v1/journal/view/page-size
func (s *Server) handleSetPageSize(w http.ResponseWriter, r *http.Request) {
	var cmd command.SetPageSizeCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}

	state, err := s.deps.View.SetPageSize(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err, "failed to set page size")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE EDIT TRANSACTION
// ══════════════════════════════════════════════════════════════════════════════

// handleGetEditState handles GET /api/v1/journal/edit
func (s *Server) handleGetEditState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.EditGrade.State())
}

// handleEditOpen handles POST /api/v1/journal/edit/open
func (s *Server) handleEditOpen(w http.ResponseWriter, r *http.Request) {
	var cmd command.OpenGradeEditCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}

	state, err := s.deps.EditGrade.Open(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err, "failed to open grade edit")
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleEditDraft handles POST /api/v1/journal/edit/draft
func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateDraftCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}

	writeJSON(w, http.StatusOK, s.deps.EditGrade.UpdateDraft(r.Context(), cmd))
}

// handleEditCommit handles POST /api/v1/journal/edit/commit
func (s *Server) handleEditCommit(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.EditGrade.Commit(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "failed to commit grade edit")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleEditCancel handles POST /api/v1/journal/edit/cancel
func (s *Server) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.EditGrade.Cancel(r.Context()))
}

// handleQuickToggle handles POST /api/v1/journal/quick-toggle
func (s *Server) handleQuickToggle(w http.ResponseWriter, r *http.Request) {
	var cmd command.QuickToggleCommand
	if !s.decodeBody(w, r, &cmd) {
		return
	}

	result, err := s.deps.QuickToggle.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err, "failed to toggle attendance")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGradeHistory handles GET /api/v1/journal/grades/{studentID}/{lessonID}/history
func (s *Server) handleGradeHistory(w http.ResponseWriter, r *http.Request) {
	studentID, ok := pathValueInt64(w, r, "studentID")
	if !ok {
		return
	}
	lessonID, ok := pathValueInt64(w, r, "lessonID")
	if !ok {
		return
	}

	result, err := s.deps.GradeHistory.Handle(r.Context(), query.GetGradeHistoryQuery{
		StudentID: studentID,
		LessonID:  lessonID,
	})
	if err != nil {
		s.writeDomainError(w, err, "failed to read grade history")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetStudentCard handles GET /api/v1/students/{id}
func (s *Server) handleGetStudentCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathValueInt64(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.StudentCard.Handle(r.Context(), query.GetStudentCardQuery{
		StudentID: id,
		Category:  getQueryParam(r, "category", ""),
	})
	if err != nil {
		s.writeDomainError(w, err, "failed to build student card")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAddNote handles POST /api/v1/students/{id}/notes
func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathValueInt64(w, r, "id")
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}

	result, err := s.deps.Notes.Add(r.Context(), command.AddNoteCommand{
		StudentID: id,
		Text:      body.Text,
	})
	if err != nil {
		s.writeDomainError(w, err, "failed to add note")
		return
	}

	status := http.StatusCreated
	if !result.Added {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// handleDeleteNote handles DELETE /api/v1/students/{id}/notes/{noteID}
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathValueInt64(w, r, "id")
	if !ok {
		return
	}
	noteID, ok := pathValueInt64(w, r, "noteID")
	if !ok {
		return
	}

	result, err := s.deps.Notes.Delete(r.Context(), command.DeleteNoteCommand{
		StudentID: id,
		NoteID:    noteID,
	})
	if err != nil {
		s.writeDomainError(w, err, "failed to delete note")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleTogglePlan handles POST /api/v1/students/{id}/plan
func (s *Server) handleTogglePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathValueInt64(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.Plan.Handle(r.Context(), command.TogglePlanCommand{StudentID: id})
	if err != nil {
		s.writeDomainError(w, err, "failed to toggle individual plan")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT, NOTIFICATIONS, FEATURE FLAGS
// ══════════════════════════════════════════════════════════════════════════════

// handleExportCSV handles GET /api/v1/export/csv?category=
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Flags.IsEnabled(config.FeatureCSVExport) {
		writeJSONError(w, http.StatusNotFound, "feature_disabled", "CSV export is disabled")
		return
	}

	category, ok := journal.ParseCategory(getQueryParam(r, "category", ""))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_category", "Unknown lesson category")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="journal.csv"`)

	if err := s.deps.Exporter.Export(r.Context(), category, w); err != nil {
		// Headers are already out; log instead of rewriting the response.
		s.logger.Error("csv export failed", logger.Err(err))
	}
}

// handleGetNotifications handles GET /api/v1/notifications?limit=
func (s *Server) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Flags.IsEnabled(config.FeatureNotificationFeed) {
		writeJSONError(w, http.StatusNotFound, "feature_disabled", "Notification feed is disabled")
		return
	}

	limit := getQueryParamInt(r, "limit", 20)
	writeJSON(w, http.StatusOK, s.deps.Notifier.Recent(limit))
}

// handleListFeatures handles GET /api/v1/features
func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Flags.List())
}

// handleSetFeature handles POST /api/v1/features. This is how the UI
// quick-mode switch reaches the backend.
func (s *Server) handleSetFeature(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
	}
	if !s.decodeBody(w, r, &body) {
		return
	}
	if body.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Feature name is required")
		return
	}

	s.deps.Flags.Set(body.Name, body.Enabled)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    body.Name,
		"enabled": body.Enabled,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// decodeBody decodes a JSON request body, answering 400 on malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return false
	}
	return true
}

// pathValueInt64 parses a positive integer path segment, answering 400 on
// malformed input.
func pathValueInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || v <= 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid "+name)
		return 0, false
	}
	return v, true
}

// writeDomainError maps domain errors onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsInvalidState(err):
		writeJSONError(w, http.StatusConflict, "invalid_state", err.Error())
	default:
		s.logger.Error(fallback, logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}
