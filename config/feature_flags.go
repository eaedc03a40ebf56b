package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages feature toggles for the journal.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	// FeatureQuickMode - one-click attendance toggle on eligible lessons,
	// bypassing the edit transaction.
	FeatureQuickMode = "journal.quick_mode"

	// FeatureGradeHistory - audit history of committed grade changes.
	FeatureGradeHistory = "journal.grade_history"

	// FeatureJumpToToday - one-shot auto-navigation to today's lesson on
	// entering pagination mode.
	FeatureJumpToToday = "journal.jump_to_today"

	// FeatureCSVExport - CSV export endpoint.
	FeatureCSVExport = "export.csv"

	// FeatureNotificationFeed - in-memory notification feed endpoint.
	FeatureNotificationFeed = "notify.feed"
)

// LoadFeatureFlags loads feature flags with defaults and environment overrides.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features: make(map[string]*Feature),
	}
	ff.initializeDefaults()
	ff.loadFromEnvironment()
	return ff
}

// initializeDefaults sets up all features with default values.
func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureQuickMode] = &Feature{
		Name:        FeatureQuickMode,
		Description: "One-click attendance toggle",
		Enabled:     false,
	}
	ff.features[FeatureGradeHistory] = &Feature{
		Name:        FeatureGradeHistory,
		Description: "Audit history of grade changes",
		Enabled:     true,
	}
	ff.features[FeatureJumpToToday] = &Feature{
		Name:        FeatureJumpToToday,
		Description: "Auto-navigate to today's lesson in pagination mode",
		Enabled:     true,
	}
	ff.features[FeatureCSVExport] = &Feature{
		Name:        FeatureCSVExport,
		Description: "CSV export of the journal table",
		Enabled:     true,
	}
	ff.features[FeatureNotificationFeed] = &Feature{
		Name:        FeatureNotificationFeed,
		Description: "Recent notifications endpoint",
		Enabled:     true,
	}
}

// loadFromEnvironment applies overrides of the form
// FEATURE_JOURNAL_QUICK_MODE=true (dots become underscores).
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		envKey := "FEATURE_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(name))
		if v, ok := os.LookupEnv(envKey); ok {
			if enabled, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				feature.Enabled = enabled
			}
		}
	}
}

// IsEnabled reports whether the feature is on. Unknown features are off.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	f, ok := ff.features[name]
	return ok && f.Enabled
}

// Set enables or disables a feature at runtime (the UI quick-mode switch).
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if f, ok := ff.features[name]; ok {
		f.Enabled = enabled
		return
	}
	ff.features[name] = &Feature{Name: name, Enabled: enabled}
}

// List returns all registered features.
func (ff *FeatureFlags) List() []Feature {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	out := make([]Feature, 0, len(ff.features))
	for _, f := range ff.features {
		out = append(out, *f)
	}
	return out
}
