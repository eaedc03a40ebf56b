// Package service contains infrastructure implementations of domain service
// contracts.
package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/journal-hub/teacher-journal-hub/internal/domain/notification"
	"github.com/journal-hub/teacher-journal-hub/internal/domain/shared"
	"github.com/journal-hub/teacher-journal-hub/pkg/logger"
)

// DefaultFeedCapacity bounds the in-memory notification feed.
const DefaultFeedCapacity = 100

// FeedNotifier implements notification.Sink. It logs every notification and
// keeps a bounded in-memory feed (the UI snackbar history). Delivery is
// fire-and-forget: the journal core never observes the outcome.
type FeedNotifier struct {
	mu       sync.Mutex
	log      *logger.Logger
	events   shared.EventPublisher
	feed     []notification.Notification
	capacity int
}

// NewFeedNotifier creates a notifier with the given feed capacity
// (0 uses DefaultFeedCapacity). The event publisher is optional.
func NewFeedNotifier(log *logger.Logger, events shared.EventPublisher, capacity int) *FeedNotifier {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	if log == nil {
		log = logger.Default()
	}
	return &FeedNotifier{
		log:      log,
		events:   events,
		capacity: capacity,
	}
}

// Notify implements notification.Sink.
func (n *FeedNotifier) Notify(message string, severity notification.Severity, opts notification.Options) {
	if !severity.IsValid() {
		severity = notification.SeverityInfo
	}

	notif := notification.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		Options:   opts,
		Source:    opts.Source,
		StudentID: opts.StudentID,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.feed = append(n.feed, notif)
	if len(n.feed) > n.capacity {
		n.feed = n.feed[len(n.feed)-n.capacity:]
	}
	n.mu.Unlock()

	n.log.Info("notification",
		logger.String("message", message),
		logger.Severity(severity.String()),
		logger.String("source", opts.Source),
	)

	if n.events != nil {
		_ = n.events.Publish(shared.NewNotificationSentEvent(notif.ID, severity.String()))
	}
}

// Recent returns up to limit most recent notifications, newest last.
// limit <= 0 returns the whole feed.
func (n *FeedNotifier) Recent(limit int) []notification.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if limit <= 0 || limit > len(n.feed) {
		limit = len(n.feed)
	}
	out := make([]notification.Notification, limit)
	copy(out, n.feed[len(n.feed)-limit:])
	return out
}
