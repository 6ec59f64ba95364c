package orchestrators

import (
	"context"
	"log/slog"

	"coachdash/internal/domain/activity"
)

// ActivityStoreForOrchestrator defines the store interface needed to
// record activity feed entries.
type ActivityStoreForOrchestrator interface {
	Insert(ctx context.Context, e activity.Entry) error
}

// recordActivity writes an activity entry, logging rather than failing
// the calling operation when the feed write does not succeed. The feed
// is presentation data, not a consistency participant.
func recordActivity(ctx context.Context, store ActivityStoreForOrchestrator, e activity.Entry) {
	if err := e.Validate(); err != nil {
		slog.Warn("activity_event", "event", "entry_invalid", "error", err.Error())
		return
	}
	if err := store.Insert(ctx, e); err != nil {
		slog.Warn("activity_event", "event", "entry_write_failed", "error", err.Error())
	}
}
