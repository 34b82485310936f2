package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oasisrealty/leadcrm/pkg/logging"
)

// markerTTL keeps daily markers around long enough to cover clock skew
// between sweeper instances, then lets Redis reclaim them.
const markerTTL = 48 * time.Hour

// DailyMarker records that a (lead, type) notification was raised on a
// given calendar day. It is a fast-path guard in front of the store:
// the store remains the source of truth, so a Redis outage degrades to
// store-only dedup rather than failing the sweep.
type DailyMarker struct {
	client *redis.Client
	logger *logging.Logger
}

// NewDailyMarker creates a marker backed by the given Redis client.
// A nil client is allowed and turns every Mark call into a no-op miss.
func NewDailyMarker(client *redis.Client, logger *logging.Logger) *DailyMarker {
	if logger == nil {
		logger = logging.Default()
	}
	return &DailyMarker{client: client, logger: logger}
}

func markerKey(leadID uuid.UUID, typ Type, day time.Time, loc *time.Location) string {
	return fmt.Sprintf("notif:%s:%s:%s", leadID, typ, day.In(loc).Format("2006-01-02"))
}

// Mark atomically records the (lead, type, day) triple. It returns
// false only when a marker already existed today. When Redis is
// unavailable (or no client is configured) it returns true so the sweep
// proceeds and store-level dedup takes over.
func (m *DailyMarker) Mark(ctx context.Context, leadID uuid.UUID, typ Type, now time.Time, loc *time.Location) bool {
	if m.client == nil {
		return true
	}
	key := markerKey(leadID, typ, now, loc)
	ok, err := m.client.SetNX(ctx, key, 1, markerTTL).Result()
	if err != nil {
		m.logger.Warn("redis marker unavailable, falling back to store dedup",
			"key", key, "error", err)
		return true
	}
	return ok
}

// Exists reports whether a marker for the triple is already present.
func (m *DailyMarker) Exists(ctx context.Context, leadID uuid.UUID, typ Type, now time.Time, loc *time.Location) bool {
	if m.client == nil {
		return false
	}
	n, err := m.client.Exists(ctx, markerKey(leadID, typ, now, loc)).Result()
	if err != nil {
		return false
	}
	return n > 0
}
