package review

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/mfukuda/recall/internal/item"
	"github.com/mfukuda/recall/internal/scheduler"
)

// Order controls how due items are arranged within a session.
type Order string

const (
	// OrderUrgency puts the items most at risk of being forgotten first.
	OrderUrgency Order = "urgency"
	// OrderRandom shuffles due items; the ordering is advisory only.
	OrderRandom Order = "random"
)

// SessionConfig holds the per-learner queue admission settings.
type SessionConfig struct {
	DailyReviewLimit int
	NewItemsPerDay   int
	ReviewOrder      Order
}

// SessionEntry is one queued item with the context a caller needs to present it.
type SessionEntry struct {
	ItemID       string            `json:"item_id"`
	ItemType     string            `json:"item_type,omitempty"`
	Retention    float64           `json:"retention"`
	Mastery      item.MasteryLevel `json:"mastery"`
	NextReviewAt *time.Time        `json:"next_review_at,omitempty"`
	New          bool              `json:"new"`
}

// QueueManager builds the ordered, limit-respecting review session.
type QueueManager struct {
	items  item.Store
	params scheduler.Params
	rng    *rand.Rand
}

// NewQueueManager creates a QueueManager. A nil rng gets a time-seeded one.
func NewQueueManager(items item.Store, params scheduler.Params, rng *rand.Rand) *QueueManager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QueueManager{items: items, params: params, rng: rng}
}

// BuildSession returns today's session: due items first, ordered per the
// configured policy, then never-reviewed items up to the new-item quota,
// oldest-created first so no item starves. An empty session means the
// learner is caught up; it is not an error.
func (q *QueueManager) BuildSession(ctx context.Context, cfg SessionConfig, now time.Time) ([]SessionEntry, error) {
	all, err := q.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("items.ListAll() > %w", err)
	}

	var due, fresh []item.Item
	for _, it := range all {
		switch {
		case it.IsDue(now):
			due = append(due, it)
		case it.NextReviewAt == nil:
			fresh = append(fresh, it)
		}
	}

	switch cfg.ReviewOrder {
	case OrderRandom:
		q.rng.Shuffle(len(due), func(i, j int) {
			due[i], due[j] = due[j], due[i]
		})
	default:
		sort.SliceStable(due, func(i, j int) bool {
			ri := scheduler.EstimateRetention(q.params, due[i].IntervalDays, due[i].EaseFactor, due[i].LastReviewAt, now)
			rj := scheduler.EstimateRetention(q.params, due[j].IntervalDays, due[j].EaseFactor, due[j].LastReviewAt, now)
			if ri != rj {
				return ri < rj
			}
			return due[i].NextReviewAt.Before(*due[j].NextReviewAt)
		})
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
	})
	if cfg.NewItemsPerDay >= 0 && len(fresh) > cfg.NewItemsPerDay {
		fresh = fresh[:cfg.NewItemsPerDay]
	}

	session := make([]SessionEntry, 0, len(due)+len(fresh))
	for _, it := range due {
		session = append(session, q.entry(it, now, false))
	}
	for _, it := range fresh {
		session = append(session, q.entry(it, now, true))
	}

	if cfg.DailyReviewLimit > 0 && len(session) > cfg.DailyReviewLimit {
		session = session[:cfg.DailyReviewLimit]
	}
	return session, nil
}

func (q *QueueManager) entry(it item.Item, now time.Time, isNew bool) SessionEntry {
	return SessionEntry{
		ItemID:       it.ID,
		ItemType:     it.ItemType,
		Retention:    scheduler.EstimateRetention(q.params, it.IntervalDays, it.EaseFactor, it.LastReviewAt, now),
		Mastery:      it.MasteryLevel(),
		NextReviewAt: it.NextReviewAt,
		New:          isNew,
	}
}
