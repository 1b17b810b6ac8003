package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PendingDigest lists orders that stayed in "new" longer than a threshold.
type PendingDigest struct {
	GeneratedAt time.Time
	StaleAfter  time.Duration
	Orders      []Order
}

// NewPendingDigest keeps the orders still "new" and created before now-staleAfter,
// oldest first.
func NewPendingDigest(orders []Order, now time.Time, staleAfter time.Duration) PendingDigest {
	cutoff := now.Add(-staleAfter)
	stale := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == OrderStatusNew && o.CreatedAt.Before(cutoff) {
			stale = append(stale, o)
		}
	}
	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].CreatedAt.Before(stale[j].CreatedAt)
	})
	return PendingDigest{GeneratedAt: now, StaleAfter: staleAfter, Orders: stale}
}

func (d PendingDigest) Empty() bool {
	return len(d.Orders) == 0
}

func (d PendingDigest) Subject() string {
	return fmt.Sprintf("%d order(s) waiting for processing", len(d.Orders))
}

func (d PendingDigest) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Orders still new after %s:\n\n", d.StaleAfter)
	for _, o := range d.Orders {
		fmt.Fprintf(&b, "  - %s  %s  %s  %s (%s ago)\n",
			shortID(o.ID),
			o.CustomerName,
			o.CustomerPhone,
			o.TotalPrice.StringFixed(2),
			d.GeneratedAt.Sub(o.CreatedAt).Truncate(time.Minute),
		)
	}
	return b.String()
}
