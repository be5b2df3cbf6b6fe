package subscription

import (
	"sort"
	"time"
)

// SelectCurrent picks the subscription that counts as the user's current one:
// among the subscriptions that are current at now, the most recently created.
// It returns nil when none qualifies. The input slice is not modified.
func SelectCurrent(subs []*Subscription, now time.Time) *Subscription {
	ordered := make([]*Subscription, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].createdAt.After(ordered[j].createdAt)
	})

	for _, s := range ordered {
		if s.IsCurrent(now) {
			return s
		}
	}
	return nil
}
