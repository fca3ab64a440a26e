package services

import (
	"math"
	"sort"
	"time"

	"github.com/whattheframe/engraving-app/models"
)

// TeamStat is one row of the analytics leaderboard.
type TeamStat struct {
	Name                 string `json:"name"`
	CompletedOrders      int    `json:"completed_orders"`
	AvgProcessingMinutes int    `json:"avg_processing_minutes"`
}

// CompletedOrderView is a completed order enriched with its derived
// processing duration for the recent-work page.
type CompletedOrderView struct {
	models.Order
	ProcessingMinutes int  `json:"processing_minutes"`
	AfterHours        bool `json:"after_hours"`
}

// DefaultCompletedLimit bounds the recent-completed listing.
const DefaultCompletedLimit = 50

// PeriodCutoff maps a period token to the start of its reporting
// window. Unknown tokens (including "all") mean all time.
func PeriodCutoff(period string, now time.Time) time.Time {
	switch period {
	case "day":
		return now.Add(-24 * time.Hour)
	case "week":
		return now.Add(-7 * 24 * time.Hour)
	case "month":
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}

// ComputeTeamStats aggregates completed orders inside the period window
// into per-engraver counts and average processing minutes, sorted
// descending by completed orders so the first row is the top performer.
func ComputeTeamStats(orders []models.Order, period string, now time.Time) []TeamStat {
	cutoff := PeriodCutoff(period, now)

	type bucket struct {
		name         string
		count        int
		totalMinutes int
	}
	buckets := make(map[string]*bucket)
	var appearance []string

	for _, o := range orders {
		if o.Status != models.StatusCompleted || o.CompletedAt == nil {
			continue
		}
		if o.CompletedAt.Before(cutoff) {
			continue
		}
		if o.TeamMember == "" {
			continue
		}
		b, ok := buckets[o.TeamMember]
		if !ok {
			b = &bucket{name: o.TeamMember}
			buckets[o.TeamMember] = b
			appearance = append(appearance, o.TeamMember)
		}
		// Durations come from the order timestamps, not the log, so
		// a restored or edited order still reports consistently.
		if o.ClaimedAt != nil {
			b.count++
			b.totalMinutes += DurationMinutes(*o.ClaimedAt, *o.CompletedAt)
		}
	}

	stats := make([]TeamStat, 0, len(buckets))
	for _, name := range appearance {
		b := buckets[name]
		avg := 0
		if b.count > 0 {
			avg = int(math.Round(float64(b.totalMinutes) / float64(b.count)))
		}
		stats = append(stats, TeamStat{
			Name:                 b.name,
			CompletedOrders:      b.count,
			AvgProcessingMinutes: avg,
		})
	}

	// Stable sort keeps first-appearance order between tied members.
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].CompletedOrders > stats[j].CompletedOrders
	})
	return stats
}

// IsAfterHours reports whether a processing interval falls outside the
// 09:00-18:00 weekday window, in local wall-clock time. Exactly 09:00
// is regular time; exactly 18:00 is after hours.
func IsAfterHours(start, end time.Time) bool {
	weekday := start.Weekday()
	if weekday == time.Sunday || weekday == time.Saturday {
		return true
	}
	startHour := start.Hour()
	endHour := end.Hour()
	return startHour < 9 || startHour >= 18 || endHour < 9 || endHour >= 18
}

// CompletedOrdersView filters to completed orders, newest completion
// first, capped at limit (DefaultCompletedLimit when limit <= 0).
func CompletedOrdersView(orders []models.Order, limit int) []CompletedOrderView {
	if limit <= 0 {
		limit = DefaultCompletedLimit
	}

	var completed []models.Order
	for _, o := range orders {
		if o.Status == models.StatusCompleted {
			completed = append(completed, o)
		}
	}

	sort.SliceStable(completed, func(i, j int) bool {
		ti, tj := completedTime(completed[i]), completedTime(completed[j])
		return ti.After(tj)
	})

	if len(completed) > limit {
		completed = completed[:limit]
	}

	views := make([]CompletedOrderView, 0, len(completed))
	for _, o := range completed {
		view := CompletedOrderView{Order: o}
		if o.ClaimedAt != nil && o.CompletedAt != nil {
			view.ProcessingMinutes = DurationMinutes(*o.ClaimedAt, *o.CompletedAt)
			view.AfterHours = IsAfterHours(*o.ClaimedAt, *o.CompletedAt)
		}
		views = append(views, view)
	}
	return views
}

func completedTime(o models.Order) time.Time {
	if o.CompletedAt == nil {
		return time.Time{}
	}
	return *o.CompletedAt
}
