package service

import (
	"sort"
	"time"

	"github.com/retailworks/retailpulse/internal/analytics/domain"
	"github.com/retailworks/retailpulse/internal/record"
)

// weekStart truncates a timestamp to the Monday 00:00 UTC of its week.
func weekStart(ts time.Time) time.Time {
	ts = ts.UTC()
	back := (int(ts.Weekday()) + 6) % 7
	return time.Date(ts.Year(), ts.Month(), ts.Day()-back, 0, 0, 0, 0, time.UTC)
}

// WeeklyOrderStatus counts pending, shipped and returned orders per calendar
// week. Other statuses (completed, cancelled) are excluded from all three
// counts; that is documented behavior, not an error.
func (s *Service) WeeklyOrderStatus(enriched []record.EnrichedRecord) []domain.WeeklyOrderStatus {
	weeks := map[time.Time]*domain.WeeklyOrderStatus{}
	for _, row := range enriched {
		switch row.OrderStatus {
		case record.StatusPending, record.StatusShipped, record.StatusReturned:
		default:
			continue
		}
		week := weekStart(row.Timestamp)
		w := weeks[week]
		if w == nil {
			w = &domain.WeeklyOrderStatus{Week: week}
			weeks[week] = w
		}
		switch row.OrderStatus {
		case record.StatusPending:
			w.Pending++
		case record.StatusShipped:
			w.Shipped++
		case record.StatusReturned:
			w.Returned++
		}
	}

	out := make([]domain.WeeklyOrderStatus, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week.Before(out[j].Week) })
	return out
}
