package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
)

// Stats derives dashboard counts for one user. Every call recomputes
// from current storage state; nothing is cached. "Today" is the server's
// local calendar date read from the injectable clock.
type Stats struct {
	store store.Store
	now   func() time.Time
}

func NewStats(s store.Store) *Stats {
	return &Stats{store: s, now: time.Now}
}

func NewStatsWithClock(s store.Store, now func() time.Time) *Stats {
	return &Stats{store: s, now: now}
}

func (s *Stats) Dashboard(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error) {
	today := models.DateOf(s.now())

	stats := &models.DashboardStats{}
	counts := []struct {
		dst  *int64
		load func() (int64, error)
	}{
		{&stats.TotalTasks, func() (int64, error) { return s.store.CountTasks(ctx, userID) }},
		{&stats.TodoCount, func() (int64, error) { return s.store.CountTasksByStatus(ctx, userID, models.StatusTodo) }},
		{&stats.InProgressCount, func() (int64, error) { return s.store.CountTasksByStatus(ctx, userID, models.StatusInProgress) }},
		{&stats.CompletedCount, func() (int64, error) { return s.store.CountTasksByStatus(ctx, userID, models.StatusCompleted) }},
		{&stats.DueTodayCount, func() (int64, error) { return s.store.CountTasksDueOn(ctx, userID, today) }},
		{&stats.OverdueCount, func() (int64, error) { return s.store.CountTasksOverdue(ctx, userID, today) }},
	}
	for _, c := range counts {
		n, err := c.load()
		if err != nil {
			return nil, apperr.Internal("could not compute statistics", err)
		}
		*c.dst = n
	}
	return stats, nil
}
