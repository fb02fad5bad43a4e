package service

import (
	"context"
	"testing"
	"time"

	"github.com/shuaizuo666/Task-System/models"
)

func TestDashboardStatsFixture(t *testing.T) {
	mem := newMemory()
	userID, _ := newUser(t, mem, "alice@x.com")
	tasks := NewTasks(mem, nil)

	today := models.NewDate(2026, 3, 10)
	yesterday := models.NewDate(2026, 3, 9)
	statsClock := func() time.Time {
		return time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	}

	// 3 TODO (one due today), 1 IN_PROGRESS (overdue), 2 COMPLETED.
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "todo 1"})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "todo 2"})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "todo due today", DueDate: datePtr(today)})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{
		Title: "in progress overdue", Status: statusPtr(models.StatusInProgress), DueDate: datePtr(yesterday),
	})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "done 1", Status: statusPtr(models.StatusCompleted)})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "done 2", Status: statusPtr(models.StatusCompleted)})

	stats, err := NewStatsWithClock(mem, statsClock).Dashboard(context.Background(), userID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	want := models.DashboardStats{
		TotalTasks: 6, TodoCount: 3, InProgressCount: 1,
		CompletedCount: 2, DueTodayCount: 1, OverdueCount: 1,
	}
	if *stats != want {
		t.Errorf("got %+v, want %+v", *stats, want)
	}
}

func TestDashboardStatsOverdueRules(t *testing.T) {
	mem := newMemory()
	userID, _ := newUser(t, mem, "alice@x.com")
	tasks := NewTasks(mem, nil)

	yesterday := models.NewDate(2026, 3, 9)
	tomorrow := models.NewDate(2026, 3, 11)
	statsClock := func() time.Time {
		return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	}

	// Completed-and-past is never overdue; no due date is never overdue
	// or due today; a future due date is neither.
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{
		Title: "completed late", Status: statusPtr(models.StatusCompleted), DueDate: datePtr(yesterday),
	})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "no due date"})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "future", DueDate: datePtr(tomorrow)})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "late", DueDate: datePtr(yesterday)})

	stats, err := NewStatsWithClock(mem, statsClock).Dashboard(context.Background(), userID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.OverdueCount != 1 {
		t.Errorf("got overdue %d, want 1", stats.OverdueCount)
	}
	if stats.DueTodayCount != 0 {
		t.Errorf("got due today %d, want 0", stats.DueTodayCount)
	}
}

func TestDashboardStatsIsolation(t *testing.T) {
	mem := newMemory()
	aliceID, _ := newUser(t, mem, "alice@x.com")
	bobID, _ := newUser(t, mem, "bob@x.com")
	tasks := NewTasks(mem, nil)

	mustCreateTask(t, tasks, aliceID, models.CreateTaskRequest{Title: "alice 1"})
	mustCreateTask(t, tasks, bobID, models.CreateTaskRequest{Title: "bob 1"})
	mustCreateTask(t, tasks, bobID, models.CreateTaskRequest{Title: "bob 2"})

	stats, err := NewStats(mem).Dashboard(context.Background(), aliceID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.TotalTasks != 1 {
		t.Errorf("got total %d, want 1 (no cross-user leakage)", stats.TotalTasks)
	}
}
