package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
)

// steppingClock advances one step per call so creation order is
// unambiguous in sort assertions.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func newMemory() *store.Memory {
	mem := store.NewMemory()
	mem.Now = steppingClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)
	return mem
}

// newUser registers a bare user with its default list directly in the
// store, bypassing the auth service.
func newUser(t *testing.T, mem *store.Memory, email string) (uuid.UUID, *models.TaskList) {
	t.Helper()
	user := &models.User{Username: "user", Email: email, PasswordHash: "x"}
	list, err := mem.CreateUser(context.Background(), user, "My Tasks")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user.ID, list
}

func mustCreateTask(t *testing.T, svc *Tasks, userID uuid.UUID, req models.CreateTaskRequest) *models.Task {
	t.Helper()
	task, err := svc.Create(context.Background(), userID, req)
	if err != nil {
		t.Fatalf("Create(%q): %v", req.Title, err)
	}
	return task
}

func strPtr(s string) *string                           { return &s }
func statusPtr(s models.TaskStatus) *models.TaskStatus  { return &s }
func prioPtr(p models.TaskPriority) *models.TaskPriority { return &p }
func datePtr(d models.Date) *models.Date                { return &d }
