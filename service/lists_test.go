package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/apperr"
	"github.com/shuaizuo666/Task-System/models"
	"github.com/shuaizuo666/Task-System/store"
)

func TestCreateListValidation(t *testing.T) {
	mem := newMemory()
	userID, _ := newUser(t, mem, "alice@x.com")
	svc := NewLists(mem)

	for _, name := range []string{"", "  ", "\t"} {
		_, err := svc.Create(context.Background(), userID, models.TaskListRequest{Name: name})
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("Create(%q): got %v, want validation error", name, err)
		}
	}

	list, err := svc.Create(context.Background(), userID, models.TaskListRequest{Name: "  Work  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list.Name != "Work" {
		t.Errorf("name not trimmed: %q", list.Name)
	}
	if list.IsDefault {
		t.Error("user-created list must not be default")
	}
}

func TestAllListsWithTaskCounts(t *testing.T) {
	mem := newMemory()
	userID, defaultList := newUser(t, mem, "alice@x.com")
	svc := NewLists(mem)
	tasks := NewTasks(mem, nil)

	work, err := svc.Create(context.Background(), userID, models.TaskListRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "a"})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "b", ListID: &work.ID})
	mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "c", ListID: &work.ID})

	lists, err := svc.All(context.Background(), userID)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("got %d lists, want 2", len(lists))
	}
	counts := map[uuid.UUID]int64{}
	for _, l := range lists {
		counts[l.ID] = l.TaskCount
	}
	if counts[defaultList.ID] != 1 || counts[work.ID] != 2 {
		t.Errorf("counts = %v, want default:1 work:2", counts)
	}
}

func TestGetAndUpdateListOwnership(t *testing.T) {
	mem := newMemory()
	aliceID, _ := newUser(t, mem, "alice@x.com")
	_, bobList := newUser(t, mem, "bob@x.com")
	svc := NewLists(mem)

	_, err := svc.Get(context.Background(), aliceID, bobList.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("foreign get: got %v, want forbidden", err)
	}
	_, err = svc.Get(context.Background(), aliceID, uuid.New())
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing get: got %v, want not found", err)
	}

	_, err = svc.Update(context.Background(), aliceID, bobList.ID, models.TaskListRequest{Name: "mine now"})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("foreign update: got %v, want forbidden", err)
	}
}

func TestUpdateListRenames(t *testing.T) {
	mem := newMemory()
	userID, _ := newUser(t, mem, "alice@x.com")
	svc := NewLists(mem)

	work, err := svc.Create(context.Background(), userID, models.TaskListRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	renamed, err := svc.Update(context.Background(), userID, work.ID, models.TaskListRequest{Name: "Projects"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if renamed.Name != "Projects" {
		t.Errorf("got %q, want Projects", renamed.Name)
	}

	_, err = svc.Update(context.Background(), userID, work.ID, models.TaskListRequest{Name: " "})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("blank rename: got %v, want validation error", err)
	}
}

func TestDeleteDefaultListAlwaysFails(t *testing.T) {
	mem := newMemory()
	userID, defaultList := newUser(t, mem, "alice@x.com")
	svc := NewLists(mem)

	err := svc.Delete(context.Background(), userID, defaultList.ID)
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("got %v, want validation error", err)
	}

	// The list must still be there.
	if _, err := svc.Get(context.Background(), userID, defaultList.ID); err != nil {
		t.Fatalf("default list gone after failed delete: %v", err)
	}
}

func TestDeleteListReassignsTasks(t *testing.T) {
	mem := newMemory()
	userID, defaultList := newUser(t, mem, "alice@x.com")
	svc := NewLists(mem)
	tasks := NewTasks(mem, nil)

	work, err := svc.Create(context.Background(), userID, models.TaskListRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created := []*models.Task{
		mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "t1", ListID: &work.ID}),
		mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "t2", ListID: &work.ID}),
		mustCreateTask(t, tasks, userID, models.CreateTaskRequest{Title: "t3", ListID: &work.ID}),
	}

	if err := svc.Delete(context.Background(), userID, work.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The list is gone and every task moved to the default list; none lost.
	if _, err := svc.Get(context.Background(), userID, work.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("deleted list still resolvable: %v", err)
	}
	for _, task := range created {
		got, err := tasks.Get(context.Background(), userID, task.ID)
		if err != nil {
			t.Fatalf("task %s lost after list delete: %v", task.ID, err)
		}
		if got.ListID != defaultList.ID {
			t.Errorf("task %s in list %s, want default %s", task.ID, got.ListID, defaultList.ID)
		}
	}

	page, err := tasks.List(context.Background(), userID, store.TaskFilter{}, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalElements != 3 {
		t.Errorf("task count not conserved: got %d, want 3", page.TotalElements)
	}
}

func TestDeleteListOwnership(t *testing.T) {
	mem := newMemory()
	aliceID, _ := newUser(t, mem, "alice@x.com")
	bobID, _ := newUser(t, mem, "bob@x.com")
	svc := NewLists(mem)

	work, err := svc.Create(context.Background(), aliceID, models.TaskListRequest{Name: "Work"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), bobID, work.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("foreign delete: got %v, want forbidden", err)
	}
	if err := svc.Delete(context.Background(), aliceID, uuid.New()); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing delete: got %v, want not found", err)
	}
}
