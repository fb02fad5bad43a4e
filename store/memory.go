package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shuaizuo666/Task-System/models"
)

// Memory is a mutex-guarded in-memory Store. It backs the unit tests
// across packages, which is why it lives here rather than in a _test
// file. Now is swappable so tests can pin or step the clock.
type Memory struct {
	Now func() time.Time

	mu    sync.Mutex
	users map[uuid.UUID]models.User
	lists map[uuid.UUID]models.TaskList
	tasks map[uuid.UUID]models.Task
}

func NewMemory() *Memory {
	return &Memory{
		Now:   time.Now,
		users: make(map[uuid.UUID]models.User),
		lists: make(map[uuid.UUID]models.TaskList),
		tasks: make(map[uuid.UUID]models.Task),
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User, defaultListName string) (*models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = m.Now()
	m.users[user.ID] = *user

	list := models.TaskList{
		ID:        uuid.New(),
		Name:      defaultListName,
		UserID:    user.ID,
		IsDefault: true,
		CreatedAt: m.Now(),
	}
	m.lists[list.ID] = list
	return &list, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) CreateList(_ context.Context, list *models.TaskList) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list.ID = uuid.New()
	list.CreatedAt = m.Now()
	m.lists[list.ID] = *list
	return nil
}

func (m *Memory) ListByID(_ context.Context, id uuid.UUID) (*models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (m *Memory) ListsByOwner(_ context.Context, owner uuid.UUID) ([]models.TaskListWithCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lists := []models.TaskListWithCount{}
	for _, l := range m.lists {
		if l.UserID != owner {
			continue
		}
		count := int64(0)
		for _, t := range m.tasks {
			if t.ListID == l.ID {
				count++
			}
		}
		lists = append(lists, models.TaskListWithCount{TaskList: l, TaskCount: count})
	}
	sort.Slice(lists, func(i, j int) bool {
		if !lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].CreatedAt.Before(lists[j].CreatedAt)
		}
		return lists[i].ID.String() < lists[j].ID.String()
	})
	return lists, nil
}

func (m *Memory) DefaultList(_ context.Context, owner uuid.UUID) (*models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lists {
		if l.UserID == owner && l.IsDefault {
			list := l
			return &list, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) RenameList(_ context.Context, id uuid.UUID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lists[id]
	if !ok {
		return ErrNotFound
	}
	l.Name = name
	m.lists[id] = l
	return nil
}

func (m *Memory) DeleteListAndReassign(_ context.Context, listID, targetID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lists[listID]; !ok {
		return ErrNotFound
	}
	for id, t := range m.tasks {
		if t.ListID == listID {
			t.ListID = targetID
			t.UpdatedAt = m.Now()
			m.tasks[id] = t
		}
	}
	delete(m.lists, listID)
	return nil
}

func (m *Memory) CreateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	task.ID = uuid.New()
	task.CreatedAt = m.Now()
	task.UpdatedAt = task.CreatedAt
	m.tasks[task.ID] = *task
	return nil
}

func (m *Memory) TaskByID(_ context.Context, id uuid.UUID) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.ListName = m.lists[t.ListID].Name
	return &t, nil
}

func (m *Memory) UpdateTask(_ context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	task.UpdatedAt = m.Now()
	m.tasks[task.ID] = *task
	return nil
}

func (m *Memory) DeleteTask(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *Memory) Tasks(_ context.Context, owner uuid.UUID, filter TaskFilter, page, size int) ([]models.Task, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := []models.Task{}
	for _, t := range m.tasks {
		if t.UserID == owner && matches(t, filter) {
			t.ListName = m.lists[t.ListID].Name
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() > matched[j].ID.String()
	})

	total := int64(len(matched))
	start := page * size
	if start >= len(matched) {
		return []models.Task{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matches(t models.Task, filter TaskFilter) bool {
	switch {
	case filter.ListID != nil:
		return t.ListID == *filter.ListID
	case filter.Search != "":
		needle := strings.ToLower(filter.Search)
		return strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
	case filter.Status != nil:
		return t.Status == *filter.Status
	case filter.Priority != nil:
		return t.Priority == *filter.Priority
	}
	return true
}

func (m *Memory) CountTasks(_ context.Context, owner uuid.UUID) (int64, error) {
	return m.countWhere(owner, func(models.Task) bool { return true })
}

func (m *Memory) CountTasksByStatus(_ context.Context, owner uuid.UUID, status models.TaskStatus) (int64, error) {
	return m.countWhere(owner, func(t models.Task) bool { return t.Status == status })
}

func (m *Memory) CountTasksDueOn(_ context.Context, owner uuid.UUID, day models.Date) (int64, error) {
	return m.countWhere(owner, func(t models.Task) bool {
		return t.DueDate != nil && t.DueDate.Equal(day)
	})
}

func (m *Memory) CountTasksOverdue(_ context.Context, owner uuid.UUID, day models.Date) (int64, error) {
	return m.countWhere(owner, func(t models.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(day) && t.Status != models.StatusCompleted
	})
}

func (m *Memory) countWhere(owner uuid.UUID, pred func(models.Task) bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.tasks {
		if t.UserID == owner && pred(t) {
			n++
		}
	}
	return n, nil
}
