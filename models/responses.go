package models

import "github.com/google/uuid"

type AuthResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// TaskPage is one page of a user's tasks, newest first.
type TaskPage struct {
	Items         []Task `json:"items"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int64  `json:"total_elements"`
	TotalPages    int    `json:"total_pages"`
}

type DashboardStats struct {
	TotalTasks      int64 `json:"total_tasks"`
	TodoCount       int64 `json:"todo_count"`
	InProgressCount int64 `json:"in_progress_count"`
	CompletedCount  int64 `json:"completed_count"`
	DueTodayCount   int64 `json:"due_today_count"`
	OverdueCount    int64 `json:"overdue_count"`
}
