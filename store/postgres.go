package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shuaizuo666/Task-System/models"
)

const uniqueViolation = "23505"

// Postgres implements Store over database/sql with the pgx stdlib driver.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (p *Postgres) CreateUser(ctx context.Context, user *models.User, defaultListName string) (*models.TaskList, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user.ID = uuid.New()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (id, username, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		user.ID, user.Username, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	list := &models.TaskList{
		ID:        uuid.New(),
		Name:      defaultListName,
		UserID:    user.ID,
		IsDefault: true,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO task_lists (id, name, user_id, is_default)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		list.ID, list.Name, list.UserID, list.IsDefault,
	).Scan(&list.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE email = $1`, email))
}

func (p *Postgres) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at
		 FROM users WHERE id = $1`, id))
}

func (p *Postgres) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) CreateList(ctx context.Context, list *models.TaskList) error {
	list.ID = uuid.New()
	return p.db.QueryRowContext(ctx,
		`INSERT INTO task_lists (id, name, user_id, is_default)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		list.ID, list.Name, list.UserID, list.IsDefault,
	).Scan(&list.CreatedAt)
}

func (p *Postgres) ListByID(ctx context.Context, id uuid.UUID) (*models.TaskList, error) {
	return p.scanList(p.db.QueryRowContext(ctx,
		`SELECT id, name, user_id, is_default, created_at
		 FROM task_lists WHERE id = $1`, id))
}

func (p *Postgres) DefaultList(ctx context.Context, owner uuid.UUID) (*models.TaskList, error) {
	return p.scanList(p.db.QueryRowContext(ctx,
		`SELECT id, name, user_id, is_default, created_at
		 FROM task_lists WHERE user_id = $1 AND is_default`, owner))
}

func (p *Postgres) scanList(row *sql.Row) (*models.TaskList, error) {
	var l models.TaskList
	err := row.Scan(&l.ID, &l.Name, &l.UserID, &l.IsDefault, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (p *Postgres) ListsByOwner(ctx context.Context, owner uuid.UUID) ([]models.TaskListWithCount, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT l.id, l.name, l.user_id, l.is_default, l.created_at,
		        COUNT(t.id)
		 FROM task_lists l
		 LEFT JOIN tasks t ON t.list_id = l.id
		 WHERE l.user_id = $1
		 GROUP BY l.id
		 ORDER BY l.created_at, l.id`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.TaskListWithCount{}
	for rows.Next() {
		var l models.TaskListWithCount
		if err := rows.Scan(&l.ID, &l.Name, &l.UserID, &l.IsDefault, &l.CreatedAt, &l.TaskCount); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (p *Postgres) RenameList(ctx context.Context, id uuid.UUID, name string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE task_lists SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *Postgres) DeleteListAndReassign(ctx context.Context, listID, targetID uuid.UUID) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE tasks SET list_id = $1, updated_at = NOW() WHERE list_id = $2`,
		targetID, listID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM task_lists WHERE id = $1`, listID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *Postgres) CreateTask(ctx context.Context, task *models.Task) error {
	task.ID = uuid.New()
	return p.db.QueryRowContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, user_id, list_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		dueDateValue(task.DueDate), task.UserID, task.ListID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (p *Postgres) TaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
		        t.user_id, t.list_id, l.name, t.created_at, t.updated_at
		 FROM tasks t JOIN task_lists l ON l.id = t.list_id
		 WHERE t.id = $1`, id)

	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (p *Postgres) UpdateTask(ctx context.Context, task *models.Task) error {
	err := p.db.QueryRowContext(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, status = $3, priority = $4,
		     due_date = $5, list_id = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING updated_at`,
		task.Title, task.Description, task.Status, task.Priority,
		dueDateValue(task.DueDate), task.ListID, task.ID,
	).Scan(&task.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

func (p *Postgres) DeleteTask(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (p *Postgres) Tasks(ctx context.Context, owner uuid.UUID, filter TaskFilter, page, size int) ([]models.Task, int64, error) {
	where := "t.user_id = $1"
	args := []any{owner}

	switch {
	case filter.ListID != nil:
		where += " AND t.list_id = $2"
		args = append(args, *filter.ListID)
	case filter.Search != "":
		where += " AND (t.title ILIKE $2 OR t.description ILIKE $2)"
		args = append(args, "%"+filter.Search+"%")
	case filter.Status != nil:
		where += " AND t.status = $2"
		args = append(args, *filter.Status)
	case filter.Priority != nil:
		where += " AND t.priority = $2"
		args = append(args, *filter.Priority)
	}

	var total int64
	err := p.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks t WHERE "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		`SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
		        t.user_id, t.list_id, l.name, t.created_at, t.updated_at
		 FROM tasks t JOIN task_lists l ON l.id = t.list_id
		 WHERE %s
		 ORDER BY t.created_at DESC, t.id DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, size, page*size)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, total, rows.Err()
}

func (p *Postgres) CountTasks(ctx context.Context, owner uuid.UUID) (int64, error) {
	return p.count(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1`, owner)
}

func (p *Postgres) CountTasksByStatus(ctx context.Context, owner uuid.UUID, status models.TaskStatus) (int64, error) {
	return p.count(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = $2`, owner, status)
}

func (p *Postgres) CountTasksDueOn(ctx context.Context, owner uuid.UUID, day models.Date) (int64, error) {
	return p.count(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND due_date = $2`, owner, day)
}

func (p *Postgres) CountTasksOverdue(ctx context.Context, owner uuid.UUID, day models.Date) (int64, error) {
	return p.count(ctx,
		`SELECT COUNT(*) FROM tasks
		 WHERE user_id = $1 AND due_date < $2 AND status <> $3`,
		owner, day, models.StatusCompleted)
}

func (p *Postgres) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := p.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func scanTask(scan func(...any) error) (*models.Task, error) {
	var t models.Task
	var due sql.NullTime
	err := scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&due, &t.UserID, &t.ListID, &t.ListName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		d := models.DateOf(due.Time)
		t.DueDate = &d
	}
	return &t, nil
}

func dueDateValue(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
