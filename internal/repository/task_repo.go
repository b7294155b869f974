package repository

import (
	"context"
	"strconv"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// parseID turns an opaque id string back into the stored key. Handlers
// only ever round-trip ids, so a malformed string behaves as not-found.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

const taskColumns = `id, category_name, task_name, task_description, is_urgent, due_date, created_by, created_at`

func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.CategoryName, &t.TaskName, &t.TaskDescription,
			&t.IsUrgent, &t.DueDate, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// List returns all tasks in storage order.
func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	n, ok := parseID(id)
	if !ok {
		return nil, pgx.ErrNoRows
	}

	row := r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, n)

	var t domain.Task
	if err := row.Scan(&t.ID, &t.CategoryName, &t.TaskName, &t.TaskDescription,
		&t.IsUrgent, &t.DueDate, &t.CreatedBy, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (category_name, task_name, task_description, is_urgent, due_date, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		t.CategoryName, t.TaskName, t.TaskDescription, t.IsUrgent, t.DueDate, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)
}

// Replace overwrites every field of the task at id. When nothing matches
// the id it is a silent no-op, mirroring the store's update semantics.
func (r *TaskRepository) Replace(ctx context.Context, id string, t *domain.Task) error {
	n, ok := parseID(id)
	if !ok {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET category_name = $1, task_name = $2, task_description = $3,
		     is_urgent = $4, due_date = $5, created_by = $6
		 WHERE id = $7`,
		t.CategoryName, t.TaskName, t.TaskDescription, t.IsUrgent, t.DueDate, t.CreatedBy, n,
	)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	n, ok := parseID(id)
	if !ok {
		return nil
	}

	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, n)
	return err
}

// Search runs a full-text query over the task text index. Matching
// semantics (case folding, stemming) are the store's; no matches is an
// empty result, not an error.
func (r *TaskRepository) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE search_vector @@ plainto_tsquery('english', $1)
		 ORDER BY id`,
		query,
	)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}
