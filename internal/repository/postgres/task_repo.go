package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskBoard/internal/models/task"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	pool *pgxpool.Pool
}

const taskColumns = `id, title, description, project_id, status, priority, assigned_to,
				created_by, due_date, position, tags, comment_ids, created_at, updated_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.ProjectID,
		&t.Status,
		&t.Priority,
		&t.AssignedTo,
		&t.CreatedBy,
		&t.DueDate,
		&t.Position,
		&t.Tags,
		&t.Comments,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Comments == nil {
		t.Comments = []uuid.UUID{}
	}
	return t, err
}

func tags(t *task.Task) []string {
	if t.Tags == nil {
		return []string{}
	}
	return t.Tags
}

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer warnIfSlow("создание задачи", start)

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	comments := t.Comments
	if comments == nil {
		comments = []uuid.UUID{}
	}

	query := `INSERT INTO tasks
				(id, title, description, project_id, status, priority, assigned_to,
				 created_by, due_date, position, tags, comment_ids, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.ProjectID,
		t.Status,
		t.Priority,
		t.AssignedTo,
		t.CreatedBy,
		t.DueDate,
		t.Position,
		tags(t),
		comments,
		t.CreatedAt,
	)
	if err != nil {
		return translate("добавление задачи", err)
	}
	return nil
}

// Update перезаписывает поля задачи целиком, comment_ids меняются только
// через AttachComment/DetachComment. Версий нет, побеждает последняя запись.
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	start := time.Now()
	defer warnIfSlow("обновление задачи", start)

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				priority = $4,
				assigned_to = $5,
				due_date = $6,
				position = $7,
				tags = $8,
				updated_at = NOW()
			WHERE id = $9
			RETURNING updated_at, comment_ids`

	err := r.pool.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.AssignedTo,
		t.DueDate,
		t.Position,
		tags(t),
		t.ID,
	).Scan(&t.UpdatedAt, &t.Comments)
	if err != nil {
		return translate("обновление задачи", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("получение задачи", start)

	t, err := scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение задачи", err)
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("удаление задачи", start)

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return translate("удаление задачи", err)
	}
	return expectRow(tag)
}

// задачи проекта по позиции, при равной позиции новые первыми
func (r *TaskRepository) List(ctx context.Context, filter service.TaskFilter) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow("получение задач проекта", start)

	conditions := []string{"project_id = $1"}
	args := []any{filter.ProjectID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE ` + strings.Join(conditions, " AND ") + `
				ORDER BY position ASC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate("получение задач", err)
	}
	return collectRows(rows, "получение задач", scanTask)
}

func (r *TaskRepository) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	start := time.Now()
	defer warnIfSlow("максимальная позиция", start)

	var maxPos int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM tasks WHERE project_id = $1`, projectID).Scan(&maxPos)
	if err != nil {
		return 0, translate("максимальная позиция", err)
	}
	return maxPos, nil
}

func (r *TaskRepository) AttachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("привязка комментария", start)

	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks
			SET comment_ids = CASE
				WHEN $2::uuid = ANY(comment_ids) THEN comment_ids
				ELSE array_append(comment_ids, $2::uuid)
			END
			WHERE id = $1`, taskID, commentID)
	if err != nil {
		return translate("привязка комментария", err)
	}
	return expectRow(tag)
}

func (r *TaskRepository) DetachComment(ctx context.Context, taskID, commentID uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("отвязка комментария", start)

	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET comment_ids = array_remove(comment_ids, $2::uuid) WHERE id = $1`, taskID, commentID)
	if err != nil {
		return translate("отвязка комментария", err)
	}
	return expectRow(tag)
}

var _ service.TaskRepository = (*TaskRepository)(nil)
