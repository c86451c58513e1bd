package postgres

import (
	"context"
	"time"

	"taskBoard/internal/models/comment"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

const commentColumns = `id, content, task_id, author_id, parent_comment, is_edited, edited_at, created_at, updated_at`

func scanComment(row pgx.Row) (*comment.Comment, error) {
	c := &comment.Comment{}
	err := row.Scan(
		&c.ID,
		&c.Content,
		&c.TaskID,
		&c.AuthorID,
		&c.ParentComment,
		&c.IsEdited,
		&c.EditedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	start := time.Now()
	defer warnIfSlow("создание комментария", start)

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	query := `INSERT INTO comments
				(id, content, task_id, author_id, parent_comment, is_edited, edited_at, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Content,
		c.TaskID,
		c.AuthorID,
		c.ParentComment,
		c.IsEdited,
		c.EditedAt,
		c.CreatedAt,
	)
	if err != nil {
		return translate("добавление комментария", err)
	}
	return nil
}

func (r *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	start := time.Now()
	defer warnIfSlow("обновление комментария", start)

	query := `UPDATE comments
			SET content = $1,
				is_edited = $2,
				edited_at = $3,
				updated_at = NOW()
			WHERE id = $4
			RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		c.Content,
		c.IsEdited,
		c.EditedAt,
		c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return translate("обновление комментария", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	start := time.Now()
	defer warnIfSlow("получение комментария", start)

	c, err := scanComment(r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение комментария", err)
	}
	return c, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("удаление комментария", start)

	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return translate("удаление комментария", err)
	}
	return expectRow(tag)
}

// комментарии задачи от старых к новым
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*comment.Comment, error) {
	start := time.Now()
	defer warnIfSlow("получение комментариев", start)

	query := `SELECT ` + commentColumns + `
				FROM comments
				WHERE task_id = $1
				ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, translate("получение комментариев", err)
	}
	return collectRows(rows, "получение комментариев", scanComment)
}

var _ service.CommentRepository = (*CommentRepository)(nil)
