package postgres

import (
	"context"
	"time"

	"taskBoard/internal/models/project"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// участники хранятся в jsonb-колонке members рядом с проектом
type ProjectRepository struct {
	pool *pgxpool.Pool
}

const projectColumns = `id, name, description, status, owner_id, members, color,
				start_date, end_date, task_seq, created_at, updated_at`

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.OwnerID,
		&p.Members,
		&p.Color,
		&p.StartDate,
		&p.EndDate,
		&p.TaskSeq,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if p.Members == nil {
		p.Members = []project.Member{}
	}
	return p, err
}

func members(p *project.Project) []project.Member {
	if p.Members == nil {
		return []project.Member{}
	}
	return p.Members
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	start := time.Now()
	defer warnIfSlow("создание проекта", start)

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	query := `INSERT INTO projects
				(id, name, description, status, owner_id, members, color, start_date, end_date, task_seq, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Status,
		p.OwnerID,
		members(p),
		p.Color,
		p.StartDate,
		p.EndDate,
		p.TaskSeq,
		p.CreatedAt,
	)
	if err != nil {
		return translate("добавление проекта", err)
	}
	return nil
}

// Update не трогает task_seq, его двигает только BumpTaskSeq
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	start := time.Now()
	defer warnIfSlow("обновление проекта", start)

	query := `UPDATE projects
			SET name = $1,
				description = $2,
				status = $3,
				members = $4,
				color = $5,
				start_date = $6,
				end_date = $7,
				updated_at = NOW()
			WHERE id = $8
			RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Status,
		members(p),
		p.Color,
		p.StartDate,
		p.EndDate,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return translate("обновление проекта", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	start := time.Now()
	defer warnIfSlow("получение проекта", start)

	p, err := scanProject(r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение проекта", err)
	}
	return p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnIfSlow("удаление проекта", start)

	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return translate("удаление проекта", err)
	}
	return expectRow(tag)
}

// проекты, где пользователь владелец или участник, новые первыми
func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*project.Project, error) {
	start := time.Now()
	defer warnIfSlow("получение проектов пользователя", start)

	query := `SELECT ` + projectColumns + `
				FROM projects
				WHERE owner_id = $1
					OR members @> jsonb_build_array(jsonb_build_object('user', $2::text))
				ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, userID.String())
	if err != nil {
		return nil, translate("получение проектов", err)
	}
	return collectRows(rows, "получение проектов", scanProject)
}

// BumpTaskSeq поднимает счётчик позиций, но никогда не опускает его
func (r *ProjectRepository) BumpTaskSeq(ctx context.Context, id uuid.UUID, next int) error {
	start := time.Now()
	defer warnIfSlow("резервирование позиции", start)

	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET task_seq = GREATEST(task_seq, $1) WHERE id = $2`, next, id)
	if err != nil {
		return translate("резервирование позиции", err)
	}
	return expectRow(tag)
}

var _ service.ProjectRepository = (*ProjectRepository)(nil)
