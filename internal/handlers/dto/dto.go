package dto

import (
	"encoding/json"
	"strings"
	"time"

	"taskBoard/internal/models/comment"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"

	"github.com/google/uuid"
)

// StatusAliasCompleted - старое имя финального статуса, принимается на входе
const StatusAliasCompleted = "completed"

// ParseStatus переводит статус из запроса в каноническое значение.
// Проверку допустимости делает сервис.
func ParseStatus(raw string) task.Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == StatusAliasCompleted {
		return task.StatusDone
	}
	return task.Status(s)
}

// OptionalID различает отсутствующее поле, null и значение
type OptionalID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// OptionalTime - то же для дат: null очищает значение
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type CreateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Color       string     `json:"color"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Color       *string    `json:"color,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type AddMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type MemberResponse struct {
	UserID   uuid.UUID `json:"user"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type ProjectResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Owner       uuid.UUID        `json:"owner"`
	Members     []MemberResponse `json:"members"`
	Color       string           `json:"color"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

func FromProject(p *project.Project) ProjectResponse {
	members := make([]MemberResponse, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, MemberResponse{UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt})
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Owner:       p.OwnerID,
		Members:     members,
		Color:       p.Color,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProjectList(projects []*project.Project) []ProjectResponse {
	result := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		result[i] = FromProject(p)
	}
	return result
}

type CreateTaskRequest struct {
	Project     uuid.UUID  `json:"project"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
}

type UpdateTaskRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Status      *string      `json:"status,omitempty"`
	Priority    *string      `json:"priority,omitempty"`
	AssignedTo  OptionalID   `json:"assigned_to"`
	DueDate     OptionalTime `json:"due_date"`
	Tags        *[]string    `json:"tags,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdatePositionRequest struct {
	Position *int    `json:"position"`
	Status   *string `json:"status,omitempty"`
}

type TaskResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Project     uuid.UUID   `json:"project"`
	Status      string      `json:"status"`
	Priority    string      `json:"priority"`
	AssignedTo  *uuid.UUID  `json:"assigned_to"`
	CreatedBy   uuid.UUID   `json:"created_by"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Position    int         `json:"position"`
	Tags        []string    `json:"tags"`
	Comments    []uuid.UUID `json:"comments"`
	IsOverdue   bool        `json:"is_overdue"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

func FromTask(t *task.Task) TaskResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	comments := t.Comments
	if comments == nil {
		comments = []uuid.UUID{}
	}
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Project:     t.ProjectID,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		DueDate:     t.DueDate,
		Position:    t.Position,
		Tags:        tags,
		Comments:    comments,
		IsOverdue:   t.Status != task.StatusDone && t.DueDate != nil && t.DueDate.Before(time.Now()),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

type CreateCommentRequest struct {
	Task          uuid.UUID  `json:"task"`
	Content       string     `json:"content"`
	ParentComment *uuid.UUID `json:"parent_comment,omitempty"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID            uuid.UUID  `json:"id"`
	Content       string     `json:"content"`
	Task          uuid.UUID  `json:"task"`
	Author        uuid.UUID  `json:"author"`
	ParentComment *uuid.UUID `json:"parent_comment,omitempty"`
	IsEdited      bool       `json:"is_edited"`
	EditedAt      *time.Time `json:"edited_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func FromComment(c *comment.Comment) CommentResponse {
	return CommentResponse{
		ID:            c.ID,
		Content:       c.Content,
		Task:          c.TaskID,
		Author:        c.AuthorID,
		ParentComment: c.ParentComment,
		IsEdited:      c.IsEdited,
		EditedAt:      c.EditedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromCommentList(comments []*comment.Comment) []CommentResponse {
	result := make([]CommentResponse, len(comments))
	for i, c := range comments {
		result[i] = FromComment(c)
	}
	return result
}
