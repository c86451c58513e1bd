package mongodb

import (
	"time"

	"taskBoard/internal/models/comment"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"

	"github.com/google/uuid"
)

// идентификаторы хранятся строками, чтобы документы читались в mongosh как есть

type userDocument struct {
	ID           string     `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	Role         string     `bson:"role"`
	IsActive     bool       `bson:"is_active"`
	CreatedAt    time.Time  `bson:"created_at"`
	UpdatedAt    *time.Time `bson:"updated_at,omitempty"`
}

type memberDocument struct {
	UserID   string    `bson:"user_id"`
	Role     string    `bson:"role"`
	JoinedAt time.Time `bson:"joined_at"`
}

type projectDocument struct {
	ID          string           `bson:"_id"`
	Name        string           `bson:"name"`
	Description string           `bson:"description"`
	Status      string           `bson:"status"`
	OwnerID     string           `bson:"owner_id"`
	Members     []memberDocument `bson:"members"`
	Color       string           `bson:"color"`
	StartDate   *time.Time       `bson:"start_date,omitempty"`
	EndDate     *time.Time       `bson:"end_date,omitempty"`
	TaskSeq     int              `bson:"task_seq"`
	CreatedAt   time.Time        `bson:"created_at"`
	UpdatedAt   *time.Time       `bson:"updated_at,omitempty"`
}

type taskDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	ProjectID   string     `bson:"project_id"`
	Status      string     `bson:"status"`
	Priority    string     `bson:"priority"`
	AssignedTo  *string    `bson:"assigned_to,omitempty"`
	CreatedBy   string     `bson:"created_by"`
	DueDate     *time.Time `bson:"due_date,omitempty"`
	Position    int        `bson:"position"`
	Tags        []string   `bson:"tags"`
	CommentIDs  []string   `bson:"comment_ids"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty"`
}

type commentDocument struct {
	ID            string     `bson:"_id"`
	Content       string     `bson:"content"`
	TaskID        string     `bson:"task_id"`
	AuthorID      string     `bson:"author_id"`
	ParentComment *string    `bson:"parent_comment,omitempty"`
	IsEdited      bool       `bson:"is_edited"`
	EditedAt      *time.Time `bson:"edited_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     *time.Time `bson:"updated_at,omitempty"`
}

// битый идентификатор в базе превращается в uuid.Nil, а не в ошибку чтения
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func idPtr(id *uuid.UUID) *string {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseIDPtr(s *string) *uuid.UUID {
	if s == nil {
		return nil
	}
	id := parseID(*s)
	return &id
}

func toUserDocument(u *user.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDocument) model() *user.User {
	return &user.User{
		ID:           parseID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         user.Role(d.Role),
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toMemberDocuments(members []project.Member) []memberDocument {
	docs := make([]memberDocument, 0, len(members))
	for _, m := range members {
		docs = append(docs, memberDocument{
			UserID:   m.UserID.String(),
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return docs
}

func toProjectDocument(p *project.Project) projectDocument {
	return projectDocument{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		OwnerID:     p.OwnerID.String(),
		Members:     toMemberDocuments(p.Members),
		Color:       p.Color,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		TaskSeq:     p.TaskSeq,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d projectDocument) model() *project.Project {
	members := make([]project.Member, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, project.Member{
			UserID:   parseID(m.UserID),
			Role:     project.MemberRole(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}
	return &project.Project{
		ID:          parseID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Status:      project.Status(d.Status),
		OwnerID:     parseID(d.OwnerID),
		Members:     members,
		Color:       d.Color,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		TaskSeq:     d.TaskSeq,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toTaskDocument(t *task.Task) taskDocument {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	commentIDs := make([]string, 0, len(t.Comments))
	for _, id := range t.Comments {
		commentIDs = append(commentIDs, id.String())
	}
	return taskDocument{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID.String(),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		AssignedTo:  idPtr(t.AssignedTo),
		CreatedBy:   t.CreatedBy.String(),
		DueDate:     t.DueDate,
		Position:    t.Position,
		Tags:        tags,
		CommentIDs:  commentIDs,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d taskDocument) model() *task.Task {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &task.Task{
		ID:          parseID(d.ID),
		Title:       d.Title,
		Description: d.Description,
		ProjectID:   parseID(d.ProjectID),
		Status:      task.Status(d.Status),
		Priority:    task.Priority(d.Priority),
		AssignedTo:  parseIDPtr(d.AssignedTo),
		CreatedBy:   parseID(d.CreatedBy),
		DueDate:     d.DueDate,
		Position:    d.Position,
		Tags:        tags,
		Comments:    parseIDs(d.CommentIDs),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func parseIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		out = append(out, parseID(s))
	}
	return out
}

func toCommentDocument(c *comment.Comment) commentDocument {
	return commentDocument{
		ID:            c.ID.String(),
		Content:       c.Content,
		TaskID:        c.TaskID.String(),
		AuthorID:      c.AuthorID.String(),
		ParentComment: idPtr(c.ParentComment),
		IsEdited:      c.IsEdited,
		EditedAt:      c.EditedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (d commentDocument) model() *comment.Comment {
	return &comment.Comment{
		ID:            parseID(d.ID),
		Content:       d.Content,
		TaskID:        parseID(d.TaskID),
		AuthorID:      parseID(d.AuthorID),
		ParentComment: parseIDPtr(d.ParentComment),
		IsEdited:      d.IsEdited,
		EditedAt:      d.EditedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
