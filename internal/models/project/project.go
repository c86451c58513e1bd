package project

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	OwnerID     uuid.UUID  `json:"owner"`
	Members     []Member   `json:"members"`
	Color       string     `json:"color"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	// TaskSeq - следующая позиция, которая ещё не выдавалась задачам проекта
	TaskSeq   int        `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Member struct {
	UserID   uuid.UUID  `json:"user"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// статус проекта свободный, константы - значения, которые предлагает клиент
type Status string

const StatusPlanning Status = "planning"
const StatusActive Status = "active"
const StatusCompleted Status = "completed"

const DefaultColor = "#3B82F6"

type MemberRole string

const RoleAdmin MemberRole = "admin"
const RoleMember MemberRole = "member"

func (r MemberRole) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// запись участника проекта, если пользователь в списке
func (p *Project) Member(userID uuid.UUID) (Member, bool) {
	for _, m := range p.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// глубокая копия проекта
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Members = append([]Member(nil), p.Members...)
	out.StartDate = cloneTime(p.StartDate)
	out.EndDate = cloneTime(p.EndDate)
	out.UpdatedAt = cloneTime(p.UpdatedAt)
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
