package inmemory

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models/comment"
	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"
	"taskBoard/internal/models/user"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Seed - демо-данные для запуска без базы. Пользователи указываются по email,
// проекты по имени.
type Seed struct {
	Users    []SeedUser    `yaml:"users"`
	Projects []SeedProject `yaml:"projects"`
	Tasks    []SeedTask    `yaml:"tasks"`
}

type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Inactive bool   `yaml:"inactive"`
}

type SeedProject struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Status      string       `yaml:"status"`
	Color       string       `yaml:"color"`
	Owner       string       `yaml:"owner"`
	Members     []SeedMember `yaml:"members"`
}

type SeedMember struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type SeedTask struct {
	Project     string        `yaml:"project"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Status      string        `yaml:"status"`
	Priority    string        `yaml:"priority"`
	CreatedBy   string        `yaml:"created_by"`
	AssignedTo  string        `yaml:"assigned_to"`
	Tags        []string      `yaml:"tags"`
	Comments    []SeedComment `yaml:"comments"`
}

type SeedComment struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("разбор файла демо-данных: %w", err)
	}
	return &seed, nil
}

func LoadSeedFile(ctx context.Context, store *Store, path string, hasher service.PasswordHasher) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("чтение файла демо-данных: %w", err)
	}
	seed, err := ParseSeed(data)
	if err != nil {
		return err
	}
	return store.Apply(ctx, seed, hasher)
}

// Apply записывает демо-данные в хранилище, ссылки проверяются до записи задач
func (s *Store) Apply(ctx context.Context, seed *Seed, hasher service.PasswordHasher) error {
	now := time.Now()
	users := map[string]uuid.UUID{}
	projects := map[string]*project.Project{}

	for _, su := range seed.Users {
		hash, err := hasher.Hash(su.Password)
		if err != nil {
			return err
		}
		role := user.Role(su.Role)
		if role == "" {
			role = user.RoleUser
		}
		if !role.Valid() {
			return fmt.Errorf("пользователь %s: неизвестная роль %q", su.Email, su.Role)
		}
		u := &user.User{
			ID:           uuid.New(),
			Name:         su.Name,
			Email:        strings.ToLower(strings.TrimSpace(su.Email)),
			PasswordHash: hash,
			Role:         role,
			IsActive:     !su.Inactive,
			CreatedAt:    now,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return fmt.Errorf("пользователь %s: %w", su.Email, err)
		}
		users[u.Email] = u.ID
	}

	lookup := func(email string) (uuid.UUID, error) {
		id, ok := users[strings.ToLower(strings.TrimSpace(email))]
		if !ok {
			return uuid.Nil, fmt.Errorf("неизвестный пользователь %q", email)
		}
		return id, nil
	}

	for _, sp := range seed.Projects {
		owner, err := lookup(sp.Owner)
		if err != nil {
			return fmt.Errorf("проект %s: %w", sp.Name, err)
		}
		p := &project.Project{
			ID:          uuid.New(),
			Name:        sp.Name,
			Description: sp.Description,
			Status:      project.Status(sp.Status),
			OwnerID:     owner,
			Members:     []project.Member{},
			Color:       sp.Color,
			CreatedAt:   now,
		}
		if p.Status == "" {
			p.Status = project.StatusPlanning
		}
		if p.Color == "" {
			p.Color = project.DefaultColor
		}
		for _, sm := range sp.Members {
			id, err := lookup(sm.Email)
			if err != nil {
				return fmt.Errorf("проект %s: %w", sp.Name, err)
			}
			role := project.MemberRole(sm.Role)
			if role == "" {
				role = project.RoleMember
			}
			p.Members = append(p.Members, project.Member{UserID: id, Role: role, JoinedAt: now})
		}
		if err := s.projects.Create(ctx, p); err != nil {
			return fmt.Errorf("проект %s: %w", sp.Name, err)
		}
		projects[p.Name] = p
	}

	positions := map[uuid.UUID]int{}
	for _, st := range seed.Tasks {
		p, ok := projects[st.Project]
		if !ok {
			return fmt.Errorf("задача %s: неизвестный проект %q", st.Title, st.Project)
		}
		creator, err := lookup(st.CreatedBy)
		if err != nil {
			return fmt.Errorf("задача %s: %w", st.Title, err)
		}

		var assignee *uuid.UUID
		if st.AssignedTo != "" {
			id, err := lookup(st.AssignedTo)
			if err != nil {
				return fmt.Errorf("задача %s: %w", st.Title, err)
			}
			assignee = &id
		}

		t := task.New(p.ID, creator, st.Title,
			task.WithDescription(st.Description),
			task.WithStatus(task.Status(st.Status)),
			task.WithPriority(task.Priority(st.Priority)),
			task.WithAssignee(assignee),
			task.WithTags(st.Tags),
			task.WithPosition(positions[p.ID]),
		)
		if !t.Status.Valid() || !t.Priority.Valid() {
			return fmt.Errorf("задача %s: неверный статус или приоритет", st.Title)
		}
		t.CreatedAt = now
		positions[p.ID]++

		for _, sc := range st.Comments {
			author, err := lookup(sc.Author)
			if err != nil {
				return fmt.Errorf("комментарий к %s: %w", st.Title, err)
			}
			c := &comment.Comment{
				ID:        uuid.New(),
				Content:   sc.Content,
				TaskID:    t.ID,
				AuthorID:  author,
				CreatedAt: now,
			}
			if err := s.comments.Create(ctx, c); err != nil {
				return err
			}
			t.Comments = append(t.Comments, c.ID)
		}

		if err := s.tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("задача %s: %w", st.Title, err)
		}
		if err := s.projects.BumpTaskSeq(ctx, p.ID, positions[p.ID]); err != nil {
			return err
		}
	}

	logger.Info("Repository: Демо-данные загружены",
		zap.Int("users", len(seed.Users)),
		zap.Int("projects", len(seed.Projects)),
		zap.Int("tasks", len(seed.Tasks)))
	return nil
}
