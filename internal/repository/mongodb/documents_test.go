package mongodb

import (
	"testing"
	"time"

	"taskBoard/internal/models/project"
	"taskBoard/internal/models/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskDocument_OptionalFields(t *testing.T) {
	assignee := uuid.New()
	due := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	tk := task.New(uuid.New(), uuid.New(), "title", task.WithAssignee(&assignee), task.WithDueDate(&due))
	tk.Comments = []uuid.UUID{uuid.New()}

	doc := toTaskDocument(tk)
	assert.Equal(t, assignee.String(), *doc.AssignedTo)
	assert.Len(t, doc.CommentIDs, 1)

	back := doc.model()
	assert.Equal(t, tk.ID, back.ID)
	assert.Equal(t, assignee, *back.AssignedTo)
	assert.Equal(t, tk.Comments, back.Comments)

	tk.AssignedTo = nil
	tk.Tags = nil
	doc = toTaskDocument(tk)
	assert.Nil(t, doc.AssignedTo)
	assert.NotNil(t, doc.Tags)
}

func TestProjectDocument_Members(t *testing.T) {
	p := &project.Project{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Members: []project.Member{{UserID: uuid.New(), Role: project.RoleAdmin}},
		TaskSeq: 3,
	}

	back := toProjectDocument(p).model()
	assert.Equal(t, p.Members[0].UserID, back.Members[0].UserID)
	assert.Equal(t, project.RoleAdmin, back.Members[0].Role)
	assert.Equal(t, 3, back.TaskSeq)

	p.Members = nil
	assert.NotNil(t, toProjectDocument(p).Members)
}

func TestParseID_Malformed(t *testing.T) {
	assert.Equal(t, uuid.Nil, parseID("not-a-uuid"))
	assert.Nil(t, parseIDPtr(nil))
}
