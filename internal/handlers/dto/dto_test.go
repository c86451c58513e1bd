package dto_test

import (
	"encoding/json"
	"testing"

	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/models/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want task.Status
	}{
		{"completed", task.StatusDone},
		{" Completed ", task.StatusDone},
		{"done", task.StatusDone},
		{"in-progress", task.StatusInProgress},
		{"blocked", task.Status("blocked")},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.ParseStatus(tt.raw))
		})
	}
}

func TestUpdateTaskRequest_OptionalFields(t *testing.T) {
	var absent dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &absent))
	assert.False(t, absent.AssignedTo.Set)
	assert.False(t, absent.DueDate.Set)

	var cleared dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to":null,"due_date":null}`), &cleared))
	assert.True(t, cleared.AssignedTo.Set)
	assert.Nil(t, cleared.AssignedTo.Value)
	assert.True(t, cleared.DueDate.Set)
	assert.Nil(t, cleared.DueDate.Value)

	var set dto.UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to":"6f1c1c4e-9f77-4b9b-8f7d-1f2e3d4c5b6a","due_date":"2030-01-02T00:00:00Z"}`), &set))
	require.NotNil(t, set.AssignedTo.Value)
	assert.Equal(t, "6f1c1c4e-9f77-4b9b-8f7d-1f2e3d4c5b6a", set.AssignedTo.Value.String())
	require.NotNil(t, set.DueDate.Value)
	assert.Equal(t, 2030, set.DueDate.Value.Year())

	var bad dto.UpdateTaskRequest
	assert.Error(t, json.Unmarshal([]byte(`{"assigned_to":"nope"}`), &bad))
}

func TestFromTask_EmitsCanonicalStatus(t *testing.T) {
	tk := &task.Task{Status: dto.ParseStatus("completed")}
	resp := dto.FromTask(tk)
	assert.Equal(t, "done", resp.Status)
	assert.NotNil(t, resp.Tags)
	assert.NotNil(t, resp.Comments)
}
