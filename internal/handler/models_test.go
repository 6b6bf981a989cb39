package handler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bagdasarian/task-groups/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadline_UnmarshalJSON(t *testing.T) {
	t.Run("поле отсутствует", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x"}`), &req))

		assert.False(t, req.Deadline.Set)
		assert.True(t, httpUpdateTaskToDomain(req).Deadline == nil)
		assert.False(t, httpUpdateTaskToDomain(req).ClearDeadline)
	})

	t.Run("явный null сбрасывает срок", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"deadline":null}`), &req))

		assert.True(t, req.Deadline.Set)
		assert.False(t, req.Deadline.Valid)
		assert.True(t, httpUpdateTaskToDomain(req).ClearDeadline)
	})

	t.Run("дата", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"deadline":"2030-05-01"}`), &req))

		update := httpUpdateTaskToDomain(req)
		require.NotNil(t, update.Deadline)
		assert.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), *update.Deadline)
		assert.False(t, update.ClearDeadline)
	})

	t.Run("RFC 3339", func(t *testing.T) {
		var d Deadline
		require.NoError(t, json.Unmarshal([]byte(`"2030-05-01T12:00:00Z"`), &d))

		assert.True(t, d.Valid)
		assert.Equal(t, 12, d.Time.Hour())
	})

	t.Run("ошибка: неизвестный формат", func(t *testing.T) {
		var d Deadline
		err := json.Unmarshal([]byte(`"01.05.2030"`), &d)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ошибка: не строка", func(t *testing.T) {
		var d Deadline
		err := json.Unmarshal([]byte(`20300501`), &d)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestHTTPCreateTaskToDomain(t *testing.T) {
	description, status, groupID := "notes", "inprogress", int64(3)
	req := CreateTaskRequest{
		Title:       "Deploy",
		Description: &description,
		Status:      &status,
		GroupID:     &groupID,
	}

	task := httpCreateTaskToDomain(req, 7)

	assert.Equal(t, "Deploy", task.Title)
	assert.Equal(t, "notes", task.Description)
	assert.Equal(t, domain.StatusInProgress, task.Status)
	assert.Equal(t, int64(7), task.CreatorID)
	assert.Equal(t, &groupID, task.GroupID)
	assert.Nil(t, task.Deadline)
}
