package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"todoapp/internal/adapter/http/dto"
	"todoapp/internal/core/domain"
)

func decodeCreate(t *testing.T, body string) (dto.CreateTaskRequest, map[string]json.RawMessage) {
	t.Helper()
	var req dto.CreateTaskRequest
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return req, raw
}

func decodeUpdate(t *testing.T, body string) (dto.UpdateTaskRequest, map[string]json.RawMessage) {
	t.Helper()
	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return req, raw
}

func TestBuildCreateTaskInput(t *testing.T) {
	t.Run("blank title is rejected", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"   "}`)
		_, err := BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("title is trimmed", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"  buy milk  "}`)
		input, err := BuildCreateTaskInput(req, raw)
		require.NoError(t, err)
		require.Equal(t, "buy milk", input.Title)
	})

	t.Run("explicit null status is rejected", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"a","status":null}`)
		_, err := BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"a","status":"paused"}`)
		_, err := BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("malformed deadline is rejected", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"a","deadline":"tomorrow"}`)
		_, err := BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("recurrence interval below one is rejected", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"a","recurrence":{"enabled":true,"interval":0,"unit":"day"}}`)
		_, err := BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("reminder with unknown channel is rejected", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"a","reminder":{"enabled":true,"minutesBefore":15,"channels":["sms"]}}`)
		_, err := BuildCreateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("client lastNotifiedAt is discarded", func(t *testing.T) {
		req, raw := decodeCreate(t, `{"title":"a","reminder":{"enabled":true,"minutesBefore":15,"channels":["email"],"lastNotifiedAt":"2024-01-01T00:00:00Z"}}`)
		input, err := BuildCreateTaskInput(req, raw)
		require.NoError(t, err)
		require.NotNil(t, input.Reminder)
		require.Nil(t, input.Reminder.LastNotifiedAt)
	})

	t.Run("full payload maps through", func(t *testing.T) {
		req, raw := decodeCreate(t, `{
			"title":"ship release",
			"description":"cut the tag",
			"status":"in_progress",
			"deadline":"2024-06-01T10:00:00Z",
			"important":true,
			"tags":["work"],
			"order":2.5,
			"subtasks":[{"title":"changelog","completed":true}],
			"recurrence":{"enabled":true,"interval":2,"unit":"week","until":"2024-12-31T00:00:00Z"}
		}`)
		input, err := BuildCreateTaskInput(req, raw)
		require.NoError(t, err)
		require.Equal(t, "cut the tag", input.Description)
		require.Equal(t, domain.TaskStatusInProgress, *input.Status)
		require.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), input.Deadline.UTC())
		require.True(t, input.Important)
		require.Equal(t, 2.5, *input.Order)
		require.Equal(t, []domain.Subtask{{Title: "changelog", Completed: true}}, input.Subtasks)
		require.Equal(t, domain.RecurrenceUnitWeek, input.Recurrence.Unit)
		require.NotNil(t, input.Recurrence.Until)
	})
}

func TestBuildUpdateTaskInput(t *testing.T) {
	t.Run("empty patch is rejected", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{}`)
		_, err := BuildUpdateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("null title is rejected", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"title":null}`)
		_, err := BuildUpdateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("absent description leaves the field untouched", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"title":"new name"}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.False(t, input.DescriptionSet)
		require.False(t, input.DeadlineSet)
	})

	t.Run("null description clears it", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"description":null}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.DescriptionSet)
		require.Nil(t, input.Description)
	})

	t.Run("null deadline clears it", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"deadline":null}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.DeadlineSet)
		require.Nil(t, input.Deadline)
	})

	t.Run("deadline value is parsed", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"deadline":"2024-06-01T10:00:00Z"}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.DeadlineSet)
		require.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), input.Deadline.UTC())
	})

	t.Run("null completed is rejected", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"completed":null}`)
		_, err := BuildUpdateTaskInput(req, raw)
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("null recurrence disables it", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"recurrence":null}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.RecurrenceSet)
		require.Nil(t, input.Recurrence)
	})

	t.Run("empty tags list replaces tags", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"tags":[]}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.TagsSet)
		require.Empty(t, input.Tags)
	})

	t.Run("shared_with list is flagged", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"shared_with":["bob"]}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.SharedWithSet)
		require.Equal(t, []string{"bob"}, input.SharedWith)
	})

	t.Run("null project_id detaches the task", func(t *testing.T) {
		req, raw := decodeUpdate(t, `{"project_id":null}`)
		input, err := BuildUpdateTaskInput(req, raw)
		require.NoError(t, err)
		require.True(t, input.ProjectIDSet)
		require.Nil(t, input.ProjectID)
	})
}

func TestBuildReorderItems(t *testing.T) {
	t.Run("empty items are rejected", func(t *testing.T) {
		_, err := BuildReorderItems(dto.ReorderTasksRequest{})
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("blank id is rejected", func(t *testing.T) {
		order := 1.0
		_, err := BuildReorderItems(dto.ReorderTasksRequest{
			Items: []dto.ReorderItemPayload{{ID: " ", Order: &order}},
		})
		require.ErrorIs(t, err, ErrInvalidTaskPayload)
	})

	t.Run("items map through with optional status", func(t *testing.T) {
		order := 3.0
		status := "done"
		items, err := BuildReorderItems(dto.ReorderTasksRequest{
			Items: []dto.ReorderItemPayload{
				{ID: "a", Order: &order},
				{ID: "b", Status: &status},
			},
		})
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, 3.0, *items[0].Order)
		require.Nil(t, items[0].Status)
		require.Equal(t, domain.TaskStatusDone, *items[1].Status)
	})
}
