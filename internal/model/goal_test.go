package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoalRequest_HasText(t *testing.T) {
	t.Parallel()

	empty := ""
	text := "Learn X"

	assert.False(t, (&CreateGoalRequest{}).HasText())
	assert.False(t, (&CreateGoalRequest{Text: &empty}).HasText())
	assert.True(t, (&CreateGoalRequest{Text: &text}).HasText())
}

func TestUpdateGoalRequest_IgnoresFieldsOutsideAllowlist(t *testing.T) {
	t.Parallel()

	var req UpdateGoalRequest
	body := `{"text":"Learn Y","user":"someone-else","id":"goal:other","completed":true}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Text)
	assert.Equal(t, "Learn Y", *req.Text)
	require.NotNil(t, req.Completed)
	assert.True(t, *req.Completed)
	assert.False(t, req.IsEmpty())
}

func TestUpdateGoalRequest_IsEmpty(t *testing.T) {
	t.Parallel()

	var req UpdateGoalRequest
	require.NoError(t, json.Unmarshal([]byte(`{"user":"x"}`), &req))
	assert.True(t, req.IsEmpty())
}

func TestCreateGoalRequest_CastsScalarText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body    string
		hasText bool
		text    string
	}{
		{`{"text":"Learn X"}`, true, "Learn X"},
		{`{"text":42}`, true, "42"},
		{`{"text":1.50}`, true, "1.5"},
		{`{"text":true}`, true, "true"},
		{`{"text":""}`, false, ""},
		{`{"text":0}`, false, ""},
		{`{"text":-0}`, false, ""},
		{`{"text":false}`, false, ""},
		{`{"text":null}`, false, ""},
		{`{}`, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			t.Parallel()

			var req CreateGoalRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.hasText, req.HasText())
			if tt.hasText {
				assert.Equal(t, tt.text, *req.Text)
			}
		})
	}
}

func TestCreateGoalRequest_RejectsCompositeText(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"text":{"a":1}}`, `{"text":["a"]}`} {
		var req CreateGoalRequest
		assert.ErrorIs(t, json.Unmarshal([]byte(body), &req), ErrTextNotScalar, body)
	}
}

func TestUpdateGoalRequest_CastsScalarText(t *testing.T) {
	t.Parallel()

	var req UpdateGoalRequest
	require.NoError(t, json.Unmarshal([]byte(`{"text":0,"completed":false}`), &req))

	require.NotNil(t, req.Text)
	assert.Equal(t, "0", *req.Text)
	require.NotNil(t, req.Completed)
	assert.False(t, *req.Completed)

	req = UpdateGoalRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"text":null}`), &req))
	assert.True(t, req.IsEmpty())

	req = UpdateGoalRequest{}
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"text":[1]}`), &req), ErrTextNotScalar)
}

func TestGoalListResponse_EncodesEmptySliceAsArray(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(GoalListResponse{Goals: []*Goal{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"goals":[]}`, string(data))
}

func TestAPIError_OmitsEmptyStack(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewBadRequestError("Goal not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Goal not found"}`, string(data))

	data, err = json.Marshal(NewBadRequestError("Goal not found").WithStack("trace"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Goal not found","stack":"trace"}`, string(data))
}
