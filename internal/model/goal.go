package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// Goal is a short text item owned by a single user
type Goal struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	User      string    `json:"user" db:"user_id"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateGoalRequest represents the body of POST /goals
type CreateGoalRequest struct {
	Text *string `json:"text"`
}

// UnmarshalJSON accepts any JSON scalar for text and stores its string form.
// Falsy values (null, "", 0, false) leave Text nil.
func (r *CreateGoalRequest) UnmarshalJSON(data []byte) error {
	var aux struct {
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	text, err := scalarText(aux.Text)
	if err != nil {
		return err
	}
	if text != nil && isFalsy(*text, aux.Text) {
		text = nil
	}
	r.Text = text
	return nil
}

// HasText reports whether the request carries a non-empty text field
func (r *CreateGoalRequest) HasText() bool {
	return r.Text != nil && *r.Text != ""
}

// UpdateGoalRequest represents the body of PUT /goals/{id}.
// Only the fields listed here can be changed; anything else in the body is ignored.
type UpdateGoalRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// UnmarshalJSON accepts any JSON scalar for text and stores its string form
func (r *UpdateGoalRequest) UnmarshalJSON(data []byte) error {
	var aux struct {
		Text      json.RawMessage `json:"text"`
		Completed *bool           `json:"completed"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	text, err := scalarText(aux.Text)
	if err != nil {
		return err
	}
	r.Text = text
	r.Completed = aux.Completed
	return nil
}

// IsEmpty reports whether the request changes nothing
func (r *UpdateGoalRequest) IsEmpty() bool {
	return r.Text == nil && r.Completed == nil
}

// GoalListResponse is the envelope for GET /goals
type GoalListResponse struct {
	Goals []*Goal `json:"goals"`
}

// GoalResponse is the envelope for POST /goals
type GoalResponse struct {
	Goal *Goal `json:"goal"`
}

// DeletedGoalResponse is the body for DELETE /goals/{id}
type DeletedGoalResponse struct {
	ID string `json:"id"`
}

// ErrTextNotScalar is returned when text is an object or an array
var ErrTextNotScalar = errors.New("text must be a string, number or boolean")

// scalarText converts a raw JSON scalar to its string form. Absent and null yield nil.
func scalarText(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		text = strconv.FormatBool(b)
	case '{', '[':
		return nil, ErrTextNotScalar
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		if f == 0 {
			f = 0 // -0
		}
		text = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return &text, nil
}

func isFalsy(text string, raw json.RawMessage) bool {
	switch bytes.TrimSpace(raw)[0] {
	case '"':
		return text == ""
	case 't', 'f':
		return text == "false"
	default:
		return text == "0"
	}
}
