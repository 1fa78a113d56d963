package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgo/goals/api/internal/database"
	"github.com/forgo/goals/api/internal/service"
)

func TestMapServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"text required", service.ErrTextRequired, http.StatusBadRequest, MsgTextRequired},
		{"goal not found", service.ErrGoalNotFound, http.StatusBadRequest, MsgGoalNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusUnauthorized, MsgUserNotFound},
		{"not authorized", service.ErrNotAuthorized, http.StatusUnauthorized, MsgNotAuthorized},
		{"wrapped", fmt.Errorf("update: %w", service.ErrNotAuthorized), http.StatusUnauthorized, MsgNotAuthorized},
		{"store failure", fmt.Errorf("%w: boom", database.ErrQuery), http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapServiceError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MapServiceError(nil))
}
