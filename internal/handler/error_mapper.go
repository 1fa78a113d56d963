package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/goals/api/internal/model"
	"github.com/forgo/goals/api/internal/service"
)

// Wire messages for goal errors. Not-found is a 400 and delete reuses the
// update wording on ownership failures; clients match on both.
const (
	MsgTextRequired   = "Please add a text field"
	MsgGoalNotFound   = "Goal not found"
	MsgUserNotFound   = "User not found"
	MsgNotAuthorized  = "User not authorized to update goal"
	MsgInvalidRequest = "Invalid request body"
)

// MapServiceError converts a service error to an APIError
func MapServiceError(err error) *model.APIError {
	if err == nil {
		return nil
	}

	switch {
	// ===== Validation Errors → 400 =====
	case errors.Is(err, service.ErrTextRequired):
		return model.NewBadRequestError(MsgTextRequired)
	case errors.Is(err, service.ErrGoalNotFound):
		return model.NewBadRequestError(MsgGoalNotFound)

	// ===== Identity Errors → 401 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewUnauthorizedError(MsgUserNotFound)
	case errors.Is(err, service.ErrNotAuthorized):
		return model.NewUnauthorizedError(MsgNotAuthorized)

	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError()
	}
}
