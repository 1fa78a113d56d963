package handler

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/forgo/goals/api/internal/middleware"
	"github.com/forgo/goals/api/internal/model"
)

// GoalService is the subset of service.GoalService the handler needs
type GoalService interface {
	List(ctx context.Context, userID string) ([]*model.Goal, error)
	Create(ctx context.Context, userID string, req *model.CreateGoalRequest) (*model.Goal, error)
	Update(ctx context.Context, id, userID string, req *model.UpdateGoalRequest) (*model.Goal, error)
	Delete(ctx context.Context, id, userID string) (string, error)
}

// GoalHandlerConfig holds dependencies for the goal handler
type GoalHandlerConfig struct {
	Service GoalService
	// Debug adds a stack trace to error bodies. Development only.
	Debug bool
}

// GoalHandler handles goal HTTP requests
type GoalHandler struct {
	svc   GoalService
	debug bool
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(cfg GoalHandlerConfig) *GoalHandler {
	return &GoalHandler{svc: cfg.Service, debug: cfg.Debug}
}

// RegisterRoutes mounts the goal routes on mux behind the given middleware
func (h *GoalHandler) RegisterRoutes(mux *http.ServeMux, mw ...middleware.Middleware) {
	mux.Handle("GET /goals", middleware.Chain(http.HandlerFunc(h.List), mw...))
	mux.Handle("POST /goals", middleware.Chain(http.HandlerFunc(h.Create), mw...))
	mux.Handle("PUT /goals/{id}", middleware.Chain(http.HandlerFunc(h.Update), mw...))
	mux.Handle("DELETE /goals/{id}", middleware.Chain(http.HandlerFunc(h.Delete), mw...))
}

// List handles GET /goals - list the caller's goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	goals, err := h.svc.List(ctx, middleware.GetUserID(ctx))
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.GoalListResponse{Goals: goals})
}

// Create handles POST /goals - create a goal owned by the caller
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateGoalRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.writeError(w, model.NewBadRequestError(MsgInvalidRequest))
		return
	}

	goal, err := h.svc.Create(ctx, middleware.GetUserID(ctx), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.GoalResponse{Goal: goal})
}

// Update handles PUT /goals/{id} - change text or completed on an owned goal.
// The updated goal is returned without an envelope.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.UpdateGoalRequest
	if err := DecodeJSON(r, &req); err != nil {
		h.writeError(w, model.NewBadRequestError(MsgInvalidRequest))
		return
	}

	goal, err := h.svc.Update(ctx, r.PathValue("id"), middleware.GetUserID(ctx), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, goal)
}

// Delete handles DELETE /goals/{id}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.svc.Delete(ctx, r.PathValue("id"), middleware.GetUserID(ctx))
	if err != nil {
		h.handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, model.DeletedGoalResponse{ID: id})
}

func (h *GoalHandler) handleError(w http.ResponseWriter, err error) {
	h.writeError(w, MapServiceError(err))
}

func (h *GoalHandler) writeError(w http.ResponseWriter, apiErr *model.APIError) {
	if h.debug {
		apiErr = apiErr.WithStack(string(debug.Stack()))
	}
	WriteError(w, apiErr)
}
