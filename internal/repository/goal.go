package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/forgo/goals/api/internal/database"
	"github.com/forgo/goals/api/internal/model"
)

const goalTable = "goal"

// GoalRepository handles goal data access in SurrealDB
type GoalRepository struct {
	db database.Database
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db database.Database) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new goal and fills in the generated id and timestamps
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `
		CREATE goal CONTENT {
			text: $text,
			user_id: $user_id,
			completed: false,
			created_at: time::now(),
			updated_at: time::now()
		}
	`
	vars := map[string]interface{}{
		"text":    goal.Text,
		"user_id": goal.User,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	rows := statementRows(results)
	if len(rows) == 0 {
		return fmt.Errorf("%w: create returned no record", database.ErrQuery)
	}
	created, err := parseGoal(rows[0])
	if err != nil {
		return err
	}

	*goal = *created
	return nil
}

// ListByUser returns every goal owned by the user, oldest first
func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]*model.Goal, error) {
	query := `SELECT * FROM goal WHERE user_id = $user_id ORDER BY created_at ASC`
	vars := map[string]interface{}{"user_id": userID}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseGoals(statementRows(results))
}

// GetByID retrieves a goal by ID, returning nil when it does not exist
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	key, ok := goalKey(id)
	if !ok {
		return nil, nil
	}

	query := `SELECT * FROM type::thing($tb, $key)`
	vars := map[string]interface{}{"tb": goalTable, "key": key}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseGoal(result)
}

// UpdateOwned applies the allowlisted fields to the goal if it is owned by userID.
// It returns nil without error when no goal matched both id and owner.
func (r *GoalRepository) UpdateOwned(ctx context.Context, id, userID string, req *model.UpdateGoalRequest) (*model.Goal, error) {
	key, ok := goalKey(id)
	if !ok {
		return nil, nil
	}

	sets := []string{"updated_at = time::now()"}
	vars := map[string]interface{}{
		"tb":      goalTable,
		"key":     key,
		"user_id": userID,
	}
	if req.Text != nil {
		sets = append(sets, "text = $text")
		vars["text"] = *req.Text
	}
	if req.Completed != nil {
		sets = append(sets, "completed = $completed")
		vars["completed"] = *req.Completed
	}

	query := fmt.Sprintf(
		`UPDATE type::thing($tb, $key) SET %s WHERE user_id = $user_id RETURN AFTER`,
		strings.Join(sets, ", "),
	)

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseGoal(result)
}

// DeleteOwned removes the goal if it is owned by userID and reports whether it did
func (r *GoalRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	key, ok := goalKey(id)
	if !ok {
		return false, nil
	}

	query := `DELETE type::thing($tb, $key) WHERE user_id = $user_id RETURN BEFORE`
	vars := map[string]interface{}{
		"tb":      goalTable,
		"key":     key,
		"user_id": userID,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	return len(statementRows(results)) > 0, nil
}

// goalKey accepts "goal:<key>" or a bare key and returns the key part.
// Ids that name another table are rejected.
func goalKey(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	table, key, found := strings.Cut(id, ":")
	if !found {
		return id, true
	}
	if table != goalTable || key == "" {
		return "", false
	}
	return key, true
}

func parseGoal(data interface{}) (*model.Goal, error) {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	return &model.Goal{
		ID:        convertSurrealID(m["id"]),
		Text:      getString(m, "text"),
		User:      getString(m, "user_id"),
		Completed: getBool(m, "completed"),
		CreatedAt: parseTime(m["created_at"]),
		UpdatedAt: parseTime(m["updated_at"]),
	}, nil
}

func parseGoals(rows []interface{}) ([]*model.Goal, error) {
	goals := make([]*model.Goal, 0, len(rows))
	for _, row := range rows {
		goal, err := parseGoal(row)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}
