package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/forgo/goals/api/internal/database"
	"github.com/forgo/goals/api/internal/model"
)

const goalColumns = `id, text, user_id, completed, created_at, updated_at`

// Insertion order breaks created_at ties: rowid on SQLite, the seq column on PostgreSQL
const (
	sqliteListOrder   = `created_at ASC, rowid ASC`
	postgresListOrder = `created_at ASC, seq ASC`
)

// SQLGoalRepository handles goal data access in PostgreSQL or SQLite
type SQLGoalRepository struct {
	db        *sqlx.DB
	now       func() time.Time
	listOrder string
}

// NewSQLGoalRepository creates a goal repository over a relational connection
func NewSQLGoalRepository(db *sqlx.DB) *SQLGoalRepository {
	listOrder := postgresListOrder
	if db.DriverName() == database.DriverSQLite {
		listOrder = sqliteListOrder
	}
	return &SQLGoalRepository{
		db:        db,
		now:       func() time.Time { return time.Now().UTC() },
		listOrder: listOrder,
	}
}

// Create inserts a new goal and fills in the generated id and timestamps
func (r *SQLGoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	now := r.now()
	goal.ID = uuid.NewString()
	goal.Completed = false
	goal.CreatedAt = now
	goal.UpdatedAt = now

	query := r.db.Rebind(`INSERT INTO goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query,
		goal.ID, goal.Text, goal.User, goal.Completed, goal.CreatedAt, goal.UpdatedAt,
	); err != nil {
		return fmt.Errorf("%w: insert goal: %v", database.ErrQuery, err)
	}
	return nil
}

// ListByUser returns every goal owned by the user, oldest first.
// Goals created in the same instant keep their insertion order.
func (r *SQLGoalRepository) ListByUser(ctx context.Context, userID string) ([]*model.Goal, error) {
	query := r.db.Rebind(`SELECT ` + goalColumns + ` FROM goals WHERE user_id = ? ORDER BY ` + r.listOrder)

	goals := make([]*model.Goal, 0)
	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("%w: list goals: %v", database.ErrQuery, err)
	}
	return goals, nil
}

// GetByID retrieves a goal by ID, returning nil when it does not exist
func (r *SQLGoalRepository) GetByID(ctx context.Context, id string) (*model.Goal, error) {
	query := r.db.Rebind(`SELECT ` + goalColumns + ` FROM goals WHERE id = ?`)

	var goal model.Goal
	if err := r.db.GetContext(ctx, &goal, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get goal: %v", database.ErrQuery, err)
	}
	return &goal, nil
}

// UpdateOwned applies the allowlisted fields to the goal if it is owned by userID.
// It returns nil without error when no goal matched both id and owner.
func (r *SQLGoalRepository) UpdateOwned(ctx context.Context, id, userID string, req *model.UpdateGoalRequest) (*model.Goal, error) {
	query := r.db.Rebind(`
		UPDATE goals
		SET text = COALESCE(?, text),
			completed = COALESCE(?, completed),
			updated_at = ?
		WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, req.Text, req.Completed, r.now(), id, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: update goal: %v", database.ErrQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: update goal: %v", database.ErrQuery, err)
	}
	if n == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// DeleteOwned removes the goal if it is owned by userID and reports whether it did
func (r *SQLGoalRepository) DeleteOwned(ctx context.Context, id, userID string) (bool, error) {
	query := r.db.Rebind(`DELETE FROM goals WHERE id = ? AND user_id = ?`)

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, fmt.Errorf("%w: delete goal: %v", database.ErrQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: delete goal: %v", database.ErrQuery, err)
	}
	return n > 0, nil
}
