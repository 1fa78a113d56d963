package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQL_SQLiteAppliesSchema(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "goals.db")
	db, err := OpenSQL(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.Get(&count, `SELECT count(*) FROM goals`)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Running again is a no-op
	require.NoError(t, Migrate(db, DriverSQLite))
}

func TestOpenSQL_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenSQL(context.Background(), "mysql", "ignored")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
