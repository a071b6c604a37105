package dbx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:dbx_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT);`)
	require.NoError(t, err)
	return db
}

func insertRow(ctx context.Context, db DBTX, v string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO t(v) VALUES (?)`, v)
	return err
}

func TestDBTX_SatisfiedByDBAndTx(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, insertRow(ctx, db, "direct"))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, insertRow(ctx, tx, "in-tx"))
	require.NoError(t, tx.Commit())

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	require.Equal(t, 2, n)
}
