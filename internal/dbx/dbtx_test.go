package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newMetadataDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func keys(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	return n
}

func insertSession(ctx context.Context, tx DBTX) error {
	for _, k := range []string{"access_token", "user"} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES (?, 'x')`, k); err != nil {
			return err
		}
	}
	return nil
}

func TestWithTx_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(ctx context.Context, tx DBTX) error
		wantErr  string
		wantKeys int
	}{
		{name: "commit", fn: insertSession, wantKeys: 2},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertSession(ctx, tx); err != nil {
					return err
				}
				return errors.New("boom")
			},
			wantErr: "boom",
		},
		{
			name: "rollback on failing statement",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := insertSession(ctx, tx); err != nil {
					return err
				}
				return insertSession(ctx, tx) // duplicate keys
			},
			wantErr: "UNIQUE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newMetadataDB(t)
			err := WithTx(context.Background(), db, nil, tt.fn)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantKeys, keys(t, db))
		})
	}
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := newMetadataDB(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertSession(ctx, tx))
			panic("kaput")
		})
	})
	assert.Equal(t, 0, keys(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := newMetadataDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}

func TestWithTx_CommitAndRollbackWithMock(t *testing.T) {
	t.Run("commit error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("disk full"))

		err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })
		require.ErrorContains(t, err, "commit tx: disk full")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback issued on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM metadata`).WillReturnError(errors.New("locked"))
		mock.ExpectRollback()

		err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, "user")
			return err
		})
		require.EqualError(t, err, "locked")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
