package drivertest

import (
	"context"
	"testing"

	"github.com/oagudo/rebel"
	"github.com/stretchr/testify/require"
)

var transactionTests = map[string]testFunc{
	"Commit": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Commit(ctx))

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"Rollback": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Rollback(ctx))

		requireNoUsers(t, db)
	},

	"CommitOutsideTransactionFails": func(t *testing.T, db *rebel.DB) {
		insertUser(t, db, "foo@bar.com")
		require.ErrorIs(t, db.Commit(context.Background()), rebel.ErrNotInsideTransaction)
	},

	"RollbackOutsideTransactionFails": func(t *testing.T, db *rebel.DB) {
		insertUser(t, db, "foo@bar.com")
		require.ErrorIs(t, db.Rollback(context.Background()), rebel.ErrNotInsideTransaction)
	},

	"TwoCommitsForOneLevelFail": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Commit(ctx))
		require.ErrorIs(t, db.Commit(ctx), rebel.ErrNotInsideTransaction)
	},

	"TwoRollbacksForOneLevelFail": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Rollback(ctx))
		require.ErrorIs(t, db.Rollback(ctx), rebel.ErrNotInsideTransaction)
	},

	"CommitsInNestedTransaction": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Commit(ctx))
		require.NoError(t, db.Commit(ctx))

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"RollbacksInNestedTransaction": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Rollback(ctx))
		require.NoError(t, db.Rollback(ctx))

		requireNoUsers(t, db)
	},

	"CommitThenRollbackInNestedTransactionRollsBack": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Commit(ctx))
		require.NoError(t, db.Rollback(ctx))

		requireNoUsers(t, db)
	},

	"RollbackThenCommitInNestedTransactionRollsBack": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Rollback(ctx))
		require.NoError(t, db.Commit(ctx))

		requireNoUsers(t, db)
	},

	"DataIsVisibleBeforeOuterRollbackOnly": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Commit(ctx))

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})

		require.NoError(t, db.Rollback(ctx))
		requireNoUsers(t, db)
	},

	"AutocommitOutsideTransaction": func(t *testing.T, db *rebel.DB) {
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Driver().Rollback(context.Background()))

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"AutocommitRestoredAfterTransaction": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Rollback(ctx))

		insertUser(t, db, "bar@foo.com")
		require.NoError(t, db.Driver().Rollback(ctx))

		email, ok, err := db.QueryValue(ctx, "SELECT email FROM users")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "bar@foo.com", email)
	},

	"TransactionWithIsolationLevel": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.NoError(t, db.StartTransaction(ctx, rebel.WithIsolationLevel(rebel.RepeatableRead)))
		insertUser(t, db, "foo@bar.com")
		require.NoError(t, db.Rollback(ctx))

		requireNoUsers(t, db)
	},

	"AllIsolationLevels": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		levels := []rebel.IsolationLevel{
			rebel.ReadUncommitted,
			rebel.ReadCommitted,
			rebel.RepeatableRead,
			rebel.Serializable,
		}
		for _, level := range levels {
			require.NoError(t, db.StartTransaction(ctx, rebel.WithIsolationLevel(level)))
		}
		insertUser(t, db, "foo@bar.com")
		for range levels {
			require.NoError(t, db.Rollback(ctx))
		}
		require.ErrorIs(t, db.Rollback(ctx), rebel.ErrNotInsideTransaction)
	},

	"EachIsolationLevelCommits": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		levels := []rebel.IsolationLevel{
			rebel.LevelDefault,
			rebel.ReadUncommitted,
			rebel.ReadCommitted,
			rebel.RepeatableRead,
			rebel.Serializable,
		}
		for _, level := range levels {
			err := db.Transaction(ctx, func(ctx context.Context) error {
				return db.Execute(ctx, "INSERT INTO users (email) VALUES (?)", string(level))
			}, rebel.WithIsolationLevel(level))
			require.NoError(t, err, "isolation level %q", level)
		}

		count, ok, err := db.QueryValue(ctx, "SELECT COUNT(*) FROM users")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "5", Strings([]any{count})[0])
	},

	"ManagedTransactionCommits": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		err := db.Transaction(ctx, func(ctx context.Context) error {
			return db.Execute(ctx, "INSERT INTO users (email) VALUES (?)", "foo@bar.com")
		})
		require.NoError(t, err)
		require.NoError(t, db.Driver().Rollback(ctx))

		requireFirstUser(t, db, Record{"id": "1", "email": "foo@bar.com"})
	},

	"ManagedTransactionRollsBackOnError": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		err := db.Transaction(ctx, func(ctx context.Context) error {
			insertUser(t, db, "foo@bar.com")
			return errTest
		})
		require.ErrorIs(t, err, errTest)

		requireNoUsers(t, db)
	},

	"ManagedTransactionRollsBackOnErrorFromNestedTransaction": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		err := db.Transaction(ctx, func(ctx context.Context) error {
			insertUser(t, db, "foo@bar.com")
			return db.Transaction(ctx, func(ctx context.Context) error {
				insertUser(t, db, "foo@bar.com")
				return errTest
			})
		})
		require.ErrorIs(t, err, errTest)

		requireNoUsers(t, db)
	},

	"ManagedTransactionLeavesTransactionModeOnError": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		err := db.Transaction(ctx, func(ctx context.Context) error {
			insertUser(t, db, "foo@bar.com")
			return db.Transaction(ctx, func(ctx context.Context) error {
				insertUser(t, db, "foo@bar.com")
				return errTest
			})
		})
		require.ErrorIs(t, err, errTest)
		require.Equal(t, 0, db.Depth())
		require.False(t, db.InTransaction())
	},

	"ManagedTransactionRollsBackOnPanic": func(t *testing.T, db *rebel.DB) {
		ctx := context.Background()
		require.PanicsWithValue(t, "boom", func() {
			_ = db.Transaction(ctx, func(ctx context.Context) error {
				insertUser(t, db, "foo@bar.com")
				panic("boom")
			})
		})
		require.Equal(t, 0, db.Depth())

		requireNoUsers(t, db)
	},
}
