package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlots/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (tx *fakeTx) Commit() error {
	tx.committed = true
	return tx.commitErr
}

func (tx *fakeTx) Rollback() error {
	tx.rolledBack = true
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
	begins   int
}

func (db *fakeDB) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	db.begins++
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

func TestTransactionManager_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		err := NewTransactionManager(db).Do(ctx, func(ctx context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(ctx))
			return nil
		})

		require.NoError(t, err)
		assert.True(t, db.tx.committed)
		assert.False(t, db.tx.rolledBack)
	})

	t.Run("rollback on error", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		fnErr := errors.New("constraint violated")

		err := NewTransactionManager(db).Do(ctx, func(context.Context) error { return fnErr })

		assert.ErrorIs(t, err, fnErr)
		assert.True(t, db.tx.rolledBack)
		assert.False(t, db.tx.committed)
	})

	t.Run("nested call reuses transaction", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		err := m.Do(ctx, func(ctx context.Context) error {
			return m.Do(ctx, func(context.Context) error { return nil })
		})

		require.NoError(t, err)
		assert.Equal(t, 1, db.begins)
	})

	t.Run("begin error", func(t *testing.T) {
		db := &fakeDB{beginErr: errors.New("pool exhausted")}

		err := NewTransactionManager(db).Do(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrBeginTx)
	})

	t.Run("commit error", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{commitErr: errors.New("serialization failure")}}

		err := NewTransactionManager(db).Do(ctx, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, ErrCommitTx)
	})

	t.Run("panic rolls back", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}

		assert.Panics(t, func() {
			_ = NewTransactionManager(db).Do(ctx, func(context.Context) error { panic("boom") })
		})
		assert.True(t, db.tx.rolledBack)
	})
}
