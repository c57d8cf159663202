package rebel

import (
	"context"
	"errors"
	"fmt"
)

// IsolationLevel is a transaction isolation level, spelled as in SQL.
type IsolationLevel string

// Isolation levels accepted by StartTransaction. LevelDefault leaves the choice to the engine.
const (
	LevelDefault    IsolationLevel = ""
	ReadUncommitted IsolationLevel = "READ UNCOMMITTED"
	ReadCommitted   IsolationLevel = "READ COMMITTED"
	RepeatableRead  IsolationLevel = "REPEATABLE READ"
	Serializable    IsolationLevel = "SERIALIZABLE"
)

// TxOption is a function that configures a transaction start.
type TxOption func(*txOptions)

type txOptions struct {
	isolation IsolationLevel
}

// WithIsolationLevel sets the isolation level of the transaction.
// It only has an effect when the call opens the outermost transaction.
func WithIsolationLevel(level IsolationLevel) TxOption {
	return func(o *txOptions) {
		o.isolation = level
	}
}

// TxFunc is the user supplied callback for [DB.Transaction].
type TxFunc func(ctx context.Context) error

// Depth returns the number of open transaction levels.
func (db *DB) Depth() int {
	return db.depth
}

// InTransaction reports whether a transaction is open.
func (db *DB) InTransaction() bool {
	return db.depth > 0
}

// StartTransaction opens a transaction level.
//
// The outermost call begins the driver transaction. Nested calls share it and only
// increase the depth; each of them must be matched by a Commit or a Rollback.
func (db *DB) StartTransaction(ctx context.Context, opts ...TxOption) error {
	err := db.connectOnce(ctx)
	if err != nil {
		return err
	}

	if !db.InTransaction() {
		var o txOptions
		for _, opt := range opts {
			opt(&o)
		}

		err = db.driver.StartTransaction(ctx, o.isolation)
		if err != nil {
			return err
		}
		db.rollbackIssued = false
	}

	db.depth++
	return nil
}

// Commit closes the innermost transaction level.
//
// Only the outermost level reaches the driver. If any level rolled back, the outermost
// Commit rolls the driver transaction back instead of committing it.
// It returns ErrNotInsideTransaction when no transaction is open.
func (db *DB) Commit(ctx context.Context) error {
	if !db.InTransaction() {
		return ErrNotInsideTransaction
	}
	defer func() { db.depth-- }()

	if db.depth > 1 {
		return nil
	}
	if db.rollbackIssued {
		db.logger.Printf("[INFO] Commit requested for a transaction marked for rollback. Rolling back instead.")
		return db.driver.Rollback(ctx)
	}
	return db.driver.Commit(ctx)
}

// Rollback closes the innermost transaction level and marks the whole transaction
// for rollback. Only the outermost level reaches the driver.
// It returns ErrNotInsideTransaction when no transaction is open.
func (db *DB) Rollback(ctx context.Context) error {
	if !db.InTransaction() {
		return ErrNotInsideTransaction
	}
	defer func() { db.depth-- }()

	db.rollbackIssued = true
	if db.depth > 1 {
		return nil
	}
	return db.driver.Rollback(ctx)
}

// Transaction runs fn inside a transaction level.
//
// The level commits if fn returns nil, or rolls back if it returns an error or panics.
// The error returned by fn is passed back unchanged; if the rollback fails as well,
// both errors are joined. Panics are propagated after the rollback.
//
// Transactions nest, a failing inner callback makes the outer one roll back too:
//
//	err := db.Transaction(ctx, func(ctx context.Context) error {
//	    if err := db.Execute(ctx, "INSERT INTO orders (id) VALUES (?)", orderID); err != nil {
//	        return err
//	    }
//	    return db.Transaction(ctx, func(ctx context.Context) error {
//	        return db.Execute(ctx, "UPDATE stock SET quantity = quantity - 1 WHERE id = ?", itemID)
//	    })
//	}, rebel.WithIsolationLevel(rebel.Serializable))
func (db *DB) Transaction(ctx context.Context, fn TxFunc, opts ...TxOption) error {
	err := db.StartTransaction(ctx, opts...)
	if err != nil {
		return err
	}

	var returned bool
	defer func() {
		if returned {
			return
		}
		if rbErr := db.Rollback(ctx); rbErr != nil {
			db.logger.Printf("[WARN] Unable to rollback transaction after panic [%s].", rbErr)
		}
	}()

	err = fn(ctx)
	returned = true

	if err != nil {
		if rbErr := db.Rollback(ctx); rbErr != nil {
			db.logger.Printf("[WARN] Unable to rollback transaction [%s].", rbErr)
			return errors.Join(err, fmt.Errorf("rolling back transaction: %w", rbErr))
		}
		return err
	}

	return db.Commit(ctx)
}
