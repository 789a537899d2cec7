package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bagcheckout/internal/db"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

// withTx executes fn within a transaction if the repository was created with a pool,
// or uses the existing transaction if the repository was created with a transaction
func withTx[T any](ctx context.Context, dbtx db.DBTX, fn func(q *db.Queries) (T, error)) (T, error) {
	return inTx(ctx, dbtx, func(tx pgx.Tx) (T, error) {
		return fn(db.New(tx))
	})
}

func inTx[T any](ctx context.Context, dbtx db.DBTX, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	// Check if we're already in a transaction by trying to cast to pgx.Tx
	if tx, ok := dbtx.(pgx.Tx); ok {
		// Already in a transaction, just use it
		return fn(tx)
	}

	// Must be a pool, create a new transaction
	pool, ok := dbtx.(*pgxpool.Pool)
	if !ok {
		return zero, fmt.Errorf("dbtx is neither pgx.Tx nor *pgxpool.Pool: %T", dbtx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	// Ensure proper rollback handling
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

type transactor struct {
	pool   *pgxpool.Pool
	policy domain.DeliveryPolicy
}

func NewTransactor(pool *pgxpool.Pool, policy domain.DeliveryPolicy) (port.Transactor, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("policy.Validate: %w", err)
	}

	return &transactor{
		pool:   pool,
		policy: policy,
	}, nil
}

func (t *transactor) WithinTx(ctx context.Context, fn func(repos port.Repositories) error) error {
	_, err := inTx(ctx, t.pool, func(tx pgx.Tx) (struct{}, error) {
		orders, err := NewOrderWithTx(tx, t.policy)
		if err != nil {
			return struct{}{}, fmt.Errorf("NewOrderWithTx: %w", err)
		}

		return struct{}{}, fn(port.Repositories{
			Orders:   orders,
			Products: NewProductWithTx(tx),
		})
	})
	return err
}
