package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/bagcheckout/internal/db"
	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/nikolayk812/bagcheckout/internal/port"
)

// bagRepository keeps session bags in Postgres, an alternative to the redis store
// for deployments without redis.
type bagRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewBag(pool *pgxpool.Pool) (port.BagStore, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	return &bagRepository{
		q:    db.New(pool),
		dbtx: pool,
	}, nil
}

func NewBagWithTx(tx pgx.Tx) (port.BagStore, error) {
	if tx == nil {
		return nil, errors.New("tx is nil")
	}

	return &bagRepository{
		q:    db.New(tx),
		dbtx: tx,
	}, nil
}

func (r *bagRepository) GetBag(ctx context.Context, sessionID string) (domain.Bag, error) {
	if sessionID == "" {
		return domain.Bag{}, errors.New("sessionID is empty")
	}

	return getBag(ctx, r.q, sessionID)
}

func (r *bagRepository) UpdateBag(ctx context.Context, sessionID string, fn func(domain.Bag) (domain.Bag, error)) (domain.Bag, error) {
	var b domain.Bag

	if sessionID == "" {
		return b, errors.New("sessionID is empty")
	}
	if fn == nil {
		return b, errors.New("fn is nil")
	}

	bag, err := withTx(ctx, r.dbtx, func(q *db.Queries) (domain.Bag, error) {
		// serializes writers of the same session until the tx ends, also when no row exists yet
		if err := q.LockBag(ctx, sessionID); err != nil {
			return b, fmt.Errorf("q.LockBag: %w", err)
		}

		current, err := getBag(ctx, q, sessionID)
		if err != nil {
			return b, err
		}

		updated, err := fn(current.Clone())
		if err != nil {
			return b, err
		}

		if err := updated.Validate(); err != nil {
			return b, fmt.Errorf("bag.Validate: %w", err)
		}

		if updated.IsEmpty() {
			if _, err := q.DeleteBag(ctx, sessionID); err != nil {
				return b, fmt.Errorf("q.DeleteBag: %w", err)
			}
			return updated, nil
		}

		contents, err := json.Marshal(updated)
		if err != nil {
			return b, fmt.Errorf("json.Marshal: %w", err)
		}

		if err := q.UpsertBag(ctx, db.UpsertBagParams{
			SessionID: sessionID,
			Contents:  contents,
		}); err != nil {
			return b, fmt.Errorf("q.UpsertBag: %w", err)
		}

		return updated, nil
	})
	if err != nil {
		return b, fmt.Errorf("withTx: %w", err)
	}

	return bag, nil
}

func (r *bagRepository) ClearBag(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.New("sessionID is empty")
	}

	// clearing an absent bag is not an error
	if _, err := r.q.DeleteBag(ctx, sessionID); err != nil {
		return fmt.Errorf("q.DeleteBag: %w", err)
	}

	return nil
}

func getBag(ctx context.Context, q *db.Queries, sessionID string) (domain.Bag, error) {
	var b domain.Bag

	contents, err := q.GetBag(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, nil
		}
		return b, fmt.Errorf("q.GetBag: %w", err)
	}

	if err := json.Unmarshal(contents, &b); err != nil {
		return b, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return b, nil
}
