// Package store is the storage layer: one repository per aggregate,
// all speaking through a shared Store handle.
package store

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound covers both "row does not exist" and "row exists but is
// outside the caller's ownership filter". Callers must not be able to
// tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicate reports a uniqueness violation (e.g. username taken).
var ErrDuplicate = errors.New("already exists")

// Queryer is satisfied by both *sqlx.DB and *sqlx.Tx, so every
// repository method can run on the pool or inside a transaction.
type Queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Store struct {
	q  Queryer
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{q: db, db: db}
}

// WithTx runs fn against a Store bound to one transaction. The rollback
// is deferred so release happens whatever fn does; commit is explicit.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) error {
	if s.db == nil {
		// already inside a transaction
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}

	return tx.Commit()
}
