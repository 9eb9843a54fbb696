package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor runs fn with a nil tx; repository mocks ignore the tx argument.
type Transactor struct {
	Calls int
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	t.Calls++
	return fn(nil)
}
