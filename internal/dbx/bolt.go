package dbx

import (
	"context"

	bolt "go.etcd.io/bbolt"
)

// BoltTX is the bbolt counterpart of DBTX: *bolt.DB satisfies it, and so
// does the handle passed to fn by BoltWithTx.
type BoltTX interface {
	View(fn func(tx *bolt.Tx) error) error
	Update(fn func(tx *bolt.Tx) error) error
}

// boundTx runs every View/Update inside one already open read-write
// transaction.
type boundTx struct {
	tx *bolt.Tx
}

func (b boundTx) View(fn func(tx *bolt.Tx) error) error   { return fn(b.tx) }
func (b boundTx) Update(fn func(tx *bolt.Tx) error) error { return fn(b.tx) }

// BoltWithTx runs fn inside a single read-write bbolt transaction. The
// transaction commits when fn returns nil and rolls back otherwise
// (panics included, bbolt handles those itself).
func BoltWithTx(ctx context.Context, db *bolt.DB, fn func(ctx context.Context, tx BoltTX) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.Update(func(tx *bolt.Tx) error {
		return fn(ctx, boundTx{tx: tx})
	})
}
