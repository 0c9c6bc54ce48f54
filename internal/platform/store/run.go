package store

import "context"

// RunInTx calls fn inside a transaction on the provided TxRunner,
// forwarding the (possibly annotated) ctx into fn
func RunInTx(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}

// RunInSweep annotates ctx with a sweep run id and calls fn inside the
// provided TxRunner, so every statement of one sweep batch shares a
// transaction and a correlatable id
func RunInSweep(ctx context.Context, tx TxRunner, runID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithRunID(ctx, runID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
