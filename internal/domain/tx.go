package domain

import "context"

// Transactor runs fn in a single storage transaction. Repository calls made with
// the context handed to fn take part in that transaction; any error returned by fn
// rolls all of them back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
