package domain

import "context"

// TransactionManager runs fn inside a single database transaction. The
// transaction travels in the context; repositories pick it up transparently.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
