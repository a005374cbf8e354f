package shared

import "context"

// TransactionManager runs a function inside one storage transaction. The
// derived context carries the transaction; repositories resolve it so every
// mutation inside fn commits or rolls back together.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
