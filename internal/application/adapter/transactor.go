package adapter

import "context"

// Transactor runs fn inside a database transaction. Repositories called with
// the ctx passed to fn take part in that transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
