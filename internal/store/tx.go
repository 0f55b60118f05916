package store

import "context"

// Repositories bundles the stores bound to one transaction.
type Repositories struct {
	Users       UserStore
	Groups      GroupStore
	Memberships MembershipStore
}

// RepoFn runs against transaction-bound repositories. Returning an error
// rolls the transaction back.
type RepoFn func(ctx context.Context, repos Repositories) error

// TxManager opens one transaction per call, hands fn the stores bound to it,
// and commits when fn returns nil. The transaction is released on every
// exit path, including panics.
type TxManager interface {
	RunInTx(ctx context.Context, fn RepoFn) error
}
