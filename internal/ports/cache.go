package ports

import "context"

// RateCache keeps a hot copy of the persisted rate snapshot. A miss is (nil, nil).
// It backs reads only while the durable repository is unreachable.
type RateCache interface {
	Get(ctx context.Context, scope string) (*RateSnapshot, error)
	Set(ctx context.Context, snapshot RateSnapshot) error
	Delete(ctx context.Context, scope string) error
}
