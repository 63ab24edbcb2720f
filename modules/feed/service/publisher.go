package service

import (
	"context"

	"event-registry/core/constants"
	"event-registry/core/logger"

	"github.com/redis/go-redis/v9"
)

// Publisher fans collection-change signals out through redis, one channel
// per collection. The signal carries no delta; subscribers always rebuild
// the full snapshot from the store.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher creates a new publisher
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// CollectionChanged signals that the named collection was mutated. Publish
// failures are logged and swallowed; a lost signal delays the next snapshot,
// it never fails the mutation that raised it.
func (p *Publisher) CollectionChanged(ctx context.Context, collection string) {
	if err := p.rdb.Publish(ctx, constants.FeedChannelPrefix+collection, collection).Err(); err != nil {
		logger.Error("FeedPublisher:CollectionChanged", err)
	}
}
