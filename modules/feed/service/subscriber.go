package service

import (
	"context"

	"event-registry/core/constants"
	"event-registry/core/logger"
	groupentity "event-registry/modules/group/entity"
	participantentity "event-registry/modules/participant/entity"
	roomentity "event-registry/modules/room/entity"

	"github.com/redis/go-redis/v9"
)

type (
	ParticipantSource interface {
		ListAll(ctx context.Context) ([]participantentity.Participant, error)
	}

	GroupSource interface {
		ListAll(ctx context.Context) ([]groupentity.Group, error)
	}

	RoomSource interface {
		ListAll(ctx context.Context) ([]roomentity.Room, error)
	}
)

// Subscriber listens on the change channels and rebuilds collection
// snapshots from the store of record. Signals coalesce naturally: a burst of
// changes to one collection costs at most one reload per delivered message,
// and each reload yields the then-current full state.
type Subscriber struct {
	rdb          *redis.Client
	store        *Store
	participants ParticipantSource
	groups       GroupSource
	rooms        RoomSource
}

// NewSubscriber creates a new subscriber
func NewSubscriber(rdb *redis.Client, store *Store, participants ParticipantSource, groups GroupSource, rooms RoomSource) *Subscriber {
	return &Subscriber{
		rdb:          rdb,
		store:        store,
		participants: participants,
		groups:       groups,
		rooms:        rooms,
	}
}

// Run subscribes to the change channels, primes every collection, then
// reloads collections as signals arrive. Subscribing before the priming
// reads means a mutation landing mid-prime still raises a signal and gets
// folded into a reload instead of going stale. Blocks until ctx is done.
func (s *Subscriber) Run(ctx context.Context) {
	pubsub := s.rdb.Subscribe(ctx,
		constants.FeedChannelPrefix+constants.CollectionParticipants,
		constants.FeedChannelPrefix+constants.CollectionGroups,
		constants.FeedChannelPrefix+constants.CollectionRooms,
	)
	defer pubsub.Close()

	for _, collection := range []string{
		constants.CollectionParticipants,
		constants.CollectionGroups,
		constants.CollectionRooms,
	} {
		s.Reload(ctx, collection)
	}

	logger.Info("FeedSubscriber:Run", "status", "listening")
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.Reload(ctx, msg.Payload)
		}
	}
}

// Reload rebuilds one collection's snapshot. A failed read keeps the
// previous snapshot in place.
func (s *Subscriber) Reload(ctx context.Context, collection string) {
	switch collection {
	case constants.CollectionParticipants:
		items, err := s.participants.ListAll(ctx)
		if err != nil {
			logger.Error("FeedSubscriber:Reload - participants", err)
			return
		}
		s.store.Replace(collection, items)
	case constants.CollectionGroups:
		items, err := s.groups.ListAll(ctx)
		if err != nil {
			logger.Error("FeedSubscriber:Reload - groups", err)
			return
		}
		s.store.Replace(collection, items)
	case constants.CollectionRooms:
		items, err := s.rooms.ListAll(ctx)
		if err != nil {
			logger.Error("FeedSubscriber:Reload - rooms", err)
			return
		}
		s.store.Replace(collection, items)
	default:
		logger.Warn("FeedSubscriber:Reload - unknown collection", "collection", collection)
	}
}
