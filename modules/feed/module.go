package feed

import (
	"event-registry/core/database"
	"event-registry/core/middleware"
	"event-registry/modules/feed/controller"
	"event-registry/modules/feed/router"
	"event-registry/modules/feed/service"
	grouprepository "event-registry/modules/group/repository"
	participantrepository "event-registry/modules/participant/repository"
	roomrepository "event-registry/modules/room/repository"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Init initializes the change feed and registers routes. Returns the
// publisher the other modules signal through and the subscriber the server
// runs in the background. Snapshot reloads read through fresh repositories
// over the shared store so the feed does not depend on the other modules'
// wiring.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, rdb *redis.Client) (*service.Publisher, *service.Subscriber) {
	store := service.NewStore()
	publisher := service.NewPublisher(rdb)
	subscriber := service.NewSubscriber(
		rdb,
		store,
		participantrepository.NewParticipantRepository(db),
		grouprepository.NewGroupRepository(db),
		roomrepository.NewRoomRepository(db),
	)

	ctrl := controller.NewFeedController(store)
	rtr := router.NewFeedRouter(ctrl)
	rtr.Setup(e, mw)

	return publisher, subscriber
}
