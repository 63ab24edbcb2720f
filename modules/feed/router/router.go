package router

import (
	"event-registry/core/middleware"
	"event-registry/modules/feed/controller"

	"github.com/labstack/echo/v4"
)

// FeedRouter handles feed routes
type FeedRouter struct {
	FeedController *controller.FeedController
}

// NewFeedRouter creates a new router
func NewFeedRouter(feedController *controller.FeedController) *FeedRouter {
	return &FeedRouter{FeedController: feedController}
}

// Setup registers feed routes
func (r *FeedRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	stateRoutes := v1.Group("/state")

	stateRoutes.GET("", r.FeedController.State)
	stateRoutes.GET("/:collection", r.FeedController.StateByCollection)
	stateRoutes.GET("/:collection/stream", r.FeedController.Stream)
}
