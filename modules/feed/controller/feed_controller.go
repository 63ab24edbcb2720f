package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"event-registry/core/constants"
	"event-registry/core/controller"
	"event-registry/core/errors"
	"event-registry/modules/feed/service"

	"github.com/labstack/echo/v4"
)

// FeedController exposes the change feed's snapshots over HTTP
type FeedController struct {
	controller.BaseController
	Store *service.Store
}

// NewFeedController creates a new controller
func NewFeedController(store *service.Store) *FeedController {
	return &FeedController{
		BaseController: controller.NewBaseController(),
		Store:          store,
	}
}

func validCollection(name string) bool {
	switch name {
	case constants.CollectionParticipants, constants.CollectionGroups, constants.CollectionRooms:
		return true
	}
	return false
}

// State handles GET /state
// @Summary Current snapshot of every collection
// @Tags Feed
// @Produce json
// @Success 200 {object} map[string]service.Snapshot
// @Router /state [get]
func (c *FeedController) State(ctx echo.Context) error {
	return c.SuccessResponse(ctx, c.Store.All(), "Success")
}

// StateByCollection handles GET /state/:collection
// @Summary Current snapshot of one collection
// @Tags Feed
// @Produce json
// @Param collection path string true "Collection name"
// @Success 200 {object} service.Snapshot
// @Failure 404 {object} errors.AppError
// @Router /state/{collection} [get]
func (c *FeedController) StateByCollection(ctx echo.Context) error {
	collection := ctx.Param("collection")
	if !validCollection(collection) {
		return c.BadRequest(errors.ErrInvalidInput, "Unknown collection")
	}

	snap, ok := c.Store.Get(collection)
	if !ok {
		return c.NotFound(errors.ErrNotFound, "No snapshot yet")
	}
	return c.SuccessResponse(ctx, snap, "Success")
}

// Stream handles GET /state/:collection/stream
// @Summary Subscribe to a collection's snapshots as server-sent events
// @Tags Feed
// @Produce text/event-stream
// @Param collection path string true "Collection name"
// @Router /state/{collection}/stream [get]
func (c *FeedController) Stream(ctx echo.Context) error {
	collection := ctx.Param("collection")
	if !validCollection(collection) {
		return c.BadRequest(errors.ErrInvalidInput, "Unknown collection")
	}

	snapshots, cancel := c.Store.Subscribe(collection)
	defer cancel()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil
		case snap := <-snapshots:
			payload, err := json.Marshal(snap)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", snap.Collection, payload); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
