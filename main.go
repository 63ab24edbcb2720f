package main

import (
	"event-registry/core/logger"
	"event-registry/core/server"
)

// @title Event Registry API
// @version 1.0
// @description Participant registration, group and room assignment with capacity tracking.

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
