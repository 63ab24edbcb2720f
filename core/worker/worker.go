package worker

import (
	"event-registry/core/config"
	"event-registry/core/constants"
	"event-registry/core/logger"

	"github.com/hibiken/asynq"
)

// NewClient builds the asynq client used to enqueue fire-and-forget tasks
// (audit writes).
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewServeMux returns the mux task handlers register on.
func NewServeMux() *asynq.ServeMux {
	return asynq.NewServeMux()
}

// Run starts the worker loop. Intended to run in its own goroutine; it only
// returns on a fatal server error.
func Run(cfg config.RedisConfig, mux *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: constants.WorkerConcurrency,
			Queues: map[string]int{
				constants.WorkerQueueDefault: 1,
			},
		},
	)

	if err := srv.Run(mux); err != nil {
		logger.Error("Worker server stopped", "error", err)
	}
}
