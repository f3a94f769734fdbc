// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"github.com/deppfellow/registry/internal/config"
	"github.com/deppfellow/registry/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	// server runs worker processes that pull tasks from Redis and execute handlers.
	server *asynq.Server

	// logger is used for lifecycle logs and handler logs.
	logger *zerolog.Logger

	// email is nil when no Resend API key is configured.
	email *email.Client

	// alertTo receives low-stock alerts; empty disables alert emails.
	alertTo string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// It builds both:
//   - an asynq.Client (to push jobs)
//   - an asynq.Server (to process jobs)
//
// Queue weights give "critical" tasks a larger share of the workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   asynqLogger{logger: logger},
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:  asynq.NewClient(redisOpt),
		server:  server,
		logger:  logger,
		email:   email.NewClient(cfg, logger),
		alertTo: cfg.Integration.AlertEmail,
	}
}

// Mux routes every task type to its handler.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskLowStock, j.handleLowStockTask)
	return mux
}

// Start starts the worker pool in the background and returns once it is
// running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(j.Mux())
}

// Stop gracefully stops the job server and closes client resources.
//
// Shutdown waits for in-flight tasks to finish; Client.Close closes the
// Redis connections used for enqueueing.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("Failed to close job client")
	}
}
