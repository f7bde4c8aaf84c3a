package cron

import (
	"context"
	"log"
	"time"

	"solvo/config"
	"solvo/services/chat"
	"solvo/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitChatRelayWorker runs the async worker in background. It drains the
// chat relay queue and mirrors each turn to the upstream chat log.
func InitChatRelayWorker(relay chat.Relay) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisChatQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				chat.QueueChat: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(chat.TypeChatRelay, chat.NewRelayHandler(relay, utils.GetLogger()))

	go monitorRedisConnection()

	go func() {
		log.Println("[ChatRelayWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ChatRelayWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ChatRelayWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// NewChatQueueClient builds the enqueue side of the chat relay queue.
func NewChatQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisChatQueueDB,
	})
}

// monitorRedisConnection pings the queue redis periodically so a broken
// connection shows up in the logs before tasks silently pile up.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisChatQueueDB,
	})
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ChatRelayWorker] redis ping failed: %v", err)
		}
		cancel()
	}
}
