package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"solvo/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeChatRelay is the asynq task type for upstream chat mirroring.
	TypeChatRelay = "chat:relay"
	// QueueChat is the queue chat relay tasks run on.
	QueueChat = "chat"
)

// Relay posts a chat turn to the upstream chat log.
type Relay interface {
	RelayChatMessage(ctx context.Context, msg models.ChatMessage) error
}

// NewRelayTask packages a chat message as an asynq task.
func NewRelayTask(msg models.ChatMessage) (*asynq.Task, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat message: %w", err)
	}
	return asynq.NewTask(TypeChatRelay, payload), nil
}

// NewRelayHandler returns the worker-side handler for chat relay tasks.
// Relay failures are returned so asynq retries them, then logged on the
// final attempt; the visitor never sees them.
func NewRelayHandler(relay Relay, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var msg models.ChatMessage
		if err := json.Unmarshal(t.Payload(), &msg); err != nil {
			logger.Error("chat relay task has bad payload", zap.Error(err))
			return fmt.Errorf("bad payload: %w", asynq.SkipRetry)
		}
		if err := relay.RelayChatMessage(ctx, msg); err != nil {
			logger.Warn("chat relay failed", zap.String("sender", msg.Sender), zap.Error(err))
			return err
		}
		return nil
	}
}
