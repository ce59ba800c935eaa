package gateway

import (
	"context"

	"github.com/rahul/kaam/internal/agent"
)

// Worker runs a prompt through the agent.
type Worker interface {
	Work(ctx context.Context, prompt string) (*agent.Result, error)
}

// Messenger defines the interface for front ends (console, Telegram, Discord).
type Messenger interface {
	// Start serves requests until ctx is done or the input ends.
	Start(ctx context.Context) error
	// Send delivers a message to a specific chat.
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway.
	Stop() error
}

const troubleReply = "I'm having trouble thinking right now..."
