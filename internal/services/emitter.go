package services

import (
	"context"

	"chat-client/internal/models"
)

// Emitter queues an outbound request. It must not wait for the server:
// the outcome is only ever observed as a later inbound event.
type Emitter interface {
	Emit(ctx context.Context, out models.Outbound) error
}
