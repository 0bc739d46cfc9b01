package realtime

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/geodraw/internal/services/realtime Publisher

import (
	"context"
)

// Publisher fans events out to the clients watching a session. Delivery is
// best-effort; the coordination engine must behave the same whether or not
// anyone is listening.
type Publisher interface {
	// Publish sends one event to a session's group
	Publish(ctx context.Context, input *PublishInput) error
}
