// Package delivery holds the inbound adapters that expose the relay.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the application.
type Delivery interface {
	// Serve blocks until the adapter stops or fails to start.
	Serve(ctx context.Context) error
}
