// internal/domain/notification/repository.go
package notification

import (
	"context"
)

// Repository persists the delivery journal.
type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	// ListRecent returns the newest deliveries first.
	ListRecent(ctx context.Context, limit int) ([]*Delivery, error)
}
