// internal/domain/notification/status.go
package notification

import (
	"database/sql"
	"time"
)

// Delivery records the outcome of sending a Notification.
// Corresponds to the 'telegram_deliveries' table.
type Delivery struct {
	ID         int64
	Kind       Kind
	Endpoint   string // Bot API method, e.g. sendPhoto
	ChatID     string
	Status     DeliveryStatus
	StatusCode int           // HTTP status, 0 when no response was received
	MessageID  sql.NullInt64 // Telegram message_id on success
	ErrorText  sql.NullString
	CreatedAt  time.Time
}
