// internal/domain/notification/shared_types.go
package notification

// Kind selects the Bot API method family used to deliver a notification.
type Kind string

const (
	KindMessage  Kind = "MESSAGE"
	KindFile     Kind = "FILE"
	KindLocation Kind = "LOCATION"
)

// DeliveryStatus is the outcome of a single send attempt.
type DeliveryStatus string

const (
	StatusDelivered      DeliveryStatus = "DELIVERED"
	StatusAPIError       DeliveryStatus = "API_ERROR"       // Telegram rejected the request
	StatusTransportError DeliveryStatus = "TRANSPORT_ERROR" // Request never reached Telegram
	StatusMissingToken   DeliveryStatus = "MISSING_TOKEN"
)
