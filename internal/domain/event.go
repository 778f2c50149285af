package domain

import "time"

// EventType names a published workflow event.
type EventType string

// List of workflow events
const (
	EventOrderAssigned         EventType = "order.assigned"
	EventDeliveryStatusChanged EventType = "delivery.status_changed"
)

// Event is a fact about the workflow emitted after a committed change.
type Event struct {
	ID         string
	Type       EventType
	OrderID    int64
	DeliveryID int64
	DriverID   int64
	Status     string
	OccurredAt time.Time
}
