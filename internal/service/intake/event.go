package intake

import "delivery-manager/internal/domain"

// Event is a single order intake command.
// Order is filled for "created", OrderID and DriverID for "assign".
type Event struct {
	Type     string
	Order    domain.Order
	OrderID  int64
	DriverID int64
}
