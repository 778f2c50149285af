package domain

import "time"

// Delivery is the driver-facing execution record bound to an assigned order.
type Delivery struct {
	ID           int64
	OrderID      int64
	DriverID     int64
	Status       DeliveryStatus
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewDelivery returns the pending delivery created by an assignment.
func NewDelivery(orderID, driverID int64) Delivery {
	return Delivery{
		OrderID:  orderID,
		DriverID: driverID,
		Status:   DeliveryPending,
	}
}

// Advance moves the delivery to the next status in place.
// It stamps PickupTime on the first entry into picked_up and DeliveryTime on
// the first entry into delivered, and overwrites Notes when notes is non-nil.
// The returned flag is true when the owning order must become delivered.
func (d *Delivery) Advance(to DeliveryStatus, notes *string, now time.Time) (bool, error) {
	if err := CanTransition(d.Status, to); err != nil {
		return false, err
	}

	d.Status = to
	d.UpdatedAt = now
	if notes != nil {
		d.Notes = *notes
	}

	switch to {
	case DeliveryPickedUp:
		if d.PickupTime == nil {
			t := now
			d.PickupTime = &t
		}
	case DeliveryDelivered:
		if d.DeliveryTime == nil {
			t := now
			d.DeliveryTime = &t
		}
		return true, nil
	}
	return false, nil
}

// DeliveryWithOrder is a delivery with its order embedded, as shown to drivers.
type DeliveryWithOrder struct {
	Delivery
	Order *Order
}

// DeliveryFilter narrows a delivery listing. Nil fields are not applied.
type DeliveryFilter struct {
	DriverID *int64
	Status   *DeliveryStatus
}

// StatusUpdate is a driver request to move a delivery.
type StatusUpdate struct {
	DeliveryID int64
	Status     DeliveryStatus
	Notes      *string
}

// AssignResult - result of binding a driver to a pending order.
type AssignResult struct {
	Order    Order
	Delivery Delivery
}
