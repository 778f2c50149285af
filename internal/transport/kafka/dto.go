package kafka

import (
	"errors"
	"strings"

	"delivery-manager/internal/domain"
	"delivery-manager/internal/service/intake"
)

// OrderDTO is the order payload of a "created" intake event
type OrderDTO struct {
	CustomerName    string  `json:"customerName"`
	CustomerAddress string  `json:"customerAddress"`
	CustomerPhone   string  `json:"customerPhone"`
	ProductInfo     string  `json:"productInfo"`
	OrderValue      float64 `json:"orderValue"`
}

// EventDTO is a data transfer object for intake.Event
type EventDTO struct {
	Type     string    `json:"type"`
	Order    *OrderDTO `json:"order,omitempty"`
	OrderID  int64     `json:"orderId,omitempty"`
	DriverID int64     `json:"driverId,omitempty"`
}

// Validate rejects events that can never be processed.
func (d EventDTO) Validate() error {
	switch strings.ToLower(strings.TrimSpace(d.Type)) {
	case "":
		return Permanent(errors.New("empty type"))
	case "created":
		if d.Order == nil {
			return Permanent(errors.New("created event without order"))
		}
	case "assign":
		if d.OrderID <= 0 || d.DriverID <= 0 {
			return Permanent(errors.New("assign event without orderId or driverId"))
		}
	}
	return nil
}

// ToDomain converts EventDTO to intake.Event
func ToDomain(dto EventDTO) intake.Event {
	ev := intake.Event{
		Type:     strings.ToLower(strings.TrimSpace(dto.Type)),
		OrderID:  dto.OrderID,
		DriverID: dto.DriverID,
	}
	if o := dto.Order; o != nil {
		ev.Order = domain.Order{
			CustomerName:    o.CustomerName,
			CustomerAddress: o.CustomerAddress,
			CustomerPhone:   o.CustomerPhone,
			ProductInfo:     o.ProductInfo,
			OrderValue:      o.OrderValue,
		}
	}
	return ev
}

// EventMessage is the wire form of a published workflow event
type EventMessage struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	OrderID    int64  `json:"orderId"`
	DeliveryID int64  `json:"deliveryId"`
	DriverID   int64  `json:"driverId"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurredAt"`
}
