package domain

import (
	"strings"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

// List of order statuses. OrderCancelled is declared for completeness;
// no operation moves an order into it.
const (
	OrderPending    OrderStatus = "pending"
	OrderAssigned   OrderStatus = "assigned"
	OrderInProgress OrderStatus = "in_progress"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderAssigned, OrderInProgress, OrderDelivered, OrderCancelled,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InProgressOrderStatuses lists the statuses counted as "in progress" on the dashboard.
func InProgressOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderAssigned, OrderInProgress}
}

// Order is a customer delivery request.
type Order struct {
	ID               int64
	CustomerName     string
	CustomerAddress  string
	CustomerPhone    string
	ProductInfo      string
	OrderValue       float64
	Status           OrderStatus
	AssignedDriverID *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewOrder builds a pending, unassigned order from the customer fields.
func NewOrder(customerName, customerAddress, customerPhone, productInfo string, value float64) Order {
	return Order{
		CustomerName:    strings.TrimSpace(customerName),
		CustomerAddress: strings.TrimSpace(customerAddress),
		CustomerPhone:   strings.TrimSpace(customerPhone),
		ProductInfo:     strings.TrimSpace(productInfo),
		OrderValue:      value,
		Status:          OrderPending,
	}
}

// OrderFilter narrows an order listing. Zero value lists everything.
type OrderFilter struct {
	Status *OrderStatus
	Search string
}
