package domain

import (
	"fmt"
	"strings"
)

// DeliveryStatus represents the lifecycle state of a delivery.
type DeliveryStatus string

// List of delivery statuses
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryAccepted  DeliveryStatus = "accepted"
	DeliveryRejected  DeliveryStatus = "rejected"
	DeliveryPickedUp  DeliveryStatus = "picked_up"
	DeliveryOnWay     DeliveryStatus = "on_way"
	DeliveryDelivered DeliveryStatus = "delivered"
)

var allowedDeliveryStatuses = [...]DeliveryStatus{
	DeliveryPending, DeliveryAccepted, DeliveryRejected,
	DeliveryPickedUp, DeliveryOnWay, DeliveryDelivered,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type transitionKey struct {
	from DeliveryStatus
	to   DeliveryStatus
}

// deliveryTransitions is the only source of truth for delivery moves.
var deliveryTransitions = map[transitionKey]struct{}{
	{DeliveryPending, DeliveryAccepted}:  {},
	{DeliveryPending, DeliveryRejected}:  {},
	{DeliveryAccepted, DeliveryPickedUp}: {},
	{DeliveryPickedUp, DeliveryOnWay}:    {},
	{DeliveryOnWay, DeliveryDelivered}:   {},
}

// ErrTransition is returned for a move the delivery lifecycle does not allow.
type ErrTransition struct {
	From DeliveryStatus
	To   DeliveryStatus
}

func (e *ErrTransition) Error() string {
	next := NextStatuses(e.From)
	if len(next) == 0 {
		return fmt.Sprintf("cannot change delivery status from %s: status is final", e.From)
	}
	names := make([]string, 0, len(next))
	for _, s := range next {
		names = append(names, string(s))
	}
	return fmt.Sprintf("cannot change delivery status from %s to %s, allowed: %s",
		e.From, e.To, strings.Join(names, ", "))
}

// CanTransition returns nil when from -> to is an allowed delivery move.
func CanTransition(from, to DeliveryStatus) error {
	if _, ok := deliveryTransitions[transitionKey{from: from, to: to}]; ok {
		return nil
	}
	return &ErrTransition{From: from, To: to}
}

// NextStatuses returns the statuses reachable from s, in lifecycle order.
func NextStatuses(s DeliveryStatus) []DeliveryStatus {
	var out []DeliveryStatus
	for _, to := range allowedDeliveryStatuses {
		if _, ok := deliveryTransitions[transitionKey{from: s, to: to}]; ok {
			out = append(out, to)
		}
	}
	return out
}

// IsTerminal reports whether no further move exists from s.
func (s DeliveryStatus) IsTerminal() bool {
	return len(NextStatuses(s)) == 0
}
