package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-manager/internal/domain"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from domain.DeliveryStatus
		to   domain.DeliveryStatus
		ok   bool
	}{
		{"pending to accepted", domain.DeliveryPending, domain.DeliveryAccepted, true},
		{"pending to rejected", domain.DeliveryPending, domain.DeliveryRejected, true},
		{"accepted to picked_up", domain.DeliveryAccepted, domain.DeliveryPickedUp, true},
		{"picked_up to on_way", domain.DeliveryPickedUp, domain.DeliveryOnWay, true},
		{"on_way to delivered", domain.DeliveryOnWay, domain.DeliveryDelivered, true},
		{"pending to delivered", domain.DeliveryPending, domain.DeliveryDelivered, false},
		{"accepted to on_way", domain.DeliveryAccepted, domain.DeliveryOnWay, false},
		{"picked_up to picked_up", domain.DeliveryPickedUp, domain.DeliveryPickedUp, false},
		{"rejected to accepted", domain.DeliveryRejected, domain.DeliveryAccepted, false},
		{"delivered to pending", domain.DeliveryDelivered, domain.DeliveryPending, false},
		{"on_way back to picked_up", domain.DeliveryOnWay, domain.DeliveryPickedUp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := domain.CanTransition(tt.from, tt.to)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			var terr *domain.ErrTransition
			require.ErrorAs(t, err, &terr)
			require.Equal(t, tt.from, terr.From)
			require.Equal(t, tt.to, terr.To)
		})
	}
}

func TestNextStatuses(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		[]domain.DeliveryStatus{domain.DeliveryAccepted, domain.DeliveryRejected},
		domain.NextStatuses(domain.DeliveryPending))
	require.Equal(t,
		[]domain.DeliveryStatus{domain.DeliveryPickedUp},
		domain.NextStatuses(domain.DeliveryAccepted))
	require.Empty(t, domain.NextStatuses(domain.DeliveryDelivered))
	require.Empty(t, domain.NextStatuses(domain.DeliveryRejected))
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	require.True(t, domain.DeliveryDelivered.IsTerminal())
	require.True(t, domain.DeliveryRejected.IsTerminal())
	require.False(t, domain.DeliveryOnWay.IsTerminal())
}

func TestErrTransition_Message(t *testing.T) {
	t.Parallel()

	err := domain.CanTransition(domain.DeliveryPending, domain.DeliveryOnWay)
	require.EqualError(t, err, "cannot change delivery status from pending to on_way, allowed: accepted, rejected")

	err = domain.CanTransition(domain.DeliveryDelivered, domain.DeliveryOnWay)
	require.EqualError(t, err, "cannot change delivery status from delivered: status is final")
}

func TestStatusValid(t *testing.T) {
	t.Parallel()

	require.True(t, domain.DeliveryOnWay.Valid())
	require.False(t, domain.DeliveryStatus("lost").Valid())
	require.True(t, domain.OrderCancelled.Valid())
	require.False(t, domain.OrderStatus("").Valid())
	require.True(t, domain.RoleDriver.Valid())
	require.False(t, domain.Role("dispatcher").Valid())
}
