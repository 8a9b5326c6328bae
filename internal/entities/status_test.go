package entities_test

import (
	"testing"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from entities.OrderStatus
		to   entities.OrderStatus
		want bool
	}{
		{entities.StatusPending, entities.StatusPaid, true},
		{entities.StatusPaid, entities.StatusProcessing, true},
		{entities.StatusProcessing, entities.StatusActive, true},
		{entities.StatusPaid, entities.StatusFailed, true},
		{entities.StatusProcessing, entities.StatusFailed, true},
		{entities.StatusPending, entities.StatusExpired, true},

		{entities.StatusActive, entities.StatusPending, false},
		{entities.StatusPending, entities.StatusProcessing, false},
		{entities.StatusPending, entities.StatusActive, false},
		{entities.StatusPending, entities.StatusFailed, false},
		{entities.StatusPaid, entities.StatusExpired, false},
		{entities.StatusFailed, entities.StatusProcessing, false},
		{entities.StatusExpired, entities.StatusPaid, false},
		{entities.StatusActive, entities.StatusActive, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.want, entities.CanTransition(tc.from, tc.to))
		})
	}
}

func TestTransitionsAreMonotonic(t *testing.T) {
	all := []entities.OrderStatus{
		entities.StatusPending, entities.StatusPaid, entities.StatusProcessing,
		entities.StatusActive, entities.StatusFailed, entities.StatusExpired,
	}
	for _, from := range all {
		for _, to := range all {
			if entities.CanTransition(from, to) {
				assert.False(t, from.Reached(to), "%s -> %s moves backwards", from, to)
			}
		}
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, entities.StatusActive.Terminal())
	assert.True(t, entities.StatusFailed.Terminal())
	assert.True(t, entities.StatusExpired.Terminal())
	assert.False(t, entities.StatusPending.Terminal())
	assert.False(t, entities.StatusPaid.Terminal())
	assert.False(t, entities.StatusProcessing.Terminal())
}

func TestOrderStatus_Deletable(t *testing.T) {
	assert.True(t, entities.StatusPending.Deletable())
	assert.True(t, entities.StatusProcessing.Deletable())
	assert.False(t, entities.StatusPaid.Deletable())
	assert.False(t, entities.StatusActive.Deletable())
	assert.False(t, entities.StatusFailed.Deletable())
}

func TestAllowedFrom_ReturnsCopy(t *testing.T) {
	from := entities.AllowedFrom(entities.StatusFailed)
	from[0] = entities.StatusActive
	assert.False(t, entities.CanTransition(entities.StatusActive, entities.StatusFailed))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "upstream_timeout", entities.ErrorKind(entities.ErrUpstreamTimeout))
	assert.Equal(t, "upstream_error", entities.ErrorKind(&entities.UpstreamError{Status: 500}))
	assert.Equal(t, "authentication_error", entities.ErrorKind(&entities.AuthenticationError{Status: 401}))
	assert.Equal(t, "configuration_error", entities.ErrorKind(entities.ErrNotConfigured))
	assert.Equal(t, "", entities.ErrorKind(nil))
}
