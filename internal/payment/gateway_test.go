package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type connectorStore map[string]entities.PaymentConnector

func (s connectorStore) PaymentConnector(_ context.Context, method string) (entities.PaymentConnector, error) {
	conn, ok := s[method]
	if !ok {
		return entities.PaymentConnector{}, entities.ErrNotConfigured
	}
	return conn, nil
}

func TestRegistry_Get(t *testing.T) {
	static, err := NewRobokassa(robokassaConf)
	require.NoError(t, err)

	store := connectorStore{
		MethodStripe: {
			Method:  MethodStripe,
			Enabled: true,
			Secrets: map[string]string{"secret_key": "sk_admin", "webhook_secret": "whsec_admin"},
		},
		"paypal": {Method: "paypal", Enabled: false},
	}

	reg := NewRegistry(store)
	reg.Register(static)
	reg.RegisterBuilder(MethodStripe, StripeBuilder("https://shop.example.com", nil))
	reg.RegisterBuilder("paypal", func(entities.PaymentConnector) (Gateway, error) {
		return nil, errors.New("must not be built")
	})

	ctx := context.Background()

	g, err := reg.Get(ctx, MethodRobokassa)
	require.NoError(t, err)
	assert.Same(t, static, g)

	g, err = reg.Get(ctx, MethodStripe)
	require.NoError(t, err)
	assert.Equal(t, MethodStripe, g.Method())

	_, err = reg.Get(ctx, "paypal")
	assert.ErrorIs(t, err, entities.ErrUnknownPaymentMethod)

	_, err = reg.Get(ctx, "bitcoin")
	assert.ErrorIs(t, err, entities.ErrUnknownPaymentMethod)
}
