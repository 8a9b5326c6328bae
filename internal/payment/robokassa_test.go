package payment

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var robokassaConf = RobokassaConfig{
	MerchantLogin: "esim-shop",
	Password1:     "pass-one",
	Password2:     "pass-two",
	TestMode:      true,
	Culture:       "en",
}

func testOrder() entities.Order {
	return entities.Order{
		OrderID:       "100200300",
		Type:          entities.OrderTypeNewESIM,
		PackageID:     "hehe-plus-7days-1gb",
		CustomerEmail: "user@example.com",
		Amount:        decimal.RequireFromString("9.99"),
		Currency:      "USD",
		Quantity:      1,
		Status:        entities.StatusPending,
	}
}

func signedRobokassaPayload(outSum, invID, orderID, password string) string {
	sig := md5Hex(outSum + ":" + invID + ":" + password + ":Shp_order_id=" + orderID)
	q := url.Values{}
	q.Set("OutSum", outSum)
	q.Set("InvId", invID)
	q.Set("SignatureValue", strings.ToUpper(sig))
	q.Set("Shp_order_id", orderID)
	return q.Encode()
}

func TestRobokassa_CreatePaymentSession(t *testing.T) {
	gw, err := NewRobokassa(robokassaConf)
	require.NoError(t, err)

	session, err := gw.CreatePaymentSession(context.Background(), testOrder())
	require.NoError(t, err)

	u, err := url.Parse(session.PaymentURL)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "auth.robokassa.ru", u.Host)
	assert.Equal(t, "esim-shop", q.Get("MerchantLogin"))
	assert.Equal(t, "9.99", q.Get("OutSum"))
	assert.Equal(t, "100200300", q.Get("InvId"))
	assert.Equal(t, "USD", q.Get("OutSumCurrency"))
	assert.Equal(t, "1", q.Get("IsTest"))
	assert.Equal(t, "100200300", q.Get("Shp_order_id"))
	assert.Equal(t, md5Hex("esim-shop:9.99:100200300:USD:pass-one:Shp_order_id=100200300"), q.Get("SignatureValue"))

	assert.NotContains(t, session.PaymentURL, "pass-one")
	assert.NotContains(t, session.PaymentURL, "pass-two")
}

func TestRobokassa_NonNumericOrderID(t *testing.T) {
	gw, err := NewRobokassa(robokassaConf)
	require.NoError(t, err)

	order := testOrder()
	order.OrderID = "ord-abc"
	order.Currency = "RUB"
	session, err := gw.CreatePaymentSession(context.Background(), order)
	require.NoError(t, err)

	u, _ := url.Parse(session.PaymentURL)
	assert.Equal(t, "0", u.Query().Get("InvId"))
	assert.Equal(t, "ord-abc", u.Query().Get("Shp_order_id"))
	assert.Empty(t, u.Query().Get("OutSumCurrency"))

	cb, err := gw.ParseCallback(RawCallback{Payload: signedRobokassaPayload("9.99", "0", "ord-abc", "pass-two")})
	require.NoError(t, err)
	assert.Equal(t, "ord-abc", cb.OrderID)
	assert.True(t, gw.ValidateCallback(cb, order).Valid)
}

func TestRobokassa_ValidateCallback(t *testing.T) {
	gw, err := NewRobokassa(robokassaConf)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		payload   string
		wantValid bool
		reason    string
	}{
		{
			name:      "valid",
			payload:   signedRobokassaPayload("9.990000", "100200300", "100200300", "pass-two"),
			wantValid: true,
		},
		{
			name:    "signed with password one",
			payload: signedRobokassaPayload("9.99", "100200300", "100200300", "pass-one"),
			reason:  "signature mismatch",
		},
		{
			name:    "underpayment with valid signature",
			payload: signedRobokassaPayload("0.99", "100200300", "100200300", "pass-two"),
			reason:  "amount mismatch",
		},
		{
			name:    "overpayment with valid signature",
			payload: signedRobokassaPayload("10.00", "100200300", "100200300", "pass-two"),
			reason:  "amount mismatch",
		},
		{
			name: "tampered amount",
			payload: strings.Replace(
				signedRobokassaPayload("9.99", "100200300", "100200300", "pass-two"), "OutSum=9.99", "OutSum=9.98", 1),
			reason: "signature mismatch",
		},
		{
			name:    "other order",
			payload: signedRobokassaPayload("9.99", "1", "1", "pass-two"),
			reason:  "order id mismatch",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cb, err := gw.ParseCallback(RawCallback{Payload: tc.payload})
			require.NoError(t, err)

			res := gw.ValidateCallback(cb, testOrder())
			assert.Equal(t, tc.wantValid, res.Valid)
			assert.Equal(t, tc.reason, res.Reason)
		})
	}
}

func TestRobokassa_ParseCallbackErrors(t *testing.T) {
	gw, err := NewRobokassa(robokassaConf)
	require.NoError(t, err)

	for _, payload := range []string{"", "OutSum=9.99&InvId=1", "OutSum=abc&InvId=1&SignatureValue=x", "%zz"} {
		_, err := gw.ParseCallback(RawCallback{Payload: payload})
		assert.Error(t, err, payload)
	}
}

func TestRobokassa_Ack(t *testing.T) {
	gw, err := NewRobokassa(robokassaConf)
	require.NoError(t, err)
	assert.Equal(t, "OK100200300", gw.Ack(Callback{InvoiceID: "100200300"}))
}

func TestNewRobokassa_NotConfigured(t *testing.T) {
	_, err := NewRobokassa(RobokassaConfig{MerchantLogin: "esim-shop"})
	assert.ErrorIs(t, err, entities.ErrNotConfigured)
}
