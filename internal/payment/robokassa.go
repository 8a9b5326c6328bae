package payment

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/shopspring/decimal"
)

const robokassaURL = "https://auth.robokassa.ru/Merchant/Index.aspx"

// shpOrderID пользовательский параметр, в котором едет строковый id заказа
const shpOrderID = "Shp_order_id"

type RobokassaConfig struct {
	MerchantLogin string
	Password1     string
	Password2     string
	TestMode      bool
	Culture       string
}

type Robokassa struct {
	conf RobokassaConfig
}

func NewRobokassa(conf RobokassaConfig) (*Robokassa, error) {
	if conf.MerchantLogin == "" || conf.Password1 == "" || conf.Password2 == "" {
		return nil, fmt.Errorf("robokassa: %w", entities.ErrNotConfigured)
	}
	return &Robokassa{conf: conf}, nil
}

// RobokassaFromConnector Builder для настроек из админки
func RobokassaFromConnector(conn entities.PaymentConnector) (Gateway, error) {
	return NewRobokassa(RobokassaConfig{
		MerchantLogin: conn.Secrets["merchant_login"],
		Password1:     conn.Secrets["password1"],
		Password2:     conn.Secrets["password2"],
		TestMode:      conn.TestMode,
		Culture:       conn.Secrets["culture"],
	})
}

func (r *Robokassa) Method() string { return MethodRobokassa }

func (r *Robokassa) CreatePaymentSession(_ context.Context, order entities.Order) (Session, error) {
	outSum := order.Amount.StringFixed(MinorDigits(order.Currency))
	invID := invoiceID(order.OrderID)
	currency := strings.ToUpper(order.Currency)
	shp := map[string]string{shpOrderID: order.OrderID}

	parts := []string{r.conf.MerchantLogin, outSum, invID}
	if currency != "" && currency != "RUB" {
		parts = append(parts, currency)
	}
	parts = append(parts, r.conf.Password1)

	q := url.Values{}
	q.Set("MerchantLogin", r.conf.MerchantLogin)
	q.Set("OutSum", outSum)
	q.Set("InvId", invID)
	q.Set("Description", fmt.Sprintf("eSIM order %s", order.OrderID))
	q.Set("SignatureValue", md5Hex(withShp(parts, shp)))
	q.Set(shpOrderID, order.OrderID)
	if currency != "" && currency != "RUB" {
		q.Set("OutSumCurrency", currency)
	}
	if order.CustomerEmail != "" {
		q.Set("Email", order.CustomerEmail)
	}
	if r.conf.Culture != "" {
		q.Set("Culture", r.conf.Culture)
	}
	if r.conf.TestMode {
		q.Set("IsTest", "1")
	}

	return Session{PaymentURL: robokassaURL + "?" + q.Encode(), ExternalID: invID}, nil
}

// ParseCallback разбирает ResultURL: form body или query string
func (r *Robokassa) ParseCallback(raw RawCallback) (Callback, error) {
	values, err := url.ParseQuery(strings.TrimSpace(raw.Payload))
	if err != nil {
		return Callback{}, fmt.Errorf("failed to parse robokassa callback: %w", err)
	}

	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}

	outSum, invID, sig := fields["OutSum"], fields["InvId"], fields["SignatureValue"]
	if outSum == "" || invID == "" || sig == "" {
		return Callback{}, errors.New("robokassa callback: OutSum, InvId and SignatureValue are required")
	}
	paid, err := decimal.NewFromString(outSum)
	if err != nil {
		return Callback{}, fmt.Errorf("robokassa callback: invalid OutSum %q: %w", outSum, err)
	}

	orderID := fields[shpOrderID]
	if orderID == "" {
		orderID = invID
	}

	return Callback{
		Method:     MethodRobokassa,
		OrderID:    orderID,
		InvoiceID:  invID,
		PaidAmount: paid,
		Signature:  sig,
		Fields:     fields,
		Payload:    []byte(raw.Payload),
	}, nil
}

func (r *Robokassa) ValidateCallback(cb Callback, order entities.Order) Validation {
	if cb.OrderID != order.OrderID {
		return invalid(cb, "order id mismatch")
	}

	shp := make(map[string]string)
	for k, v := range cb.Fields {
		if strings.HasPrefix(k, "Shp_") {
			shp[k] = v
		}
	}
	expected := md5Hex(withShp([]string{cb.Fields["OutSum"], cb.InvoiceID, r.conf.Password2}, shp))
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(cb.Signature))) != 1 {
		return invalid(cb, "signature mismatch")
	}

	if !AmountsMatch(cb.PaidAmount, order.Amount, order.Currency) {
		return invalid(cb, "amount mismatch")
	}
	return Validation{OrderID: order.OrderID, PaidAmount: cb.PaidAmount, Valid: true}
}

func (r *Robokassa) Ack(cb Callback) string {
	return "OK" + cb.InvoiceID
}

// invoiceID InvId у Robokassa только целое, нечисловые id едут в Shp_order_id
func invoiceID(orderID string) string {
	if _, err := strconv.ParseUint(orderID, 10, 63); err == nil {
		return orderID
	}
	return "0"
}

// withShp дописывает Shp_ параметры в алфавитном порядке
func withShp(parts []string, shp map[string]string) string {
	keys := make([]string, 0, len(shp))
	for k := range shp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+shp[k])
	}
	return strings.Join(parts, ":")
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
