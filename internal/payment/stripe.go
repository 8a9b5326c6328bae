package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
)

const (
	SignatureHeader = "Stripe-Signature"

	// SignatureTolerance максимальный возраст подписи вебхука
	SignatureTolerance = 5 * time.Minute

	// DefaultStripeTimeout ограничение на вызов Stripe API
	DefaultStripeTimeout = 30 * time.Second

	eventCheckoutCompleted = "checkout.session.completed"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	APIBaseURL    string
	// PublicURL адрес витрины для success/cancel редиректов
	PublicURL string
	Timeout   time.Duration
}

type Stripe struct {
	conf       StripeConfig
	httpClient *http.Client
	now        func() time.Time
}

func NewStripe(conf StripeConfig, httpClient *http.Client) (*Stripe, error) {
	if conf.SecretKey == "" || conf.WebhookSecret == "" {
		return nil, fmt.Errorf("stripe: %w", entities.ErrNotConfigured)
	}
	if conf.APIBaseURL == "" {
		conf.APIBaseURL = "https://api.stripe.com"
	}
	if conf.Timeout <= 0 {
		conf.Timeout = DefaultStripeTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Stripe{conf: conf, httpClient: httpClient, now: time.Now}, nil
}

// StripeBuilder Builder для настроек из админки
func StripeBuilder(publicURL string, httpClient *http.Client) Builder {
	return func(conn entities.PaymentConnector) (Gateway, error) {
		return NewStripe(StripeConfig{
			SecretKey:     conn.Secrets["secret_key"],
			WebhookSecret: conn.Secrets["webhook_secret"],
			PublicURL:     publicURL,
		}, httpClient)
	}
}

func (s *Stripe) Method() string { return MethodStripe }

type checkoutSession struct {
	ID                string            `json:"id"`
	URL               string            `json:"url"`
	ClientReferenceID string            `json:"client_reference_id"`
	AmountTotal       int64             `json:"amount_total"`
	Currency          string            `json:"currency"`
	PaymentStatus     string            `json:"payment_status"`
	Metadata          map[string]string `json:"metadata"`
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object checkoutSession `json:"object"`
	} `json:"data"`
}

func (s *Stripe) CreatePaymentSession(ctx context.Context, order entities.Order) (Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.conf.Timeout)
	defer cancel()

	publicURL := strings.TrimRight(s.conf.PublicURL, "/")
	currency := strings.ToLower(order.Currency)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("client_reference_id", order.OrderID)
	form.Set("metadata[order_id]", order.OrderID)
	form.Set("success_url", publicURL+"/orders/"+url.PathEscape(order.OrderID)+"?payment=success")
	form.Set("cancel_url", publicURL+"/orders/"+url.PathEscape(order.OrderID)+"?payment=cancel")
	if order.CustomerEmail != "" {
		form.Set("customer_email", order.CustomerEmail)
	}
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(ToMinorUnits(order.Amount, order.Currency), 10))
	form.Set("line_items[0][price_data][product_data][name]", "eSIM "+order.PackageID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.conf.APIBaseURL, "/")+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Authorization", "Bearer "+s.conf.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", "checkout-"+order.OrderID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Session{}, fmt.Errorf("stripe: %w", entities.ErrUpstreamTimeout)
		}
		return Session{}, fmt.Errorf("failed to create stripe session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Session{}, &entities.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var out checkoutSession
	if err := json.Unmarshal(body, &out); err != nil {
		return Session{}, fmt.Errorf("failed to decode stripe session: %w", err)
	}
	if out.URL == "" {
		return Session{}, errors.New("stripe session has empty url")
	}
	return Session{PaymentURL: out.URL, ExternalID: out.ID}, nil
}

func (s *Stripe) ParseCallback(raw RawCallback) (Callback, error) {
	header := raw.Headers.Get(SignatureHeader)
	if header == "" {
		return Callback{}, errors.New("stripe callback: missing signature header")
	}
	ts, sigs := parseSignatureHeader(header)
	if ts == 0 || len(sigs) == 0 {
		return Callback{}, errors.New("stripe callback: malformed signature header")
	}

	var event stripeEvent
	if err := json.Unmarshal([]byte(raw.Payload), &event); err != nil {
		return Callback{}, fmt.Errorf("failed to decode stripe event: %w", err)
	}
	if event.Type != eventCheckoutCompleted {
		return Callback{}, fmt.Errorf("%s: %w", event.Type, ErrIgnoredEvent)
	}

	obj := event.Data.Object
	orderID := obj.ClientReferenceID
	if orderID == "" {
		orderID = obj.Metadata["order_id"]
	}
	if orderID == "" {
		return Callback{}, errors.New("stripe callback: session has no order reference")
	}

	return Callback{
		Method:     MethodStripe,
		OrderID:    orderID,
		InvoiceID:  obj.ID,
		PaidAmount: FromMinorUnits(obj.AmountTotal, obj.Currency),
		Currency:   strings.ToUpper(obj.Currency),
		Signature:  strings.Join(sigs, ","),
		Fields:     map[string]string{"event_id": event.ID, "payment_status": obj.PaymentStatus},
		Payload:    []byte(raw.Payload),
		Timestamp:  ts,
	}, nil
}

func (s *Stripe) ValidateCallback(cb Callback, order entities.Order) Validation {
	if cb.OrderID != order.OrderID {
		return invalid(cb, "order id mismatch")
	}

	signedAt := time.Unix(cb.Timestamp, 0)
	if age := s.now().Sub(signedAt); age > SignatureTolerance || age < -SignatureTolerance {
		return invalid(cb, "signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(s.conf.WebhookSecret))
	mac.Write([]byte(strconv.FormatInt(cb.Timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(cb.Payload)
	expected := mac.Sum(nil)

	matched := false
	for _, sig := range strings.Split(cb.Signature, ",") {
		decoded, err := hex.DecodeString(sig)
		if err == nil && hmac.Equal(decoded, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return invalid(cb, "signature mismatch")
	}

	if cb.Fields["payment_status"] != "paid" {
		return invalid(cb, "session is not paid")
	}
	if !strings.EqualFold(cb.Currency, order.Currency) {
		return invalid(cb, "currency mismatch")
	}
	if !AmountsMatch(cb.PaidAmount, order.Amount, order.Currency) {
		return invalid(cb, "amount mismatch")
	}
	return Validation{OrderID: order.OrderID, PaidAmount: cb.PaidAmount, Valid: true}
}

func (s *Stripe) Ack(Callback) string {
	return `{"received":true}`
}

// parseSignatureHeader разбирает "t=...,v1=...,v1=..."
func parseSignatureHeader(header string) (int64, []string) {
	var ts int64
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, _ = strconv.ParseInt(v, 10, 64)
		case "v1":
			sigs = append(sigs, v)
		}
	}
	return ts, sigs
}
