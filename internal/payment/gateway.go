package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/shopspring/decimal"
)

const (
	MethodRobokassa = "robokassa"
	MethodStripe    = "stripe"
)

// ErrIgnoredEvent колбэк валиден по форме, но не про оплату, подтверждаем без обработки
var ErrIgnoredEvent = errors.New("callback event is not a payment confirmation")

type Session struct {
	PaymentURL string
	ExternalID string
}

// RawCallback колбэк в том виде, как он пришёл по HTTP или через Kafka
type RawCallback struct {
	Headers http.Header `json:"headers,omitempty"`
	Payload string      `json:"payload"`
}

// Callback разобранный колбэк платёжной системы
type Callback struct {
	Method     string
	OrderID    string
	InvoiceID  string
	PaidAmount decimal.Decimal
	Currency   string
	Signature  string
	Fields     map[string]string
	Payload    []byte
	Timestamp  int64
}

type Validation struct {
	OrderID    string
	PaidAmount decimal.Decimal
	Valid      bool
	Reason     string
}

func invalid(cb Callback, reason string) Validation {
	return Validation{OrderID: cb.OrderID, PaidAmount: cb.PaidAmount, Reason: reason}
}

type Gateway interface {
	Method() string
	// CreatePaymentSession ссылка на оплату без секретов в URL
	CreatePaymentSession(ctx context.Context, order entities.Order) (Session, error)
	ParseCallback(raw RawCallback) (Callback, error)
	// ValidateCallback проверяет подпись и сумму, ничего не меняет
	ValidateCallback(cb Callback, order entities.Order) Validation
	// Ack тело ответа, которое ждёт платёжная система
	Ack(cb Callback) string
}

type ConnectorStore interface {
	PaymentConnector(ctx context.Context, method string) (entities.PaymentConnector, error)
}

// Builder собирает шлюз из настроек коннектора в админке
type Builder func(conn entities.PaymentConnector) (Gateway, error)

// Registry шлюзы по способу оплаты: сначала из конфига, потом из админки
type Registry struct {
	mu       sync.RWMutex
	static   map[string]Gateway
	builders map[string]Builder
	store    ConnectorStore
}

func NewRegistry(store ConnectorStore) *Registry {
	return &Registry{
		static:   make(map[string]Gateway),
		builders: make(map[string]Builder),
		store:    store,
	}
}

func (r *Registry) Register(g Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.static[g.Method()] = g
}

func (r *Registry) RegisterBuilder(method string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[method] = b
}

func (r *Registry) Get(ctx context.Context, method string) (Gateway, error) {
	r.mu.RLock()
	g, ok := r.static[method]
	build, hasBuilder := r.builders[method]
	r.mu.RUnlock()

	if ok {
		return g, nil
	}
	if !hasBuilder || r.store == nil {
		return nil, fmt.Errorf("%s: %w", method, entities.ErrUnknownPaymentMethod)
	}

	conn, err := r.store.PaymentConnector(ctx, method)
	if errors.Is(err, entities.ErrNotConfigured) {
		return nil, fmt.Errorf("%s: %w", method, entities.ErrUnknownPaymentMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load connector %s: %w", method, err)
	}
	if !conn.Enabled {
		return nil, fmt.Errorf("%s is disabled: %w", method, entities.ErrUnknownPaymentMethod)
	}
	return build(conn)
}
