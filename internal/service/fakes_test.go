package service_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/shopspring/decimal"
)

// memLedger ledger в памяти с теми же гарантиями CAS, что и у postgres
type memLedger struct {
	mu      sync.Mutex
	orders  map[string]entities.Order
	history []entities.StatusChange

	deleteHistoryErr error
	// beforeUpdate вызывается под мьютексом до проверки перехода
	beforeUpdate func(o *entities.Order, to entities.OrderStatus)
}

func newMemLedger() *memLedger {
	return &memLedger{orders: make(map[string]entities.Order)}
}

func (l *memLedger) seed(o entities.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if o.Metadata == nil {
		o.Metadata = map[string]any{}
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	l.orders[o.OrderID] = o
}

func (l *memLedger) statuses(orderID string) []entities.OrderStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entities.OrderStatus
	for _, h := range l.history {
		if h.OrderID == orderID {
			out = append(out, h.To)
		}
	}
	return out
}

func (l *memLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.orders)
}

func (l *memLedger) CreatePending(_ context.Context, o entities.Order) (entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.orders[o.OrderID]; ok {
		return entities.Order{}, entities.ErrDuplicateOrder
	}
	o.Status = entities.StatusPending
	o.Metadata = maps.Clone(o.Metadata)
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	l.orders[o.OrderID] = o
	l.history = append(l.history, entities.StatusChange{OrderID: o.OrderID, To: entities.StatusPending, ChangedAt: o.CreatedAt})
	return o, nil
}

func (l *memLedger) GetByID(_ context.Context, orderID string) (entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	o.Metadata = maps.Clone(o.Metadata)
	return o, nil
}

func (l *memLedger) GetByICCID(_ context.Context, iccid string) (entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, o := range l.orders {
		if o.ICCID == iccid && o.Type == entities.OrderTypeNewESIM {
			return o, nil
		}
	}
	return entities.Order{}, entities.ErrOrderNotFound
}

func (l *memLedger) UpdateStatus(_ context.Context, orderID string, to entities.OrderStatus, upd entities.StatusUpdate) (entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if l.beforeUpdate != nil {
		l.beforeUpdate(&o, to)
		l.orders[orderID] = o
	}
	if !entities.CanTransition(o.Status, to) {
		return entities.Order{}, fmt.Errorf("%s -> %s: %w", o.Status, to, entities.ErrInvalidTransition)
	}

	from := o.Status
	o.Status = to
	if o.ICCID == "" {
		o.ICCID = upd.ICCID
	}
	if !upd.Provisioning.Empty() {
		o.Provisioning = upd.Provisioning
	}
	o.Metadata = maps.Clone(o.Metadata)
	maps.Copy(o.Metadata, upd.Metadata)
	o.UpdatedAt = time.Now()
	l.orders[orderID] = o
	l.history = append(l.history, entities.StatusChange{OrderID: orderID, From: from, To: to, ChangedAt: o.UpdatedAt})
	return o, nil
}

func (l *memLedger) LockOrder(context.Context, string) error { return nil }

func (l *memLedger) Delete(_ context.Context, orderID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.orders[orderID]
	if !ok {
		return entities.ErrOrderNotFound
	}
	if !o.Status.Deletable() {
		return entities.ErrDeleteForbidden
	}
	delete(l.orders, orderID)
	return nil
}

func (l *memLedger) DeleteHistory(_ context.Context, orderID string) error {
	if l.deleteHistoryErr != nil {
		return l.deleteHistoryErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.history[:0]
	for _, h := range l.history {
		if h.OrderID != orderID {
			kept = append(kept, h)
		}
	}
	l.history = kept
	return nil
}

func (l *memLedger) ListByEmail(_ context.Context, email string, statuses ...entities.OrderStatus) ([]entities.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entities.Order
	for _, o := range l.orders {
		if !strings.EqualFold(o.CustomerEmail, email) {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, o.Status) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (l *memLedger) ExpirePending(_ context.Context, olderThan time.Time) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ids []string
	for id, o := range l.orders {
		if o.Status == entities.StatusPending && o.CreatedAt.Before(olderThan) {
			o.Status = entities.StatusExpired
			l.orders[id] = o
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (l *memLedger) History(_ context.Context, orderID string) ([]entities.StatusChange, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []entities.StatusChange
	for _, h := range l.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

func containsStatus(list []entities.OrderStatus, s entities.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type memCatalog map[string]entities.Package

func (c memCatalog) GetPackage(_ context.Context, slug string) (entities.Package, error) {
	pkg, ok := c[slug]
	if !ok {
		return entities.Package{}, entities.ErrPackageNotFound
	}
	return pkg, nil
}

// fakeGateway колбэк вида "order_id|amount|signature"
type fakeGateway struct{}

func (fakeGateway) Method() string { return "fake" }

func (fakeGateway) CreatePaymentSession(_ context.Context, o entities.Order) (payment.Session, error) {
	return payment.Session{PaymentURL: "https://pay.example.com/checkout/" + o.OrderID}, nil
}

func (fakeGateway) ParseCallback(raw payment.RawCallback) (payment.Callback, error) {
	if raw.Payload == "ping" {
		return payment.Callback{}, payment.ErrIgnoredEvent
	}
	parts := strings.Split(raw.Payload, "|")
	if len(parts) != 3 {
		return payment.Callback{}, errors.New("malformed")
	}
	amount, err := decimal.NewFromString(parts[1])
	if err != nil {
		return payment.Callback{}, err
	}
	return payment.Callback{Method: "fake", OrderID: parts[0], InvoiceID: parts[0], PaidAmount: amount, Signature: parts[2]}, nil
}

func (fakeGateway) ValidateCallback(cb payment.Callback, o entities.Order) payment.Validation {
	v := payment.Validation{OrderID: cb.OrderID, PaidAmount: cb.PaidAmount}
	switch {
	case cb.Signature != "valid":
		v.Reason = "signature mismatch"
	case !payment.AmountsMatch(cb.PaidAmount, o.Amount, o.Currency):
		v.Reason = "amount mismatch"
	default:
		v.Valid = true
	}
	return v
}

func (fakeGateway) Ack(cb payment.Callback) string { return "OK" + cb.InvoiceID }

type fakeGateways struct{}

func (fakeGateways) Get(_ context.Context, method string) (payment.Gateway, error) {
	if method != "fake" {
		return nil, entities.ErrUnknownPaymentMethod
	}
	return fakeGateway{}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entities.OrderStatus
}

func (p *recordingPublisher) Publish(_ context.Context, o entities.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, o.Status)
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	activated []string
	err       error
}

func (n *recordingNotifier) OrderActivated(_ context.Context, o entities.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activated = append(n.activated, o.OrderID)
	return n.err
}
