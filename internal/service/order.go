package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/trm"
	"github.com/shopspring/decimal"
)

type Ledger interface {
	// CreatePending идемпотентна: повторный order_id даёт ErrDuplicateOrder
	CreatePending(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, orderID string) (entities.Order, error)
	GetByICCID(ctx context.Context, iccid string) (entities.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to entities.OrderStatus, upd entities.StatusUpdate) (entities.Order, error)
	LockOrder(ctx context.Context, orderID string) error
	Delete(ctx context.Context, orderID string) error
	DeleteHistory(ctx context.Context, orderID string) error
	ListByEmail(ctx context.Context, email string, statuses ...entities.OrderStatus) ([]entities.Order, error)
	ExpirePending(ctx context.Context, olderThan time.Time) ([]string, error)
	History(ctx context.Context, orderID string) ([]entities.StatusChange, error)
}

type Catalog interface {
	GetPackage(ctx context.Context, slug string) (entities.Package, error)
}

type Provisioner interface {
	ProvisionESIM(ctx context.Context, packageSlug string) (entities.ProvisioningResult, error)
	ProvisionTopup(ctx context.Context, iccid, packageSlug string) (entities.ProvisioningResult, error)
	Usage(ctx context.Context, iccid string) (entities.Usage, error)
}

type Gateways interface {
	Get(ctx context.Context, method string) (payment.Gateway, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, order entities.Order) error
}

type Notifier interface {
	OrderActivated(ctx context.Context, order entities.Order) error
}

type CreateOrderInput struct {
	OrderID       string
	Type          entities.OrderType
	PackageID     string
	ICCID         string
	CustomerEmail string
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	Quantity      int
	PaymentMethod string
	CountryCode   string
}

type CreateOrderResult struct {
	Order      entities.Order
	PaymentURL string
	// Created false, если заказ с таким id уже был
	Created bool
}

type CallbackResult struct {
	Order entities.Order
	// Ack тело ответа платёжной системе
	Ack string
}

type orderService struct {
	logger      *slog.Logger
	txManager   trm.Manager
	ledger      Ledger
	catalog     Catalog
	provisioner Provisioner
	gateways    Gateways
	events      EventPublisher
	notifier    Notifier
	now         func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	ledger Ledger,
	catalog Catalog,
	provisioner Provisioner,
	gateways Gateways,
	events EventPublisher,
	notifier Notifier,
) *orderService {
	return &orderService{
		logger:      logger.With(slog.String("service", "order")),
		txManager:   txManager,
		ledger:      ledger,
		catalog:     catalog,
		provisioner: provisioner,
		gateways:    gateways,
		events:      events,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	if err := validateInput(&in); err != nil {
		return CreateOrderResult{}, err
	}

	pkg, err := s.catalog.GetPackage(ctx, in.PackageID)
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to get package %s: %w", in.PackageID, err)
	}
	if price, ok := pkg.PriceIn(in.Currency); ok {
		total := price.Mul(decimal.NewFromInt(int64(in.Quantity)))
		if !payment.AmountsMatch(in.Amount, total, in.Currency) {
			return CreateOrderResult{}, fmt.Errorf("amount %s does not match catalog price %s: %w",
				in.Amount, total, entities.ErrInvalidOrder)
		}
	}

	metadata := map[string]any{entities.MetaProviderPackage: pkg.UpstreamSlug()}
	if cc := countryCode(in.CountryCode, pkg); cc != "" {
		metadata[entities.MetaCountryCode] = cc
	}

	if in.Type == entities.OrderTypeTopup {
		if !pkg.IsTopupEligible {
			return CreateOrderResult{}, fmt.Errorf("package %s is not topup eligible: %w", pkg.Slug, entities.ErrInvalidOrder)
		}
		target, err := s.ledger.GetByICCID(ctx, in.ICCID)
		if errors.Is(err, entities.ErrOrderNotFound) {
			return CreateOrderResult{}, entities.ErrTopupTarget
		}
		if err != nil {
			return CreateOrderResult{}, fmt.Errorf("failed to get topup target: %w", err)
		}
		if target.Type != entities.OrderTypeNewESIM || target.Status != entities.StatusActive {
			return CreateOrderResult{}, entities.ErrTopupTarget
		}
		metadata[entities.MetaExistingICCID] = in.ICCID
	}

	gw, err := s.gateways.Get(ctx, in.PaymentMethod)
	if err != nil {
		return CreateOrderResult{}, err
	}

	order := entities.Order{
		OrderID:       in.OrderID,
		Type:          in.Type,
		PackageID:     in.PackageID,
		CustomerEmail: in.CustomerEmail,
		UserID:        in.UserID,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Quantity:      in.Quantity,
		PaymentMethod: in.PaymentMethod,
		Status:        entities.StatusPending,
		Metadata:      metadata,
	}
	// у пополнения ICCID берётся из существующей eSIM и не меняется
	if in.Type == entities.OrderTypeTopup {
		order.ICCID = in.ICCID
	}

	created := true
	order, err = s.ledger.CreatePending(ctx, order)
	if errors.Is(err, entities.ErrDuplicateOrder) {
		created = false
		order, err = s.ledger.GetByID(ctx, in.OrderID)
	}
	if err != nil {
		return CreateOrderResult{}, fmt.Errorf("failed to create order: %w", err)
	}

	res := CreateOrderResult{Order: order, Created: created}
	if created {
		transitionsTotal.WithLabelValues(string(entities.StatusPending)).Inc()
		s.publish(ctx, order)
		s.logger.Info("order created",
			slog.String("order_id", order.OrderID),
			slog.String("type", string(order.Type)),
			slog.String("package_id", order.PackageID),
		)
	}

	// ссылка на оплату нужна, только пока заказ не оплачен
	if order.Status != entities.StatusPending {
		return res, nil
	}
	session, err := gw.CreatePaymentSession(ctx, order)
	if err != nil {
		s.logger.Error("failed to create payment session", slog.String("order_id", order.OrderID), slog.Any("error", err))
		return CreateOrderResult{}, fmt.Errorf("failed to create payment session: %w", err)
	}
	res.PaymentURL = session.PaymentURL
	return res, nil
}

// HandlePaymentCallback проверяет колбэк и ведёт заказ pending -> paid -> processing -> active|failed.
// Повторная доставка того же колбэка провижининг не запускает.
func (s *orderService) HandlePaymentCallback(ctx context.Context, method string, raw payment.RawCallback) (CallbackResult, error) {
	logger := s.logger.With(slog.String("method", method))

	gw, err := s.gateways.Get(ctx, method)
	if err != nil {
		return CallbackResult{}, err
	}

	cb, err := gw.ParseCallback(raw)
	if errors.Is(err, payment.ErrIgnoredEvent) {
		callbacksTotal.WithLabelValues(method, "ignored").Inc()
		return CallbackResult{Ack: gw.Ack(cb)}, nil
	}
	if err != nil {
		callbacksTotal.WithLabelValues(method, "malformed").Inc()
		logger.Warn("malformed payment callback", slog.Any("error", err))
		return CallbackResult{}, fmt.Errorf("%w: %v", entities.ErrSignatureMismatch, err)
	}
	logger = logger.With(slog.String("order_id", cb.OrderID))

	order, err := s.ledger.GetByID(ctx, cb.OrderID)
	if err != nil {
		callbacksTotal.WithLabelValues(method, "unknown_order").Inc()
		return CallbackResult{}, err
	}

	validation := gw.ValidateCallback(cb, order)
	if !validation.Valid {
		callbacksTotal.WithLabelValues(method, "rejected").Inc()
		logger.Warn("payment callback rejected",
			slog.String("reason", validation.Reason),
			slog.String("paid_amount", validation.PaidAmount.String()),
		)
		return CallbackResult{}, entities.ErrSignatureMismatch
	}

	order, claimed, err := s.claim(ctx, order.OrderID, method, validation)
	if errors.Is(err, entities.ErrInvalidTransition) {
		callbacksTotal.WithLabelValues(method, "duplicate").Inc()
		raceErr := err
		order, err = s.ledger.GetByID(ctx, cb.OrderID)
		if err != nil {
			return CallbackResult{}, err
		}
		if order.Status == entities.StatusExpired {
			// заказ истёк между чтением и CAS, оплату возвращают вручную
			logger.Error("payment received for expired order", slog.String("paid_amount", validation.PaidAmount.String()))
		} else {
			logger.Warn("status transition raced, returning stored order",
				slog.String("status", string(order.Status)),
				slog.Any("error", raceErr),
			)
		}
		return CallbackResult{Order: order, Ack: gw.Ack(cb)}, nil
	}
	if err != nil {
		callbacksTotal.WithLabelValues(method, "error").Inc()
		return CallbackResult{}, err
	}
	if !claimed {
		callbacksTotal.WithLabelValues(method, "duplicate").Inc()
		logger.Info("duplicate payment callback", slog.String("status", string(order.Status)))
		return CallbackResult{Order: order, Ack: gw.Ack(cb)}, nil
	}
	callbacksTotal.WithLabelValues(method, "accepted").Inc()

	// провижининг должен дойти до записи результата, даже если клиент отвалился
	order, err = s.provision(context.WithoutCancel(ctx), order)
	if err != nil {
		return CallbackResult{}, err
	}
	return CallbackResult{Order: order, Ack: gw.Ack(cb)}, nil
}

// claim под блокировкой заказа переводит его в processing.
// claimed=false значит, что колбэк уже обработан раньше.
func (s *orderService) claim(ctx context.Context, orderID, method string, v payment.Validation) (entities.Order, bool, error) {
	var order entities.Order
	claimed := false

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.ledger.LockOrder(ctx, orderID); err != nil {
			return err
		}
		current, err := s.ledger.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		order = current

		if current.Status.Reached(entities.StatusProcessing) {
			if current.Status == entities.StatusExpired {
				s.logger.Error("payment received for expired order",
					slog.String("order_id", orderID),
					slog.String("paid_amount", v.PaidAmount.String()),
				)
			}
			return nil
		}

		if current.Status == entities.StatusPending {
			current, err = s.ledger.UpdateStatus(ctx, orderID, entities.StatusPaid, entities.StatusUpdate{
				Metadata: map[string]any{
					entities.MetaPaymentMethod: method,
					entities.MetaPaidAmount:    v.PaidAmount.String(),
					entities.MetaPaidAt:        s.now().UTC().Format(time.RFC3339),
				},
			})
			if err != nil {
				return err
			}
		}

		order, err = s.ledger.UpdateStatus(ctx, orderID, entities.StatusProcessing, entities.StatusUpdate{})
		if err != nil {
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return entities.Order{}, false, err
	}

	if claimed {
		transitionsTotal.WithLabelValues(string(entities.StatusPaid)).Inc()
		transitionsTotal.WithLabelValues(string(entities.StatusProcessing)).Inc()
		s.publish(ctx, order)
	}
	return order, claimed, nil
}

// provision один вызов провайдера без автоматических повторов
func (s *orderService) provision(ctx context.Context, order entities.Order) (entities.Order, error) {
	logger := s.logger.With(slog.String("order_id", order.OrderID), slog.String("type", string(order.Type)))

	slug := order.PackageID
	if v, ok := order.Metadata[entities.MetaProviderPackage].(string); ok && v != "" {
		slug = v
	}

	var (
		res entities.ProvisioningResult
		err error
	)
	if order.IsTopup() {
		res, err = s.provisioner.ProvisionTopup(ctx, order.ICCID, slug)
	} else {
		res, err = s.provisioner.ProvisionESIM(ctx, slug)
	}

	if err != nil {
		kind := entities.ErrorKind(err)
		provisioningTotal.WithLabelValues(string(order.Type), kind).Inc()
		logger.Error("provisioning failed", slog.String("error_kind", kind), slog.Any("error", err))

		failed, uerr := s.ledger.UpdateStatus(ctx, order.OrderID, entities.StatusFailed, entities.StatusUpdate{
			Metadata: map[string]any{
				entities.MetaError:     err.Error(),
				entities.MetaErrorKind: kind,
				entities.MetaFailedAt:  s.now().UTC().Format(time.RFC3339),
			},
		})
		if uerr != nil {
			logger.Error("failed to persist provisioning failure", slog.Any("error", uerr))
			return entities.Order{}, fmt.Errorf("failed to mark order failed: %w", uerr)
		}
		transitionsTotal.WithLabelValues(string(entities.StatusFailed)).Inc()
		s.publish(ctx, failed)
		return failed, nil
	}
	provisioningTotal.WithLabelValues(string(order.Type), "ok").Inc()

	upd := entities.StatusUpdate{
		Provisioning: res.Provisioning,
		Metadata: map[string]any{
			entities.MetaProviderOrderID:   res.ProviderOrderID,
			entities.MetaProviderOrderCode: res.ProviderOrderCode,
		},
	}
	if !order.IsTopup() {
		upd.ICCID = res.ICCID
	}

	active, err := s.ledger.UpdateStatus(ctx, order.OrderID, entities.StatusActive, upd)
	if err != nil {
		// провайдер уже выпустил eSIM, результат надо восстанавливать вручную
		logger.Error("failed to persist provisioning result",
			slog.String("iccid", res.ICCID),
			slog.String("provider_order_id", res.ProviderOrderID),
			slog.Any("error", err),
		)
		return entities.Order{}, fmt.Errorf("failed to mark order active: %w", err)
	}
	transitionsTotal.WithLabelValues(string(entities.StatusActive)).Inc()
	logger.Info("order activated", slog.String("iccid", active.ICCID))

	s.publish(ctx, active)
	if s.notifier != nil {
		if err := s.notifier.OrderActivated(ctx, active); err != nil {
			logger.Warn("failed to send activation email", slog.Any("error", err))
		}
	}
	return active, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (entities.Order, error) {
	return s.ledger.GetByID(ctx, orderID)
}

func (s *orderService) GetOrderByICCID(ctx context.Context, iccid string) (entities.Order, error) {
	return s.ledger.GetByICCID(ctx, iccid)
}

func (s *orderService) ListOrders(ctx context.Context, email string, statuses ...entities.OrderStatus) ([]entities.Order, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", st, entities.ErrInvalidOrder)
		}
	}
	return s.ledger.ListByEmail(ctx, email, statuses...)
}

func (s *orderService) History(ctx context.Context, orderID string) ([]entities.StatusChange, error) {
	if _, err := s.ledger.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.ledger.History(ctx, orderID)
}

// CancelOrder удаляет заказ, затем его историю.
// Ошибка второго шага логируется как несработавшая компенсация.
func (s *orderService) CancelOrder(ctx context.Context, orderID string) error {
	if err := s.ledger.Delete(ctx, orderID); err != nil {
		return err
	}
	if err := s.ledger.DeleteHistory(ctx, orderID); err != nil {
		s.logger.Error("compensating action failed: order history not deleted",
			slog.String("order_id", orderID),
			slog.Any("error", err),
		)
	}
	s.logger.Info("order deleted", slog.String("order_id", orderID))
	return nil
}

// Usage расход по eSIM, выпущенной этим сервисом
func (s *orderService) Usage(ctx context.Context, iccid string) (entities.Usage, error) {
	order, err := s.ledger.GetByICCID(ctx, iccid)
	if err != nil {
		return entities.Usage{}, err
	}

	usage, err := s.provisioner.Usage(ctx, iccid)
	if err != nil {
		return entities.Usage{}, err
	}

	validity := 0
	if pkg, err := s.catalog.GetPackage(ctx, order.PackageID); err == nil {
		validity = pkg.ValidityDays
	} else {
		s.logger.Warn("package lookup failed for usage", slog.String("package_id", order.PackageID), slog.Any("error", err))
	}
	usage.Fill(s.now(), validity)
	return usage, nil
}

// ExpireAbandoned pending -> expired для заказов старше ttl
func (s *orderService) ExpireAbandoned(ctx context.Context, ttl time.Duration) ([]string, error) {
	ids, err := s.ledger.ExpirePending(ctx, s.now().Add(-ttl))
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		ordersExpired.Inc()
		transitionsTotal.WithLabelValues(string(entities.StatusExpired)).Inc()
		s.publish(ctx, entities.Order{OrderID: id, Status: entities.StatusExpired})
	}
	return ids, nil
}

func (s *orderService) publish(ctx context.Context, order entities.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, order); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("order_id", order.OrderID),
			slog.String("status", string(order.Status)),
			slog.Any("error", err),
		)
	}
}

func validateInput(in *CreateOrderInput) error {
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Type == "" {
		in.Type = entities.OrderTypeNewESIM
	}

	switch {
	case strings.TrimSpace(in.OrderID) == "":
		return fmt.Errorf("order id is required: %w", entities.ErrInvalidOrder)
	case !in.Type.Valid():
		return fmt.Errorf("unknown order type %q: %w", in.Type, entities.ErrInvalidOrder)
	case in.PackageID == "":
		return fmt.Errorf("package id is required: %w", entities.ErrInvalidOrder)
	case in.CustomerEmail == "":
		return fmt.Errorf("customer email is required: %w", entities.ErrInvalidOrder)
	case !in.Amount.IsPositive():
		return fmt.Errorf("amount must be positive: %w", entities.ErrInvalidOrder)
	case len(in.Currency) != 3:
		return fmt.Errorf("invalid currency %q: %w", in.Currency, entities.ErrInvalidOrder)
	case in.Quantity < 1:
		return fmt.Errorf("quantity must be at least 1: %w", entities.ErrInvalidOrder)
	case in.PaymentMethod == "":
		return fmt.Errorf("payment method is required: %w", entities.ErrInvalidOrder)
	case in.Type == entities.OrderTypeTopup && in.ICCID == "":
		return fmt.Errorf("iccid is required for topup: %w", entities.ErrInvalidOrder)
	}
	return nil
}

func countryCode(requested string, pkg entities.Package) string {
	if requested != "" {
		return strings.ToUpper(requested)
	}
	if len(pkg.CountryCodes) == 1 {
		return pkg.CountryCodes[0]
	}
	return ""
}
