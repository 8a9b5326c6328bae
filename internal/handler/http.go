package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/SergeyBogomolovv/esim-order-service/internal/service"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type OrderService interface {
	CreateOrder(ctx context.Context, in service.CreateOrderInput) (service.CreateOrderResult, error)
	HandlePaymentCallback(ctx context.Context, method string, raw payment.RawCallback) (service.CallbackResult, error)
	GetOrder(ctx context.Context, orderID string) (entities.Order, error)
	GetOrderByICCID(ctx context.Context, iccid string) (entities.Order, error)
	ListOrders(ctx context.Context, email string, statuses ...entities.OrderStatus) ([]entities.Order, error)
	History(ctx context.Context, orderID string) ([]entities.StatusChange, error)
	CancelOrder(ctx context.Context, orderID string) error
	Usage(ctx context.Context, iccid string) (entities.Usage, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{order_id}", h.GetOrder)
		r.Delete("/{order_id}", h.DeleteOrder)
		r.Get("/{order_id}/history", h.History)
	})
	r.Get("/esims/{iccid}", h.GetESIM)
	r.Get("/esims/{iccid}/usage", h.Usage)
	r.Post("/payments/{method}/callback", h.PaymentCallback)
	r.Get("/payments/{method}/callback", h.PaymentCallback)
}

// CreateOrder создаёт заказ в статусе pending и выдаёт ссылку на оплату.
// @Summary      Создать заказ
// @Description  Повторный запрос с тем же order_id возвращает существующий заказ
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      CreateOrderRequest  true  "Заказ"
// @Success      201  {object}  CreateOrderResponse "Заказ создан"
// @Success      200  {object}  CreateOrderResponse "Заказ уже существовал"
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Пакет не найден"
// @Failure      422  {object}  utils.ErrorResponse "Пополнение невозможно"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	res, err := h.svc.CreateOrder(ctx, req.ToInput())
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("order_id", req.OrderID))
		return
	}

	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	utils.WriteJSON(w, CreateOrderResponse{
		Order:      OrderEntityToJSON(res.Order),
		PaymentURL: res.PaymentURL,
	}, code)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Tags         orders
// @Produce      json
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.GetOrder(ctx, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("order_id", orderID))
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ListOrders заказы покупателя, новые первыми.
// @Summary      Заказы по email
// @Tags         orders
// @Produce      json
// @Param        email   query     string  true   "Email покупателя"
// @Param        status  query     []string  false  "Фильтр по статусам" collectionFormat(multi)
// @Success      200  {array}   Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := r.URL.Query().Get("email")

	if err := h.validate.Var(email, "required,email"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	var statuses []entities.OrderStatus
	for _, raw := range r.URL.Query()["status"] {
		st, ok := entities.ParseStatus(raw)
		if !ok {
			utils.WriteError(w, "unknown status "+raw, http.StatusBadRequest)
			return
		}
		statuses = append(statuses, st)
	}

	orders, err := h.svc.ListOrders(ctx, email, statuses...)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// DeleteOrder удаляет заказ, пока по нему не выпущена eSIM.
// @Summary      Удалить заказ
// @Tags         orders
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      204
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ нельзя удалить в текущем статусе"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id} [delete]
func (h *HTTPHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.svc.CancelOrder(ctx, orderID); err != nil {
		h.writeServiceError(ctx, w, err, slog.String("order_id", orderID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History история статусов заказа.
// @Summary      История статусов
// @Tags         orders
// @Produce      json
// @Param        order_id   path      string  true  "Идентификатор заказа"
// @Success      200  {array}   StatusChange
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{order_id}/history [get]
func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	history, err := h.svc.History(ctx, orderID)
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("order_id", orderID))
		return
	}

	res := make([]StatusChange, 0, len(history))
	for _, c := range history {
		res = append(res, StatusChangeEntityToJSON(c))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

// GetESIM заказ, по которому была выпущена eSIM.
// @Summary      Заказ по ICCID
// @Tags         esims
// @Produce      json
// @Param        iccid   path      string  true  "ICCID"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "eSIM не найдена"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /esims/{iccid} [get]
func (h *HTTPHandler) GetESIM(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	iccid := chi.URLParam(r, "iccid")

	if err := h.validate.Var(iccid, "required,numeric,min=18,max=22"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.GetOrderByICCID(ctx, iccid)
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("iccid", iccid))
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// Usage текущий расход по eSIM.
// @Summary      Расход eSIM
// @Tags         esims
// @Produce      json
// @Param        iccid   path      string  true  "ICCID"
// @Success      200  {object}  Usage
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "eSIM не найдена"
// @Failure      502  {object}  utils.ErrorResponse "Ошибка провайдера"
// @Failure      504  {object}  utils.ErrorResponse "Провайдер не ответил"
// @Router       /esims/{iccid}/usage [get]
func (h *HTTPHandler) Usage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	iccid := chi.URLParam(r, "iccid")

	if err := h.validate.Var(iccid, "required,numeric,min=18,max=22"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	usage, err := h.svc.Usage(ctx, iccid)
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("iccid", iccid))
		return
	}
	utils.WriteJSON(w, UsageEntityToJSON(usage), http.StatusOK)
}

// PaymentCallback уведомление платёжной системы об оплате.
// @Summary      Колбэк оплаты
// @Description  Тело ответа зависит от платёжной системы, для Robokassa это OK{InvId}
// @Tags         payments
// @Param        method   path      string  true  "Способ оплаты" Enums(robokassa, stripe)
// @Success      200  {string}  string
// @Failure      400  {object}  utils.ErrorResponse "Подпись или сумма не совпали"
// @Failure      404  {object}  utils.ErrorResponse "Заказ или способ оплаты не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payments/{method}/callback [post]
func (h *HTTPHandler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	method := chi.URLParam(r, "method")
	start := time.Now()

	payload := r.URL.RawQuery
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(io.LimitReader(r.Body, utils.MaxBodySize))
		if err != nil {
			utils.WriteError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		payload = string(body)
	}

	res, err := h.svc.HandlePaymentCallback(ctx, method, payment.RawCallback{
		Headers: r.Header.Clone(),
		Payload: payload,
	})
	callbackDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		h.writeServiceError(ctx, w, err, slog.String("method", method))
		return
	}

	if method == payment.MethodStripe {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, res.Ack)
		return
	}
	utils.WriteText(w, res.Ack, http.StatusOK)
}

// writeServiceError переводит ошибки сервиса в коды ответа. Тело ответа провайдера наружу не отдаётся.
func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, attrs ...any) {
	var upErr *entities.UpstreamError

	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrPackageNotFound):
		utils.WriteError(w, "package not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrUnknownPaymentMethod):
		utils.WriteError(w, "unknown payment method", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidOrder):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrSignatureMismatch):
		utils.WriteError(w, "invalid payment callback", http.StatusBadRequest)
	case errors.Is(err, entities.ErrTopupTarget):
		utils.WriteError(w, "esim is not eligible for topup", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrDeleteForbidden):
		utils.WriteError(w, "order cannot be deleted in current status", http.StatusConflict)
	case errors.Is(err, entities.ErrUpstreamTimeout):
		h.logger.WarnContext(ctx, "provider timeout", append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "provider did not respond", http.StatusGatewayTimeout)
	case errors.As(err, &upErr):
		h.logger.ErrorContext(ctx, "provider error", append(attrs, slog.Int("status", upErr.Status), slog.String("body", upErr.Body))...)
		utils.WriteError(w, "provider error", http.StatusBadGateway)
	default:
		h.logger.ErrorContext(ctx, "request failed", append(attrs, slog.Any("error", err))...)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
