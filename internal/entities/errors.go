package entities

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrPackageNotFound      = errors.New("package not found")
	ErrDuplicateOrder       = errors.New("order already exists")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDeleteForbidden      = errors.New("order cannot be deleted in current status")
	ErrInvalidOrder         = errors.New("invalid order")
	ErrTopupTarget          = errors.New("topup target esim not found or not active")
	ErrSignatureMismatch    = errors.New("payment callback signature or amount mismatch")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// ErrNotConfigured нет учётных данных ни в окружении, ни в админке
	ErrNotConfigured = errors.New("provider credentials are not configured")

	// ErrUpstreamTimeout провайдер не ответил за отведённое время.
	// Побочный эффект на стороне провайдера мог произойти.
	ErrUpstreamTimeout = errors.New("upstream request timed out")
)

// AuthenticationError токен-эндпоинт провайдера вернул не 2xx
type AuthenticationError struct {
	Status int
	Body   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("provider authentication failed: status=%d", e.Status)
}

// UpstreamError провайдер вернул не 2xx на запрос провижининга или расхода
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed: status=%d", e.Status)
}

// ErrorKind короткая метка ошибки для metadata и метрик
func ErrorKind(err error) string {
	var authErr *AuthenticationError
	var upErr *UpstreamError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.As(err, &upErr):
		return "upstream_error"
	case errors.As(err, &authErr):
		return "authentication_error"
	case errors.Is(err, ErrNotConfigured):
		return "configuration_error"
	default:
		return "internal_error"
	}
}

// ProviderCredentials client credentials для API провайдера eSIM
type ProviderCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func (c ProviderCredentials) Empty() bool {
	return c.ClientID == "" || c.ClientSecret == ""
}

// PaymentConnector настройки платёжного коннектора из админки
type PaymentConnector struct {
	Method   string            `json:"method"`
	Enabled  bool              `json:"enabled"`
	TestMode bool              `json:"test_mode"`
	Secrets  map[string]string `json:"secrets"`
}
