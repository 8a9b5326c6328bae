package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeNewESIM OrderType = "new_esim"
	OrderTypeTopup   OrderType = "topup"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeNewESIM || t == OrderTypeTopup
}

// Ключи metadata, которые пишет сам сервис
const (
	MetaProviderPackage   = "airalo_package_slug"
	MetaExistingICCID     = "existing_esim_iccid"
	MetaCountryCode       = "country_code"
	MetaProviderOrderID   = "airalo_order_id"
	MetaProviderOrderCode = "airalo_order_code"
	MetaError             = "error"
	MetaErrorKind         = "error_kind"
	MetaPaymentMethod     = "payment_method"
	MetaPaidAmount        = "paid_amount"
	MetaPaidAt            = "paid_at"
	MetaFailedAt          = "failed_at"
	MetaExpiredAt         = "expired_at"
)

// Provisioning данные для установки профиля, заполняются после успешного провижининга
type Provisioning struct {
	QRCode                     string
	QRCodeURL                  string
	DirectAppleInstallationURL string
	LPA                        string
	MatchingID                 string
}

func (p Provisioning) Empty() bool {
	return p == Provisioning{}
}

type Order struct {
	OrderID       string
	Type          OrderType
	PackageID     string
	ICCID         string
	CustomerEmail string
	UserID        string

	Amount        decimal.Decimal
	Currency      string
	Quantity      int
	PaymentMethod string

	Status       OrderStatus
	Provisioning Provisioning
	Metadata     map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Order) IsTopup() bool {
	return o.Type == OrderTypeTopup
}

// ProvisioningResult ответ провайдера после создания SIM или пополнения
type ProvisioningResult struct {
	ProviderOrderID   string
	ProviderOrderCode string
	ICCID             string
	Provisioning      Provisioning
}

// StatusUpdate то, что пишется вместе со сменой статуса
type StatusUpdate struct {
	ICCID        string
	Provisioning Provisioning
	Metadata     map[string]any
}

type StatusChange struct {
	OrderID   string
	From      OrderStatus
	To        OrderStatus
	ChangedAt time.Time
}
