package handler

import (
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/internal/payment"
	"github.com/SergeyBogomolovv/esim-order-service/internal/service"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest запрос на создание заказа
type CreateOrderRequest struct {
	OrderID       string          `json:"order_id" validate:"required,max=64"`
	Type          string          `json:"type" validate:"omitempty,oneof=new_esim topup"`
	PackageID     string          `json:"package_id" validate:"required"`
	ICCID         string          `json:"iccid,omitempty" validate:"required_if=Type topup,omitempty,numeric"`
	CustomerEmail string          `json:"customer_email" validate:"required,email"`
	UserID        string          `json:"user_id,omitempty"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"9.99"`
	Currency      string          `json:"currency" validate:"required,len=3"`
	Quantity      int             `json:"quantity,omitempty" validate:"gte=0,lte=10"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	CountryCode   string          `json:"country_code,omitempty" validate:"omitempty,len=2"`
}

func (r CreateOrderRequest) ToInput() service.CreateOrderInput {
	return service.CreateOrderInput{
		OrderID:       r.OrderID,
		Type:          entities.OrderType(r.Type),
		PackageID:     r.PackageID,
		ICCID:         r.ICCID,
		CustomerEmail: r.CustomerEmail,
		UserID:        r.UserID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Quantity:      r.Quantity,
		PaymentMethod: r.PaymentMethod,
		CountryCode:   r.CountryCode,
	}
}

type CreateOrderResponse struct {
	Order      Order  `json:"order"`
	PaymentURL string `json:"payment_url,omitempty"`
}

// Order представляет заказ
type Order struct {
	OrderID       string         `json:"order_id"`
	Type          string         `json:"type"`
	PackageID     string         `json:"package_id"`
	ICCID         string         `json:"iccid,omitempty"`
	CustomerEmail string         `json:"customer_email"`
	UserID        string         `json:"user_id,omitempty"`
	Amount        string         `json:"amount"`
	Currency      string         `json:"currency"`
	Quantity      int            `json:"quantity"`
	PaymentMethod string         `json:"payment_method"`
	Status        string         `json:"status"`
	Provisioning  *Provisioning  `json:"provisioning,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Provisioning данные для установки eSIM
type Provisioning struct {
	QRCode                     string `json:"qr_code,omitempty"`
	QRCodeURL                  string `json:"qr_code_url,omitempty"`
	DirectAppleInstallationURL string `json:"direct_apple_installation_url,omitempty"`
	LPA                        string `json:"lpa,omitempty"`
	MatchingID                 string `json:"matching_id,omitempty"`
}

type StatusChange struct {
	From      string    `json:"from,omitempty"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// Usage расход по eSIM
type Usage struct {
	ICCID          string     `json:"iccid"`
	Status         string     `json:"status,omitempty"`
	Unlimited      bool       `json:"unlimited"`
	TotalMB        int        `json:"total_mb"`
	RemainingMB    int        `json:"remaining_mb"`
	UsedMB         int        `json:"used_mb"`
	UsedPercent    float64    `json:"used_percent"`
	TotalVoice     int        `json:"total_voice"`
	RemainingVoice int        `json:"remaining_voice"`
	TotalText      int        `json:"total_text"`
	RemainingText  int        `json:"remaining_text"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	DaysTotal      int        `json:"days_total"`
	DaysRemaining  int        `json:"days_remaining"`
}

// CallbackMessage колбэк оплаты, пересланный через Kafka
type CallbackMessage struct {
	Method  string              `json:"method" validate:"required"`
	Headers map[string][]string `json:"headers,omitempty"`
	Payload string              `json:"payload" validate:"required"`
}

func (m CallbackMessage) Raw() payment.RawCallback {
	return payment.RawCallback{Headers: m.Headers, Payload: m.Payload}
}

// publicMetadata ключи metadata, которые можно отдавать клиенту.
// Ошибки провайдера и его идентификаторы остаются в логах и ledger.
var publicMetadata = []string{
	entities.MetaCountryCode,
	entities.MetaExistingICCID,
	entities.MetaPaidAt,
	entities.MetaFailedAt,
	entities.MetaExpiredAt,
}

func metadataToJSON(meta map[string]any) map[string]any {
	res := make(map[string]any)
	for _, key := range publicMetadata {
		if v, ok := meta[key]; ok {
			res[key] = v
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

func OrderEntityToJSON(o entities.Order) Order {
	res := Order{
		OrderID:       o.OrderID,
		Type:          string(o.Type),
		PackageID:     o.PackageID,
		ICCID:         o.ICCID,
		CustomerEmail: o.CustomerEmail,
		UserID:        o.UserID,
		Amount:        o.Amount.StringFixed(payment.MinorDigits(o.Currency)),
		Currency:      o.Currency,
		Quantity:      o.Quantity,
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		Metadata:      metadataToJSON(o.Metadata),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if !o.Provisioning.Empty() {
		res.Provisioning = &Provisioning{
			QRCode:                     o.Provisioning.QRCode,
			QRCodeURL:                  o.Provisioning.QRCodeURL,
			DirectAppleInstallationURL: o.Provisioning.DirectAppleInstallationURL,
			LPA:                        o.Provisioning.LPA,
			MatchingID:                 o.Provisioning.MatchingID,
		}
	}
	return res
}

func StatusChangeEntityToJSON(c entities.StatusChange) StatusChange {
	return StatusChange{From: string(c.From), To: string(c.To), ChangedAt: c.ChangedAt}
}

func UsageEntityToJSON(u entities.Usage) Usage {
	return Usage{
		ICCID:          u.ICCID,
		Status:         u.Status,
		Unlimited:      u.Unlimited,
		TotalMB:        u.TotalMB,
		RemainingMB:    u.RemainingMB,
		UsedMB:         u.UsedMB,
		UsedPercent:    u.UsedPercent,
		TotalVoice:     u.TotalVoice,
		RemainingVoice: u.RemainingVoice,
		TotalText:      u.TotalText,
		RemainingText:  u.RemainingText,
		ExpiresAt:      u.ExpiresAt,
		DaysTotal:      u.DaysTotal,
		DaysRemaining:  u.DaysRemaining,
	}
}
