package repo

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var orderColumns = []string{
	"order_id", "type", "package_id", "iccid", "customer_email", "user_id",
	"amount", "currency", "quantity", "payment_method", "status",
	"qr_code", "qr_code_url", "direct_apple_installation_url", "lpa", "matching_id",
	"metadata", "created_at", "updated_at",
}

type Order struct {
	OrderID       string          `db:"order_id"`
	Type          string          `db:"type"`
	PackageID     string          `db:"package_id"`
	ICCID         sql.NullString  `db:"iccid"`
	CustomerEmail string          `db:"customer_email"`
	UserID        sql.NullString  `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	Quantity      int             `db:"quantity"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`

	QRCode                     sql.NullString `db:"qr_code"`
	QRCodeURL                  sql.NullString `db:"qr_code_url"`
	DirectAppleInstallationURL sql.NullString `db:"direct_apple_installation_url"`
	LPA                        sql.NullString `db:"lpa"`
	MatchingID                 sql.NullString `db:"matching_id"`

	Metadata  JSONMap   `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type StatusChange struct {
	OrderID   string         `db:"order_id"`
	From      sql.NullString `db:"from_status"`
	To        string         `db:"to_status"`
	ChangedAt time.Time      `db:"changed_at"`
}

type Package struct {
	Slug            string          `db:"slug"`
	ProviderSlug    sql.NullString  `db:"provider_slug"`
	Title           string          `db:"title"`
	Price           decimal.Decimal `db:"price"`
	Currency        string          `db:"currency"`
	Prices          JSONMap         `db:"prices"`
	DataAmountMB    int             `db:"data_amount_mb"`
	ValidityDays    int             `db:"validity_days"`
	CountryCodes    pq.StringArray  `db:"country_codes"`
	IsTopupEligible bool            `db:"is_topup_eligible"`
}

// JSONMap jsonb колонка
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("jsonb: unsupported source type")
	}
	out := JSONMap{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

func OrderToEntity(o Order) entities.Order {
	metadata := map[string]any(o.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return entities.Order{
		OrderID:       o.OrderID,
		Type:          entities.OrderType(o.Type),
		PackageID:     o.PackageID,
		ICCID:         nullStringToString(o.ICCID),
		CustomerEmail: o.CustomerEmail,
		UserID:        nullStringToString(o.UserID),
		Amount:        o.Amount,
		Currency:      o.Currency,
		Quantity:      o.Quantity,
		PaymentMethod: o.PaymentMethod,
		Status:        entities.OrderStatus(o.Status),
		Provisioning: entities.Provisioning{
			QRCode:                     nullStringToString(o.QRCode),
			QRCodeURL:                  nullStringToString(o.QRCodeURL),
			DirectAppleInstallationURL: nullStringToString(o.DirectAppleInstallationURL),
			LPA:                        nullStringToString(o.LPA),
			MatchingID:                 nullStringToString(o.MatchingID),
		},
		Metadata:  metadata,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func StatusChangeToEntity(s StatusChange) entities.StatusChange {
	return entities.StatusChange{
		OrderID:   s.OrderID,
		From:      entities.OrderStatus(nullStringToString(s.From)),
		To:        entities.OrderStatus(s.To),
		ChangedAt: s.ChangedAt,
	}
}

func PackageToEntity(p Package) entities.Package {
	prices := make(map[string]decimal.Decimal, len(p.Prices))
	for currency, raw := range p.Prices {
		if price, ok := toDecimal(raw); ok {
			prices[currency] = price
		}
	}
	return entities.Package{
		Slug:            p.Slug,
		ProviderSlug:    nullStringToString(p.ProviderSlug),
		Title:           p.Title,
		Price:           p.Price,
		Currency:        p.Currency,
		Prices:          prices,
		DataAmountMB:    p.DataAmountMB,
		ValidityDays:    p.ValidityDays,
		CountryCodes:    []string(p.CountryCodes),
		IsTopupEligible: p.IsTopupEligible,
	}
}

// toDecimal цены в jsonb лежат и числами, и строками
func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x), true
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
