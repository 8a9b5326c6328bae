package repo

import (
	"database/sql"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap(t *testing.T) {
	t.Run("value of nil map", func(t *testing.T) {
		v, err := JSONMap(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "{}", v)
	})

	t.Run("scan bytes", func(t *testing.T) {
		var m JSONMap
		require.NoError(t, m.Scan([]byte(`{"airalo_order_id":"9666","attempt":1}`)))
		assert.Equal(t, "9666", m["airalo_order_id"])
		assert.Equal(t, float64(1), m["attempt"])
	})

	t.Run("scan null", func(t *testing.T) {
		m := JSONMap{"stale": true}
		require.NoError(t, m.Scan(nil))
		assert.Empty(t, m)
	})

	t.Run("scan unsupported", func(t *testing.T) {
		var m JSONMap
		assert.Error(t, m.Scan(42))
	})
}

func TestOrderToEntity(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	row := Order{
		OrderID:       "100200300",
		Type:          "new_esim",
		PackageID:     "hehe-plus-7days-1gb",
		ICCID:         sql.NullString{String: "8944465400000267221", Valid: true},
		CustomerEmail: "user@example.com",
		Amount:        decimal.RequireFromString("9.99"),
		Currency:      "USD",
		Quantity:      1,
		PaymentMethod: "robokassa",
		Status:        "active",
		QRCode:        sql.NullString{String: "LPA:1$lpa.airalo.com$X", Valid: true},
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	o := OrderToEntity(row)

	assert.Equal(t, entities.OrderTypeNewESIM, o.Type)
	assert.Equal(t, entities.StatusActive, o.Status)
	assert.Equal(t, "8944465400000267221", o.ICCID)
	assert.Empty(t, o.UserID)
	assert.Equal(t, "LPA:1$lpa.airalo.com$X", o.Provisioning.QRCode)
	assert.Empty(t, o.Provisioning.LPA)
	assert.NotNil(t, o.Metadata)
}

func TestPackageToEntity(t *testing.T) {
	p := PackageToEntity(Package{
		Slug:         "hehe-plus-7days-1gb",
		Price:        decimal.RequireFromString("9.99"),
		Currency:     "USD",
		Prices:       JSONMap{"EUR": "9.49", "RUB": float64(899), "BAD": true},
		ValidityDays: 7,
		CountryCodes: pq.StringArray{"TR"},
	})

	assert.Equal(t, "hehe-plus-7days-1gb", p.UpstreamSlug())
	assert.Len(t, p.Prices, 2)
	assert.True(t, p.Prices["EUR"].Equal(decimal.RequireFromString("9.49")))
	assert.True(t, p.Prices["RUB"].Equal(decimal.NewFromInt(899)))
	assert.Equal(t, []string{"TR"}, p.CountryCodes)
}

func TestStatusChangeToEntity(t *testing.T) {
	c := StatusChangeToEntity(StatusChange{OrderID: "1", To: "pending"})
	assert.Equal(t, entities.OrderStatus(""), c.From)
	assert.Equal(t, entities.StatusPending, c.To)
}
