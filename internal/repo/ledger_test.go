package repo

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepo_InsertPendingQuery(t *testing.T) {
	r := NewLedgerRepo(nil, nil)

	query, args, err := r.insertPendingQuery(entities.Order{
		OrderID:       "100200300",
		Type:          entities.OrderTypeNewESIM,
		PackageID:     "hehe-plus-7days-1gb",
		CustomerEmail: "user@example.com",
		Amount:        decimal.RequireFromString("9.99"),
		Currency:      "usd",
		Quantity:      1,
		PaymentMethod: "robokassa",
	}).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO orders (order_id,type,package_id,iccid,"))
	assert.Contains(t, query, "VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)")
	// дубликат не перезаписывает строку и не возвращает её
	assert.Contains(t, query, " ON CONFLICT (order_id) DO NOTHING RETURNING order_id, type,")

	require.Len(t, args, 12)
	assert.Equal(t, "100200300", args[0])
	assert.Equal(t, sql.NullString{}, args[3])
	assert.Equal(t, "USD", args[7])
	assert.Equal(t, string(entities.StatusPending), args[10])
}

func TestLedgerRepo_UpdateStatusQuery(t *testing.T) {
	r := NewLedgerRepo(nil, nil)

	testCases := []struct {
		name      string
		to        entities.OrderStatus
		upd       entities.StatusUpdate
		wantSet   string
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "claim",
			to:        entities.StatusProcessing,
			wantSet:   "UPDATE orders SET status = $1, updated_at = now() WHERE",
			wantWhere: "WHERE order_id = $2 AND status IN ($3) RETURNING",
			wantArgs:  []any{"processing", "100200300", "paid"},
		},
		{
			name: "failure from two states",
			to:   entities.StatusFailed,
			upd: entities.StatusUpdate{
				Metadata: map[string]any{entities.MetaErrorKind: "upstream_timeout"},
			},
			wantSet:   "SET status = $1, updated_at = now(), metadata = metadata || $2::jsonb WHERE",
			wantWhere: "WHERE order_id = $3 AND status IN ($4,$5) RETURNING",
			wantArgs: []any{
				"failed", JSONMap{entities.MetaErrorKind: "upstream_timeout"},
				"100200300", "paid", "processing",
			},
		},
		{
			name: "activation keeps first iccid",
			to:   entities.StatusActive,
			upd: entities.StatusUpdate{
				ICCID:        "8985200000000000001",
				Provisioning: entities.Provisioning{QRCode: "LPA:1$x$y"},
			},
			wantSet: "SET status = $1, updated_at = now(), iccid = COALESCE(iccid, $2), " +
				"qr_code = $3, qr_code_url = $4, direct_apple_installation_url = $5, lpa = $6, matching_id = $7 WHERE",
			wantWhere: "WHERE order_id = $8 AND status IN ($9) RETURNING",
			wantArgs: []any{
				"active", "8985200000000000001",
				sql.NullString{String: "LPA:1$x$y", Valid: true}, sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{},
				"100200300", "processing",
			},
		},
		{
			name:      "expiry only from pending",
			to:        entities.StatusExpired,
			wantWhere: "WHERE order_id = $2 AND status IN ($3) RETURNING",
			wantArgs:  []any{"expired", "100200300", "pending"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, args, err := r.updateStatusQuery("100200300", tc.to, tc.upd).ToSql()
			require.NoError(t, err)

			if tc.wantSet != "" {
				assert.Contains(t, query, tc.wantSet)
			}
			assert.Contains(t, query, tc.wantWhere)
			assert.True(t, strings.HasSuffix(query, "RETURNING "+strings.Join(orderColumns, ", ")))
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestLedgerRepo_ExpirePendingQuery(t *testing.T) {
	r := NewLedgerRepo(nil, nil)
	cutoff := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := r.expirePendingQuery(cutoff).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE orders SET status = $1, updated_at = now(), metadata = metadata || jsonb_build_object($2::text, now()) "+
			"WHERE status IN ($3) AND created_at < $4 RETURNING order_id",
		query)
	assert.Equal(t, []any{"expired", entities.MetaExpiredAt, "pending", cutoff}, args)
}
