package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const (
	providerCredentialsKey = "airalo_credentials"
	connectorKeyPrefix     = "payment_connector:"
)

// settingsRepo настройки, которые заводятся в админке
type settingsRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewSettingsRepo(db *sqlx.DB) *settingsRepo {
	return &settingsRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *settingsRepo) ProviderCredentials(ctx context.Context) (entities.ProviderCredentials, error) {
	var creds entities.ProviderCredentials
	if err := r.get(ctx, providerCredentialsKey, &creds); err != nil {
		return entities.ProviderCredentials{}, err
	}
	if creds.Empty() {
		return entities.ProviderCredentials{}, entities.ErrNotConfigured
	}
	return creds, nil
}

func (r *settingsRepo) PaymentConnector(ctx context.Context, method string) (entities.PaymentConnector, error) {
	var conn entities.PaymentConnector
	if err := r.get(ctx, connectorKeyPrefix+method, &conn); err != nil {
		return entities.PaymentConnector{}, err
	}
	if conn.Method == "" {
		conn.Method = method
	}
	return conn, nil
}

func (r *settingsRepo) get(ctx context.Context, key string, dest any) error {
	query, args := r.qb.Select("value").
		From("admin_settings").
		Where(sq.Eq{"key": key}).
		MustSql()

	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrNotConfigured
	}
	if err != nil {
		return fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return nil
}
