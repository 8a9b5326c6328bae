package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type catalogRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewCatalogRepo(db *sqlx.DB) *catalogRepo {
	return &catalogRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *catalogRepo) GetPackage(ctx context.Context, slug string) (entities.Package, error) {
	query, args := r.qb.Select(
		"slug", "provider_slug", "title", "price", "currency", "prices",
		"data_amount_mb", "validity_days", "country_codes", "is_topup_eligible").
		From("packages").
		Where(sq.Eq{"slug": slug}).
		MustSql()

	var pkg Package
	err := r.db.GetContext(ctx, &pkg, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Package{}, entities.ErrPackageNotFound
	}
	if err != nil {
		return entities.Package{}, fmt.Errorf("failed to get package: %w", err)
	}
	return PackageToEntity(pkg), nil
}
