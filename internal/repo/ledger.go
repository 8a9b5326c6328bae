package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
	"github.com/SergeyBogomolovv/esim-order-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type ledgerRepo struct {
	db *sqlx.DB
	tm trm.Manager
	qb sq.StatementBuilderType
}

func NewLedgerRepo(db *sqlx.DB, tm trm.Manager) *ledgerRepo {
	return &ledgerRepo{
		db: db,
		tm: tm,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ledgerRepo) CreatePending(ctx context.Context, o entities.Order) (entities.Order, error) {
	var created Order
	err := r.tm.Do(ctx, func(ctx context.Context) error {
		query, args := r.insertPendingQuery(o).MustSql()

		err := trm.From(ctx, r.db).GetContext(ctx, &created, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrDuplicateOrder
		}
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		return r.appendHistory(ctx, o.OrderID, "", entities.StatusPending)
	})
	if err != nil {
		return entities.Order{}, err
	}
	return OrderToEntity(created), nil
}

func (r *ledgerRepo) GetByID(ctx context.Context, orderID string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	return r.getOne(ctx, query, args...)
}

// GetByICCID заказ new_esim, которым была выпущена SIM
func (r *ledgerRepo) GetByICCID(ctx context.Context, iccid string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"iccid": iccid, "type": string(entities.OrderTypeNewESIM)}).
		OrderBy("created_at").
		Limit(1).
		MustSql()

	return r.getOne(ctx, query, args...)
}

func (r *ledgerRepo) getOne(ctx context.Context, query string, args ...any) (entities.Order, error) {
	var order Order
	err := trm.From(ctx, r.db).GetContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return OrderToEntity(order), nil
}

// UpdateStatus меняет статус через compare-and-swap по допустимым предыдущим статусам.
// ICCID после первой записи не меняется, metadata дописывается.
func (r *ledgerRepo) UpdateStatus(ctx context.Context, orderID string, to entities.OrderStatus, upd entities.StatusUpdate) (entities.Order, error) {
	var updated Order
	err := r.tm.Do(ctx, func(ctx context.Context) error {
		q := trm.From(ctx, r.db)

		var from string
		query, args := r.qb.Select("status").From("orders").
			Where(sq.Eq{"order_id": orderID}).
			Suffix("FOR UPDATE").
			MustSql()
		err := q.GetContext(ctx, &from, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read order status: %w", err)
		}

		query, args = r.updateStatusQuery(orderID, to, upd).MustSql()
		err = q.GetContext(ctx, &updated, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s -> %s: %w", from, to, entities.ErrInvalidTransition)
		}
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		return r.appendHistory(ctx, orderID, entities.OrderStatus(from), to)
	})
	if err != nil {
		return entities.Order{}, err
	}
	return OrderToEntity(updated), nil
}

// LockOrder берёт advisory lock до конца текущей транзакции
func (r *ledgerRepo) LockOrder(ctx context.Context, orderID string) error {
	tx := trm.ExtractTx(ctx)
	if tx == nil {
		return errors.New("order lock requires a transaction")
	}
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", orderID); err != nil {
		return fmt.Errorf("failed to lock order: %w", err)
	}
	return nil
}

func (r *ledgerRepo) Delete(ctx context.Context, orderID string) error {
	return r.tm.Do(ctx, func(ctx context.Context) error {
		q := trm.From(ctx, r.db)

		var status string
		query, args := r.qb.Select("status").From("orders").
			Where(sq.Eq{"order_id": orderID}).
			Suffix("FOR UPDATE").
			MustSql()
		err := q.GetContext(ctx, &status, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read order status: %w", err)
		}
		if !entities.OrderStatus(status).Deletable() {
			return entities.ErrDeleteForbidden
		}

		query, args = r.qb.Delete("orders").
			Where(sq.Eq{
				"order_id": orderID,
				"status":   []string{string(entities.StatusPending), string(entities.StatusProcessing)},
			}).
			MustSql()
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return entities.ErrDeleteForbidden
		}
		return nil
	})
}

func (r *ledgerRepo) DeleteHistory(ctx context.Context, orderID string) error {
	query, args := r.qb.Delete("order_status_history").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()
	if _, err := trm.From(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order history: %w", err)
	}
	return nil
}

// ListByEmail заказы покупателя, новые первыми
func (r *ledgerRepo) ListByEmail(ctx context.Context, email string, statuses ...entities.OrderStatus) ([]entities.Order, error) {
	qb := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Expr("lower(customer_email) = lower(?)", email)).
		OrderBy("created_at DESC")
	if len(statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": statusStrings(statuses)})
	}
	query, args := qb.MustSql()

	var rows []Order
	if err := trm.From(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]entities.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, OrderToEntity(row))
	}
	return orders, nil
}

// ExpirePending переводит брошенные pending заказы в expired и возвращает их id
func (r *ledgerRepo) ExpirePending(ctx context.Context, olderThan time.Time) ([]string, error) {
	var ids []string
	err := r.tm.Do(ctx, func(ctx context.Context) error {
		q := trm.From(ctx, r.db)

		query, args := r.expirePendingQuery(olderThan).MustSql()
		if err := q.SelectContext(ctx, &ids, query, args...); err != nil {
			return fmt.Errorf("failed to expire orders: %w", err)
		}
		if len(ids) == 0 {
			return nil
		}

		insert := r.qb.Insert("order_status_history").Columns("order_id", "from_status", "to_status")
		for _, id := range ids {
			insert = insert.Values(id, string(entities.StatusPending), string(entities.StatusExpired))
		}
		query, args = insert.MustSql()
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to record expiry history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ledgerRepo) History(ctx context.Context, orderID string) ([]entities.StatusChange, error) {
	query, args := r.qb.Select("order_id", "from_status", "to_status", "changed_at").
		From("order_status_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("changed_at", "id").
		MustSql()

	var rows []StatusChange
	if err := trm.From(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order history: %w", err)
	}

	changes := make([]entities.StatusChange, 0, len(rows))
	for _, row := range rows {
		changes = append(changes, StatusChangeToEntity(row))
	}
	return changes, nil
}

// insertPendingQuery при конфликте order_id ничего не возвращает
func (r *ledgerRepo) insertPendingQuery(o entities.Order) sq.InsertBuilder {
	return r.qb.Insert("orders").
		Columns(
			"order_id", "type", "package_id", "iccid", "customer_email", "user_id",
			"amount", "currency", "quantity", "payment_method", "status", "metadata",
		).
		Values(
			o.OrderID, string(o.Type), o.PackageID, nullString(o.ICCID), o.CustomerEmail, nullString(o.UserID),
			o.Amount, strings.ToUpper(o.Currency), o.Quantity, o.PaymentMethod, string(entities.StatusPending),
			JSONMap(o.Metadata),
		).
		Suffix("ON CONFLICT (order_id) DO NOTHING RETURNING " + strings.Join(orderColumns, ", "))
}

// updateStatusQuery обновляет строку, только если текущий статус входит в AllowedFrom(to)
func (r *ledgerRepo) updateStatusQuery(orderID string, to entities.OrderStatus, upd entities.StatusUpdate) sq.UpdateBuilder {
	update := r.qb.Update("orders").
		Set("status", string(to)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"order_id": orderID, "status": statusStrings(entities.AllowedFrom(to))}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	if upd.ICCID != "" {
		update = update.Set("iccid", sq.Expr("COALESCE(iccid, ?)", upd.ICCID))
	}
	if !upd.Provisioning.Empty() {
		p := upd.Provisioning
		update = update.
			Set("qr_code", nullString(p.QRCode)).
			Set("qr_code_url", nullString(p.QRCodeURL)).
			Set("direct_apple_installation_url", nullString(p.DirectAppleInstallationURL)).
			Set("lpa", nullString(p.LPA)).
			Set("matching_id", nullString(p.MatchingID))
	}
	if len(upd.Metadata) > 0 {
		update = update.Set("metadata", sq.Expr("metadata || ?::jsonb", JSONMap(upd.Metadata)))
	}
	return update
}

func (r *ledgerRepo) expirePendingQuery(olderThan time.Time) sq.UpdateBuilder {
	return r.qb.Update("orders").
		Set("status", string(entities.StatusExpired)).
		Set("updated_at", sq.Expr("now()")).
		Set("metadata", sq.Expr("metadata || jsonb_build_object(?::text, now())", entities.MetaExpiredAt)).
		Where(sq.Eq{"status": statusStrings(entities.AllowedFrom(entities.StatusExpired))}).
		Where(sq.Lt{"created_at": olderThan}).
		Suffix("RETURNING order_id")
}

func (r *ledgerRepo) appendHistory(ctx context.Context, orderID string, from, to entities.OrderStatus) error {
	query, args := r.qb.Insert("order_status_history").
		Columns("order_id", "from_status", "to_status").
		Values(orderID, nullString(string(from)), string(to)).
		MustSql()
	if _, err := trm.From(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record status change: %w", err)
	}
	return nil
}

func statusStrings(statuses []entities.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
