package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"delivery-manager/internal/apperr"
	"delivery-manager/internal/domain"
	"delivery-manager/internal/ports/deliverytx"
)

const deliveryColumns = `id, order_id, driver_id, status, pickup_time, delivery_time, notes, created_at, updated_at`

func scanDelivery(row rowScanner) (domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(&d.ID, &d.OrderID, &d.DriverID, &d.Status, &d.PickupTime, &d.DeliveryTime,
		&d.Notes, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx deliverytx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// откатываем, если fn запаниковала
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				panic(fmt.Sprintf("%v (rollback: %v)", p, rbErr))
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func deliveryWhere(f domain.DeliveryFilter, alias string) (string, []any) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if f.DriverID != nil {
		args = append(args, *f.DriverID)
		where = append(where, fmt.Sprintf("%sdriver_id = $%d", alias, len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("%sstatus = $%d", alias, len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

// List returns deliveries matching f, newest first.
func (r *DeliveryRepo) List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error) {
	where, args := deliveryWhere(f, "")
	rows, err := r.db.Query(ctx, `SELECT `+deliveryColumns+` FROM deliveries`+where+` ORDER BY id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListWithOrders is List with each delivery's order joined in.
func (r *DeliveryRepo) ListWithOrders(ctx context.Context, f domain.DeliveryFilter) ([]domain.DeliveryWithOrder, error) {
	where, args := deliveryWhere(f, "d.")
	rows, err := r.db.Query(ctx, `
        SELECT d.id, d.order_id, d.driver_id, d.status, d.pickup_time, d.delivery_time, d.notes,
               d.created_at, d.updated_at,
               o.id, o.customer_name, o.customer_address, o.customer_phone, o.product_info,
               o.order_value, o.status, o.assigned_driver_id, o.created_at, o.updated_at
        FROM deliveries d
        JOIN orders o ON o.id = d.order_id`+where+`
        ORDER BY d.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries with orders: %w", err)
	}
	defer rows.Close()

	out := make([]domain.DeliveryWithOrder, 0)
	for rows.Next() {
		var (
			d domain.Delivery
			o domain.Order
		)
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.DriverID, &d.Status, &d.PickupTime, &d.DeliveryTime, &d.Notes,
			&d.CreatedAt, &d.UpdatedAt,
			&o.ID, &o.CustomerName, &o.CustomerAddress, &o.CustomerPhone, &o.ProductInfo,
			&o.OrderValue, &o.Status, &o.AssignedDriverID, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery with order: %w", err)
		}
		out = append(out, domain.DeliveryWithOrder{Delivery: d, Order: &o})
	}
	return out, rows.Err()
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetDriverForShare - load a user under a share lock.
func (r *TxRepo) GetDriverForShare(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR SHARE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return &u, nil
}

// GetOrder - get order by id.
func (r *TxRepo) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// AssignOrder - move a pending order to assigned. Nil means it was not pending.
func (r *TxRepo) AssignOrder(ctx context.Context, orderID, driverID int64) (*domain.Order, error) {
	o, err := scanOrder(r.tx.QueryRow(ctx, `
        UPDATE orders
        SET status = $3, assigned_driver_id = $2, updated_at = now()
        WHERE id = $1 AND status = $4
        RETURNING `+orderColumns,
		orderID, driverID, string(domain.OrderAssigned), string(domain.OrderPending)))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("assign order %d: %w", orderID, err)
	}
	return &o, nil
}

// InsertDelivery - insert a new delivery. A second delivery for the same order yields apperr.ErrConflict.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (order_id, driver_id, status, notes)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `, d.OrderID, d.DriverID, string(d.Status), d.Notes).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if IsDuplicateOn(err, "deliveries_order_id_key") {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetDeliveryForUpdate - get delivery by id and lock the row.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id int64) (*domain.Delivery, error) {
	d, err := scanDelivery(r.tx.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %d: %w", id, err)
	}
	return &d, nil
}

// UpdateDelivery - persist status, timestamps and notes of d.
func (r *TxRepo) UpdateDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        UPDATE deliveries
        SET status = $2, pickup_time = $3, delivery_time = $4, notes = $5, updated_at = now()
        WHERE id = $1
        RETURNING updated_at
    `, d.ID, string(d.Status), d.PickupTime, d.DeliveryTime, d.Notes).Scan(&d.UpdatedAt)
	if err != nil {
		if IsNotFound(err) {
			return fmt.Errorf("delivery %d not found", d.ID)
		}
		return fmt.Errorf("update delivery %d: %w", d.ID, err)
	}
	return nil
}

// MarkOrderDelivered - set order status to delivered.
func (r *TxRepo) MarkOrderDelivered(ctx context.Context, orderID int64) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET status = $2, updated_at = now()
        WHERE id = $1
    `, orderID, string(domain.OrderDelivered))
	if err != nil {
		return fmt.Errorf("mark order %d delivered: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}
