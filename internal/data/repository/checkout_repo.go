package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrCheckoutExists reports an insert that hit the unique order_id
// constraint. It backs the service-level duplicate check against races.
var ErrCheckoutExists = errors.New("checkout already exists for order")

type CheckoutRepository interface {
	Create(ctx context.Context, q database.Querier, checkout *entity.Checkout) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Checkout, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Checkout, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Checkout, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateTotal(ctx context.Context, q database.Querier, id uuid.UUID, total float64) error

	// MarkPaid flips is_paid for an unpaid checkout and stamps paid_at.
	// Returns false when the checkout was already paid (no mutation).
	MarkPaid(ctx context.Context, q database.Querier, id uuid.UUID, orderID uuid.UUID, paidAt time.Time) (bool, error)

	Delete(ctx context.Context, q database.Querier, id uuid.UUID) error
}

type checkoutRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCheckoutRepository(db database.PgxIface, log *zap.Logger) CheckoutRepository {
	return &checkoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "checkout")),
	}
}

const checkoutColumns = `id, order_id, total, payment_method, is_paid, paid_at, valid_until, created_at`

func scanCheckout(row pgx.Row) (*entity.Checkout, error) {
	var c entity.Checkout
	err := row.Scan(
		&c.ID,
		&c.OrderID,
		&c.Total,
		&c.PaymentMethod,
		&c.IsPaid,
		&c.PaidAt,
		&c.ValidUntil,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *checkoutRepository) Create(ctx context.Context, q database.Querier, checkout *entity.Checkout) error {
	query := `
		INSERT INTO checkouts (id, order_id, total, payment_method, is_paid, paid_at, valid_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		checkout.ID,
		checkout.OrderID,
		checkout.Total,
		checkout.PaymentMethod,
		checkout.IsPaid,
		checkout.PaidAt,
		checkout.ValidUntil,
		checkout.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on order_id
		r.log.Warn("Checkout insert lost duplicate race",
			zap.String("order_id", checkout.OrderID.String()),
		)
		return ErrCheckoutExists
	}
	if err != nil {
		r.log.Error("Failed to create checkout",
			zap.Error(err),
			zap.String("order_id", checkout.OrderID.String()),
		)
		return fmt.Errorf("create checkout for order %s: %w", checkout.OrderID.String(), err)
	}

	return nil
}

func (r *checkoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE id = $1`

	checkout, err := scanCheckout(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find checkout by ID",
			zap.Error(err),
			zap.String("checkout_id", id.String()),
		)
		return nil, fmt.Errorf("find checkout by ID %s: %w", id.String(), err)
	}

	return checkout, nil
}

func (r *checkoutRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts WHERE order_id = $1`

	checkout, err := scanCheckout(r.db.QueryRow(ctx, query, orderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find checkout by order ID",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find checkout by order ID %s: %w", orderID.String(), err)
	}

	return checkout, nil
}

func (r *checkoutRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find checkouts", zap.Error(err))
		return nil, fmt.Errorf("find checkouts: %w", err)
	}
	defer rows.Close()

	var checkouts []*entity.Checkout
	for rows.Next() {
		checkout, err := scanCheckout(rows)
		if err != nil {
			r.log.Error("Failed to scan checkout row", zap.Error(err))
			return nil, fmt.Errorf("scan checkout row: %w", err)
		}
		checkouts = append(checkouts, checkout)
	}

	return checkouts, rows.Err()
}

func (r *checkoutRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM checkouts`).Scan(&count); err != nil {
		r.log.Error("Failed to count checkouts", zap.Error(err))
		return 0, fmt.Errorf("count checkouts: %w", err)
	}

	return count, nil
}

func (r *checkoutRepository) UpdateTotal(ctx context.Context, q database.Querier, id uuid.UUID, total float64) error {
	query := `UPDATE checkouts SET total = $2 WHERE id = $1 AND is_paid = FALSE`

	result, err := q.Exec(ctx, query, id, total)
	if err != nil {
		r.log.Error("Failed to update checkout total",
			zap.Error(err),
			zap.String("checkout_id", id.String()),
		)
		return fmt.Errorf("update checkout %s total: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("checkout %s not found or already paid", id.String())
	}

	return nil
}

func (r *checkoutRepository) MarkPaid(ctx context.Context, q database.Querier, id uuid.UUID, orderID uuid.UUID, paidAt time.Time) (bool, error) {
	query := `
		UPDATE checkouts
		SET is_paid = TRUE, paid_at = $3, order_id = $2
		WHERE id = $1 AND is_paid = FALSE
	`

	result, err := q.Exec(ctx, query, id, orderID, paidAt)
	if err != nil {
		r.log.Error("Failed to mark checkout paid",
			zap.Error(err),
			zap.String("checkout_id", id.String()),
		)
		return false, fmt.Errorf("mark checkout %s paid: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *checkoutRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	query := `DELETE FROM checkouts WHERE id = $1`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete checkout",
			zap.Error(err),
			zap.String("checkout_id", id.String()),
		)
		return fmt.Errorf("delete checkout %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("checkout %s not found", id.String())
	}

	r.log.Info("Checkout deleted", zap.String("checkout_id", id.String()))
	return nil
}
