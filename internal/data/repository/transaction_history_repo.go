package repository

import (
	"context"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionHistoryRepository interface {
	Create(ctx context.Context, q database.Querier, history *entity.TransactionHistory) error
	FindByCheckoutID(ctx context.Context, checkoutID uuid.UUID) (*entity.TransactionHistory, error)
	StampPaidAt(ctx context.Context, q database.Querier, checkoutID uuid.UUID, paidAt time.Time) error
	DeleteByCheckoutID(ctx context.Context, q database.Querier, checkoutID uuid.UUID) error
}

type transactionHistoryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionHistoryRepository(db database.PgxIface, log *zap.Logger) TransactionHistoryRepository {
	return &transactionHistoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction_history")),
	}
}

func (r *transactionHistoryRepository) Create(ctx context.Context, q database.Querier, history *entity.TransactionHistory) error {
	query := `
		INSERT INTO transaction_histories (id, checkout_id, paid_at, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, query,
		history.ID,
		history.CheckoutID,
		history.PaidAt,
		history.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create transaction history",
			zap.Error(err),
			zap.String("checkout_id", history.CheckoutID.String()),
		)
		return fmt.Errorf("create transaction history for checkout %s: %w", history.CheckoutID.String(), err)
	}

	return nil
}

func (r *transactionHistoryRepository) FindByCheckoutID(ctx context.Context, checkoutID uuid.UUID) (*entity.TransactionHistory, error) {
	query := `
		SELECT id, checkout_id, paid_at, created_at
		FROM transaction_histories
		WHERE checkout_id = $1
	`

	var history entity.TransactionHistory
	err := r.db.QueryRow(ctx, query, checkoutID).Scan(
		&history.ID,
		&history.CheckoutID,
		&history.PaidAt,
		&history.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find transaction history",
			zap.Error(err),
			zap.String("checkout_id", checkoutID.String()),
		)
		return nil, fmt.Errorf("find transaction history for checkout %s: %w", checkoutID.String(), err)
	}

	return &history, nil
}

func (r *transactionHistoryRepository) StampPaidAt(ctx context.Context, q database.Querier, checkoutID uuid.UUID, paidAt time.Time) error {
	query := `UPDATE transaction_histories SET paid_at = $2 WHERE checkout_id = $1`

	result, err := q.Exec(ctx, query, checkoutID, paidAt)
	if err != nil {
		r.log.Error("Failed to stamp transaction history",
			zap.Error(err),
			zap.String("checkout_id", checkoutID.String()),
		)
		return fmt.Errorf("stamp transaction history for checkout %s: %w", checkoutID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("transaction history for checkout %s not found", checkoutID.String())
	}

	return nil
}

func (r *transactionHistoryRepository) DeleteByCheckoutID(ctx context.Context, q database.Querier, checkoutID uuid.UUID) error {
	query := `DELETE FROM transaction_histories WHERE checkout_id = $1`

	_, err := q.Exec(ctx, query, checkoutID)
	if err != nil {
		r.log.Error("Failed to delete transaction history",
			zap.Error(err),
			zap.String("checkout_id", checkoutID.String()),
		)
		return fmt.Errorf("delete transaction history for checkout %s: %w", checkoutID.String(), err)
	}

	return nil
}
