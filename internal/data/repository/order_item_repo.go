package repository

import (
	"context"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderItemRepository interface {
	CreateBatch(ctx context.Context, q database.Querier, items []*entity.OrderItem) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error)

	// MaxSeatNumber returns the highest seat number already issued for the
	// ticket, 0 if none. Must run inside the same transaction as the ticket
	// row lock so two orders never read the same maximum.
	MaxSeatNumber(ctx context.Context, q database.Querier, ticketID uuid.UUID) (int, error)

	DeleteByOrderID(ctx context.Context, q database.Querier, orderID uuid.UUID) error
}

type orderItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderItemRepository(db database.PgxIface, log *zap.Logger) OrderItemRepository {
	return &orderItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "order_item")),
	}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, q database.Querier, items []*entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, full_name, birth_date, nationality,
		                         document_number, issuing_country, document_expiry,
		                         is_infant, seat_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, item := range items {
		_, err := q.Exec(ctx, query,
			item.ID,
			item.OrderID,
			item.FullName,
			item.BirthDate,
			item.Nationality,
			item.DocumentNumber,
			item.IssuingCountry,
			item.DocumentExpiry,
			item.IsInfant,
			item.SeatNumber,
			item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create order item",
				zap.Error(err),
				zap.String("order_id", item.OrderID.String()),
				zap.Int("seat_number", item.SeatNumber),
			)
			return fmt.Errorf("create order item seat %d: %w", item.SeatNumber, err)
		}
	}

	return nil
}

func (r *orderItemRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, full_name, birth_date, nationality, document_number,
		       issuing_country, document_expiry, is_infant, seat_number, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find order items for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.FullName,
			&item.BirthDate,
			&item.Nationality,
			&item.DocumentNumber,
			&item.IssuingCountry,
			&item.DocumentExpiry,
			&item.IsInfant,
			&item.SeatNumber,
			&item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan order item row", zap.Error(err))
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *orderItemRepository) MaxSeatNumber(ctx context.Context, q database.Querier, ticketID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(MAX(oi.seat_number), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.ticket_id = $1
	`

	var max int
	if err := q.QueryRow(ctx, query, ticketID).Scan(&max); err != nil {
		r.log.Error("Failed to read max seat number",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return 0, fmt.Errorf("max seat number for ticket %s: %w", ticketID.String(), err)
	}

	return max, nil
}

func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, q database.Querier, orderID uuid.UUID) error {
	query := `DELETE FROM order_items WHERE order_id = $1`

	_, err := q.Exec(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to delete order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return fmt.Errorf("delete order items for order %s: %w", orderID.String(), err)
	}

	return nil
}
