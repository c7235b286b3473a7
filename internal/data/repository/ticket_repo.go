package repository

import (
	"context"
	"errors"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrTicketLocked is returned when another order holds the ticket row lock.
// Callers should treat it as retryable.
var ErrTicketLocked = errors.New("ticket row is locked by another order")

type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindAll(ctx context.Context, filter TicketFilter, limit, offset int) ([]*entity.Ticket, error)
	CountAll(ctx context.Context, filter TicketFilter) (int64, error)

	// LockForOrder reads the ticket inside q holding a row lock, serializing
	// the check-decrement-allocate sequence per ticket. Returns
	// ErrTicketLocked when the lock is held elsewhere, (nil, nil) when the
	// ticket does not exist.
	LockForOrder(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Ticket, error)

	// DecrementQuantity atomically reserves count seats. The guard and the
	// mutation are one statement, so quantity can never go negative.
	// Returns false when remaining quantity is insufficient.
	DecrementQuantity(ctx context.Context, q database.Querier, id uuid.UUID, count int) (bool, error)
}

type TicketFilter struct {
	Class   string
	Origin  string
	MinFare *float64
	MaxFare *float64
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, flight_number, origin, destination, departure_at, arrival_at, class, fare, quantity, created_at, updated_at`

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var t entity.Ticket
	err := row.Scan(
		&t.ID,
		&t.FlightNumber,
		&t.Origin,
		&t.Destination,
		&t.DepartureAt,
		&t.ArrivalAt,
		&t.Class,
		&t.Fare,
		&t.Quantity,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindAll(ctx context.Context, filter TicketFilter, limit, offset int) ([]*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE 1=1`
	args := []any{}

	query, args = applyTicketFilter(query, args, filter)
	query += fmt.Sprintf(` ORDER BY departure_at LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find tickets", zap.Error(err))
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) CountAll(ctx context.Context, filter TicketFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE 1=1`
	args := []any{}
	query, args = applyTicketFilter(query, args, filter)

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err))
		return 0, fmt.Errorf("count tickets: %w", err)
	}

	return count, nil
}

func applyTicketFilter(query string, args []any, filter TicketFilter) (string, []any) {
	if filter.Class != "" {
		args = append(args, filter.Class)
		query += fmt.Sprintf(` AND class = $%d`, len(args))
	}
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		query += fmt.Sprintf(` AND origin = $%d`, len(args))
	}
	if filter.MinFare != nil {
		args = append(args, *filter.MinFare)
		query += fmt.Sprintf(` AND fare >= $%d`, len(args))
	}
	if filter.MaxFare != nil {
		args = append(args, *filter.MaxFare)
		query += fmt.Sprintf(` AND fare <= $%d`, len(args))
	}
	return query, args
}

func (r *ticketRepository) LockForOrder(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE NOWAIT`

	ticket, err := scanTicket(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "55P03" { // lock_not_available
		r.log.Warn("Ticket row lock contention", zap.String("ticket_id", id.String()))
		return nil, ErrTicketLocked
	}
	if err != nil {
		r.log.Error("Failed to lock ticket for order",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("lock ticket %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) DecrementQuantity(ctx context.Context, q database.Querier, id uuid.UUID, count int) (bool, error) {
	query := `
		UPDATE tickets
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`

	result, err := q.Exec(ctx, query, id, count)
	if err != nil {
		r.log.Error("Failed to decrement ticket quantity",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.Int("count", count),
		)
		return false, fmt.Errorf("decrement ticket %s quantity by %d: %w", id.String(), count, err)
	}

	return result.RowsAffected() > 0, nil
}
