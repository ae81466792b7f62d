package repository

import (
	"context"
	"errors"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindByCode(ctx context.Context, code string) (*entity.Ticket, error)
	FindAll(ctx context.Context, filter TicketFilter, limit, offset int) ([]*entity.Ticket, error)
	Count(ctx context.Context, filter TicketFilter) (int64, error)
	// CountActive counts tickets of a trip and class that still hold capacity.
	CountActive(ctx context.Context, tripID, classID uuid.UUID) (int, error)
	// UpdateStatus changes the status only if it still equals from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error)
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

const ticketColumns = `id, code, trip_id, class_id, boarding_stop_id, alighting_stop_id, passenger_name,
	passenger_document, passenger_phone, seat_number, status, amount, payment_method, sold_by,
	created_at, updated_at`

func scanTicket(row scanner) (*entity.Ticket, error) {
	var t entity.Ticket
	err := row.Scan(
		&t.ID,
		&t.Code,
		&t.TripID,
		&t.ClassID,
		&t.BoardingStopID,
		&t.AlightingStopID,
		&t.PassengerName,
		&t.PassengerDocument,
		&t.PassengerPhone,
		&t.SeatNumber,
		&t.Status,
		&t.Amount,
		&t.PaymentMethod,
		&t.SoldBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ticketWhere(filter TicketFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.TripID != nil {
		w.add("trip_id = ?", *filter.TripID)
	}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	if filter.SoldBy != nil {
		w.add("sold_by = ?", *filter.SoldBy)
	}
	if filter.Search != "" {
		w.add("(passenger_name ILIKE ? OR passenger_document ILIKE ? OR code ILIKE ?)", "%"+filter.Search+"%")
	}
	return w
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		ticket.ID,
		ticket.Code,
		ticket.TripID,
		ticket.ClassID,
		ticket.BoardingStopID,
		ticket.AlightingStopID,
		ticket.PassengerName,
		ticket.PassengerDocument,
		ticket.PassengerPhone,
		ticket.SeatNumber,
		ticket.Status,
		ticket.Amount,
		ticket.PaymentMethod,
		ticket.SoldBy,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("trip_id", ticket.TripID.String()),
			zap.String("class_id", ticket.ClassID.String()))
		return fmt.Errorf("create ticket: %w", database.Classify(err))
	}

	return nil
}

func (r *ticketRepository) findOne(ctx context.Context, query string, arg any) (*entity.Ticket, error) {
	ticket, err := scanTicket(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find ticket: %w", database.Classify(err))
	}
	return ticket, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	return r.findOne(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
}

func (r *ticketRepository) FindByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	return r.findOne(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE code = $1`, code)
}

func (r *ticketRepository) FindAll(ctx context.Context, filter TicketFilter, limit, offset int) ([]*entity.Ticket, error) {
	w := ticketWhere(filter)
	query := `SELECT ` + ticketColumns + ` FROM tickets` + w.sql() + ` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list tickets", zap.Error(err))
		return nil, fmt.Errorf("list tickets: %w", database.Classify(err))
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) Count(ctx context.Context, filter TicketFilter) (int64, error) {
	w := ticketWhere(filter)

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+w.sql(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err))
		return 0, fmt.Errorf("count tickets: %w", database.Classify(err))
	}
	return total, nil
}

func (r *ticketRepository) CountActive(ctx context.Context, tripID, classID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE trip_id = $1 AND class_id = $2 AND status NOT IN ('cancelled', 'refunded')
	`

	var occupied int
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, tripID, classID).Scan(&occupied); err != nil {
		r.log.Error("Failed to count active tickets",
			zap.Error(err),
			zap.String("trip_id", tripID.String()),
			zap.String("class_id", classID.String()))
		return 0, fmt.Errorf("count active tickets: %w", database.Classify(err))
	}
	return occupied, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE tickets SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		r.log.Error("Failed to update ticket status",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.String("status", string(to)))
		return false, fmt.Errorf("update ticket %s status to %s: %w", id, to, database.Classify(err))
	}

	return result.RowsAffected() == 1, nil
}
