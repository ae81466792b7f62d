package repository

import (
	"context"
	"fmt"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportRepository serves read-only rows for dashboards and closings.
type ReportRepository interface {
	// TransactionsBetween returns ledger entries created in [from, to).
	TransactionsBetween(ctx context.Context, from, to time.Time) ([]*entity.FinancialTransaction, error)
	TicketStatusesSince(ctx context.Context, from time.Time) ([]entity.TicketStatus, error)
	TripStatuses(ctx context.Context) ([]entity.TripStatus, error)
	CountParcelsSince(ctx context.Context, from time.Time) (int64, error)
	TripReport(ctx context.Context, tripID *uuid.UUID) ([]*entity.TripReportRow, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

func (r *reportRepository) TransactionsBetween(ctx context.Context, from, to time.Time) ([]*entity.FinancialTransaction, error) {
	query := `
		SELECT id, kind, amount, payment_method, reference_id, trip_id, description, created_by, created_at
		FROM financial_transactions
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to load transactions", zap.Error(err), zap.Time("from", from), zap.Time("to", to))
		return nil, fmt.Errorf("load transactions: %w", database.Classify(err))
	}
	defer rows.Close()

	var txns []*entity.FinancialTransaction
	for rows.Next() {
		var t entity.FinancialTransaction
		if err := rows.Scan(
			&t.ID,
			&t.Kind,
			&t.Amount,
			&t.PaymentMethod,
			&t.ReferenceID,
			&t.TripID,
			&t.Description,
			&t.CreatedBy,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, &t)
	}

	return txns, rows.Err()
}

func (r *reportRepository) TicketStatusesSince(ctx context.Context, from time.Time) ([]entity.TicketStatus, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, `SELECT status FROM tickets WHERE created_at >= $1`, from)
	if err != nil {
		r.log.Error("Failed to load ticket statuses", zap.Error(err))
		return nil, fmt.Errorf("load ticket statuses: %w", database.Classify(err))
	}
	defer rows.Close()

	var statuses []entity.TicketStatus
	for rows.Next() {
		var s entity.TicketStatus
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan ticket status: %w", err)
		}
		statuses = append(statuses, s)
	}

	return statuses, rows.Err()
}

func (r *reportRepository) TripStatuses(ctx context.Context) ([]entity.TripStatus, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, `SELECT status FROM trips`)
	if err != nil {
		r.log.Error("Failed to load trip statuses", zap.Error(err))
		return nil, fmt.Errorf("load trip statuses: %w", database.Classify(err))
	}
	defer rows.Close()

	var statuses []entity.TripStatus
	for rows.Next() {
		var s entity.TripStatus
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan trip status: %w", err)
		}
		statuses = append(statuses, s)
	}

	return statuses, rows.Err()
}

func (r *reportRepository) CountParcelsSince(ctx context.Context, from time.Time) (int64, error) {
	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM parcels WHERE created_at >= $1`, from).Scan(&total); err != nil {
		r.log.Error("Failed to count parcels", zap.Error(err))
		return 0, fmt.Errorf("count parcels: %w", database.Classify(err))
	}
	return total, nil
}

func (r *reportRepository) TripReport(ctx context.Context, tripID *uuid.UUID) ([]*entity.TripReportRow, error) {
	w := &whereBuilder{}
	if tripID != nil {
		w.add("t.id = ?", *tripID)
	}

	query := `
		SELECT t.id, i.name, v.name, t.departure_at, t.status,
		       COALESCE(tk.cnt, 0), COALESCE(p.cnt, 0),
		       COALESCE(tk.total, 0), COALESCE(p.total, 0), COALESCE(e.total, 0)
		FROM trips t
		JOIN itineraries i ON i.id = t.itinerary_id
		JOIN vessels v ON v.id = t.vessel_id
		LEFT JOIN (
			SELECT trip_id, COUNT(*) AS cnt, SUM(amount) AS total
			FROM tickets
			WHERE status NOT IN ('cancelled', 'refunded')
			GROUP BY trip_id
		) tk ON tk.trip_id = t.id
		LEFT JOIN (
			SELECT trip_id, COUNT(*) AS cnt, SUM(value) AS total
			FROM parcels
			GROUP BY trip_id
		) p ON p.trip_id = t.id
		LEFT JOIN (
			SELECT trip_id, SUM(amount) AS total
			FROM trip_expenses
			GROUP BY trip_id
		) e ON e.trip_id = t.id` + w.sql() + `
		ORDER BY t.departure_at DESC
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to build trip report", zap.Error(err))
		return nil, fmt.Errorf("trip report: %w", database.Classify(err))
	}
	defer rows.Close()

	var report []*entity.TripReportRow
	for rows.Next() {
		var row entity.TripReportRow
		if err := rows.Scan(
			&row.TripID,
			&row.ItineraryName,
			&row.VesselName,
			&row.DepartureAt,
			&row.Status,
			&row.TicketCount,
			&row.ParcelCount,
			&row.TicketRevenue,
			&row.FreightRevenue,
			&row.Expenses,
		); err != nil {
			return nil, fmt.Errorf("scan trip report row: %w", err)
		}
		report = append(report, &row)
	}

	return report, rows.Err()
}
