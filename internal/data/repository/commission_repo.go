package repository

import (
	"context"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"go.uber.org/zap"
)

type CommissionRepository interface {
	Create(ctx context.Context, commission *entity.Commission) error
	FindAll(ctx context.Context, filter CommissionFilter) ([]*entity.Commission, error)
}

type commissionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommissionRepository(db database.PgxIface, log *zap.Logger) CommissionRepository {
	return &commissionRepository{
		db:  db,
		log: log.With(zap.String("repository", "commission")),
	}
}

func (r *commissionRepository) Create(ctx context.Context, c *entity.Commission) error {
	query := `
		INSERT INTO commissions (id, ticket_id, seller_id, agency_id, amount, percentage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		c.ID,
		c.TicketID,
		c.SellerID,
		c.AgencyID,
		c.Amount,
		c.Percentage,
		c.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create commission", zap.Error(err), zap.String("ticket_id", c.TicketID.String()))
		return fmt.Errorf("create commission: %w", database.Classify(err))
	}

	return nil
}

func (r *commissionRepository) FindAll(ctx context.Context, filter CommissionFilter) ([]*entity.Commission, error) {
	w := &whereBuilder{}
	if filter.SellerID != nil {
		w.add("seller_id = ?", *filter.SellerID)
	}
	if filter.From != nil {
		w.add("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("created_at < ?", *filter.To)
	}

	query := `SELECT id, ticket_id, seller_id, agency_id, amount, percentage, created_at FROM commissions` +
		w.sql() + ` ORDER BY created_at DESC`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list commissions", zap.Error(err))
		return nil, fmt.Errorf("list commissions: %w", database.Classify(err))
	}
	defer rows.Close()

	var commissions []*entity.Commission
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(&c.ID, &c.TicketID, &c.SellerID, &c.AgencyID, &c.Amount, &c.Percentage, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commission row: %w", err)
		}
		commissions = append(commissions, &c)
	}

	return commissions, rows.Err()
}
