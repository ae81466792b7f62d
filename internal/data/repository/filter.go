package repository

import (
	"fmt"
	"strings"
	"time"

	"boat-ticketing/internal/data/entity"

	"github.com/google/uuid"
)

type TripFilter struct {
	Status      *entity.TripStatus
	ItineraryID *uuid.UUID
	VesselID    *uuid.UUID
	From        *time.Time
	To          *time.Time
}

type TicketFilter struct {
	TripID *uuid.UUID
	Status *entity.TicketStatus
	SoldBy *uuid.UUID
	Search string
}

type ParcelFilter struct {
	TripID *uuid.UUID
	Status *entity.ParcelStatus
}

type PriceFilter struct {
	ItineraryID *uuid.UUID
	ClassID     *uuid.UUID
}

type TransactionFilter struct {
	Kind *entity.TransactionKind
	From *time.Time
	To   *time.Time
}

type CommissionFilter struct {
	SellerID *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// whereBuilder collects optional AND conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends a condition; every "?" in cond refers to arg.
func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause.
func (w *whereBuilder) page(limit, offset int) string {
	w.args = append(w.args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}
