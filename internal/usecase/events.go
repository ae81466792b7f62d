package usecase

import (
	"context"
	"time"

	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TicketSoldEvent struct {
	TicketID      string          `json:"ticket_id"`
	Code          string          `json:"code"`
	TripID        string          `json:"trip_id"`
	ClassID       string          `json:"class_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	SoldBy        string          `json:"sold_by"`
	Commission    *string         `json:"commission,omitempty"`
	SoldAt        time.Time       `json:"sold_at"`
}

type StatusChangedEvent struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

type ParcelReceivedEvent struct {
	ParcelID   string          `json:"parcel_id"`
	Code       string          `json:"code"`
	TripID     string          `json:"trip_id"`
	Value      decimal.Decimal `json:"value"`
	ReceivedAt time.Time       `json:"received_at"`
}

type CashClosedEvent struct {
	ClosingID string          `json:"closing_id"`
	Date      string          `json:"date"`
	Balance   decimal.Decimal `json:"balance"`
}

// publish sends an event after the owning transaction committed. Failures
// are logged and counted; the committed write stands.
func publish(ctx context.Context, pub broker.Publisher, log *zap.Logger, name string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, name, payload); err != nil {
		metrics.EventPublishFailures.WithLabelValues(name).Inc()
		log.Warn("Failed to publish event", zap.String("event", name), zap.Error(err))
	}
}
