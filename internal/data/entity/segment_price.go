package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SegmentKey identifies a fare. Direction matters: (a, b) and (b, a) are
// different keys.
type SegmentKey struct {
	ItineraryID       uuid.UUID
	OriginStopID      uuid.UUID
	DestinationStopID uuid.UUID
	ClassID           uuid.UUID
}

// SegmentPrice is a fare valid over the calendar days [ValidFrom, ValidUntil].
// A nil ValidUntil leaves the window open.
type SegmentPrice struct {
	BaseNoDelete
	ItineraryID       uuid.UUID       `db:"itinerary_id"`
	OriginStopID      uuid.UUID       `db:"origin_stop_id"`
	DestinationStopID uuid.UUID       `db:"destination_stop_id"`
	ClassID           uuid.UUID       `db:"class_id"`
	Price             decimal.Decimal `db:"price"`
	ValidFrom         time.Time       `db:"valid_from"`
	ValidUntil        *time.Time      `db:"valid_until"`
}

func (p *SegmentPrice) Key() SegmentKey {
	return SegmentKey{
		ItineraryID:       p.ItineraryID,
		OriginStopID:      p.OriginStopID,
		DestinationStopID: p.DestinationStopID,
		ClassID:           p.ClassID,
	}
}

// Covers reports whether day falls inside the window, both ends inclusive.
func (p *SegmentPrice) Covers(day time.Time) bool {
	day = DateOf(day)
	if DateOf(p.ValidFrom).After(day) {
		return false
	}
	return p.ValidUntil == nil || !DateOf(*p.ValidUntil).Before(day)
}

// Overlaps reports whether the two windows share at least one day.
func (p *SegmentPrice) Overlaps(o *SegmentPrice) bool {
	// a starts no later than b ends, and b starts no later than a ends
	aEndsAfterBStarts := p.ValidUntil == nil || !DateOf(*p.ValidUntil).Before(DateOf(o.ValidFrom))
	bEndsAfterAStarts := o.ValidUntil == nil || !DateOf(*o.ValidUntil).Before(DateOf(p.ValidFrom))
	return aEndsAfterBStarts && bEndsAfterAStarts
}

// DateOf truncates t to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
