package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var fixtureNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type publishedEvent struct {
	name    string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, name string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{name: name, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) named(name string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.name == name {
			out = append(out, e)
		}
	}
	return out
}

// fixture is the Riverport to Landing route: a two-stop itinerary, one
// Cabin class with two berths on vessel V, a 50.00 fare from 2024-01-01 and
// one scheduled trip.
type fixture struct {
	store *memStore
	repo  *repository.Repository
	pub   *recordingPublisher
	svc   *Service

	itinerary entity.Itinerary
	riverport entity.Stop
	landing   entity.Stop
	cabin     entity.AccommodationClass
	hammock   entity.AccommodationClass
	vessel    entity.Vessel
	trip      entity.Trip
	price     entity.SegmentPrice

	seller entity.User
	agent  entity.User
	agency entity.Agency
	admin  entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	f := &fixture{
		store: store,
		repo:  store.repository(),
		pub:   &recordingPublisher{},
	}
	cfg := &utils.Config{Session: utils.SessionConfig{ExpiryHours: 12, BcryptCost: 4}}
	f.svc = NewService(f.repo, cfg, f.pub, clock.NewFixed(fixtureNow), zap.NewNop())

	created := fixtureNow.Add(-30 * 24 * time.Hour)
	base := func() entity.BaseNoDelete {
		return entity.BaseNoDelete{ID: uuid.New(), CreatedAt: created, UpdatedAt: created}
	}
	simple := func() entity.BaseSimple {
		return entity.BaseSimple{ID: uuid.New(), CreatedAt: created}
	}

	f.itinerary = entity.Itinerary{BaseNoDelete: base(), Name: "Riverport→Landing", IsActive: true}
	f.riverport = entity.Stop{BaseSimple: simple(), ItineraryID: f.itinerary.ID, Name: "Riverport", Order: 1}
	f.landing = entity.Stop{BaseSimple: simple(), ItineraryID: f.itinerary.ID, Name: "Landing", Order: 2}
	f.cabin = entity.AccommodationClass{BaseNoDelete: base(), Name: "Cabin"}
	f.hammock = entity.AccommodationClass{BaseNoDelete: base(), Name: "Hammock"}
	f.vessel = entity.Vessel{BaseNoDelete: base(), Name: "V", Type: entity.VesselTypeBoat, Capacity: 2, IsActive: true}
	allocation := entity.CapacityAllocation{BaseSimple: simple(), VesselID: f.vessel.ID, ClassID: f.cabin.ID, Quantity: 2}
	f.price = entity.SegmentPrice{
		BaseNoDelete:      base(),
		ItineraryID:       f.itinerary.ID,
		OriginStopID:      f.riverport.ID,
		DestinationStopID: f.landing.ID,
		ClassID:           f.cabin.ID,
		Price:             decimal.RequireFromString("50.00"),
		ValidFrom:         date("2024-01-01"),
	}
	f.trip = entity.Trip{
		BaseNoDelete: base(),
		ItineraryID:  f.itinerary.ID,
		VesselID:     f.vessel.ID,
		DepartureAt:  fixtureNow.Add(48 * time.Hour),
		Status:       entity.TripStatusScheduled,
	}

	f.agency = entity.Agency{
		BaseNoDelete:         base(),
		Name:                 "Harbour Travel",
		CommissionPercentage: decimal.NewFromInt(10),
		IsActive:             true,
	}
	f.seller = entity.User{BaseNoDelete: base(), FullName: "Desk Seller", Email: "desk@boat.test", Role: entity.RoleSeller, IsActive: true}
	f.agent = entity.User{BaseNoDelete: base(), FullName: "Agency Seller", Email: "agent@boat.test", Role: entity.RoleSeller, AgencyID: &f.agency.ID, IsActive: true}
	f.admin = entity.User{BaseNoDelete: base(), FullName: "Owner", Email: "owner@boat.test", Role: entity.RoleOwner, IsActive: true}

	st := store.memState
	st.itineraries[f.itinerary.ID] = f.itinerary
	st.stops[f.riverport.ID] = f.riverport
	st.stops[f.landing.ID] = f.landing
	st.classes[f.cabin.ID] = f.cabin
	st.classes[f.hammock.ID] = f.hammock
	st.vessels[f.vessel.ID] = f.vessel
	st.allocations[allocation.ID] = allocation
	st.prices[f.price.ID] = f.price
	st.trips[f.trip.ID] = f.trip
	st.agencies[f.agency.ID] = f.agency
	st.users[f.seller.ID] = f.seller
	st.users[f.agent.ID] = f.agent
	st.users[f.admin.ID] = f.admin

	return f
}

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func as(user entity.User) context.Context {
	return utils.SetUserContext(context.Background(), user.ID, string(user.Role))
}

func (f *fixture) sellRequest() *request.SellTicketRequest {
	return &request.SellTicketRequest{
		TripID:            f.trip.ID.String(),
		ClassID:           f.cabin.ID.String(),
		BoardingStopID:    f.riverport.ID.String(),
		AlightingStopID:   f.landing.ID.String(),
		PassengerName:     "Ana Ribeiro",
		PassengerDocument: "123.456.789-00",
		PaymentMethod:     "pix",
	}
}

func (f *fixture) setTripStatus(status entity.TripStatus) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	trip := f.store.trips[f.trip.ID]
	trip.Status = status
	f.store.trips[f.trip.ID] = trip
}

func (f *fixture) ticketCount() int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.tickets)
}

func (f *fixture) transactions() []entity.FinancialTransaction {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return append([]entity.FinancialTransaction(nil), f.store.txns...)
}

func (f *fixture) commissions() []entity.Commission {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return append([]entity.Commission(nil), f.store.commissions...)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}
