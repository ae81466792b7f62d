package usecase

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// memState is the whole in-memory database. Rows are stored by value so a
// shallow clone is a consistent snapshot.
type memState struct {
	users       map[uuid.UUID]entity.User
	sessions    map[uuid.UUID]entity.Session
	agencies    map[uuid.UUID]entity.Agency
	classes     map[uuid.UUID]entity.AccommodationClass
	vessels     map[uuid.UUID]entity.Vessel
	allocations map[uuid.UUID]entity.CapacityAllocation
	seats       map[uuid.UUID]entity.Seat
	sectors     map[uuid.UUID]entity.VesselSector
	itineraries map[uuid.UUID]entity.Itinerary
	stops       map[uuid.UUID]entity.Stop
	trips       map[uuid.UUID]entity.Trip
	prices      map[uuid.UUID]entity.SegmentPrice
	tickets     map[uuid.UUID]entity.Ticket
	parcels     map[uuid.UUID]entity.Parcel
	expenses    map[uuid.UUID]entity.TripExpense
	closings    map[uuid.UUID]entity.CashClosing
	txns        []entity.FinancialTransaction
	commissions []entity.Commission
}

func newMemState() memState {
	return memState{
		users:       map[uuid.UUID]entity.User{},
		sessions:    map[uuid.UUID]entity.Session{},
		agencies:    map[uuid.UUID]entity.Agency{},
		classes:     map[uuid.UUID]entity.AccommodationClass{},
		vessels:     map[uuid.UUID]entity.Vessel{},
		allocations: map[uuid.UUID]entity.CapacityAllocation{},
		seats:       map[uuid.UUID]entity.Seat{},
		sectors:     map[uuid.UUID]entity.VesselSector{},
		itineraries: map[uuid.UUID]entity.Itinerary{},
		stops:       map[uuid.UUID]entity.Stop{},
		trips:       map[uuid.UUID]entity.Trip{},
		prices:      map[uuid.UUID]entity.SegmentPrice{},
		tickets:     map[uuid.UUID]entity.Ticket{},
		parcels:     map[uuid.UUID]entity.Parcel{},
		expenses:    map[uuid.UUID]entity.TripExpense{},
		closings:    map[uuid.UUID]entity.CashClosing{},
	}
}

func (st memState) clone() memState {
	return memState{
		users:       maps.Clone(st.users),
		sessions:    maps.Clone(st.sessions),
		agencies:    maps.Clone(st.agencies),
		classes:     maps.Clone(st.classes),
		vessels:     maps.Clone(st.vessels),
		allocations: maps.Clone(st.allocations),
		seats:       maps.Clone(st.seats),
		sectors:     maps.Clone(st.sectors),
		itineraries: maps.Clone(st.itineraries),
		stops:       maps.Clone(st.stops),
		trips:       maps.Clone(st.trips),
		prices:      maps.Clone(st.prices),
		tickets:     maps.Clone(st.tickets),
		parcels:     maps.Clone(st.parcels),
		expenses:    maps.Clone(st.expenses),
		closings:    maps.Clone(st.closings),
		txns:        slices.Clone(st.txns),
		commissions: slices.Clone(st.commissions),
	}
}

// memStore backs every repository interface with memState. Transactions are
// serialized, which stands in for the row locks of the real store, and roll
// back to a snapshot on error.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	memState

	// failures injected per operation, e.g. "commission.create"
	failures map[string]error
	// calls counts store operations, per operation name
	calls map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		memState: newMemState(),
		failures: map[string]error{},
		calls:    map[string]int{},
	}
}

// op records a call and returns the injected failure for it, if any. The
// caller must hold mu.
func (s *memStore) op(name string) error {
	s.calls[name]++
	return s.failures[name]
}

func (s *memStore) failOn(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[name] = err
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:            memTx{s},
		User:          memUsers{s},
		Session:       memSessions{s},
		Agency:        memAgencies{s},
		Accommodation: memClasses{s},
		Vessel:        memVessels{s},
		Capacity:      memCapacity{s},
		Sector:        memSectors{s},
		Itinerary:     memItineraries{s},
		Stop:          memStops{s},
		Trip:          memTrips{s},
		Price:         memPrices{s},
		Ticket:        memTickets{s},
		Parcel:        memParcels{s},
		Transaction:   memTransactions{s},
		Commission:    memCommissions{s},
		Expense:       memExpenses{s},
		Closing:       memClosings{s},
		Report:        memReports{s},
	}
}

func uniqueViolation(constraint string) error {
	return database.Classify(&pgconn.PgError{Code: "23505", ConstraintName: constraint})
}

func fkViolation(constraint string) error {
	return database.Classify(&pgconn.PgError{Code: "23503", ConstraintName: constraint})
}

func notFound(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", what, id, repository.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }

func pageOf[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func sortedBy[T any](m map[uuid.UUID]T, keep func(T) bool, less func(a, b T) bool) []*T {
	var out []*T
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, ptr(v))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(*out[i], *out[j]) })
	return out
}

// ==================== TX ====================

type memTxKey struct{}

type memTx struct{ s *memStore }

func (m memTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.memState.clone()
	m.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.memState = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}

// ==================== USERS & SESSIONS ====================

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("user.create"); err != nil {
		return err
	}
	for _, other := range r.users {
		if other.Email == u.Email {
			return uniqueViolation("users_email_key")
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("user.find"); err != nil {
		return nil, err
	}
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.op("user.find_email")
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := sortedBy(r.users, nil, func(a, b entity.User) bool { return a.CreatedAt.After(b.CreatedAt) })
	return pageOf(all, limit, offset), nil
}

func (r memUsers) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r memUsers) Update(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return notFound("user", u.ID)
	}
	r.users[u.ID] = *u
	return nil
}

type memSessions struct{ *memStore }

func (r memSessions) Create(ctx context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r memSessions) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.Token.String() == token && s.Valid(time.Now()) {
			return &s, nil
		}
	}
	return nil, nil
}

func (r memSessions) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, s := range r.sessions {
		if s.Token.String() == token {
			s.RevokedAt = &now
			r.sessions[id] = s
		}
	}
	return nil
}

func (r memSessions) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
			r.sessions[id] = s
		}
	}
	return nil
}

func (r memSessions) CleanExpiredSessions(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if !s.Valid(time.Now()) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// ==================== AGENCIES ====================

type memAgencies struct{ *memStore }

func (r memAgencies) Create(ctx context.Context, a *entity.Agency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agencies[a.ID] = *a
	return nil
}

func (r memAgencies) FindByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.agencies[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r memAgencies) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Agency, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.agencies,
		func(a entity.Agency) bool { return !activeOnly || a.IsActive },
		func(a, b entity.Agency) bool { return a.Name < b.Name }), nil
}

func (r memAgencies) Update(ctx context.Context, a *entity.Agency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.agencies[a.ID]; !ok {
		return notFound("agency", a.ID)
	}
	r.agencies[a.ID] = *a
	return nil
}

func (r memAgencies) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.agencies[id]
	if !ok {
		return notFound("agency", id)
	}
	a.IsActive = active
	r.agencies[id] = a
	return nil
}

// ==================== FLEET ====================

type memClasses struct{ *memStore }

func (r memClasses) Create(ctx context.Context, c *entity.AccommodationClass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.classes {
		if strings.EqualFold(other.Name, c.Name) {
			return uniqueViolation("accommodation_classes_name_key")
		}
	}
	r.classes[c.ID] = *c
	return nil
}

func (r memClasses) FindByID(ctx context.Context, id uuid.UUID) (*entity.AccommodationClass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.classes[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memClasses) FindAll(ctx context.Context) ([]*entity.AccommodationClass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.classes, nil, func(a, b entity.AccommodationClass) bool { return a.Name < b.Name }), nil
}

func (r memClasses) Update(ctx context.Context, c *entity.AccommodationClass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[c.ID]; !ok {
		return notFound("accommodation class", c.ID)
	}
	r.classes[c.ID] = *c
	return nil
}

func (r memClasses) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.classes[id]; !ok {
		return notFound("accommodation class", id)
	}
	for _, a := range r.allocations {
		if a.ClassID == id {
			return fkViolation("capacity_allocations_class_id_fkey")
		}
	}
	for _, t := range r.tickets {
		if t.ClassID == id {
			return fkViolation("tickets_class_id_fkey")
		}
	}
	delete(r.classes, id)
	return nil
}

type memVessels struct{ *memStore }

func (r memVessels) Create(ctx context.Context, v *entity.Vessel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vessels[v.ID] = *v
	return nil
}

func (r memVessels) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vessel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vessels[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r memVessels) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Vessel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.vessels,
		func(v entity.Vessel) bool { return !activeOnly || v.IsActive },
		func(a, b entity.Vessel) bool { return a.Name < b.Name }), nil
}

func (r memVessels) Update(ctx context.Context, v *entity.Vessel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vessels[v.ID]; !ok {
		return notFound("vessel", v.ID)
	}
	r.vessels[v.ID] = *v
	return nil
}

func (r memVessels) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vessels[id]
	if !ok {
		return notFound("vessel", id)
	}
	v.IsActive = active
	r.vessels[id] = v
	return nil
}

type memCapacity struct{ *memStore }

func (r memCapacity) find(vesselID, classID uuid.UUID) *entity.CapacityAllocation {
	for _, a := range r.allocations {
		if a.VesselID == vesselID && a.ClassID == classID {
			return &a
		}
	}
	return nil
}

func (r memCapacity) FindAllocation(ctx context.Context, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("capacity.find"); err != nil {
		return nil, err
	}
	return r.find(vesselID, classID), nil
}

func (r memCapacity) FindAllocationForUpdate(ctx context.Context, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("capacity.lock"); err != nil {
		return nil, err
	}
	return r.find(vesselID, classID), nil
}

func (r memCapacity) FindAllocationsByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.CapacityAllocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.allocations,
		func(a entity.CapacityAllocation) bool { return a.VesselID == vesselID },
		func(a, b entity.CapacityAllocation) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (r memCapacity) UpsertAllocation(ctx context.Context, a *entity.CapacityAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.find(a.VesselID, a.ClassID); existing != nil {
		existing.Quantity = a.Quantity
		r.allocations[existing.ID] = *existing
		*a = *existing
		return nil
	}
	r.allocations[a.ID] = *a
	return nil
}

func (r memCapacity) DeleteAllocation(ctx context.Context, vesselID, classID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.find(vesselID, classID)
	if existing == nil {
		return notFound("allocation", classID)
	}
	delete(r.allocations, existing.ID)
	return nil
}

func (r memCapacity) ReplaceAllocations(ctx context.Context, vesselID uuid.UUID, allocations []*entity.CapacityAllocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("capacity.replace_allocations"); err != nil {
		return err
	}
	for id, a := range r.allocations {
		if a.VesselID == vesselID {
			delete(r.allocations, id)
		}
	}
	for _, a := range allocations {
		r.allocations[a.ID] = *a
	}
	return nil
}

func (r memCapacity) FindSeatsByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.seats,
		func(s entity.Seat) bool { return s.VesselID == vesselID },
		func(a, b entity.Seat) bool { return a.Number < b.Number }), nil
}

func (r memCapacity) ReplaceSeats(ctx context.Context, vesselID uuid.UUID, seats []*entity.Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("capacity.replace_seats"); err != nil {
		return err
	}
	for id, s := range r.seats {
		if s.VesselID == vesselID {
			delete(r.seats, id)
		}
	}
	for _, s := range seats {
		r.seats[s.ID] = *s
	}
	return nil
}

type memSectors struct{ *memStore }

func (r memSectors) Create(ctx context.Context, s *entity.VesselSector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sectors[s.ID] = *s
	return nil
}

func (r memSectors) FindByID(ctx context.Context, id uuid.UUID) (*entity.VesselSector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sectors[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r memSectors) FindByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.VesselSector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.sectors,
		func(s entity.VesselSector) bool { return s.VesselID == vesselID },
		func(a, b entity.VesselSector) bool { return a.Name < b.Name }), nil
}

func (r memSectors) Update(ctx context.Context, s *entity.VesselSector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sectors[s.ID]; !ok {
		return notFound("sector", s.ID)
	}
	r.sectors[s.ID] = *s
	return nil
}

func (r memSectors) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sectors[id]; !ok {
		return notFound("sector", id)
	}
	delete(r.sectors, id)
	return nil
}

// ==================== ITINERARIES ====================

type memItineraries struct{ *memStore }

func (r memItineraries) Create(ctx context.Context, it *entity.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itineraries[it.ID] = *it
	return nil
}

func (r memItineraries) FindByID(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it, ok := r.itineraries[id]; ok {
		return &it, nil
	}
	return nil, nil
}

func (r memItineraries) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.itineraries,
		func(it entity.Itinerary) bool { return !activeOnly || it.IsActive },
		func(a, b entity.Itinerary) bool { return a.Name < b.Name }), nil
}

func (r memItineraries) Update(ctx context.Context, it *entity.Itinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.itineraries[it.ID]; !ok {
		return notFound("itinerary", it.ID)
	}
	r.itineraries[it.ID] = *it
	return nil
}

func (r memItineraries) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.itineraries[id]
	if !ok {
		return notFound("itinerary", id)
	}
	it.IsActive = active
	r.itineraries[id] = it
	return nil
}

type memStops struct{ *memStore }

// orderTaken mirrors the unique (itinerary_id, stop_order) constraint.
func (r memStops) orderTaken(itineraryID, self uuid.UUID, order int) bool {
	for _, s := range r.stops {
		if s.ItineraryID == itineraryID && s.ID != self && s.Order == order {
			return true
		}
	}
	return false
}

func (r memStops) Create(ctx context.Context, s *entity.Stop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.orderTaken(s.ItineraryID, s.ID, s.Order) {
		return uniqueViolation("stops_itinerary_order_key")
	}
	r.stops[s.ID] = *s
	return nil
}

func (r memStops) FindByID(ctx context.Context, id uuid.UUID) (*entity.Stop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stops[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r memStops) FindByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]*entity.Stop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.stops,
		func(s entity.Stop) bool { return s.ItineraryID == itineraryID },
		func(a, b entity.Stop) bool { return a.Order < b.Order }), nil
}

func (r memStops) MaxOrder(ctx context.Context, itineraryID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxOrder := 0
	for _, s := range r.stops {
		if s.ItineraryID == itineraryID && s.Order > maxOrder {
			maxOrder = s.Order
		}
	}
	return maxOrder, nil
}

func (r memStops) Update(ctx context.Context, s *entity.Stop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stops[s.ID]; !ok {
		return notFound("stop", s.ID)
	}
	r.stops[s.ID] = *s
	return nil
}

func (r memStops) SetOrder(ctx context.Context, id uuid.UUID, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.op("stop.set_order")
	s, ok := r.stops[id]
	if !ok {
		return notFound("stop", id)
	}
	if r.orderTaken(s.ItineraryID, id, order) {
		return uniqueViolation("stops_itinerary_order_key")
	}
	s.Order = order
	r.stops[id] = s
	return nil
}

func (r memStops) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stops[id]; !ok {
		return notFound("stop", id)
	}
	for _, t := range r.tickets {
		if t.BoardingStopID == id || t.AlightingStopID == id {
			return fkViolation("tickets_boarding_stop_id_fkey")
		}
	}
	for _, p := range r.prices {
		if p.OriginStopID == id || p.DestinationStopID == id {
			return fkViolation("segment_prices_origin_stop_id_fkey")
		}
	}
	delete(r.stops, id)
	return nil
}

// ==================== TRIPS & PRICES ====================

type memTrips struct{ *memStore }

func (r memTrips) Create(ctx context.Context, t *entity.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[t.ID] = *t
	return nil
}

func (r memTrips) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("trip.find"); err != nil {
		return nil, err
	}
	if t, ok := r.trips[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r memTrips) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	return r.FindByID(ctx, id)
}

func (r memTrips) filtered(f repository.TripFilter) []*entity.Trip {
	return sortedBy(r.trips, func(t entity.Trip) bool {
		return (f.Status == nil || t.Status == *f.Status) &&
			(f.ItineraryID == nil || t.ItineraryID == *f.ItineraryID) &&
			(f.VesselID == nil || t.VesselID == *f.VesselID) &&
			(f.From == nil || !t.DepartureAt.Before(*f.From)) &&
			(f.To == nil || t.DepartureAt.Before(*f.To))
	}, func(a, b entity.Trip) bool { return a.DepartureAt.Before(b.DepartureAt) })
}

func (r memTrips) FindAll(ctx context.Context, f repository.TripFilter, limit, offset int) ([]*entity.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageOf(r.filtered(f), limit, offset), nil
}

func (r memTrips) Count(ctx context.Context, f repository.TripFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

func (r memTrips) Update(ctx context.Context, t *entity.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[t.ID]; !ok {
		return notFound("trip", t.ID)
	}
	r.trips[t.ID] = *t
	return nil
}

func (r memTrips) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok || t.Status != from {
		return false, nil
	}
	t.Status = to
	r.trips[id] = t
	return true, nil
}

type memPrices struct{ *memStore }

func (r memPrices) Create(ctx context.Context, p *entity.SegmentPrice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prices[p.ID] = *p
	return nil
}

func (r memPrices) FindByID(ctx context.Context, id uuid.UUID) (*entity.SegmentPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.prices[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r memPrices) FindAll(ctx context.Context, f repository.PriceFilter) ([]*entity.SegmentPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.prices, func(p entity.SegmentPrice) bool {
		return (f.ItineraryID == nil || p.ItineraryID == *f.ItineraryID) &&
			(f.ClassID == nil || p.ClassID == *f.ClassID)
	}, func(a, b entity.SegmentPrice) bool { return a.ValidFrom.After(b.ValidFrom) }), nil
}

func (r memPrices) FindByKey(ctx context.Context, key entity.SegmentKey) ([]*entity.SegmentPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.prices,
		func(p entity.SegmentPrice) bool { return p.Key() == key },
		func(a, b entity.SegmentPrice) bool { return a.ValidFrom.After(b.ValidFrom) }), nil
}

func (r memPrices) FindEffective(ctx context.Context, key entity.SegmentKey, day time.Time) (*entity.SegmentPrice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("price.effective"); err != nil {
		return nil, err
	}
	matches := sortedBy(r.prices,
		func(p entity.SegmentPrice) bool { return p.Key() == key && p.Covers(day) },
		func(a, b entity.SegmentPrice) bool {
			if !a.ValidFrom.Equal(b.ValidFrom) {
				return a.ValidFrom.After(b.ValidFrom)
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r memPrices) Update(ctx context.Context, p *entity.SegmentPrice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prices[p.ID]; !ok {
		return notFound("price", p.ID)
	}
	r.prices[p.ID] = *p
	return nil
}

func (r memPrices) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prices[id]; !ok {
		return notFound("price", id)
	}
	delete(r.prices, id)
	return nil
}

// ==================== TICKETS & PARCELS ====================

type memTickets struct{ *memStore }

func (r memTickets) Create(ctx context.Context, t *entity.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("ticket.create"); err != nil {
		return err
	}
	if t.SeatNumber != nil {
		for _, other := range r.tickets {
			if other.TripID == t.TripID && other.SeatNumber != nil && *other.SeatNumber == *t.SeatNumber &&
				other.Status.OccupiesCapacity() {
				return uniqueViolation("tickets_trip_seat_active_key")
			}
		}
	}
	r.tickets[t.ID] = *t
	return nil
}

func (r memTickets) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tickets[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r memTickets) FindByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.Code == code {
			return &t, nil
		}
	}
	return nil, nil
}

func (r memTickets) filtered(f repository.TicketFilter) []*entity.Ticket {
	search := strings.ToLower(f.Search)
	return sortedBy(r.tickets, func(t entity.Ticket) bool {
		if f.TripID != nil && t.TripID != *f.TripID {
			return false
		}
		if f.Status != nil && t.Status != *f.Status {
			return false
		}
		if f.SoldBy != nil && t.SoldBy != *f.SoldBy {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.PassengerName), search) &&
			!strings.Contains(strings.ToLower(t.PassengerDocument), search) &&
			!strings.Contains(strings.ToLower(t.Code), search) {
			return false
		}
		return true
	}, func(a, b entity.Ticket) bool { return a.CreatedAt.After(b.CreatedAt) })
}

func (r memTickets) FindAll(ctx context.Context, f repository.TicketFilter, limit, offset int) ([]*entity.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageOf(r.filtered(f), limit, offset), nil
}

func (r memTickets) Count(ctx context.Context, f repository.TicketFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

func (r memTickets) CountActive(ctx context.Context, tripID, classID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tickets {
		if t.TripID == tripID && t.ClassID == classID && t.Status.OccupiesCapacity() {
			n++
		}
	}
	return n, nil
}

func (r memTickets) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TicketStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.Status != from {
		return false, nil
	}
	t.Status = to
	r.tickets[id] = t
	return true, nil
}

type memParcels struct{ *memStore }

func (r memParcels) Create(ctx context.Context, p *entity.Parcel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("parcel.create"); err != nil {
		return err
	}
	r.parcels[p.ID] = *p
	return nil
}

func (r memParcels) FindByID(ctx context.Context, id uuid.UUID) (*entity.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.parcels[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r memParcels) filtered(f repository.ParcelFilter) []*entity.Parcel {
	return sortedBy(r.parcels, func(p entity.Parcel) bool {
		return (f.TripID == nil || p.TripID == *f.TripID) && (f.Status == nil || p.Status == *f.Status)
	}, func(a, b entity.Parcel) bool { return a.CreatedAt.Before(b.CreatedAt) })
}

func (r memParcels) FindAll(ctx context.Context, f repository.ParcelFilter, limit, offset int) ([]*entity.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageOf(r.filtered(f), limit, offset), nil
}

func (r memParcels) Count(ctx context.Context, f repository.ParcelFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

func (r memParcels) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filtered(repository.ParcelFilter{TripID: &tripID}), nil
}

func (r memParcels) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ParcelStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parcels[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	r.parcels[id] = p
	return true, nil
}

// ==================== FINANCE ====================

type memTransactions struct{ *memStore }

func (r memTransactions) Create(ctx context.Context, t *entity.FinancialTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("transaction.create"); err != nil {
		return err
	}
	r.txns = append(r.txns, *t)
	return nil
}

func (r memTransactions) filtered(f repository.TransactionFilter) []*entity.FinancialTransaction {
	var out []*entity.FinancialTransaction
	for _, t := range r.txns {
		if (f.Kind == nil || t.Kind == *f.Kind) &&
			(f.From == nil || !t.CreatedAt.Before(*f.From)) &&
			(f.To == nil || t.CreatedAt.Before(*f.To)) {
			out = append(out, ptr(t))
		}
	}
	return out
}

func (r memTransactions) FindAll(ctx context.Context, f repository.TransactionFilter, limit, offset int) ([]*entity.FinancialTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pageOf(r.filtered(f), limit, offset), nil
}

func (r memTransactions) Count(ctx context.Context, f repository.TransactionFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(f))), nil
}

type memCommissions struct{ *memStore }

func (r memCommissions) Create(ctx context.Context, c *entity.Commission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.op("commission.create"); err != nil {
		return err
	}
	r.commissions = append(r.commissions, *c)
	return nil
}

func (r memCommissions) FindAll(ctx context.Context, f repository.CommissionFilter) ([]*entity.Commission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Commission
	for _, c := range r.commissions {
		if (f.SellerID == nil || c.SellerID == *f.SellerID) &&
			(f.From == nil || !c.CreatedAt.Before(*f.From)) &&
			(f.To == nil || c.CreatedAt.Before(*f.To)) {
			out = append(out, ptr(c))
		}
	}
	return out, nil
}

type memExpenses struct{ *memStore }

func (r memExpenses) Create(ctx context.Context, e *entity.TripExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID] = *e
	return nil
}

func (r memExpenses) FindByID(ctx context.Context, id uuid.UUID) (*entity.TripExpense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.expenses[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r memExpenses) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.TripExpense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedBy(r.expenses,
		func(e entity.TripExpense) bool { return e.TripID == tripID },
		func(a, b entity.TripExpense) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (r memExpenses) FindAll(ctx context.Context, limit, offset int) ([]*entity.TripExpense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := sortedBy(r.expenses, nil, func(a, b entity.TripExpense) bool { return a.CreatedAt.After(b.CreatedAt) })
	return pageOf(all, limit, offset), nil
}

func (r memExpenses) Update(ctx context.Context, e *entity.TripExpense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[e.ID]; !ok {
		return notFound("expense", e.ID)
	}
	r.expenses[e.ID] = *e
	return nil
}

func (r memExpenses) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[id]; !ok {
		return notFound("expense", id)
	}
	delete(r.expenses, id)
	return nil
}

type memClosings struct{ *memStore }

func (r memClosings) Create(ctx context.Context, c *entity.CashClosing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := entity.DateOf(c.ClosingDate)
	for _, other := range r.closings {
		if other.ClosingDate.Equal(day) {
			return uniqueViolation("cash_closings_closing_date_key")
		}
	}
	stored := *c
	stored.ClosingDate = day
	r.closings[c.ID] = stored
	return nil
}

func (r memClosings) FindByDate(ctx context.Context, day time.Time) (*entity.CashClosing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day = entity.DateOf(day)
	for _, c := range r.closings {
		if c.ClosingDate.Equal(day) {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memClosings) FindAll(ctx context.Context, limit, offset int) ([]*entity.CashClosing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := sortedBy(r.closings, nil, func(a, b entity.CashClosing) bool { return a.ClosingDate.After(b.ClosingDate) })
	return pageOf(all, limit, offset), nil
}

type memReports struct{ *memStore }

func (r memReports) TransactionsBetween(ctx context.Context, from, to time.Time) ([]*entity.FinancialTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memTransactions(r).filtered(repository.TransactionFilter{From: &from, To: &to}), nil
}

func (r memReports) TicketStatusesSince(ctx context.Context, from time.Time) ([]entity.TicketStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.TicketStatus
	for _, t := range r.tickets {
		if !t.CreatedAt.Before(from) {
			out = append(out, t.Status)
		}
	}
	return out, nil
}

func (r memReports) TripStatuses(ctx context.Context) ([]entity.TripStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.TripStatus
	for _, t := range r.trips {
		out = append(out, t.Status)
	}
	return out, nil
}

func (r memReports) CountParcelsSince(ctx context.Context, from time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.parcels {
		if !p.CreatedAt.Before(from) {
			n++
		}
	}
	return n, nil
}

func (r memReports) TripReport(ctx context.Context, tripID *uuid.UUID) ([]*entity.TripReportRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trips := sortedBy(r.trips,
		func(t entity.Trip) bool { return tripID == nil || t.ID == *tripID },
		func(a, b entity.Trip) bool { return a.DepartureAt.After(b.DepartureAt) })

	rows := make([]*entity.TripReportRow, 0, len(trips))
	for _, trip := range trips {
		row := &entity.TripReportRow{
			TripID:        trip.ID,
			ItineraryName: r.itineraries[trip.ItineraryID].Name,
			VesselName:    r.vessels[trip.VesselID].Name,
			DepartureAt:   trip.DepartureAt,
			Status:        trip.Status,
		}
		for _, t := range r.tickets {
			if t.TripID == trip.ID && t.Status.OccupiesCapacity() {
				row.TicketCount++
				row.TicketRevenue = row.TicketRevenue.Add(t.Amount)
			}
		}
		for _, p := range r.parcels {
			if p.TripID == trip.ID {
				row.ParcelCount++
				row.FreightRevenue = row.FreightRevenue.Add(p.Value)
			}
		}
		for _, e := range r.expenses {
			if e.TripID == trip.ID {
				row.Expenses = row.Expenses.Add(e.Amount)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
