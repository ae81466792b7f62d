package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/migrations"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRepository connects to TEST_DATABASE_URL and applies migrations.
// Tests using it are skipped when the variable is unset.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := database.NewFromPool(pool)
	require.NoError(t, migrations.Apply(ctx, db, zap.NewNop()))

	return NewRepository(db, zap.NewNop())
}

type route struct {
	itinerary entity.Itinerary
	origin    entity.Stop
	dest      entity.Stop
	class     entity.AccommodationClass
	vessel    entity.Vessel
	trip      entity.Trip
	seller    entity.User
}

// seedRoute writes a fresh itinerary, vessel, trip and seller. Names carry a
// random suffix so runs do not collide on unique columns.
func seedRoute(t *testing.T, repo *Repository, berths int) route {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	suffix := uuid.NewString()[:8]
	base := func() entity.BaseNoDelete {
		return entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	}

	rt := route{
		itinerary: entity.Itinerary{BaseNoDelete: base(), Name: "Upriver " + suffix, IsActive: true},
		class:     entity.AccommodationClass{BaseNoDelete: base(), Name: "Cabin " + suffix},
		vessel:    entity.Vessel{BaseNoDelete: base(), Name: "Vessel " + suffix, Type: entity.VesselTypeBoat, Capacity: berths, IsActive: true},
		seller: entity.User{BaseNoDelete: base(), FullName: "Seller", Email: "seller-" + suffix + "@boat.test",
			PasswordHash: "x", Role: entity.RoleSeller, IsActive: true},
	}
	rt.origin = entity.Stop{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now}, ItineraryID: rt.itinerary.ID, Name: "Origin", Order: 1}
	rt.dest = entity.Stop{BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now}, ItineraryID: rt.itinerary.ID, Name: "Destination", Order: 2}
	rt.trip = entity.Trip{BaseNoDelete: base(), ItineraryID: rt.itinerary.ID, VesselID: rt.vessel.ID,
		DepartureAt: now.Add(48 * time.Hour), Status: entity.TripStatusScheduled}

	require.NoError(t, repo.Itinerary.Create(ctx, &rt.itinerary))
	require.NoError(t, repo.Stop.Create(ctx, &rt.origin))
	require.NoError(t, repo.Stop.Create(ctx, &rt.dest))
	require.NoError(t, repo.Accommodation.Create(ctx, &rt.class))
	require.NoError(t, repo.Vessel.Create(ctx, &rt.vessel))
	require.NoError(t, repo.Capacity.UpsertAllocation(ctx, &entity.CapacityAllocation{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		VesselID:   rt.vessel.ID,
		ClassID:    rt.class.ID,
		Quantity:   berths,
	}))
	require.NoError(t, repo.Trip.Create(ctx, &rt.trip))
	require.NoError(t, repo.User.Create(ctx, &rt.seller))
	return rt
}

func (rt route) ticket() *entity.Ticket {
	now := time.Now().UTC()
	id := uuid.New()
	return &entity.Ticket{
		BaseNoDelete:      entity.BaseNoDelete{ID: id, CreatedAt: now, UpdatedAt: now},
		Code:              "TK-" + id.String(),
		TripID:            rt.trip.ID,
		ClassID:           rt.class.ID,
		BoardingStopID:    rt.origin.ID,
		AlightingStopID:   rt.dest.ID,
		PassengerName:     "Passenger",
		PassengerDocument: "000",
		Status:            entity.TicketStatusConfirmed,
		Amount:            decimal.RequireFromString("50.00"),
		PaymentMethod:     entity.PaymentMethodPix,
		SoldBy:            rt.seller.ID,
	}
}

var errFull = errors.New("full")

func TestConcurrentSalesNeverOversell(t *testing.T) {
	repo := newTestRepository(t)
	rt := seedRoute(t, repo, 2)

	const buyers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Tx.WithTx(context.Background(), func(ctx context.Context) error {
				allocation, err := repo.Capacity.FindAllocationForUpdate(ctx, rt.vessel.ID, rt.class.ID)
				if err != nil {
					return err
				}
				occupied, err := repo.Ticket.CountActive(ctx, rt.trip.ID, rt.class.ID)
				if err != nil {
					return err
				}
				if occupied >= allocation.Quantity {
					return errFull
				}
				return repo.Ticket.Create(ctx, rt.ticket())
			})
			if err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, errFull)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, sold)
	occupied, err := repo.Ticket.CountActive(context.Background(), rt.trip.ID, rt.class.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, occupied)
}

func TestFindEffectivePrice(t *testing.T) {
	repo := newTestRepository(t)
	rt := seedRoute(t, repo, 2)
	ctx := context.Background()

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	add := func(amount, from string, until *time.Time) {
		now := time.Now().UTC()
		require.NoError(t, repo.Price.Create(ctx, &entity.SegmentPrice{
			BaseNoDelete:      entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			ItineraryID:       rt.itinerary.ID,
			OriginStopID:      rt.origin.ID,
			DestinationStopID: rt.dest.ID,
			ClassID:           rt.class.ID,
			Price:             decimal.RequireFromString(amount),
			ValidFrom:         day(from),
			ValidUntil:        until,
		}))
	}
	december := day("2023-12-31")
	add("40.00", "2023-06-01", &december)
	add("50.00", "2024-01-01", nil)

	key := entity.SegmentKey{ItineraryID: rt.itinerary.ID, OriginStopID: rt.origin.ID, DestinationStopID: rt.dest.ID, ClassID: rt.class.ID}
	cases := []struct {
		at   time.Time
		want string
	}{
		{day("2023-12-31").Add(23 * time.Hour), "40.00"},
		{day("2024-01-01"), "50.00"},
		{day("2030-05-05"), "50.00"},
	}
	for _, tc := range cases {
		t.Run(tc.at.Format(time.RFC3339), func(t *testing.T) {
			price, err := repo.Price.FindEffective(ctx, key, tc.at)
			require.NoError(t, err)
			require.NotNil(t, price)
			assert.Equal(t, tc.want, price.Price.StringFixed(2))
		})
	}

	price, err := repo.Price.FindEffective(ctx, key, day("2023-05-31"))
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestUniqueViolationIsConflict(t *testing.T) {
	repo := newTestRepository(t)
	rt := seedRoute(t, repo, 1)

	dup := rt.seller
	dup.ID = uuid.New()
	err := repo.User.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, database.ErrConflict, fmt.Sprintf("duplicate email %s", dup.Email))
}

func TestMissingRowUpdateIsNotFound(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Itinerary.SetActive(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, ErrNotFound)
}
