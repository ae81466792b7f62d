package usecase

import (
	"context"
	"testing"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) tripRequest(departure time.Time) *request.TripRequest {
	return &request.TripRequest{
		ItineraryID: f.itinerary.ID.String(),
		VesselID:    f.vessel.ID.String(),
		DepartureAt: departure,
	}
}

func TestTripStatusMachine(t *testing.T) {
	cases := []struct {
		from entity.TripStatus
		to   string
		ok   bool
	}{
		{entity.TripStatusScheduled, "boarding", true},
		{entity.TripStatusScheduled, "underway", true},
		{entity.TripStatusBoarding, "underway", true},
		{entity.TripStatusUnderway, "completed", true},
		{entity.TripStatusUnderway, "cancelled", true},
		{entity.TripStatusBoarding, "scheduled", false},
		{entity.TripStatusUnderway, "boarding", false},
		{entity.TripStatusCompleted, "cancelled", false},
		{entity.TripStatusCancelled, "scheduled", false},
		{entity.TripStatusScheduled, "scheduled", false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+" to "+tc.to, func(t *testing.T) {
			f := newFixture(t)
			f.setTripStatus(tc.from)

			resp, err := f.svc.Trip.ChangeStatus(context.Background(), f.trip.ID.String(), &request.TripStatusRequest{Status: tc.to})
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tc.from, f.store.trips[f.trip.ID].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entity.TripStatus(tc.to), resp.Status)
			assert.Equal(t, entity.TripStatus(tc.to), f.store.trips[f.trip.ID].Status)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Trip.ChangeStatus(context.Background(), f.trip.ID.String(), &request.TripStatusRequest{Status: "sunk"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown trip", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Trip.ChangeStatus(context.Background(), f.vessel.ID.String(), &request.TripStatusRequest{Status: "boarding"})
		assert.ErrorIs(t, err, ErrTripNotFound)
	})
}

func TestTripSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	local := time.FixedZone("AMT", -4*3600)
	trip, err := f.svc.Trip.CreateTrip(ctx, f.tripRequest(time.Date(2024, 3, 15, 8, 0, 0, 0, local)))
	require.NoError(t, err)
	assert.Equal(t, entity.TripStatusScheduled, trip.Status)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), trip.DepartureAt)

	t.Run("inactive vessel", func(t *testing.T) {
		v := f.store.vessels[f.vessel.ID]
		v.IsActive = false
		f.store.vessels[f.vessel.ID] = v
		defer func() {
			v.IsActive = true
			f.store.vessels[f.vessel.ID] = v
		}()

		_, err := f.svc.Trip.CreateTrip(ctx, f.tripRequest(fixtureNow.Add(24*time.Hour)))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("terminal trip is frozen", func(t *testing.T) {
		_, err := f.svc.Trip.ChangeStatus(ctx, trip.ID, &request.TripStatusRequest{Status: "cancelled"})
		require.NoError(t, err)

		_, err = f.svc.Trip.UpdateTrip(ctx, trip.ID, f.tripRequest(fixtureNow.Add(96*time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("update moves the departure", func(t *testing.T) {
		notes := "low water"
		req := f.tripRequest(fixtureNow.Add(72 * time.Hour))
		req.Notes = &notes
		updated, err := f.svc.Trip.UpdateTrip(ctx, f.trip.ID.String(), req)
		require.NoError(t, err)
		assert.Equal(t, fixtureNow.Add(72*time.Hour), updated.DepartureAt)
		assert.Equal(t, &notes, updated.Notes)
	})
}

func TestListTrips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2024-03-20", "2024-03-21", "2024-04-02"} {
		_, err := f.svc.Trip.CreateTrip(ctx, f.tripRequest(date(d).Add(9*time.Hour)))
		require.NoError(t, err)
	}

	all, err := f.svc.Trip.ListTrips(ctx, &request.TripListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, all.Pagination.Total)
	assert.Equal(t, 1, all.Pagination.Page)
	assert.Equal(t, f.trip.ID.String(), all.Data[0].ID, "earliest departure first")

	window, err := f.svc.Trip.ListTrips(ctx, &request.TripListRequest{From: "2024-03-20", To: "2024-03-21"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, window.Pagination.Total, "the end day is inclusive")

	f.setTripStatus(entity.TripStatusBoarding)
	boarding, err := f.svc.Trip.ListTrips(ctx, &request.TripListRequest{Status: "boarding"})
	require.NoError(t, err)
	require.Len(t, boarding.Data, 1)
	assert.Equal(t, f.trip.ID.String(), boarding.Data[0].ID)

	paged, err := f.svc.Trip.ListTrips(ctx, &request.TripListRequest{PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 3}})
	require.NoError(t, err)
	assert.Len(t, paged.Data, 1)
	assert.Equal(t, 2, paged.Pagination.TotalPages)

	_, err = f.svc.Trip.ListTrips(ctx, &request.TripListRequest{Status: "drifting"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTripAvailability(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Ticket.Sell(as(f.seller), f.sellRequest())
	require.NoError(t, err)

	a, err := f.svc.Trip.Availability(context.Background(), f.trip.ID.String(), f.cabin.ID.String())
	require.NoError(t, err)
	assert.True(t, a.Available)
	assert.Equal(t, 1, a.Remaining)
	assert.Equal(t, 1, a.Occupied)
}
