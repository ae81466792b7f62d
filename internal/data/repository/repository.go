package repository

import (
	"boat-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx database.TxManager

	User          UserRepository
	Session       SessionRepository
	Agency        AgencyRepository
	Accommodation AccommodationRepository
	Vessel        VesselRepository
	Capacity      CapacityRepository
	Sector        SectorRepository
	Itinerary     ItineraryRepository
	Stop          StopRepository
	Trip          TripRepository
	Price         PriceRepository
	Ticket        TicketRepository
	Parcel        ParcelRepository
	Transaction   TransactionRepository
	Commission    CommissionRepository
	Expense       ExpenseRepository
	Closing       ClosingRepository
	Report        ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:            database.NewTxManager(db, log),
		User:          NewUserRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Agency:        NewAgencyRepository(db, log),
		Accommodation: NewAccommodationRepository(db, log),
		Vessel:        NewVesselRepository(db, log),
		Capacity:      NewCapacityRepository(db, log),
		Sector:        NewSectorRepository(db, log),
		Itinerary:     NewItineraryRepository(db, log),
		Stop:          NewStopRepository(db, log),
		Trip:          NewTripRepository(db, log),
		Price:         NewPriceRepository(db, log),
		Ticket:        NewTicketRepository(db, log),
		Parcel:        NewParcelRepository(db, log),
		Transaction:   NewTransactionRepository(db, log),
		Commission:    NewCommissionRepository(db, log),
		Expense:       NewExpenseRepository(db, log),
		Closing:       NewClosingRepository(db, log),
		Report:        NewReportRepository(db, log),
	}
}
