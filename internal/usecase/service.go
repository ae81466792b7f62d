package usecase

import (
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Agency    AgencyService
	Fleet     FleetService
	Itinerary ItineraryService
	Trip      TripService
	Price     PriceService
	Ticket    TicketService
	Parcel    ParcelService
	Finance   FinanceService
}

func NewService(repo *repository.Repository, config *utils.Config, publisher broker.Publisher, clk clock.Clock, log *zap.Logger) *Service {
	catalog := NewPriceCatalog(repo.Price, log)
	capacity := NewCapacityLedger(repo.Capacity, repo.Ticket, log)

	return &Service{
		Auth:      NewAuthService(repo, config, clk, log),
		User:      NewUserService(repo, config, clk, log),
		Agency:    NewAgencyService(repo.Agency, clk, log),
		Fleet:     NewFleetService(repo, clk, log),
		Itinerary: NewItineraryService(repo, clk, log),
		Trip:      NewTripService(repo, capacity, clk, log),
		Price:     NewPriceService(repo, catalog, capacity, clk, log),
		Ticket:    NewTicketService(repo, catalog, capacity, publisher, clk, log),
		Parcel:    NewParcelService(repo, publisher, clk, log),
		Finance:   NewFinanceService(repo, publisher, clk, log),
	}
}
