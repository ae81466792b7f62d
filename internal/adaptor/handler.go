package adaptor

import (
	"boat-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Agency    *AgencyHandler
	Fleet     *FleetHandler
	Itinerary *ItineraryHandler
	Trip      *TripHandler
	Price     *PriceHandler
	Ticket    *TicketHandler
	Parcel    *ParcelHandler
	Finance   *FinanceHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Agency:    NewAgencyHandler(service.Agency, log),
		Fleet:     NewFleetHandler(service.Fleet, log),
		Itinerary: NewItineraryHandler(service.Itinerary, log),
		Trip:      NewTripHandler(service.Trip, log),
		Price:     NewPriceHandler(service.Price, log),
		Ticket:    NewTicketHandler(service.Ticket, log),
		Parcel:    NewParcelHandler(service.Parcel, log),
		Finance:   NewFinanceHandler(service.Finance, log),
	}
}
