package wire

import (
	"net/http"

	"boat-ticketing/internal/adaptor"
	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/middleware"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// deps is what every route group needs besides its handler.
type deps struct {
	repo   *repository.Repository
	config *utils.Config
	rdb    *redis.Client
	log    *zap.Logger
}

// Wiring builds services, handlers and routes. A nil rdb turns rate limiting
// off.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	publisher broker.Publisher,
	rdb *redis.Client,
	clk clock.Clock,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, publisher, clk, logger)
	handler := adaptor.NewHandler(service, logger)

	d := deps{repo: repo, config: config, rdb: rdb, log: logger}
	return &App{Router: setupRouter(handler, d)}
}

func setupRouter(handler *adaptor.Handler, d deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(d.log))
	r.Use(middleware.Logger(d.log))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(d.config.App.AllowedOrigins))

	wireAuth(r, handler.Auth, d)
	wireUser(r, handler.User, d)
	wireAgency(r, handler.Agency, d)
	wireFleet(r, handler.Fleet, d)
	wireItinerary(r, handler.Itinerary, d)
	wireTrip(r, handler.Trip, d)
	wirePrice(r, handler.Price, d)
	wireTicket(r, handler.Ticket, d)
	wireParcel(r, handler.Parcel, d)
	wireFinance(r, handler.Finance, d)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (d deps) auth() func(http.Handler) http.Handler {
	return middleware.AuthSession(d.repo.Session, d.repo.User, d.log)
}

// admin lets owners through; super admins always pass the role guard.
func (d deps) admin() func(http.Handler) http.Handler {
	return middleware.RequireRole(d.log, entity.RoleOwner)
}
