package adaptor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTicketService struct {
	sold     *request.SellTicketRequest
	list     *request.TicketListRequest
	ref      string
	status   *request.TicketStatusRequest
	err      error
	response response.TicketResponse
}

func (f *fakeTicketService) Sell(ctx context.Context, req *request.SellTicketRequest) (*response.TicketResponse, error) {
	f.sold = req
	if f.err != nil {
		return nil, f.err
	}
	return &f.response, nil
}

func (f *fakeTicketService) UpdateStatus(ctx context.Context, ticketID string, req *request.TicketStatusRequest) (*response.TicketResponse, error) {
	f.ref, f.status = ticketID, req
	if f.err != nil {
		return nil, f.err
	}
	return &f.response, nil
}

func (f *fakeTicketService) Validate(ctx context.Context, ref string) (*response.TicketResponse, error) {
	f.ref = ref
	if f.err != nil {
		return nil, f.err
	}
	return &f.response, nil
}

func (f *fakeTicketService) GetTicket(ctx context.Context, ref string) (*response.TicketResponse, error) {
	f.ref = ref
	if f.err != nil {
		return nil, f.err
	}
	return &f.response, nil
}

func (f *fakeTicketService) ListTickets(ctx context.Context, req *request.TicketListRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	f.list = req
	if f.err != nil {
		return nil, f.err
	}
	return &response.PaginatedResponse[response.TicketResponse]{}, nil
}

func ticketRouter(svc usecase.TicketService) *chi.Mux {
	h := NewTicketHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/tickets", h.Sell)
	r.Get("/api/tickets", h.ListTickets)
	r.Get("/api/tickets/{ref}", h.GetTicket)
	r.Post("/api/tickets/{ref}/validate", h.ValidateTicket)
	r.Patch("/api/tickets/{ref}/status", h.ChangeStatus)
	return r
}

func serve(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSellHandler(t *testing.T) {
	svc := &fakeTicketService{response: response.TicketResponse{
		Code:   "PAS-20240310-AB12CD34",
		Status: entity.TicketStatusConfirmed,
		Amount: decimal.RequireFromString("50.00"),
	}}
	r := ticketRouter(svc)

	rec := serve(t, r, http.MethodPost, "/api/tickets",
		`{"trip_id":"t","class_id":"c","boarding_stop_id":"a","alighting_stop_id":"b","passenger_name":"Ana","passenger_document":"123","payment_method":"pix"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.sold)
	assert.Equal(t, "Ana", svc.sold.PassengerName)
	assert.Equal(t, "pix", svc.sold.PaymentMethod)

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Status)
	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PAS-20240310-AB12CD34", data["code"])
}

func TestSellHandlerRejects(t *testing.T) {
	t.Run("unknown field", func(t *testing.T) {
		svc := &fakeTicketService{}
		rec := serve(t, ticketRouter(svc), http.MethodPost, "/api/tickets", `{"seat":"1A"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.sold, "service is not reached")
	})

	t.Run("empty body", func(t *testing.T) {
		rec := serve(t, ticketRouter(&fakeTicketService{}), http.MethodPost, "/api/tickets", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Request body is empty", decodeEnvelope(t, rec).Message)
	})

	t.Run("sold out", func(t *testing.T) {
		svc := &fakeTicketService{err: usecase.ErrSoldOut}
		rec := serve(t, ticketRouter(svc), http.MethodPost, "/api/tickets", `{"trip_id":"t"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("no fare", func(t *testing.T) {
		svc := &fakeTicketService{err: usecase.ErrPriceNotFound}
		rec := serve(t, ticketRouter(svc), http.MethodPost, "/api/tickets", `{"trip_id":"t"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestTicketRefRoutes(t *testing.T) {
	svc := &fakeTicketService{}
	r := ticketRouter(svc)

	rec := serve(t, r, http.MethodGet, "/api/tickets/PAS-20240310-AB12CD34", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PAS-20240310-AB12CD34", svc.ref)

	svc.err = usecase.ErrTicketAlreadyUsed
	rec = serve(t, r, http.MethodPost, "/api/tickets/TK-1/validate", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "TK-1", svc.ref)

	svc.err = nil
	rec = serve(t, r, http.MethodPatch, "/api/tickets/abc/status", `{"status":"refunded"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refunded", svc.status.Status)
}

func TestListTicketsQuery(t *testing.T) {
	svc := &fakeTicketService{}
	rec := serve(t, ticketRouter(svc), http.MethodGet, "/api/tickets?trip_id=x&status=used&search=ana&page=2&per_page=0", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.list)
	assert.Equal(t, "x", svc.list.TripID)
	assert.Equal(t, "used", svc.list.Status)
	assert.Equal(t, "ana", svc.list.Search)
	assert.Equal(t, 2, svc.list.Page)
	assert.Equal(t, 10, svc.list.PerPage, "non-positive page size falls back to the default")
}
