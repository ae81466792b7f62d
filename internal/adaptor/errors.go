package adaptor

import (
	"errors"
	"net/http"

	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/database"
	"boat-ticketing/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// errorStatus maps business errors to HTTP status codes. The first match wins.
var errorStatus = []struct {
	err    error
	status int
}{
	// bad input
	{usecase.ErrInvalidID, http.StatusBadRequest},
	{usecase.ErrInvalidDate, http.StatusBadRequest},
	{usecase.ErrSameStops, http.StatusBadRequest},

	// identity
	{usecase.ErrNotAuthenticated, http.StatusUnauthorized},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
	{usecase.ErrUserInactive, http.StatusForbidden},

	// not found
	{usecase.ErrTripNotFound, http.StatusNotFound},
	{usecase.ErrTicketNotFound, http.StatusNotFound},
	{usecase.ErrParcelNotFound, http.StatusNotFound},
	{usecase.ErrStopNotFound, http.StatusNotFound},
	{usecase.ErrItineraryNotFound, http.StatusNotFound},
	{usecase.ErrVesselNotFound, http.StatusNotFound},
	{usecase.ErrClassNotFound, http.StatusNotFound},
	{usecase.ErrSectorNotFound, http.StatusNotFound},
	{usecase.ErrPriceRecordNotFound, http.StatusNotFound},
	{usecase.ErrAgencyNotFound, http.StatusNotFound},
	{usecase.ErrUserNotFound, http.StatusNotFound},
	{usecase.ErrExpenseNotFound, http.StatusNotFound},
	{usecase.ErrAllocationNotFound, http.StatusNotFound},

	// state conflicts and exhaustion
	{usecase.ErrTripNotSellable, http.StatusConflict},
	{usecase.ErrTripNotOpenForFreight, http.StatusConflict},
	{usecase.ErrInvalidTransition, http.StatusConflict},
	{usecase.ErrTicketAlreadyUsed, http.StatusConflict},
	{usecase.ErrTicketCancelled, http.StatusConflict},
	{usecase.ErrTicketRefunded, http.StatusConflict},
	{usecase.ErrTicketNotConfirmed, http.StatusConflict},
	{usecase.ErrInUse, http.StatusConflict},
	{usecase.ErrPriceOverlap, http.StatusConflict},
	{usecase.ErrClosingExists, http.StatusConflict},
	{usecase.ErrSeatTaken, http.StatusConflict},
	{usecase.ErrDuplicate, http.StatusConflict},
	{usecase.ErrEmailTaken, http.StatusConflict},
	{usecase.ErrSoldOut, http.StatusConflict},
	{database.ErrConflict, http.StatusConflict},

	// business rule rejections
	{usecase.ErrPriceNotFound, http.StatusUnprocessableEntity},
	{usecase.ErrCannotMove, http.StatusUnprocessableEntity},
	{usecase.ErrStopNotInItinerary, http.StatusUnprocessableEntity},
	{usecase.ErrSectorNotOnVessel, http.StatusUnprocessableEntity},

	{database.ErrTransient, http.StatusServiceUnavailable},
}

func statusOf(err error) int {
	status, _ := classify(err)
	return status
}

// classify returns the status and the sentinel that decided it, nil for 500.
func classify(err error) (int, error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status, e.err
		}
	}
	return http.StatusInternalServerError, nil
}

// clientMessage drops store details from the message. Errors carrying a
// driver error answer with the sentinel text only.
func clientMessage(err, sentinel error) string {
	var pgErr *pgconn.PgError
	if sentinel != nil && errors.As(err, &pgErr) {
		return sentinel.Error()
	}
	return err.Error()
}

// writeError renders a service error in the standard envelope. Field level
// validation messages go into "errors".
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		log.Warn(operation+" validation failed", zap.Any("fields", verr.Fields))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)
		return
	}

	status, sentinel := classify(err)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	default:
		log.Warn(operation+" rejected", zap.Error(err), zap.Int("status", status))
	}

	switch status {
	case http.StatusInternalServerError:
		utils.ResponseInternalError(w, "Internal server error")
	case http.StatusServiceUnavailable:
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, please retry")
	default:
		utils.ResponseJSON(w, status, false, clientMessage(err, sentinel), nil, nil)
	}
}
