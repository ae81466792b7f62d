package usecase

import (
	"errors"
	"fmt"

	"boat-ticketing/pkg/utils"
)

// Validation: rejected before any store access.
var (
	ErrValidation  = errors.New("validation failed")
	ErrSameStops   = errors.New("boarding and alighting must differ")
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidDate = errors.New("invalid date")
)

// Identity.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user is inactive")
	ErrEmailTaken         = errors.New("email already registered")
)

// State conflicts.
var (
	ErrTripNotSellable       = errors.New("trip not open for sale")
	ErrTripNotOpenForFreight = errors.New("trip not open for freight")
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrTicketAlreadyUsed     = errors.New("ticket already used")
	ErrTicketCancelled       = errors.New("ticket is cancelled")
	ErrTicketRefunded        = errors.New("ticket was refunded")
	ErrTicketNotConfirmed    = errors.New("ticket is not confirmed")
	ErrCannotMove            = errors.New("stop cannot move further")
	ErrInUse                 = errors.New("record is still referenced")
	ErrPriceOverlap          = errors.New("price window overlaps an existing window")
	ErrClosingExists         = errors.New("cash already closed for this date")
	ErrSeatTaken             = errors.New("seat already sold for this trip")
	ErrDuplicate             = errors.New("record already exists")
	ErrStopNotInItinerary    = errors.New("stop does not belong to itinerary")
	ErrSectorNotOnVessel     = errors.New("sector does not belong to trip vessel")
)

// Exhaustion and configuration gaps.
var (
	ErrSoldOut       = errors.New("class sold out for this trip")
	ErrPriceNotFound = errors.New("no price configured for this segment")
)

// Not found.
var (
	ErrTripNotFound        = errors.New("trip not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrParcelNotFound      = errors.New("parcel not found")
	ErrStopNotFound        = errors.New("stop not found")
	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrVesselNotFound      = errors.New("vessel not found")
	ErrClassNotFound       = errors.New("accommodation class not found")
	ErrSectorNotFound      = errors.New("sector not found")
	ErrPriceRecordNotFound = errors.New("price not found")
	ErrAgencyNotFound      = errors.New("agency not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrAllocationNotFound  = errors.New("capacity allocation not found")
)

// ValidationError carries per-field messages from the validator.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// validate runs struct validation and wraps failures as *ValidationError.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func invalidField(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
