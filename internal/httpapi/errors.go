package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/addressbook"
	"github.com/safar/storefront/internal/apperr"
	"github.com/safar/storefront/internal/auth"
	"github.com/safar/storefront/internal/backend"
	"github.com/safar/storefront/internal/cartview"
	"github.com/safar/storefront/internal/catalog"
	"github.com/safar/storefront/internal/checkout"
	"github.com/safar/storefront/internal/database"
	"github.com/safar/storefront/internal/guestcart"
	"github.com/safar/storefront/internal/provinces"
)

// toAppError is the only place domain errors become client-facing codes.
func toAppError(err error) *apperr.AppError {
	if appErr, ok := apperr.As(err); ok {
		return appErr
	}

	var (
		partial    *checkout.PartialFailureError
		apiErr     *backend.APIError
		incomplete *addressbook.IncompleteError
	)

	switch {
	case errors.As(err, &partial):
		if len(partial.Completed) == 0 {
			return apperr.Wrap(err, apperr.CodeUpstream, "The order could not be placed, please try again")
		}
		return apperr.Wrap(err, apperr.CodePartialOrder, "The order was only partly placed, please contact support").
			WithData(gin.H{"orderId": partial.OrderID, "failedStep": partial.Step})

	case errors.Is(err, checkout.ErrNothingToCheckout):
		return apperr.Wrap(err, apperr.CodeEmptyCheckout, "There is nothing to check out").
			WithRedirect(checkout.CartPath)
	case errors.Is(err, checkout.ErrAddressRequired):
		return apperr.Wrap(err, apperr.CodeValidation, "Please choose a shipping address")
	case errors.Is(err, checkout.ErrUnknownAddress):
		return apperr.Wrap(err, apperr.CodeValidation, "Unknown shipping address")

	case errors.Is(err, cartview.ErrQuantityOutOfRange):
		return apperr.Wrap(err, apperr.CodeValidation, err.Error())
	case errors.Is(err, cartview.ErrLineNotFound):
		return apperr.Wrap(err, apperr.CodeNotFound, "Cart item not found")

	case errors.Is(err, catalog.ErrSizeUnavailable), errors.Is(err, catalog.ErrColorUnavailable):
		return apperr.Wrap(err, apperr.CodeUnavailable, err.Error())

	case errors.As(err, &incomplete):
		return apperr.Wrap(err, apperr.CodeValidation, "Please fill in every address field").
			WithData(gin.H{"fields": incomplete.Fields})
	case errors.Is(err, addressbook.ErrUnknownProvince),
		errors.Is(err, addressbook.ErrUnknownDistrict),
		errors.Is(err, addressbook.ErrUnknownWard):
		return apperr.Wrap(err, apperr.CodeValidation, err.Error())

	case errors.Is(err, guestcart.ErrNoGuest), errors.Is(err, database.ErrInvalidGuestID):
		return apperr.Wrap(err, apperr.CodeBadRequest, "Invalid guest session")

	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return apperr.Wrap(err, apperr.CodeUnauthorized, "Please sign in")

	case errors.Is(err, backend.ErrInvalidRequest):
		return apperr.Wrap(err, apperr.CodeValidation, "Some fields are missing or invalid")

	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return apperr.Wrap(err, apperr.CodeUnauthorized, "Please sign in")
		case http.StatusForbidden:
			return apperr.Wrap(err, apperr.CodeForbidden, "You are not allowed to do that")
		case http.StatusNotFound:
			return apperr.Wrap(err, apperr.CodeNotFound, "Not found")
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			return apperr.Wrap(err, apperr.CodeValidation, apiErr.Message)
		}
		return apperr.Wrap(err, apperr.CodeUpstream, "The store is unavailable, please try again")

	case errors.Is(err, provinces.ErrUnavailable):
		return apperr.Wrap(err, apperr.CodeUpstream, "Locations are unavailable, please try again")
	case errors.Is(err, backend.ErrUnavailable),
		errors.Is(err, backend.ErrMissingData),
		errors.Is(err, backend.ErrInvalidPayload):
		return apperr.Wrap(err, apperr.CodeUpstream, "The store is unavailable, please try again")
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(err, apperr.CodeUpstream, "The store took too long to answer")
	}

	return apperr.Wrap(err, apperr.CodeInternal, "internal server error")
}

var (
	errRouteNotFound        = apperr.NotFound("route not found")
	errNotificationNotFound = apperr.NotFound("notification not found")
)
