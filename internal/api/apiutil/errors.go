package apiutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/codr1/futplan/internal/futapi"
	"github.com/codr1/futplan/internal/models"
)

// GenericErrorMessage is shown when a failure carries no user-facing message.
const GenericErrorMessage = "Ocorreu um erro desconhecido."

// UserMessage converts err into the text shown in a notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *futapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var verr models.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var herr HandlerError
	if errors.As(err, &herr) && herr.Message != "" {
		return herr.Message
	}
	if errors.Is(err, futapi.ErrMissingToken) {
		return futapi.ErrMissingToken.Error()
	}
	return GenericErrorMessage
}

// StatusFor picks the status of a JSON error response for err.
func StatusFor(err error) int {
	var apiErr *futapi.APIError
	var herr HandlerError
	var ferr FieldError
	switch {
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
			http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
			return apiErr.Status
		}
		return http.StatusBadGateway
	case models.IsValidationError(err), errors.As(err, &ferr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &herr) && herr.Status != 0:
		return herr.Status
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, futapi.ErrTransport), errors.Is(err, futapi.ErrMalformedResponse), errors.Is(err, futapi.ErrMissingToken):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
