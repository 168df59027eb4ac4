package api

import (
	"errors"
	"log/slog"
	"net/http"

	errorvalues "github.com/ryabov/momentum/internal/error_values"
	"github.com/ryabov/momentum/internal/service"
	"github.com/ryabov/momentum/pkg/httputil"
)

// respondServiceError is the terminal responder for every failed domain
// call: it maps service errors onto the HTTP envelope and never fails
// itself.
func respondServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var fieldErrs service.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		logger.Error("validation failed", slog.Int("fields", len(fieldErrs)))
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "Invalid input.", fieldErrs)
	case errors.Is(err, errorvalues.ErrWrongCredentials):
		logger.Error("login failed")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid email or password.", nil)
	case errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error("resource owned by different user")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
	case errors.Is(err, errorvalues.ErrUserNotFound):
		logger.Error("user doesn't exist")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Not authenticated.", nil)
	case errors.Is(err, errorvalues.ErrActionNotFound):
		logger.Error("action doesn't exist")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action id.", nil)
	case errors.Is(err, errorvalues.ErrRecordNotFound):
		logger.Error("action record doesn't exist")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "Invalid action record id.", nil)
	default:
		logger.Error("service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error.", nil)
	}
}
