package v1

import (
	"errors"
	"net/http"

	"github.com/givehub/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no cause matching your query"`
}

// status returns the appropriate HTTP status for a model error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) || errors.Is(err, models.ErrTransactionFailed) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
