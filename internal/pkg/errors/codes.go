package errors

import "net/http"

var (
	ErrFieldNotFound = New(
		"FIELD_NOT_FOUND",
		"Field not found",
		http.StatusNotFound,
	)

	ErrInvalidDataset = New(
		"INVALID_DATASET",
		"Field dataset is malformed",
		http.StatusUnprocessableEntity,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Interaction session not found",
		http.StatusNotFound,
	)

	ErrInvalidConvention = New(
		"INVALID_CONVENTION",
		"Unknown coordinate convention",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
