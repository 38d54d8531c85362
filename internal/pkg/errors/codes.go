package errors

import "net/http"

var (
	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found or expired",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	// Действие воспроизведено в фазе, которая его не допускает.
	// Состояние сессии при этом не меняется.
	ErrInvalidActionForPhase = New(
		"INVALID_ACTION_FOR_PHASE",
		"Action is not allowed in the current conversation phase",
		http.StatusConflict,
	)

	ErrInvalidAction = New(
		"INVALID_ACTION",
		"Malformed action token",
		http.StatusBadRequest,
	)

	// Каталог для языка сессии пуст или не загружен: действие невозможно
	// выполнить, но сессия остаётся живой
	ErrCatalogUnavailable = New(
		"CATALOG_UNAVAILABLE",
		"Catalog is empty or not loaded for the requested language",
		http.StatusServiceUnavailable,
	)

	ErrUnknownLocale = New(
		"UNKNOWN_LOCALE",
		"Unsupported language",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
