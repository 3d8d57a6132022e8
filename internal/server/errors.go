package server

import (
	"errors"
	"net/http"

	"derrclan.com/ayah-printer/internal/ayah"
	"derrclan.com/ayah-printer/internal/quran"
)

// statusFor maps a printing failure to an HTTP status.
func statusFor(err error) int {
	var (
		fetchErr *quran.FetchError
		parseErr *quran.ParseError
	)
	switch {
	case ayah.IsValidation(err):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
