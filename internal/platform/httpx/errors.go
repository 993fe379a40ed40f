package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidStep  = errors.New("invalid step")
	ErrConflict     = errors.New("conflicting update")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldErrors carries per-field validation messages alongside ErrValidation.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string { return "validation failed" }

// Unwrap lets errors.Is(err, ErrValidation) match wrapped field errors.
func (e *FieldErrors) Unwrap() error { return ErrValidation }

// NewFieldErrors builds a FieldErrors from a field→message map.
func NewFieldErrors(fields map[string]string) error {
	return &FieldErrors{Fields: fields}
}

// RespondError maps domain errors to the failure envelope. Unexpected errors
// become a generic 500; devMode attaches the raw error for local debugging.
func RespondError(w http.ResponseWriter, err error, devMode bool) {
	var fieldErrs *FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		JSON(w, http.StatusUnprocessableEntity, Envelope{
			Success: false,
			Message: "validation failed",
			Errors:  fieldErrs.Fields,
		})
	case errors.Is(err, ErrValidation):
		Fail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidStep):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrForbidden):
		Fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, err.Error())
	default:
		env := Envelope{Success: false, Message: "internal server error"}
		if devMode {
			env.Error = err.Error()
		}
		JSON(w, http.StatusInternalServerError, env)
	}
}
