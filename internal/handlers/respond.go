package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"awards-api/internal/repository"
	"awards-api/internal/service"
)

// Error codes returned in the error envelope
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNominationsClosed = "NOMINATIONS_CLOSED"
	CodeAlreadyVoted      = "ALREADY_VOTED"
	CodeNotFound          = "NOT_FOUND"
	CodeRateLimited       = "RATE_LIMITED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Envelope is the uniform response wrapper
type Envelope struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Error   *EnvelopeError `json:"error,omitempty"`
}

// EnvelopeError is the error half of the envelope
type EnvelopeError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RespondData sends a success envelope and ensures slices are never null
//
// IMPORTANT: nil slices encode as "null" instead of "[]", which breaks
// TypeScript/JavaScript frontends that expect arrays. Always respond
// through this helper rather than encoding directly.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Success: true, Data: normalizeSlices(data)}); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// RespondError sends an error envelope
func RespondError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{
		Success: false,
		Error:   &EnvelopeError{Code: code, Message: message, Fields: fields},
	}); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// RespondServiceError maps domain errors onto the error envelope. Unknown
// errors become a generic 500 with the detail logged, never surfaced.
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		RespondError(w, http.StatusBadRequest, CodeValidationError, "Validation failed", validationErr.Fields)
	case errors.Is(err, service.ErrNominationsClosed):
		RespondError(w, http.StatusForbidden, CodeNominationsClosed, "Nominations are currently closed", nil)
	case errors.Is(err, service.ErrAlreadyVoted):
		RespondError(w, http.StatusConflict, CodeAlreadyVoted, "You have already voted in this category", nil)
	case errors.Is(err, repository.ErrNominationNotFound),
		errors.Is(err, repository.ErrSubcategoryNotFound),
		errors.Is(err, repository.ErrNomineeNotFound),
		errors.Is(err, repository.ErrNominatorNotFound),
		errors.Is(err, repository.ErrTimelineEntryNotFound),
		errors.Is(err, repository.ErrOutboxEntryNotFound):
		RespondError(w, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
	case errors.Is(err, repository.ErrInvalidTransition):
		RespondError(w, http.StatusConflict, CodeValidationError, "Nomination cannot change to that state", nil)
	default:
		slog.Error("Request failed with internal error", "path", r.URL.Path, "error", err)
		RespondError(w, http.StatusInternalServerError, CodeInternalError, "An internal error occurred", nil)
	}
}

// normalizeSlices recursively ensures all nil slices become empty slices
func normalizeSlices(data interface{}) interface{} {
	if data == nil {
		return data
	}

	v := reflect.ValueOf(data)

	// Handle pointers
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return data
		}
		elem := v.Elem()

		// Special case: *time.Time should not be recursively processed
		if elem.Type() == reflect.TypeOf(time.Time{}) {
			return data
		}

		normalized := normalizeSlices(elem.Interface())

		result := reflect.New(elem.Type())
		result.Elem().Set(reflect.ValueOf(normalized))
		return result.Interface()
	}

	// Handle slices
	if v.Kind() == reflect.Slice {
		if v.IsNil() {
			return reflect.MakeSlice(v.Type(), 0, 0).Interface()
		}

		result := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			normalized := normalizeSlices(elem.Interface())
			result.Index(i).Set(reflect.ValueOf(normalized))
		}
		return result.Interface()
	}

	// Handle maps: values pass through, nil maps stay nil (omitted via omitempty)
	if v.Kind() == reflect.Map {
		return data
	}

	// Handle structs - only normalize slice fields, keep other fields as-is
	if v.Kind() == reflect.Struct {
		if v.Type() == reflect.TypeOf(time.Time{}) {
			return data
		}

		result := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			structField := v.Type().Field(i)

			if !field.CanInterface() {
				continue
			}

			fieldType := field.Type()
			if fieldType == reflect.TypeOf(time.Time{}) ||
				(fieldType.Kind() == reflect.Ptr && fieldType.Elem() == reflect.TypeOf(time.Time{})) {
				if result.Field(i).CanSet() && structField.IsExported() {
					result.Field(i).Set(field)
				}
			} else if field.Kind() == reflect.Slice || field.Kind() == reflect.Ptr || field.Kind() == reflect.Struct {
				normalized := normalizeSlices(field.Interface())
				if result.Field(i).CanSet() {
					result.Field(i).Set(reflect.ValueOf(normalized))
				}
			} else {
				if result.Field(i).CanSet() && structField.IsExported() {
					result.Field(i).Set(field)
				}
			}
		}
		return result.Interface()
	}

	return data
}
