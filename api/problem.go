// ABOUTME: RFC 7807 problem documents for API errors
// ABOUTME: Maps store, export and app sentinel errors to HTTP statuses
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harperreed/opslog/app"
	"github.com/harperreed/opslog/export"
	"github.com/harperreed/opslog/models"
	"github.com/harperreed/opslog/store"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

const problemBase = "https://opslog.dev/errors/"

var problemTypes = map[int]struct {
	slug  string
	title string
}{
	http.StatusBadRequest:          {"bad-request", "Bad Request"},
	http.StatusForbidden:           {"forbidden", "Forbidden"},
	http.StatusNotFound:            {"not-found", "Not Found"},
	http.StatusConflict:            {"conflict", "Conflict"},
	http.StatusUnprocessableEntity: {"validation-error", "Validation Error"},
	http.StatusInternalServerError: {"internal-error", "Internal Server Error"},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt.slug = "unknown"
		pt.title = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Type:     problemBase + pt.slug,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	})
}

// statusFor classifies a domain error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidDate),
		errors.Is(err, store.ErrMultipleSections),
		errors.Is(err, store.ErrInvalidContact),
		errors.Is(err, store.ErrInvalidSetting),
		errors.Is(err, models.ErrTrustOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrDuplicateContact):
		return http.StatusConflict
	case errors.Is(err, export.ErrNoEntries):
		return http.StatusNotFound
	case errors.Is(err, app.ErrConsentRequired):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MapError converts domain errors to Problem Details responses.
func MapError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		WriteProblem(w, r, status, "Internal Server Error")
		return
	}
	WriteProblem(w, r, status, err.Error())
}
