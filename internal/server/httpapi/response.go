// Package httpapi is the JSON API of the portfolio backend: routing,
// authentication middleware and the handlers for every resource.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/portfolio/internal/common"
)

const maxJSONBody = 1 << 20

// envelope is the shape of every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func ok(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func okList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &n, Data: items})
}

func okMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
}

// deleted answers a successful delete with an empty data object.
func deleted(w http.ResponseWriter) {
	ok(w, http.StatusOK, struct{}{})
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// failErr maps a service error to a response. resource names the entity for
// 404 and 409 messages ("Project not found"). Unexpected errors are logged
// and answered with a generic 500.
func (a *API) failErr(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		msg := strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
		fail(w, http.StatusBadRequest, msg)
	case errors.Is(err, common.ErrorAlreadyExists):
		fail(w, http.StatusConflict, resource+" already exists")
	case errors.Is(err, common.ErrorInvalidCredentials):
		fail(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorInvalidOTP):
		fail(w, http.StatusUnauthorized, "Invalid or expired OTP")
	case errors.Is(err, common.ErrorNotFound):
		fail(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, common.ErrorTooLarge):
		fail(w, http.StatusRequestEntityTooLarge, "File too large")
	case errors.Is(err, common.ErrorUnsupportedMedia):
		fail(w, http.StatusUnsupportedMediaType, "Only image files are allowed!")
	default:
		a.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		fail(w, http.StatusInternalServerError, "Server error")
	}
}
