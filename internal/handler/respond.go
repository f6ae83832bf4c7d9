package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/skuld/internal/domain"
	"github.com/dukerupert/skuld/internal/middleware"
	"github.com/dukerupert/skuld/internal/shipping"
)

// errorResponse is the JSON error envelope: a stable machine-readable code
// plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := errorCodeAndMessage(err)
	status := errorCodeToHTTPStatus(code)

	if status >= 500 {
		middleware.GetLogger(r.Context()).Error("request failed", "error", err)
	} else {
		middleware.GetLogger(r.Context()).Debug("request rejected", "error", err)
	}

	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

func errorCodeAndMessage(err error) (string, string) {
	// Shipping availability is its own package's error; everything else
	// goes through the domain taxonomy.
	var unavailable *shipping.UnavailableError
	if errors.As(err, &unavailable) {
		return "shipping_unavailable", unavailable.Error()
	}

	return domain.ErrorCode(err), domain.ErrorMessage(err)
}

func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case "shipping_unavailable":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
