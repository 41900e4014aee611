/*
Package resp provides helper functions for constructing and sending standardized
HTTP JSON responses.

Every API response uses the same envelope: a success flag, an optional
user-facing error message, and an optional data payload.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"wavechat/internal/pkg/errs"
	"wavechat/internal/pkg/logx"
)

// APIResponse defines the standardized JSON response structure returned to clients.
type APIResponse struct {
	// Success reports whether the request was handled successfully.
	Success bool `json:"success"`

	// Error is the client-friendly error message, present only on failure.
	Error string `json:"error,omitempty"`

	// Data is the optional response payload returned on success.
	Data any `json:"data,omitempty"`
}

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	res := APIResponse{
		Success: true,
		Data:    data,
	}
	RespondJSON(w, r, http.StatusOK, res)
}

// RespondError sends an HTTP response containing custom error information.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := APIResponse{
		Success: false,
		Error:   customErr.Message,
	}
	RespondJSON(w, r, customErr.Status, res)
}
