/*
Package handler provides the HTTP handlers and routing setup for the Wave Chat server.

This file contains the connection-ID API: generating a free 3-digit ID,
validating an ID's format and availability, and pre-validating a registration.
These endpoints only read core state; actual registration happens over the
WebSocket connection where a transport session exists.
*/
package handler

import (
	"net/http"

	"wavechat/internal/pkg/req"
	"wavechat/internal/pkg/resp"
	"wavechat/internal/pkg/validate"
)

// HandleGenerateConnectionID serves GET /api/connection-id/generate.
// Exhaustion of the random draw is reported as a retryable failure, not an
// HTTP error.
func HandleGenerateConnectionID(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connectionID, customErr := deps.Hub.GenerateConnectionID()
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"connectionId": connectionID,
		})
	}
}

// ValidateConnectionIDInput is the request body for the validate endpoint.
type ValidateConnectionIDInput struct {
	ConnectionID string `json:"connectionId"`
}

// HandleValidateConnectionID serves POST /api/connection-id/validate.
// Format errors are surfaced synchronously; a well-formed ID reports whether
// it is currently available.
func HandleValidateConnectionID(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ValidateConnectionIDInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		available, customErr := deps.Hub.ValidateConnectionID(input.ConnectionID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"valid":     true,
			"available": available,
		})
	}
}

// RegisterCheckInput is the request body for the register pre-check endpoint.
type RegisterCheckInput struct {
	ConnectionID string `json:"connectionId"`
	Name         string `json:"name"`
}

// HandleRegisterCheck serves POST /api/connection-id/register.
// The REST endpoint can only format-check the inputs: no transport session
// exists yet, so the client completes registration over the WebSocket.
func HandleRegisterCheck(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterCheckInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := validate.ConnectionID(input.ConnectionID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := validate.DisplayName(input.Name); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": "Validation passed. Complete registration via WebSocket connection.",
		})
	}
}
