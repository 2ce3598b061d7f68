// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (Success or Error) across the entire application
// follows a strict, predictable JSON envelope structure. This consistency is
// crucial for the frontend SPA to parse data robustly.
//
// The lending endpoints additionally expose a legacy dialog envelope
// ([Dialog], [DialogError]) kept byte-compatible with existing clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/haminhtu/librarium/internal/platform/apperr"
	"github.com/haminhtu/librarium/internal/platform/ctxkey"
	"github.com/haminhtu/librarium/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// DialogEnvelope is the legacy envelope consumed by the borrow/return dialogs.
//
// # Compatibility
//
// Existing frontend clients branch on these exact field names: a present
// "modal_error" string is rendered in a dialog, "redirect" triggers client
// navigation, and "log_error" is only written to the browser console.
type DialogEnvelope struct {
	Success    bool   `json:"success"`
	ModalError string `json:"modal_error,omitempty"`
	LogError   string `json:"log_error,omitempty"`
	Redirect   string `json:"redirect,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Dialog writes a legacy dialog success envelope.
func Dialog(writer http.ResponseWriter) {
	JSON(writer, http.StatusOK, DialogEnvelope{Success: true})
}

// DialogRedirect writes a legacy dialog envelope instructing the client to navigate.
func DialogRedirect(writer http.ResponseWriter, target string) {
	JSON(writer, http.StatusOK, DialogEnvelope{Success: false, Redirect: target})
}

// DialogError converts an error into the legacy dialog envelope.
//
// Domain errors ([apperr.AppError] with 4xx status) surface their client-safe
// message as "modal_error". Anything else is logged server-side and reported
// only as a generic "log_error" notice, never leaking internal detail.
func DialogError(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError != nil && appError.HTTPStatus < 500 {
		JSON(writer, http.StatusOK, DialogEnvelope{Success: false, ModalError: appError.Message})
		return
	}

	logger := getLoggerFromContext(request)
	logger.ErrorContext(request.Context(), "dialog_error_swallowed",
		slog.String("error", err.Error()),
		slog.String("request_id", getRequestIDFromContext(request)),
	)
	JSON(writer, http.StatusOK, DialogEnvelope{Success: false, LogError: "An error has occurred!"})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
