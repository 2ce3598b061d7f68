// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package lending

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haminhtu/librarium/internal/platform/middleware"
	requestutil "github.com/haminhtu/librarium/internal/platform/request"
	"github.com/haminhtu/librarium/internal/platform/respond"
)

// loginRedirectTarget is where the dialogs send anonymous visitors.
const loginRedirectTarget = "/api/v1/auth/login"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Dialog endpoints: anonymous users get a login redirect inside the
	// envelope instead of a bare 401, matching what the dialogs expect.
	router.Post("/borrow", handler.borrowBook)
	router.Post("/return", handler.returnBook)

	// History listing uses the standard API envelope.
	router.With(middleware.RequireAuth).Get("/records", handler.listRecords)

	return router
}

/*
BorrowBook checks a copy out to the logged-in member.

POST /api/v1/lending/borrow?isbn=...

Response (legacy dialog envelope):
  - success: true on a completed borrow
  - modal_error: NOT_AVAILABLE / ALREADY_BORROWED / BOOK_NOT_FOUND messages
  - log_error: generic notice for malformed requests and server faults
  - redirect: login path for anonymous visitors
*/
func (handler *Handler) borrowBook(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Claims(request)
	if claims == nil {
		respond.DialogRedirect(writer, loginRedirectTarget)
		return
	}

	isbn := requestutil.Query(request, "isbn")
	if isbn == "" {
		respond.DialogError(writer, request, errors.New("lending_dialog_missing_isbn"))
		return
	}

	if _, err := handler.service.Borrow(request.Context(), claims.UserID, isbn); err != nil {
		respond.DialogError(writer, request, err)
		return
	}
	respond.Dialog(writer)
}

/*
ReturnBook hands a borrowed copy back.

POST /api/v1/lending/return?isbn=...

Response (legacy dialog envelope):
  - success: true on a completed return
  - modal_error: RECORD_NOT_FOUND / RETURN_COOLDOWN messages
  - log_error: generic notice for malformed requests and server faults
  - redirect: login path for anonymous visitors
*/
func (handler *Handler) returnBook(writer http.ResponseWriter, request *http.Request) {
	claims := requestutil.Claims(request)
	if claims == nil {
		respond.DialogRedirect(writer, loginRedirectTarget)
		return
	}

	isbn := requestutil.Query(request, "isbn")
	if isbn == "" {
		respond.DialogError(writer, request, errors.New("lending_dialog_missing_isbn"))
		return
	}

	if err := handler.service.Return(request.Context(), claims.UserID, isbn); err != nil {
		respond.DialogError(writer, request, err)
		return
	}
	respond.Dialog(writer)
}

// ListRecords returns the member's lending history, active loans first.
//
// GET /api/v1/lending/records?q=...&sort=latest|oldest
func (handler *Handler) listRecords(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.UserRecords(request.Context(), userID, Filter{
		Query: requestutil.Query(request, "q"),
		Sort:  requestutil.Query(request, "sort"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}
