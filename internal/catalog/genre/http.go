// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haminhtu/librarium/internal/platform/middleware"
	requestutil "github.com/haminhtu/librarium/internal/platform/request"
	"github.com/haminhtu/librarium/internal/platform/respond"
	"github.com/haminhtu/librarium/internal/platform/sec"
	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Post("/", handler.createGenre)
		staffRoute.Patch("/{id}", handler.updateGenre)
		staffRoute.Delete("/{id}", handler.deleteGenre)
	})

	return router
}

type genreRequest struct {
	Name string `json:"name"`
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: requestutil.Query(request, "q"),
	}

	genres, total, err := handler.service.ListGenres(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genre, err := handler.service.GetGenre(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	genre := &Genre{Name: input.Name}
	if err := handler.service.CreateGenre(request.Context(), genre); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, genre)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	var input genreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	genre := &Genre{Name: input.Name}
	if err := handler.service.UpdateGenre(request.Context(), requestutil.Param(request, "id"), genre); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genre)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteGenre(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
