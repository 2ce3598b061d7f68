// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package featured

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haminhtu/librarium/internal/platform/middleware"
	requestutil "github.com/haminhtu/librarium/internal/platform/request"
	"github.com/haminhtu/librarium/internal/platform/respond"
	"github.com/haminhtu/librarium/internal/platform/sec"
	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/slice"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public: the landing-page payload
	router.Get("/data", handler.pageData)

	// Staff only: section curation
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Get("/{id}", handler.getSection)
		staffRoute.Post("/", handler.createSection)
		staffRoute.Patch("/{id}", handler.updateSection)
		staffRoute.Delete("/{id}", handler.deleteSection)
	})

	return router
}

type sectionRequest struct {
	Title        string   `json:"title"`
	FeaturedType string   `json:"featured_type"`
	PageType     string   `json:"page_type"`
	GenreID      *string  `json:"genre_id"`
	Order        int      `json:"order"`
	BookIDs      []string `json:"book_ids"`
}

func (input sectionRequest) toSection() *Section {
	return &Section{
		Title:        input.Title,
		FeaturedType: FeaturedType(input.FeaturedType),
		PageType:     PageType(input.PageType),
		GenreID:      input.GenreID,
		Order:        input.Order,
		BookIDs:      slice.Filter(input.BookIDs, func(id string) bool { return id != "" }),
	}
}

/*
PageData returns the resolved featured rails for one landing page.

GET /api/v1/featured/data?page=home|library|genre&genre=<name>

Response:
  - 200: Ordered list of {title, books:[{title, ISBN, cover}]}
  - 400: Missing required 'page' parameter
*/
func (handler *Handler) pageData(writer http.ResponseWriter, request *http.Request) {
	pageType := requestutil.Query(request, "page")
	if pageType == "" {
		respond.Error(writer, request, validate.RequiredError("page", "Missing required parameter: page"))
		return
	}

	data, err := handler.service.PageData(request.Context(), PageType(pageType), requestutil.Query(request, "genre"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, data)
}

func (handler *Handler) getSection(writer http.ResponseWriter, request *http.Request) {
	section, err := handler.service.GetSection(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, section)
}

func (handler *Handler) createSection(writer http.ResponseWriter, request *http.Request) {
	var input sectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	section := input.toSection()
	if err := handler.service.CreateSection(request.Context(), section); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, section)
}

func (handler *Handler) updateSection(writer http.ResponseWriter, request *http.Request) {
	var input sectionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	section := input.toSection()
	if err := handler.service.UpdateSection(request.Context(), requestutil.Param(request, "id"), section); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, section)
}

func (handler *Handler) deleteSection(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSection(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
