// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package book

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haminhtu/librarium/internal/platform/middleware"
	requestutil "github.com/haminhtu/librarium/internal/platform/request"
	"github.com/haminhtu/librarium/internal/platform/respond"
	"github.com/haminhtu/librarium/internal/platform/sec"
	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/pagination"
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

	// Public
	router.Get("/", handler.listBooks)
	router.Get("/search", handler.listBooks)
	router.Get("/{isbn}", handler.getBook)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleStaff))

		staffRoute.Post("/", handler.createBook)
		staffRoute.Patch("/{id}", handler.updateBook)
		staffRoute.Delete("/{isbn}", handler.deleteBook)
	})

	return router
}

type bookRequest struct {
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	ISBN              string   `json:"isbn"`
	DatePublished     string   `json:"date_published"` // YYYY-MM-DD
	CoverURL          string   `json:"cover_url"`
	Description       string   `json:"description"`
	AvailableQuantity int      `json:"available_quantity"`
	TotalQuantity     int      `json:"total_quantity"`
	GenreIDs          []string `json:"genre_ids"`
}

// toBook converts the transport payload into a domain entity.
func (input bookRequest) toBook() (*Book, error) {
	datePublished, err := time.Parse("2006-01-02", input.DatePublished)
	if err != nil {
		return nil, validate.RequiredError("date_published", "Must be a date in YYYY-MM-DD format")
	}

	return &Book{
		Title:             input.Title,
		Author:            input.Author,
		ISBN:              input.ISBN,
		DatePublished:     datePublished,
		CoverURL:          input.CoverURL,
		Description:       input.Description,
		AvailableQuantity: input.AvailableQuantity,
		TotalQuantity:     input.TotalQuantity,
	}, nil
}

// listBooks handles catalogue browsing and search.
//
// GET /api/v1/books?q=&genres=fantasy,horror&sort=popularity|latest|oldest
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: requestutil.Query(request, "q"),
		Genres: slice.Filter(
			slice.Map(strings.Split(requestutil.Query(request, "genres"), ","), strings.TrimSpace),
			func(name string) bool { return name != "" },
		),
		Sort: requestutil.Query(request, "sort"),
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetBookByISBN(request.Context(), requestutil.Param(request, "isbn"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	b, err := input.toBook()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), b, input.GenreIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, b)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	b, err := input.toBook()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), requestutil.Param(request, "id"), b, input.GenreIDs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, b)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBook(request.Context(), requestutil.Param(request, "isbn")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
