// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

/*
Package featured implements the featured-section planner.

A featured section is one horizontal rail on a landing page: the home page,
the library page, or one genre's page. Popular and latest rails resolve their
books dynamically at read time; custom rails carry a hand-picked list. The
planner validates every save against the page's existing sections and then
renormalizes the page's display order to stay contiguous from 1.
*/
package featured

import (
	"fmt"
	"net/http"
	"time"

	"github.com/haminhtu/librarium/internal/platform/apperr"
)

// FeaturedType selects how a section's books are resolved.
type FeaturedType string

const (
	TypePopular FeaturedType = "popular" // top books by lifetime borrow count
	TypeLatest  FeaturedType = "latest"  // top books by publication date
	TypeCustom  FeaturedType = "custom"  // manually curated list
)

// PageType selects which landing page a section appears on.
type PageType string

const (
	PageHome    PageType = "home"
	PageLibrary PageType = "library"
	PageGenre   PageType = "genre"
)

const (
	// MinCustomBooks and MaxCustomBooks bound a custom rail's curated list.
	MinCustomBooks = 1
	MaxCustomBooks = 7

	// ResolveLimit caps dynamically resolved rails. Custom rails are stored
	// pre-capped and returned verbatim.
	ResolveLimit = 7

	// TitleMaxLen bounds the display title.
	TitleMaxLen = 20
)

// Section represents one featured rail and its placement.
type Section struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	FeaturedType FeaturedType `json:"featured_type"`
	PageType     PageType     `json:"page_type"`

	// GenreID is required when PageType is "genre" (it places the section on
	// that genre's page) and optional otherwise (it narrows a dynamic rail).
	GenreID *string `json:"genre_id"`

	// Order is the 1-based display position within the section's scope.
	Order int `json:"order"`

	// BookIDs holds the curated list. Meaningful only for custom sections.
	BookIDs []string `json:"book_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scope identifies the group of sections competing for display order:
// one page type plus, for genre pages, the genre itself.
type Scope struct {
	PageType PageType
	GenreID  *string
}

// Equal compares scopes by value. GenreID is a pointer, so plain struct
// comparison would compare addresses.
func (s Scope) Equal(other Scope) bool {
	if s.PageType != other.PageType {
		return false
	}
	if (s.GenreID == nil) != (other.GenreID == nil) {
		return false
	}
	return s.GenreID == nil || *s.GenreID == *other.GenreID
}

// Scope returns the ordering/uniqueness scope this section lives in.
// Sections on non-genre pages share one scope regardless of genre filter.
func (s *Section) Scope() Scope {
	if s.PageType == PageGenre {
		return Scope{PageType: s.PageType, GenreID: s.GenreID}
	}
	return Scope{PageType: s.PageType}
}

// SectionData is one resolved rail in the page payload. The JSON keys match
// what the landing-page scripts already consume.
type SectionData struct {
	Title string     `json:"title"`
	Books []BookData `json:"books"`
}

// BookData is the display subset of a resolved book.
type BookData struct {
	Title string `json:"title"`
	ISBN  string `json:"ISBN"`
	Cover string `json:"cover"`
}

// Global field names for validation
const (
	FieldTitle        = "title"
	FieldFeaturedType = "featured_type"
	FieldPageType     = "page_type"
	FieldGenreID      = "genre_id"
	FieldOrder        = "order"
)

// # Domain Errors
//
// The curation tooling shows these messages verbatim, wording preserved.

// ErrInvalidOrder rejects display orders below 1.
var ErrInvalidOrder = &apperr.AppError{
	Code:       "INVALID_ORDER",
	Message:    "Ensure this value is greater or equal to 1.",
	HTTPStatus: http.StatusBadRequest,
}

// NewDuplicateSectionError reports a second popular/latest rail in one scope.
func NewDuplicateSectionError(featuredType FeaturedType, pageType PageType, genreName string) *apperr.AppError {
	if genreName == "" {
		genreName = "None"
	}
	return apperr.Domain("DUPLICATE_SECTION", fmt.Sprintf(
		"A Featured entry with type '%s', page_type='%s', and genre='%s' already exists.",
		featuredType, pageType, genreName,
	))
}

// NewDuplicateOrderError reports an order collision within a scope.
func NewDuplicateOrderError(order int) *apperr.AppError {
	return apperr.Domain("DUPLICATE_ORDER", fmt.Sprintf(
		"A section already exists with order %d for this page.", order,
	))
}

var (
	// ErrNoCustomBooks rejects custom sections with an empty curated list.
	ErrNoCustomBooks = apperr.Domain("INVALID_BOOK_COUNT",
		"You must select at least one book for Custom type.")

	// ErrTooManyCustomBooks rejects curated lists longer than the cap.
	ErrTooManyCustomBooks = apperr.Domain("INVALID_BOOK_COUNT",
		"You can select a maximum of 7 books.")

	// ErrUnexpectedBooks rejects curated lists on popular/latest sections.
	ErrUnexpectedBooks = apperr.Domain("UNEXPECTED_BOOKS",
		"Books can only be set when type is Custom.")
)

// NewGenreMismatchError reports a curated book outside the section's genre.
func NewGenreMismatchError(bookTitle, genreName string) *apperr.AppError {
	return apperr.Domain("GENRE_MISMATCH", fmt.Sprintf(
		"The book '%s' does not belong to the selected genre '%s'.", bookTitle, genreName,
	))
}
