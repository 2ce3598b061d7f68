// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

/*
Package book manages the catalogue's book inventory.

Each book tracks two quantity counters: the total number of physical copies
the library owns and how many of them are currently on the shelf. The lending
engine moves copies between those counters; this package guards the invariant
that available never exceeds total.
*/
package book

import (
	"net/http"
	"time"

	"github.com/haminhtu/librarium/internal/platform/apperr"
)

// Book represents a single title in the catalogue.
//
// AvailableQuantity counts copies on the shelf right now. TotalQuantity counts
// copies the library owns. BorrowCount is a lifetime popularity counter that
// only ever grows.
type Book struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Author            string     `json:"author"`
	ISBN              string     `json:"isbn"`
	DatePublished     time.Time  `json:"date_published"`
	CoverURL          string     `json:"cover_url"`
	Description       string     `json:"description"`
	AvailableQuantity int        `json:"available_quantity"`
	TotalQuantity     int        `json:"total_quantity"`
	BorrowCount       int        `json:"borrow_count"`
	Genres            []GenreTag `json:"genres"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// GenreTag is the embedded genre reference returned with a book.
type GenreTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Filter holds the parameters for a paginated catalogue search.
type Filter struct {
	Query  string   // Word-prefix match against title, author and ISBN
	Genres []string // Genre names, case-insensitive, any-match
	Sort   string   // One of the Sort* values; default is title A-Z
}

// Catalogue sort orders.
const (
	SortPopularity = "popularity" // Most borrowed first
	SortLatest     = "latest"     // Newest publication first
	SortOldest     = "oldest"     // Oldest publication first
)

const (
	// DefaultDescription fills in for books added without a blurb.
	DefaultDescription = "No description available."

	// DefaultCoverURL is the placeholder artwork for books without a cover.
	DefaultCoverURL = "book_covers/placeholder_cover.png"

	// ISBNLength is the number of digits in an ISBN-13.
	ISBNLength = 13
)

// Global field names for validation
const (
	FieldTitle             = "title"
	FieldAuthor            = "author"
	FieldISBN              = "isbn"
	FieldAvailableQuantity = "available_quantity"
	FieldTotalQuantity     = "total_quantity"
)

// # Domain Errors

var (
	// ErrQuantityExceeded rejects writes that would leave more copies on the
	// shelf than the library owns.
	ErrQuantityExceeded = &apperr.AppError{
		Code:       "QUANTITY_EXCEEDED",
		Message:    "Available quantity cannot exceed total quantity.",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	// ErrBookNotFound reports a lookup or delete against a missing title.
	ErrBookNotFound = &apperr.AppError{
		Code:       "BOOK_NOT_FOUND",
		Message:    "This book does not exist or was deleted!",
		HTTPStatus: http.StatusNotFound,
	}
)
