// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

/*
Package lending implements the borrow/return engine.

A lending record tracks one copy of a book checked out by one member. The
record is "active" while its return date is unset; at most one active record
may exist per (member, book) pair. Every borrow and return runs as a single
database transaction holding a row lock on the book, so the inventory
counters can never drift even under concurrent dialog spam.
*/
package lending

import (
	"net/http"
	"time"

	"github.com/haminhtu/librarium/internal/platform/apperr"
	"github.com/haminhtu/librarium/pkg/humandate"
)

const (
	// LoanPeriod is how long a member may keep a copy before it is due.
	LoanPeriod = 14 * 24 * time.Hour

	// ReturnCooldown is the minimum shelf time between borrowing a copy and
	// handing it back. It stops bots from churning the availability counters.
	ReturnCooldown = 24 * time.Hour
)

// Record represents one copy of a book checked out by one member.
type Record struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`

	// IsActive mirrors "return date is unset" for clients sorting their shelf.
	IsActive bool `json:"is_active"`

	// Book carries joined display fields on listing queries. Nil elsewhere.
	Book *BookSummary `json:"book,omitempty"`
}

// BookSummary is the display subset of a book joined onto lending listings.
type BookSummary struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	CoverURL string `json:"cover_url"`
}

// Filter holds the parameters for a member's lending history search.
type Filter struct {
	Query string // Word-prefix match against the book's title, author or ISBN, or a record ID prefix
	Sort  string // "oldest" flips the activity order; anything else is latest-first
}

// Global field names for validation
const (
	FieldISBN = "isbn"
)

// # Domain Errors
//
// These messages are rendered verbatim inside the borrow/return dialogs, so
// their wording (and punctuation) is load-bearing.

var (
	// ErrNotAvailable reports that every copy is currently checked out.
	ErrNotAvailable = apperr.Domain("NOT_AVAILABLE", "This book is no longer available")

	// ErrAlreadyBorrowed reports that the member already holds an active copy.
	ErrAlreadyBorrowed = apperr.Domain("ALREADY_BORROWED", "This book has already been borrowed!")

	// ErrRecordNotFound reports a return with no active record to complete.
	ErrRecordNotFound = &apperr.AppError{
		Code:       "RECORD_NOT_FOUND",
		Message:    "You have not borrowed this book or you have already returned it!",
		HTTPStatus: http.StatusNotFound,
	}
)

// NewCooldownError builds the RETURN_COOLDOWN error with the exact timestamp
// the member becomes eligible to return the copy.
func NewCooldownError(until time.Time) *apperr.AppError {
	return apperr.Domain("RETURN_COOLDOWN", "You cannot return this book until: "+humandate.Format(until))
}
