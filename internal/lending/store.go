// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package lending

import (
	"context"
	"time"
)

type Repository interface {
	// Borrow atomically checks availability and the one-active-copy rule,
	// inserts the record, and adjusts the book's counters. The book row stays
	// locked for the duration. r.BookID is resolved from the ISBN.
	Borrow(context context.Context, r *Record, isbn string) error

	// FindActive returns the member's current active record for the book.
	// With multiple candidates (legacy data) the latest due date wins, then
	// the most recently created record.
	FindActive(context context.Context, userID, isbn string) (*Record, error)

	// Complete marks an active record returned and puts the copy back on the
	// shelf. Returns [ErrRecordNotFound] if the record was already completed.
	Complete(context context.Context, recordID string, returnDate time.Time) error

	// ListByUser returns the member's full lending history, active loans first.
	ListByUser(context context.Context, userID string, f Filter) ([]*Record, error)
}
