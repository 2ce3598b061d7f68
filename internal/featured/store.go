// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package featured

import "context"

type Repository interface {
	// Section persistence. Create and Update write the section row and its
	// curated book junction atomically.
	CreateSection(context context.Context, s *Section) error
	UpdateSection(context context.Context, s *Section) error
	DeleteSection(context context.Context, id string) error
	GetSection(context context.Context, id string) (*Section, error)

	// ListByPage returns the sections for a page (optionally one genre's
	// page) ordered by display position.
	ListByPage(context context.Context, pageType PageType, genreName string) ([]*Section, error)

	// Validation reads. excludeID skips the section being updated.
	NonCustomExists(context context.Context, featuredType FeaturedType, scope Scope, excludeID string) (bool, error)
	OrderTaken(context context.Context, scope Scope, order int, excludeID string) (bool, error)
	MaxOrder(context context.Context, scope Scope) (int, error)
	BooksOutsideGenre(context context.Context, bookIDs []string, genreID string) ([]string, error)
	GenreName(context context.Context, genreID string) (string, error)

	// Renormalize rewrites the scope's orders to a contiguous 1..n run,
	// locking the scope's rows for the duration.
	Renormalize(context context.Context, scope Scope) error

	// Resolution reads for the page payload.
	TopByBorrowCount(context context.Context, genreName string, limit int) ([]BookData, error)
	TopByDatePublished(context context.Context, genreName string, limit int) ([]BookData, error)
	SectionBooks(context context.Context, sectionID string) ([]BookData, error)
}
