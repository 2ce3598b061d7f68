// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package book_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haminhtu/librarium/internal/catalog/book"
	"github.com/haminhtu/librarium/internal/platform/apperr"
	"github.com/haminhtu/librarium/internal/platform/dberr"
)

// fakeRepository is an in-memory Repository keyed by ISBN.
type fakeRepository struct {
	books map[string]*book.Book
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{books: map[string]*book.Book{}}
}

func (f *fakeRepository) ListBooks(_ context.Context, _ book.Filter, _, _ int) ([]*book.Book, int, error) {
	var out []*book.Book
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetBook(_ context.Context, id string) (*book.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetBookByISBN(_ context.Context, isbn string) (*book.Book, error) {
	if b, ok := f.books[isbn]; ok {
		return b, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) CreateBook(_ context.Context, b *book.Book, _ []string) error {
	f.books[b.ISBN] = b
	return nil
}

func (f *fakeRepository) UpdateBook(_ context.Context, b *book.Book, _ []string) error {
	f.books[b.ISBN] = b
	return nil
}

func (f *fakeRepository) DeleteBookByISBN(_ context.Context, isbn string) error {
	if _, ok := f.books[isbn]; !ok {
		return book.ErrBookNotFound
	}
	delete(f.books, isbn)
	return nil
}

func validBook() *book.Book {
	return &book.Book{
		Title:             "The Haunting of Hill House",
		Author:            "Shirley Jackson",
		ISBN:              "9780143039983",
		DatePublished:     time.Date(1959, 10, 16, 0, 0, 0, 0, time.UTC),
		AvailableQuantity: 2,
		TotalQuantity:     3,
	}
}

/*
TestCreateBook_QuantityGuard verifies that a book can never be created with
more copies on the shelf than the library owns.
*/
func TestCreateBook_QuantityGuard(t *testing.T) {
	repo := newFakeRepository()
	service := book.NewService(repo, slog.Default())

	b := validBook()
	b.AvailableQuantity = 5
	b.TotalQuantity = 3

	err := service.CreateBook(context.Background(), b, nil)

	require.ErrorIs(t, err, book.ErrQuantityExceeded)
	assert.Empty(t, repo.books)
}

/*
TestUpdateBook_QuantityGuard verifies the guard holds on the update path too,
covering inventory shrinks while copies are checked out.
*/
func TestUpdateBook_QuantityGuard(t *testing.T) {
	repo := newFakeRepository()
	service := book.NewService(repo, slog.Default())

	b := validBook()
	require.NoError(t, service.CreateBook(context.Background(), b, nil))

	b.TotalQuantity = 1 // available 2 > total 1
	err := service.UpdateBook(context.Background(), b.ID, b, nil)

	require.ErrorIs(t, err, book.ErrQuantityExceeded)
}

/*
TestCreateBook_ISBNValidation verifies that only 13-digit ISBNs are accepted.
*/
func TestCreateBook_ISBNValidation(t *testing.T) {
	repo := newFakeRepository()
	service := book.NewService(repo, slog.Default())

	for _, isbn := range []string{"", "12345", "978014303998X", "97801430399830"} {
		b := validBook()
		b.ISBN = isbn

		err := service.CreateBook(context.Background(), b, nil)

		appError := apperr.As(err)
		require.NotNil(t, appError, "isbn %q should be rejected", isbn)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	}
}

/*
TestCreateBook_DefaultsDescription verifies the placeholder blurb and cover
are applied to books created without them.
*/
func TestCreateBook_DefaultsDescription(t *testing.T) {
	repo := newFakeRepository()
	service := book.NewService(repo, slog.Default())

	b := validBook()
	b.Description = "  "
	b.CoverURL = ""

	require.NoError(t, service.CreateBook(context.Background(), b, nil))

	assert.Equal(t, book.DefaultDescription, b.Description)
	assert.Equal(t, book.DefaultCoverURL, b.CoverURL)
}

/*
TestGetBookByISBN_NotFound verifies missing titles surface the dedicated
BOOK_NOT_FOUND error instead of a generic 404.
*/
func TestGetBookByISBN_NotFound(t *testing.T) {
	repo := newFakeRepository()
	service := book.NewService(repo, slog.Default())

	_, err := service.GetBookByISBN(context.Background(), "9780000000000")

	require.ErrorIs(t, err, book.ErrBookNotFound)
}

/*
TestDeleteBook_NotFound verifies that deleting an already-deleted title
reports BOOK_NOT_FOUND, covering the concurrent double-delete race.
*/
func TestDeleteBook_NotFound(t *testing.T) {
	repo := newFakeRepository()
	service := book.NewService(repo, slog.Default())

	b := validBook()
	require.NoError(t, service.CreateBook(context.Background(), b, nil))

	require.NoError(t, service.DeleteBook(context.Background(), b.ISBN))
	err := service.DeleteBook(context.Background(), b.ISBN)

	require.ErrorIs(t, err, book.ErrBookNotFound)
}
