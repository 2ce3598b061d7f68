// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package lending_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haminhtu/librarium/internal/catalog/book"
	"github.com/haminhtu/librarium/internal/lending"
)

// fakeBook mirrors the inventory counters the engine reads and writes.
type fakeBook struct {
	id          string
	available   int
	total       int
	borrowCount int
}

// fakeRepository is an in-memory Repository honoring the same contract as the
// Postgres implementation: availability and one-active-copy checks on borrow,
// double-return protection on complete.
type fakeRepository struct {
	books   map[string]*fakeBook // keyed by ISBN
	records []*lending.Record
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{books: map[string]*fakeBook{}}
}

func (f *fakeRepository) addBook(isbn, id string, copies int) {
	f.books[isbn] = &fakeBook{id: id, available: copies, total: copies}
}

func (f *fakeRepository) Borrow(_ context.Context, r *lending.Record, isbn string) error {
	b, ok := f.books[isbn]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.available < 1 {
		return lending.ErrNotAvailable
	}
	for _, existing := range f.records {
		if existing.UserID == r.UserID && existing.BookID == b.id && existing.ReturnDate == nil {
			return lending.ErrAlreadyBorrowed
		}
	}

	r.BookID = b.id
	r.IsActive = true
	b.available--
	f.records = append(f.records, r)
	return nil
}

func (f *fakeRepository) FindActive(_ context.Context, userID, isbn string) (*lending.Record, error) {
	b, ok := f.books[isbn]
	if !ok {
		return nil, lending.ErrRecordNotFound
	}

	var candidates []*lending.Record
	for _, r := range f.records {
		if r.UserID == userID && r.BookID == b.id && r.ReturnDate == nil {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil, lending.ErrRecordNotFound
	}

	// Latest due date wins, ties fall to the newest (largest) ID.
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].DueDate.Equal(candidates[j].DueDate) {
			return candidates[i].DueDate.After(candidates[j].DueDate)
		}
		return candidates[i].ID > candidates[j].ID
	})
	return candidates[0], nil
}

func (f *fakeRepository) Complete(_ context.Context, recordID string, returnDate time.Time) error {
	for _, r := range f.records {
		if r.ID == recordID && r.ReturnDate == nil {
			r.ReturnDate = &returnDate
			r.IsActive = false
			for _, b := range f.books {
				if b.id == r.BookID {
					b.available++
					b.borrowCount++
				}
			}
			return nil
		}
	}
	return lending.ErrRecordNotFound
}

func (f *fakeRepository) ListByUser(_ context.Context, userID string, _ lending.Filter) ([]*lending.Record, error) {
	var out []*lending.Record
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// testClock is a manually advanced clock.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time          { return c.current }
func (c *testClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestClock(start time.Time) *testClock { return &testClock{current: start} }

func newService(repo lending.Repository, clock *testClock) *lending.Service {
	return lending.NewService(repo, slog.Default(), clock.Now)
}

/*
TestBorrow_StampsDueDate verifies a borrow creates an active record due
exactly 14 days out and takes a copy off the shelf.
*/
func TestBorrow_StampsDueDate(t *testing.T) {
	repo := newFakeRepository()
	repo.addBook("9780143039983", "book-1", 2)
	clock := newTestClock(time.Date(2025, 7, 4, 15, 4, 0, 0, time.UTC))
	service := newService(repo, clock)

	record, err := service.Borrow(context.Background(), "user-a", "9780143039983")
	require.NoError(t, err)

	assert.True(t, record.IsActive)
	assert.Equal(t, clock.Now().Add(14*24*time.Hour), record.DueDate)
	assert.Equal(t, 1, repo.books["9780143039983"].available)

	// Popularity counts completed loans, not checkouts
	assert.Equal(t, 0, repo.books["9780143039983"].borrowCount)
}

/*
TestBorrow_BookNotFound verifies a borrow against an unknown ISBN reports the
dedicated book-not-found message.
*/
func TestBorrow_BookNotFound(t *testing.T) {
	repo := newFakeRepository()
	clock := newTestClock(time.Date(2025, 7, 4, 15, 4, 0, 0, time.UTC))
	service := newService(repo, clock)

	_, err := service.Borrow(context.Background(), "user-a", "9780000000000")

	require.ErrorIs(t, err, book.ErrBookNotFound)
}

/*
TestReturn_CooldownMessage verifies the cooldown rejection carries the exact
human-readable timestamp the member becomes eligible.
*/
func TestReturn_CooldownMessage(t *testing.T) {
	repo := newFakeRepository()
	repo.addBook("9780143039983", "book-1", 1)
	clock := newTestClock(time.Date(2025, 7, 4, 15, 4, 0, 0, time.UTC))
	service := newService(repo, clock)

	_, err := service.Borrow(context.Background(), "user-a", "9780143039983")
	require.NoError(t, err)

	// One minute before the 24h cooldown elapses
	clock.Advance(24*time.Hour - time.Minute)
	err = service.Return(context.Background(), "user-a", "9780143039983")

	require.Error(t, err)
	assert.Equal(t, "You cannot return this book until: Sat 5 Jul, 2025, 3:04 p.m.", err.Error())

	// The copy stays checked out
	assert.Equal(t, 0, repo.books["9780143039983"].available)
}

/*
TestReturn_NoActiveRecord verifies a member who never borrowed the book gets
RECORD_NOT_FOUND, even when the cooldown window would still be open. The
record lookup runs before any cooldown arithmetic.
*/
func TestReturn_NoActiveRecord(t *testing.T) {
	repo := newFakeRepository()
	repo.addBook("9780143039983", "book-1", 1)
	clock := newTestClock(time.Date(2025, 7, 4, 15, 4, 0, 0, time.UTC))
	service := newService(repo, clock)

	err := service.Return(context.Background(), "user-a", "9780143039983")

	require.ErrorIs(t, err, lending.ErrRecordNotFound)
}

/*
TestReturn_DoubleReturn verifies the second of two returns for the same loan
reports RECORD_NOT_FOUND and the shelf count rises only once.
*/
func TestReturn_DoubleReturn(t *testing.T) {
	repo := newFakeRepository()
	repo.addBook("9780143039983", "book-1", 1)
	clock := newTestClock(time.Date(2025, 7, 4, 15, 4, 0, 0, time.UTC))
	service := newService(repo, clock)

	_, err := service.Borrow(context.Background(), "user-a", "9780143039983")
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	require.NoError(t, service.Return(context.Background(), "user-a", "9780143039983"))

	err = service.Return(context.Background(), "user-a", "9780143039983")
	require.ErrorIs(t, err, lending.ErrRecordNotFound)
	assert.Equal(t, 1, repo.books["9780143039983"].available)
}

/*
TestLending_TwoCopiesThreeReaders walks the canonical inventory scenario:
two copies, three members, and a full borrow/exhaust/return cycle.
*/
func TestLending_TwoCopiesThreeReaders(t *testing.T) {
	const isbn = "9780143039983"

	repo := newFakeRepository()
	repo.addBook(isbn, "book-1", 2)
	clock := newTestClock(time.Date(2025, 7, 4, 15, 4, 0, 0, time.UTC))
	service := newService(repo, clock)
	ctx := context.Background()

	// 1. userA borrows: one copy left
	_, err := service.Borrow(ctx, "user-a", isbn)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.books[isbn].available)

	// 2. userA cannot hold a second copy of the same title. A copy is still
	// on the shelf, so the rejection is about the active record.
	_, err = service.Borrow(ctx, "user-a", isbn)
	require.ErrorIs(t, err, lending.ErrAlreadyBorrowed)
	assert.Equal(t, 1, repo.books[isbn].available)

	// 3. userB borrows: shelf empty
	_, err = service.Borrow(ctx, "user-b", isbn)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.books[isbn].available)

	// 4. userC is turned away
	_, err = service.Borrow(ctx, "user-c", isbn)
	require.ErrorIs(t, err, lending.ErrNotAvailable)

	// 5. After the cooldown, userA returns and frees a copy
	clock.Advance(25 * time.Hour)
	require.NoError(t, service.Return(ctx, "user-a", isbn))
	assert.Equal(t, 1, repo.books[isbn].available)

	// 6. userC now gets the freed copy
	_, err = service.Borrow(ctx, "user-c", isbn)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.books[isbn].available)

	// Popularity counts the one completed loan so far
	assert.Equal(t, 1, repo.books[isbn].borrowCount)
}
