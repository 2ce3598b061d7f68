// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package lending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haminhtu/librarium/internal/catalog/book"
	"github.com/haminhtu/librarium/internal/platform/database/schema"
	"github.com/haminhtu/librarium/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Borrow executes the borrow decision as one atomic transaction.

Description: The book row is locked with SELECT ... FOR UPDATE before any
check runs, so two members racing for the last copy serialize behind the
lock and exactly one of them wins. Inside the lock:

 1. A missing book aborts with [book.ErrBookNotFound].
 2. Zero shelf copies abort with [ErrNotAvailable].
 3. An existing active record for this member aborts with [ErrAlreadyBorrowed].
 4. Otherwise the record is inserted and the shelf count drops by one.
*/
func (repository *PostgresRepository) Borrow(context context.Context, r *Record, isbn string) error {
	b := schema.CatalogBook
	l := schema.LendingRecord

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "borrow_begin")
	}
	defer transaction.Rollback(context)

	// Lock the inventory row. Every concurrent borrow/return of this book
	// queues up behind this statement.
	lockQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 FOR UPDATE`,
		b.ID, b.AvailableQuantity, b.Table, b.ISBN,
	)

	var bookID string
	var available int
	if err := transaction.QueryRow(context, lockQuery, isbn).Scan(&bookID, &available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.ErrBookNotFound
		}
		return dberr.Wrap(err, "borrow_lock_book")
	}

	if available < 1 {
		return ErrNotAvailable
	}

	activeQuery := fmt.Sprintf(`SELECT EXISTS (
		SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s IS NULL
	)`, l.Table, l.UserID, l.BookID, l.ReturnDate)

	var alreadyBorrowed bool
	if err := transaction.QueryRow(context, activeQuery, r.UserID, bookID).Scan(&alreadyBorrowed); err != nil {
		return dberr.Wrap(err, "borrow_check_active")
	}
	if alreadyBorrowed {
		return ErrAlreadyBorrowed
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULL)
	`, l.Table, l.ID, l.UserID, l.BookID, l.BorrowDate, l.DueDate, l.ReturnDate)

	if _, err := transaction.Exec(context, insertQuery, r.ID, r.UserID, bookID, r.BorrowDate, r.DueDate); err != nil {
		return dberr.Wrap(err, "borrow_insert_record")
	}

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET %s = %s - 1, %s = NOW() WHERE %s = $1
	`, b.Table, b.AvailableQuantity, b.AvailableQuantity, b.UpdatedAt, b.ID)

	if _, err := transaction.Exec(context, updateQuery, bookID); err != nil {
		return dberr.Wrap(err, "borrow_update_inventory")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "borrow_commit")
	}

	r.BookID = bookID
	r.IsActive = true
	return nil
}

/*
FindActive resolves the member's active record for a book by ISBN.

Description: Healthy data has at most one active record per (member, book).
If legacy duplicates exist, the record with the latest due date wins; ties
fall to the most recently created record (IDs are time-sortable).
*/
func (repository *PostgresRepository) FindActive(context context.Context, userID, isbn string) (*Record, error) {
	b := schema.CatalogBook
	l := schema.LendingRecord

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s b ON b.%s = r.%s
		WHERE r.%s = $1 AND b.%s = $2 AND r.%s IS NULL
		ORDER BY r.%s DESC, r.%s DESC
		LIMIT 1
	`,
		l.ID, l.UserID, l.BookID, l.BorrowDate, l.DueDate, l.ReturnDate,
		l.Table,
		b.Table, b.ID, l.BookID,
		l.UserID, b.ISBN, l.ReturnDate,
		l.DueDate, l.ID,
	)

	r := &Record{}
	err := repository.pool.QueryRow(context, query, userID, isbn).Scan(
		&r.ID, &r.UserID, &r.BookID, &r.BorrowDate, &r.DueDate, &r.ReturnDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, dberr.Wrap(err, "find_active_record")
	}

	r.IsActive = true
	return r, nil
}

/*
Complete marks a record returned, restores the shelf copy and bumps the
book's lifetime borrow counter atomically.

Description: The book row is locked first, matching the lock order used by
Borrow. The record update is guarded by "return date IS NULL" so a concurrent
double return completes exactly once; the loser gets [ErrRecordNotFound].
*/
func (repository *PostgresRepository) Complete(context context.Context, recordID string, returnDate time.Time) error {
	b := schema.CatalogBook
	l := schema.LendingRecord

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "return_begin")
	}
	defer transaction.Rollback(context)

	lockQuery := fmt.Sprintf(`
		SELECT b.%s FROM %s b
		JOIN %s r ON r.%s = b.%s
		WHERE r.%s = $1
		FOR UPDATE OF b
	`, b.ID, b.Table, l.Table, l.BookID, b.ID, l.ID)

	var bookID string
	if err := transaction.QueryRow(context, lockQuery, recordID).Scan(&bookID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRecordNotFound
		}
		return dberr.Wrap(err, "return_lock_book")
	}

	completeQuery := fmt.Sprintf(`
		UPDATE %s SET %s = $2 WHERE %s = $1 AND %s IS NULL
	`, l.Table, l.ReturnDate, l.ID, l.ReturnDate)

	cmd, err := transaction.Exec(context, completeQuery, recordID, returnDate)
	if err != nil {
		return dberr.Wrap(err, "return_complete_record")
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	restoreQuery := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1, %s = %s + 1, %s = NOW() WHERE %s = $1
	`, b.Table, b.AvailableQuantity, b.AvailableQuantity, b.BorrowCount, b.BorrowCount, b.UpdatedAt, b.ID)

	if _, err := transaction.Exec(context, restoreQuery, bookID); err != nil {
		return dberr.Wrap(err, "return_restore_inventory")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "return_commit")
	}
	return nil
}

// ListByUser returns the member's lending history with joined book details.
// Active loans sort first, then most recent activity.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, f Filter) ([]*Record, error) {
	b := schema.CatalogBook
	l := schema.LendingRecord

	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		       b.%s, b.%s, b.%s, b.%s
		FROM %s r
		JOIN %s b ON b.%s = r.%s
		WHERE r.%s = $1
	`,
		l.ID, l.UserID, l.BookID, l.BorrowDate, l.DueDate, l.ReturnDate,
		b.Title, b.Author, b.ISBN, b.CoverURL,
		l.Table,
		b.Table, b.ID, l.BookID,
		l.UserID,
	)

	args := []any{userID}
	if f.Query != "" {
		args = append(args, f.Query)
		query += fmt.Sprintf(
			` AND (b.%s ~* ('\m' || $2) OR b.%s ~* ('\m' || $2) OR b.%s ~* ('\m' || $2) OR r.%s::text LIKE $2 || '%%')`,
			b.Title, b.Author, b.ISBN, l.ID,
		)
	}

	activityOrder := "DESC"
	if f.Sort == "oldest" {
		activityOrder = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY (r.%s IS NULL) DESC, COALESCE(r.%s, r.%s) %s`,
		l.ReturnDate, l.ReturnDate, l.BorrowDate, activityOrder,
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_records")
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r := &Record{Book: &BookSummary{}}
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.BookID, &r.BorrowDate, &r.DueDate, &r.ReturnDate,
			&r.Book.Title, &r.Book.Author, &r.Book.ISBN, &r.Book.CoverURL,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_user_record")
		}
		r.IsActive = r.ReturnDate == nil
		records = append(records, r)
	}

	return records, nil
}
