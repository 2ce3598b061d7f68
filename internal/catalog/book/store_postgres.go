// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

/*
Package book provides the PostgreSQL implementation for the catalogue's data access.

It leans on a few Postgres features to keep the catalogue fast:
  - JSON Aggregation: Genres are aggregated into a JSON array in a single
    round-trip, avoiding N+1 queries on list pages.
  - Window Functions: COUNT(*) OVER() returns the total result count without
    a second query.
  - ACID Transactions: Book rows and their genre links are written atomically.
*/
package book

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haminhtu/librarium/internal/platform/database/schema"
	"github.com/haminhtu/librarium/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// genreJSONFragment aggregates a book's genres into a JSON array column.
func genreJSONFragment() string {
	return fmt.Sprintf(`COALESCE((
		SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s) ORDER BY g.%s)
		FROM %s bg
		JOIN %s g ON g.%s = bg.%s
		WHERE bg.%s = b.%s
	), '[]')`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Name,
		schema.CatalogBookGenre.Table,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogBookGenre.GenreID,
		schema.CatalogBookGenre.BookID, schema.CatalogBook.ID,
	)
}

// bookColumns lists the scan targets shared by all single-book queries.
func bookColumns() string {
	t := schema.CatalogBook
	return fmt.Sprintf("b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s",
		t.ID, t.Title, t.Author, t.ISBN, t.DatePublished, t.CoverURL, t.Description,
		t.AvailableQuantity, t.TotalQuantity, t.BorrowCount, t.CreatedAt, t.UpdatedAt,
	)
}

// scanBook reads one row produced by a query selecting bookColumns + genre JSON.
func scanBook(row interface{ Scan(...any) error }) (*Book, error) {
	b := &Book{}
	var genresJSON []byte

	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.DatePublished, &b.CoverURL, &b.Description,
		&b.AvailableQuantity, &b.TotalQuantity, &b.BorrowCount, &b.CreatedAt, &b.UpdatedAt,
		&genresJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(genresJSON, &b.Genres); err != nil {
		return nil, err
	}
	return b, nil
}

/*
ListBooks returns a filtered, paginated slice of books and the total count.

Description: Search matches on word starts in title, author and ISBN ('\m' is
the Postgres word-boundary anchor), so "pot" finds "Harry Potter" but not
"hotpot". Genre names narrow results to books linked to any of the named
genres. Sort is by popularity (lifetime borrows), newest or oldest
publication; the default is title A-Z.
*/
func (repository *PostgresRepository) ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error) {
	t := schema.CatalogBook
	g := schema.CatalogGenre
	j := schema.CatalogBookGenre

	query := fmt.Sprintf(`
		SELECT %s, %s, COUNT(*) OVER() AS total
		FROM %s b
	`, bookColumns(), genreJSONFragment(), t.Table)

	args := []any{}
	var conditions []string

	if f.Query != "" {
		args = append(args, f.Query)
		conditions = append(conditions, fmt.Sprintf(
			`(b.%s ~* ('\m' || $%d) OR b.%s ~* ('\m' || $%d) OR b.%s ~* ('\m' || $%d))`,
			t.Title, len(args), t.Author, len(args), t.ISBN, len(args),
		))
	}

	if len(f.Genres) > 0 {
		names := make([]string, len(f.Genres))
		for i, name := range f.Genres {
			names[i] = strings.ToLower(name)
		}
		args = append(args, names)
		// EXISTS keeps one row per book even when several genres match.
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM %s fbg
			JOIN %s fg ON fg.%s = fbg.%s
			WHERE fbg.%s = b.%s AND lower(fg.%s) = ANY($%d)
		)`,
			j.Table,
			g.Table, g.ID, j.GenreID,
			j.BookID, t.ID, g.Name, len(args),
		))
	}

	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	orderBy := fmt.Sprintf("b.%s ASC", t.Title)
	switch f.Sort {
	case SortPopularity:
		orderBy = fmt.Sprintf("b.%s DESC", t.BorrowCount)
	case SortLatest:
		orderBy = fmt.Sprintf("b.%s DESC NULLS LAST", t.DatePublished)
	case SortOldest:
		orderBy = fmt.Sprintf("b.%s ASC NULLS LAST", t.DatePublished)
	}

	query += fmt.Sprintf(` ORDER BY %s LIMIT $%d OFFSET $%d`, orderBy, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	var books []*Book
	var total int
	for rows.Next() {
		b := &Book{}
		var genresJSON []byte
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.DatePublished, &b.CoverURL, &b.Description,
			&b.AvailableQuantity, &b.TotalQuantity, &b.BorrowCount, &b.CreatedAt, &b.UpdatedAt,
			&genresJSON, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		if err := json.Unmarshal(genresJSON, &b.Genres); err != nil {
			return nil, 0, dberr.Wrap(err, "decode_book_genres")
		}
		books = append(books, b)
	}

	return books, total, nil
}

func (repository *PostgresRepository) GetBook(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s b
		WHERE b.%s = $1
	`, bookColumns(), genreJSONFragment(), schema.CatalogBook.Table, schema.CatalogBook.ID)

	b, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	return b, nil
}

func (repository *PostgresRepository) GetBookByISBN(context context.Context, isbn string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s b
		WHERE b.%s = $1
	`, bookColumns(), genreJSONFragment(), schema.CatalogBook.Table, schema.CatalogBook.ISBN)

	b, err := scanBook(repository.pool.QueryRow(context, query, isbn))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book_by_isbn")
	}
	return b, nil
}

func (repository *PostgresRepository) CreateBook(context context.Context, b *Book, genreIDs []string) error {
	t := schema.CatalogBook

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_book_begin")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.Title, t.Author, t.ISBN, t.DatePublished, t.CoverURL, t.Description,
		t.AvailableQuantity, t.TotalQuantity, t.BorrowCount, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		b.ID, b.Title, b.Author, b.ISBN, b.DatePublished, b.CoverURL, b.Description,
		b.AvailableQuantity, b.TotalQuantity,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_book")
	}

	if err := replaceGenreLinks(context, transaction, b.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_book_commit")
	}
	return nil
}

func (repository *PostgresRepository) UpdateBook(context context.Context, b *Book, genreIDs []string) error {
	t := schema.CatalogBook

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_book_begin")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		t.Table, t.Title, t.Author, t.ISBN, t.DatePublished, t.CoverURL, t.Description,
		t.AvailableQuantity, t.TotalQuantity, t.UpdatedAt,
		t.ID, t.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		b.ID, b.Title, b.Author, b.ISBN, b.DatePublished, b.CoverURL, b.Description,
		b.AvailableQuantity, b.TotalQuantity,
	).Scan(&b.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	if err := replaceGenreLinks(context, transaction, b.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "update_book_commit")
	}
	return nil
}

/*
DeleteBookByISBN removes a book and, via ON DELETE CASCADE, its genre links,
lending history, and featured placements.

Description: Returns [ErrBookNotFound] when no row matches, which also covers
the race where two staff members delete the same title concurrently.
*/
func (repository *PostgresRepository) DeleteBookByISBN(context context.Context, isbn string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogBook.Table, schema.CatalogBook.ISBN,
	)

	cmd, err := repository.pool.Exec(context, query, isbn)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	if cmd.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

// replaceGenreLinks rewrites the book/genre junction rows inside a transaction.
func replaceGenreLinks(context context.Context, transaction pgx.Tx, bookID string, genreIDs []string) error {
	j := schema.CatalogBookGenre

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, j.Table, j.BookID)
	if _, err := transaction.Exec(context, deleteQuery, bookID); err != nil {
		return dberr.Wrap(err, "clear_book_genres")
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, j.Table, j.BookID, j.GenreID)
	for _, genreID := range genreIDs {
		if _, err := transaction.Exec(context, insertQuery, bookID, genreID); err != nil {
			return dberr.Wrap(err, "link_book_genre")
		}
	}
	return nil
}
