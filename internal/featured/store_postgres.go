// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package featured

import (
	"context"
	"fmt"

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

// scopeClause builds the WHERE fragment selecting one ordering scope.
// Non-genre scopes match rows with a NULL genre only.
func scopeClause(scope Scope, argOffset int) (string, []any) {
	f := schema.FeaturedSection

	if scope.GenreID != nil {
		return fmt.Sprintf("%s = $%d AND %s = $%d", f.PageType, argOffset, f.GenreID, argOffset+1),
			[]any{scope.PageType, *scope.GenreID}
	}
	return fmt.Sprintf("%s = $%d AND %s IS NULL", f.PageType, argOffset, f.GenreID),
		[]any{scope.PageType}
}

func (repository *PostgresRepository) CreateSection(context context.Context, s *Section) error {
	f := schema.FeaturedSection

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_section_begin")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		f.Table, f.ID, f.Title, f.FeaturedType, f.PageType, f.GenreID, f.SectionOrder,
		f.CreatedAt, f.UpdatedAt,
		f.CreatedAt, f.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		s.ID, s.Title, s.FeaturedType, s.PageType, s.GenreID, s.Order,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_section")
	}

	if err := replaceSectionBooks(context, transaction, s.ID, s.BookIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_section_commit")
	}
	return nil
}

func (repository *PostgresRepository) UpdateSection(context context.Context, s *Section) error {
	f := schema.FeaturedSection

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_section_begin")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		f.Table, f.Title, f.FeaturedType, f.PageType, f.GenreID, f.SectionOrder, f.UpdatedAt,
		f.ID, f.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		s.ID, s.Title, s.FeaturedType, s.PageType, s.GenreID, s.Order,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_section")
	}

	if err := replaceSectionBooks(context, transaction, s.ID, s.BookIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "update_section_commit")
	}
	return nil
}

func (repository *PostgresRepository) DeleteSection(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.FeaturedSection.Table, schema.FeaturedSection.ID,
	)

	cmd, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_section")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) GetSection(context context.Context, id string) (*Section, error) {
	f := schema.FeaturedSection
	j := schema.FeaturedSectionBook

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		f.ID, f.Title, f.FeaturedType, f.PageType, f.GenreID, f.SectionOrder,
		f.CreatedAt, f.UpdatedAt,
		f.Table, f.ID,
	)

	s := &Section{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&s.ID, &s.Title, &s.FeaturedType, &s.PageType, &s.GenreID, &s.Order,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_section")
	}

	booksQuery := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC
	`, j.BookID, j.Table, j.SectionID, j.Position)

	rows, err := repository.pool.Query(context, booksQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "get_section_books")
	}
	defer rows.Close()

	for rows.Next() {
		var bookID string
		if err := rows.Scan(&bookID); err != nil {
			return nil, dberr.Wrap(err, "scan_section_book")
		}
		s.BookIDs = append(s.BookIDs, bookID)
	}

	return s, nil
}

func (repository *PostgresRepository) ListByPage(context context.Context, pageType PageType, genreName string) ([]*Section, error) {
	f := schema.FeaturedSection
	g := schema.CatalogGenre

	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s
		FROM %s s
	`,
		f.ID, f.Title, f.FeaturedType, f.PageType, f.GenreID, f.SectionOrder,
		f.CreatedAt, f.UpdatedAt,
		f.Table,
	)

	args := []any{pageType}
	if genreName != "" {
		args = append(args, genreName)
		query += fmt.Sprintf(`
			JOIN %s g ON g.%s = s.%s AND lower(g.%s) = lower($2)
		`, g.Table, g.ID, f.GenreID, g.Name)
	}

	query += fmt.Sprintf(` WHERE s.%s = $1 ORDER BY s.%s ASC`, f.PageType, f.SectionOrder)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sections")
	}
	defer rows.Close()

	var sections []*Section
	for rows.Next() {
		s := &Section{}
		if err := rows.Scan(
			&s.ID, &s.Title, &s.FeaturedType, &s.PageType, &s.GenreID, &s.Order,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_section")
		}
		sections = append(sections, s)
	}

	return sections, nil
}

func (repository *PostgresRepository) NonCustomExists(context context.Context, featuredType FeaturedType, scope Scope, excludeID string) (bool, error) {
	f := schema.FeaturedSection

	clause, args := scopeClause(scope, 1)
	args = append(args, featuredType)
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s AND %s = $%d`,
		f.Table, clause, f.FeaturedType, len(args),
	)

	if excludeID != "" {
		args = append(args, excludeID)
		query += fmt.Sprintf(` AND %s <> $%d`, f.ID, len(args))
	}
	query += `)`

	var exists bool
	if err := repository.pool.QueryRow(context, query, args...).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_duplicate_section")
	}
	return exists, nil
}

func (repository *PostgresRepository) OrderTaken(context context.Context, scope Scope, order int, excludeID string) (bool, error) {
	f := schema.FeaturedSection

	clause, args := scopeClause(scope, 1)
	args = append(args, order)
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s AND %s = $%d`,
		f.Table, clause, f.SectionOrder, len(args),
	)

	if excludeID != "" {
		args = append(args, excludeID)
		query += fmt.Sprintf(` AND %s <> $%d`, f.ID, len(args))
	}
	query += `)`

	var taken bool
	if err := repository.pool.QueryRow(context, query, args...).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_duplicate_order")
	}
	return taken, nil
}

func (repository *PostgresRepository) MaxOrder(context context.Context, scope Scope) (int, error) {
	f := schema.FeaturedSection

	clause, args := scopeClause(scope, 1)
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s`,
		f.SectionOrder, f.Table, clause,
	)

	var max int
	if err := repository.pool.QueryRow(context, query, args...).Scan(&max); err != nil {
		return 0, dberr.Wrap(err, "max_section_order")
	}
	return max, nil
}

// BooksOutsideGenre returns the titles of the given books that are NOT linked
// to the genre. An empty result means the curated list is consistent.
func (repository *PostgresRepository) BooksOutsideGenre(context context.Context, bookIDs []string, genreID string) ([]string, error) {
	b := schema.CatalogBook
	j := schema.CatalogBookGenre

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = ANY($1)
		  AND NOT EXISTS (
			SELECT 1 FROM %s WHERE %s = %s.%s AND %s = $2
		  )
		ORDER BY %s ASC
	`,
		b.Title, b.Table,
		b.ID,
		j.Table, j.BookID, b.Table, b.ID, j.GenreID,
		b.Title,
	)

	rows, err := repository.pool.Query(context, query, bookIDs, genreID)
	if err != nil {
		return nil, dberr.Wrap(err, "check_books_genre")
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, dberr.Wrap(err, "scan_book_title")
		}
		titles = append(titles, title)
	}

	return titles, nil
}

func (repository *PostgresRepository) GenreName(context context.Context, genreID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Name, schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	var name string
	if err := repository.pool.QueryRow(context, query, genreID).Scan(&name); err != nil {
		return "", dberr.Wrap(err, "get_genre_name")
	}
	return name, nil
}

/*
Renormalize rewrites a scope's display orders to a contiguous 1..n run.

Description: The scope's rows are locked FOR UPDATE in display order, then
only the rows whose position actually changed are rewritten. A scope that is
already contiguous is a no-op, which makes the call safe after every save.
*/
func (repository *PostgresRepository) Renormalize(context context.Context, scope Scope) error {
	f := schema.FeaturedSection

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "renormalize_begin")
	}
	defer transaction.Rollback(context)

	clause, args := scopeClause(scope, 1)
	selectQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s WHERE %s ORDER BY %s ASC, %s ASC FOR UPDATE
	`, f.ID, f.SectionOrder, f.Table, clause, f.SectionOrder, f.ID)

	rows, err := transaction.Query(context, selectQuery, args...)
	if err != nil {
		return dberr.Wrap(err, "renormalize_lock")
	}

	type sectionOrder struct {
		id    string
		order int
	}
	var entries []sectionOrder
	for rows.Next() {
		var e sectionOrder
		if err := rows.Scan(&e.id, &e.order); err != nil {
			rows.Close()
			return dberr.Wrap(err, "renormalize_scan")
		}
		entries = append(entries, e)
	}
	rows.Close()

	updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		f.Table, f.SectionOrder, f.ID,
	)

	for index, entry := range entries {
		want := index + 1
		if entry.order == want {
			continue
		}
		if _, err := transaction.Exec(context, updateQuery, entry.id, want); err != nil {
			return dberr.Wrap(err, "renormalize_update")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "renormalize_commit")
	}
	return nil
}

// # Resolution Queries

func (repository *PostgresRepository) TopByBorrowCount(context context.Context, genreName string, limit int) ([]BookData, error) {
	return repository.topBooks(context, schema.CatalogBook.BorrowCount, genreName, limit)
}

func (repository *PostgresRepository) TopByDatePublished(context context.Context, genreName string, limit int) ([]BookData, error) {
	return repository.topBooks(context, schema.CatalogBook.DatePublished, genreName, limit)
}

// topBooks returns the first books ordered by the given column descending,
// optionally restricted to one genre by name.
func (repository *PostgresRepository) topBooks(context context.Context, orderColumn, genreName string, limit int) ([]BookData, error) {
	b := schema.CatalogBook
	g := schema.CatalogGenre
	j := schema.CatalogBookGenre

	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s
		FROM %s b
	`, b.Title, b.ISBN, b.CoverURL, b.Table)

	args := []any{}
	if genreName != "" {
		args = append(args, genreName)
		query += fmt.Sprintf(`
			JOIN %s bg ON bg.%s = b.%s
			JOIN %s g ON g.%s = bg.%s AND lower(g.%s) = lower($1)
		`, j.Table, j.BookID, b.ID, g.Table, g.ID, j.GenreID, g.Name)
	}

	query += fmt.Sprintf(` ORDER BY b.%s DESC LIMIT $%d`, orderColumn, len(args)+1)
	args = append(args, limit)

	return repository.queryBookData(context, query, args...)
}

// SectionBooks returns a custom section's curated list in stored position.
func (repository *PostgresRepository) SectionBooks(context context.Context, sectionID string) ([]BookData, error) {
	b := schema.CatalogBook
	j := schema.FeaturedSectionBook

	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s
		FROM %s sb
		JOIN %s b ON b.%s = sb.%s
		WHERE sb.%s = $1
		ORDER BY sb.%s ASC
	`,
		b.Title, b.ISBN, b.CoverURL,
		j.Table,
		b.Table, b.ID, j.BookID,
		j.SectionID, j.Position,
	)

	return repository.queryBookData(context, query, sectionID)
}

func (repository *PostgresRepository) queryBookData(context context.Context, query string, args ...any) ([]BookData, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_section_books")
	}
	defer rows.Close()

	books := []BookData{}
	for rows.Next() {
		var bd BookData
		if err := rows.Scan(&bd.Title, &bd.ISBN, &bd.Cover); err != nil {
			return nil, dberr.Wrap(err, "scan_section_book_data")
		}
		books = append(books, bd)
	}

	return books, nil
}

// replaceSectionBooks rewrites a section's curated junction rows.
func replaceSectionBooks(context context.Context, transaction pgx.Tx, sectionID string, bookIDs []string) error {
	j := schema.FeaturedSectionBook

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, j.Table, j.SectionID)
	if _, err := transaction.Exec(context, deleteQuery, sectionID); err != nil {
		return dberr.Wrap(err, "clear_section_books")
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		j.Table, j.SectionID, j.BookID, j.Position,
	)
	for position, bookID := range bookIDs {
		if _, err := transaction.Exec(context, insertQuery, sectionID, bookID, position+1); err != nil {
			return dberr.Wrap(err, "link_section_book")
		}
	}
	return nil
}
