// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haminhtu/librarium/internal/platform/database/schema"
	"github.com/haminhtu/librarium/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListGenres(context context.Context, f Filter, limit, offset int) ([]*Genre, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.CatalogGenre.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		query += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.CatalogGenre.Name)
		countQuery += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.CatalogGenre.Name)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, schema.CatalogGenre.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) GetGenre(context context.Context, id string) (*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)
	g := &Genre{}

	err := repository.db.QueryRow(context, query, id).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)

	return g, dberr.Wrap(err, "get_genre")
}

func (repository *PostgresRepository) GetGenreByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE lower(%s) = lower($1)
	`,
		schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name,
	)
	g := &Genre{}

	err := repository.db.QueryRow(context, query, name).Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt)

	return g, dberr.Wrap(err, "get_genre_by_name")
}

func (repository *PostgresRepository) CreateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogGenre.Name,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.CreatedAt, schema.CatalogGenre.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, g.ID, g.Name).Scan(&g.CreatedAt, &g.UpdatedAt)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) UpdateGenre(context context.Context, g *Genre) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CatalogGenre.Table, schema.CatalogGenre.Name, schema.CatalogGenre.UpdatedAt,
		schema.CatalogGenre.ID, schema.CatalogGenre.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, g.ID, g.Name).Scan(&g.UpdatedAt)
	return dberr.Wrap(err, "update_genre")
}

// DeleteGenre removes a genre. Book links and featured sections scoped to the
// genre are removed by ON DELETE CASCADE on their foreign keys.
func (repository *PostgresRepository) DeleteGenre(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CatalogGenre.Table, schema.CatalogGenre.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
