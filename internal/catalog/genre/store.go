// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package genre

import "context"

type Repository interface {
	ListGenres(context context.Context, f Filter, limit, offset int) ([]*Genre, int, error)
	GetGenre(context context.Context, id string) (*Genre, error)
	GetGenreByName(context context.Context, name string) (*Genre, error)
	CreateGenre(context context.Context, g *Genre) error
	UpdateGenre(context context.Context, g *Genre) error
	DeleteGenre(context context.Context, id string) error
}
