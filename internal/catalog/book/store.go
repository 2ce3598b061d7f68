// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package book

import "context"

type Repository interface {
	ListBooks(context context.Context, f Filter, limit, offset int) ([]*Book, int, error)
	GetBook(context context.Context, id string) (*Book, error)
	GetBookByISBN(context context.Context, isbn string) (*Book, error)
	CreateBook(context context.Context, b *Book, genreIDs []string) error
	UpdateBook(context context.Context, b *Book, genreIDs []string) error
	DeleteBookByISBN(context context.Context, isbn string) error
}
