// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package book

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/haminhtu/librarium/internal/platform/dberr"
	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListBooks(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, filter, limit, offset)
}

func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.repo.GetBook(context, id)
}

// GetBookByISBN resolves a book by its ISBN-13.
//
// A missing row surfaces as [ErrBookNotFound] rather than a generic 404 so
// the borrow dialog can show its dedicated message.
func (service *Service) GetBookByISBN(context context.Context, isbn string) (*Book, error) {
	b, err := service.repo.GetBookByISBN(context, isbn)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return b, nil
}

func (service *Service) CreateBook(context context.Context, b *Book, genreIDs []string) error {
	if err := service.validateBook(b); err != nil {
		return err
	}
	applyDefaults(b)

	b.ID = uuidv7.Must()
	if err := service.repo.CreateBook(context, b, genreIDs); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("isbn", b.ISBN),
		slog.String("title", b.Title),
	)
	return nil
}

func (service *Service) UpdateBook(context context.Context, id string, b *Book, genreIDs []string) error {
	b.ID = id
	if err := service.validateBook(b); err != nil {
		return err
	}
	applyDefaults(b)

	if err := service.repo.UpdateBook(context, b, genreIDs); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", b.ID))
	return nil
}

func (service *Service) DeleteBook(context context.Context, isbn string) error {
	if err := service.repo.DeleteBookByISBN(context, isbn); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("isbn", isbn))
	return nil
}

// validateBook runs the field rules plus the inventory invariant guard.
func (service *Service) validateBook(b *Book) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, b.Title).MaxLen(FieldTitle, b.Title, 255).
		Required(FieldAuthor, b.Author).MaxLen(FieldAuthor, b.Author, 255).
		Digits(FieldISBN, b.ISBN, ISBNLength).
		Custom(FieldTotalQuantity, b.TotalQuantity < 0, "Must not be negative").
		Custom(FieldAvailableQuantity, b.AvailableQuantity < 0, "Must not be negative")

	if err := validator.Err(); err != nil {
		return err
	}

	// The shelf can never hold more copies than the library owns. This guard
	// runs on every write path; the database CHECK constraint backs it up.
	if b.AvailableQuantity > b.TotalQuantity {
		return ErrQuantityExceeded
	}
	return nil
}

// applyDefaults fills in placeholder content for optional presentation fields.
func applyDefaults(b *Book) {
	if strings.TrimSpace(b.Description) == "" {
		b.Description = DefaultDescription
	}
	if strings.TrimSpace(b.CoverURL) == "" {
		b.CoverURL = DefaultCoverURL
	}
}
