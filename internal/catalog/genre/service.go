// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package genre

import (
	"context"
	"log/slog"

	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/uuidv7"
)

// SectionProvisioner seeds the standard featured sections for a genre page.
//
// The genre service calls it explicitly after every create and rename, so a
// genre page is never left without its default rails even if a section was
// deleted in between.
type SectionProvisioner interface {
	AutoProvision(context context.Context, genreID string) error
}

type Service struct {
	repo        Repository
	provisioner SectionProvisioner
	logger      *slog.Logger
}

func NewService(repo Repository, provisioner SectionProvisioner, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		provisioner: provisioner,
		logger:      logger,
	}
}

func (service *Service) ListGenres(context context.Context, filter Filter, limit, offset int) ([]*Genre, int, error) {
	return service.repo.ListGenres(context, filter, limit, offset)
}

func (service *Service) GetGenre(context context.Context, id string) (*Genre, error) {
	return service.repo.GetGenre(context, id)
}

func (service *Service) GetGenreByName(context context.Context, name string) (*Genre, error) {
	return service.repo.GetGenreByName(context, name)
}

func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 100)

	if err := validator.Err(); err != nil {
		return err
	}

	genre.ID = uuidv7.Must()
	if err := service.repo.CreateGenre(context, genre); err != nil {
		return err
	}

	// Seed the default "Popular" and "Latest" sections for the new genre page.
	if err := service.provisioner.AutoProvision(context, genre.ID); err != nil {
		service.logger.Error("genre_autoprovision_failed",
			slog.String("genre_id", genre.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("genre_created", slog.String("name", genre.Name))
	return nil
}

func (service *Service) UpdateGenre(context context.Context, id string, genre *Genre) error {
	genre.ID = id
	validator := &validate.Validator{}
	validator.Required(FieldName, genre.Name).MaxLen(FieldName, genre.Name, 100)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateGenre(context, genre); err != nil {
		return err
	}

	// Re-run provisioning after a rename: it is idempotent and restores any
	// default section that went missing.
	if err := service.provisioner.AutoProvision(context, genre.ID); err != nil {
		service.logger.Error("genre_autoprovision_failed",
			slog.String("genre_id", genre.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.Info("genre_updated", slog.String("genre_id", genre.ID))
	return nil
}

func (service *Service) DeleteGenre(context context.Context, id string) error {
	if err := service.repo.DeleteGenre(context, id); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.String("genre_id", id))
	return nil
}
