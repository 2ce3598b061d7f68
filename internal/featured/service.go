// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package featured

import (
	"context"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/uuidv7"
)

type Service struct {
	repo       Repository
	logger     *slog.Logger
	titleCaser cases.Caser
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		titleCaser: cases.Title(language.English),
	}
}

/*
CreateSection validates and persists a new featured rail, then renormalizes
its page's display order.

Description: Renormalization is an explicit second step after the committed
write, so an order gap left by a high manual order ("order 9 on a page of
three") collapses to the next contiguous slot.
*/
func (service *Service) CreateSection(context context.Context, s *Section) error {
	if err := service.validateSection(context, s, ""); err != nil {
		return err
	}

	s.ID = uuidv7.Must()
	if err := service.repo.CreateSection(context, s); err != nil {
		return err
	}

	if err := service.repo.Renormalize(context, s.Scope()); err != nil {
		return err
	}

	service.logger.Info("featured_section_created",
		slog.String("section_id", s.ID),
		slog.String("featured_type", string(s.FeaturedType)),
		slog.String("page_type", string(s.PageType)),
	)
	return nil
}

// UpdateSection validates and persists changes to a rail, renormalizing the
// new scope and, when the rail moved pages, the scope it left behind.
func (service *Service) UpdateSection(context context.Context, id string, s *Section) error {
	s.ID = id

	existing, err := service.repo.GetSection(context, id)
	if err != nil {
		return err
	}

	if err := service.validateSection(context, s, id); err != nil {
		return err
	}

	if err := service.repo.UpdateSection(context, s); err != nil {
		return err
	}

	if err := service.repo.Renormalize(context, s.Scope()); err != nil {
		return err
	}
	if !existing.Scope().Equal(s.Scope()) {
		if err := service.repo.Renormalize(context, existing.Scope()); err != nil {
			return err
		}
	}

	service.logger.Info("featured_section_updated", slog.String("section_id", id))
	return nil
}

// DeleteSection removes a rail and closes the order gap it leaves.
func (service *Service) DeleteSection(context context.Context, id string) error {
	existing, err := service.repo.GetSection(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteSection(context, id); err != nil {
		return err
	}

	if err := service.repo.Renormalize(context, existing.Scope()); err != nil {
		return err
	}

	service.logger.Warn("featured_section_deleted", slog.String("section_id", id))
	return nil
}

func (service *Service) GetSection(context context.Context, id string) (*Section, error) {
	return service.repo.GetSection(context, id)
}

/*
AutoProvision seeds the default "Popular" and "Latest" rails for a genre page.

Description: Called explicitly by the genre service after every genre create
and update. For each missing rail it appends a section at the scope's next
order slot. Already-present rails are left untouched, so the call is
idempotent and safe to repeat.
*/
func (service *Service) AutoProvision(context context.Context, genreID string) error {
	scope := Scope{PageType: PageGenre, GenreID: &genreID}

	for _, featuredType := range []FeaturedType{TypePopular, TypeLatest} {
		exists, err := service.repo.NonCustomExists(context, featuredType, scope, "")
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		maxOrder, err := service.repo.MaxOrder(context, scope)
		if err != nil {
			return err
		}

		section := &Section{
			ID:           uuidv7.Must(),
			Title:        service.titleCaser.String(string(featuredType)),
			FeaturedType: featuredType,
			PageType:     PageGenre,
			GenreID:      &genreID,
			Order:        maxOrder + 1,
		}

		if err := service.repo.CreateSection(context, section); err != nil {
			return err
		}

		service.logger.Info("featured_section_provisioned",
			slog.String("genre_id", genreID),
			slog.String("featured_type", string(featuredType)),
		)
	}

	return nil
}

// ResolveSectionBooks materializes a rail's book list.
//
// Popular and latest rails resolve dynamically, capped at seven and
// optionally narrowed to one genre. Custom rails return their curated list
// verbatim in stored position.
func (service *Service) ResolveSectionBooks(context context.Context, s *Section, genreFilter string) ([]BookData, error) {
	switch s.FeaturedType {
	case TypePopular:
		return service.repo.TopByBorrowCount(context, genreFilter, ResolveLimit)
	case TypeLatest:
		return service.repo.TopByDatePublished(context, genreFilter, ResolveLimit)
	default:
		return service.repo.SectionBooks(context, s.ID)
	}
}

// PageData assembles the full payload for one landing page: every section in
// display order, each resolved to its books.
func (service *Service) PageData(context context.Context, pageType PageType, genreName string) ([]SectionData, error) {
	sections, err := service.repo.ListByPage(context, pageType, genreName)
	if err != nil {
		return nil, err
	}

	data := []SectionData{}
	for _, s := range sections {
		books, err := service.ResolveSectionBooks(context, s, genreName)
		if err != nil {
			return nil, err
		}
		data = append(data, SectionData{Title: s.Title, Books: books})
	}

	return data, nil
}

/*
validateSection runs the planner's consistency rules in order.

Description: excludeID skips the section being updated so it never conflicts
with itself. Rules, in order:

 1. Display order must be at least 1.
 2. Popular/latest rails are unique per scope.
 3. No two rails share an order within a scope.
 4. Custom rails carry between 1 and 7 curated books.
 5. With a genre set, every curated book must belong to that genre.
 6. Popular/latest rails must not carry curated books.
*/
func (service *Service) validateSection(context context.Context, s *Section, excludeID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, s.Title).MaxLen(FieldTitle, s.Title, TitleMaxLen).
		OneOf(FieldFeaturedType, string(s.FeaturedType), string(TypePopular), string(TypeLatest), string(TypeCustom)).
		OneOf(FieldPageType, string(s.PageType), string(PageHome), string(PageLibrary), string(PageGenre)).
		Custom(FieldGenreID, s.PageType == PageGenre && s.GenreID == nil, "Required when page_type is 'genre'")

	if err := validator.Err(); err != nil {
		return err
	}

	if s.Order < 1 {
		return ErrInvalidOrder
	}

	genreName := ""
	if s.GenreID != nil {
		name, err := service.repo.GenreName(context, *s.GenreID)
		if err != nil {
			return err
		}
		genreName = name
	}

	if s.FeaturedType != TypeCustom {
		exists, err := service.repo.NonCustomExists(context, s.FeaturedType, s.Scope(), excludeID)
		if err != nil {
			return err
		}
		if exists {
			return NewDuplicateSectionError(s.FeaturedType, s.PageType, genreName)
		}
	}

	taken, err := service.repo.OrderTaken(context, s.Scope(), s.Order, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return NewDuplicateOrderError(s.Order)
	}

	if s.FeaturedType == TypeCustom {
		if len(s.BookIDs) < MinCustomBooks {
			return ErrNoCustomBooks
		}
		if len(s.BookIDs) > MaxCustomBooks {
			return ErrTooManyCustomBooks
		}

		if s.GenreID != nil {
			outside, err := service.repo.BooksOutsideGenre(context, s.BookIDs, *s.GenreID)
			if err != nil {
				return err
			}
			if len(outside) > 0 {
				return NewGenreMismatchError(outside[0], genreName)
			}
		}
	} else if len(s.BookIDs) > 0 {
		return ErrUnexpectedBooks
	}

	return nil
}
