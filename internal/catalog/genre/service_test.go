// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package genre_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haminhtu/librarium/internal/catalog/genre"
	"github.com/haminhtu/librarium/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	genres map[string]*genre.Genre
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{genres: map[string]*genre.Genre{}}
}

func (f *fakeRepository) ListGenres(_ context.Context, _ genre.Filter, _, _ int) ([]*genre.Genre, int, error) {
	var out []*genre.Genre
	for _, g := range f.genres {
		out = append(out, g)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetGenre(_ context.Context, id string) (*genre.Genre, error) {
	if g, ok := f.genres[id]; ok {
		return g, nil
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeRepository) GetGenreByName(_ context.Context, name string) (*genre.Genre, error) {
	for _, g := range f.genres {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeRepository) CreateGenre(_ context.Context, g *genre.Genre) error {
	f.genres[g.ID] = g
	return nil
}

func (f *fakeRepository) UpdateGenre(_ context.Context, g *genre.Genre) error {
	if _, ok := f.genres[g.ID]; !ok {
		return apperr.NotFound("Resource")
	}
	f.genres[g.ID] = g
	return nil
}

func (f *fakeRepository) DeleteGenre(_ context.Context, id string) error {
	if _, ok := f.genres[id]; !ok {
		return apperr.NotFound("Resource")
	}
	delete(f.genres, id)
	return nil
}

// fakeProvisioner records which genres got their default sections seeded.
type fakeProvisioner struct {
	calls []string
}

func (f *fakeProvisioner) AutoProvision(_ context.Context, genreID string) error {
	f.calls = append(f.calls, genreID)
	return nil
}

func newService(repo genre.Repository, provisioner genre.SectionProvisioner) *genre.Service {
	return genre.NewService(repo, provisioner, slog.Default())
}

/*
TestCreateGenre_ProvisionsSections verifies that creating a genre seeds its
default featured sections exactly once.
*/
func TestCreateGenre_ProvisionsSections(t *testing.T) {
	repo := newFakeRepository()
	provisioner := &fakeProvisioner{}
	service := newService(repo, provisioner)

	g := &genre.Genre{Name: "Horror"}
	require.NoError(t, service.CreateGenre(context.Background(), g))

	// 1. The genre got a generated ID and was persisted
	assert.NotEmpty(t, g.ID)
	assert.Len(t, repo.genres, 1)

	// 2. Provisioning ran for the new genre
	require.Len(t, provisioner.calls, 1)
	assert.Equal(t, g.ID, provisioner.calls[0])
}

/*
TestUpdateGenre_ReprovisionsSections verifies that renaming a genre re-runs
section provisioning for its page.
*/
func TestUpdateGenre_ReprovisionsSections(t *testing.T) {
	repo := newFakeRepository()
	provisioner := &fakeProvisioner{}
	service := newService(repo, provisioner)

	g := &genre.Genre{Name: "Horror"}
	require.NoError(t, service.CreateGenre(context.Background(), g))

	require.NoError(t, service.UpdateGenre(context.Background(), g.ID, &genre.Genre{Name: "Gothic Horror"}))

	// Once for create, once for update
	assert.Equal(t, []string{g.ID, g.ID}, provisioner.calls)
}

/*
TestCreateGenre_RequiresName verifies the validation chain rejects blank names.
*/
func TestCreateGenre_RequiresName(t *testing.T) {
	repo := newFakeRepository()
	provisioner := &fakeProvisioner{}
	service := newService(repo, provisioner)

	err := service.CreateGenre(context.Background(), &genre.Genre{Name: "   "})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	// Nothing persisted, nothing provisioned
	assert.Empty(t, repo.genres)
	assert.Empty(t, provisioner.calls)
}
