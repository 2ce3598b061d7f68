// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package featured_test

import (
	"context"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haminhtu/librarium/internal/featured"
	"github.com/haminhtu/librarium/internal/platform/apperr"
)

// fakeRepository is an in-memory Repository for planner tests.
type fakeRepository struct {
	sections map[string]*featured.Section
	genres   map[string]string   // genre id -> name
	books    map[string]fakeBook // book id -> title + genre ids

	popular []featured.BookData
	latest  []featured.BookData

	renormalized []featured.Scope
}

type fakeBook struct {
	title    string
	genreIDs []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		sections: map[string]*featured.Section{},
		genres:   map[string]string{},
		books:    map[string]fakeBook{},
	}
}

func (f *fakeRepository) CreateSection(_ context.Context, s *featured.Section) error {
	stored := *s
	f.sections[s.ID] = &stored
	return nil
}

func (f *fakeRepository) UpdateSection(_ context.Context, s *featured.Section) error {
	if _, ok := f.sections[s.ID]; !ok {
		return apperr.NotFound("Resource")
	}
	stored := *s
	f.sections[s.ID] = &stored
	return nil
}

func (f *fakeRepository) DeleteSection(_ context.Context, id string) error {
	if _, ok := f.sections[id]; !ok {
		return apperr.NotFound("Resource")
	}
	delete(f.sections, id)
	return nil
}

func (f *fakeRepository) GetSection(_ context.Context, id string) (*featured.Section, error) {
	if s, ok := f.sections[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, apperr.NotFound("Resource")
}

func (f *fakeRepository) ListByPage(_ context.Context, pageType featured.PageType, genreName string) ([]*featured.Section, error) {
	var out []*featured.Section
	for _, s := range f.sections {
		if s.PageType != pageType {
			continue
		}
		if genreName != "" && (s.GenreID == nil || f.genres[*s.GenreID] != genreName) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeRepository) inScope(s *featured.Section, scope featured.Scope) bool {
	return s.Scope().Equal(scope)
}

func (f *fakeRepository) NonCustomExists(_ context.Context, featuredType featured.FeaturedType, scope featured.Scope, excludeID string) (bool, error) {
	for _, s := range f.sections {
		if s.ID != excludeID && s.FeaturedType == featuredType && f.inScope(s, scope) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) OrderTaken(_ context.Context, scope featured.Scope, order int, excludeID string) (bool, error) {
	for _, s := range f.sections {
		if s.ID != excludeID && s.Order == order && f.inScope(s, scope) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) MaxOrder(_ context.Context, scope featured.Scope) (int, error) {
	maxOrder := 0
	for _, s := range f.sections {
		if f.inScope(s, scope) && s.Order > maxOrder {
			maxOrder = s.Order
		}
	}
	return maxOrder, nil
}

func (f *fakeRepository) BooksOutsideGenre(_ context.Context, bookIDs []string, genreID string) ([]string, error) {
	var outside []string
	for _, id := range bookIDs {
		b := f.books[id]
		linked := false
		for _, g := range b.genreIDs {
			if g == genreID {
				linked = true
				break
			}
		}
		if !linked {
			outside = append(outside, b.title)
		}
	}
	sort.Strings(outside)
	return outside, nil
}

func (f *fakeRepository) GenreName(_ context.Context, genreID string) (string, error) {
	if name, ok := f.genres[genreID]; ok {
		return name, nil
	}
	return "", apperr.NotFound("Resource")
}

func (f *fakeRepository) Renormalize(_ context.Context, scope featured.Scope) error {
	f.renormalized = append(f.renormalized, scope)

	var scoped []*featured.Section
	for _, s := range f.sections {
		if f.inScope(s, scope) {
			scoped = append(scoped, s)
		}
	}
	sort.Slice(scoped, func(i, j int) bool { return scoped[i].Order < scoped[j].Order })
	for index, s := range scoped {
		s.Order = index + 1
	}
	return nil
}

func (f *fakeRepository) TopByBorrowCount(_ context.Context, _ string, _ int) ([]featured.BookData, error) {
	return f.popular, nil
}

func (f *fakeRepository) TopByDatePublished(_ context.Context, _ string, _ int) ([]featured.BookData, error) {
	return f.latest, nil
}

func (f *fakeRepository) SectionBooks(_ context.Context, sectionID string) ([]featured.BookData, error) {
	s, ok := f.sections[sectionID]
	if !ok {
		return nil, apperr.NotFound("Resource")
	}
	var out []featured.BookData
	for _, id := range s.BookIDs {
		out = append(out, featured.BookData{Title: f.books[id].title})
	}
	return out, nil
}

func newService(repo *fakeRepository) *featured.Service {
	return featured.NewService(repo, slog.Default())
}

func strPtr(s string) *string { return &s }

func validCustomSection(bookIDs ...string) *featured.Section {
	return &featured.Section{
		Title:        "Staff Picks",
		FeaturedType: featured.TypeCustom,
		PageType:     featured.PageHome,
		Order:        1,
		BookIDs:      bookIDs,
	}
}

/*
TestCreateSection_InvalidOrder verifies display orders below 1 are rejected
with the exact legacy wording.
*/
func TestCreateSection_InvalidOrder(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = fakeBook{title: "Dracula"}
	service := newService(repo)

	s := validCustomSection("b1")
	s.Order = 0

	err := service.CreateSection(context.Background(), s)

	require.ErrorIs(t, err, featured.ErrInvalidOrder)
	assert.Equal(t, "Ensure this value is greater or equal to 1.", err.Error())
}

/*
TestCreateSection_DuplicateNonCustom verifies a second popular rail on the
same page is rejected.
*/
func TestCreateSection_DuplicateNonCustom(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	first := &featured.Section{Title: "Popular", FeaturedType: featured.TypePopular, PageType: featured.PageHome, Order: 1}
	require.NoError(t, service.CreateSection(context.Background(), first))

	second := &featured.Section{Title: "Trending", FeaturedType: featured.TypePopular, PageType: featured.PageHome, Order: 2}
	err := service.CreateSection(context.Background(), second)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "DUPLICATE_SECTION", appError.Code)
	assert.Equal(t, "A Featured entry with type 'popular', page_type='home', and genre='None' already exists.", appError.Message)
}

/*
TestCreateSection_DuplicateOrder verifies two rails cannot share a display
position within one scope.
*/
func TestCreateSection_DuplicateOrder(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = fakeBook{title: "Dracula"}
	service := newService(repo)

	require.NoError(t, service.CreateSection(context.Background(),
		&featured.Section{Title: "Popular", FeaturedType: featured.TypePopular, PageType: featured.PageHome, Order: 1}))

	s := validCustomSection("b1")
	s.Order = 1
	err := service.CreateSection(context.Background(), s)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "DUPLICATE_ORDER", appError.Code)
	assert.Equal(t, "A section already exists with order 1 for this page.", appError.Message)
}

/*
TestCreateSection_CustomBookCount verifies the 1..7 curated-list bounds.
*/
func TestCreateSection_CustomBookCount(t *testing.T) {
	repo := newFakeRepository()
	for _, id := range []string{"b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"} {
		repo.books[id] = fakeBook{title: id}
	}
	service := newService(repo)

	// 1. Empty curated list
	err := service.CreateSection(context.Background(), validCustomSection())
	require.ErrorIs(t, err, featured.ErrNoCustomBooks)

	// 2. Eight books is one too many
	err = service.CreateSection(context.Background(),
		validCustomSection("b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"))
	require.ErrorIs(t, err, featured.ErrTooManyCustomBooks)

	// 3. Seven is fine
	err = service.CreateSection(context.Background(),
		validCustomSection("b1", "b2", "b3", "b4", "b5", "b6", "b7"))
	require.NoError(t, err)
}

/*
TestCreateSection_GenreMismatch verifies every curated book must carry the
section's genre when one is set.
*/
func TestCreateSection_GenreMismatch(t *testing.T) {
	repo := newFakeRepository()
	repo.genres["g1"] = "Horror"
	repo.books["b1"] = fakeBook{title: "Dracula", genreIDs: []string{"g1"}}
	repo.books["b2"] = fakeBook{title: "Emma", genreIDs: []string{"g2"}}
	service := newService(repo)

	s := validCustomSection("b1", "b2")
	s.GenreID = strPtr("g1")

	err := service.CreateSection(context.Background(), s)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "GENRE_MISMATCH", appError.Code)
	assert.Equal(t, "The book 'Emma' does not belong to the selected genre 'Horror'.", appError.Message)
}

/*
TestCreateSection_GenreOnHomePage verifies a genre is accepted on a home-page
rail. The genre is only required for genre pages; elsewhere it narrows which
books the rail may carry.
*/
func TestCreateSection_GenreOnHomePage(t *testing.T) {
	repo := newFakeRepository()
	repo.genres["g1"] = "Horror"
	repo.books["b1"] = fakeBook{title: "Dracula", genreIDs: []string{"g1"}}
	service := newService(repo)

	s := validCustomSection("b1")
	s.GenreID = strPtr("g1")

	require.NoError(t, service.CreateSection(context.Background(), s))

	stored := repo.sections[s.ID]
	require.NotNil(t, stored.GenreID)
	assert.Equal(t, "g1", *stored.GenreID)
	assert.Equal(t, featured.PageHome, stored.PageType)
}

/*
TestCreateSection_UnexpectedBooks verifies curated lists are rejected on
dynamically resolved rails.
*/
func TestCreateSection_UnexpectedBooks(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = fakeBook{title: "Dracula"}
	service := newService(repo)

	s := &featured.Section{
		Title:        "Latest",
		FeaturedType: featured.TypeLatest,
		PageType:     featured.PageHome,
		Order:        1,
		BookIDs:      []string{"b1"},
	}

	err := service.CreateSection(context.Background(), s)

	require.ErrorIs(t, err, featured.ErrUnexpectedBooks)
}

/*
TestCreateSection_RenormalizesGap verifies a save with a high manual order
collapses into the next contiguous slot.
*/
func TestCreateSection_RenormalizesGap(t *testing.T) {
	repo := newFakeRepository()
	repo.books["b1"] = fakeBook{title: "Dracula"}
	service := newService(repo)

	require.NoError(t, service.CreateSection(context.Background(),
		&featured.Section{Title: "Popular", FeaturedType: featured.TypePopular, PageType: featured.PageHome, Order: 1}))

	s := validCustomSection("b1")
	s.Order = 9
	require.NoError(t, service.CreateSection(context.Background(), s))

	// The gap closed: the custom rail sits at order 2, not 9
	stored := repo.sections[s.ID]
	assert.Equal(t, 2, stored.Order)
	assert.NotEmpty(t, repo.renormalized)
}

/*
TestAutoProvision_Idempotent verifies provisioning seeds Popular and Latest
once and leaves existing rails untouched on repeat calls.
*/
func TestAutoProvision_Idempotent(t *testing.T) {
	repo := newFakeRepository()
	repo.genres["g1"] = "Horror"
	service := newService(repo)

	require.NoError(t, service.AutoProvision(context.Background(), "g1"))
	require.NoError(t, service.AutoProvision(context.Background(), "g1"))

	assert.Len(t, repo.sections, 2)

	var titles []string
	orders := map[string]int{}
	for _, s := range repo.sections {
		titles = append(titles, s.Title)
		orders[s.Title] = s.Order
		assert.Equal(t, featured.PageGenre, s.PageType)
		require.NotNil(t, s.GenreID)
		assert.Equal(t, "g1", *s.GenreID)
	}
	sort.Strings(titles)

	// x/text title casing produced display-ready titles
	assert.Equal(t, []string{"Latest", "Popular"}, titles)
	assert.Equal(t, 1, orders["Popular"])
	assert.Equal(t, 2, orders["Latest"])
}

/*
TestPageData_ResolvesRails verifies the page payload resolves each rail type
through its own path and preserves display order.
*/
func TestPageData_ResolvesRails(t *testing.T) {
	repo := newFakeRepository()
	repo.popular = []featured.BookData{{Title: "Dracula", ISBN: "9780000000001", Cover: "c1.png"}}
	repo.latest = []featured.BookData{{Title: "Emma", ISBN: "9780000000002", Cover: "c2.png"}}
	repo.books["b1"] = fakeBook{title: "It"}
	service := newService(repo)

	require.NoError(t, service.CreateSection(context.Background(),
		&featured.Section{Title: "Popular", FeaturedType: featured.TypePopular, PageType: featured.PageHome, Order: 1}))
	require.NoError(t, service.CreateSection(context.Background(),
		&featured.Section{Title: "Latest", FeaturedType: featured.TypeLatest, PageType: featured.PageHome, Order: 2}))
	custom := validCustomSection("b1")
	custom.Title = "Staff Picks"
	custom.Order = 3
	require.NoError(t, service.CreateSection(context.Background(), custom))

	data, err := service.PageData(context.Background(), featured.PageHome, "")
	require.NoError(t, err)

	require.Len(t, data, 3)
	assert.Equal(t, "Popular", data[0].Title)
	assert.Equal(t, "Dracula", data[0].Books[0].Title)
	assert.Equal(t, "Latest", data[1].Title)
	assert.Equal(t, "Emma", data[1].Books[0].Title)
	assert.Equal(t, "Staff Picks", data[2].Title)
	assert.Equal(t, "It", data[2].Books[0].Title)
}
