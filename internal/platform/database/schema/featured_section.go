// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package schema

// FeaturedSectionTable represents the 'featured.section' table
type FeaturedSectionTable struct {
	Table        string
	ID           string
	Title        string
	FeaturedType string
	PageType     string
	GenreID      string
	SectionOrder string
	CreatedAt    string
	UpdatedAt    string
}

// FeaturedSection is the schema definition for featured.section.
//
// The display order column is named "sectionorder" because ORDER is a
// reserved word in SQL.
var FeaturedSection = FeaturedSectionTable{
	Table:        "featured.section",
	ID:           "id",
	Title:        "title",
	FeaturedType: "featuredtype",
	PageType:     "pagetype",
	GenreID:      "genreid",
	SectionOrder: "sectionorder",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t FeaturedSectionTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.FeaturedType, t.PageType, t.GenreID, t.SectionOrder,
		t.CreatedAt, t.UpdatedAt,
	}
}
