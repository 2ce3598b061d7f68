// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package schema

// FeaturedSectionBookTable represents the 'featured.sectionbook' junction table.
//
// Position preserves the curator's manual ordering for custom sections.
type FeaturedSectionBookTable struct {
	Table     string
	SectionID string
	BookID    string
	Position  string
}

// FeaturedSectionBook is the schema definition for featured.sectionbook
var FeaturedSectionBook = FeaturedSectionBookTable{
	Table:     "featured.sectionbook",
	SectionID: "sectionid",
	BookID:    "bookid",
	Position:  "position",
}

func (t FeaturedSectionBookTable) Columns() []string {
	return []string{t.SectionID, t.BookID, t.Position}
}
