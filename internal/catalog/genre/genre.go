// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

/*
Package genre manages the catalogue's genre taxonomy.

Genres classify books and anchor the per-genre landing pages. Creating or
renaming a genre provisions the standard featured sections for its page, so
every genre page ships with "Popular" and "Latest" rails out of the box.
*/
package genre

import "time"

// Genre represents a single classification in the catalogue taxonomy.
//
// Names are unique case-insensitively: "Horror" and "horror" are the same
// genre as far as the catalogue is concerned.
type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Filter holds the parameters for a paginated genre search.
type Filter struct {
	Query string // Case-insensitive substring match against name
}

// Global field names for validation
const (
	FieldName = "name"
)
