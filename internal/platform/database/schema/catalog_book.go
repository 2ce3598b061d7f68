// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table             string
	ID                string
	Title             string
	Author            string
	ISBN              string
	DatePublished     string
	CoverURL          string
	Description       string
	AvailableQuantity string
	TotalQuantity     string
	BorrowCount       string
	CreatedAt         string
	UpdatedAt         string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:             "catalog.book",
	ID:                "id",
	Title:             "title",
	Author:            "author",
	ISBN:              "isbn",
	DatePublished:     "datepublished",
	CoverURL:          "coverurl",
	Description:       "description",
	AvailableQuantity: "availablequantity",
	TotalQuantity:     "totalquantity",
	BorrowCount:       "borrowcount",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.ISBN, t.DatePublished, t.CoverURL,
		t.Description, t.AvailableQuantity, t.TotalQuantity, t.BorrowCount,
		t.CreatedAt, t.UpdatedAt,
	}
}
