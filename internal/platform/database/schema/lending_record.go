// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package schema

// LendingRecordTable represents the 'lending.record' table
type LendingRecordTable struct {
	Table      string
	ID         string
	UserID     string
	BookID     string
	BorrowDate string
	DueDate    string
	ReturnDate string
}

// LendingRecord is the schema definition for lending.record
var LendingRecord = LendingRecordTable{
	Table:      "lending.record",
	ID:         "id",
	UserID:     "userid",
	BookID:     "bookid",
	BorrowDate: "borrowdate",
	DueDate:    "duedate",
	ReturnDate: "returndate",
}

func (t LendingRecordTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.BorrowDate, t.DueDate, t.ReturnDate}
}
