// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tu.haminh.dev@gmail.com

package lending

import (
	"context"
	"log/slog"
	"time"

	"github.com/haminhtu/librarium/internal/platform/validate"
	"github.com/haminhtu/librarium/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs the lending service. The clock is injected so tests
// can step through the cooldown window deterministically.
func NewService(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    now,
	}
}

/*
Borrow checks one copy of a book out to a member.

Description: The availability and one-active-copy decisions happen inside the
repository transaction while the book row is locked. The due date is stamped
here: borrow time plus the 14-day loan period.

Returns:
  - *Record: The new active record
  - error: NOT_AVAILABLE, ALREADY_BORROWED, BOOK_NOT_FOUND, or storage errors
*/
func (service *Service) Borrow(context context.Context, userID, isbn string) (*Record, error) {
	validator := &validate.Validator{}
	validator.Required(FieldISBN, isbn)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	borrowedAt := service.now()
	record := &Record{
		ID:         uuidv7.Must(),
		UserID:     userID,
		BorrowDate: borrowedAt,
		DueDate:    borrowedAt.Add(LoanPeriod),
	}

	if err := service.repo.Borrow(context, record, isbn); err != nil {
		return nil, err
	}

	service.logger.Info("book_borrowed",
		slog.String("user_id", userID),
		slog.String("isbn", isbn),
		slog.Time("due_date", record.DueDate),
	)
	return record, nil
}

/*
Return hands a borrowed copy back to the library.

Description: The active record is resolved first; only then does the cooldown
check read its borrow date. A member with no active record always gets
RECORD_NOT_FOUND, never a cooldown message for a loan they don't hold. The
cooldown decision is safe outside the transaction because a record's borrow
date never changes; the repository still guards against a concurrent double
return when completing.

Returns:
  - error: RECORD_NOT_FOUND, RETURN_COOLDOWN, or storage errors
*/
func (service *Service) Return(context context.Context, userID, isbn string) error {
	validator := &validate.Validator{}
	validator.Required(FieldISBN, isbn)
	if err := validator.Err(); err != nil {
		return err
	}

	record, err := service.repo.FindActive(context, userID, isbn)
	if err != nil {
		return err
	}

	eligibleAt := record.BorrowDate.Add(ReturnCooldown)
	if service.now().Before(eligibleAt) {
		return NewCooldownError(eligibleAt)
	}

	if err := service.repo.Complete(context, record.ID, service.now()); err != nil {
		return err
	}

	service.logger.Info("book_returned",
		slog.String("user_id", userID),
		slog.String("record_id", record.ID),
	)
	return nil
}

// UserRecords returns the member's lending history, active loans first.
func (service *Service) UserRecords(context context.Context, userID string, filter Filter) ([]*Record, error) {
	return service.repo.ListByUser(context, userID, filter)
}
