package filter

import (
	"errors"
	"fmt"
)

// Column edit errors. Their text is shown to the user as is.
var (
	ErrNoSuchColumn         = errors.New("no such column")
	ErrIgnoredColumn        = errors.New("You can't add an ignored column!")
	ErrCategoryMismatch     = errors.New("You can't add different types of columns!")
	ErrIgnoreSelectedColumn = errors.New("You can't ignore a selected column, please remove the column first.")
	ErrCategoryLocked       = errors.New("You can't change to this type of column, previous columns have a different type.")
	ErrColumnTypeNotAllowed = errors.New("column type not allowed for this column")
)

// ColumnError reports a rejected column edit. The wrapped reason is the
// message to show to the user.
type ColumnError struct {
	Column int
	Name   string
	Reason error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %d (%s): %s", e.Column, e.Name, e.Reason)
}

func (e *ColumnError) Unwrap() error { return e.Reason }
