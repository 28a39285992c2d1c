package timetable

import (
	"fmt"

	"github.com/pkg/errors"
)

// Storage operations
const (
	OpRead  = "read"
	OpWrite = "write"
)

var ErrNotLoaded = errors.New("timetable not loaded")

// StorageError is returned when the persisted timetable cannot be read (Op == OpRead) or written (Op == OpWrite).
type StorageError struct {
	Op     string
	Source string
	Err    error
}

func (err *StorageError) Error() string {
	if err.Source == "" {
		return fmt.Sprintf("timetable storage %s: %v", err.Op, err.Err)
	}
	return fmt.Sprintf("timetable storage %s %s: %v", err.Op, err.Source, err.Err)
}

func (err *StorageError) Unwrap() error { return err.Err }

func IsUnreadable(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Op == OpRead
}

func IsWriteFailed(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Op == OpWrite
}

// FieldLengthError identifies the Lesson field that exceeded its length bound.
type FieldLengthError struct {
	Field  string
	Limit  int
	Length int
}

func (err *FieldLengthError) Error() string {
	return fmt.Sprintf("%s exceeds %d characters", err.Field, err.Limit)
}
