package timetable

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
)

type Repository interface {
	// LoadLessons returns the persisted lessons in grid order.
	// Missing or corrupt storage is reported as a *StorageError with Op == OpRead.
	LoadLessons(ctx context.Context) ([]Lesson, error)
	// SaveLessons replaces the persisted lessons with `lessons`.
	SaveLessons(ctx context.Context, lessons []Lesson) error
}

// Store owns the Grid. Every mutation is followed by a full save to its Repository.
// A Store is not safe for concurrent use.
type Store struct {
	repo       Repository
	validate   *validator.Validate
	translator ut.Translator
	logger     core.Logger
	grid       Grid
}

func NewStore(repo Repository, validate *validator.Validate, translator ut.Translator, logger core.Logger) *Store {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(validate, "validate"),
		vala.IsNotNil(translator, "translator"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	return &Store{
		repo:       repo,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

func (s *Store) source() string {
	if str, ok := s.repo.(fmt.Stringer); ok {
		return str.String()
	}
	return ""
}

// Load reads the Grid from storage. Unreadable storage is logged and loads as a blank Grid.
// The loaded sequence is padded with blank lessons, or truncated, to exactly GridSize lessons.
func (s *Store) Load(ctx context.Context) (Grid, error) {
	lessons, err := s.repo.LoadLessons(ctx)
	if err != nil {
		if !IsUnreadable(err) {
			return nil, errors.Wrap(err, "loading timetable")
		}
		s.logger.Warn("timetable storage unreadable, loading a blank timetable", err)
		lessons = nil
	}

	grid := make(Grid, 0, GridSize)
	grid = append(grid, lessons...)
	if len(grid) > GridSize {
		s.logger.Warn(fmt.Sprintf("timetable storage holds %d lessons, only the first %d are kept", len(grid), GridSize))
		grid = grid[:GridSize]
	}
	for len(grid) < GridSize {
		grid = append(grid, BlankLesson())
	}

	s.grid = grid
	return grid.copy(), nil
}

func (s *Store) Loaded() bool { return s.grid != nil }

// Grid returns a copy of the current Grid.
func (s *Store) Grid() Grid {
	if s.grid == nil {
		return nil
	}
	return s.grid.copy()
}

func (s *Store) checkSlot(day, period int) error {
	if s.grid == nil {
		return ErrNotLoaded
	}
	return CheckSlot(day, period)
}

func (s *Store) Slot(day, period int) (Lesson, error) {
	if err := s.checkSlot(day, period); err != nil {
		return Lesson{}, err
	}
	return s.grid[Index(day, period)], nil
}

// SetSlot validates `nl` then writes it to the slot and saves the Grid.
// Length violations are returned as a *core.ValidationError wrapping a *FieldLengthError.
func (s *Store) SetSlot(ctx context.Context, day, period int, nl NewLesson) (Lesson, error) {
	if err := s.checkSlot(day, period); err != nil {
		return Lesson{}, err
	}
	if err := s.validateLesson(nl); err != nil {
		return Lesson{}, err
	}

	lsn := nl.lesson()
	if err := s.put(ctx, Index(day, period), lsn); err != nil {
		return Lesson{}, err
	}
	return lsn, nil
}

// ClearSlot writes the blank Lesson to the slot and saves the Grid.
func (s *Store) ClearSlot(ctx context.Context, day, period int) error {
	if err := s.checkSlot(day, period); err != nil {
		return err
	}
	return s.put(ctx, Index(day, period), BlankLesson())
}

// put restores the previous lesson when saving fails: the Grid always matches what storage last accepted.
func (s *Store) put(ctx context.Context, idx int, lsn Lesson) error {
	prev := s.grid[idx]
	s.grid[idx] = lsn
	if err := s.Save(ctx); err != nil {
		s.grid[idx] = prev
		return err
	}
	return nil
}

// Save overwrites the persisted timetable with the whole Grid.
func (s *Store) Save(ctx context.Context) error {
	if s.grid == nil {
		return ErrNotLoaded
	}
	if err := s.repo.SaveLessons(ctx, s.grid.copy()); err != nil {
		return &StorageError{Op: OpWrite, Source: s.source(), Err: err}
	}
	return nil
}

func (s *Store) validateLesson(nl NewLesson) error {
	err := s.validate.Struct(nl)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return errors.Wrap(err, "validating lesson")
	}

	// report the first violation only: teacher, then room
	fe := vErrs[0]
	limit, _ := strconv.Atoi(fe.Param())
	var length int
	if str, ok := fe.Value().(string); ok {
		length = utf8.RuneCountInString(str)
	}
	return core.NewValidationError(
		&FieldLengthError{Field: fe.Field(), Limit: limit, Length: length},
		core.FieldError{Field: fe.Field(), Error: fe.Translate(s.translator)},
	)
}
