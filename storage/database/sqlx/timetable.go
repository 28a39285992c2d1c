package sqlxrepos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core/timetable"
)

const (
	selectLessons = `SELECT position, subject, teacher, room FROM lessons ORDER BY position`
	deleteLessons = `DELETE FROM lessons`
	insertLesson  = `INSERT INTO lessons (position, subject, teacher, room) VALUES (:position, :subject, :teacher, :room)`
)

// lessonRow is a row of the lessons table. NULL columns hold blank fields.
type lessonRow struct {
	Position int         `db:"position"`
	Subject  null.String `db:"subject"`
	Teacher  null.String `db:"teacher"`
	Room     null.String `db:"room"`
}

type timetableRepository struct {
	db *sqlx.DB
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *sqlx.DB) timetable.Repository {
	vala.BeginValidation().Validate(
		vala.IsNotNil(db, "db"),
	).CheckAndPanic()

	return &timetableRepository{db: db}
}

func (repo *timetableRepository) String() string {
	return fmt.Sprintf("%s:lessons", repo.db.DriverName())
}

func nullable(s string) null.String {
	return null.NewString(s, s != timetable.Blank)
}

func orBlank(s null.String) string {
	if !s.Valid {
		return timetable.Blank
	}
	return s.String
}

func (repo *timetableRepository) toRow(position int, lsn timetable.Lesson) lessonRow {
	return lessonRow{
		Position: position,
		Subject:  nullable(lsn.Subject),
		Teacher:  nullable(lsn.Teacher),
		Room:     nullable(lsn.Room),
	}
}

func (repo *timetableRepository) fromRow(row lessonRow) timetable.Lesson {
	return timetable.Lesson{
		Subject: orBlank(row.Subject),
		Teacher: orBlank(row.Teacher),
		Room:    orBlank(row.Room),
	}
}

// LoadLessons returns the stored lessons, each at its position: missing positions are blank
// and rows outside of the Grid are skipped. A failing query is reported as unreadable storage.
func (repo *timetableRepository) LoadLessons(ctx context.Context) ([]timetable.Lesson, error) {
	var rows []lessonRow
	if err := repo.db.SelectContext(ctx, &rows, selectLessons); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &timetable.StorageError{Op: timetable.OpRead, Source: repo.String(), Err: errors.Wrap(err, "selecting lessons")}
	}

	lessons := make([]timetable.Lesson, 0, len(rows))
	for _, row := range rows {
		if row.Position < 0 || row.Position >= timetable.GridSize {
			continue
		}
		for len(lessons) < row.Position {
			lessons = append(lessons, timetable.BlankLesson())
		}
		lessons = append(lessons, repo.fromRow(row))
	}
	return lessons, nil
}

// SaveLessons replaces every row of the lessons table in a single transaction.
func (repo *timetableRepository) SaveLessons(ctx context.Context, lessons []timetable.Lesson) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteLessons); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}

	for i, lsn := range lessons {
		if _, err = tx.NamedExecContext(ctx, insertLesson, repo.toRow(i, lsn)); err != nil {
			return errors.Wrapf(err, "inserting lesson #%d", i)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing lessons")
	}
	return nil
}
