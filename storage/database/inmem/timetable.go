package inmemdb

import (
	"context"

	"github.com/trezcool/ratiba/core/timetable"
)

type timetableRepository struct {
	db *lessonTable
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db.lesson}
}

func (repo *timetableRepository) String() string { return "memory" }

func (repo *timetableRepository) LoadLessons(ctx context.Context) ([]timetable.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.RLock()
	defer repo.db.RUnlock()

	lessons := make([]timetable.Lesson, len(repo.db.rows))
	copy(lessons, repo.db.rows)
	return lessons, nil
}

func (repo *timetableRepository) SaveLessons(ctx context.Context, lessons []timetable.Lesson) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.Lock()
	defer repo.db.Unlock()

	rows := make([]timetable.Lesson, len(lessons))
	copy(rows, lessons)
	repo.db.rows = rows
	return nil
}
