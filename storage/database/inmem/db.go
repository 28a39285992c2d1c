package inmemdb

import (
	"sync"

	"github.com/trezcool/ratiba/core/timetable"
)

type (
	DB struct {
		lesson *lessonTable
	}

	lessonTable struct {
		sync.RWMutex
		rows []timetable.Lesson
	}
)

func Open() (*DB, error) {
	db := &DB{
		lesson: &lessonTable{},
	}
	return db, nil
}
