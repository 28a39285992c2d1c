package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/timetable"
)

const (
	TmpSuffix       = ".tmp"
	FilePermissions = 0644
	indent          = "    "
)

var errEmptyFile = errors.New("empty file")

// lessonRecord is a Lesson as found in the file; absent or null fields load as timetable.Blank.
type lessonRecord struct {
	Subject *string `json:"subject"`
	Teacher *string `json:"teacher"`
	Room    *string `json:"room"`
}

func orBlank(s *string) string {
	if s == nil {
		return timetable.Blank
	}
	return *s
}

func (r lessonRecord) lesson() timetable.Lesson {
	return timetable.Lesson{
		Subject: orBlank(r.Subject),
		Teacher: orBlank(r.Teacher),
		Room:    orBlank(r.Room),
	}
}

// timetableRepository keeps the timetable in a JSON file: an array of {"subject", "teacher", "room"} objects.
type timetableRepository struct {
	path string
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(path string) timetable.Repository {
	vala.BeginValidation().Validate(
		vala.StringNotEmpty(path, "path"),
	).CheckAndPanic()

	return &timetableRepository{path: path}
}

func (repo *timetableRepository) String() string { return repo.path }

func (repo *timetableRepository) unreadable(err error) error {
	return &timetable.StorageError{Op: timetable.OpRead, Source: repo.path, Err: err}
}

// LoadLessons reports a missing, empty or malformed file as an unreadable timetable.StorageError.
func (repo *timetableRepository) LoadLessons(ctx context.Context) ([]timetable.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(repo.path)
	if err != nil {
		return nil, repo.unreadable(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, repo.unreadable(errEmptyFile)
	}

	var records []lessonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, repo.unreadable(errors.Wrap(err, "decoding lessons"))
	}

	lessons := make([]timetable.Lesson, 0, len(records))
	for _, r := range records {
		lessons = append(lessons, r.lesson())
	}
	return lessons, nil
}

// SaveLessons writes the whole file to a temporary file first, then renames it over the previous one.
func (repo *timetableRepository) SaveLessons(ctx context.Context, lessons []timetable.Lesson) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if lessons == nil {
		lessons = []timetable.Lesson{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(lessons); err != nil {
		return errors.Wrap(err, "encoding lessons")
	}

	if err := os.MkdirAll(filepath.Dir(repo.path), 0755); err != nil {
		return errors.Wrap(err, "creating timetable directory")
	}

	tmpFile := repo.path + TmpSuffix
	if err := os.WriteFile(tmpFile, buf.Bytes(), FilePermissions); err != nil {
		return errors.Wrap(err, "writing temporary timetable file")
	}
	if err := os.Rename(tmpFile, repo.path); err != nil {
		_ = os.Remove(tmpFile)
		return errors.Wrap(err, "replacing timetable file")
	}
	return nil
}
