package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"

	. "github.com/trezcool/ratiba/apps/api/echo"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
	inmemdb "github.com/trezcool/ratiba/storage/database/inmem"
	testutil "github.com/trezcool/ratiba/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

type testApp struct {
	*Server
	store  *timetable.Store
	files  fstest.MapFS
	logger *testutil.Logger
}

func setupWithRepo(t *testing.T, repo timetable.Repository) *testApp {
	logger := testutil.NewLogger()
	store := testutil.NewStore(t, repo, logger)
	files := fstest.MapFS{"subject_list.txt": {Data: []byte("Mathematics\nEnglish\nGeography\n")}}

	server := NewServer(
		&Options{DisableReqLogs: true},
		&Deps{
			Logger:  logger,
			Store:   store,
			Catalog: subject.NewCatalog(files, "subject_list.txt"),
		},
	)
	return &testApp{Server: server, store: store, files: files, logger: logger}
}

func setup(t *testing.T) *testApp {
	db, _ := inmemdb.Open()
	return setupWithRepo(t, inmemdb.NewTimetableRepository(db))
}

// failingRepository accepts loads but rejects every save.
type failingRepository struct{}

func (failingRepository) LoadLessons(context.Context) ([]timetable.Lesson, error) { return nil, nil }

func (failingRepository) SaveLessons(context.Context, []timetable.Lesson) error {
	return errDiskFull
}

var errDiskFull = errors.New("disk full")

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
