package tests

import (
	"net/http"
	"testing"
	"testing/fstest"
)

func Test_subjectApi_query(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/subjects")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, []string{"Mathematics", "English", "Geography"})}, rec)

	// the list is re-read on every request
	app.files["subject_list.txt"] = &fstest.MapFile{Data: []byte("Biology\r\n")}
	req, rec = newRequest(http.MethodGet, "/v1/subjects/")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, []string{"Biology"})}, rec)

	delete(app.files, "subject_list.txt")
	req, rec = newRequest(http.MethodGet, "/v1/subjects")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject list not found"})}, rec)
}
