package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Sandanu06/citf-backend-v1/database"
	"github.com/Sandanu06/citf-backend-v1/storage"
	"github.com/Sandanu06/citf-backend-v1/testutils"
	"github.com/goccy/go-json"
)

type testEnv struct {
	router http.Handler
	db     database.Database
	store  *storage.DiskStore
}

func newTestEnv(t *testing.T, overrides map[string]string) testEnv {
	t.Helper()

	store, err := storage.NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	cfg := map[string]string{
		"BCRYPT_COST":     "4",
		"AUTH_RATE_LIMIT": "0",
	}
	for k, v := range overrides {
		cfg[k] = v
	}

	db := database.New(testutils.SetupDB(t))
	router := newRouter(db, withConfig(cfg), withStartupTime(time.Now()), withFileStore(store))
	return testEnv{router: router, db: db, store: store}
}

func (e testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type fileField struct {
	name, body string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...fileField) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := io.WriteString(fw, f.body); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, want, rec.Body.String())
	}
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	body := decode[map[string]interface{}](t, rec)
	if body["message"] != want {
		t.Fatalf("message = %v, want %q", body["message"], want)
	}
}

func countUploads(t *testing.T, store *storage.DiskStore) int {
	t.Helper()
	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	return len(entries)
}

func fileExists(store *storage.DiskStore, storedPath string) bool {
	name := strings.TrimPrefix(storedPath, "/uploads/")
	_, err := os.Stat(filepath.Join(store.Dir(), name))
	return err == nil
}

func createProject(t *testing.T, env testEnv, title string, files ...fileField) uint {
	t.Helper()
	rec := env.do(t, multipartRequest(t, http.MethodPost, "/api/projects",
		map[string]string{"title": title, "description": title + " description"}, files...))
	expectStatus(t, rec, http.StatusCreated)
	return decode[projectCreatedResponse](t, rec).ProjectID
}

func getProject(t *testing.T, env testEnv, id uint) (*httptest.ResponseRecorder, ProjectWithImages) {
	t.Helper()
	rec := env.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil))
	if rec.Code != http.StatusOK {
		return rec, ProjectWithImages{}
	}
	return rec, decode[ProjectWithImages](t, rec)
}

// expectServerError checks the 500 body shape: message, status and an
// operation detail instead of the driver error.
func expectServerError(t *testing.T, rec *httptest.ResponseRecorder, message string) ErrorResponse {
	t.Helper()
	expectStatus(t, rec, http.StatusInternalServerError)
	body := decode[ErrorResponse](t, rec)
	if body.Message != message || body.Status != "error" || body.Error == "" {
		t.Fatalf("unexpected error body %+v", body)
	}
	return body
}

func closeDB(t *testing.T, env testEnv) {
	t.Helper()
	if err := env.db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
