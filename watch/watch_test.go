package watch

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestHandleGenerateSuccess(t *testing.T) {
	yamlFile := tempYAML(t, "graph:\n  root: A\nnodes:\n  - id: A\n  - id: B\nedges:\n  - from: A\n    to: B\n")
	wa := newTestWatcher(t, yamlFile)

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()

	wa.handleGenerate(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusOK, "status code")
	assert.Truef(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"), "Content-Type")
	assert.Truef(t, strings.Contains(rec.Body.String(), "A"), "body should contain node A")
}

func TestHandleGenerateInvalidDocument(t *testing.T) {
	yamlFile := tempYAML(t, "edges: [not a mapping\n")
	wa := newTestWatcher(t, yamlFile)

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()

	wa.handleGenerate(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusInternalServerError, "status code")
	assert.Truef(t, strings.Contains(rec.Body.String(), "failed to load graph"), "body should explain the failure")
}

func tempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func newTestWatcher(t *testing.T, file string) *Watcher {
	t.Helper()
	wa, err := New(Config{
		File:   file,
		Port:   "0",
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	return wa
}
