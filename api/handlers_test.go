package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-note-linker/internal/engine"
	testutil "github.com/gcbaptista/go-note-linker/internal/testing"
	"github.com/gcbaptista/go-note-linker/model"
)

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng)
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return response
}

func TestHealthCheckHandler(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, testutil.ScenarioCorpus)
	router := setupTestRouter(testutil.CreateTestEngine(t, dir, nil))

	w := performRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestAnalyzeHandler(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, testutil.ScenarioCorpus)
	router := setupTestRouter(testutil.CreateTestEngine(t, dir, nil))

	w := performRequest(router, http.MethodPost, "/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decode(t, w)
	assert.Equal(t, float64(3), response["scanned"])
	terms, ok := response["terms"].([]interface{})
	require.True(t, ok)
	require.Len(t, terms, 1)
	assert.Equal(t, map[string]interface{}{"term": "sistema", "count": float64(8)}, terms[0])
}

func TestAnalyzeHandler_CorpusErrors(t *testing.T) {
	tests := []struct {
		name           string
		dir            func(t *testing.T) string
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{
			name:           "missing directory",
			dir:            func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing") },
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrorCodeCorpusNotFound,
		},
		{
			name:           "no matching documents",
			dir:            func(t *testing.T) string { return testutil.CreateTestCorpus(t, map[string]string{"a.txt": "x"}) },
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   ErrorCodeEmptyCorpus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter(testutil.CreateTestEngine(t, tt.dir(t), nil))
			w := performRequest(router, http.MethodPost, "/analyze", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, string(tt.expectedCode), decode(t, w)["code"])
		})
	}
}

func TestAnnotateHandler(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, testutil.ScenarioCorpus)
	router := setupTestRouter(testutil.CreateTestEngine(t, dir, nil))

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedText   string
		expectedChange bool
	}{
		{
			name:           "explicit terms",
			body:           AnnotateRequest{Text: "Database and data", Terms: []string{"data", "database"}},
			expectedStatus: http.StatusOK,
			expectedText:   "[[Database]] and [[data]]",
			expectedChange: true,
		},
		{
			name:           "corpus terms",
			body:           AnnotateRequest{Text: "un Sistema"},
			expectedStatus: http.StatusOK,
			expectedText:   "un [[Sistema]]",
			expectedChange: true,
		},
		{
			name:           "existing marker left alone",
			body:           AnnotateRequest{Text: "[[red neuronal]]", Terms: []string{"neuronal"}},
			expectedStatus: http.StatusOK,
			expectedText:   "[[red neuronal]]",
		},
		{
			name:           "invalid JSON",
			body:           "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing text",
			body:           AnnotateRequest{Terms: []string{"data"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "multi-word term",
			body:           AnnotateRequest{Text: "x", Terms: []string{"red neuronal"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/annotate", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				return
			}
			response := decode(t, w)
			assert.Equal(t, tt.expectedText, response["text"])
			assert.Equal(t, tt.expectedChange, response["changed"])
		})
	}
}

func TestRunHandler(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, testutil.ScenarioCorpus)
	eng := testutil.CreateTestEngine(t, dir, nil)
	router := setupTestRouter(eng)

	w := performRequest(router, http.MethodPost, "/runs", RunRequest{DryRun: true})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	jobID, ok := decode(t, w)["job_id"].(string)
	require.True(t, ok)

	job := testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeEnrich, dir)
	assert.Equal(t, testutil.ScenarioCorpus, testutil.ReadCorpus(t, dir), "dry run must not write")

	w = performRequest(router, http.MethodGet, "/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "completed", response["status"])
	result, ok := response["result"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), result["modified"])
	assert.Equal(t, true, result["dry_run"])

	w = performRequest(router, http.MethodPost, "/runs", nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	jobID = decode(t, w)["job_id"].(string)
	job = testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeEnrich, dir)
	assert.Equal(t, "[[sistema]]. [[sistema]].", testutil.ReadCorpus(t, dir)["c.md"])
}

func TestListNotesHandler(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, map[string]string{
		"a.md": "---\ntitle: Alpha\n---\nsee [[Beta]]",
		"b.md": "plain",
	})
	router := setupTestRouter(testutil.CreateTestEngine(t, dir, nil))

	w := performRequest(router, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(2), response["total"])
	notes := response["notes"].([]interface{})
	first := notes[0].(map[string]interface{})
	assert.Equal(t, "Alpha", first["title"])
	assert.Equal(t, float64(1), first["markers"])
}

func TestExportHandler(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "ideas.csv"), []byte("📝 Idea\nPrimera\nSegunda\n"), 0644))
	resolvedRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)

	eng := testutil.CreateTestEngine(t, root, nil)
	router := setupTestRouter(eng)

	w := performRequest(router, http.MethodPost, "/exports", ExportRequest{OutputDir: "out"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(ErrorCodeValidationFailed), decode(t, w)["code"])

	w = performRequest(router, http.MethodPost, "/exports", ExportRequest{CSVPath: "ideas.csv", OutputDir: "out"})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	jobID := decode(t, w)["job_id"].(string)

	outputDir := filepath.Join(resolvedRoot, "out")
	job := testutil.WaitForJob(t, eng, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeExport, outputDir)
	assert.Len(t, testutil.ReadCorpus(t, outputDir), 2)
}

func TestExportHandler_PathsOutsideCorpus(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	outsideCSV := filepath.Join(outside, "ideas.csv")
	require.NoError(t, os.WriteFile(outsideCSV, []byte("📝 Idea\nPrimera\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ideas.csv"), []byte("📝 Idea\nPrimera\n"), 0644))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "escape")))

	router := setupTestRouter(testutil.CreateTestEngine(t, root, nil))

	tests := []struct {
		name  string
		req   ExportRequest
		field string
	}{
		{"absolute csv elsewhere", ExportRequest{CSVPath: outsideCSV}, "csv_path"},
		{"relative csv escaping", ExportRequest{CSVPath: "../" + filepath.Base(outside) + "/ideas.csv"}, "csv_path"},
		{"absolute output elsewhere", ExportRequest{CSVPath: "ideas.csv", OutputDir: filepath.Join(outside, "anywhere", "deep")}, "output_dir"},
		{"relative output escaping", ExportRequest{CSVPath: "ideas.csv", OutputDir: "notes/../../out"}, "output_dir"},
		{"output through symlink", ExportRequest{CSVPath: "ideas.csv", OutputDir: "escape/deep"}, "output_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/exports", tt.req)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			response := decode(t, w)
			assert.Equal(t, string(ErrorCodeValidationFailed), response["code"])
			details := response["details"].([]interface{})
			require.Len(t, details, 1)
			assert.Equal(t, tt.field, details[0].(map[string]interface{})["field"])
		})
	}

	_, err := os.Stat(filepath.Join(outside, "anywhere"))
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(outside)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestJobHandlers(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, testutil.ScenarioCorpus)
	router := setupTestRouter(testutil.CreateTestEngine(t, dir, nil))

	w := performRequest(router, http.MethodGet, "/jobs/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, string(ErrorCodeJobNotFound), decode(t, w)["code"])

	w = performRequest(router, http.MethodGet, "/jobs/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "metrics")

	w = performRequest(router, http.MethodGet, "/jobs?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["total"])
}

func TestCORSPreflight(t *testing.T) {
	dir := testutil.CreateTestCorpus(t, testutil.ScenarioCorpus)
	router := setupTestRouter(testutil.CreateTestEngine(t, dir, nil))

	w := performRequest(router, http.MethodOptions, "/runs", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
