package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pondlabs/ponder/internal/agent"
	"github.com/pondlabs/ponder/internal/history"
)

type stubSolver struct {
	lastQuestion string
}

func (s *stubSolver) Solve(_ context.Context, question string) *agent.Response {
	s.lastQuestion = question
	return &agent.Response{
		Answer:                 "62",
		Status:                 agent.StatusSuccess,
		ReasoningVisibleToUser: "25 plus 37 is 62",
		Metadata: agent.Metadata{
			Plan:    "1. add",
			Checks:  []agent.Check{{CheckName: "Arithmetic", Passed: true, Details: "ok"}},
			Retries: 0,
		},
	}
}

func testHandler(t *testing.T, store *history.Store) (http.Handler, *stubSolver) {
	t.Helper()
	solver := &stubSolver{}
	return New(":0", solver, store).server.Handler, solver
}

func TestHealthz(t *testing.T) {
	h, _ := testHandler(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSolve(t *testing.T) {
	h, solver := testHandler(t, nil)

	body := strings.NewReader(`{"question": "What is 25 + 37?"}`)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	if solver.lastQuestion != "What is 25 + 37?" {
		t.Errorf("solver got question %q", solver.lastQuestion)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got["answer"] != "62" || got["status"] != "success" {
		t.Errorf("response = %#v", got)
	}
	meta, ok := got["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata has type %T", got["metadata"])
	}
	if meta["plan"] != "1. add" {
		t.Errorf("metadata = %#v", meta)
	}
}

func TestSolveRejectsEmptyQuestion(t *testing.T) {
	h, _ := testHandler(t, nil)

	for _, body := range []string{`{"question": ""}`, `{"question": "   "}`, `{}`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestSolveRejectsMalformedBody(t *testing.T) {
	h, _ := testHandler(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader("not json")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHistoryEndpointsWithoutStore(t *testing.T) {
	h, _ := testHandler(t, nil)

	for _, path := range []string{"/api/history", "/api/history/search?q=train"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, rec.Code)
		}
	}
}

func TestSolvePersistsToStore(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	h, _ := testHandler(t, store)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/solve",
		strings.NewReader(`{"question": "What is 25 + 37?"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Question != "What is 25 + 37?" || records[0].Answer != "62" {
		t.Errorf("persisted record = %+v", records[0])
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/history status = %d, want 200", rec.Code)
	}
	var listed []history.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("history response is not JSON: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("len(listed) = %d, want 1", len(listed))
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	h, _ := testHandler(t, store)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/search", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
