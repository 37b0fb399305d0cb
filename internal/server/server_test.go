package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/silhouette/pkg/pipeline"
)

func newTestServer() *Server {
	return New(pipeline.NewRunner(nil, nil, nil), nil)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer()

	artRow := strings.Repeat("#", 20) + strings.Repeat(" ", 60)
	body, _ := json.Marshal(map[string]any{
		"code": "int main() { return 0; }",
		"art":  artRow + "\n" + artRow + "\n",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var res renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Width != 80 || res.Height != 2 {
		t.Errorf("dims = %dx%d, want 80x2", res.Width, res.Height)
	}
	if res.Tokens == 0 {
		t.Error("token count should be non-zero")
	}
	if res.Output == "" {
		t.Error("output should not be empty")
	}
	if res.RunID == "" {
		t.Error("run ID should be set")
	}
}

func TestRender_BadJSON(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader("{not json"))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRender_NarrowArtDoesNotCrashServer(t *testing.T) {
	srv := newTestServer()

	// Art narrower than the engine minimum triggers a layout contract
	// panic; the handler must convert it into a 500, not die.
	body, _ := json.Marshal(map[string]any{"code": "int x;", "art": "##\n"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	// The server keeps serving afterwards.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz after failed render = %d, want 200", rec.Code)
	}
}

func TestRender_HeightOverride(t *testing.T) {
	srv := newTestServer()

	artRow := strings.Repeat("#", 80)
	zero := 0
	reqBody := renderRequest{
		Code:   "x",
		Art:    artRow + "\n",
		Height: &zero,
	}
	body, _ := json.Marshal(reqBody)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var res renderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Height != 0 {
		t.Errorf("Height = %d, want 0 (explicit override)", res.Height)
	}
	if res.Output != "x\n" {
		t.Errorf("Output = %q, want %q", res.Output, "x\n")
	}
}
