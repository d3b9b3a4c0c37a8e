package explain_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ocr-backend/internal/bootstrap"
	"ocr-backend/internal/llm"
	"ocr-backend/internal/shared/auth"
	"ocr-backend/internal/shared/config"
	"ocr-backend/internal/shared/server"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type staticExtractor struct {
	text string
}

func (e staticExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	return e.text, nil
}

type stubLLM struct {
	answer string
	err    error
}

func (s stubLLM) Explain(ctx context.Context, text, query string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func newExplainRouter(t *testing.T, client llm.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		OCRLanguages:    []string{"por"},
	}
	app, err := bootstrap.Build(context.Background(), cfg,
		bootstrap.WithExtractor(staticExtractor{text: "texto reconhecido"}),
		bootstrap.WithLLMClient(client),
	)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return server.NewRouter(app)
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Identity{ID: userID})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return "Bearer " + token
}

func seedDocument(t *testing.T, router *gin.Engine, userID string) int64 {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "nota.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 16)...)
	if _, err := fileWriter.Write(payload); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/ocr/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", bearerToken(t, userID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("seed upload: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return created.ID
}

func postExplain(t *testing.T, router *gin.Engine, userID, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ocr/explain", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, userID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestExplainEndpointReturnsExplanation(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newExplainRouter(t, stubLLM{answer: "este documento é uma nota fiscal"})
	docID := seedDocument(t, router, "google:1")

	resp := postExplain(t, router, "google:1", `{"id":`+strconv.FormatInt(docID, 10)+`,"query":"o que é?"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}

	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Explanation != "este documento é uma nota fiscal" {
		t.Fatalf("unexpected explanation %q", out.Explanation)
	}
}

func TestExplainEndpointMissingDocumentIs404(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newExplainRouter(t, stubLLM{answer: "never"})

	resp := postExplain(t, router, "google:1", `{"id":999,"query":"explique"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestExplainEndpointForeignDocumentIs404(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newExplainRouter(t, stubLLM{answer: "never"})
	docID := seedDocument(t, router, "google:1")

	resp := postExplain(t, router, "google:2", `{"id":`+strconv.FormatInt(docID, 10)+`,"query":"explique"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign document, got %d", resp.Code)
	}
}

func TestExplainEndpointThrottledIs429(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newExplainRouter(t, stubLLM{err: llm.ErrThrottled})
	docID := seedDocument(t, router, "google:1")

	resp := postExplain(t, router, "google:1", `{"id":`+strconv.FormatInt(docID, 10)+`,"query":"explique"}`)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestExplainEndpointValidatesBody(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newExplainRouter(t, stubLLM{answer: "never"})

	for _, payload := range []string{`{}`, `{"id":1}`, `{"query":"q"}`, `not json`} {
		resp := postExplain(t, router, "google:1", payload)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("payload %q: expected 400, got %d", payload, resp.Code)
		}
	}
}
