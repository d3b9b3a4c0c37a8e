package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ocr-backend/internal/bootstrap"
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

func newTestRouter(t *testing.T) *gin.Engine {
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
		bootstrap.WithExtractor(staticExtractor{text: "conteúdo reconhecido"}),
	)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return server.NewRouter(app)
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Identity{ID: userID, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return "Bearer " + token
}

func multipartUpload(t *testing.T, docName, fileName string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(payload); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if docName != "" {
		if err := writer.WriteField("name", docName); err != nil {
			t.Fatalf("write name field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadEndpointCreatesDocument(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(t)

	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 32)...)
	body, contentType := multipartUpload(t, "Nota fiscal", "nota.png", payload)

	req := httptest.NewRequest(http.MethodPost, "/ocr/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, "google:1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}

	var created struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Text    string `json:"text"`
		FileURL string `json:"fileUrl"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == 0 || created.FileURL == "" {
		t.Fatalf("expected generated id and file url, got %+v", created)
	}
	if created.Name != "Nota fiscal" || created.Text != "conteúdo reconhecido" || created.UserID != "google:1" {
		t.Fatalf("unexpected document: %+v", created)
	}
}

func TestUploadEndpointRejectsUnsupportedType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "", "notes.txt", []byte("just text"))

	req := httptest.NewRequest(http.MethodPost, "/ocr/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerToken(t, "google:1"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", resp.Code, resp.Body.String())
	}
}

func TestUploadEndpointRequiresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(t)

	body, contentType := multipartUpload(t, "", "nota.png", pngHeader)

	req := httptest.NewRequest(http.MethodPost, "/ocr/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestListEndpointPaginatesAndScopes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newTestRouter(t)

	upload := func(userID string, n int) {
		for i := 0; i < n; i++ {
			payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, i)...)
			body, contentType := multipartUpload(t, fmt.Sprintf("doc %d", i), "f.png", payload)
			req := httptest.NewRequest(http.MethodPost, "/ocr/upload", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", bearerToken(t, userID))
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != http.StatusCreated {
				t.Fatalf("seed upload %d for %s: got %d (%s)", i, userID, resp.Code, resp.Body.String())
			}
		}
	}
	upload("google:1", 7)
	upload("google:2", 1)

	list := func(userID, query string) (int, struct {
		Documents []struct {
			UserID string `json:"userId"`
		} `json:"documents"`
		CurrentPage int `json:"currentPage"`
		TotalPages  int `json:"totalPages"`
	}) {
		req := httptest.NewRequest(http.MethodGet, "/ocr/list"+query, nil)
		req.Header.Set("Authorization", bearerToken(t, userID))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		var out struct {
			Documents []struct {
				UserID string `json:"userId"`
			} `json:"documents"`
			CurrentPage int `json:"currentPage"`
			TotalPages  int `json:"totalPages"`
		}
		if resp.Code == http.StatusOK {
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatalf("decode list response: %v", err)
			}
		}
		return resp.Code, out
	}

	code, page1 := list("google:1", "")
	if code != http.StatusOK {
		t.Fatalf("list page 1: expected 200, got %d", code)
	}
	if len(page1.Documents) != 6 || page1.CurrentPage != 1 || page1.TotalPages != 2 {
		t.Fatalf("unexpected page 1: docs=%d current=%d total=%d", len(page1.Documents), page1.CurrentPage, page1.TotalPages)
	}

	code, page2 := list("google:1", "?page=2")
	if code != http.StatusOK {
		t.Fatalf("list page 2: expected 200, got %d", code)
	}
	if len(page2.Documents) != 1 || page2.CurrentPage != 2 {
		t.Fatalf("unexpected page 2: docs=%d current=%d", len(page2.Documents), page2.CurrentPage)
	}

	// The second user only ever sees their own uploads.
	code, other := list("google:2", "")
	if code != http.StatusOK {
		t.Fatalf("list other owner: expected 200, got %d", code)
	}
	if len(other.Documents) != 1 || other.TotalPages != 1 {
		t.Fatalf("unexpected listing for second owner: docs=%d total=%d", len(other.Documents), other.TotalPages)
	}
	for _, doc := range other.Documents {
		if doc.UserID != "google:2" {
			t.Fatalf("listing leaked document owned by %q", doc.UserID)
		}
	}
}
