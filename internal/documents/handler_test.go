package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"humanizer-backend/internal/bootstrap"
	"humanizer-backend/internal/shared/auth"
	"humanizer-backend/internal/shared/config"
)

const publicBase = "http://localhost:8080"

func newApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "documents-test-secret")

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		PublicBaseURL:   publicBase,
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(userID, auth.Claims{Email: userID + "@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + token
}

func upload(t *testing.T, router http.Handler, token, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func do(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type documentBody struct {
	DocumentID    string `json:"documentId"`
	FileName      string `json:"fileName"`
	FileType      string `json:"fileType"`
	FileURL       string `json:"fileUrl"`
	ExtractedText string `json:"extractedText"`
}

func TestDocumentsUploadExtractAndFetch(t *testing.T) {
	router := newApp(t)
	token := bearer(t, "user-1")
	content := "hello world\r\nfrom a plain text essay"

	resp := upload(t, router, token, "essay.txt", []byte(content))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created documentBody
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" || created.FileType != "text/plain" {
		t.Fatalf("unexpected document %+v", created)
	}
	if !strings.HasPrefix(created.FileURL, publicBase+"/files/") || !strings.HasSuffix(created.FileURL, ".txt") {
		t.Fatalf("unexpected file url %q", created.FileURL)
	}

	served := do(router, http.MethodGet, strings.TrimPrefix(created.FileURL, publicBase), "")
	if served.Code != http.StatusOK || served.Body.String() != content {
		t.Fatalf("expected stored file to be served, got %d %q", served.Code, served.Body.String())
	}

	extracted := do(router, http.MethodPost, "/api/v1/documents/"+created.DocumentID+"/extract", token)
	if extracted.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", extracted.Code, extracted.Body.String())
	}
	var withText documentBody
	if err := json.NewDecoder(extracted.Body).Decode(&withText); err != nil {
		t.Fatalf("decode extract response: %v", err)
	}
	if withText.ExtractedText != "hello world\nfrom a plain text essay" {
		t.Fatalf("unexpected extracted text %q", withText.ExtractedText)
	}

	fetched := do(router, http.MethodGet, "/api/v1/documents/"+created.DocumentID, token)
	if fetched.Code != http.StatusOK || !strings.Contains(fetched.Body.String(), "plain text essay") {
		t.Fatalf("expected cached text, got %d: %s", fetched.Code, fetched.Body.String())
	}

	other := do(router, http.MethodGet, "/api/v1/documents/"+created.DocumentID, bearer(t, "user-2"))
	if other.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user, got %d", other.Code)
	}

	list := do(router, http.MethodGet, "/api/v1/documents", token)
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), created.DocumentID) {
		t.Fatalf("expected list to include document, got %d: %s", list.Code, list.Body.String())
	}
}

func TestDocumentsRejectsUnsupportedAndAnonymous(t *testing.T) {
	router := newApp(t)

	resp := upload(t, router, bearer(t, "user-1"), "slides.pptx", []byte("binary"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported type, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Only .txt, .md, .docx, and .pdf files are supported.") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}

	resp = upload(t, router, "", "essay.txt", []byte("hello"))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.Code)
	}
}
