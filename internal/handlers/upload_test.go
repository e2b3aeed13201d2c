package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"xplaindfile/internal/service"
	"xplaindfile/internal/service/mocks"
)

// multipartBody builds a multipart request body with a single file field.
func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploads := mocks.NewMockUploadService(ctrl)
	handler := NewUploadHandler(uploads)

	content := []byte("The capital of France is Paris.")
	uploads.EXPECT().
		Upload(gomock.Any(), "notes.txt", content).
		Return(service.MsgUploaded, nil)

	body, contentType := multipartBody(t, "file", "notes.txt", content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp UploadResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != service.MsgUploaded {
		t.Errorf("expected %q, got %q", service.MsgUploaded, resp.Message)
	}
}

func TestUploadHandler_AlreadyLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploads := mocks.NewMockUploadService(ctrl)
	handler := NewUploadHandler(uploads)

	uploads.EXPECT().
		Upload(gomock.Any(), "second.txt", gomock.Any()).
		Return(service.MsgAlreadyLoaded, nil)

	body, contentType := multipartBody(t, "file", "second.txt", []byte("more text"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp UploadResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != service.MsgAlreadyLoaded {
		t.Errorf("expected %q, got %q", service.MsgAlreadyLoaded, resp.Message)
	}
}

func TestUploadHandler_MissingFileField(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploads := mocks.NewMockUploadService(ctrl)
	handler := NewUploadHandler(uploads)

	// Wrong field name, so FormFile("file") fails.
	body, contentType := multipartBody(t, "document", "notes.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUploadHandler_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploads := mocks.NewMockUploadService(ctrl)
	handler := NewUploadHandler(uploads)

	uploads.EXPECT().
		Upload(gomock.Any(), "slides.pptx", gomock.Any()).
		Return("", &service.ValidationError{Field: "file", Message: "unsupported file type"})

	body, contentType := multipartBody(t, "file", "slides.pptx", []byte("binary"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUploadHandler_ExternalServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploads := mocks.NewMockUploadService(ctrl)
	handler := NewUploadHandler(uploads)

	uploads.EXPECT().
		Upload(gomock.Any(), "notes.txt", gomock.Any()).
		Return("", service.WrapError(service.ErrExternalService, "failed to build index"))

	body, contentType := multipartBody(t, "file", "notes.txt", []byte("text"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, w.Code)
	}
}

func TestUploadHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploads := mocks.NewMockUploadService(ctrl)
	handler := NewUploadHandler(uploads)

	req := httptest.NewRequest(http.MethodGet, "/upload", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}
