package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"xplaindfile/internal/rag"
	"xplaindfile/internal/service"
	"xplaindfile/internal/service/mocks"
)

func TestChatHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		body          any
		mockSetup     func(*mocks.MockChatService)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "answer from document",
			method: http.MethodPost,
			body:   ChatRequest{Question: "What is the capital of France?"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Chat(gomock.Any(), "What is the capital of France?").
					Return(rag.Answer{Text: "Paris is the capital of France.", Source: rag.SourceFile}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ChatResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Answer != "Paris is the capital of France." {
					t.Errorf("unexpected answer %q", resp.Answer)
				}
				if resp.Source != "file" {
					t.Errorf("expected source %q, got %q", "file", resp.Source)
				}
			},
		},
		{
			name:   "no document loaded",
			method: http.MethodPost,
			body:   ChatRequest{Question: "anything"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Chat(gomock.Any(), "anything").
					Return(rag.Answer{Text: "No file is uploaded yet.", Source: rag.SourceSystem}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ChatResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Source != "system" {
					t.Errorf("expected source %q, got %q", "system", resp.Source)
				}
			},
		},
		{
			name:       "method not allowed",
			method:     http.MethodGet,
			mockSetup:  func(m *mocks.MockChatService) {},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "invalid JSON body",
			method:     http.MethodPost,
			body:       "not json",
			mockSetup:  func(m *mocks.MockChatService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "empty question",
			method: http.MethodPost,
			body:   ChatRequest{Question: ""},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Chat(gomock.Any(), "").
					Return(rag.Answer{}, &service.ValidationError{Field: "question", Message: "question cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "external service error",
			method: http.MethodPost,
			body:   ChatRequest{Question: "anything"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Chat(gomock.Any(), "anything").
					Return(rag.Answer{}, service.WrapError(service.ErrExternalService, "failed to answer question"))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:   "unexpected error",
			method: http.MethodPost,
			body:   ChatRequest{Question: "anything"},
			mockSetup: func(m *mocks.MockChatService) {
				m.EXPECT().
					Chat(gomock.Any(), "anything").
					Return(rag.Answer{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			chats := mocks.NewMockChatService(ctrl)
			tt.mockSetup(chats)
			handler := NewChatHandler(chats)

			var body bytes.Buffer
			if tt.body != nil {
				if s, ok := tt.body.(string); ok {
					body.WriteString(s)
				} else if err := json.NewEncoder(&body).Encode(tt.body); err != nil {
					t.Fatalf("failed to encode body: %v", err)
				}
			}

			req := httptest.NewRequest(tt.method, "/chat", &body)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
