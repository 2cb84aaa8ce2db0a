package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jaekwang-park/todo-summary/internal/cognito"
	todohttp "github.com/jaekwang-park/todo-summary/internal/http"
	"github.com/jaekwang-park/todo-summary/internal/middleware"
	"github.com/jaekwang-park/todo-summary/internal/model"
	"github.com/jaekwang-park/todo-summary/internal/repository"
	"github.com/jaekwang-park/todo-summary/internal/service"
	"github.com/jaekwang-park/todo-summary/internal/summarizer"
)

// stubCognitoClient only answers Login.
type stubCognitoClient struct{}

func (s *stubCognitoClient) SignUp(ctx context.Context, input cognito.SignUpInput) (cognito.SignUpOutput, error) {
	return cognito.SignUpOutput{}, fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) ConfirmSignUp(ctx context.Context, input cognito.ConfirmSignUpInput) error {
	return fmt.Errorf("not implemented")
}
func (s *stubCognitoClient) Login(ctx context.Context, input cognito.LoginInput) (cognito.Tokens, error) {
	return cognito.Tokens{IDToken: "id"}, nil
}
func (s *stubCognitoClient) RefreshTokens(ctx context.Context, input cognito.RefreshInput) (cognito.Tokens, error) {
	return cognito.Tokens{}, fmt.Errorf("not implemented")
}

type echoSummarizer struct{}

func (echoSummarizer) Summarize(ctx context.Context, items []summarizer.Item) (string, error) {
	return items[0].Title, nil
}

type okNotifier struct{}

func (okNotifier) Notify(ctx context.Context, text string) (bool, error) { return true, nil }

func newTestRouter(t *testing.T, withAuth bool) http.Handler {
	t.Helper()
	repo := repository.NewMemoryTodo()
	svcs := todohttp.Services{
		Todos:     service.NewTodoService(repo),
		Summaries: service.NewSummaryService(repo, echoSummarizer{}, okNotifier{}),
	}
	if withAuth {
		svcs.Auth = service.NewAuthService(&stubCognitoClient{})
	}

	auth, err := middleware.NewAuth(middleware.AuthConfig{DevMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return todohttp.NewRouter(svcs, auth.Middleware)
}

func do(router http.Handler, method, path string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
		req.Header.Set("X-User-Email", userID+"@example.com")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		path         string
		wantStatus   int
		wantContains string
	}{
		{"/", http.StatusOK, "Todo Summary Assistant API is running"},
		{"/health", http.StatusOK, `"status":"ok"`},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/app/", http.StatusOK, "<title>Todo Summary Assistant</title>"},
		{"/app", http.StatusMovedPermanently, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(router, http.MethodGet, tt.path, nil, "")

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			body, _ := io.ReadAll(w.Body)
			if !strings.Contains(string(body), tt.wantContains) {
				t.Errorf("expected body to contain %q", tt.wantContains)
			}
		})
	}
}

func TestRouter_ProtectedEndpointsRequireAuth(t *testing.T) {
	router := newTestRouter(t, false)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/todos"},
		{http.MethodPost, "/todos"},
		{http.MethodGet, "/todos/abc"},
		{http.MethodPut, "/todos/abc"},
		{http.MethodPatch, "/todos/abc"},
		{http.MethodDelete, "/todos/abc"},
		{http.MethodPost, "/summarize"},
		{http.MethodPost, "/summarize/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(router, tt.method, tt.path, nil, "")
			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestRouter_TodoLifecycle(t *testing.T) {
	router := newTestRouter(t, false)

	w := do(router, http.MethodPost, "/todos", map[string]string{"title": "Buy milk", "description": "2 liters"}, "alice")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (body: %s)", w.Code, w.Body.String())
	}
	var created model.Todo
	json.NewDecoder(w.Body).Decode(&created)
	if created.OwnerID != "alice" || created.Completed {
		t.Fatalf("unexpected created todo %+v", created)
	}

	if w := do(router, http.MethodGet, "/todos/"+created.ID, nil, "bob"); w.Code != http.StatusForbidden {
		t.Errorf("get by other user: expected 403, got %d", w.Code)
	}

	if w := do(router, http.MethodPatch, "/todos/"+created.ID, map[string]bool{"completed": true}, "alice"); w.Code != http.StatusOK {
		t.Errorf("patch: expected 200, got %d", w.Code)
	}

	if w := do(router, http.MethodPost, "/summarize/"+created.ID, nil, "alice"); w.Code != http.StatusBadRequest {
		t.Errorf("summarize completed: expected 400, got %d", w.Code)
	}

	if w := do(router, http.MethodPatch, "/todos/"+created.ID, map[string]bool{"completed": false}, "alice"); w.Code != http.StatusOK {
		t.Errorf("reopen: expected 200, got %d", w.Code)
	}

	w = do(router, http.MethodPost, "/summarize", nil, "alice")
	if w.Code != http.StatusOK {
		t.Fatalf("summarize all: expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var result model.SummaryResult
	json.NewDecoder(w.Body).Decode(&result)
	if !result.Success || result.Summary != "Buy milk" || !result.SentToSlack {
		t.Errorf("unexpected summary result %+v", result)
	}

	if w := do(router, http.MethodDelete, "/todos/"+created.ID, nil, "alice"); w.Code != http.StatusOK {
		t.Errorf("delete: expected 200, got %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/todos/"+created.ID, nil, "alice"); w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}
}

func TestRouter_AuthRoutesOnlyWhenConfigured(t *testing.T) {
	body := map[string]string{"email": "a@example.com", "password": "pw"}

	if w := do(newTestRouter(t, false), http.MethodPost, "/auth/login", body, ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without auth service, got %d", w.Code)
	}

	w := do(newTestRouter(t, true), http.MethodPost, "/auth/login", body, "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with auth service, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	router := newTestRouter(t, false)

	w := do(router, http.MethodGet, "/unknown", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404, got %q", ct)
	}

	if w := do(router, http.MethodPut, "/health", nil, ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}
