package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jaekwang-park/todo-summary/internal/http/handler"
	"github.com/jaekwang-park/todo-summary/internal/middleware"
	"github.com/jaekwang-park/todo-summary/internal/model"
	"github.com/jaekwang-park/todo-summary/internal/repository"
	"github.com/jaekwang-park/todo-summary/internal/service"
)

var (
	alice = model.Identity{ID: "user-1", Email: "alice@example.com"}
	bob   = model.Identity{ID: "user-2", Email: "bob@example.com"}
)

// newRequest builds a request as the auth middleware and chi would hand it
// to a handler.
func newRequest(method, target string, body any, caller model.Identity, params map[string]string) *http.Request {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}

	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.SetIdentity(ctx, caller)
	return r.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorBody {
	t.Helper()
	var result handler.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result.Error
}

func seedTodo(t *testing.T, repo repository.TodoRepository, owner model.Identity, title string, completed bool) model.Todo {
	t.Helper()
	svc := service.NewTodoService(repo)
	todo, err := svc.Create(context.Background(), owner, service.CreateTodoInput{
		Title:       title,
		Description: title + " details",
		Completed:   &completed,
	})
	if err != nil {
		t.Fatalf("failed to seed todo: %v", err)
	}
	return todo
}
