package repository

import (
	"context"
	"errors"

	"github.com/jaekwang-park/todo-summary/internal/model"
)

// ErrNotFound is returned when no todo matches the given id.
var ErrNotFound = errors.New("todo not found")

// TodoRepository stores todo documents. Implementations do not enforce
// ownership; callers compare OwnerID themselves.
type TodoRepository interface {
	Create(ctx context.Context, todo model.Todo) (model.Todo, error)
	GetByID(ctx context.Context, todoID string) (model.Todo, error)
	Update(ctx context.Context, todo model.Todo) (model.Todo, error)
	Delete(ctx context.Context, todoID string) error
	List(ctx context.Context, ownerID string) ([]model.Todo, error)
}
