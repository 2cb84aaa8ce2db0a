package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaekwang-park/todo-summary/internal/model"
)

type storedTodo struct {
	todo      model.Todo
	createdAt time.Time
}

// MemoryTodoRepository keeps todos in process memory. It backs local
// development runs and tests; data is lost on restart.
type MemoryTodoRepository struct {
	mu    sync.RWMutex
	todos map[string]storedTodo
	order []string
	now   func() time.Time
}

func NewMemoryTodo() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		todos: make(map[string]storedTodo),
		now:   time.Now,
	}
}

func (r *MemoryTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	createdAt := r.now()
	todo.ID = uuid.NewString()
	stored := storedTodo{todo: todo, createdAt: createdAt}
	r.todos[todo.ID] = stored
	r.order = append(r.order, todo.ID)

	return stored.view()
}

func (r *MemoryTodoRepository) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.todos[todoID]
	if !ok {
		return model.Todo{}, ErrNotFound
	}
	return stored.view()
}

func (r *MemoryTodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.todos[todo.ID]
	if !ok {
		return model.Todo{}, ErrNotFound
	}

	stored.todo.Title = todo.Title
	stored.todo.Description = todo.Description
	stored.todo.Completed = todo.Completed
	r.todos[todo.ID] = stored

	return stored.view()
}

func (r *MemoryTodoRepository) Delete(ctx context.Context, todoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[todoID]; !ok {
		return ErrNotFound
	}
	delete(r.todos, todoID)
	for i, id := range r.order {
		if id == todoID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryTodoRepository) List(ctx context.Context, ownerID string) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := []model.Todo{}
	for _, id := range r.order {
		stored := r.todos[id]
		if stored.todo.OwnerID != ownerID {
			continue
		}
		todo, err := stored.view()
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

func (s storedTodo) view() (model.Todo, error) {
	todo := s.todo
	createdAt, err := NormalizeTimestamp(s.createdAt)
	if err != nil {
		return model.Todo{}, err
	}
	todo.CreatedAt = createdAt
	return todo, nil
}

var _ TodoRepository = (*MemoryTodoRepository)(nil)
