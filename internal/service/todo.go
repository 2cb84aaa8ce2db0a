package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todo-summary/internal/model"
	"github.com/jaekwang-park/todo-summary/internal/repository"
)

type CreateTodoInput struct {
	Title       string
	Description string
	Completed   *bool
}

type UpdateTodoInput struct {
	Title       string
	Description string
}

type TodoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) Create(ctx context.Context, caller model.Identity, input CreateTodoInput) (model.Todo, error) {
	if input.Title == "" || input.Description == "" {
		return model.Todo{}, fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}

	todo := model.Todo{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     caller.ID,
		OwnerName:   caller.DisplayName(),
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}
	return created, nil
}

func (s *TodoService) List(ctx context.Context, caller model.Identity) ([]model.Todo, error) {
	todos, err := s.repo.List(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (s *TodoService) GetByID(ctx context.Context, caller model.Identity, todoID string) (model.Todo, error) {
	return loadOwned(ctx, s.repo, caller, todoID, "view")
}

// Update replaces title and description. Existence and ownership are
// checked before the fields are validated.
func (s *TodoService) Update(ctx context.Context, caller model.Identity, todoID string, input UpdateTodoInput) (model.Todo, error) {
	existing, err := loadOwned(ctx, s.repo, caller, todoID, "update")
	if err != nil {
		return model.Todo{}, err
	}

	if input.Title == "" || input.Description == "" {
		return model.Todo{}, fmt.Errorf("%w: title and description are required", ErrInvalidInput)
	}

	existing.Title = input.Title
	existing.Description = input.Description
	return s.save(ctx, existing)
}

// SetCompleted changes only the completed flag.
func (s *TodoService) SetCompleted(ctx context.Context, caller model.Identity, todoID string, completed bool) (model.Todo, error) {
	existing, err := loadOwned(ctx, s.repo, caller, todoID, "update")
	if err != nil {
		return model.Todo{}, err
	}

	existing.Completed = completed
	return s.save(ctx, existing)
}

func (s *TodoService) Delete(ctx context.Context, caller model.Identity, todoID string) error {
	if _, err := loadOwned(ctx, s.repo, caller, todoID, "delete"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, todoID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) save(ctx context.Context, todo model.Todo) (model.Todo, error) {
	updated, err := s.repo.Update(ctx, todo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return updated, nil
}

// loadOwned fetches a todo and fails with ErrForbidden unless caller owns it.
func loadOwned(ctx context.Context, repo repository.TodoRepository, caller model.Identity, todoID, action string) (model.Todo, error) {
	todo, err := repo.GetByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}

	if !todo.OwnedBy(caller.ID) {
		return model.Todo{}, fmt.Errorf("%w: not authorized to %s this todo", ErrForbidden, action)
	}
	return todo, nil
}
