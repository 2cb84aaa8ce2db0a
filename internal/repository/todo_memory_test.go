package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaekwang-park/todo-summary/internal/model"
	"github.com/jaekwang-park/todo-summary/internal/repository"
)

func TestMemoryTodo_CreateAndGet(t *testing.T) {
	repo := repository.NewMemoryTodo()
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Todo{
		Title:       "A",
		Description: "B",
		OwnerID:     "user-1",
		OwnerName:   "a@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt == "" {
		t.Fatal("expected createdAt to be set")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != created {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, created)
	}
}

func TestMemoryTodo_UpdateKeepsImmutableFields(t *testing.T) {
	repo := repository.NewMemoryTodo()
	ctx := context.Background()

	created, _ := repo.Create(ctx, model.Todo{Title: "A", Description: "B", OwnerID: "user-1", OwnerName: "one"})

	updated, err := repo.Update(ctx, model.Todo{
		ID:          created.ID,
		Title:       "A2",
		Description: "B2",
		Completed:   true,
		OwnerID:     "intruder",
		OwnerName:   "intruder",
		CreatedAt:   "1999-01-01T00:00:00.000Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Title != "A2" || updated.Description != "B2" || !updated.Completed {
		t.Errorf("mutable fields not applied: %+v", updated)
	}
	if updated.OwnerID != "user-1" || updated.OwnerName != "one" {
		t.Errorf("owner changed: %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("createdAt changed: got %s, want %s", updated.CreatedAt, created.CreatedAt)
	}
}

func TestMemoryTodo_NotFound(t *testing.T) {
	repo := repository.NewMemoryTodo()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Update(ctx, model.Todo{ID: "missing"}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryTodo_ListFiltersByOwner(t *testing.T) {
	repo := repository.NewMemoryTodo()
	ctx := context.Background()

	first, _ := repo.Create(ctx, model.Todo{Title: "1", Description: "d", OwnerID: "user-1"})
	repo.Create(ctx, model.Todo{Title: "2", Description: "d", OwnerID: "user-2"})
	third, _ := repo.Create(ctx, model.Todo{Title: "3", Description: "d", OwnerID: "user-1"})

	got, err := repo.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != third.ID {
		t.Errorf("expected insertion order, got %s, %s", got[0].ID, got[1].ID)
	}

	none, err := repo.List(ctx, "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", none)
	}
}

func TestMemoryTodo_Delete(t *testing.T) {
	repo := repository.NewMemoryTodo()
	ctx := context.Background()

	created, _ := repo.Create(ctx, model.Todo{Title: "A", Description: "B", OwnerID: "user-1"})

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected deleted todo to be gone, got %v", err)
	}
	list, _ := repo.List(ctx, "user-1")
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(list))
	}
}
