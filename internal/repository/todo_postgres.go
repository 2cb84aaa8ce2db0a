package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jaekwang-park/todo-summary/internal/model"
)

const invalidTextRepresentation = "22P02"

type PostgresTodoRepository struct {
	db *sql.DB
}

func NewPostgresTodo(db *sql.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{db: db}
}

const todoColumns = `id, title, description, completed, owner_id, owner_name, created_at`

func (r *PostgresTodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `
		INSERT INTO todos (title, description, completed, owner_id, owner_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.OwnerID, todo.OwnerName,
	)

	return scanTodo(row)
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, todoID string) (model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, todoID)
	return scanTodo(row)
}

func (r *PostgresTodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `
		UPDATE todos
		SET title = $1, description = $2, completed = $3
		WHERE id = $4
		RETURNING ` + todoColumns

	row := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.ID,
	)

	return scanTodo(row)
}

func (r *PostgresTodoRepository) Delete(ctx context.Context, todoID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, todoID)
	if err != nil {
		if isInvalidID(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresTodoRepository) List(ctx context.Context, ownerID string) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (model.Todo, error) {
	var (
		t         model.Todo
		createdAt any
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed,
		&t.OwnerID, &t.OwnerName, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}

	t.CreatedAt, err = NormalizeTimestamp(createdAt)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to normalize created_at: %w", err)
	}
	return t, nil
}

// isInvalidID reports whether Postgres rejected the id as a malformed UUID.
// Such ids cannot exist, so they are treated as not found.
func isInvalidID(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}

// ensure compile-time interface compliance
var _ TodoRepository = (*PostgresTodoRepository)(nil)
