package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

// fakeRow copies fixed values into Scan destinations, or fails with err.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		case *any:
			*p = r.values[i]
		default:
			return fmt.Errorf("unexpected destination %T", d)
		}
	}
	return nil
}

func TestScanTodo(t *testing.T) {
	created := time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC)

	tests := []struct {
		name    string
		row     fakeRow
		wantErr error
		wantAt  string
	}{
		{
			name:   "row",
			row:    fakeRow{values: []any{"id-1", "Buy milk", "2 liters", false, "alice", "alice@example.com", created}},
			wantAt: "2026-03-04T05:06:07.890Z",
		},
		{
			name:    "no rows",
			row:     fakeRow{err: sql.ErrNoRows},
			wantErr: ErrNotFound,
		},
		{
			name:    "malformed uuid",
			row:     fakeRow{err: &pq.Error{Code: invalidTextRepresentation}},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todo, err := scanTodo(tt.row)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if todo.ID != "id-1" || todo.OwnerName != "alice@example.com" || todo.CreatedAt != tt.wantAt {
				t.Errorf("unexpected todo %+v", todo)
			}
		})
	}
}

func TestScanTodo_OtherErrorsAreWrapped(t *testing.T) {
	cause := &pq.Error{Code: "57P01"}
	_, err := scanTodo(fakeRow{err: cause})

	if errors.Is(err, ErrNotFound) {
		t.Fatal("expected a non-NotFound error")
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		t.Fatalf("expected wrapped *pq.Error, got %v", err)
	}
}
