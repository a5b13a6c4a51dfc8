package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vaughan-dsouza/GoTodo/internal/models"
)

// ListTodosByOwner returns the caller's todos in insertion order.
// An empty result is not an error.
func (s *Store) ListTodosByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	todos := []models.Todo{}
	err := s.q.SelectContext(ctx, &todos, `
		SELECT id, title, description, priority, completed, owner_id
		FROM todos
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	return todos, err
}

// ListAllTodos returns every todo regardless of owner. Admin only.
func (s *Store) ListAllTodos(ctx context.Context) ([]models.Todo, error) {
	todos := []models.Todo{}
	err := s.q.SelectContext(ctx, &todos, `
		SELECT id, title, description, priority, completed, owner_id
		FROM todos
		ORDER BY id
	`)
	return todos, err
}

// GetTodo fetches one todo through the ownership filter. A todo that
// belongs to someone else reads the same as one that does not exist.
func (s *Store) GetTodo(ctx context.Context, id, ownerID int64) (*models.Todo, error) {
	var todo models.Todo
	err := s.q.GetContext(ctx, &todo, `
		SELECT id, title, description, priority, completed, owner_id
		FROM todos
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// CreateTodo persists todo and fills in the server-assigned id.
func (s *Store) CreateTodo(ctx context.Context, todo *models.Todo) error {
	return s.q.QueryRowxContext(ctx, `
		INSERT INTO todos (title, description, priority, completed, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, todo.Title, todo.Description, todo.Priority, todo.Completed, todo.OwnerID).
		Scan(&todo.ID)
}

// UpdateTodo replaces every mutable field of the owner's todo.
func (s *Store) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE todos
		SET title=$1, description=$2, priority=$3, completed=$4
		WHERE id=$5 AND owner_id=$6
	`, todo.Title, todo.Description, todo.Priority, todo.Completed, todo.ID, todo.OwnerID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// DeleteTodo removes the owner's todo. A repeat delete reports ErrNotFound.
func (s *Store) DeleteTodo(ctx context.Context, id, ownerID int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM todos WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// DeleteTodoAny removes a todo without an ownership filter. Admin only.
func (s *Store) DeleteTodoAny(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM todos WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
