// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/taibuivan/todolist/internal/platform/dberr"
	"github.com/taibuivan/todolist/internal/platform/postgres"
)

const todoColumns = `id, title, description, checked, user_id, created_at, updated_at`

// # Todo Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns the user's todos, newest first.

Parameters:
  - context: context.Context
  - userID: int64 (owner)
  - filter: Filter (optional checked state)

Returns:
  - []*Todo: Never nil
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, userID int64, filter Filter) ([]*Todo, error) {
	const query = `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1 AND ($2::boolean IS NULL OR checked = $2)
		ORDER BY created_at DESC, id DESC`

	rows, err := repository.db.Query(context, query, userID, filter.Checked)
	if err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").With("user_id", userID).Wrap(err)
	}

	todos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Todo, error) {
		return scanTodo(row)
	})
	if err != nil {
		return nil, oops.Code("TODO_LIST_FAILED").With("user_id", userID).Wrap(err)
	}
	if todos == nil {
		todos = []*Todo{}
	}

	return todos, nil
}

// FindByID retrieves a single todo owned by userID.
func (repository *PostgresRepository) FindByID(context context.Context, id, userID int64) (*Todo, error) {
	const query = `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE id = $1 AND user_id = $2`

	todo, err := scanTodo(repository.db.QueryRow(context, query, id, userID))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("TODO_FIND_FAILED").With("todo_id", id).With("user_id", userID).Wrap(err)
	}
	return todo, nil
}

/*
Create persists a new todo for userID.

Parameters:
  - context: context.Context
  - userID: int64 (owner)
  - draft: Draft (validated input)

Returns:
  - *Todo: The persisted entity with generated ID and timestamps
  - error: Database errors
*/
func (repository *PostgresRepository) Create(context context.Context, userID int64, draft Draft) (*Todo, error) {
	const query = `
		INSERT INTO todos (title, description, checked, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + todoColumns

	todo, err := scanTodo(repository.db.QueryRow(context, query,
		draft.Title, draft.Description, draft.Checked, userID,
	))
	if err != nil {
		return nil, oops.Code("TODO_CREATE_FAILED").With("user_id", userID).Wrap(err)
	}
	return todo, nil
}

/*
Update applies patch to the todo identified by id and userID in one statement.

Absent fields keep their stored value. A row owned by another user is not
touched and yields ErrNotFound.

Parameters:
  - context: context.Context
  - id: int64
  - userID: int64 (owner)
  - patch: Patch

Returns:
  - *Todo: The updated entity
  - error: ErrNotFound or database errors
*/
func (repository *PostgresRepository) Update(context context.Context, id, userID int64, patch Patch) (*Todo, error) {
	const query = `
		UPDATE todos SET
			title       = COALESCE($3, title),
			description = CASE WHEN $4::boolean THEN $5 ELSE description END,
			checked     = COALESCE($6, checked),
			updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	todo, err := scanTodo(repository.db.QueryRow(context, query,
		id, userID, patch.Title, patch.SetDescription, patch.Description, patch.Checked,
	))
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, oops.Code("TODO_UPDATE_FAILED").With("todo_id", id).With("user_id", userID).Wrap(err)
	}
	return todo, nil
}

// Delete removes the todo identified by id and userID.
func (repository *PostgresRepository) Delete(context context.Context, id, userID int64) error {
	const query = `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	tag, err := repository.db.Exec(context, query, id, userID)
	if err != nil {
		return oops.Code("TODO_DELETE_FAILED").With("todo_id", id).With("user_id", userID).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// # Helpers

func scanTodo(row pgx.Row) (*Todo, error) {
	todo := &Todo{}
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Checked,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}
