// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package todo

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/todolist/internal/platform/request"
	"github.com/taibuivan/todolist/internal/platform/respond"
)

// Manager is the service contract used by [Handler].
type Manager interface {
	List(ctx context.Context, userID int64, filter Filter) ([]*Todo, error)
	Get(ctx context.Context, id, userID int64) (*Todo, error)
	Create(ctx context.Context, userID int64, input CreateInput) (*Todo, error)
	Update(ctx context.Context, id, userID int64, input UpdateInput) (*Todo, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Handler implements the todo HTTP endpoints. Routes expect an authenticated
// caller; mount them behind the token guard.
type Handler struct {
	todoService Manager
}

// NewHandler constructs a new [Handler].
func NewHandler(service Manager) *Handler {
	return &Handler{todoService: service}
}

// Routes returns a [chi.Router] with the todo endpoints.
//
// # Endpoints
//   - GET    /      : Lists the caller's todos (?checked=true|false).
//   - POST   /      : Creates a todo.
//   - GET    /{id}  : Returns one todo.
//   - PUT    /{id}  : Partially updates a todo.
//   - DELETE /{id}  : Deletes a todo.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

/*
list handles GET /api/todos.

Response:
  - 200: []Todo
  - 400: Invalid checked filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := ParseFilter(request.URL.Query().Get(FieldChecked))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	todos, err := handler.todoService.List(request.Context(), userID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, todos)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, id, err := owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	todo, err := handler.todoService.Get(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, todo)
}

/*
create handles POST /api/todos.

Request:
  - Body: CreateInput (title, description, checked)

Response:
  - 201: Todo
  - 400: Invalid JSON or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	todo, err := handler.todoService.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, todo)
}

/*
update handles PUT /api/todos/{id}.

Request:
  - Body: UpdateInput (any subset of title, description, checked)

Response:
  - 200: Todo
  - 400: Invalid JSON or validation failure
  - 404: Missing or owned by another user
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, id, err := owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	todo, err := handler.todoService.Update(request.Context(), id, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, todo)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, id, err := owner(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.todoService.Delete(request.Context(), id, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// owner resolves the authenticated user and the {id} path parameter.
func owner(request *http.Request) (userID, id int64, err error) {
	userID, err = requestutil.RequiredUserID(request)
	if err != nil {
		return 0, 0, err
	}
	id, err = requestutil.Int64ID(request, "id", ResourceName)
	if err != nil {
		return 0, 0, err
	}
	return userID, id, nil
}
