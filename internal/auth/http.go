// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/todolist/internal/platform/request"
	"github.com/taibuivan/todolist/internal/platform/respond"
)

// Workflow is the service contract used by [Handler].
type Workflow interface {
	Register(ctx context.Context, input Credentials) (*Session, error)
	Login(ctx context.Context, input Credentials) (*Session, error)
}

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService Workflow
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service Workflow) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns a token.
//   - POST /login    : Authenticates and returns a token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Response Payloads

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type sessionResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func newSessionResponse(message string, session *Session) sessionResponse {
	return sessionResponse{
		Message: message,
		Token:   session.Token,
		User:    userResponse{ID: session.User.ID, Username: session.User.Username},
	}
}

/*
register handles the creation of a new user account.

POST /api/auth/register

Request:
  - Body: Credentials (username, password)

Response:
  - 201: sessionResponse
  - 400: Invalid JSON or validation failure
  - 409: Username already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newSessionResponse(MsgRegistered, session))
}

/*
login authenticates a user by username and password.

POST /api/auth/login

Request:
  - Body: Credentials (username, password)

Response:
  - 200: sessionResponse
  - 400: Invalid JSON or validation failure
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input Credentials
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newSessionResponse(MsgLoggedIn, session))
}
