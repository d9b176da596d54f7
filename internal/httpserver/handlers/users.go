package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/bio/internal/auth"
	"github.com/MrSnakeDoc/bio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bio/internal/logger"
	redisstore "github.com/MrSnakeDoc/bio/internal/store/redis"
	"github.com/MrSnakeDoc/bio/internal/validate"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"required,min=2,max=32,username"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type validationResponse struct {
	Message string                `json:"message"`
	Errors  []validate.FieldError `json:"errors"`
}

// Register creates an account and returns a session for it.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Email, password, and username are required.")
			return
		}
		if !writeValidation(w, validate.Struct(req), "Email, password, and username are required.") {
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			d.Logger.Error("failed to hash password", logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not register user.")
			return
		}

		user := redisstore.User{
			ID:           d.NewID(),
			Email:        redisstore.NormalizeEmail(req.Email),
			Username:     req.Username,
			PasswordHash: hash,
			CreatedAt:    d.TimeNow().UTC(),
		}
		switch err := d.Store.CreateUser(r.Context(), user); {
		case errors.Is(err, redisstore.ErrEmailTaken):
			writeMessage(w, http.StatusConflict, "Email address already in use.")
			return
		case errors.Is(err, redisstore.ErrUsernameTaken):
			writeMessage(w, http.StatusConflict, "Username already taken.")
			return
		case err != nil:
			d.Logger.Error("failed to create user", logger.String("user", user.Username), logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not register user.")
			return
		}

		d.Metrics.Registrations.Inc()
		d.Logger.Info("user registered", logger.String("user", user.Username))
		writeSession(w, d, http.StatusCreated, user)
	}
}

// Login checks credentials and returns a session.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Email and password are required.")
			return
		}
		if !writeValidation(w, validate.Struct(req), "Email and password are required.") {
			return
		}

		user, err := d.Store.GetUserByEmail(r.Context(), req.Email)
		if err == nil {
			err = auth.CheckPassword(user.PasswordHash, req.Password)
		}
		switch {
		case errors.Is(err, redisstore.ErrNotFound), errors.Is(err, auth.ErrBadCredentials):
			d.Metrics.Logins.WithLabelValues("rejected").Inc()
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		case err != nil:
			d.Metrics.Logins.WithLabelValues("error").Inc()
			d.Logger.Error("failed to log in", logger.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not log in.")
			return
		}

		d.Metrics.Logins.WithLabelValues("ok").Inc()
		writeSession(w, d, http.StatusOK, user)
	}
}

func writeSession(w http.ResponseWriter, d deps.Deps, status int, user redisstore.User) {
	token, err := d.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		d.Logger.Error("failed to issue token", logger.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error. Could not create session.")
		return
	}
	writeJSON(w, status, sessionResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Email: user.Email, Username: user.Username},
	})
}

// writeValidation answers 400 for a *validate.ValidationError and reports
// whether the request may proceed.
func writeValidation(w http.ResponseWriter, err error, msg string) bool {
	if err == nil {
		return true
	}
	resp := validationResponse{Message: msg}
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return false
}
