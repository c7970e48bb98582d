package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"prefscale/internal/httpapi"
)

type SignupHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Name     string `json:"name"`
		Company  string `json:"company"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, httpapi.BadRequest("Invalid request body"))
		return
	}
	err := h.Service.Register(r.Context(), payload.Name, payload.Company, payload.Email, payload.Password)
	switch {
	case err == nil:
		httpapi.Message(w, http.StatusOK, "Signup successful")
	case errors.Is(err, ErrInvalidInput):
		httpapi.WriteError(w, httpapi.BadRequest("All fields are required"))
	case errors.Is(err, ErrDuplicateEmail):
		httpapi.WriteError(w, httpapi.BadRequest("Email already exists"))
	default:
		h.Logger.Error("register account", "err", err)
		httpapi.WriteError(w, httpapi.Internal("Signup failed"))
	}
}

type LoginHandler struct {
	Service *Service
	Logger  *slog.Logger
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, httpapi.BadRequest("Invalid request body"))
		return
	}
	session, err := h.Service.Authenticate(r.Context(), payload.Email, payload.Password)
	switch {
	case err == nil:
		resp := map[string]interface{}{
			"token": session.Token,
			"role":  session.Role,
		}
		if session.Name != "" {
			resp["name"] = session.Name
		}
		httpapi.JSON(w, http.StatusOK, resp)
	case errors.Is(err, ErrMissingCredentials):
		httpapi.WriteError(w, httpapi.BadRequest("Missing credentials"))
	case errors.Is(err, ErrInvalidCredentials):
		httpapi.WriteError(w, httpapi.BadRequest("Invalid credentials"))
	default:
		h.Logger.Error("login", "err", err)
		httpapi.WriteError(w, httpapi.Unavailable("Server busy, retry later"))
	}
}
