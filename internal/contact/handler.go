package contact

import (
	"context"
	"encoding/json"
	"net/http"

	"log/slog"

	"prefscale/internal/httpapi"
)

type MessageStore interface {
	Create(ctx context.Context, m *Message) error
}

type Handler struct {
	Store  MessageStore
	Logger *slog.Logger
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Name    string `json:"name"`
		Company string `json:"company"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpapi.WriteError(w, httpapi.BadRequest("Invalid request body"))
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		httpapi.WriteError(w, httpapi.BadRequest("Required fields missing"))
		return
	}

	m := &Message{
		Name:    payload.Name,
		Company: payload.Company,
		Email:   payload.Email,
		Body:    payload.Message,
	}
	if err := h.Store.Create(r.Context(), m); err != nil {
		h.Logger.Error("create contact message", "err", err)
		httpapi.WriteError(w, httpapi.Internal("Failed to send message"))
		return
	}

	httpapi.Message(w, http.StatusOK, "Message sent successfully")
}
