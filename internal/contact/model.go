package contact

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Email     string    `json:"email"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
