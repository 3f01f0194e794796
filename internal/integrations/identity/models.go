package identity

import "github.com/google/uuid"

// User модель пользователя из сервиса идентификации
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
	Role  string    `json:"role,omitempty"`
}
