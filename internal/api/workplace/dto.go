package workplace

import "time"

type CreateWorkplaceRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	OwnerID string `json:"-"`
}

type WorkplaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
