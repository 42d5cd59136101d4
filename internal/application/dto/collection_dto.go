package dto

import "time"

// CollectionRequest entrada para crear o reemplazar una colección.
type CollectionRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
}

// CollectionResponse salida de una colección.
type CollectionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionListResponse lista paginada.
type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
	Page  PageMeta             `json:"page"`
}
