package dto

import (
	"encoding/json"
	"time"
)

// ActivityLogResponse entrada del log de actividad.
type ActivityLogResponse struct {
	ID         string          `json:"id"`
	UserID     *string         `json:"user_id"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id"`
	Details    json.RawMessage `json:"details,omitempty"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ActivityLogListResponse lista paginada.
type ActivityLogListResponse struct {
	Items []ActivityLogResponse `json:"items"`
	Page  PageMeta              `json:"page"`
}
