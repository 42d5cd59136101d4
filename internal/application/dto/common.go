package dto

import "math"

// Envelope cuerpo estándar de respuesta exitosa.
type Envelope struct {
	Success bool   `json:"success"`
	Method  string `json:"method"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse cuerpo de error HTTP. Stack solo se rellena en development.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// PageMeta metadatos de paginación por página (page empieza en 1).
type PageMeta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// Normalize aplica valores por defecto: page >= 1, 1 <= limit <= 100 (default 20).
// page se acota para que (page-1)*limit no desborde int.
func Normalize(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// Offset skip = (page-1)*limit.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// NewPageMeta construye los metadatos a partir del total de registros.
func NewPageMeta(page, limit, total int) PageMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PageMeta{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// Paginate recorta en memoria la página pedida. Una página más allá del final devuelve vacío.
func Paginate[T any](items []T, page, limit int) ([]T, PageMeta) {
	page, limit = Normalize(page, limit)
	meta := NewPageMeta(page, limit, len(items))
	skip := Offset(page, limit)
	if skip >= len(items) {
		return []T{}, meta
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end], meta
}
