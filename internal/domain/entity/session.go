package entity

import "time"

// Session sesión de un usuario autenticado. Se crea en login y se borra en logout.
// CSRFToken queda vacío cuando el barrido de limpieza lo retira por expiración.
type Session struct {
	ID                 string
	UserID             string
	Token              string
	CSRFToken          string
	CSRFTokenExpiresAt *time.Time
	ExpiresAt          time.Time
	UserAgent          string
	IP                 string
	CreatedAt          time.Time
}

// Expired indica si la sesión caducó en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CSRFExpired indica si el token CSRF no existe o caducó en el instante now.
func (s *Session) CSRFExpired(now time.Time) bool {
	return s.CSRFToken == "" || s.CSRFTokenExpiresAt == nil || !now.Before(*s.CSRFTokenExpiresAt)
}
