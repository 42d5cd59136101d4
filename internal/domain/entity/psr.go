package entity

import "time"

// PSR copia local de un representante de ventas del HRMS legado.
// PSRCode es la llave natural; SourceHash es la huella de los campos significativos de la fila origen.
type PSR struct {
	ID          string
	PSRCode     string
	FullName    string
	AreaCode    string
	SourceHash  string
	CreatedByID *string
	UpdatedByID *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LegacyPSR fila tal como llega del HRMS.
type LegacyPSR struct {
	Code     string `db:"psr_code"`
	FullName string `db:"full_name"`
	AreaCode string `db:"area_code"`
}
