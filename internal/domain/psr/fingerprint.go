// Package psr: huella de contenido de las filas de PSR que llegan del HRMS.
// Algoritmo: SHA-256 sobre psr_code, full_name y area_code unidos por el separador de unidad (0x1F),
// que no aparece en texto de nombres ni códigos.
package psr

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/jhoicas/Farmadist-api/internal/domain/entity"
)

// FieldSeparator separador entre campos de la cadena que se hashea.
const FieldSeparator = "\x1f"

// Normalize recorta espacios de los campos significativos; el HRMS rellena CHAR con blancos.
func Normalize(row entity.LegacyPSR) entity.LegacyPSR {
	return entity.LegacyPSR{
		Code:     strings.TrimSpace(row.Code),
		FullName: strings.TrimSpace(row.FullName),
		AreaCode: strings.TrimSpace(row.AreaCode),
	}
}

// Fingerprint devuelve el SHA-256 hexadecimal (64 caracteres) de la fila normalizada.
func Fingerprint(row entity.LegacyPSR) string {
	n := Normalize(row)
	sum := sha256.Sum256([]byte(n.Code + FieldSeparator + n.FullName + FieldSeparator + n.AreaCode))
	return hex.EncodeToString(sum[:])
}
