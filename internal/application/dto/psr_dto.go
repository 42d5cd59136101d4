package dto

import "time"

// PSRResponse un PSR de la caché local.
type PSRResponse struct {
	ID        string    `json:"id"`
	PSRCode   string    `json:"psr_code"`
	FullName  string    `json:"full_name"`
	AreaCode  string    `json:"area_code"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PSRSyncResult conteos de la sincronización más la tabla local completa ordenada por nombre.
type PSRSyncResult struct {
	Fetched   int           `json:"fetched"`
	Inserted  int           `json:"inserted"`
	Updated   int           `json:"updated"`
	Unchanged int           `json:"unchanged"`
	Failed    int           `json:"failed"`
	PSRs      []PSRResponse `json:"psrs"`
}
