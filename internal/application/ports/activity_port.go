package ports

import "context"

// Actor identifica quién dispara una operación. UserID vacío = sistema (jobs, CLI).
type Actor struct {
	UserID string
	IP     string
}

// SystemActor actor usado por el scheduler y el CLI de jobs.
var SystemActor = Actor{IP: "system"}

// ActivityRecorder puerto de salida para el log de actividad.
// Record nunca falla hacia el caller: los errores se registran en log y se descartan.
type ActivityRecorder interface {
	Record(ctx context.Context, actor Actor, action, resource, resourceID string, details any)
}

// NopRecorder descarta las entradas (tests y herramientas).
type NopRecorder struct{}

// Record no hace nada.
func (NopRecorder) Record(context.Context, Actor, string, string, string, any) {}
