package inventory

import "time"

// SetClock fija el reloj del caso de uso en tests.
func (uc *RegisterMovementUseCase) SetClock(now func() time.Time) { uc.now = now }
