package sales

import "time"

// SetClock fija el reloj del caso de uso en tests.
func (uc *UseCase) SetClock(now func() time.Time) { uc.now = now }
