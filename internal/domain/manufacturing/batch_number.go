package manufacturing

import (
	"fmt"
	"math/rand"
	"time"
)

// NewBatchNumber genera un número legible BATCH-<YYYYMMDD>-<4 dígitos aleatorios>.
// No garantiza unicidad: el llamador verifica contra la BD y la tabla tiene restricción UNIQUE.
func NewBatchNumber(now time.Time) string {
	return FormatBatchNumber(now, 1000+rand.Intn(9000))
}

// FormatBatchNumber arma el número con un sufijo dado (útil en tests).
func FormatBatchNumber(now time.Time, suffix int) string {
	return fmt.Sprintf("BATCH-%s-%04d", now.Format("20060102"), suffix)
}
