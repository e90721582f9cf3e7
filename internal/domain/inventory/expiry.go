package inventory

import (
	"math"
	"time"
)

// ExpiryStatus estado de vencimiento de un lote.
type ExpiryStatus string

const (
	ExpiryNone         ExpiryStatus = "none"
	ExpiryExpired      ExpiryStatus = "expired"
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	ExpiryNormal       ExpiryStatus = "normal"
)

// DefaultExpiryWarningDays ventana de "por vencer".
const DefaultExpiryWarningDays = 15

// ExpiryStatusAt calcula el estado comparando fechas de calendario (sin hora) en la zona de now:
// vencido si la fecha es anterior a hoy, por vencer si faltan entre 0 y warnDays días.
func ExpiryStatusAt(expiry *time.Time, now time.Time, warnDays int) ExpiryStatus {
	if expiry == nil || expiry.IsZero() {
		return ExpiryNone
	}
	days := DaysUntil(*expiry, now)
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= warnDays:
		return ExpiryExpiringSoon
	default:
		return ExpiryNormal
	}
}

// DaysUntil días de calendario desde now hasta date (negativo si ya pasó).
func DaysUntil(date, now time.Time) int {
	loc := now.Location()
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(d.Sub(n).Hours() / 24))
}
