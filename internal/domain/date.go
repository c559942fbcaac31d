package domain

import "time"

// DateLayout formato de fechas de negocio: YYYY-MM-DD con ceros a la izquierda,
// de modo que el orden lexicográfico coincide con el cronológico.
const DateLayout = "2006-01-02"

// NormalizeDate valida una fecha YYYY-MM-DD. Vacía = fecha de now.
func NormalizeDate(s string, now time.Time) (string, error) {
	if s == "" {
		return now.Format(DateLayout), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return "", ErrInvalidDate
	}
	return s, nil
}
