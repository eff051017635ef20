package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agenda-api/internal/domain"
)

// parseTimeParam interpreta un parámetro de fecha en RFC3339 o AAAA-MM-DD.
// endOfDay lleva las fechas sin hora al último instante del día (límite superior inclusivo).
func parseTimeParam(name, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser RFC3339 o AAAA-MM-DD", domain.ErrInvalidInput, name)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
