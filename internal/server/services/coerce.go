package services

import (
	"strconv"
	"strings"
	"time"
)

// parseLooseBool coerces an integer-like value into a bool: numbers and
// numeric strings are truthy when non-zero, booleans pass through, and
// anything else (including non-numeric strings like "yes") coerces to
// false. Intentionally lossy; the API has always treated is_complete this
// way.
func parseLooseBool(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value != 0
	case int:
		return value != 0
	case int64:
		return value != 0
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return false
		}
		return n != 0
	default:
		return false
	}
}

// dueDateLayouts are the accepted due_date formats, tried in order.
var dueDateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDueDate parses a client-supplied due date.
func parseDueDate(value string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
