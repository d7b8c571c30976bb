package validation

import (
	"strings"

	"github.com/bnema/areashot/internal/domain/entity"
)

// ValidateShortcut checks a selection-start key chord.
func ValidateShortcut(field string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.ContainsAny(value, "\r\n") {
		return []string{field + " must not contain newlines"}
	}
	if _, err := entity.ParseShortcut(value); err != nil {
		return []string{field + ": " + err.Error()}
	}
	return nil
}
