package models

import (
	"fmt"
	"strings"
)

// Examiner identifies an internal or external examiner assigned to
// supervise a lab-day.
type Examiner struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// String renders the display form used across uploads and exports.
func (e Examiner) String() string {
	return fmt.Sprintf("%s: %s", e.ID, e.Name)
}

// ParseExaminer parses the "ID: Name" display form back into an Examiner.
func ParseExaminer(s string) (Examiner, error) {
	parts := strings.SplitN(s, ": ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Examiner{}, fmt.Errorf("invalid examiner format: %q", s)
	}
	return Examiner{ID: parts[0], Name: parts[1]}, nil
}
