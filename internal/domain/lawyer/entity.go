package lawyer

import (
	"strings"
	"time"

	"github.com/turtacn/LexConnect/internal/domain/legal"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// Lawyer is a roster entry.  Specialization is one of the coarse roster
// categories in legal.RosterSpecializations; SubSpecialty and About are
// free text and may be empty.
type Lawyer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	SubSpecialty   string    `json:"sub_specialty"`
	Experience     int       `json:"experience"`
	Location       string    `json:"location"`
	Fee            float64   `json:"fee"`
	About          string    `json:"about"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// Validate checks the invariants a roster entry must hold before it is stored.
func (l *Lawyer) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New(errors.ErrCodeLawyerInvalid, "name is required")
	}
	if !legal.IsRosterSpecialization(l.Specialization) {
		return errors.New(errors.ErrCodeSpecializationUnknown, "unknown specialization").
			WithDetail("specialization=" + l.Specialization)
	}
	if l.Experience < 0 {
		return errors.New(errors.ErrCodeLawyerInvalid, "experience must not be negative")
	}
	if l.Fee <= 0 {
		return errors.New(errors.ErrCodeLawyerInvalid, "fee must be positive")
	}
	if strings.TrimSpace(l.Location) == "" {
		return errors.New(errors.ErrCodeLawyerInvalid, "location is required")
	}
	return nil
}

//Personal.AI order the ending
